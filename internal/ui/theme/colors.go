package theme

import rl "github.com/gen2brain/raylib-go/raylib"

// Bridge-console palette.
var (
	BG            = rl.NewColor(0x0B, 0x0E, 0x1A, 255) // #0B0E1A
	Panel         = rl.NewColor(0x14, 0x19, 0x2B, 255) // #14192B
	PanelRaised   = rl.NewColor(0x1C, 0x23, 0x3A, 255) // #1C233A
	Border        = rl.NewColor(0x34, 0x3F, 0x63, 255) // #343F63
	Divider       = rl.NewColor(0x25, 0x2D, 0x48, 255) // #252D48
	TextPrimary   = rl.NewColor(0xE6, 0xE9, 0xF5, 255) // #E6E9F5
	TextSecondary = rl.NewColor(0xA3, 0xAB, 0xC9, 255) // #A3ABC9
	TextMuted     = rl.NewColor(0x6E, 0x77, 0x99, 255) // #6E7799
	AccentAmber   = rl.NewColor(0xF2, 0xA5, 0x3A, 255) // #F2A53A
	AccentLilac   = rl.NewColor(0x9C, 0x8C, 0xF2, 255) // #9C8CF2
	AccentTeal    = rl.NewColor(0x3F, 0xC1, 0xB0, 255) // #3FC1B0
	WarningAmber  = rl.NewColor(0xE8, 0xC2, 0x4A, 255) // #E8C24A
	Danger        = rl.NewColor(0xD9, 0x4F, 0x4F, 255) // #D94F4F
	DisabledPanel = rl.NewColor(0x10, 0x13, 0x20, 255)
	DisabledText  = TextMuted
)

// CareerColor tints skill trees and bonus bars by career.
func CareerColor(career string) rl.Color {
	switch career {
	case "eng":
		return AccentAmber
	case "sci":
		return AccentTeal
	case "tac":
		return Danger
	default:
		return AccentLilac
	}
}
