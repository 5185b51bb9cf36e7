package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/fogleman/gg"

	"github.com/appengine-ltd/starbuild/internal/build"
	"github.com/appengine-ltd/starbuild/internal/skills"
)

var (
	barFilled = color.RGBA{R: 0, G: 230, B: 110, A: 255}
	barEmpty  = color.RGBA{R: 0, G: 70, B: 30, A: 255}
	barGlow   = color.RGBA{R: 120, G: 255, B: 170, A: 255}
)

type skillBar struct {
	label    string
	filled   []bool
	unlocked int
}

func skillBars(b *build.Build) []skillBar {
	bars := make([]skillBar, 0, 4)
	for _, c := range skills.Careers() {
		seg := skills.SpaceSegmentsFilled(&b.SpaceSkills, c)
		bars = append(bars, skillBar{
			label:    c.String(),
			filled:   seg[:],
			unlocked: countUnlocked(&b.Unlocks, skills.CareerBar(c)),
		})
	}
	seg := skills.GroundSegmentsFilled(&b.GroundSkills)
	bars = append(bars, skillBar{label: "Ground", filled: seg[:], unlocked: countUnlocked(&b.Unlocks, skills.BarGround)})
	return bars
}

func countUnlocked(u *skills.Unlocks, bar skills.Bar) int {
	n := 0
	for i := 0; i < skills.UnlockSlots; i++ {
		if v, _ := u.Get(bar, i); !v.IsLocked() {
			n++
		}
	}
	return n
}

// drawBars paints one row per bar; each segment is a cell and every
// unlocked slot adds a marker dot at the right end.
func drawBars(dc *gg.Context, bars []skillBar, x, y, w, rowH float64) {
	for i, bar := range bars {
		top := y + float64(i)*rowH
		cell := w / float64(len(bar.filled))
		for s, on := range bar.filled {
			dc.SetColor(barEmpty)
			if on {
				dc.SetColor(barFilled)
			}
			dc.DrawRectangle(x+float64(s)*cell, top, max(cell-1, 1), rowH*0.6)
			dc.Fill()
		}
		dc.SetColor(barGlow)
		for u := 0; u < bar.unlocked; u++ {
			dc.DrawCircle(x+w+4+float64(u)*4, top+rowH*0.3, 1.2)
			dc.Fill()
		}
	}
}

// SkillBarsANSI draws the bonus bars with gg and converts the image
// to coloured half-block characters for the terminal.
func SkillBarsANSI(b *build.Build, widthChars int) string {
	widthChars = clampInt(widthChars, 24, 96)
	bars := skillBars(b)
	rowH := 4.0
	w := widthChars
	h := int(rowH) * len(bars)
	dc := gg.NewContext(w, h)
	dc.SetRGBA(0, 0, 0, 0)
	dc.Clear()
	drawBars(dc, bars, 0, 0, float64(w-24), rowH)

	lines := strings.Split(strings.TrimRight(rgbaImageToANSIHalfBlocks(dc.Image()), "\n"), "\n")
	var out strings.Builder
	for i, bar := range bars {
		// Each bar covers rowH pixel rows, which is rowH/2 text lines.
		first := i * int(rowH) / 2
		if first < len(lines) {
			fmt.Fprintf(&out, "%-12s%s\n", bar.label, lines[first])
		}
	}
	return strings.TrimRight(out.String(), "\n")
}

// SkillCard renders a shareable image of the build: captain, ship and the
// skill bonus bars.
func SkillCard(b *build.Build, width, height int) image.Image {
	width = clampInt(width, 240, 2400)
	height = clampInt(height, 120, 1600)
	dc := gg.NewContext(width, height)
	dc.SetRGB(0.02, 0.06, 0.03)
	dc.Clear()

	sum := build.Summarize(b)
	title := sum.CharacterName
	if title == "" {
		title = "Unnamed captain"
	}
	if sum.Ship != "" {
		title += " - " + sum.Ship
	}
	dc.SetColor(barGlow)
	dc.DrawString(title, 16, 24)
	dc.SetColor(barFilled)
	dc.DrawString(strings.TrimSpace(strings.Join([]string{sum.Career, sum.Faction, sum.Species, sum.Tier}, " ")), 16, 42)

	bars := skillBars(b)
	top := 60.0
	rowH := (float64(height) - top - 12) / float64(len(bars))
	for i, bar := range bars {
		dc.SetColor(barFilled)
		dc.DrawString(bar.label, 16, top+float64(i)*rowH+rowH*0.45)
	}
	drawBars(dc, bars, 120, top, float64(width)-120-48, rowH)
	return dc.Image()
}

// SaveSkillCard writes SkillCard as a PNG.
func SaveSkillCard(path string, b *build.Build, width, height int) error {
	return gg.SavePNG(path, SkillCard(b, width, height))
}

func rgbaImageToANSIHalfBlocks(img image.Image) string {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return ""
	}

	var out strings.Builder
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			tr, tg, tb, ta := rgba8(img.At(bounds.Min.X+x, bounds.Min.Y+y))
			var br, bg, bb, ba uint8
			if y+1 < height {
				br, bg, bb, ba = rgba8(img.At(bounds.Min.X+x, bounds.Min.Y+y+1))
			}
			if ta < 8 && ba < 8 {
				out.WriteByte(' ')
				continue
			}
			fmt.Fprintf(&out, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀", tr, tg, tb, br, bg, bb)
		}
		out.WriteString("\x1b[0m\n")
	}
	return out.String()
}

func rgba8(c color.Color) (r, g, b, a uint8) {
	r16, g16, b16, a16 := c.RGBA()
	return uint8(r16 >> 8), uint8(g16 >> 8), uint8(b16 >> 8), uint8(a16 >> 8)
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
