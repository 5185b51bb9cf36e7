//go:build ignore

// gen_ui_placeholders.go - run with:
//
//	go run scripts/gen_ui_placeholders.go
//
// Creates assets/ui/*.png placeholder textures for the desktop editor skin.
// Each file is a small PNG with a rounded border inset so the nine-slice
// corners are easy to see. The slice sizes must match the constants in
// internal/ui/theme/textures.go.
package main

import (
	"image/color"
	"log"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
)

type texture struct {
	name   string
	size   int
	slice  int
	border color.RGBA
	centre color.RGBA
	accent color.RGBA
}

func main() {
	dir := filepath.Join("assets", "ui")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatal(err)
	}

	for _, t := range []texture{
		{
			// window frame: lilac top edge, amber bottom edge
			name:   "frame_console.png",
			size:   64,
			slice:  10,
			border: color.RGBA{0x34, 0x3F, 0x63, 0xFF},
			centre: color.RGBA{0x0B, 0x0E, 0x1A, 0xFF},
			accent: color.RGBA{0x9C, 0x8C, 0xF2, 0xFF},
		},
		{
			name:   "panel_9slice.png",
			size:   48,
			slice:  8,
			border: color.RGBA{0x34, 0x3F, 0x63, 0xFF},
			centre: color.RGBA{0x14, 0x19, 0x2B, 0xFF},
		},
		{
			name:   "input_9slice.png",
			size:   24,
			slice:  6,
			border: color.RGBA{0x25, 0x2D, 0x48, 0xFF},
			centre: color.RGBA{0x0B, 0x0E, 0x1A, 0xFF},
		},
	} {
		path := filepath.Join(dir, t.name)
		if err := t.render().SavePNG(path); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		log.Printf("  wrote %s (%dx%d slice=%d)", path, t.size, t.size, t.slice)
	}
	log.Println("Placeholder textures written to assets/ui/")
}

func (t texture) render() *gg.Context {
	s := float64(t.size)
	inset := float64(t.slice) / 2
	dc := gg.NewContext(t.size, t.size)

	dc.SetColor(t.centre)
	dc.DrawRoundedRectangle(1, 1, s-2, s-2, inset)
	dc.Fill()

	dc.SetColor(t.border)
	dc.SetLineWidth(2)
	dc.DrawRoundedRectangle(inset/2, inset/2, s-inset, s-inset, inset)
	dc.Stroke()

	if t.accent.A != 0 {
		dc.SetColor(t.accent)
		dc.DrawRectangle(float64(t.slice), 0, s-2*float64(t.slice), 3)
		dc.Fill()
		dc.SetRGBA255(0xF2, 0xA5, 0x3A, 0xFF)
		dc.DrawRectangle(float64(t.slice), s-3, s-2*float64(t.slice), 3)
		dc.Fill()
	}
	return dc
}
