package theme

import (
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Skin holds the optional nine-slice textures. Zero-value slices fall back
// to flat colour drawing.
var Skin skinAssets

type skinAssets struct {
	Frame NineSlice
	Panel NineSlice
	Input NineSlice

	loaded bool
}

const (
	frameSlice = int32(10)
	panelSlice = int32(8)
	inputSlice = int32(6)
)

// InitSkin loads the textures found in dir. Call after rl.InitWindow.
func InitSkin(dir string) {
	if Skin.loaded {
		return
	}
	Skin.loaded = true
	Skin.Frame = loadNineSlice(filepath.Join(dir, "frame_console.png"), frameSlice)
	Skin.Panel = loadNineSlice(filepath.Join(dir, "panel_9slice.png"), panelSlice)
	Skin.Input = loadNineSlice(filepath.Join(dir, "input_9slice.png"), inputSlice)
}

// UnloadSkin releases the textures. Call before rl.CloseWindow.
func UnloadSkin() {
	for _, ns := range []*NineSlice{&Skin.Frame, &Skin.Panel, &Skin.Input} {
		if ns.Tex.ID != 0 {
			rl.UnloadTexture(ns.Tex)
			ns.Tex = rl.Texture2D{}
		}
	}
	Skin.loaded = false
}

// DrawFrame paints the window border and returns the content area inside it.
func DrawFrame(screenW, screenH int32) rl.Rectangle {
	outer := rl.NewRectangle(0, 0, float32(screenW), float32(screenH))
	if Skin.Frame.Tex.ID != 0 {
		DrawNineSlice(Skin.Frame, outer, rl.White)
	} else {
		m := float32(frameSlice)
		rl.DrawRectangleRec(rl.NewRectangle(0, 0, outer.Width, m), AccentLilac)
		rl.DrawRectangleRec(rl.NewRectangle(0, outer.Height-m, outer.Width, m), AccentAmber)
	}
	m := float32(frameSlice)
	return rl.NewRectangle(m, m, outer.Width-2*m, outer.Height-2*m)
}

func loadNineSlice(path string, slice int32) NineSlice {
	ns := NineSlice{Left: slice, Right: slice, Top: slice, Bottom: slice}
	if _, err := os.Stat(path); err != nil {
		return ns
	}
	tex := rl.LoadTexture(path)
	if tex.ID == 0 {
		return ns
	}
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	ns.Tex = tex
	return ns
}
