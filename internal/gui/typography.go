package gui

import (
	"math"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	uitheme "github.com/appengine-ltd/starbuild/internal/ui/theme"
)

type typographyState struct {
	font  rl.Font
	owned bool
}

var uiType typographyState

// initTypography loads the first font found under dir/fonts and routes the
// theme's text through it. Without one the raylib default font is used.
func initTypography(dir string) {
	uiType.font = rl.GetFontDefault()
	for _, name := range []string{"Antonio-Regular.ttf", "Inter-Regular.ttf", "NotoSans-Regular.ttf"} {
		path := filepath.Join(dir, "fonts", name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		f := rl.LoadFontEx(path, 36, nil, 0)
		if f.Texture.ID == 0 {
			continue
		}
		uiType.font = f
		uiType.owned = true
		break
	}
	rl.SetTextureFilter(uiType.font.Texture, rl.FilterBilinear)
	uitheme.SetTextRenderer(drawText, measureText)
}

func shutdownTypography() {
	if uiType.owned && uiType.font.Texture.ID != 0 {
		rl.UnloadFont(uiType.font)
	}
	uiType = typographyState{}
}

func drawText(text string, x, y, fontSize int32, clr rl.Color) {
	if uiType.font.Texture.ID == 0 {
		rl.DrawText(text, x, y, fontSize, clr)
		return
	}
	rl.DrawTextEx(uiType.font, text, rl.Vector2{X: float32(x), Y: float32(y)}, float32(fontSize), 1, clr)
}

func measureText(text string, fontSize int32) int32 {
	if uiType.font.Texture.ID == 0 {
		return int32(rl.MeasureText(text, fontSize))
	}
	return int32(math.Round(float64(rl.MeasureTextEx(uiType.font, text, float32(fontSize), 1).X)))
}
