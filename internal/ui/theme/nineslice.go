package theme

import rl "github.com/gen2brain/raylib-go/raylib"

// NineSlice is a 9-patch texture; the insets are in source pixels.
type NineSlice struct {
	Tex    rl.Texture2D
	Left   int32
	Right  int32
	Top    int32
	Bottom int32
}

// DrawNineSlice stretches ns over dest. An unloaded texture draws a flat
// translucent rectangle.
func DrawNineSlice(ns NineSlice, dest rl.Rectangle, tint rl.Color) {
	if ns.Tex.ID == 0 {
		rl.DrawRectangleRec(dest, rl.Fade(tint, 0.35))
		return
	}
	src := sliceBands(float32(ns.Tex.Width), float32(ns.Left), float32(ns.Right))
	srcY := sliceBands(float32(ns.Tex.Height), float32(ns.Top), float32(ns.Bottom))
	dst := destBands(dest.X, dest.Width, float32(ns.Left), float32(ns.Right))
	dstY := destBands(dest.Y, dest.Height, float32(ns.Top), float32(ns.Bottom))
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			d := rl.NewRectangle(dst[col][0], dstY[row][0], dst[col][1], dstY[row][1])
			if d.Width <= 0 || d.Height <= 0 {
				continue
			}
			s := rl.NewRectangle(src[col][0], srcY[row][0], src[col][1], srcY[row][1])
			rl.DrawTexturePro(ns.Tex, s, d, rl.Vector2{}, 0, tint)
		}
	}
}

// sliceBands splits a source axis into {offset, length} for the near edge,
// the centre and the far edge.
func sliceBands(size, near, far float32) [3][2]float32 {
	return [3][2]float32{{0, near}, {near, size - near - far}, {size - far, far}}
}

// destBands does the same for the destination, shrinking the edges evenly
// when they would overlap.
func destBands(origin, size, near, far float32) [3][2]float32 {
	if near+far > size {
		near, far = size/2, size/2
	}
	return [3][2]float32{{origin, near}, {origin + near, size - near - far}, {origin + size - far, far}}
}
