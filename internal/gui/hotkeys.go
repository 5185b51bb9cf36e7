package gui

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HotkeysEnabled reports whether navigation keys act on the screen rather
// than the command line.
func HotkeysEnabled(ui *editorUI) bool {
	if ui == nil {
		return true
	}
	if strings.TrimSpace(ui.input) != "" {
		return false
	}
	return ui.pending == nil
}

func CtrlPressedKey(key int32) bool {
	return ctrlDown() && rl.IsKeyPressed(key)
}

func keyPressedOrRepeat(key int32) bool {
	return rl.IsKeyPressed(key) || rl.IsKeyPressedRepeat(key)
}

func shiftDown() bool {
	return rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
}

func ctrlDown() bool {
	return rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
		rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)
}
