package gui

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	uitheme "github.com/appengine-ltd/starbuild/internal/ui/theme"
)

var (
	colorText   = uitheme.TextPrimary
	colorDim    = uitheme.TextSecondary
	colorMuted  = uitheme.TextMuted
	colorAccent = uitheme.AccentAmber
	colorWarn   = uitheme.WarningAmber
)

// drawLines draws text lines top-down inside rect and stops at its bottom.
func drawLines(rect rl.Rectangle, lines []string, size int32, clr rl.Color) {
	step := uitheme.LineHeight(size)
	y := int32(rect.Y)
	for _, line := range lines {
		if y+size > int32(rect.Y+rect.Height) {
			return
		}
		drawText(line, int32(rect.X), y, size, clr)
		y += step
	}
}

// drawBlock splits text on newlines and draws it with drawLines.
func drawBlock(rect rl.Rectangle, text string, size int32, clr rl.Color) {
	drawLines(rect, strings.Split(text, "\n"), size, clr)
}

// visibleLines is how many lines of size fit into height.
func visibleLines(height float32, size int32) int {
	return max(int(height)/int(uitheme.LineHeight(size)), 0)
}

func tail(lines []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if len(lines) > n {
		return lines[len(lines)-n:]
	}
	return lines
}

func safeText(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
