package theme

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	PaddingXS = float32(6)
	PaddingS  = float32(10)
	PaddingM  = float32(16)
	PaddingL  = float32(22)

	CornerRadius   = float32(0.12)
	CornerSegments = int32(8)

	BorderWidth      = float32(1.2)
	BorderWidthFocus = float32(2.0)
	RowHeight        = float32(30)
	ButtonHeight     = float32(40)
	AccentStripWidth = float32(6)
)

type PanelVariant int

const (
	PanelStandard PanelVariant = iota
	PanelLifted
	PanelMuted
)

type ListItemState int

const (
	ListItemNormal ListItemState = iota
	ListItemSelected
	ListItemDisabled
)

// DrawPanel fills rect with the panel skin and an optional title bar in the
// given accent.
func DrawPanel(rect rl.Rectangle, variant PanelVariant, title string, accent rl.Color) {
	fill := Panel
	stroke := Border
	switch variant {
	case PanelLifted:
		fill = PanelRaised
		stroke = mix(Border, accent, 0.4)
	case PanelMuted:
		fill = DisabledPanel
		stroke = rl.Fade(Border, 0.7)
	}
	if Skin.Panel.Tex.ID != 0 {
		DrawNineSlice(Skin.Panel, rect, fill)
	} else {
		rl.DrawRectangleRounded(rect, CornerRadius/4, CornerSegments, fill)
	}
	rl.DrawRectangleRoundedLinesEx(rect, CornerRadius/4, CornerSegments, BorderWidth, stroke)
	if title == "" {
		return
	}
	bar := rl.NewRectangle(rect.X, rect.Y, rect.Width, float32(Type.Header)+PaddingS)
	rl.DrawRectangleRounded(rl.NewRectangle(bar.X, bar.Y, 24, bar.Height), 0.5, CornerSegments, accent)
	drawText(title, int32(bar.X+32), int32(bar.Y+PaddingXS), Type.Header, accent)
	DrawDivider(rect.X+PaddingS, bar.Y+bar.Height+2, rect.X+rect.Width-PaddingS, bar.Y+bar.Height+2)
}

// PanelBody is the area under a titled panel's header.
func PanelBody(rect rl.Rectangle) rl.Rectangle {
	top := float32(Type.Header) + PaddingS + PaddingXS
	return rl.NewRectangle(rect.X+PaddingS, rect.Y+top, rect.Width-2*PaddingS, rect.Height-top-PaddingXS)
}

func DrawTab(rect rl.Rectangle, active bool, text string) {
	fill := Panel
	label := TextSecondary
	if active {
		fill = AccentLilac
		label = BG
	}
	rl.DrawRectangleRounded(rect, 0.5, CornerSegments, fill)
	w := measureText(text, Type.Body)
	drawText(text, int32(rect.X+(rect.Width-float32(w))/2), int32(rect.Y+(rect.Height-float32(Type.Body))/2), Type.Body, label)
}

func DrawListItem(rect rl.Rectangle, state ListItemState, leftText, rightText string) {
	fill := rl.Fade(PanelRaised, 0.45)
	left := TextPrimary
	right := TextSecondary
	switch state {
	case ListItemSelected:
		fill = PanelRaised
		right = AccentAmber
		rl.DrawRectangleRec(rl.NewRectangle(rect.X, rect.Y+2, AccentStripWidth, rect.Height-4), AccentAmber)
	case ListItemDisabled:
		fill = DisabledPanel
		left = DisabledText
		right = DisabledText
	}
	inner := rl.NewRectangle(rect.X+AccentStripWidth+2, rect.Y, rect.Width-AccentStripWidth-2, rect.Height)
	rl.DrawRectangleRec(inner, fill)

	textY := int32(rect.Y + (rect.Height-float32(Type.Small))/2)
	if leftText != "" {
		drawText(leftText, int32(inner.X+PaddingS), textY, Type.Small, left)
	}
	if rightText != "" {
		w := measureText(rightText, Type.Small)
		drawText(rightText, int32(inner.X+inner.Width-PaddingS)-w, textY, Type.Small, right)
	}
}

// DrawInput renders a one-line text field with a caret when focused.
func DrawInput(rect rl.Rectangle, text, placeholder string, focused bool) {
	stroke := Border
	if focused {
		stroke = AccentAmber
	}
	if Skin.Input.Tex.ID != 0 {
		DrawNineSlice(Skin.Input, rect, DisabledPanel)
	} else {
		rl.DrawRectangleRec(rect, DisabledPanel)
	}
	rl.DrawRectangleLinesEx(rect, BorderWidth, stroke)

	x := int32(rect.X + PaddingS)
	y := int32(rect.Y + (rect.Height-float32(Type.Body))/2)
	if text == "" && !focused {
		drawText(placeholder, x, y, Type.Body, TextMuted)
		return
	}
	drawText("> "+text, x, y, Type.Body, TextPrimary)
	if focused && int(rl.GetTime()*2)%2 == 0 {
		cx := x + measureText("> "+text, Type.Body) + 2
		rl.DrawRectangle(cx, y, 2, Type.Body, AccentAmber)
	}
}

// DrawSegmentBar draws a bonus bar of len(filled) segments.
func DrawSegmentBar(rect rl.Rectangle, filled []bool, accent rl.Color) {
	if len(filled) == 0 {
		return
	}
	cell := rect.Width / float32(len(filled))
	for i, on := range filled {
		r := rl.NewRectangle(rect.X+float32(i)*cell, rect.Y, cell-2, rect.Height)
		c := rl.Fade(accent, 0.18)
		if on {
			c = accent
		}
		rl.DrawRectangleRec(r, c)
	}
}

// DrawNode draws one skill node: a rounded cell, filled when active and
// dimmed when it cannot be taken.
func DrawNode(rect rl.Rectangle, label string, active, available, hovered bool, accent rl.Color) {
	fill := Panel
	text := TextSecondary
	switch {
	case active:
		fill = accent
		text = BG
	case !available:
		fill = DisabledPanel
		text = DisabledText
	}
	rl.DrawRectangleRounded(rect, 0.3, CornerSegments, fill)
	stroke := rl.Fade(accent, 0.6)
	width := BorderWidth
	if hovered {
		stroke = TextPrimary
		width = BorderWidthFocus
	}
	rl.DrawRectangleRoundedLinesEx(rect, 0.3, CornerSegments, width, stroke)
	w := measureText(label, Type.Small)
	drawText(label, int32(rect.X+(rect.Width-float32(w))/2), int32(rect.Y+(rect.Height-float32(Type.Small))/2), Type.Small, text)
}

func DrawDivider(x1, y1, x2, y2 float32) {
	rl.DrawLineEx(rl.NewVector2(x1, y1), rl.NewVector2(x2, y2), 1.0, rl.Fade(Divider, 0.95))
}

func DrawHintText(text string, x, y int32) {
	if text == "" {
		return
	}
	drawText(text, x, y, Type.Small, TextMuted)
}

func DrawText(text string, x, y, size int32, clr rl.Color) {
	drawText(text, x, y, size, clr)
}

func MeasureText(text string, size int32) int32 {
	return measureText(text, size)
}

func mix(a, b rl.Color, t float32) rl.Color {
	t = min(max(t, 0), 1)
	inv := 1.0 - t
	return rl.NewColor(
		uint8(float32(a.R)*inv+float32(b.R)*t),
		uint8(float32(a.G)*inv+float32(b.G)*t),
		uint8(float32(a.B)*inv+float32(b.B)*t),
		uint8(float32(a.A)*inv+float32(b.A)*t),
	)
}
