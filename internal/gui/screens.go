package gui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/starbuild/internal/skills"
	uitheme "github.com/appengine-ltd/starbuild/internal/ui/theme"
)

const (
	footerHeight = float32(190)
	tabHeight    = float32(34)
)

// regions splits the window into the tab strip, the screen body and the
// command footer.
func (ui *editorUI) regions() (tabs, body, footer rl.Rectangle) {
	inner := rl.NewRectangle(10, 10, float32(ui.width)-20, float32(ui.height)-20)
	tabs = rl.NewRectangle(inner.X, inner.Y, inner.Width, tabHeight)
	footer = rl.NewRectangle(inner.X, inner.Y+inner.Height-footerHeight, inner.Width, footerHeight)
	body = rl.NewRectangle(inner.X, tabs.Y+tabs.Height+uitheme.PaddingS, inner.Width, footer.Y-tabs.Y-tabs.Height-2*uitheme.PaddingS)
	return tabs, body, footer
}

func (ui *editorUI) loadoutPanels(body rl.Rectangle) (slots, picks rl.Rectangle) {
	split := body.Width * 0.58
	slots = rl.NewRectangle(body.X, body.Y, split-uitheme.PaddingS, body.Height)
	picks = rl.NewRectangle(body.X+split, body.Y, body.Width-split, body.Height)
	return slots, picks
}

func (ui *editorUI) updateLoadout() {
	if HotkeysEnabled(ui) {
		switch {
		case keyPressedOrRepeat(rl.KeyDown):
			ui.moveCursor(1)
		case keyPressedOrRepeat(rl.KeyUp):
			ui.moveCursor(-1)
		case rl.IsKeyPressed(rl.KeyEnter):
			ui.prefillSet()
			return
		case rl.IsKeyPressed(rl.KeyDelete):
			ui.slotAction("clear")
		case CtrlPressedKey(rl.KeyC):
			ui.slotAction("copy")
		case CtrlPressedKey(rl.KeyV):
			ui.slotAction("paste")
		}
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		ui.moveCursor(-int(wheel))
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	m := rl.GetMousePosition()
	_, body, _ := ui.regions()
	slots, picks := ui.loadoutPanels(body)
	list := uitheme.PanelBody(slots)
	if contains(list, m.X, m.Y) {
		i := ui.scroll + int((m.Y-list.Y)/uitheme.RowHeight)
		if i < len(ui.rows()) {
			ui.cursor = i
		}
		return
	}
	pick := uitheme.PanelBody(picks)
	if contains(pick, m.X, m.Y) {
		names := ui.candidates()
		i := int((m.Y - pick.Y - uitheme.RowHeight) / uitheme.RowHeight)
		if r, ok := ui.selectedRow(); ok && i >= 0 && i < len(names) {
			ui.queue.EnqueueCommand(slotCommand("set", ui.env, r, names[i]))
		}
	}
}

func (ui *editorUI) updateSkills() {
	_, body, _ := ui.regions()
	layout := newSkillLayout(uitheme.PanelBody(body))
	m := rl.GetMousePosition()
	ui.hover = nil
	if t, ok := layout.at(m.X, m.Y); ok {
		ui.hover = &t
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			ui.queue.EnqueueCommand(t.Command())
		}
	}
}

func (ui *editorUI) draw() {
	uitheme.DrawFrame(ui.width, ui.height)
	tabs, body, footer := ui.regions()
	ui.drawTabs(tabs)
	switch ui.screen {
	case screenLoadout:
		ui.drawLoadout(body)
	case screenSkills:
		ui.drawSkills(body)
	case screenSummary:
		ui.drawSummary(body)
	}
	ui.drawFooter(footer)
}

func (ui *editorUI) drawTabs(rect rl.Rectangle) {
	w := float32(190)
	for i, name := range screenNames {
		r := rl.NewRectangle(rect.X+float32(i)*(w+uitheme.PaddingXS), rect.Y, w, rect.Height)
		uitheme.DrawTab(r, screen(i) == ui.screen, name)
	}
	sum := ui.cfg.Console.Session().Store().Summary()
	title := fmt.Sprintf("STARBUILD v%s  %s", ui.cfg.Version, safeText(sum.CharacterName))
	if sum.Ship != "" {
		title += "  |  " + sum.Ship
	}
	tw := measureText(title, uitheme.Type.Body)
	drawText(title, int32(rect.X+rect.Width)-tw-8, int32(rect.Y+8), uitheme.Type.Body, colorDim)
}

func (ui *editorUI) drawLoadout(body rl.Rectangle) {
	slots, picks := ui.loadoutPanels(body)
	uitheme.DrawPanel(slots, uitheme.PanelStandard, strings.ToUpper(string(ui.env))+" LOADOUT  (F2 switches)", uitheme.AccentLilac)
	list := uitheme.PanelBody(slots)

	rows := ui.rows()
	visible := int(list.Height / uitheme.RowHeight)
	ui.cursor = clampInt(ui.cursor, 0, len(rows)-1)
	ui.scroll = scrollFor(ui.cursor, ui.scroll, visible, len(rows))
	for i := ui.scroll; i < len(rows) && i < ui.scroll+visible; i++ {
		r := rows[i]
		rect := rl.NewRectangle(list.X, list.Y+float32(i-ui.scroll)*uitheme.RowHeight, list.Width, uitheme.RowHeight-2)
		state := uitheme.ListItemNormal
		switch {
		case i == ui.cursor:
			state = uitheme.ListItemSelected
		case r.Locked:
			state = uitheme.ListItemDisabled
		}
		right := r.Slot.String()
		if r.Slot.Empty() {
			right = "-"
		}
		if r.Locked {
			right = "(not on this ship)"
		}
		uitheme.DrawListItem(rect, state, r.Label(), right)
	}

	title := "FITS THIS SLOT"
	if ui.loading {
		title = "LOADING CATALOG"
	}
	uitheme.DrawPanel(picks, uitheme.PanelLifted, title, uitheme.AccentAmber)
	pick := uitheme.PanelBody(picks)
	uitheme.DrawHintText("Click to equip. Enter types a set command, Del clears, Ctrl+C/V copy and paste.", int32(pick.X), int32(pick.Y))
	for i, name := range ui.candidates() {
		rect := rl.NewRectangle(pick.X, pick.Y+float32(i+1)*uitheme.RowHeight, pick.Width, uitheme.RowHeight-2)
		uitheme.DrawListItem(rect, uitheme.ListItemNormal, name, "")
	}
	if clip := ui.cfg.Console.Session().Clipboard(); !clip.Empty() {
		uitheme.DrawHintText("Clipboard: "+clip.Slot.String(), int32(pick.X), int32(pick.Y+pick.Height)-uitheme.Type.Small)
	}
}

func (ui *editorUI) drawSkills(body rl.Rectangle) {
	st := ui.cfg.Console.Session().Store()
	b := st.Build()
	engine := st.Engine()
	uitheme.DrawPanel(body, uitheme.PanelStandard, fmt.Sprintf("SKILLS  space %d/%d  ground %d/%d",
		b.SpaceSkills.Total(), engine.Layout().MaxSpacePoints, b.GroundSkills.Total(), engine.Layout().MaxGroundPoints), uitheme.AccentLilac)
	layout := newSkillLayout(uitheme.PanelBody(body))

	for ci, c := range skills.Careers() {
		accent := uitheme.CareerColor(string(c))
		area := layout.careerArea(ci)
		drawText(fmt.Sprintf("%s  %d", c, b.SpaceSkills.CareerPoints(c)), int32(area.X), int32(area.Y), uitheme.Type.Body, accent)
		for id := 0; id < skills.NodesPerCareer; id++ {
			t := skillTarget{Kind: targetSpaceNode, Career: c, ID: id}
			active := b.SpaceSkills.Active(c, id)
			available := active || engine.CanSelectSpace(&b.SpaceSkills, c, id)
			uitheme.DrawNode(layout.spaceNodeRect(ci, id), fmt.Sprint(id+1), active, available, ui.hovered(t), accent)
		}
		seg := skills.SpaceSegmentsFilled(&b.SpaceSkills, c)
		uitheme.DrawSegmentBar(layout.barRect(ci), seg[:], accent)
		ui.drawUnlocks(&b.Unlocks, skills.CareerBar(c), layout.unlockRect, ci, accent)
	}

	accent := uitheme.CareerColor("ground")
	for g := 0; g < skills.GroundGroups; g++ {
		first := layout.groundNodeRect(g, 0)
		drawText(fmt.Sprintf("group %d", g+1), int32(first.X), int32(layout.Ground.Y), uitheme.Type.Small, accent)
		for id := 0; id < skills.GroundGroupSizes[g]; id++ {
			t := skillTarget{Kind: targetGroundNode, Group: g, ID: id}
			active := b.GroundSkills.Active(g, id)
			available := active || engine.CanSelectGround(&b.GroundSkills, g, id)
			uitheme.DrawNode(layout.groundNodeRect(g, id), fmt.Sprint(id+1), active, available, ui.hovered(t), accent)
		}
	}
	seg := skills.GroundSegmentsFilled(&b.GroundSkills)
	uitheme.DrawSegmentBar(layout.groundBarRect(), seg[:], accent)
	ui.drawUnlocks(&b.Unlocks, skills.BarGround, func(_, i int) rl.Rectangle { return layout.groundUnlockRect(i) }, 0, accent)
}

func (ui *editorUI) drawUnlocks(u *skills.Unlocks, bar skills.Bar, rectFor func(ci, i int) rl.Rectangle, ci int, accent rl.Color) {
	for i := 0; i < skills.UnlockSlots; i++ {
		v, _ := u.Get(bar, i)
		t := skillTarget{Kind: targetUnlock, Bar: bar, ID: i}
		uitheme.DrawNode(rectFor(ci, i), v.String(), false, !v.IsLocked(), ui.hovered(t), accent)
	}
}

func (ui *editorUI) hovered(t skillTarget) bool {
	return ui.hover != nil && *ui.hover == t
}

func (ui *editorUI) drawSummary(body rl.Rectangle) {
	c := ui.cfg.Console
	third := body.Width / 3
	left := rl.NewRectangle(body.X, body.Y, third-uitheme.PaddingS, body.Height)
	mid := rl.NewRectangle(body.X+third, body.Y, third-uitheme.PaddingS, body.Height)
	right := rl.NewRectangle(body.X+2*third, body.Y, third, body.Height)

	uitheme.DrawPanel(left, uitheme.PanelStandard, "CAPTAIN", uitheme.AccentLilac)
	drawBlock(uitheme.PanelBody(left), c.Show("captain"), uitheme.Type.Small, colorText)

	uitheme.DrawPanel(mid, uitheme.PanelStandard, "BRIDGE & DUTY OFFICERS", uitheme.AccentTeal)
	drawBlock(uitheme.PanelBody(mid), c.Show("boffs")+"\n"+c.Show("doffs"), uitheme.Type.Small, colorText)

	issues := c.Session().Validate()
	accent := uitheme.AccentTeal
	if len(issues) > 0 {
		accent = colorWarn
	}
	uitheme.DrawPanel(right, uitheme.PanelLifted, fmt.Sprintf("VALIDATION  %d issue(s)", len(issues)), accent)
	lines := make([]string, 0, len(issues))
	for _, is := range issues {
		lines = append(lines, is.String())
	}
	if len(lines) == 0 {
		lines = append(lines, "Build is valid.")
	}
	drawLines(uitheme.PanelBody(right), lines, uitheme.Type.Small, colorDim)
}

func (ui *editorUI) drawFooter(rect rl.Rectangle) {
	inputH := uitheme.ButtonHeight
	logRect := rl.NewRectangle(rect.X, rect.Y, rect.Width, rect.Height-inputH-2*uitheme.PaddingXS)
	uitheme.DrawPanel(logRect, uitheme.PanelMuted, "", colorMuted)
	inner := rl.NewRectangle(logRect.X+uitheme.PaddingS, logRect.Y+uitheme.PaddingXS, logRect.Width-2*uitheme.PaddingS, logRect.Height-2*uitheme.PaddingXS)
	drawLines(inner, tail(ui.log, visibleLines(inner.Height, uitheme.Type.Log)), uitheme.Type.Log, colorDim)

	inputRect := rl.NewRectangle(rect.X, rect.Y+rect.Height-inputH-uitheme.PaddingXS, rect.Width*0.7, inputH)
	uitheme.DrawInput(inputRect, ui.input, "help, set space fore 1 phaser beam array, skill space tac 1 ...", true)

	status := ui.status
	clr := colorDim
	if ui.loading {
		status = "Loading catalog..."
	}
	if ui.unsaved() {
		status = strings.TrimSpace(status + "  [unsaved]")
		clr = colorAccent
	}
	if ui.pending != nil {
		clr = colorWarn
	}
	statusX := int32(inputRect.X+inputRect.Width) + int32(uitheme.PaddingM)
	drawText(status, statusX, int32(inputRect.Y+(inputH-float32(uitheme.Type.Small))/2), uitheme.Type.Small, clr)
}
