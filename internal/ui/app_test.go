package ui

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/appengine-ltd/starbuild/internal/build"
	"github.com/appengine-ltd/starbuild/internal/catalog"
	"github.com/appengine-ltd/starbuild/internal/console"
	"github.com/appengine-ltd/starbuild/internal/editor"
	"github.com/appengine-ltd/starbuild/internal/skills"
	"github.com/appengine-ltd/starbuild/internal/store"
)

func newTestModel(t *testing.T) editorModel {
	t.Helper()
	h := catalog.NewHolder()
	h.Swap(catalog.NewSnapshot(
		[]catalog.Item{{Name: "Phaser Beam Array", Category: build.ShipWeapon}},
		nil,
		[]catalog.Ship{{Name: "Defiant", Tier: "T6", Fore: 4, Aft: 3, Tac: 5}},
	))
	c := console.New(editor.NewSession(store.New(store.Options{}), h))
	return newEditorModel(AppConfig{Version: "dev", Commit: "none", BuildDate: "unknown", Console: c})
}

func typeLine(t *testing.T, m editorModel, line string) editorModel {
	t.Helper()
	for _, r := range line {
		var msg tea.KeyMsg
		if r == ' ' {
			msg = tea.KeyMsg{Type: tea.KeySpace}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		}
		next, _ := m.Update(msg)
		m = next.(editorModel)
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(editorModel)
}

func TestEnterRunsConsoleCommand(t *testing.T) {
	m := newTestModel(t)
	m = typeLine(t, m, "ship defiant")
	if got := m.cfg.Console.Session().Store().Summary().Ship; got != "Defiant" {
		t.Fatalf("ship=%q", got)
	}
	if m.input != "" {
		t.Fatalf("input not cleared: %q", m.input)
	}
	if len(m.history) != 1 || m.history[0] != "ship defiant" {
		t.Fatalf("history=%v", m.history)
	}
	view := m.View()
	if !strings.Contains(view, "STARBUILD") || !strings.Contains(view, "Defiant") {
		t.Fatalf("view missing content:\n%s", view)
	}
	if !strings.Contains(view, "[unsaved]") {
		t.Fatalf("modified build not flagged")
	}
}

func TestHistoryRecall(t *testing.T) {
	m := newTestModel(t)
	m = typeLine(t, m, "summary")
	m = typeLine(t, m, "validate")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(editorModel)
	if m.input != "validate" {
		t.Fatalf("up=%q", m.input)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(editorModel)
	if m.input != "summary" {
		t.Fatalf("up twice=%q", m.input)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(editorModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(editorModel)
	if m.input != "" {
		t.Fatalf("down past end=%q", m.input)
	}
}

func TestTabCyclesViews(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < int(viewCount); i++ {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = next.(editorModel)
	}
	if m.view != viewSummary {
		t.Fatalf("full cycle ended on %v", m.view)
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(editorModel)
	if m.view != viewCaptain {
		t.Fatalf("shift-tab=%v", m.view)
	}
}

func TestShowSwitchesView(t *testing.T) {
	m := newTestModel(t)
	m = typeLine(t, m, "show skills")
	if m.view != viewSkills {
		t.Fatalf("view=%v", m.view)
	}
	if !strings.Contains(m.View(), "SPACE SKILLS") {
		t.Fatalf("skills body missing")
	}
}

func TestQuitCommand(t *testing.T) {
	m := newTestModel(t)
	for _, r := range "quit" {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(editorModel)
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("quit did not quit")
	}
}

func TestCatalogLoadedStatus(t *testing.T) {
	m := newTestModel(t)
	m.loading = true
	next, _ := m.Update(catalogLoadedMsg{})
	m = next.(editorModel)
	if m.loading || !strings.Contains(m.status, "1 items") {
		t.Fatalf("status=%q loading=%v", m.status, m.loading)
	}
	next, _ = m.Update(catalogLoadedMsg{err: errors.New("offline")})
	m = next.(editorModel)
	if !strings.Contains(m.status, "offline") {
		t.Fatalf("status=%q", m.status)
	}
}

func TestWaitCatalogClosedChannel(t *testing.T) {
	ch := make(chan error)
	close(ch)
	if msg, ok := waitCatalog(ch)().(catalogLoadedMsg); !ok || msg.err != nil {
		t.Fatalf("msg=%+v", msg)
	}
}

func TestSkillBarsReflectPoints(t *testing.T) {
	b := build.New()
	empty := skillBars(&b)
	if len(empty) != 4 {
		t.Fatalf("bars=%d", len(empty))
	}
	for _, bar := range empty {
		for _, on := range bar.filled {
			if on {
				t.Fatalf("%s has a filled segment with no points", bar.label)
			}
		}
	}

	st := store.New(store.Options{})
	if _, ok := st.ToggleSpaceSkill(skills.Tactical, 0); !ok {
		t.Fatalf("toggle failed")
	}
	b = st.Build()
	bars := skillBars(&b)
	filled := 0
	for _, bar := range bars {
		for _, on := range bar.filled {
			if on {
				filled++
			}
		}
	}
	if filled == 0 {
		t.Fatalf("spent point shows no segment")
	}

	out := SkillBarsANSI(&b, 48)
	if got := strings.Count(out, "\n") + 1; got != 4 {
		t.Fatalf("lines=%d\n%s", got, out)
	}
	if !strings.Contains(out, "Tactical") || !strings.Contains(out, "▀") {
		t.Fatalf("render=%q", out)
	}
}

func TestHalfBlocksSkipTransparent(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if got := rgbaImageToANSIHalfBlocks(img); got != "  \x1b[0m\n" {
		t.Fatalf("got %q", got)
	}
}

func TestSaveSkillCard(t *testing.T) {
	b := build.New()
	b.Captain.Name = "Sisko"
	path := filepath.Join(t.TempDir(), "card.png")
	if err := SaveSkillCard(path, &b, 640, 320); err != nil {
		t.Fatalf("SaveSkillCard: %v", err)
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		t.Fatalf("card not written: %v", err)
	}
	if got := SkillCard(&b, 10, 10).Bounds().Dx(); got != 240 {
		t.Fatalf("card width not clamped: %d", got)
	}
}
