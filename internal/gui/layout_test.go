package gui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/starbuild/internal/build"
	"github.com/appengine-ltd/starbuild/internal/skills"
)

func overlaps(a, b rl.Rectangle) bool {
	return a.X < b.X+b.Width && b.X < a.X+a.Width && a.Y < b.Y+b.Height && b.Y < a.Y+a.Height
}

func TestSkillTargetsDoNotOverlap(t *testing.T) {
	for _, area := range []rl.Rectangle{
		rl.NewRectangle(20, 60, 1300, 520),
		rl.NewRectangle(0, 0, 900, 420),
	} {
		l := newSkillLayout(area)
		targets := l.targets()
		want := 3*(skills.NodesPerCareer+skills.UnlockSlots) + 6 + 6 + 4 + 4 + skills.UnlockSlots
		if len(targets) != want {
			t.Fatalf("targets=%d want %d", len(targets), want)
		}
		for i, a := range targets {
			if a.Rect.Width <= 0 || a.Rect.Height <= 0 {
				t.Fatalf("%+v has an empty rect", a.Target)
			}
			if a.Rect.X < area.X || a.Rect.Y < area.Y || a.Rect.X+a.Rect.Width > area.X+area.Width+0.01 || a.Rect.Y+a.Rect.Height > area.Y+area.Height+0.01 {
				t.Fatalf("%+v at %+v is outside %+v", a.Target, a.Rect, area)
			}
			for _, b := range targets[i+1:] {
				if overlaps(a.Rect, b.Rect) {
					t.Fatalf("%+v overlaps %+v", a.Target, b.Target)
				}
			}
		}
	}
}

func TestSkillLayoutHitTest(t *testing.T) {
	l := newSkillLayout(rl.NewRectangle(0, 0, 1200, 600))
	for _, p := range l.targets() {
		cx := p.Rect.X + p.Rect.Width/2
		cy := p.Rect.Y + p.Rect.Height/2
		got, ok := l.at(cx, cy)
		if !ok || got != p.Target {
			t.Fatalf("at centre of %+v got %+v,%v", p.Target, got, ok)
		}
	}
	if _, ok := l.at(-5, -5); ok {
		t.Fatalf("hit outside the layout")
	}
}

func TestSkillTargetCommands(t *testing.T) {
	tests := []struct {
		target skillTarget
		want   string
	}{
		{skillTarget{Kind: targetSpaceNode, Career: skills.Tactical, ID: 0}, "skill space tac 1"},
		{skillTarget{Kind: targetGroundNode, Group: 2, ID: 3}, "skill ground 3 4"},
		{skillTarget{Kind: targetUnlock, Bar: skills.BarGround, ID: 4}, "unlock ground 5"},
	}
	for _, tc := range tests {
		if got := tc.target.Command(); got != tc.want {
			t.Fatalf("got %q want %q", got, tc.want)
		}
	}
}

func TestSlotRowsAndCommands(t *testing.T) {
	b := build.New()
	rows := slotRows(&b, build.Space, build.Limits{build.ForeWeapons: 4})
	total := 0
	for _, c := range build.Categories(build.Space) {
		total += build.SlotCount(build.Space, c)
	}
	if len(rows) != total {
		t.Fatalf("rows=%d want %d", len(rows), total)
	}
	if rows[3].Locked || !rows[4].Locked {
		t.Fatalf("fore limit not applied: %+v %+v", rows[3], rows[4])
	}
	if got := rows[0].Label(); got != "fore weapons 1" {
		t.Fatalf("label=%q", got)
	}
	if got := slotCommand("set", build.Space, rows[1], "Phaser Beam Array"); got != "set space fore weapons 2 Phaser Beam Array" {
		t.Fatalf("command=%q", got)
	}
	ground := slotRows(&b, build.Ground, build.Limits{build.GroundWeapons: 0})
	if ground[0].Locked {
		t.Fatalf("ship limits applied to ground slots")
	}
}

func TestScrollFor(t *testing.T) {
	tests := []struct {
		cursor, offset, visible, total, want int
	}{
		{0, 0, 10, 5, 0},
		{12, 0, 10, 40, 3},
		{2, 8, 10, 40, 2},
		{39, 35, 10, 40, 30},
		{5, 3, 0, 40, 0},
	}
	for _, tc := range tests {
		if got := scrollFor(tc.cursor, tc.offset, tc.visible, tc.total); got != tc.want {
			t.Fatalf("scrollFor(%d,%d,%d,%d)=%d want %d", tc.cursor, tc.offset, tc.visible, tc.total, got, tc.want)
		}
	}
	if wrapIndex(-1, 3) != 2 || wrapIndex(7, 3) != 1 || wrapIndex(4, 0) != 0 {
		t.Fatalf("wrapIndex")
	}
}
