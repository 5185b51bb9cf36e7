package gui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/starbuild/internal/build"
	"github.com/appengine-ltd/starbuild/internal/parser"
	"github.com/appengine-ltd/starbuild/internal/skills"
)

// slotRow is one line of the loadout list.
type slotRow struct {
	Category build.Category
	Index    int
	Slot     build.Slot
	Locked   bool
}

// Label is the row's left text, one-based like the console.
func (r slotRow) Label() string {
	return fmt.Sprintf("%s %d", parser.SlotCategories.Say(string(r.Category)), r.Index+1)
}

// slotRows flattens an environment's slot arrays. Slots beyond the ship's
// limit for a category are marked locked.
func slotRows(b *build.Build, env build.Environment, limits build.Limits) []slotRow {
	var rows []slotRow
	for _, c := range build.Categories(env) {
		limit, limited := limits[c]
		for i, s := range b.Slots(env, c) {
			rows = append(rows, slotRow{
				Category: c,
				Index:    i,
				Slot:     s,
				Locked:   env == build.Space && limited && i >= limit,
			})
		}
	}
	return rows
}

// slotCommand renders a console line acting on a row.
func slotCommand(verb string, env build.Environment, r slotRow, rest ...string) string {
	parts := []string{verb, string(env), parser.SlotCategories.Say(string(r.Category)), fmt.Sprint(r.Index + 1)}
	return strings.Join(append(parts, rest...), " ")
}

// scrollFor keeps cursor inside a window of visible rows starting at offset.
func scrollFor(cursor, offset, visible, total int) int {
	if visible <= 0 || total <= visible {
		return 0
	}
	if cursor < offset {
		offset = cursor
	}
	if cursor >= offset+visible {
		offset = cursor - visible + 1
	}
	return clampInt(offset, 0, total-visible)
}

type targetKind int

const (
	targetSpaceNode targetKind = iota
	targetGroundNode
	targetUnlock
)

// skillTarget is a clickable element of the skills screen.
type skillTarget struct {
	Kind   targetKind
	Career skills.Career
	Group  int
	ID     int
	Bar    skills.Bar
}

// Command is the console line that toggles the target.
func (t skillTarget) Command() string {
	switch t.Kind {
	case targetSpaceNode:
		return fmt.Sprintf("skill space %s %d", t.Career, t.ID+1)
	case targetGroundNode:
		return fmt.Sprintf("skill ground %d %d", t.Group+1, t.ID+1)
	default:
		return fmt.Sprintf("unlock %s %d", t.Bar, t.ID+1)
	}
}

type placedTarget struct {
	Target skillTarget
	Rect   rl.Rectangle
}

const (
	gridGap     = float32(6)
	columnGap   = float32(14)
	maxCellSize = float32(44)
	barHeight   = float32(10)
)

// skillLayout places the three space trees side by side above the ground
// groups. Each career tree has one row per rank, with its two columns of
// three nodes left to right, then a bonus bar and an unlock row.
type skillLayout struct {
	Space  rl.Rectangle
	Ground rl.Rectangle
}

func newSkillLayout(area rl.Rectangle) skillLayout {
	spaceH := area.Height * 0.72
	return skillLayout{
		Space:  rl.NewRectangle(area.X, area.Y, area.Width, spaceH),
		Ground: rl.NewRectangle(area.X, area.Y+spaceH+gridGap, area.Width, area.Height-spaceH-gridGap),
	}
}

// careerArea is the column of the space area given to career index ci.
func (l skillLayout) careerArea(ci int) rl.Rectangle {
	w := l.Space.Width / 3
	return rl.NewRectangle(l.Space.X+w*float32(ci)+gridGap, l.Space.Y, w-2*gridGap, l.Space.Height)
}

func (l skillLayout) spaceCell(ci int) float32 {
	a := l.careerArea(ci)
	byWidth := (a.Width - columnGap - 5*gridGap) / skills.NodesPerRank
	// ranks plus the header, bonus bar and unlock rows
	byHeight := (a.Height - barHeight - 7*gridGap) / (skills.Ranks + 2)
	return min(byWidth, byHeight, maxCellSize)
}

func (l skillLayout) spaceNodeRect(ci, id int) rl.Rectangle {
	a := l.careerArea(ci)
	cell := l.spaceCell(ci)
	n := id % skills.NodesPerRank
	x := a.X + float32(n)*(cell+gridGap)
	if n >= skills.ColumnHeight {
		x += columnGap
	}
	y := a.Y + cell + float32(skills.RankOf(id))*(cell+gridGap)
	return rl.NewRectangle(x, y, cell, cell)
}

func (l skillLayout) barRect(ci int) rl.Rectangle {
	a := l.careerArea(ci)
	cell := l.spaceCell(ci)
	y := a.Y + cell + skills.Ranks*(cell+gridGap)
	w := float32(skills.NodesPerRank)*(cell+gridGap) + columnGap - gridGap
	return rl.NewRectangle(a.X, y, w, barHeight)
}

func (l skillLayout) unlockRect(ci, index int) rl.Rectangle {
	bar := l.barRect(ci)
	cell := l.spaceCell(ci)
	w := (bar.Width - float32(skills.UnlockSlots-1)*gridGap) / skills.UnlockSlots
	return rl.NewRectangle(bar.X+float32(index)*(w+gridGap), bar.Y+bar.Height+gridGap, w, cell*0.7)
}

func (l skillLayout) groundCell() float32 {
	g := l.Ground
	byWidth := (g.Width - 3*columnGap) / (skills.GroundGroups * 6)
	byHeight := (g.Height - barHeight - 3*gridGap) / 3
	return min(byWidth-gridGap, byHeight, maxCellSize)
}

func (l skillLayout) groundNodeRect(group, id int) rl.Rectangle {
	g := l.Ground
	groupW := (g.Width - 3*columnGap) / skills.GroundGroups
	cell := l.groundCell()
	x := g.X + float32(group)*(groupW+columnGap) + float32(id)*(cell+gridGap)
	return rl.NewRectangle(x, g.Y+cell*0.8, cell, cell)
}

func (l skillLayout) groundBarRect() rl.Rectangle {
	cell := l.groundCell()
	return rl.NewRectangle(l.Ground.X, l.Ground.Y+cell*1.8+gridGap, l.Ground.Width*0.5, barHeight)
}

func (l skillLayout) groundUnlockRect(index int) rl.Rectangle {
	bar := l.groundBarRect()
	cell := l.groundCell()
	w := (bar.Width - float32(skills.UnlockSlots-1)*gridGap) / skills.UnlockSlots
	return rl.NewRectangle(bar.X+float32(index)*(w+gridGap), bar.Y+bar.Height+gridGap, w, cell*0.7)
}

// targets lists every clickable element with its rectangle.
func (l skillLayout) targets() []placedTarget {
	out := make([]placedTarget, 0, 3*(skills.NodesPerCareer+skills.UnlockSlots)+20+skills.UnlockSlots)
	for ci, c := range skills.Careers() {
		for id := 0; id < skills.NodesPerCareer; id++ {
			out = append(out, placedTarget{skillTarget{Kind: targetSpaceNode, Career: c, ID: id}, l.spaceNodeRect(ci, id)})
		}
		for i := 0; i < skills.UnlockSlots; i++ {
			out = append(out, placedTarget{skillTarget{Kind: targetUnlock, Bar: skills.CareerBar(c), ID: i}, l.unlockRect(ci, i)})
		}
	}
	for g := 0; g < skills.GroundGroups; g++ {
		for id := 0; id < skills.GroundGroupSizes[g]; id++ {
			out = append(out, placedTarget{skillTarget{Kind: targetGroundNode, Group: g, ID: id}, l.groundNodeRect(g, id)})
		}
	}
	for i := 0; i < skills.UnlockSlots; i++ {
		out = append(out, placedTarget{skillTarget{Kind: targetUnlock, Bar: skills.BarGround, ID: i}, l.groundUnlockRect(i)})
	}
	return out
}

func (l skillLayout) at(x, y float32) (skillTarget, bool) {
	for _, p := range l.targets() {
		if contains(p.Rect, x, y) {
			return p.Target, true
		}
	}
	return skillTarget{}, false
}

func contains(r rl.Rectangle, x, y float32) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

func wrapIndex(i, size int) int {
	if size <= 0 {
		return 0
	}
	return ((i % size) + size) % size
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
