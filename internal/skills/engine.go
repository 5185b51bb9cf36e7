package skills

type Direction int

const (
	Activate Direction = iota
	Deactivate
)

// SegmentIndexFor returns the bonus-bar segment whose fill changes when a
// point is added or removed. pointsAfter is the count once the toggle has
// been applied.
func SegmentIndexFor(pointsAfter int, dir Direction) int {
	if dir == Activate {
		return pointsAfter - 1
	}
	return pointsAfter
}

// EnhancementCount is the number of ultimate enhancements a career total
// grants: none at 24 or fewer points, then one per point up to three.
func EnhancementCount(careerPoints int) int {
	return min(max(careerPoints-SpaceSegments, 0), 3)
}

// Transition describes what a successful toggle changed.
type Transition struct {
	Direction Direction
	Points    int
	Segment   int
	// Unlock is the unlock slot index touched by the toggle, or -1.
	Unlock int
}

type Engine struct {
	layout Layout
}

// NewEngine builds an engine over layout. The ground ceiling is capped at
// the length of the ground bonus bar.
func NewEngine(layout Layout) *Engine {
	layout.MaxGroundPoints = min(layout.MaxGroundPoints, GroundSegments)
	return &Engine{layout: layout}
}

func (e *Engine) Layout() Layout {
	return e.layout
}

// CanSelectSpace reports whether an inactive node may be allocated.
func (e *Engine) CanSelectSpace(sp *Space, c Career, id int) bool {
	line := sp.line(c)
	if line == nil || id < 0 || id >= NodesPerCareer || line[id] {
		return false
	}
	if sp.Total() >= e.layout.MaxSpacePoints {
		return false
	}
	rank := RankOf(id)
	if pointsBelow(sp.RankPoints(), rank) < e.layout.RankThresholds[rank] {
		return false
	}
	pos := PositionOf(id)
	if pos == 0 {
		return true
	}
	if e.layout.GroupingOf(c, id) == GroupColumn {
		return line[id-1]
	}
	return line[id-pos]
}

// CanDeselectSpace reports whether an active node may be released without
// orphaning a dependent node or leaving a higher rank unpaid for.
func (e *Engine) CanDeselectSpace(sp *Space, c Career, id int) bool {
	line := sp.line(c)
	if line == nil || id < 0 || id >= NodesPerCareer || !line[id] {
		return false
	}
	for _, dep := range e.dependents(c, id) {
		if line[dep] {
			return false
		}
	}

	rankPoints := sp.RankPoints()
	total := sp.Total()
	rank := RankOf(id)
	below := pointsBelow(rankPoints, rank+1)
	for k := rank + 1; k < Ranks; k++ {
		if total-below > 0 && below-1 < e.layout.RankThresholds[k] {
			return false
		}
		below += rankPoints[k]
	}
	return true
}

func (e *Engine) dependents(c Career, id int) []int {
	pos := PositionOf(id)
	if pos == ColumnHeight-1 {
		return nil
	}
	if e.layout.GroupingOf(c, id) == GroupColumn {
		return []int{id + 1}
	}
	if pos == 0 {
		return []int{id + 1, id + 2}
	}
	return nil
}

// ToggleSpace flips a space node when the move is legal and keeps the
// career's unlock row in step with its point total.
func (e *Engine) ToggleSpace(sp *Space, un *Unlocks, c Career, id int) (Transition, bool) {
	line := sp.line(c)
	if line == nil || un == nil || id < 0 || id >= NodesPerCareer {
		return Transition{}, false
	}
	dir := Activate
	if line[id] {
		dir = Deactivate
		if !e.CanDeselectSpace(sp, c, id) {
			return Transition{}, false
		}
	} else if !e.CanSelectSpace(sp, c, id) {
		return Transition{}, false
	}

	line[id] = dir == Activate
	points := countTrue(line[:])
	tr := Transition{
		Direction: dir,
		Points:    points,
		Segment:   SegmentIndexFor(points, dir),
		Unlock:    applySpaceUnlock(un.bar(CareerBar(c)), un.held(c), points, dir),
	}
	return tr, true
}

func applySpaceUnlock(row *[UnlockSlots]Unlock, held *Unlock, points int, dir Direction) int {
	seg := SegmentIndexFor(points, dir)
	switch {
	case seg < 0:
		return -1
	case seg < SpaceSegments:
		if seg%5 == 4 {
			idx := (seg - 4) / 5
			if dir == Activate {
				row[idx] = Choice(0)
			} else {
				row[idx] = Locked
			}
			return idx
		}
		if seg == SpaceSegments-1 {
			if dir == Activate {
				row[UltimateSlot] = Undecided
			} else {
				row[UltimateSlot] = Locked
			}
			return UltimateSlot
		}
		return -1
	case seg <= SpaceSegments+2:
		row[UltimateSlot] = stepUltimate(row[UltimateSlot], held, points)
		return UltimateSlot
	default:
		return -1
	}
}

// stepUltimate moves the ultimate across the 24..27 point edges. A choice
// made at 25 or 26 points is parked in held when the total leaves that
// range and handed back when it returns, so a toggle and its reverse
// leave the slot as it was.
func stepUltimate(current Unlock, held *Unlock, points int) Unlock {
	next := ultimateFor(points)
	if n := EnhancementCount(points); n == 1 || n == 2 {
		if c, ok := current.Choice(); ok && c <= 2 {
			return current
		}
		if c, ok := held.Choice(); ok && c <= 2 {
			next = *held
		}
		*held = Locked
		return next
	}
	if c, ok := current.Choice(); ok && c > 0 && c <= 2 {
		*held = current
	}
	return next
}

func ultimateFor(points int) Unlock {
	switch EnhancementCount(points) {
	case 0:
		if points >= SpaceSegments {
			return Undecided
		}
		return Locked
	case 3:
		return Choice(3)
	default:
		return Choice(0)
	}
}

func (e *Engine) CanSelectGround(g *Ground, group, id int) bool {
	if !groundNodeValid(group, id) || g[group][id] {
		return false
	}
	if g.Total() >= e.layout.MaxGroundPoints {
		return false
	}
	switch {
	case id == 0:
		return true
	case id%2 == 1:
		return g[group][id-1]
	default:
		return g[group][0]
	}
}

func (e *Engine) CanDeselectGround(g *Ground, group, id int) bool {
	if !groundNodeValid(group, id) || !g[group][id] {
		return false
	}
	nodes := &g[group]
	if id == 0 {
		if nodes[1] || nodes[2] {
			return false
		}
		if GroundGroupSizes[group] > 4 && nodes[4] {
			return false
		}
		return true
	}
	if id%2 == 0 && nodes[id+1] {
		return false
	}
	return true
}

func (e *Engine) ToggleGround(g *Ground, un *Unlocks, group, id int) (Transition, bool) {
	if g == nil || un == nil || !groundNodeValid(group, id) {
		return Transition{}, false
	}
	dir := Activate
	if g[group][id] {
		dir = Deactivate
		if !e.CanDeselectGround(g, group, id) {
			return Transition{}, false
		}
	} else if !e.CanSelectGround(g, group, id) {
		return Transition{}, false
	}

	g[group][id] = dir == Activate
	points := g.Total()
	seg := SegmentIndexFor(points, dir)
	tr := Transition{Direction: dir, Points: points, Segment: seg, Unlock: -1}
	if seg%2 == 1 && seg < GroundSegments {
		idx := (seg - 1) / 2
		if dir == Activate {
			un.Ground[idx] = Choice(0)
		} else {
			un.Ground[idx] = Locked
		}
		tr.Unlock = idx
	}
	return tr, true
}

// ToggleUnlock flips the choice held by an already unlocked slot. Locked
// slots and an ultimate without a pending choice are left alone.
func (e *Engine) ToggleUnlock(sp *Space, un *Unlocks, b Bar, index int) bool {
	if sp == nil || un == nil {
		return false
	}
	row := un.bar(b)
	if row == nil || index < 0 || index >= UnlockSlots {
		return false
	}
	current, chosen := row[index].Choice()
	if !chosen {
		return false
	}
	if b == BarGround || index < UltimateSlot {
		row[index] = Choice(1 - min(current, 1))
		return true
	}
	c, _ := b.Career()
	switch points := sp.CareerPoints(c); EnhancementCount(points) {
	case 1, 2:
		row[index] = Choice((current + 1) % 3)
		return true
	default:
		return false
	}
}

// SpaceSegmentsFilled reports the fill state of a career's bonus bar.
func SpaceSegmentsFilled(sp *Space, c Career) [SpaceSegments]bool {
	var out [SpaceSegments]bool
	points := sp.CareerPoints(c)
	for i := 0; i < SpaceSegments && i < points; i++ {
		out[i] = true
	}
	return out
}

func GroundSegmentsFilled(g *Ground) [GroundSegments]bool {
	var out [GroundSegments]bool
	points := g.Total()
	for i := 0; i < GroundSegments && i < points; i++ {
		out[i] = true
	}
	return out
}

func pointsBelow(rankPoints [Ranks]int, rank int) int {
	sum := 0
	for r := 0; r < rank && r < Ranks; r++ {
		sum += rankPoints[r]
	}
	return sum
}
