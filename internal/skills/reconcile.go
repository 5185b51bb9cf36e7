package skills

import "fmt"

// Reconcile rewrites the unlock rows so they agree with the allocated
// points. Stored choices survive when the slot is still unlocked and the
// choice is valid for it.
func Reconcile(sp *Space, g *Ground, un *Unlocks) {
	for _, c := range Careers() {
		row := un.bar(CareerBar(c))
		*row = expectedSpaceRow(*row, sp.CareerPoints(c))
	}
	un.Ground = expectedGroundRow(un.Ground, g.Total())
}

func expectedSpaceRow(current [UnlockSlots]Unlock, points int) [UnlockSlots]Unlock {
	var out [UnlockSlots]Unlock
	for i := 0; i < UltimateSlot; i++ {
		if points < 5*(i+1) {
			continue
		}
		out[i] = Choice(0)
		if n, ok := current[i].Choice(); ok && n <= 1 {
			out[i] = current[i]
		}
	}
	out[UltimateSlot] = ultimateFor(points)
	if n := EnhancementCount(points); n == 1 || n == 2 {
		if c, ok := current[UltimateSlot].Choice(); ok && c <= 2 {
			out[UltimateSlot] = current[UltimateSlot]
		}
	}
	return out
}

func expectedGroundRow(current [UnlockSlots]Unlock, points int) [UnlockSlots]Unlock {
	var out [UnlockSlots]Unlock
	for i := range out {
		if points < 2*(i+1) {
			continue
		}
		out[i] = Choice(0)
		if n, ok := current[i].Choice(); ok && n <= 1 {
			out[i] = current[i]
		}
	}
	return out
}

// Check lists allocations and unlock states that no sequence of legal
// toggles could have produced.
func (e *Engine) Check(sp *Space, g *Ground, un *Unlocks) []string {
	var issues []string

	if total := sp.Total(); total > e.layout.MaxSpacePoints {
		issues = append(issues, fmt.Sprintf("space skills: %d points exceed the %d point ceiling", total, e.layout.MaxSpacePoints))
	}
	rankPoints := sp.RankPoints()
	for rank := 1; rank < Ranks; rank++ {
		if rankPoints[rank] > 0 && pointsBelow(rankPoints, rank) < e.layout.RankThresholds[rank] {
			issues = append(issues, fmt.Sprintf("space skills: rank %d allocated with only %d points below it (needs %d)",
				rank+1, pointsBelow(rankPoints, rank), e.layout.RankThresholds[rank]))
		}
	}
	for _, c := range Careers() {
		line := sp.line(c)
		for id, on := range line {
			if !on || PositionOf(id) == 0 {
				continue
			}
			pred := id - PositionOf(id)
			if e.layout.GroupingOf(c, id) == GroupColumn {
				pred = id - 1
			}
			if !line[pred] {
				issues = append(issues, fmt.Sprintf("space skills: %s node %d active without node %d", c, id, pred))
			}
		}
		row := un.bar(CareerBar(c))
		if want := expectedSpaceRow(*row, sp.CareerPoints(c)); want != *row {
			issues = append(issues, fmt.Sprintf("skill unlocks: %s row does not match %d points", c, sp.CareerPoints(c)))
		}
	}

	if total := g.Total(); total > e.layout.MaxGroundPoints {
		issues = append(issues, fmt.Sprintf("ground skills: %d points exceed the %d point ceiling", total, e.layout.MaxGroundPoints))
	}
	for group := 0; group < GroundGroups; group++ {
		for id := 1; id < GroundGroupSizes[group]; id++ {
			if !g[group][id] {
				continue
			}
			need := 0
			if id%2 == 1 {
				need = id - 1
			}
			if !g[group][need] {
				issues = append(issues, fmt.Sprintf("ground skills: group %d node %d active without node %d", group, id, need))
			}
		}
	}
	if want := expectedGroundRow(un.Ground, g.Total()); want != un.Ground {
		issues = append(issues, fmt.Sprintf("skill unlocks: ground row does not match %d points", g.Total()))
	}
	return issues
}
