package skills

import (
	"math/rand/v2"
	"testing"
)

func testLayout() Layout {
	l := DefaultLayout()
	l.RankThresholds = [Ranks]int{0, 6, 12, 18, 24}
	return l
}

func TestSegmentIndexFor(t *testing.T) {
	tests := []struct {
		points int
		dir    Direction
		want   int
	}{
		{points: 1, dir: Activate, want: 0},
		{points: 24, dir: Activate, want: 23},
		{points: 0, dir: Deactivate, want: 0},
		{points: 23, dir: Deactivate, want: 23},
	}
	for _, tc := range tests {
		if got := SegmentIndexFor(tc.points, tc.dir); got != tc.want {
			t.Fatalf("SegmentIndexFor(%d, %v)=%d want=%d", tc.points, tc.dir, got, tc.want)
		}
	}
}

func TestRankGateNeedsPointsInLowerRanks(t *testing.T) {
	e := NewEngine(testLayout())
	var sp Space
	var un Unlocks

	// Five points in rank 0: both columns of the first rank minus one node.
	for _, id := range []int{0, 1, 2, 3, 4} {
		if _, ok := e.ToggleSpace(&sp, &un, Engineering, id); !ok {
			t.Fatalf("expected node %d to activate", id)
		}
	}
	if _, ok := e.ToggleSpace(&sp, &un, Engineering, 6); ok {
		t.Fatalf("expected rank 1 node to stay locked with 5 points spent")
	}
	if _, ok := e.ToggleSpace(&sp, &un, Engineering, 5); !ok {
		t.Fatalf("expected sixth rank 0 node to activate")
	}
	if _, ok := e.ToggleSpace(&sp, &un, Engineering, 6); !ok {
		t.Fatalf("expected rank 1 node to unlock after 6 points")
	}
}

func TestRankGateCountsOtherCareers(t *testing.T) {
	e := NewEngine(testLayout())
	var sp Space
	var un Unlocks
	for _, id := range []int{0, 1, 2} {
		e.ToggleSpace(&sp, &un, Engineering, id)
		e.ToggleSpace(&sp, &un, Science, id)
	}
	if _, ok := e.ToggleSpace(&sp, &un, Tactical, 6); !ok {
		t.Fatalf("expected rank gate to use points from every career")
	}
}

func TestColumnPositionNeedsPredecessor(t *testing.T) {
	e := NewEngine(testLayout())
	var sp Space
	var un Unlocks
	if _, ok := e.ToggleSpace(&sp, &un, Tactical, 1); ok {
		t.Fatalf("expected position 1 to need position 0")
	}
	e.ToggleSpace(&sp, &un, Tactical, 0)
	if _, ok := e.ToggleSpace(&sp, &un, Tactical, 2); ok {
		t.Fatalf("expected column position 2 to need position 1")
	}
	if _, ok := e.ToggleSpace(&sp, &un, Tactical, 1); !ok {
		t.Fatalf("expected position 1 after root")
	}
	if _, ok := e.ToggleSpace(&sp, &un, Tactical, 0); ok {
		t.Fatalf("expected root to stay while position 1 is active")
	}
}

func TestNonColumnGroupingHangsOffRoot(t *testing.T) {
	l := testLayout()
	cols := l.Groupings[Science]
	cols[0] = GroupSeparate
	l.Groupings[Science] = cols
	e := NewEngine(l)
	var sp Space
	var un Unlocks

	e.ToggleSpace(&sp, &un, Science, 0)
	if _, ok := e.ToggleSpace(&sp, &un, Science, 2); !ok {
		t.Fatalf("expected position 2 to depend only on the root")
	}
	if _, ok := e.ToggleSpace(&sp, &un, Science, 0); ok {
		t.Fatalf("expected root to stay while position 2 is active")
	}
	if _, ok := e.ToggleSpace(&sp, &un, Science, 2); !ok {
		t.Fatalf("expected position 2 to release")
	}
	if _, ok := e.ToggleSpace(&sp, &un, Science, 0); !ok {
		t.Fatalf("expected root to release once dependents are gone")
	}
}

func TestDeselectRefusesToStrandHigherRank(t *testing.T) {
	e := NewEngine(testLayout())
	var sp Space
	var un Unlocks
	for id := 0; id < 6; id++ {
		e.ToggleSpace(&sp, &un, Engineering, id)
	}
	if _, ok := e.ToggleSpace(&sp, &un, Engineering, 6); !ok {
		t.Fatalf("expected rank 1 node")
	}
	if _, ok := e.ToggleSpace(&sp, &un, Engineering, 5); ok {
		t.Fatalf("expected rank 0 release to be refused while rank 1 is paid for by it")
	}
	e.ToggleSpace(&sp, &un, Engineering, 6)
	if _, ok := e.ToggleSpace(&sp, &un, Engineering, 5); !ok {
		t.Fatalf("expected rank 0 release once rank 1 is empty")
	}
}

func TestSpaceCeiling(t *testing.T) {
	l := testLayout()
	l.MaxSpacePoints = 3
	e := NewEngine(l)
	var sp Space
	var un Unlocks
	for _, id := range []int{0, 1, 2} {
		e.ToggleSpace(&sp, &un, Engineering, id)
	}
	if _, ok := e.ToggleSpace(&sp, &un, Science, 0); ok {
		t.Fatalf("expected ceiling to block a fourth point")
	}
}

// fillCareer allocates nodes in index order until the career has n points.
func fillCareer(t *testing.T, e *Engine, sp *Space, un *Unlocks, c Career, n int) {
	t.Helper()
	for id := 0; id < NodesPerCareer && sp.CareerPoints(c) < n; id++ {
		if sp.Active(c, id) {
			continue
		}
		if _, ok := e.ToggleSpace(sp, un, c, id); !ok {
			t.Fatalf("fill %s: node %d refused at %d points", c, id, sp.CareerPoints(c))
		}
	}
	if sp.CareerPoints(c) != n {
		t.Fatalf("fill %s: got %d points want %d", c, sp.CareerPoints(c), n)
	}
}

func TestSpaceUnlockThresholds(t *testing.T) {
	e := NewEngine(testLayout())
	var sp Space
	var un Unlocks

	steps := []struct {
		points int
		slot   int
	}{{5, 0}, {10, 1}, {15, 2}, {20, 3}}
	for _, step := range steps {
		fillCareer(t, e, &sp, &un, Tactical, step.points-1)
		if !un.Tac[step.slot].IsLocked() {
			t.Fatalf("slot %d unlocked early at %d points", step.slot, step.points-1)
		}
		fillCareer(t, e, &sp, &un, Tactical, step.points)
		if un.Tac[step.slot] != Choice(0) {
			t.Fatalf("slot %d: got %v at %d points", step.slot, un.Tac[step.slot], step.points)
		}
	}

	fillCareer(t, e, &sp, &un, Tactical, 23)
	if !un.Tac[UltimateSlot].IsLocked() {
		t.Fatalf("ultimate unlocked early")
	}
	fillCareer(t, e, &sp, &un, Tactical, 24)
	if un.Tac[UltimateSlot] != Undecided {
		t.Fatalf("expected undecided ultimate at 24 points, got %v", un.Tac[UltimateSlot])
	}
}

func TestUltimateEnhancementsFollowPoints(t *testing.T) {
	l := testLayout()
	l.MaxSpacePoints = NodesPerCareer
	e := NewEngine(l)
	var sp Space
	var un Unlocks

	fillCareer(t, e, &sp, &un, Engineering, 25)
	if un.Eng[UltimateSlot] != Choice(0) || EnhancementCount(25) != 1 {
		t.Fatalf("expected first enhancement choice at 25, got %v", un.Eng[UltimateSlot])
	}
	if !e.ToggleUnlock(&sp, &un, Bar(Engineering), UltimateSlot) || un.Eng[UltimateSlot] != Choice(1) {
		t.Fatalf("expected ultimate choice to cycle, got %v", un.Eng[UltimateSlot])
	}
	fillCareer(t, e, &sp, &un, Engineering, 27)
	if un.Eng[UltimateSlot] != Choice(3) {
		t.Fatalf("expected all enhancements at 27, got %v", un.Eng[UltimateSlot])
	}
	if e.ToggleUnlock(&sp, &un, Bar(Engineering), UltimateSlot) {
		t.Fatalf("expected no choice with all enhancements")
	}

	last := lastActive(&sp, Engineering)
	if _, ok := e.ToggleSpace(&sp, &un, Engineering, last); !ok {
		t.Fatalf("expected last node %d to release", last)
	}
	if un.Eng[UltimateSlot] != Choice(1) {
		t.Fatalf("expected the choice made at 25 back at 26, got %v", un.Eng[UltimateSlot])
	}
}

func lastActive(sp *Space, c Career) int {
	line := sp.line(c)
	for id := NodesPerCareer - 1; id >= 0; id-- {
		if line[id] {
			return id
		}
	}
	return -1
}

func TestUltimateChoiceSurvivesPointEdges(t *testing.T) {
	l := testLayout()
	l.MaxSpacePoints = NodesPerCareer
	e := NewEngine(l)
	var sp Space
	var un Unlocks

	fillCareer(t, e, &sp, &un, Tactical, 25)
	e.ToggleUnlock(&sp, &un, Bar(Tactical), UltimateSlot)
	e.ToggleUnlock(&sp, &un, Bar(Tactical), UltimateSlot)
	if un.Tac[UltimateSlot] != Choice(2) {
		t.Fatalf("setup: ultimate=%v", un.Tac[UltimateSlot])
	}

	// 25 -> 26 -> 25
	fillCareer(t, e, &sp, &un, Tactical, 26)
	if un.Tac[UltimateSlot] != Choice(2) {
		t.Fatalf("select at 25 reset the choice: %v", un.Tac[UltimateSlot])
	}
	e.ToggleSpace(&sp, &un, Tactical, lastActive(&sp, Tactical))
	if un.Tac[UltimateSlot] != Choice(2) {
		t.Fatalf("deselect to 25 reset the choice: %v", un.Tac[UltimateSlot])
	}

	// 25 -> 24 -> 25
	id := lastActive(&sp, Tactical)
	e.ToggleSpace(&sp, &un, Tactical, id)
	if un.Tac[UltimateSlot] != Undecided {
		t.Fatalf("ultimate at 24=%v", un.Tac[UltimateSlot])
	}
	e.ToggleSpace(&sp, &un, Tactical, id)
	if un.Tac[UltimateSlot] != Choice(2) {
		t.Fatalf("choice lost crossing 24: %v", un.Tac[UltimateSlot])
	}

	// 26 -> 27 -> 26
	fillCareer(t, e, &sp, &un, Tactical, 26)
	e.ToggleUnlock(&sp, &un, Bar(Tactical), UltimateSlot)
	e.ToggleUnlock(&sp, &un, Bar(Tactical), UltimateSlot)
	fillCareer(t, e, &sp, &un, Tactical, 27)
	if un.Tac[UltimateSlot] != Choice(3) {
		t.Fatalf("ultimate at 27=%v", un.Tac[UltimateSlot])
	}
	e.ToggleSpace(&sp, &un, Tactical, lastActive(&sp, Tactical))
	if un.Tac[UltimateSlot] != Choice(1) {
		t.Fatalf("choice lost crossing 27: %v", un.Tac[UltimateSlot])
	}
}

func TestDeactivationRelocksUnlock(t *testing.T) {
	e := NewEngine(testLayout())
	var sp Space
	var un Unlocks
	fillCareer(t, e, &sp, &un, Science, 5)
	if un.Sci[0] != Choice(0) {
		t.Fatalf("expected slot 0 unlocked")
	}
	if !e.ToggleUnlock(&sp, &un, Bar(Science), 0) || un.Sci[0] != Choice(1) {
		t.Fatalf("expected slot 0 to flip")
	}
	tr, ok := e.ToggleSpace(&sp, &un, Science, 4)
	if !ok {
		t.Fatalf("expected node 4 to release")
	}
	if tr.Segment != 4 || tr.Unlock != 0 {
		t.Fatalf("unexpected transition %+v", tr)
	}
	if !un.Sci[0].IsLocked() {
		t.Fatalf("expected slot 0 to relock, got %v", un.Sci[0])
	}
	if e.ToggleUnlock(&sp, &un, Bar(Science), 0) {
		t.Fatalf("expected toggling a locked slot to be refused")
	}
}

func TestSelectThenDeselectRestoresBaseline(t *testing.T) {
	l := DefaultLayout()
	e := NewEngine(l)
	rng := rand.New(rand.NewPCG(7, 11))

	for walk := 0; walk < 40; walk++ {
		var sp Space
		var un Unlocks
		for step := 0; step < 80; step++ {
			c := Tactical
			if rng.IntN(4) == 0 {
				c = Careers()[rng.IntN(3)]
			}
			if rng.IntN(3) == 0 {
				e.ToggleUnlock(&sp, &un, CareerBar(c), rng.IntN(UnlockSlots))
			}
			var legal []int
			for id := 0; id < NodesPerCareer; id++ {
				if e.CanSelectSpace(&sp, c, id) {
					legal = append(legal, id)
				}
			}
			if len(legal) == 0 {
				continue
			}
			id := legal[rng.IntN(len(legal))]
			baseSpace, baseUnlocks := sp, un
			if _, ok := e.ToggleSpace(&sp, &un, c, id); !ok {
				t.Fatalf("walk %d: legal select of %s/%d refused", walk, c, id)
			}
			if _, ok := e.ToggleSpace(&sp, &un, c, id); !ok {
				t.Fatalf("walk %d: immediate release of %s/%d refused", walk, c, id)
			}
			if sp != baseSpace || un != baseUnlocks {
				t.Fatalf("walk %d: state drifted after toggling %s/%d twice: %v -> %v",
					walk, c, id, baseUnlocks.Tac, un.Tac)
			}
			e.ToggleSpace(&sp, &un, c, id)
			if issues := e.Check(&sp, &Ground{}, &un); len(issues) > 0 {
				t.Fatalf("walk %d: legal moves produced issues: %v", walk, issues)
			}
		}
	}
}

func TestGroundPairing(t *testing.T) {
	e := NewEngine(DefaultLayout())
	var g Ground
	var un Unlocks

	if _, ok := e.ToggleGround(&g, &un, 0, 1); ok {
		t.Fatalf("expected node 1 to need node 0")
	}
	if _, ok := e.ToggleGround(&g, &un, 0, 0); !ok {
		t.Fatalf("expected root to activate")
	}
	if _, ok := e.ToggleGround(&g, &un, 0, 1); !ok {
		t.Fatalf("expected node 1 after root")
	}
	if _, ok := e.ToggleGround(&g, &un, 0, 0); ok {
		t.Fatalf("expected root to stay while node 1 is active")
	}
	if _, ok := e.ToggleGround(&g, &un, 0, 1); !ok {
		t.Fatalf("expected node 1 to release")
	}
	if _, ok := e.ToggleGround(&g, &un, 0, 0); !ok {
		t.Fatalf("expected root to release")
	}
}

func TestGroundFanOutAndSmallGroups(t *testing.T) {
	e := NewEngine(DefaultLayout())
	var g Ground
	var un Unlocks

	if _, ok := e.ToggleGround(&g, &un, 2, 4); ok {
		t.Fatalf("expected node 4 to be out of range for a four node group")
	}
	e.ToggleGround(&g, &un, 1, 0)
	if _, ok := e.ToggleGround(&g, &un, 1, 4); !ok {
		t.Fatalf("expected node 4 to hang off the root")
	}
	if _, ok := e.ToggleGround(&g, &un, 1, 0); ok {
		t.Fatalf("expected root to stay while node 4 is active")
	}
	e.ToggleGround(&g, &un, 1, 5)
	if _, ok := e.ToggleGround(&g, &un, 1, 4); ok {
		t.Fatalf("expected node 4 to stay while node 5 is active")
	}
}

func TestGroundBudgetAndUnlocks(t *testing.T) {
	e := NewEngine(DefaultLayout())
	var g Ground
	var un Unlocks

	order := [][2]int{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}, {0, 5}, {1, 0}, {1, 1}, {2, 0}, {2, 1}}
	for i, node := range order {
		tr, ok := e.ToggleGround(&g, &un, node[0], node[1])
		if !ok {
			t.Fatalf("expected ground node %v to activate", node)
		}
		if tr.Segment != i {
			t.Fatalf("expected segment %d, got %d", i, tr.Segment)
		}
	}
	for i := 0; i < UnlockSlots; i++ {
		if un.Ground[i] != Choice(0) {
			t.Fatalf("expected ground unlock %d open, got %v", i, un.Ground[i])
		}
	}
	if _, ok := e.ToggleGround(&g, &un, 3, 0); ok {
		t.Fatalf("expected ground budget to cap at 10")
	}
	if !e.ToggleUnlock(&Space{}, &un, BarGround, 2) || un.Ground[2] != Choice(1) {
		t.Fatalf("expected ground unlock to flip")
	}
	e.ToggleGround(&g, &un, 2, 1)
	if !un.Ground[4].IsLocked() {
		t.Fatalf("expected last ground unlock to relock, got %v", un.Ground[4])
	}
	if e.ToggleUnlock(&Space{}, &un, BarGround, 4) {
		t.Fatalf("expected locked ground slot to ignore toggles")
	}
}

func TestReconcileRepairsDrift(t *testing.T) {
	e := NewEngine(testLayout())
	var sp Space
	var un Unlocks
	fillCareer(t, e, &sp, &un, Engineering, 10)
	un.Eng[3] = Choice(1)
	un.Eng[0] = Choice(1)
	un.Ground[0] = Choice(0)

	if issues := e.Check(&sp, &Ground{}, &un); len(issues) == 0 {
		t.Fatalf("expected drift to be reported")
	}
	Reconcile(&sp, &Ground{}, &un)
	if !un.Eng[3].IsLocked() || !un.Ground[0].IsLocked() {
		t.Fatalf("expected unreachable slots to relock: %+v", un)
	}
	if un.Eng[0] != Choice(1) {
		t.Fatalf("expected valid choice to survive, got %v", un.Eng[0])
	}
	if issues := e.Check(&sp, &Ground{}, &un); len(issues) > 0 {
		t.Fatalf("expected clean state after reconcile: %v", issues)
	}
}

func TestGroundOverBudgetDeselectSkipsUnlocks(t *testing.T) {
	e := NewEngine(DefaultLayout())
	var g Ground
	var un Unlocks
	for group := 0; group < GroundGroups; group++ {
		for id := 0; id < GroundGroupSizes[group]; id++ {
			g[group][id] = true
		}
	}
	Reconcile(&Space{}, &g, &un)
	tr, ok := e.ToggleGround(&g, &un, 0, 5)
	if !ok || tr.Segment != 19 || tr.Unlock != -1 {
		t.Fatalf("transition=%+v ok=%v", tr, ok)
	}
	for i, u := range un.Ground {
		if u.IsLocked() {
			t.Fatalf("slot %d relocked by an over-budget deselect", i)
		}
	}
}

func TestNewEngineCapsGroundCeiling(t *testing.T) {
	l := DefaultLayout()
	l.MaxGroundPoints = 25
	if err := l.Validate(); err == nil {
		t.Fatalf("ground ceiling above the bar accepted")
	}
	if got := NewEngine(l).Layout().MaxGroundPoints; got != GroundSegments {
		t.Fatalf("ground ceiling=%d", got)
	}
}
