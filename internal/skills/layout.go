package skills

import "fmt"

// Grouping is the dependency shape of one three-node column.
type Grouping string

const (
	// GroupColumn chains the column: each position needs the one before it.
	GroupColumn Grouping = "column"
	// GroupPairPlusOne and GroupSeparate hang positions 1 and 2 off the root.
	GroupPairPlusOne Grouping = "pair+1"
	GroupSeparate    Grouping = "separate"
)

func (g Grouping) Valid() bool {
	switch g {
	case GroupColumn, GroupPairPlusOne, GroupSeparate:
		return true
	default:
		return false
	}
}

const (
	DefaultMaxSpacePoints  = 46
	DefaultMaxGroundPoints = 10
)

type Layout struct {
	RankThresholds  [Ranks]int
	Groupings       map[Career][Ranks * ColumnsPerRank]Grouping
	MaxSpacePoints  int
	MaxGroundPoints int
}

var defaultGroupings = [Ranks * ColumnsPerRank]Grouping{
	GroupColumn, GroupColumn,
	GroupColumn, GroupPairPlusOne,
	GroupSeparate, GroupColumn,
	GroupColumn, GroupPairPlusOne,
	GroupColumn, GroupSeparate,
}

func DefaultLayout() Layout {
	return Layout{
		RankThresholds: [Ranks]int{0, 5, 15, 25, 35},
		Groupings: map[Career][Ranks * ColumnsPerRank]Grouping{
			Engineering: defaultGroupings,
			Science:     defaultGroupings,
			Tactical:    defaultGroupings,
		},
		MaxSpacePoints:  DefaultMaxSpacePoints,
		MaxGroundPoints: DefaultMaxGroundPoints,
	}
}

// Validate checks a layout before an engine is built from it.
func (l Layout) Validate() error {
	prev := 0
	for rank, threshold := range l.RankThresholds {
		if threshold < prev {
			return fmt.Errorf("rank %d threshold %d below rank %d threshold %d", rank, threshold, rank-1, prev)
		}
		prev = threshold
	}
	if l.MaxSpacePoints <= 0 || l.MaxGroundPoints <= 0 {
		return fmt.Errorf("point ceilings must be positive")
	}
	if l.MaxGroundPoints > GroundSegments {
		return fmt.Errorf("ground ceiling %d exceeds the %d segment bar", l.MaxGroundPoints, GroundSegments)
	}
	for _, c := range Careers() {
		cols, ok := l.Groupings[c]
		if !ok {
			return fmt.Errorf("missing groupings for %s", c)
		}
		for i, g := range cols {
			if !g.Valid() {
				return fmt.Errorf("%s column %d: invalid grouping %q", c, i, g)
			}
		}
	}
	return nil
}

// GroupingOf returns the grouping governing a node; unknown careers fall
// back to a strict column.
func (l Layout) GroupingOf(c Career, id int) Grouping {
	cols, ok := l.Groupings[c]
	if !ok || id < 0 || id >= NodesPerCareer {
		return GroupColumn
	}
	return cols[RankOf(id)*ColumnsPerRank+ColumnOf(id)]
}
