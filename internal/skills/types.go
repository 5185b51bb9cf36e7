package skills

import (
	"encoding/json"
	"fmt"
)

const (
	Ranks          = 5
	NodesPerRank   = 6
	NodesPerCareer = Ranks * NodesPerRank
	ColumnsPerRank = 2
	ColumnHeight   = 3

	SpaceSegments = 24
	UnlockSlots   = 5
	UltimateSlot  = UnlockSlots - 1

	GroundGroups   = 4
	GroundSegments = 10
	maxGroundNodes = 6
)

// GroundGroupSizes is the node count of each ground skill group.
var GroundGroupSizes = [GroundGroups]int{6, 6, 4, 4}

type Career string

const (
	Engineering Career = "eng"
	Science     Career = "sci"
	Tactical    Career = "tac"
)

func Careers() []Career {
	return []Career{Engineering, Science, Tactical}
}

func (c Career) Valid() bool {
	switch c {
	case Engineering, Science, Tactical:
		return true
	default:
		return false
	}
}

func (c Career) String() string {
	switch c {
	case Engineering:
		return "Engineering"
	case Science:
		return "Science"
	case Tactical:
		return "Tactical"
	default:
		return "Unknown"
	}
}

// Bar names one row of unlock slots: a space career or the ground tree.
type Bar string

const BarGround Bar = "ground"

func CareerBar(c Career) Bar {
	return Bar(c)
}

func (b Bar) Career() (Career, bool) {
	c := Career(b)
	return c, c.Valid()
}

func (b Bar) Valid() bool {
	if b == BarGround {
		return true
	}
	_, ok := b.Career()
	return ok
}

// Node coordinates within one career line.
func RankOf(id int) int     { return id / NodesPerRank }
func ColumnOf(id int) int   { return (id % NodesPerRank) / ColumnHeight }
func PositionOf(id int) int { return id % ColumnHeight }

type Space struct {
	Eng [NodesPerCareer]bool `json:"eng"`
	Sci [NodesPerCareer]bool `json:"sci"`
	Tac [NodesPerCareer]bool `json:"tac"`
}

func (s *Space) line(c Career) *[NodesPerCareer]bool {
	switch c {
	case Engineering:
		return &s.Eng
	case Science:
		return &s.Sci
	case Tactical:
		return &s.Tac
	default:
		return nil
	}
}

// Active reports whether a node is allocated; out of range ids are inactive.
func (s *Space) Active(c Career, id int) bool {
	line := s.line(c)
	if line == nil || id < 0 || id >= NodesPerCareer {
		return false
	}
	return line[id]
}

func (s *Space) CareerPoints(c Career) int {
	line := s.line(c)
	if line == nil {
		return 0
	}
	return countTrue(line[:])
}

// RankPoints sums allocated nodes per rank across all three careers.
func (s *Space) RankPoints() [Ranks]int {
	var out [Ranks]int
	for _, c := range Careers() {
		line := s.line(c)
		for id, on := range line {
			if on {
				out[RankOf(id)]++
			}
		}
	}
	return out
}

func (s *Space) Total() int {
	return countTrue(s.Eng[:]) + countTrue(s.Sci[:]) + countTrue(s.Tac[:])
}

// Ground holds the four ground groups. Groups 2 and 3 only use their first
// four entries; the JSON form keeps each group at its real length.
type Ground [GroundGroups][maxGroundNodes]bool

func (g *Ground) Active(group, id int) bool {
	if !groundNodeValid(group, id) {
		return false
	}
	return g[group][id]
}

func (g *Ground) Total() int {
	total := 0
	for group := range g {
		total += countTrue(g[group][:GroundGroupSizes[group]])
	}
	return total
}

func (g Ground) MarshalJSON() ([]byte, error) {
	out := make([][]bool, GroundGroups)
	for group := range g {
		out[group] = append([]bool(nil), g[group][:GroundGroupSizes[group]]...)
	}
	return json.Marshal(out)
}

func (g *Ground) UnmarshalJSON(data []byte) error {
	var raw [][]bool
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("ground skills: %w", err)
	}
	var out Ground
	for group := 0; group < GroundGroups && group < len(raw); group++ {
		n := min(len(raw[group]), GroundGroupSizes[group])
		copy(out[group][:n], raw[group][:n])
	}
	*g = out
	return nil
}

func groundNodeValid(group, id int) bool {
	if group < 0 || group >= GroundGroups {
		return false
	}
	return id >= 0 && id < GroundGroupSizes[group]
}

// Unlock is the state of one unlock slot. The zero value is Locked.
type Unlock int8

const (
	Locked Unlock = iota
	Undecided
	firstChoice
)

func Choice(n int) Unlock {
	if n < 0 {
		return Locked
	}
	return Unlock(n) + firstChoice
}

// Choice returns the chosen value when the slot holds one.
func (u Unlock) Choice() (int, bool) {
	if u < firstChoice {
		return 0, false
	}
	return int(u - firstChoice), true
}

func (u Unlock) IsLocked() bool { return u == Locked }

func (u Unlock) String() string {
	switch u {
	case Locked:
		return "locked"
	case Undecided:
		return "undecided"
	default:
		n, _ := u.Choice()
		return fmt.Sprintf("choice %d", n)
	}
}

func (u Unlock) MarshalJSON() ([]byte, error) {
	switch u {
	case Locked:
		return []byte("null"), nil
	case Undecided:
		return []byte("-1"), nil
	default:
		n, _ := u.Choice()
		return json.Marshal(n)
	}
}

func (u *Unlock) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*u = Locked
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("skill unlock: %w", err)
	}
	switch {
	case n == -1:
		*u = Undecided
	case n >= 0 && n <= 3:
		*u = Choice(n)
	default:
		*u = Locked
	}
	return nil
}

type Unlocks struct {
	Eng    [UnlockSlots]Unlock `json:"eng"`
	Sci    [UnlockSlots]Unlock `json:"sci"`
	Tac    [UnlockSlots]Unlock `json:"tac"`
	Ground [UnlockSlots]Unlock `json:"ground"`

	// parked ultimate choices per career; not saved
	parked [3]Unlock
}

func (u *Unlocks) held(c Career) *Unlock {
	for i, k := range Careers() {
		if k == c {
			return &u.parked[i]
		}
	}
	return new(Unlock)
}

// ClearSpace locks every career row.
func (u *Unlocks) ClearSpace() {
	u.Eng, u.Sci, u.Tac = [UnlockSlots]Unlock{}, [UnlockSlots]Unlock{}, [UnlockSlots]Unlock{}
	u.parked = [3]Unlock{}
}

func (u *Unlocks) ClearGround() {
	u.Ground = [UnlockSlots]Unlock{}
}

func (u *Unlocks) bar(b Bar) *[UnlockSlots]Unlock {
	switch b {
	case Bar(Engineering):
		return &u.Eng
	case Bar(Science):
		return &u.Sci
	case Bar(Tactical):
		return &u.Tac
	case BarGround:
		return &u.Ground
	default:
		return nil
	}
}

func (u *Unlocks) Get(b Bar, index int) (Unlock, bool) {
	row := u.bar(b)
	if row == nil || index < 0 || index >= UnlockSlots {
		return Locked, false
	}
	return row[index], true
}

func countTrue(values []bool) int {
	n := 0
	for _, v := range values {
		if v {
			n++
		}
	}
	return n
}
