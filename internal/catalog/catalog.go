// Package catalog holds the read-only item, modifier and ship data the
// editor picks from. A Snapshot never changes after it is built; a new
// download or cache read produces a new Snapshot that is swapped in whole.
package catalog

import (
	"sort"
	"strings"

	"github.com/appengine-ltd/starbuild/internal/build"
)

type Item struct {
	Name     string         `json:"name"`
	Category build.Category `json:"category"`
	Type     string         `json:"type,omitempty"`
	Rarity   string         `json:"rarity,omitempty"`
	Tooltip  string         `json:"tooltip,omitempty"`
}

type Modifier struct {
	Name     string         `json:"name"`
	Category build.Category `json:"category"`
	Epic     bool           `json:"epic,omitempty"`
}

// Ship carries the slot layout of one hull. Slot counts cap how many of the
// build's fixed slots are usable with this ship.
type Ship struct {
	Name         string `json:"name"`
	Tier         string `json:"tier,omitempty"`
	Description  string `json:"description,omitempty"`
	Fore         int    `json:"fore"`
	Aft          int    `json:"aft"`
	Devices      int    `json:"devices"`
	Hangars      int    `json:"hangars"`
	Tac          int    `json:"tac"`
	Eng          int    `json:"eng"`
	Sci          int    `json:"sci"`
	Uni          int    `json:"uni"`
	Experimental bool   `json:"experimental,omitempty"`
	SecDef       bool   `json:"sec_def,omitempty"`
}

// Limits converts the hull layout into per-category caps for validation.
func (s Ship) Limits() build.Limits {
	flag := func(v bool) int {
		if v {
			return 1
		}
		return 0
	}
	return build.Limits{
		build.ForeWeapons:  s.Fore,
		build.AftWeapons:   s.Aft,
		build.Devices:      s.Devices,
		build.Hangars:      s.Hangars,
		build.TacConsoles:  s.Tac,
		build.EngConsoles:  s.Eng,
		build.SciConsoles:  s.Sci,
		build.UniConsoles:  s.Uni,
		build.Experimental: flag(s.Experimental),
		build.SecDef:       flag(s.SecDef),
	}
}

type Snapshot struct {
	items     map[build.Category]map[string]Item
	byName    map[string]Item
	modifiers map[build.Category]map[string]Modifier
	ships     map[string]Ship
	names     []string
}

// NewSnapshot indexes the given records. Items without a category are
// classified from their type; items that still have none are dropped.
func NewSnapshot(items []Item, modifiers []Modifier, ships []Ship) *Snapshot {
	s := &Snapshot{
		items:     make(map[build.Category]map[string]Item),
		byName:    make(map[string]Item),
		modifiers: make(map[build.Category]map[string]Modifier),
		ships:     make(map[string]Ship),
	}
	for _, it := range items {
		it.Name = strings.TrimSpace(it.Name)
		if it.Category == "" {
			it.Category, _ = CategoryForType(it.Type)
		}
		if it.Name == "" || it.Category == "" {
			continue
		}
		bucket := s.items[it.Category]
		if bucket == nil {
			bucket = make(map[string]Item)
			s.items[it.Category] = bucket
		}
		bucket[it.Name] = it
		if _, seen := s.byName[it.Name]; !seen {
			s.names = append(s.names, it.Name)
		}
		s.byName[it.Name] = it
	}
	for _, m := range modifiers {
		m.Name = strings.TrimSpace(m.Name)
		if m.Name == "" || m.Category == "" {
			continue
		}
		bucket := s.modifiers[m.Category]
		if bucket == nil {
			bucket = make(map[string]Modifier)
			s.modifiers[m.Category] = bucket
		}
		bucket[m.Name] = m
	}
	for _, sh := range ships {
		sh.Name = strings.TrimSpace(sh.Name)
		if sh.Name != "" {
			s.ships[sh.Name] = sh
		}
	}
	sort.Strings(s.names)
	return s
}

func emptySnapshot() *Snapshot {
	return NewSnapshot(nil, nil, nil)
}

func (s *Snapshot) Len() int { return len(s.byName) }

// Lookup finds an item recorded under exactly this category.
func (s *Snapshot) Lookup(c build.Category, name string) (Item, bool) {
	it, ok := s.items[c][strings.TrimSpace(name)]
	return it, ok
}

// Find looks an item up by name regardless of category.
func (s *Snapshot) Find(name string) (Item, bool) {
	it, ok := s.byName[strings.TrimSpace(name)]
	return it, ok
}

func (s *Snapshot) Names(c build.Category) []string {
	out := make([]string, 0, len(s.items[c]))
	for name := range s.items[c] {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (s *Snapshot) Categories() []build.Category {
	out := make([]build.Category, 0, len(s.items))
	for c := range s.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *Snapshot) Modifiers(c build.Category) []string {
	out := make([]string, 0, len(s.modifiers[c]))
	for name := range s.modifiers[c] {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (s *Snapshot) ModifierValid(c build.Category, name string) bool {
	_, ok := s.modifiers[c][name]
	return ok
}

func (s *Snapshot) Ship(name string) (Ship, bool) {
	sh, ok := s.ships[strings.TrimSpace(name)]
	return sh, ok
}

func (s *Snapshot) Ships() []Ship {
	out := make([]Ship, 0, len(s.ships))
	for _, sh := range s.ships {
		out = append(out, sh)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// records flattens the snapshot back into lists for persistence.
func (s *Snapshot) records() ([]Item, []Modifier, []Ship) {
	var items []Item
	for _, c := range s.Categories() {
		for _, name := range s.Names(c) {
			items = append(items, s.items[c][name])
		}
	}
	var mods []Modifier
	cats := make([]build.Category, 0, len(s.modifiers))
	for c := range s.modifiers {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	for _, c := range cats {
		for _, name := range s.Modifiers(c) {
			mods = append(mods, s.modifiers[c][name])
		}
	}
	return items, mods, s.Ships()
}
