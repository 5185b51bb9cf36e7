// Package compat decides which catalog items fit which build slots, and
// whether a copied slot may be pasted somewhere else.
package compat

import (
	"sort"

	"github.com/appengine-ltd/starbuild/internal/build"
	"github.com/appengine-ltd/starbuild/internal/catalog"
)

var specificConsoles = []build.Category{build.TacConsoles, build.EngConsoles, build.SciConsoles}

// Compatible reports whether an item recorded under a may sit in a slot of
// category b, or the other way round.
func Compatible(a, b build.Category) bool {
	if a == b {
		return true
	}
	return pairs(a, b) || pairs(b, a)
}

func pairs(a, b build.Category) bool {
	switch a {
	case build.ShipWeapon:
		return b == build.ForeWeapons || b == build.AftWeapons
	case build.UniConsoles:
		return b == build.TacConsoles || b == build.EngConsoles || b == build.SciConsoles
	default:
		return false
	}
}

// EffectiveCategories lists the catalog categories whose items may be
// picked for a slot category.
func EffectiveCategories(slot build.Category) []build.Category {
	switch slot {
	case build.ForeWeapons, build.AftWeapons:
		return []build.Category{slot, build.ShipWeapon}
	case build.TacConsoles, build.EngConsoles, build.SciConsoles:
		return []build.Category{slot, build.UniConsoles}
	case build.UniConsoles:
		return append([]build.Category{build.UniConsoles}, specificConsoles...)
	default:
		return []build.Category{slot}
	}
}

// Engine answers compatibility questions against whatever catalog snapshot
// the holder currently publishes.
type Engine struct {
	catalog *catalog.Holder
}

func New(h *catalog.Holder) *Engine {
	if h == nil {
		h = catalog.NewHolder()
	}
	return &Engine{catalog: h}
}

func (e *Engine) Snapshot() *catalog.Snapshot { return e.catalog.Current() }

func CanAssign(item catalog.Item, slot build.Category) bool {
	return item.Name != "" && Compatible(item.Category, slot)
}

// Resolve finds the catalog record for name among the categories that may
// fill slot.
func (e *Engine) Resolve(name string, slot build.Category) (catalog.Item, bool) {
	snap := e.Snapshot()
	for _, c := range EffectiveCategories(slot) {
		if it, ok := snap.Lookup(c, name); ok {
			return it, true
		}
	}
	return catalog.Item{}, false
}

// Candidates lists the item names that may be picked for slot, sorted.
func (e *Engine) Candidates(slot build.Category) []string {
	snap := e.Snapshot()
	seen := make(map[string]bool)
	var out []string
	for _, c := range EffectiveCategories(slot) {
		for _, name := range snap.Names(c) {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	sort.Strings(out)
	return out
}

// ModifierSet lists the modifiers valid for a slot category, including the
// ship_weapon pool for weapon slots.
func (e *Engine) ModifierSet(slot build.Category) []string {
	snap := e.Snapshot()
	seen := make(map[string]bool)
	var out []string
	for _, c := range modifierCategories(slot) {
		for _, m := range snap.Modifiers(c) {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	sort.Strings(out)
	return out
}

func modifierCategories(slot build.Category) []build.Category {
	switch slot {
	case build.ForeWeapons, build.AftWeapons:
		return []build.Category{slot, build.ShipWeapon}
	default:
		return []build.Category{slot}
	}
}

func (e *Engine) modifierValid(slot build.Category, m string) bool {
	snap := e.Snapshot()
	for _, c := range modifierCategories(slot) {
		if snap.ModifierValid(c, m) {
			return true
		}
	}
	return false
}

// Revalidate blanks every modifier that the destination category does not
// offer. The slot's length and order of modifiers are kept.
func (e *Engine) Revalidate(slot build.Slot, dst build.Category) build.Slot {
	out := slot.Clone()
	for i, m := range out.Modifiers {
		if m != "" && !e.modifierValid(dst, m) {
			out.Modifiers[i] = ""
		}
	}
	return out
}

// Clipboard is a copied slot together with the category it was copied as.
type Clipboard struct {
	Slot     build.Slot
	Category build.Category
}

func (c Clipboard) Empty() bool { return c.Slot.Empty() }

// Copy records a slot for pasting. The recorded category is the item's
// catalog category when known, so a ship_weapon copied from a fore slot can
// still be pasted aft.
func (e *Engine) Copy(slot build.Slot, from build.Category) Clipboard {
	category := from
	if it, ok := e.Resolve(slot.Item, from); ok {
		category = it.Category
	}
	return Clipboard{Slot: slot.Clone(), Category: category}
}

// Paste returns the slot to write into dst, or false when the categories
// are not compatible. Crossing categories re-checks the modifiers.
func (e *Engine) Paste(clip Clipboard, dst build.Category) (build.Slot, bool) {
	if clip.Empty() || !Compatible(clip.Category, dst) {
		return build.Slot{}, false
	}
	if clip.Category == dst {
		return clip.Slot.Clone(), true
	}
	return e.Revalidate(clip.Slot, dst), true
}
