// Package editor is the surface the terminal, desktop and console front
// ends drive. It joins the build store with the catalog through the
// compatibility rules and owns the copy/paste clipboard.
package editor

import (
	"fmt"
	"strings"

	"github.com/appengine-ltd/starbuild/internal/build"
	"github.com/appengine-ltd/starbuild/internal/catalog"
	"github.com/appengine-ltd/starbuild/internal/compat"
	"github.com/appengine-ltd/starbuild/internal/store"
)

type Session struct {
	store  *store.Store
	compat *compat.Engine
	clip   compat.Clipboard
}

func NewSession(s *store.Store, holder *catalog.Holder) *Session {
	return &Session{store: s, compat: compat.New(holder)}
}

func (s *Session) Store() *store.Store { return s.store }

func (s *Session) Compat() *compat.Engine { return s.compat }

func (s *Session) Catalog() *catalog.Snapshot { return s.compat.Snapshot() }

func (s *Session) Clipboard() compat.Clipboard { return s.clip }

// Pick places a catalog item into a slot. The item must exist in one of the
// categories the slot accepts.
func (s *Session) Pick(env build.Environment, c build.Category, index int, name, mark string, modifiers ...string) bool {
	item, ok := s.compat.Resolve(name, c)
	if !ok || !compat.CanAssign(item, c) {
		return false
	}
	slot := s.compat.Revalidate(build.Equipment(item.Name, mark, modifiers...), c)
	if build.IsTraitCategory(c) {
		return s.store.SetTrait(env, c, index, slot)
	}
	return s.store.SetEquipment(env, c, index, slot)
}

// Unequip empties a slot.
func (s *Session) Unequip(env build.Environment, c build.Category, index int) bool {
	return s.store.SetEquipment(env, c, index, build.Slot{})
}

func (s *Session) Copy(env build.Environment, c build.Category, index int) bool {
	slot, ok := s.store.Equipment(env, c, index)
	if !ok || slot.Empty() {
		return false
	}
	s.clip = s.compat.Copy(slot, c)
	return true
}

// Paste writes the clipboard into a slot. Incompatible destinations are a
// silent no-op and do not touch the build.
func (s *Session) Paste(env build.Environment, c build.Category, index int) bool {
	if _, ok := s.store.Equipment(env, c, index); !ok {
		return false
	}
	slot, ok := s.compat.Paste(s.clip, c)
	if !ok {
		return false
	}
	return s.store.SetEquipment(env, c, index, slot)
}

// SelectShip picks a hull from the catalog. store.NoShip and "" clear it.
func (s *Session) SelectShip(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || name == store.NoShip {
		return s.store.SetShip(name, nil)
	}
	ship, ok := s.Catalog().Ship(name)
	if !ok {
		return false
	}
	return s.store.SetShip(ship.Name, &store.ShipRecord{
		Name:        ship.Name,
		Description: ship.Description,
		Tier:        ship.Tier,
	})
}

// Limits returns the selected ship's slot caps, or nil when the ship is not
// in the catalog.
func (s *Session) Limits() build.Limits {
	ship, ok := s.Catalog().Ship(s.store.Summary().Ship)
	if !ok {
		return nil
	}
	return ship.Limits()
}

// Validate adds catalog checks to the store's structural ones: items the
// loaded catalog does not know for their slot are reported.
func (s *Session) Validate() []build.Issue {
	issues := s.store.Validate(s.Limits())
	snap := s.Catalog()
	if snap.Len() == 0 {
		return issues
	}
	b := s.store.Build()
	for _, env := range []build.Environment{build.Space, build.Ground} {
		for _, c := range build.Categories(env) {
			for i, slot := range b.Slots(env, c) {
				if slot.Empty() {
					continue
				}
				if _, ok := s.compat.Resolve(slot.Item, c); !ok {
					issues = append(issues, build.Issue{
						Field:   fmt.Sprintf("%s.%s[%d]", env, c, i),
						Message: fmt.Sprintf("%q is not a known %s item", slot.Item, c),
					})
				}
			}
		}
	}
	if ship := b.Space.Ship; ship != "" {
		if _, ok := snap.Ship(ship); !ok {
			issues = append(issues, build.Issue{Field: "space.ship", Message: fmt.Sprintf("%q is not a known ship", ship)})
		}
	}
	return issues
}

// Search finds catalog items, narrowed to what a slot accepts when c is set.
func (s *Session) Search(query string, limit int, c build.Category) []catalog.Match {
	if c == "" {
		return s.Catalog().Search(query, limit)
	}
	return s.Catalog().Search(query, limit, compat.EffectiveCategories(c)...)
}
