package build

import (
	"github.com/appengine-ltd/starbuild/internal/skills"
)

type SpaceSection struct {
	Ship     string `json:"ship"`
	ShipName string `json:"ship_name"`
	ShipDesc string `json:"ship_desc"`
	Tier     string `json:"tier"`

	ForeWeapons     [5]Slot  `json:"fore_weapons"`
	AftWeapons      [5]Slot  `json:"aft_weapons"`
	Experimental    [1]Slot  `json:"experimental"`
	Devices         [6]Slot  `json:"devices"`
	Hangars         [2]Slot  `json:"hangars"`
	Deflector       [1]Slot  `json:"deflector"`
	SecDef          [1]Slot  `json:"sec_def"`
	Engines         [1]Slot  `json:"engines"`
	Core            [1]Slot  `json:"core"`
	Shield          [1]Slot  `json:"shield"`
	UniConsoles     [3]Slot  `json:"uni_consoles"`
	EngConsoles     [5]Slot  `json:"eng_consoles"`
	SciConsoles     [5]Slot  `json:"sci_consoles"`
	TacConsoles     [5]Slot  `json:"tac_consoles"`
	Traits          [12]Slot `json:"traits"`
	StarshipTraits  [7]Slot  `json:"starship_traits"`
	RepTraits       [5]Slot  `json:"rep_traits"`
	ActiveRepTraits [5]Slot  `json:"active_rep_traits"`

	Boffs        [SpaceBoffStations][BoffRanks]Slot `json:"boffs"`
	BoffSpecs    [SpaceBoffStations]string          `json:"boff_specs"`
	DoffsSpec    [DoffSlots]string                  `json:"doffs_spec"`
	DoffsVariant [DoffSlots]string                  `json:"doffs_variant"`
}

func (s *SpaceSection) slots(c Category) []Slot {
	switch c {
	case ForeWeapons:
		return s.ForeWeapons[:]
	case AftWeapons:
		return s.AftWeapons[:]
	case Experimental:
		return s.Experimental[:]
	case Devices:
		return s.Devices[:]
	case Hangars:
		return s.Hangars[:]
	case Deflector:
		return s.Deflector[:]
	case SecDef:
		return s.SecDef[:]
	case Engines:
		return s.Engines[:]
	case Core:
		return s.Core[:]
	case Shield:
		return s.Shield[:]
	case UniConsoles:
		return s.UniConsoles[:]
	case EngConsoles:
		return s.EngConsoles[:]
	case SciConsoles:
		return s.SciConsoles[:]
	case TacConsoles:
		return s.TacConsoles[:]
	case Traits:
		return s.Traits[:]
	case StarshipTraits:
		return s.StarshipTraits[:]
	case RepTraits:
		return s.RepTraits[:]
	case ActiveRepTraits:
		return s.ActiveRepTraits[:]
	default:
		return nil
	}
}

type GroundSection struct {
	GroundDesc string `json:"ground_desc"`

	Weapons         [2]Slot  `json:"weapons"`
	GroundDevices   [5]Slot  `json:"ground_devices"`
	Kit             [1]Slot  `json:"kit"`
	Armor           [1]Slot  `json:"armor"`
	KitModules      [6]Slot  `json:"kit_modules"`
	PersonalShield  [1]Slot  `json:"personal_shield"`
	EVSuit          [1]Slot  `json:"ev_suit"`
	Traits          [12]Slot `json:"traits"`
	RepTraits       [5]Slot  `json:"rep_traits"`
	ActiveRepTraits [5]Slot  `json:"active_rep_traits"`

	Boffs        [GroundBoffStations][BoffRanks]Slot `json:"boffs"`
	BoffProfs    [GroundBoffStations]string          `json:"boff_profs"`
	BoffSpecs    [GroundBoffStations]string          `json:"boff_specs"`
	DoffsSpec    [DoffSlots]string                   `json:"doffs_spec"`
	DoffsVariant [DoffSlots]string                   `json:"doffs_variant"`
}

func (g *GroundSection) slots(c Category) []Slot {
	switch c {
	case GroundWeapons:
		return g.Weapons[:]
	case GroundDevices:
		return g.GroundDevices[:]
	case Kit:
		return g.Kit[:]
	case Armor:
		return g.Armor[:]
	case KitModules:
		return g.KitModules[:]
	case PersonalShield:
		return g.PersonalShield[:]
	case EVSuit:
		return g.EVSuit[:]
	case Traits:
		return g.Traits[:]
	case RepTraits:
		return g.RepTraits[:]
	case ActiveRepTraits:
		return g.ActiveRepTraits[:]
	default:
		return nil
	}
}

type Captain struct {
	Name          string `json:"name"`
	Career        string `json:"career"`
	Faction       string `json:"faction"`
	Species       string `json:"species"`
	PrimarySpec   string `json:"primary_spec"`
	SecondarySpec string `json:"secondary_spec"`
	Elite         bool   `json:"elite"`
}

// CaptainFields lists the attribute names accepted by SetField.
var CaptainFields = []string{"name", "career", "faction", "species", "primary_spec", "secondary_spec", "elite"}

// SetField assigns one captain attribute. Elite takes a bool, the rest
// take strings.
func (c *Captain) SetField(field string, value any) bool {
	if field == "elite" {
		v, ok := value.(bool)
		if !ok {
			return false
		}
		c.Elite = v
		return true
	}
	v, ok := value.(string)
	if !ok {
		return false
	}
	switch field {
	case "name":
		c.Name = v
	case "career":
		c.Career = v
	case "faction":
		c.Faction = v
	case "species":
		c.Species = v
	case "primary_spec":
		c.PrimarySpec = v
	case "secondary_spec":
		c.SecondarySpec = v
	default:
		return false
	}
	return true
}

func (c Captain) Field(field string) (any, bool) {
	switch field {
	case "name":
		return c.Name, true
	case "career":
		return c.Career, true
	case "faction":
		return c.Faction, true
	case "species":
		return c.Species, true
	case "primary_spec":
		return c.PrimarySpec, true
	case "secondary_spec":
		return c.SecondarySpec, true
	case "elite":
		return c.Elite, true
	default:
		return nil, false
	}
}

type SkillDesc struct {
	Space  string `json:"space"`
	Ground string `json:"ground"`
}

// Build is the whole character build. Its JSON form is the save file.
type Build struct {
	Space        SpaceSection   `json:"space"`
	Ground       GroundSection  `json:"ground"`
	Captain      Captain        `json:"captain"`
	SpaceSkills  skills.Space   `json:"space_skills"`
	GroundSkills skills.Ground  `json:"ground_skills"`
	Unlocks      skills.Unlocks `json:"skill_unlocks"`
	SkillDesc    SkillDesc      `json:"skill_desc"`
}

func New() Build {
	return Build{}
}

// Slots returns the backing slot array for a category, sliced so writes go
// through to the build. Unknown environments or categories yield nil.
func (b *Build) Slots(env Environment, c Category) []Slot {
	switch env {
	case Space:
		return b.Space.slots(c)
	case Ground:
		return b.Ground.slots(c)
	default:
		return nil
	}
}

// Boffs returns the bridge officer grid of an environment.
func (b *Build) Boffs(env Environment) [][BoffRanks]Slot {
	switch env {
	case Space:
		return b.Space.Boffs[:]
	case Ground:
		return b.Ground.Boffs[:]
	default:
		return nil
	}
}

func (b *Build) BoffSpecs(env Environment) []string {
	switch env {
	case Space:
		return b.Space.BoffSpecs[:]
	case Ground:
		return b.Ground.BoffSpecs[:]
	default:
		return nil
	}
}

func (b *Build) Doffs(env Environment, field DoffField) []string {
	var section struct{ spec, variant []string }
	switch env {
	case Space:
		section.spec, section.variant = b.Space.DoffsSpec[:], b.Space.DoffsVariant[:]
	case Ground:
		section.spec, section.variant = b.Ground.DoffsSpec[:], b.Ground.DoffsVariant[:]
	default:
		return nil
	}
	switch field {
	case DoffSpec:
		return section.spec
	case DoffVariant:
		return section.variant
	default:
		return nil
	}
}

// Clone deep-copies the modifier slices so the copy shares nothing.
func (b Build) Clone() Build {
	out := b
	for _, env := range []Environment{Space, Ground} {
		for _, c := range Categories(env) {
			slots := out.Slots(env, c)
			for i := range slots {
				slots[i] = slots[i].Clone()
			}
		}
		grid := out.Boffs(env)
		for station := range grid {
			for rank := range grid[station] {
				grid[station][rank] = grid[station][rank].Clone()
			}
		}
	}
	return out
}

// HasEquipment reports whether any slot of the environment holds an item.
func (b *Build) HasEquipment(env Environment) bool {
	for _, c := range Categories(env) {
		for _, s := range b.Slots(env, c) {
			if !s.Empty() {
				return true
			}
		}
	}
	for _, station := range b.Boffs(env) {
		for _, s := range station {
			if !s.Empty() {
				return true
			}
		}
	}
	return false
}
