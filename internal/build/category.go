package build

type Environment string

const (
	Space  Environment = "space"
	Ground Environment = "ground"
)

func (e Environment) Valid() bool {
	return e == Space || e == Ground
}

// Category names a slot array in the build, or a catalog grouping.
type Category string

const (
	ForeWeapons     Category = "fore_weapons"
	AftWeapons      Category = "aft_weapons"
	Experimental    Category = "experimental"
	Devices         Category = "devices"
	Hangars         Category = "hangars"
	Deflector       Category = "deflector"
	SecDef          Category = "sec_def"
	Engines         Category = "engines"
	Core            Category = "core"
	Shield          Category = "shield"
	UniConsoles     Category = "uni_consoles"
	EngConsoles     Category = "eng_consoles"
	SciConsoles     Category = "sci_consoles"
	TacConsoles     Category = "tac_consoles"
	Traits          Category = "traits"
	StarshipTraits  Category = "starship_traits"
	RepTraits       Category = "rep_traits"
	ActiveRepTraits Category = "active_rep_traits"

	GroundWeapons  Category = "weapons"
	GroundDevices  Category = "ground_devices"
	Kit            Category = "kit"
	Armor          Category = "armor"
	KitModules     Category = "kit_modules"
	PersonalShield Category = "personal_shield"
	EVSuit         Category = "ev_suit"

	// ShipWeapon is a catalog grouping for weapons that fit fore or aft.
	ShipWeapon Category = "ship_weapon"
)

var spaceSlotLengths = map[Category]int{
	ForeWeapons:     5,
	AftWeapons:      5,
	Experimental:    1,
	Devices:         6,
	Hangars:         2,
	Deflector:       1,
	SecDef:          1,
	Engines:         1,
	Core:            1,
	Shield:          1,
	UniConsoles:     3,
	EngConsoles:     5,
	SciConsoles:     5,
	TacConsoles:     5,
	Traits:          12,
	StarshipTraits:  7,
	RepTraits:       5,
	ActiveRepTraits: 5,
}

var groundSlotLengths = map[Category]int{
	GroundWeapons:   2,
	GroundDevices:   5,
	Kit:             1,
	Armor:           1,
	KitModules:      6,
	PersonalShield:  1,
	EVSuit:          1,
	Traits:          12,
	RepTraits:       5,
	ActiveRepTraits: 5,
}

var spaceOrder = []Category{
	ForeWeapons, AftWeapons, Experimental, Devices, Hangars, Deflector, SecDef,
	Engines, Core, Shield, UniConsoles, EngConsoles, SciConsoles, TacConsoles,
	Traits, StarshipTraits, RepTraits, ActiveRepTraits,
}

var groundOrder = []Category{
	GroundWeapons, GroundDevices, Kit, Armor, KitModules, PersonalShield, EVSuit,
	Traits, RepTraits, ActiveRepTraits,
}

// Categories lists the slot arrays of an environment in display order.
func Categories(env Environment) []Category {
	switch env {
	case Space:
		return append([]Category(nil), spaceOrder...)
	case Ground:
		return append([]Category(nil), groundOrder...)
	default:
		return nil
	}
}

// SlotCount is the fixed length of a slot array, or 0 when the environment
// has no such category.
func SlotCount(env Environment, c Category) int {
	switch env {
	case Space:
		return spaceSlotLengths[c]
	case Ground:
		return groundSlotLengths[c]
	default:
		return 0
	}
}

func IsTraitCategory(c Category) bool {
	switch c {
	case Traits, StarshipTraits, RepTraits, ActiveRepTraits:
		return true
	default:
		return false
	}
}

func IsConsole(c Category) bool {
	switch c {
	case UniConsoles, EngConsoles, SciConsoles, TacConsoles:
		return true
	default:
		return false
	}
}

const (
	SpaceBoffStations  = 6
	GroundBoffStations = 4
	BoffRanks          = 4
	DoffSlots          = 6
)

// BoffStations is the number of bridge officer stations per environment.
func BoffStations(env Environment) int {
	switch env {
	case Space:
		return SpaceBoffStations
	case Ground:
		return GroundBoffStations
	default:
		return 0
	}
}

type DoffField string

const (
	DoffSpec    DoffField = "spec"
	DoffVariant DoffField = "variant"
)
