package catalog

import (
	"strings"

	"github.com/appengine-ltd/starbuild/internal/build"
)

var typeCategories = map[string]build.Category{
	"ship fore weapon":         build.ForeWeapons,
	"ship aft weapon":          build.AftWeapons,
	"ship weapon":              build.ShipWeapon,
	"experimental weapon":      build.Experimental,
	"ship device":              build.Devices,
	"hangar bay":               build.Hangars,
	"ship deflector dish":      build.Deflector,
	"ship secondary deflector": build.SecDef,
	"impulse engine":           build.Engines,
	"warp engine":              build.Core,
	"singularity engine":       build.Core,
	"ship shields":             build.Shield,
	"universal console":        build.UniConsoles,
	"ship engineering console": build.EngConsoles,
	"ship science console":     build.SciConsoles,
	"ship tactical console":    build.TacConsoles,
	"ground weapon":            build.GroundWeapons,
	"ground device":            build.GroundDevices,
	"kit":                      build.Kit,
	"kit frame":                build.Kit,
	"body armor":               build.Armor,
	"kit module":               build.KitModules,
	"personal shield":          build.PersonalShield,
	"ev suit":                  build.EVSuit,
	"personal trait":           build.Traits,
	"starship trait":           build.StarshipTraits,
	"reputation trait":         build.RepTraits,
	"reputation":               build.RepTraits,
	"active reputation trait":  build.ActiveRepTraits,
	"activereputation":         build.ActiveRepTraits,
}

// CategoryForType maps a wiki item type such as "Ship Fore Weapon" to the
// category it is filed under.
func CategoryForType(t string) (build.Category, bool) {
	c, ok := typeCategories[strings.ToLower(strings.TrimSpace(t))]
	return c, ok
}
