package build

import (
	"fmt"
	"strings"
	"time"

	"github.com/appengine-ltd/starbuild/internal/skills"
)

// Issue is one validation finding. Field is a dotted path into the build
// (for example "space.fore_weapons[3]") or empty for build-wide findings.
type Issue struct {
	Field   string
	Message string
}

func (i Issue) String() string {
	if i.Field == "" {
		return i.Message
	}
	return i.Field + ": " + i.Message
}

// Limits caps how many leading slots of a category the selected ship
// actually has. A nil map or a missing category means no cap is known.
type Limits map[Category]int

var requiredCaptainFields = []string{"name", "career", "faction", "species"}

// Validate reports missing captain identity, a missing ship and slot
// contents that cannot be right. The skill engine is optional; when nil
// skill allocations are not checked.
func Validate(b *Build, engine *skills.Engine, limits Limits) []Issue {
	var issues []Issue
	for _, field := range requiredCaptainFields {
		v, _ := b.Captain.Field(field)
		if s, _ := v.(string); strings.TrimSpace(s) == "" {
			issues = append(issues, Issue{Field: "captain." + field, Message: "missing character " + field})
		}
	}
	if strings.TrimSpace(b.Space.Ship) == "" {
		issues = append(issues, Issue{Field: "space.ship", Message: "no ship selected"})
	}

	for _, env := range []Environment{Space, Ground} {
		for _, c := range Categories(env) {
			limit, capped := limits[c]
			if env != Space {
				capped = false
			}
			for i, s := range b.Slots(env, c) {
				field := fmt.Sprintf("%s.%s[%d]", env, c, i)
				issues = append(issues, slotIssues(field, s)...)
				if capped && i >= limit && !s.Empty() {
					issues = append(issues, Issue{Field: field, Message: fmt.Sprintf("ship only has %d %s slots", limit, c)})
				}
			}
		}
		for station, ranks := range b.Boffs(env) {
			for rank, s := range ranks {
				issues = append(issues, slotIssues(fmt.Sprintf("%s.boffs[%d][%d]", env, station, rank), s)...)
			}
		}
		variants := b.Doffs(env, DoffVariant)
		for i, spec := range b.Doffs(env, DoffSpec) {
			if strings.TrimSpace(spec) == "" && strings.TrimSpace(variants[i]) != "" {
				issues = append(issues, Issue{Field: fmt.Sprintf("%s.doffs_variant[%d]", env, i), Message: "variant set without a specialization"})
			}
		}
	}

	if engine != nil {
		for _, msg := range engine.Check(&b.SpaceSkills, &b.GroundSkills, &b.Unlocks) {
			issues = append(issues, Issue{Message: msg})
		}
	}
	return issues
}

func slotIssues(field string, s Slot) []Issue {
	if !s.Empty() {
		return nil
	}
	var issues []Issue
	if s.Mark != "" {
		issues = append(issues, Issue{Field: field, Message: "mark on an empty slot"})
	}
	for _, m := range s.Modifiers {
		if m != "" {
			issues = append(issues, Issue{Field: field, Message: "modifiers on an empty slot"})
			break
		}
	}
	return issues
}

// Summary is the read-only projection used for save-dialog defaults and
// status lines.
type Summary struct {
	Ship               string
	ShipName           string
	Tier               string
	CharacterName      string
	Career             string
	Faction            string
	Species            string
	Elite              bool
	LastModified       time.Time
	HasSpaceEquipment  bool
	HasGroundEquipment bool
}

func Summarize(b *Build) Summary {
	return Summary{
		Ship:               b.Space.Ship,
		ShipName:           b.Space.ShipName,
		Tier:               b.Space.Tier,
		CharacterName:      b.Captain.Name,
		Career:             b.Captain.Career,
		Faction:            b.Captain.Faction,
		Species:            b.Captain.Species,
		Elite:              b.Captain.Elite,
		HasSpaceEquipment:  b.HasEquipment(Space),
		HasGroundEquipment: b.HasEquipment(Ground),
	}
}

// SuggestedFileName derives a save-file name from the captain and ship.
func (s Summary) SuggestedFileName() string {
	parts := make([]string, 0, 2)
	for _, p := range []string{s.CharacterName, s.Ship} {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "build.json"
	}
	name := strings.Join(parts, " - ")
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
	return name + ".json"
}
