package console

import (
	"fmt"
	"strings"

	"github.com/appengine-ltd/starbuild/internal/build"
	"github.com/appengine-ltd/starbuild/internal/skills"
)

// Show renders one section of the build: space, ground, captain, skills,
// boffs or doffs. Anything else renders the overview.
func (c *Console) Show(section string) string {
	b := c.session.Store().Build()
	switch section {
	case "space":
		return renderSlots(&b, build.Space)
	case "ground":
		return renderSlots(&b, build.Ground)
	case "captain":
		return renderCaptain(b.Captain)
	case "skills":
		return RenderSkills(&b)
	case "boffs":
		return renderBoffs(&b, build.Space) + "\n" + renderBoffs(&b, build.Ground)
	case "doffs":
		return renderDoffs(&b, build.Space) + "\n" + renderDoffs(&b, build.Ground)
	default:
		return strings.Join([]string{
			renderSummary(c.session.Store().Summary()),
			renderSlots(&b, build.Space),
			renderSlots(&b, build.Ground),
		}, "\n")
	}
}

func renderSummary(s build.Summary) string {
	name := s.CharacterName
	if name == "" {
		name = "(unnamed)"
	}
	ship := s.Ship
	if ship == "" {
		ship = "(no ship)"
	} else if s.Tier != "" {
		ship += " " + s.Tier
	}
	lines := []string{
		fmt.Sprintf("Captain: %s  %s %s %s", name, s.Career, s.Faction, s.Species),
		"Ship:    " + ship,
	}
	if s.ShipName != "" && s.ShipName != s.Ship {
		lines = append(lines, "Name:    "+s.ShipName)
	}
	if s.Elite {
		lines[0] += "  (elite)"
	}
	if !s.LastModified.IsZero() {
		lines = append(lines, "Changed: "+s.LastModified.Format("2006-01-02 15:04:05"))
	}
	return strings.Join(lines, "\n")
}

// renderSlots lists every non-empty slot; empty categories are skipped.
func renderSlots(b *build.Build, env build.Environment) string {
	lines := []string{strings.ToUpper(string(env)) + ":"}
	for _, c := range build.Categories(env) {
		var filled []string
		for i, s := range b.Slots(env, c) {
			if !s.Empty() {
				filled = append(filled, fmt.Sprintf("    %d. %s", i+1, s))
			}
		}
		if len(filled) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s (%d)", c, build.SlotCount(env, c)))
		lines = append(lines, filled...)
	}
	if len(lines) == 1 {
		lines = append(lines, "  (empty)")
	}
	return strings.Join(lines, "\n")
}

func renderCaptain(c build.Captain) string {
	lines := make([]string, 0, len(build.CaptainFields))
	for _, f := range build.CaptainFields {
		v, _ := c.Field(f)
		lines = append(lines, fmt.Sprintf("%-15s %v", f+":", v))
	}
	return strings.Join(lines, "\n")
}

func renderBoffs(b *build.Build, env build.Environment) string {
	lines := []string{strings.ToUpper(string(env)) + " BRIDGE OFFICERS:"}
	specs := b.BoffSpecs(env)
	for i, station := range b.Boffs(env) {
		abilities := make([]string, 0, build.BoffRanks)
		for _, s := range station {
			abilities = append(abilities, s.String())
		}
		spec := ""
		if i < len(specs) && specs[i] != "" {
			spec = " [" + specs[i] + "]"
		}
		lines = append(lines, fmt.Sprintf("  %d%s: %s", i+1, spec, strings.Join(abilities, " | ")))
	}
	return strings.Join(lines, "\n")
}

func renderDoffs(b *build.Build, env build.Environment) string {
	lines := []string{strings.ToUpper(string(env)) + " DUTY OFFICERS:"}
	specs := b.Doffs(env, build.DoffSpec)
	variants := b.Doffs(env, build.DoffVariant)
	for i := range specs {
		if specs[i] == "" && variants[i] == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %d. %s  %s", i+1, specs[i], variants[i]))
	}
	if len(lines) == 1 {
		lines = append(lines, "  (none)")
	}
	return strings.Join(lines, "\n")
}

// RenderSkills draws the skill trees as text: one row per rank with "x"
// for active nodes, then the unlock row of each bar.
func RenderSkills(b *build.Build) string {
	var sb strings.Builder
	sp := &b.SpaceSkills
	fmt.Fprintf(&sb, "SPACE SKILLS (%d points)\n", sp.Total())
	for _, c := range skills.Careers() {
		fmt.Fprintf(&sb, "  %s (%d)\n", c, sp.CareerPoints(c))
		for rank := 0; rank < skills.Ranks; rank++ {
			sb.WriteString("    ")
			for n := 0; n < skills.NodesPerRank; n++ {
				id := rank*skills.NodesPerRank + n
				if n == skills.ColumnHeight {
					sb.WriteString("| ")
				}
				mark := "."
				if sp.Active(c, id) {
					mark = "x"
				}
				fmt.Fprintf(&sb, "%2d%s ", id+1, mark)
			}
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "    unlocks: %s\n", renderUnlocks(&b.Unlocks, skills.CareerBar(c)))
	}
	g := &b.GroundSkills
	fmt.Fprintf(&sb, "GROUND SKILLS (%d points)\n", g.Total())
	for group := 0; group < skills.GroundGroups; group++ {
		fmt.Fprintf(&sb, "  group %d: ", group+1)
		for id := 0; id < skills.GroundGroupSizes[group]; id++ {
			mark := "."
			if g.Active(group, id) {
				mark = "x"
			}
			fmt.Fprintf(&sb, "%d%s ", id+1, mark)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "  unlocks: %s", renderUnlocks(&b.Unlocks, skills.BarGround))
	return sb.String()
}

func renderUnlocks(u *skills.Unlocks, bar skills.Bar) string {
	parts := make([]string, 0, skills.UnlockSlots)
	for i := 0; i < skills.UnlockSlots; i++ {
		v, _ := u.Get(bar, i)
		parts = append(parts, v.String())
	}
	return strings.Join(parts, ", ")
}
