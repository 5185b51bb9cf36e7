package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/appengine-ltd/starbuild/internal/build"
	"github.com/appengine-ltd/starbuild/internal/parser"
	"github.com/appengine-ltd/starbuild/internal/skills"
)

type docFile struct {
	Name    string
	Title   string
	Content string
}

func main() {
	root := filepath.Join("docs", "reference")
	if err := os.MkdirAll(root, 0o755); err != nil {
		fatal(err)
	}

	files := []docFile{
		generateCommandsDoc(),
		generateSlotsDoc(),
		generateSkillsDoc(),
	}
	for _, f := range files {
		path := filepath.Join(root, f.Name)
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			fatal(err)
		}
		fmt.Printf("wrote %s\n", path)
	}

	index := generateIndex(files)
	indexPath := filepath.Join(root, "README.md")
	if err := os.WriteFile(indexPath, []byte(index), 0o644); err != nil {
		fatal(err)
	}
	fmt.Printf("wrote %s\n", indexPath)
}

func generateIndex(files []docFile) string {
	var b strings.Builder
	b.WriteString("# Reference\n\n")
	b.WriteString("Generated from the current Go source using `go run ./cmd/docsgen`.\n\n")
	for _, f := range files {
		b.WriteString(fmt.Sprintf("- [%s](./%s)\n", f.Title, f.Name))
	}
	return b.String()
}

func generateCommandsDoc() docFile {
	cmds := parser.DefaultRegistry().Commands()

	var b strings.Builder
	b.WriteString("# Console Commands\n\n")
	b.WriteString("Source: `internal/parser/registry.go` (`DefaultRegistry`).\n\n")
	b.WriteString("Numbers are one-based. Misspelt commands and item names are matched to the closest known word.\n\n")
	b.WriteString("| Command | Usage | Aliases | Arguments |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, c := range cmds {
		b.WriteString("| ")
		b.WriteString(escape(c.Canonical))
		b.WriteString(" | `")
		b.WriteString(escape(c.Usage))
		b.WriteString("` | ")
		b.WriteString(escape(strings.Join(c.Aliases, ", ")))
		b.WriteString(" | ")
		b.WriteString(argRange(c.MinArgs, c.MaxArgs))
		b.WriteString(" |\n")
	}
	return docFile{Name: "commands.md", Title: "Console Commands", Content: b.String()}
}

func generateSlotsDoc() docFile {
	var b strings.Builder
	b.WriteString("# Slots\n\n")
	b.WriteString("Source: `internal/build/category.go`.\n\n")
	for _, env := range []build.Environment{build.Space, build.Ground} {
		total := 0
		b.WriteString(fmt.Sprintf("## %s\n\n", strings.ToUpper(string(env[:1]))+string(env[1:])))
		b.WriteString("| Category | Console name | Slots | Kind |\n")
		b.WriteString("| --- | --- | --- | --- |\n")
		for _, c := range build.Categories(env) {
			n := build.SlotCount(env, c)
			total += n
			kind := "equipment"
			if build.IsTraitCategory(c) {
				kind = "trait"
			}
			b.WriteString("| ")
			b.WriteString(escape(string(c)))
			b.WriteString(" | ")
			b.WriteString(escape(parser.SlotCategories.Say(string(c))))
			b.WriteString(" | ")
			b.WriteString(fmt.Sprintf("%d", n))
			b.WriteString(" | ")
			b.WriteString(kind)
			b.WriteString(" |\n")
		}
		b.WriteString(fmt.Sprintf("\nTotal %s slots: **%d**. Boff stations: **%d**.\n\n", env, total, build.BoffStations(env)))
	}
	return docFile{Name: "slots.md", Title: "Slots", Content: b.String()}
}

func generateSkillsDoc() docFile {
	layout := skills.DefaultLayout()

	var b strings.Builder
	b.WriteString("# Skill Trees\n\n")
	b.WriteString("Source: `internal/skills/layout.go` (`DefaultLayout`).\n\n")
	b.WriteString(fmt.Sprintf("Space: %d careers of %d nodes, at most **%d** points. Ground: %d groups, at most **%d** points.\n\n",
		len(skills.Careers()), skills.NodesPerCareer, layout.MaxSpacePoints, skills.GroundGroups, layout.MaxGroundPoints))

	b.WriteString("## Space ranks\n\n")
	b.WriteString("| Rank | Nodes | Points needed below | Left column | Right column |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	groupings := layout.Groupings[skills.Tactical]
	for rank := 0; rank < skills.Ranks; rank++ {
		first := rank*skills.NodesPerRank + 1
		b.WriteString(fmt.Sprintf("| %d | %d-%d | %d | %s | %s |\n",
			rank+1, first, first+skills.NodesPerRank-1, layout.RankThresholds[rank],
			groupings[rank*skills.ColumnsPerRank], groupings[rank*skills.ColumnsPerRank+1]))
	}

	b.WriteString("\n## Ground groups\n\n")
	b.WriteString("| Group | Nodes |\n")
	b.WriteString("| --- | --- |\n")
	for g, n := range skills.GroundGroupSizes {
		b.WriteString(fmt.Sprintf("| %d | %d |\n", g+1, n))
	}

	b.WriteString("\n## Bonus bars\n\n")
	b.WriteString(fmt.Sprintf("Each career bar has %d segments and the ground bar %d. ", skills.SpaceSegments, skills.GroundSegments))
	b.WriteString(fmt.Sprintf("Every bar has %d unlock slots; the last is the ultimate. ", skills.UnlockSlots))
	b.WriteString("Career points beyond the bar grant ultimate enhancements:\n\n")
	b.WriteString("| Career points | Enhancements |\n")
	b.WriteString("| --- | --- |\n")
	for p := skills.SpaceSegments; p <= skills.SpaceSegments+3; p++ {
		b.WriteString(fmt.Sprintf("| %d | %d |\n", p, skills.EnhancementCount(p)))
	}
	return docFile{Name: "skills.md", Title: "Skill Trees", Content: b.String()}
}

func argRange(lo, hi int) string {
	switch {
	case hi < 0:
		return fmt.Sprintf("%d+", lo)
	case lo == hi:
		return fmt.Sprintf("%d", lo)
	default:
		return fmt.Sprintf("%d-%d", lo, hi)
	}
}

func escape(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	v = strings.ReplaceAll(v, "|", "\\|")
	v = strings.ReplaceAll(v, "\n", "<br>")
	return v
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
