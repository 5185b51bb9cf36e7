// Package console runs typed build commands against an editor session.
// Slot, station, rank, node and unlock numbers are one-based on the
// console and converted before they reach the store.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/appengine-ltd/starbuild/internal/build"
	"github.com/appengine-ltd/starbuild/internal/catalog"
	"github.com/appengine-ltd/starbuild/internal/editor"
	"github.com/appengine-ltd/starbuild/internal/parser"
	"github.com/appengine-ltd/starbuild/internal/skills"
	"github.com/appengine-ltd/starbuild/internal/store"
)

const searchLimit = 10

// Result is the outcome of one console line.
type Result struct {
	Intent parser.Intent
	Text   string
	OK     bool
	Quit   bool
}

type Console struct {
	session  *editor.Session
	parser   *parser.Parser
	path     string
	lastSlot []string

	snap  *catalog.Snapshot
	items []string
	ships []string
}

func New(session *editor.Session) *Console {
	return &Console{session: session, parser: parser.New()}
}

func (c *Console) Session() *editor.Session { return c.session }

// SetPath sets the file "save" writes to when no path is given.
func (c *Console) SetPath(path string) { c.path = strings.TrimSpace(path) }

func (c *Console) Path() string { return c.path }

// Context exposes the catalog names the parser resolves against. The lists
// are rebuilt only when the catalog snapshot changes.
func (c *Console) Context() parser.ParseContext {
	snap := c.session.Catalog()
	if snap != c.snap {
		c.snap = snap
		c.items = c.items[:0]
		seen := map[string]bool{}
		for _, cat := range snap.Categories() {
			for _, n := range snap.Names(cat) {
				if !seen[n] {
					seen[n] = true
					c.items = append(c.items, n)
				}
			}
		}
		c.ships = c.ships[:0]
		for _, s := range snap.Ships() {
			c.ships = append(c.ships, s.Name)
		}
	}
	return parser.ParseContext{Items: c.items, Ships: c.ships, LastSlot: c.lastSlot}
}

// Exec parses and runs one line.
func (c *Console) Exec(line string) Result {
	intent := c.parser.Parse(c.Context(), line)
	res := Result{Intent: intent}
	if intent.Clarify != nil {
		res.Text = clarifyText(intent.Clarify)
		return res
	}
	res.Text, res.OK = c.run(intent)
	res.Quit = intent.Verb == "quit"
	return res
}

// Run reads commands until EOF, "quit" or ctx is done.
func (c *Console) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		res := c.Exec(sc.Text())
		if res.Text != "" {
			fmt.Fprintln(out, res.Text)
		}
		if res.Quit {
			return nil
		}
	}
}

func clarifyText(q *parser.ClarifyQuestion) string {
	if len(q.Options) == 0 {
		return q.Prompt
	}
	lines := []string{q.Prompt}
	for _, o := range q.Options {
		lines = append(lines, "  "+parser.CommandString(o))
	}
	return strings.Join(lines, "\n")
}

func (c *Console) run(in parser.Intent) (string, bool) {
	st := c.session.Store()
	args := in.Args
	switch in.Verb {
	case "help":
		return c.help(args), true
	case "show":
		section := "all"
		if len(args) > 0 {
			section = args[0]
		}
		return c.Show(section), true
	case "set":
		return c.set(args)
	case "clear":
		if len(args) == 1 {
			scope := store.ClearScope(args[0])
			if !st.Clear(scope) {
				return fmt.Sprintf("Cannot clear %q.", args[0]), false
			}
			return fmt.Sprintf("Cleared %s.", strings.ReplaceAll(args[0], "_", " ")), true
		}
		env, cat, idx, msg := c.slotArgs(args)
		if msg != "" {
			return msg, false
		}
		c.session.Unequip(env, cat, idx)
		return fmt.Sprintf("Cleared %s %s #%d.", env, cat, idx+1), true
	case "ship":
		return c.ship(args)
	case "captain":
		return c.captain(args)
	case "boff":
		return c.boff(args)
	case "doff":
		return c.doff(args)
	case "skill":
		return c.skill(args)
	case "unlock":
		bar := skills.Bar(args[0])
		n, _ := strconv.Atoi(args[1])
		if !st.ToggleUnlock(bar, n-1) {
			return fmt.Sprintf("Unlock %d of %s is not available.", n, bar), false
		}
		b := st.Build()
		u, _ := b.Unlocks.Get(bar, n-1)
		return fmt.Sprintf("Unlock %d of %s is now %s.", n, bar, u), true
	case "copy":
		env, cat, idx, msg := c.slotArgs(args)
		if msg != "" {
			return msg, false
		}
		if !c.session.Copy(env, cat, idx) {
			return fmt.Sprintf("Nothing to copy in %s %s #%d.", env, cat, idx+1), false
		}
		return fmt.Sprintf("Copied %s.", c.session.Clipboard().Slot), true
	case "paste":
		env, cat, idx, msg := c.slotArgs(args)
		if msg != "" {
			return msg, false
		}
		if c.session.Clipboard().Empty() {
			return "The clipboard is empty.", false
		}
		if !c.session.Paste(env, cat, idx) {
			return fmt.Sprintf("%s does not fit %s %s.", c.session.Clipboard().Slot.Item, env, cat), false
		}
		return fmt.Sprintf("Pasted into %s %s #%d.", env, cat, idx+1), true
	case "search":
		return c.search(args)
	case "validate":
		issues := c.session.Validate()
		if len(issues) == 0 {
			return "Build is valid.", true
		}
		lines := make([]string, 0, len(issues)+1)
		lines = append(lines, fmt.Sprintf("%d issue(s):", len(issues)))
		for _, is := range issues {
			lines = append(lines, "  "+is.String())
		}
		return strings.Join(lines, "\n"), true
	case "summary":
		return renderSummary(st.Summary()), true
	case "save":
		path := c.path
		if len(args) > 0 {
			path = args[0]
		}
		if path == "" {
			path = st.Summary().SuggestedFileName()
		}
		if !st.SaveToFile(path) {
			return fmt.Sprintf("Could not save to %s.", path), false
		}
		c.path = path
		return fmt.Sprintf("Saved %s.", path), true
	case "load":
		if !st.LoadFromFile(args[0]) {
			return fmt.Sprintf("Could not load %s; the current build is unchanged.", args[0]), false
		}
		c.path = args[0]
		c.lastSlot = nil
		return fmt.Sprintf("Loaded %s.", args[0]), true
	case "skilltree":
		if args[0] == "save" {
			if !st.SaveSkillsToFile(args[1]) {
				return fmt.Sprintf("Could not save the skill tree to %s.", args[1]), false
			}
			return fmt.Sprintf("Saved skill tree %s.", args[1]), true
		}
		if !st.LoadSkillsFromFile(args[1]) {
			return fmt.Sprintf("Could not load a skill tree from %s; the skills are unchanged.", args[1]), false
		}
		return fmt.Sprintf("Loaded skill tree %s.", args[1]), true
	case "quit":
		if st.IsModified(time.Time{}) {
			return "Bye. The build has unsaved changes.", true
		}
		return "Bye.", true
	default:
		return fmt.Sprintf("%s is not wired to an action.", in.Verb), false
	}
}

func (c *Console) help(args []string) string {
	cmds := c.parser.Registry().Commands()
	if len(args) > 0 {
		for _, cmd := range cmds {
			if cmd.Canonical == args[0] {
				s := "usage: " + cmd.Usage
				if len(cmd.Aliases) > 0 {
					s += "\naliases: " + strings.Join(cmd.Aliases, ", ")
				}
				return s
			}
		}
		return fmt.Sprintf("No command %q.", args[0])
	}
	lines := []string{"Commands:"}
	for _, cmd := range cmds {
		lines = append(lines, "  "+cmd.Usage)
	}
	return strings.Join(lines, "\n")
}

// slotArgs converts env, category and one-based index.
func (c *Console) slotArgs(args []string) (build.Environment, build.Category, int, string) {
	env := build.Environment(args[0])
	cat := build.Category(args[1])
	n, _ := strconv.Atoi(args[2])
	count := build.SlotCount(env, cat)
	if count == 0 {
		return env, cat, 0, fmt.Sprintf("%s has no %s slots.", env, cat)
	}
	if n < 1 || n > count {
		return env, cat, 0, fmt.Sprintf("%s %s has slots 1-%d.", env, cat, count)
	}
	c.lastSlot = []string{args[0], args[1], args[2]}
	return env, cat, n - 1, ""
}

func (c *Console) set(args []string) (string, bool) {
	env, cat, idx, msg := c.slotArgs(args)
	if msg != "" {
		return msg, false
	}
	name := args[3]
	mark := ""
	if len(args) > 4 {
		mark = args[4]
	}
	if c.session.Catalog().Len() == 0 {
		return "The catalog is not loaded yet; items cannot be picked.", false
	}
	if !c.session.Pick(env, cat, idx, name, mark) {
		if hint := c.session.Search(name, 3, cat); len(hint) > 0 {
			names := make([]string, len(hint))
			for i, m := range hint {
				names[i] = m.Item.Name
			}
			return fmt.Sprintf("%q does not fit %s %s. Closest: %s.", name, env, cat, strings.Join(names, ", ")), false
		}
		return fmt.Sprintf("%q does not fit %s %s.", name, env, cat), false
	}
	slot, _ := c.session.Store().Equipment(env, cat, idx)
	return fmt.Sprintf("%s %s #%d: %s", env, cat, idx+1, slot), true
}

func (c *Console) ship(args []string) (string, bool) {
	st := c.session.Store()
	if len(args) == 0 {
		sum := st.Summary()
		if sum.Ship == "" {
			return "No ship selected.", true
		}
		return fmt.Sprintf("Ship: %s (%s)", sum.Ship, sum.Tier), true
	}
	name := args[0]
	if name == "none" {
		name = store.NoShip
	}
	if !c.session.SelectShip(name) {
		if near := parser.Closest(name, c.ships, 3); len(near) > 0 {
			return fmt.Sprintf("Unknown ship %q. Closest: %s.", name, strings.Join(near, ", ")), false
		}
		return fmt.Sprintf("Unknown ship %q.", name), false
	}
	if name == store.NoShip {
		return "Ship cleared.", true
	}
	sum := st.Summary()
	return fmt.Sprintf("Ship: %s (%s)", sum.Ship, sum.Tier), true
}

func (c *Console) captain(args []string) (string, bool) {
	st := c.session.Store()
	field := args[0]
	if len(args) == 1 {
		v, ok := st.CaptainField(field)
		if !ok {
			return fmt.Sprintf("No captain field %q.", field), false
		}
		return fmt.Sprintf("%s: %v", field, v), true
	}
	var value any = args[1]
	if field == "elite" {
		b, ok := parseBool(args[1])
		if !ok {
			return fmt.Sprintf("elite takes yes or no, not %q.", args[1]), false
		}
		value = b
	}
	if field == "career" {
		if v, ok := parser.Careers.Resolve(args[1]); ok {
			value = skills.Career(v).String()
		}
	}
	if !st.SetCaptainField(field, value) {
		return fmt.Sprintf("Cannot set %s.", field), false
	}
	v, _ := st.CaptainField(field)
	return fmt.Sprintf("%s: %v", field, v), true
}

func parseBool(v string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "y", "true", "on", "1":
		return true, true
	case "no", "n", "false", "off", "0":
		return false, true
	default:
		return false, false
	}
}

func (c *Console) boff(args []string) (string, bool) {
	env := build.Environment(args[0])
	station, _ := strconv.Atoi(args[1])
	rank, _ := strconv.Atoi(args[2])
	var slot build.Slot
	if len(args) > 3 {
		slot = build.Item(args[3])
	}
	if !c.session.Store().SetBoffAbility(env, station-1, rank-1, slot) {
		return fmt.Sprintf("%s has stations 1-%d and ranks 1-%d.", env, build.BoffStations(env), build.BoffRanks), false
	}
	if slot.Empty() {
		return fmt.Sprintf("Cleared %s station %d rank %d.", env, station, rank), true
	}
	return fmt.Sprintf("%s station %d rank %d: %s", env, station, rank, slot.Item), true
}

func (c *Console) doff(args []string) (string, bool) {
	env := build.Environment(args[0])
	n, _ := strconv.Atoi(args[1])
	field := build.DoffField(args[2])
	value := ""
	if len(args) > 3 {
		value = args[3]
	}
	if !c.session.Store().SetDoff(env, n-1, field, value) {
		return fmt.Sprintf("%s duty officers are numbered 1-%d.", env, build.DoffSlots), false
	}
	return fmt.Sprintf("%s duty officer %d %s: %q", env, n, field, value), true
}

func (c *Console) skill(args []string) (string, bool) {
	st := c.session.Store()
	var (
		tr    skills.Transition
		ok    bool
		label string
	)
	if args[0] == "space" {
		career := skills.Career(args[1])
		id, _ := strconv.Atoi(args[2])
		tr, ok = st.ToggleSpaceSkill(career, id-1)
		label = fmt.Sprintf("%s node %d", career, id)
	} else {
		group, _ := strconv.Atoi(args[1])
		id, _ := strconv.Atoi(args[2])
		tr, ok = st.ToggleGroundSkill(group-1, id-1)
		label = fmt.Sprintf("ground group %d node %d", group, id)
	}
	if !ok {
		return fmt.Sprintf("%s cannot be toggled now.", label), false
	}
	verb := "activated"
	if tr.Direction == skills.Deactivate {
		verb = "deactivated"
	}
	text := fmt.Sprintf("%s %s (%d points).", label, verb, tr.Points)
	if tr.Unlock >= 0 {
		text += fmt.Sprintf(" Unlock %d changed.", tr.Unlock+1)
	}
	return text, true
}

func (c *Console) search(args []string) (string, bool) {
	var (
		cat   build.Category
		query = args[len(args)-1]
	)
	if len(args) == 3 {
		cat = build.Category(args[1])
	}
	matches := c.session.Search(query, searchLimit, cat)
	if len(matches) == 0 {
		return fmt.Sprintf("No items match %q.", query), false
	}
	lines := make([]string, 0, len(matches))
	for _, m := range matches {
		lines = append(lines, fmt.Sprintf("  %-40s %s", m.Item.Name, m.Item.Category))
	}
	return strings.Join(lines, "\n"), true
}
