package parser

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type commandPhrase struct {
	canonical string
	alias     string
	tokens    []string
}

// Registry holds the console commands and every spelling they answer to.
type Registry struct {
	commands map[string]CommandDef
	order    []string
	phrases  []commandPhrase
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]CommandDef)}
}

func (r *Registry) RegisterCommand(c CommandDef) {
	c.Canonical = normaliseInput(c.Canonical)
	if c.Canonical == "" {
		return
	}
	if c.HandlerKey == "" {
		c.HandlerKey = c.Canonical
	}
	if _, dup := r.commands[c.Canonical]; !dup {
		r.order = append(r.order, c.Canonical)
	}
	r.commands[c.Canonical] = c
	for _, say := range append([]string{c.Canonical}, c.Aliases...) {
		n := normaliseInput(say)
		if n == "" {
			continue
		}
		r.phrases = append(r.phrases, commandPhrase{canonical: c.Canonical, alias: n, tokens: tokenise(n)})
	}
}

func (r *Registry) command(canonical string) (CommandDef, bool) {
	cmd, ok := r.commands[normaliseInput(canonical)]
	return cmd, ok
}

// Commands lists the registered commands in registration order.
func (r *Registry) Commands() []CommandDef {
	out := make([]CommandDef, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.commands[name])
	}
	return out
}

type commandCandidate struct {
	Canonical string
	Alias     string
	Consumed  int
	Score     float64
	Source    string
}

// scorePhrase rates how well the head of tokens spells one phrase.
func scorePhrase(tokens []string, in string, phrase commandPhrase) (commandCandidate, bool) {
	cand := commandCandidate{Canonical: phrase.canonical, Alias: phrase.alias}
	consumed := min(len(tokens), len(phrase.tokens))
	head := strings.Join(tokens[:consumed], " ")

	if consumed == len(phrase.tokens) && head == phrase.alias {
		cand.Consumed, cand.Score, cand.Source = consumed, 1.0, "exact"
		if phrase.alias != phrase.canonical {
			cand.Score, cand.Source = 0.97, "alias"
		}
		return cand, true
	}
	if len(phrase.tokens) == 1 && len(tokens[0]) >= 2 && strings.HasPrefix(phrase.alias, tokens[0]) {
		cand.Consumed, cand.Score, cand.Source = 1, 0.9, "prefix"
		return cand, true
	}

	if len(head) < 3 {
		return cand, false
	}
	dist := levenshtein.ComputeDistance(head, phrase.alias)
	if dist > levenshteinLimit(len(phrase.alias)) {
		return cand, false
	}
	cand.Consumed, cand.Source = consumed, "lev"
	cand.Score = 0.72 - (0.08 * float64(dist))
	if strings.Contains(in, phrase.alias) {
		cand.Score += 0.04
	}
	if phrase.alias != phrase.canonical {
		cand.Score += 0.03
	}
	return cand, true
}

func (r *Registry) matchCommand(tokens []string) (commandCandidate, []commandCandidate) {
	if len(tokens) == 0 {
		return commandCandidate{}, nil
	}
	in := strings.Join(tokens, " ")
	var cands []commandCandidate
	for _, phrase := range r.phrases {
		if len(phrase.tokens) == 0 {
			continue
		}
		if c, ok := scorePhrase(tokens, in, phrase); ok {
			cands = append(cands, c)
		}
	}
	if len(cands) == 0 {
		return commandCandidate{}, nil
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score == cands[j].Score {
			if cands[i].Consumed == cands[j].Consumed {
				return cands[i].Canonical < cands[j].Canonical
			}
			return cands[i].Consumed > cands[j].Consumed
		}
		return cands[i].Score > cands[j].Score
	})

	best := cands[0]
	alts := make([]commandCandidate, 0, 4)
	seen := map[string]bool{best.Canonical: true}
	for _, c := range cands[1:] {
		if seen[c.Canonical] {
			continue
		}
		seen[c.Canonical] = true
		alts = append(alts, c)
		if len(alts) == 4 {
			break
		}
	}
	return best, alts
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// DefaultRegistry is the build console's command set.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, cmd := range []CommandDef{
		{Canonical: "help", Aliases: []string{"h", "commands", "?"}, MaxArgs: 1, Usage: "help [command]"},
		{Canonical: "show", Aliases: []string{"view", "list", "ls", "display"}, MaxArgs: 1, Usage: "show [space|ground|captain|skills|boffs|doffs]"},
		{Canonical: "set", Aliases: []string{"equip", "put"}, MinArgs: 4, MaxArgs: 5, Usage: "set <env> <slot> <n> <item> [Mk XV]"},
		{Canonical: "clear", Aliases: []string{"reset", "remove", "unequip"}, MaxArgs: 3, Usage: "clear [scope] | clear <env> <slot> <n>"},
		{Canonical: "ship", Aliases: []string{"hull"}, MaxArgs: 1, Usage: "ship <name>"},
		{Canonical: "captain", Aliases: []string{"cap", "character"}, MinArgs: 1, MaxArgs: 2, Usage: "captain <field> [value]"},
		{Canonical: "boff", Aliases: []string{"ability", "bridge officer"}, MinArgs: 3, MaxArgs: 4, Usage: "boff <env> <station> <rank> [ability]"},
		{Canonical: "doff", Aliases: []string{"duty officer"}, MinArgs: 3, MaxArgs: 4, Usage: "doff <env> <n> <spec|variant> [value]"},
		{Canonical: "skill", Aliases: []string{"skills", "spend"}, MinArgs: 3, MaxArgs: 3, Usage: "skill space <career> <node> | skill ground <group> <node>"},
		{Canonical: "unlock", Aliases: []string{"choose"}, MinArgs: 2, MaxArgs: 2, Usage: "unlock <eng|sci|tac|ground> <n>"},
		{Canonical: "copy", Aliases: []string{"cp", "yank"}, MinArgs: 3, MaxArgs: 3, Usage: "copy <env> <slot> <n>"},
		{Canonical: "paste", MinArgs: 3, MaxArgs: 3, Usage: "paste <env> <slot> <n>"},
		{Canonical: "search", Aliases: []string{"find", "lookup"}, MinArgs: 1, MaxArgs: 3, Usage: "search [env slot] <text>"},
		{Canonical: "validate", Aliases: []string{"check", "lint"}, Usage: "validate"},
		{Canonical: "summary", Aliases: []string{"info", "status"}, Usage: "summary"},
		{Canonical: "save", Aliases: []string{"write"}, MaxArgs: 1, Usage: "save [path]"},
		{Canonical: "load", Aliases: []string{"open"}, MinArgs: 1, MaxArgs: 1, Usage: "load <path>"},
		{Canonical: "skilltree", Aliases: []string{"tree"}, MinArgs: 2, MaxArgs: 2, Usage: "skilltree <save|load> <path>"},
		{Canonical: "quit", Aliases: []string{"exit", "q"}, Usage: "quit"},
	} {
		r.RegisterCommand(cmd)
	}
	return r
}
