package parser

import (
	"fmt"
	"strings"
)

type Parser struct {
	registry *Registry
}

func New() *Parser {
	return &Parser{registry: DefaultRegistry()}
}

func (p *Parser) RegisterCommand(c CommandDef) {
	p.registry.RegisterCommand(c)
}

func (p *Parser) Registry() *Registry { return p.registry }

func (p *Parser) Parse(ctx ParseContext, raw string) Intent {
	intent := Intent{
		Raw:        raw,
		Normalised: normaliseInput(raw),
		Kind:       Unknown,
	}
	if intent.Normalised == "" {
		if strings.TrimSpace(raw) == "?" {
			intent.Kind, intent.Verb, intent.Confidence = Help, "help", 1
			return intent
		}
		intent.Clarify = &ClarifyQuestion{Prompt: "Enter a command. Try help."}
		return intent
	}

	tokens := tokenise(intent.Normalised)
	cmdMatch, alternates := p.registry.matchCommand(tokens)
	if cmdMatch.Canonical == "" || cmdMatch.Score < 0.5 {
		intent.Clarify = &ClarifyQuestion{
			Prompt: "I couldn't map that to a command. Try help, show, set, clear, ship, skill, validate, save.",
		}
		return intent
	}

	if len(alternates) > 0 && (cmdMatch.Score-alternates[0].Score) < 0.05 && alternates[0].Score > 0.65 {
		intent.Clarify = &ClarifyQuestion{
			Prompt: "Did you mean:",
			Options: []Intent{
				{Raw: raw, Normalised: cmdMatch.Canonical, Kind: commandKind(cmdMatch.Canonical), Verb: cmdMatch.Canonical, Confidence: cmdMatch.Score},
				{Raw: raw, Normalised: alternates[0].Canonical, Kind: commandKind(alternates[0].Canonical), Verb: alternates[0].Canonical, Confidence: alternates[0].Score},
			},
		}
		return intent
	}

	intent.Verb = cmdMatch.Canonical
	intent.Kind = commandKind(intent.Verb)
	intent.Confidence = clampScore(cmdMatch.Score)

	def, _ := p.registry.command(intent.Verb)
	args, clarify, argScore := p.resolveArgs(ctx, def, rawArgs(raw, cmdMatch.Consumed))
	if clarify != nil {
		intent.Clarify = clarify
		intent.Confidence = 0.45
		return intent
	}
	intent.Args = args
	intent.Confidence = clampScore((intent.Confidence * 0.75) + (argScore * 0.25))

	if len(intent.Args) < def.MinArgs {
		intent.Clarify = &ClarifyQuestion{Prompt: fmt.Sprintf("%s needs at least %d argument(s). Usage: %s", def.Canonical, def.MinArgs, def.Usage)}
		intent.Confidence = 0.42
		return intent
	}
	if len(intent.Args) > def.MaxArgs {
		intent.Args = append([]string(nil), intent.Args[:def.MaxArgs]...)
		intent.Confidence = clampScore(intent.Confidence - 0.05)
	}

	if intent.Confidence < 0.52 {
		intent.Clarify = &ClarifyQuestion{Prompt: "I have low confidence in that parse. Please rephrase or pick a clearer command."}
	}
	return intent
}

func commandKind(verb string) IntentKind {
	switch verb {
	case "help":
		return Help
	case "show", "summary", "validate", "search":
		return Query
	default:
		return Command
	}
}

// argReader walks the raw fields after the verb, appending canonical values.
type argReader struct {
	verb   string
	kind   IntentKind
	fields []string
	out    []string
	score  float64
}

func (a *argReader) empty() bool { return len(a.fields) == 0 }

func (a *argReader) vocab(v Vocabulary) *ClarifyQuestion {
	if a.empty() {
		return nil
	}
	value, consumed, score, tie := v.match(a.fields)
	if tie != nil {
		options := make([]Intent, 0, len(tie))
		for i, t := range tie {
			args := append(append(append([]string(nil), a.out...), t), a.fields[1:]...)
			options = append(options, Intent{Kind: a.kind, Verb: a.verb, Args: args, Confidence: score - float64(i)*0.01})
		}
		return &ClarifyQuestion{Prompt: fmt.Sprintf("Which %s did you mean?", v.Name()), Options: options}
	}
	if consumed == 0 {
		return &ClarifyQuestion{Prompt: fmt.Sprintf("Unknown %s %q. Expected one of: %s.", v.Name(), a.fields[0], strings.Join(v.Values(), ", "))}
	}
	a.out = append(a.out, value)
	a.fields = a.fields[consumed:]
	a.score = minScore(a.score, score)
	return nil
}

func (a *argReader) number(label string) *ClarifyQuestion {
	if a.empty() {
		return nil
	}
	if !isNumber(a.fields[0]) {
		return &ClarifyQuestion{Prompt: fmt.Sprintf("Expected a number for %s, got %q.", label, a.fields[0])}
	}
	a.out = append(a.out, strings.TrimSpace(a.fields[0]))
	a.fields = a.fields[1:]
	return nil
}

// slot reads env, category and index, or a pronoun standing for the last
// slot addressed.
func (a *argReader) slot(last []string) *ClarifyQuestion {
	if !a.empty() && isPronoun(a.fields[0]) {
		if len(last) != 3 {
			return &ClarifyQuestion{Prompt: "Which slot does that refer to?"}
		}
		a.out = append(a.out, last...)
		a.fields = a.fields[1:]
		a.score = minScore(a.score, 0.82)
		return nil
	}
	if q := a.vocab(Environments); q != nil {
		return q
	}
	if q := a.vocab(SlotCategories); q != nil {
		return q
	}
	return a.number("slot index")
}

func (a *argReader) rest() string {
	s := strings.Join(a.fields, " ")
	a.fields = nil
	return s
}

// name resolves free text against known names, keeping their spelling.
// Unknown text passes through for the caller to reject.
func (a *argReader) name(text string, known []string) *ClarifyQuestion {
	if text == "" {
		return nil
	}
	if len(known) == 0 {
		a.out = append(a.out, text)
		return nil
	}
	byNorm := make(map[string]string, len(known))
	norms := make([]string, 0, len(known))
	for _, k := range known {
		n := normaliseInput(k)
		if n == "" {
			continue
		}
		if _, dup := byNorm[n]; !dup {
			byNorm[n] = k
			norms = append(norms, n)
		}
	}
	best, score, tie := bestMatches(normaliseInput(text), norms)
	switch {
	case tie:
		options := make([]Intent, 0, 2)
		for i, n := range best {
			args := append(append([]string(nil), a.out...), byNorm[n])
			options = append(options, Intent{Kind: a.kind, Verb: a.verb, Args: args, Confidence: score - float64(i)*0.01})
		}
		return &ClarifyQuestion{Prompt: "Did you mean:", Options: options}
	case len(best) == 1:
		a.out = append(a.out, byNorm[best[0]])
		a.score = minScore(a.score, score)
	default:
		a.out = append(a.out, text)
		a.score = minScore(a.score, 0.6)
	}
	return nil
}

func (p *Parser) resolveArgs(ctx ParseContext, def CommandDef, fields []string) ([]string, *ClarifyQuestion, float64) {
	a := &argReader{verb: def.Canonical, kind: commandKind(def.Canonical), fields: fields, score: 0.9}
	var q *ClarifyQuestion
	switch def.Canonical {
	case "help":
		if !a.empty() {
			if m, _ := p.registry.matchCommand(tokenise(normaliseInput(a.fields[0]))); m.Canonical != "" {
				a.out = append(a.out, m.Canonical)
			} else {
				a.out = append(a.out, a.fields[0])
			}
		}
	case "show":
		q = a.vocab(Sections)
	case "set":
		if q = a.slot(ctx.LastSlot); q != nil {
			break
		}
		item, mark := splitMark(a.fields)
		a.fields = item
		if q = a.name(a.rest(), ctx.Items); q == nil && mark != "" {
			a.out = append(a.out, mark)
		}
	case "clear":
		switch {
		case a.empty():
			a.out = append(a.out, "full")
		case isPronoun(a.fields[0]) || (len(a.fields) >= 3 && isExact(Environments, a.fields[0])):
			q = a.slot(ctx.LastSlot)
		default:
			q = a.vocab(ClearScopes)
		}
	case "ship":
		if text := a.rest(); normaliseInput(text) == "none" {
			a.out = append(a.out, "none")
		} else {
			q = a.name(text, ctx.Ships)
		}
	case "captain":
		if q = a.vocab(CaptainFields); q == nil && !a.empty() {
			a.out = append(a.out, a.rest())
		}
	case "boff":
		for _, step := range []func() *ClarifyQuestion{
			func() *ClarifyQuestion { return a.vocab(Environments) },
			func() *ClarifyQuestion { return a.number("station") },
			func() *ClarifyQuestion { return a.number("rank") },
		} {
			if q = step(); q != nil {
				break
			}
		}
		if q == nil && !a.empty() {
			a.out = append(a.out, a.rest())
		}
	case "doff":
		for _, step := range []func() *ClarifyQuestion{
			func() *ClarifyQuestion { return a.vocab(Environments) },
			func() *ClarifyQuestion { return a.number("duty officer") },
			func() *ClarifyQuestion { return a.vocab(DoffFields) },
		} {
			if q = step(); q != nil {
				break
			}
		}
		if q == nil && !a.empty() {
			a.out = append(a.out, a.rest())
		}
	case "skill":
		if q = a.vocab(Trees); q != nil || len(a.out) == 0 {
			break
		}
		if a.out[0] == "space" {
			q = a.vocab(Careers)
		} else {
			q = a.number("group")
		}
		if q == nil {
			q = a.number("node")
		}
	case "unlock":
		if q = a.vocab(Bars); q == nil {
			q = a.number("unlock slot")
		}
	case "copy", "paste":
		q = a.slot(ctx.LastSlot)
	case "search":
		if len(a.fields) >= 3 && isExact(Environments, a.fields[0]) {
			if q = a.vocab(Environments); q == nil {
				q = a.vocab(SlotCategories)
			}
		}
		if q == nil && !a.empty() {
			a.out = append(a.out, a.rest())
		}
	case "skilltree":
		if q = a.vocab(FileActions); q == nil && !a.empty() {
			a.out = append(a.out, a.rest())
		}
	case "save", "load":
		if !a.empty() {
			a.out = append(a.out, a.rest())
		}
	default:
		a.out = append(a.out, a.fields...)
	}
	if q != nil {
		return nil, q, 0.4
	}
	return a.out, nil, clampScore(a.score)
}

func isExact(v Vocabulary, field string) bool {
	_, consumed, score, _ := v.match([]string{field})
	return consumed == 1 && score == 1.0
}

func minScore(a, b float64) float64 {
	if b < a {
		return b
	}
	return a
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// CommandString renders an intent back into a line the parser accepts.
func CommandString(intent Intent) string {
	if intent.Verb == "" {
		return ""
	}
	parts := append([]string{intent.Verb}, intent.Args...)
	return strings.Join(parts, " ")
}
