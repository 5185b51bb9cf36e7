package parser

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// word maps one spoken form to the canonical value the console understands.
type word struct {
	say   string
	value string
}

// Vocabulary is a closed set of phrases, each standing for a canonical value.
type Vocabulary struct {
	name  string
	words []word
}

func newVocabulary(name string, pairs ...string) Vocabulary {
	v := Vocabulary{name: name}
	for i := 0; i+1 < len(pairs); i += 2 {
		v.words = append(v.words, word{say: normaliseInput(pairs[i]), value: pairs[i+1]})
	}
	return v
}

func (v Vocabulary) Name() string { return v.name }

// Values lists the distinct canonical values in declaration order.
func (v Vocabulary) Values() []string {
	seen := map[string]bool{}
	var out []string
	for _, w := range v.words {
		if !seen[w.value] {
			seen[w.value] = true
			out = append(out, w.value)
		}
	}
	return out
}

// Say is the first spoken form of value, or "" when value is not in the
// vocabulary.
func (v Vocabulary) Say(value string) string {
	for _, w := range v.words {
		if w.value == value {
			return w.say
		}
	}
	return ""
}

func (v Vocabulary) maxWords() int {
	n := 1
	for _, w := range v.words {
		if c := len(tokenise(w.say)); c > n {
			n = c
		}
	}
	return n
}

// match resolves the longest phrase at the head of fields. Exact spellings
// win; otherwise single and double word phrases are compared fuzzily.
func (v Vocabulary) match(fields []string) (value string, consumed int, score float64, tie []string) {
	for n := min(v.maxWords(), len(fields)); n >= 1; n-- {
		say := normaliseInput(strings.Join(fields[:n], " "))
		for _, w := range v.words {
			if w.say == say {
				return w.value, n, 1.0, nil
			}
		}
	}
	for n := min(2, len(fields)); n >= 1; n-- {
		say := normaliseInput(strings.Join(fields[:n], " "))
		if len(say) < 2 {
			continue
		}
		says := make([]string, 0, len(v.words))
		for _, w := range v.words {
			says = append(says, w.say)
		}
		best, s, isTie := bestMatches(say, says)
		if len(best) == 0 {
			continue
		}
		first := v.lookup(best[0])
		if isTie && v.lookup(best[1]) != first {
			return "", 0, s, []string{first, v.lookup(best[1])}
		}
		return first, n, s, nil
	}
	return "", 0, 0, nil
}

func (v Vocabulary) lookup(say string) string {
	for _, w := range v.words {
		if w.say == say {
			return w.value
		}
	}
	return ""
}

// Resolve maps a phrase onto the vocabulary. ok is false when nothing
// matches or two values are equally close.
func (v Vocabulary) Resolve(phrase string) (string, bool) {
	fields := strings.Fields(phrase)
	value, consumed, _, tie := v.match(fields)
	if tie != nil || consumed != len(fields) {
		return "", false
	}
	return value, value != ""
}

var (
	Environments = newVocabulary("environment",
		"space", "space",
		"ground", "ground",
		"away", "ground",
	)

	SlotCategories = newVocabulary("slot",
		"fore weapons", "fore_weapons",
		"fore", "fore_weapons",
		"aft weapons", "aft_weapons",
		"aft", "aft_weapons",
		"experimental", "experimental",
		"exp", "experimental",
		"devices", "devices",
		"device", "devices",
		"hangars", "hangars",
		"hangar", "hangars",
		"deflector", "deflector",
		"defl", "deflector",
		"sec def", "sec_def",
		"secdef", "sec_def",
		"secondary deflector", "sec_def",
		"engines", "engines",
		"impulse", "engines",
		"core", "core",
		"warp core", "core",
		"shield", "shield",
		"shields", "shield",
		"uni consoles", "uni_consoles",
		"uni", "uni_consoles",
		"universal", "uni_consoles",
		"eng consoles", "eng_consoles",
		"eng", "eng_consoles",
		"engineering", "eng_consoles",
		"sci consoles", "sci_consoles",
		"sci", "sci_consoles",
		"science", "sci_consoles",
		"tac consoles", "tac_consoles",
		"tac", "tac_consoles",
		"tactical", "tac_consoles",
		"traits", "traits",
		"personal traits", "traits",
		"starship traits", "starship_traits",
		"sst", "starship_traits",
		"rep traits", "rep_traits",
		"rep", "rep_traits",
		"reputation", "rep_traits",
		"active rep traits", "active_rep_traits",
		"active rep", "active_rep_traits",
		"weapons", "weapons",
		"ground devices", "ground_devices",
		"kit", "kit",
		"armor", "armor",
		"armour", "armor",
		"kit modules", "kit_modules",
		"modules", "kit_modules",
		"personal shield", "personal_shield",
		"ev suit", "ev_suit",
		"ev", "ev_suit",
	)

	Careers = newVocabulary("career",
		"eng", "eng",
		"engineering", "eng",
		"sci", "sci",
		"science", "sci",
		"tac", "tac",
		"tactical", "tac",
	)

	Bars = newVocabulary("bar",
		"eng", "eng",
		"engineering", "eng",
		"sci", "sci",
		"science", "sci",
		"tac", "tac",
		"tactical", "tac",
		"ground", "ground",
	)

	ClearScopes = newVocabulary("scope",
		"full", "full",
		"all", "full",
		"everything", "full",
		"space", "space",
		"ground", "ground",
		"captain", "captain",
		"character", "captain",
		"space skills", "space_skills",
		"ground skills", "ground_skills",
	)

	CaptainFields = newVocabulary("field",
		"name", "name",
		"career", "career",
		"faction", "faction",
		"species", "species",
		"race", "species",
		"primary spec", "primary_spec",
		"primary", "primary_spec",
		"secondary spec", "secondary_spec",
		"secondary", "secondary_spec",
		"elite", "elite",
	)

	DoffFields = newVocabulary("doff field",
		"spec", "spec",
		"specialization", "spec",
		"variant", "variant",
	)

	Sections = newVocabulary("section",
		"all", "all",
		"space", "space",
		"ground", "ground",
		"captain", "captain",
		"skills", "skills",
		"boffs", "boffs",
		"doffs", "doffs",
	)

	Trees = newVocabulary("tree",
		"space", "space",
		"ground", "ground",
	)

	FileActions = newVocabulary("file action",
		"save", "save",
		"write", "save",
		"load", "load",
		"open", "load",
	)
)

// Closest ranks names against a query with the same scoring the command
// matcher uses. The returned names keep their original spelling.
func Closest(query string, names []string, limit int) []string {
	q := normaliseInput(query)
	if q == "" || len(names) == 0 {
		return nil
	}
	type scored struct {
		name  string
		score float64
	}
	var out []scored
	for _, name := range names {
		if s := scoreCandidate(q, normaliseInput(name)); s > 0 {
			out = append(out, scored{name: name, score: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].score == out[j].score {
			return out[i].name < out[j].name
		}
		return out[i].score > out[j].score
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	names = make([]string, len(out))
	for i, s := range out {
		names[i] = s.name
	}
	return names
}

func scoreCandidate(token, cand string) float64 {
	switch {
	case cand == "":
		return 0
	case token == cand:
		return 1.0
	case strings.HasPrefix(cand, token) && len(token) >= 2:
		return 0.9
	}
	dist := levenshtein.ComputeDistance(token, cand)
	if dist > levenshteinLimit(len(cand)) {
		return 0
	}
	return clampScore(0.72 - (0.08 * float64(dist)))
}

// bestMatches returns the top candidate, or the top two when they are too
// close to call.
func bestMatches(token string, all []string) ([]string, float64, bool) {
	type scored struct {
		val   string
		score float64
	}
	results := make([]scored, 0, len(all))
	for _, cand := range all {
		if s := scoreCandidate(token, cand); s > 0 {
			results = append(results, scored{val: cand, score: s})
		}
	}
	if len(results) == 0 {
		return nil, 0, false
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score == results[j].score {
			return results[i].val < results[j].val
		}
		return results[i].score > results[j].score
	})
	best := results[0]
	if len(results) > 1 && (best.score-results[1].score) < 0.05 && results[1].score > 0.6 {
		return []string{best.val, results[1].val}, best.score, true
	}
	return []string{best.val}, best.score, false
}
