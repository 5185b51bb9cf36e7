package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/appengine-ltd/starbuild/internal/build"
)

type Match struct {
	Item  Item
	Score float64
}

// Search ranks items whose names match the query: exact names first, then
// prefixes, then substrings, then near misses within a small edit distance.
// An empty category list searches everything.
func (s *Snapshot) Search(query string, limit int, categories ...build.Category) []Match {
	q := foldName(query)
	if q == "" {
		return nil
	}
	pool := s.names
	if len(categories) > 0 {
		seen := make(map[string]bool)
		pool = nil
		for _, c := range categories {
			for name := range s.items[c] {
				if !seen[name] {
					seen[name] = true
					pool = append(pool, name)
				}
			}
		}
	}

	matches := make([]Match, 0, 8)
	for _, name := range pool {
		cand := foldName(name)
		score := 0.0
		switch {
		case cand == q:
			score = 1.0
		case strings.HasPrefix(cand, q) && len(q) >= 2:
			score = 0.9
		case strings.Contains(cand, q) && len(q) >= 3:
			score = 0.8
		default:
			if len(q) < 3 {
				continue
			}
			dist := levenshtein.ComputeDistance(q, cand)
			if dist > levenshteinLimit(len(cand)) {
				continue
			}
			score = 0.72 - (0.08 * float64(dist))
		}
		it := s.byName[name]
		if len(categories) > 0 {
			it = s.pick(name, categories)
		}
		matches = append(matches, Match{Item: it, Score: score})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score == matches[j].Score {
			return matches[i].Item.Name < matches[j].Item.Name
		}
		return matches[i].Score > matches[j].Score
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func (s *Snapshot) pick(name string, categories []build.Category) Item {
	for _, c := range categories {
		if it, ok := s.items[c][name]; ok {
			return it
		}
	}
	return s.byName[name]
}

func foldName(v string) string {
	return strings.Join(strings.Fields(strings.ToLower(v)), " ")
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
