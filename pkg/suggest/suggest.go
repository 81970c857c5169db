// Package suggest implements the "did you mean" hint for unknown
// package names, ranked by edit distance over the known name set.
package suggest

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/maltpkg/malt/pkg/logging"
)

// maxDistance is the largest Levenshtein distance still considered a
// plausible typo.
const maxDistance = 3

// Engine implements types.Suggester over a fixed candidate set.
type Engine struct {
	candidates []string
}

// New builds a suggestion engine over the given candidate names.
// Duplicates are fine; the engine keeps them deduplicated.
func New(candidates ...[]string) *Engine {
	seen := make(map[string]struct{})
	var merged []string
	for _, list := range candidates {
		for _, name := range list {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			merged = append(merged, name)
		}
	}
	sort.Strings(merged)
	return &Engine{candidates: merged}
}

// Suggest returns the closest plausible candidate for name, or ""
// when nothing is near enough.
func (e *Engine) Suggest(name string) string {
	if name == "" || len(e.candidates) == 0 {
		return ""
	}

	// Candidate names are lowercase; fold the query so the edit
	// distance is not dominated by casing.
	name = strings.ToLower(name)

	ranks := fuzzy.RankFindNormalizedFold(name, e.candidates)
	if len(ranks) == 0 {
		return e.closestByDistance(name)
	}

	sort.Sort(ranks)
	best := ranks[0]
	if best.Distance > maxDistance {
		return ""
	}

	logger := logging.GetLogger("suggest")
	logger.Debug().
		Str("name", name).
		Str("suggestion", best.Target).
		Int("distance", best.Distance).
		Msg("Found suggestion")

	return best.Target
}

// closestByDistance falls back to plain edit distance when fuzzy
// matching finds no subsequence match at all (e.g. a transposition at
// the start of the name).
func (e *Engine) closestByDistance(name string) string {
	best := ""
	bestDistance := maxDistance + 1
	for _, candidate := range e.candidates {
		if d := fuzzy.LevenshteinDistance(name, candidate); d < bestDistance {
			best = candidate
			bestDistance = d
		}
	}
	return best
}
