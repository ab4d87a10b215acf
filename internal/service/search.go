package service

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/inventory/internal/database/repository"
)

// fuzzyThreshold is the largest normalized edit distance still counted as a match.
const fuzzyThreshold = 0.4

// Search filters items by name. Substring matches come first, then names
// (or words within them) that are a small edit away from the query. Order is
// otherwise preserved. A blank query returns items unchanged.
func Search(items []repository.Item, query string) []repository.Item {
	q := strings.ToUpper(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	type hit struct {
		item  repository.Item
		score float64
	}
	var hits []hit
	for _, it := range items {
		if s, ok := matchScore(strings.ToUpper(it.Name), q); ok {
			hits = append(hits, hit{item: it, score: s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score < hits[j].score })
	out := make([]repository.Item, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.item)
	}
	return out
}

func matchScore(name, q string) (float64, bool) {
	if strings.Contains(name, q) {
		return 0, true
	}
	best := distance(name, q)
	for _, w := range strings.Fields(name) {
		if d := distance(w, q); d < best {
			best = d
		}
	}
	return best, best < fuzzyThreshold
}

func distance(a, b string) float64 {
	maxlen := len(a)
	if len(b) > maxlen {
		maxlen = len(b)
	}
	if maxlen == 0 {
		return 0
	}
	return float64(levenshtein.ComputeDistance(a, b)) / float64(maxlen)
}
