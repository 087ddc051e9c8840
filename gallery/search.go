package gallery

import (
	"sort"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Filter keeps the ids fuzzily matching query, best matches first. An empty query keeps everything.
func Filter(ids []string, query string) []string {
	if query == "" {
		return ids
	}

	ranks := fuzzy.RankFindNormalizedFold(query, ids)
	sort.Stable(ranks)

	return lo.Map(ranks, func(r fuzzy.Rank, _ int) string {
		return r.Target
	})
}

// Suggest returns the known id closest to a mistyped one.
func Suggest(id string, ids []string) mo.Option[string] {
	if len(ids) == 0 {
		return mo.None[string]()
	}

	closest := lo.MinBy(ids, func(a, b string) bool {
		return levenshtein.Distance(id, a) < levenshtein.Distance(id, b)
	})
	return mo.Some(closest)
}
