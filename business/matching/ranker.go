package matching

import (
	"math"
	"sort"
	"strings"

	"myBizHub/domain"
)

type RankConfig struct {
	// single-field mode multiplier on the subsequence score
	TextWeight float64

	// structured mode
	NameWeight        float64
	PhoneWeight       float64
	EmailWeight       float64
	NameSimilarityMin float64

	// boost = min(count*UsageBoostPerUse, MaxUsageBoost)
	UsageBoostPerUse float64
	MaxUsageBoost    float64
}

func DefaultRankConfig() RankConfig {
	return RankConfig{
		TextWeight:        3,
		NameWeight:        3,
		PhoneWeight:       2,
		EmailWeight:       1.5,
		NameSimilarityMin: defaultNameSimilarityMin,
		UsageBoostPerUse:  0.1,
		MaxUsageBoost:     1.0,
	}
}

// Rank orders free-text items for query. See RankScored.
func Rank(query string, items []domain.SearchableItem, usage []domain.UsageRecord) []domain.SearchableItem {
	ranked := RankScored(query, items, usage, DefaultRankConfig())
	out := make([]domain.SearchableItem, len(ranked))
	for i, r := range ranked {
		out[i] = r.Item
	}
	return out
}

// RankScored scores every item against query. With a blank query the items
// come back in usage order (most used, then most recent, then unused items in
// input order) and every score is zero. Otherwise only items whose text
// matches are returned, best first, ties in input order.
func RankScored(query string, items []domain.SearchableItem, usage []domain.UsageRecord, cfg RankConfig) []domain.RankedItem {
	idx := usageIndex(usage)

	if strings.TrimSpace(query) == "" {
		order := usageOrder(len(items), func(i int) string { return items[i].ID }, idx)
		out := make([]domain.RankedItem, 0, len(items))
		for _, i := range order {
			out = append(out, domain.RankedItem{Item: items[i]})
		}
		return out
	}

	out := make([]domain.RankedItem, 0, len(items))
	for _, item := range items {
		base := FuzzySubsequenceScore(item.Text, query)
		if base <= 0 {
			continue
		}
		score := base*cfg.TextWeight + usageBoost(idx, item.ID, cfg)
		out = append(out, domain.RankedItem{Item: item, Score: score})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// RankStructured orders picker candidates for query. See RankStructuredScored.
func RankStructured(query string, candidates []domain.StructuredCandidate, usage []domain.UsageRecord) []domain.StructuredCandidate {
	ranked := RankStructuredScored(query, candidates, usage, DefaultRankConfig())
	out := make([]domain.StructuredCandidate, len(ranked))
	for i, r := range ranked {
		out[i] = r.Candidate
	}
	return out
}

// RankStructuredScored scores candidates on name, phone digits and email.
// The name contributes its subsequence score, or its similarity ratio when
// that is above NameSimilarityMin (typos); a phone whose digits contain the
// query's digits and an email containing the query add flat weights.
func RankStructuredScored(query string, candidates []domain.StructuredCandidate, usage []domain.UsageRecord, cfg RankConfig) []domain.RankedCandidate {
	idx := usageIndex(usage)

	q := strings.TrimSpace(query)
	if q == "" {
		order := usageOrder(len(candidates), func(i int) string { return candidates[i].ID }, idx)
		out := make([]domain.RankedCandidate, 0, len(candidates))
		for _, i := range order {
			out = append(out, domain.RankedCandidate{Candidate: candidates[i]})
		}
		return out
	}

	lq := lower(q)
	qDigits := NormalizePhone(q)

	out := make([]domain.RankedCandidate, 0, len(candidates))
	for _, c := range candidates {
		base := 0.0

		if c.Name != "" {
			nameScore := FuzzySubsequenceScore(c.Name, q)
			if nameScore == 0 {
				if sim := SimilarityRatio(lower(c.Name), lq); sim > cfg.NameSimilarityMin {
					nameScore = sim
				}
			}
			base += nameScore * cfg.NameWeight
		}

		if qDigits != "" && c.Phone != "" && strings.Contains(NormalizePhone(c.Phone), qDigits) {
			base += cfg.PhoneWeight
		}

		if c.Email != "" && strings.Contains(lower(c.Email), lq) {
			base += cfg.EmailWeight
		}

		if base <= 0 {
			continue
		}
		out = append(out, domain.RankedCandidate{
			Candidate: c,
			Score:     base + usageBoost(idx, c.ID, cfg),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

func usageIndex(usage []domain.UsageRecord) map[string]domain.UsageRecord {
	idx := make(map[string]domain.UsageRecord, len(usage))
	for _, u := range usage {
		if _, dup := idx[u.EntityID]; dup {
			continue
		}
		idx[u.EntityID] = u
	}
	return idx
}

func usageBoost(idx map[string]domain.UsageRecord, id string, cfg RankConfig) float64 {
	u, ok := idx[id]
	if !ok || u.Count <= 0 {
		return 0
	}
	return math.Min(float64(u.Count)*cfg.UsageBoostPerUse, cfg.MaxUsageBoost)
}

// usageOrder returns the indexes 0..n-1 sorted by usage count desc, then last
// use desc. Indexes without a usage record go last in their original order.
func usageOrder(n int, id func(int) string, idx map[string]domain.UsageRecord) []int {
	used := make([]int, 0, n)
	unused := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if _, ok := idx[id(i)]; ok {
			used = append(used, i)
		} else {
			unused = append(unused, i)
		}
	}

	sort.SliceStable(used, func(a, b int) bool {
		ua, ub := idx[id(used[a])], idx[id(used[b])]
		if ua.Count != ub.Count {
			return ua.Count > ub.Count
		}
		return ua.LastUsedMillis > ub.LastUsedMillis
	})
	return append(used, unused...)
}
