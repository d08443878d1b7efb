package stats

import (
	"sort"

	"github.com/verte-zerg/vimnav/internal/analyzer"
	"github.com/verte-zerg/vimnav/internal/model"
	"github.com/verte-zerg/vimnav/internal/target"
)

// SelectWeakKinds turns aggregated weakness counts into generator
// weights. The top kinds by count get a weight proportional to their
// share of the worst count, scaled by factor.
func SelectWeakKinds(aggs []model.WeaknessAggregate, top int, factor float64) target.Weights {
	weights := target.Weights{}
	if len(aggs) == 0 || factor <= 0 {
		return weights
	}
	candidates := make([]model.WeaknessAggregate, len(aggs))
	copy(candidates, aggs)
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Count == candidates[j].Count {
			return candidates[i].Kind < candidates[j].Kind
		}
		return candidates[i].Count > candidates[j].Count
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	worst := candidates[0].Count
	if worst <= 0 {
		return weights
	}
	for i := 0; i < top; i++ {
		c := candidates[i]
		if c.Count <= 0 {
			continue
		}
		kind := analyzer.WeaknessKind(c.Kind)
		weights[kind] = factor * float64(c.Count) / float64(worst)
	}
	return weights
}
