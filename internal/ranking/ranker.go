package ranking

import (
	"math"
	"sort"

	"github.com/hyperjump/basho/internal/models"
)

// DefaultCapacityResultCap bounds a capacity search with no explicit limit
// to a decisive shortlist.
const DefaultCapacityResultCap = 3

// Ranker orders scored candidates under one strategy's tie rules.
type Ranker struct {
	strategy Strategy
}

// NewRanker creates a ranker for the given strategy.
func NewRanker(strategy Strategy) *Ranker {
	return &Ranker{strategy: strategy}
}

// Strategy returns the ranking strategy in use.
func (r *Ranker) Strategy() Strategy {
	return r.strategy
}

// Score computes the composite score for one candidate context.
func (r *Ranker) Score(ctx *ScoringContext) float64 {
	return r.strategy.Score(ctx)
}

// Sort orders candidates by descending composite score. When two scores
// are tied under the strategy's epsilon and a capacity was requested, the
// smaller declared capacity ranks first: waste minimization, not just
// score.
func (r *Ranker) Sort(candidates []*models.ScoredCandidate, requestedCapacity int) {
	eps := r.strategy.TieEpsilon()
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if math.Abs(a.Score-b.Score) <= eps {
			if requestedCapacity > 0 {
				ac, bc := declaredCapacity(a), declaredCapacity(b)
				if ac > 0 && bc > 0 && ac != bc {
					return ac < bc
				}
			}
			return false
		}
		return a.Score > b.Score
	})
}

func declaredCapacity(c *models.ScoredCandidate) int {
	if c.Location == nil || c.Location.Capacity == nil {
		return 0
	}
	return *c.Location.Capacity
}

// Truncate caps the result list. An explicit limit always wins; otherwise
// a capacity search is capped at DefaultCapacityResultCap and anything
// else at defaultLimit. The caller reports the untruncated count as
// TotalMatches.
func Truncate(candidates []*models.ScoredCandidate, limit, defaultLimit int, capacityRequested bool) []*models.ScoredCandidate {
	n := limit
	if n <= 0 {
		if capacityRequested {
			n = DefaultCapacityResultCap
		} else {
			n = defaultLimit
		}
	}
	if n <= 0 || n >= len(candidates) {
		return candidates
	}
	return candidates[:n]
}
