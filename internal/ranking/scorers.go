package ranking

import (
	"strings"

	"github.com/hyperjump/basho/internal/models"
)

// FacilityScorer surfaces the matcher's aggregate facility score. A
// request with no required terms scores a neutral 100 for every candidate.
type FacilityScorer struct{}

// Name returns the scorer name.
func (s *FacilityScorer) Name() string { return "facility" }

// Score returns the pre-computed 0-100 facility aggregate.
func (s *FacilityScorer) Score(ctx *ScoringContext) float64 {
	return ctx.FacilityScore
}

// CapacityScorer scores capacity fit on the discrete banded scale.
type CapacityScorer struct {
	config *Config
}

// NewCapacityScorer creates a CapacityScorer with the given config.
func NewCapacityScorer(config *Config) *CapacityScorer {
	return &CapacityScorer{config: config}
}

// Name returns the scorer name.
func (s *CapacityScorer) Name() string { return "capacity" }

// Score returns the discrete capacity score. No requested capacity or an
// unknown candidate capacity scores the fixed neutral value rather than
// rewarding or penalizing.
func (s *CapacityScorer) Score(ctx *ScoringContext) float64 {
	requested := ctx.RequestedCapacity()
	if requested == 0 {
		return s.config.CapacityUnknownScore
	}
	if ctx.Location == nil || ctx.Location.Capacity == nil {
		return s.config.CapacityUnknownScore
	}
	return DiscreteCapacityScore(requested, *ctx.Location.Capacity, s.config)
}

// AvailabilityScorer folds the overlay result into the 0-100 scale.
type AvailabilityScorer struct {
	config *Config
}

// NewAvailabilityScorer creates an AvailabilityScorer with the given config.
func NewAvailabilityScorer(config *Config) *AvailabilityScorer {
	return &AvailabilityScorer{config: config}
}

// Name returns the scorer name.
func (s *AvailabilityScorer) Name() string { return "availability" }

// Score returns the availability score. Candidates the overlay never
// reached are scored as if no window was requested, so the soft check cap
// cannot reorder the unchecked remainder.
func (s *AvailabilityScorer) Score(ctx *ScoringContext) float64 {
	if !ctx.AvailabilityChecked {
		return s.config.AvailableScore
	}
	if ctx.Available {
		return s.config.AvailableScore
	}
	return s.config.UnavailableScore
}

// HintScorer scores how many location-hint fragments appear in the
// candidate's name, description, and qualified path.
type HintScorer struct {
	config *Config
}

// NewHintScorer creates a HintScorer with the given config.
func NewHintScorer(config *Config) *HintScorer {
	return &HintScorer{config: config}
}

// Name returns the scorer name.
func (s *HintScorer) Name() string { return "location" }

// Score returns the matched-hint fraction scaled to 0-100, or the neutral
// score when the request carried no hints.
func (s *HintScorer) Score(ctx *ScoringContext) float64 {
	if ctx.Requirements == nil || len(ctx.Requirements.LocationHints) == 0 {
		return s.config.NeutralHintScore
	}
	return HintAffinity(ctx.Requirements.LocationHints, ctx.Location) * 100
}

// HintAffinity returns the fraction of hint substrings found
// case-insensitively in the location's searchable text.
func HintAffinity(hints []string, loc *models.Location) float64 {
	if len(hints) == 0 || loc == nil {
		return 0
	}
	haystack := strings.ToLower(loc.Name + " " + loc.Description + " " + loc.QualifiedName)
	matched := 0
	for _, hint := range hints {
		if strings.Contains(haystack, strings.ToLower(hint)) {
			matched++
		}
	}
	return float64(matched) / float64(len(hints))
}
