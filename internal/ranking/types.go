// Package ranking provides multi-factor scoring and ordering for candidate
// locations.
package ranking

import "github.com/hyperjump/basho/internal/models"

// ScoringContext provides all the context needed to score one candidate.
// It is built once per candidate and read-only to the scorers.
type ScoringContext struct {
	// Requirements is the canonical requirement set for the request.
	Requirements *models.ParsedRequirements
	// Location is the candidate being scored.
	Location *models.Location
	// FacilityMatches are the per-term matches found for this candidate.
	FacilityMatches []models.FacilityMatch
	// FacilityScore is the 0-100 aggregate facility score.
	FacilityScore float64
	// AvailabilityChecked reports whether the overlay ran for this
	// candidate. Unchecked candidates are scored without the
	// availability component.
	AvailabilityChecked bool
	// Available is the overlay result; meaningful only when checked.
	Available bool
}

// RequestedCapacity returns the requested capacity, or 0 when none was
// requested.
func (c *ScoringContext) RequestedCapacity() int {
	if c.Requirements == nil || c.Requirements.Capacity == nil {
		return 0
	}
	return *c.Requirements.Capacity
}

// Scorer is the interface for the individual scoring components. Scores
// are on a 0-100 scale.
type Scorer interface {
	// Score calculates the component score for a candidate.
	Score(ctx *ScoringContext) float64
	// Name returns the component name for breakdowns and logging.
	Name() string
}

// Strategy combines component scores into one composite relevance value.
// The two implementations answer different caller intents: WeightedStrategy
// for general multi-factor search, BestFitStrategy for perfect-fit-first
// booking flows.
type Strategy interface {
	// Score computes the composite score for a candidate.
	Score(ctx *ScoringContext) float64
	// TieEpsilon is the score delta under which two candidates count as
	// tied for tie-break purposes.
	TieEpsilon() float64
	// GoodMatchThreshold is the composite score below which a result is
	// considered a poor match (drives fallback suggestions).
	GoodMatchThreshold() float64
	// Name returns the strategy name.
	Name() string
}

// ScoreBreakdown records the per-component contributions for one
// candidate, for explainability and debugging.
type ScoreBreakdown struct {
	FinalScore float64
	Components map[string]float64
}

// NewScoreBreakdown creates an empty breakdown.
func NewScoreBreakdown() *ScoreBreakdown {
	return &ScoreBreakdown{Components: make(map[string]float64)}
}
