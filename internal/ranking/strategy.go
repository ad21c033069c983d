package ranking

// WeightedStrategy is the general multi-factor composite: the weighted sum
// of the facility, capacity, availability, and location-hint components.
// Ties require exact score equality.
type WeightedStrategy struct {
	config       *Config
	facility     *FacilityScorer
	capacity     *CapacityScorer
	availability *AvailabilityScorer
	hint         *HintScorer
}

// NewWeightedStrategy creates the weighted strategy. A nil config uses
// defaults.
func NewWeightedStrategy(config *Config) *WeightedStrategy {
	if config == nil {
		config = DefaultConfig()
	}
	config.ApplyDefaults()
	return &WeightedStrategy{
		config:       config,
		facility:     &FacilityScorer{},
		capacity:     NewCapacityScorer(config),
		availability: NewAvailabilityScorer(config),
		hint:         NewHintScorer(config),
	}
}

// Name returns the strategy name.
func (s *WeightedStrategy) Name() string { return "weighted" }

// TieEpsilon returns 0: weighted scores tie only on exact equality.
func (s *WeightedStrategy) TieEpsilon() float64 { return 0 }

// GoodMatchThreshold returns the weighted-scale poor-match cutoff.
func (s *WeightedStrategy) GoodMatchThreshold() float64 {
	return s.config.WeightedGoodMatch
}

// Score computes the weighted composite:
// Score = (Wf * Sf) + (Wc * Sc) + (Wa * Sa) + (Wl * Sl)
func (s *WeightedStrategy) Score(ctx *ScoringContext) float64 {
	return (s.config.FacilityWeight * s.facility.Score(ctx)) +
		(s.config.CapacityWeight * s.capacity.Score(ctx)) +
		(s.config.AvailabilityWeight * s.availability.Score(ctx)) +
		(s.config.LocationWeight * s.hint.Score(ctx))
}

// ScoreWithBreakdown computes the composite and the per-component values.
func (s *WeightedStrategy) ScoreWithBreakdown(ctx *ScoringContext) *ScoreBreakdown {
	breakdown := NewScoreBreakdown()
	breakdown.Components[s.facility.Name()] = s.facility.Score(ctx)
	breakdown.Components[s.capacity.Name()] = s.capacity.Score(ctx)
	breakdown.Components[s.availability.Name()] = s.availability.Score(ctx)
	breakdown.Components[s.hint.Name()] = s.hint.Score(ctx)
	breakdown.FinalScore = s.Score(ctx)
	return breakdown
}

// BestFitStrategy is the perfect-fit-first composite for booking flows:
// base score 1.0 successively multiplied by each applicable factor. An
// exact capacity fit earns a bonus; every seat of waste decays the score
// exponentially.
type BestFitStrategy struct {
	config *Config
}

// NewBestFitStrategy creates the best-fit strategy. A nil config uses
// defaults.
func NewBestFitStrategy(config *Config) *BestFitStrategy {
	if config == nil {
		config = DefaultConfig()
	}
	config.ApplyDefaults()
	return &BestFitStrategy{config: config}
}

// Name returns the strategy name.
func (s *BestFitStrategy) Name() string { return "best_fit" }

// TieEpsilon returns the near-equality delta for multiplicative scores.
func (s *BestFitStrategy) TieEpsilon() float64 {
	return s.config.BestFitTieEpsilon
}

// GoodMatchThreshold returns the multiplicative-scale poor-match cutoff.
func (s *BestFitStrategy) GoodMatchThreshold() float64 {
	return s.config.BestFitGoodMatch
}

// Score multiplies the applicable factors into a base of 1.0. Factors for
// absent request dimensions stay at 1.0 so they cannot reorder candidates.
func (s *BestFitStrategy) Score(ctx *ScoringContext) float64 {
	score := 1.0

	if ctx.Requirements != nil && len(ctx.Requirements.Facilities) > 0 {
		score *= ctx.FacilityScore / 100
	}

	if requested := ctx.RequestedCapacity(); requested > 0 {
		switch {
		case ctx.Location == nil || ctx.Location.Capacity == nil:
			score *= s.config.UnknownCapacityFactor
		case *ctx.Location.Capacity == requested:
			score *= s.config.ExactFitBonus
		default:
			score *= CapacityEfficiency(requested, *ctx.Location.Capacity, s.config.EfficiencyDecay)
		}
	}

	if ctx.AvailabilityChecked && !ctx.Available {
		score *= s.config.UnavailablePenalty
	}

	if ctx.Requirements != nil && len(ctx.Requirements.LocationHints) > 0 {
		// Hints nudge rather than dominate: a candidate matching none
		// keeps half its score.
		affinity := HintAffinity(ctx.Requirements.LocationHints, ctx.Location)
		score *= 0.5 + 0.5*affinity
	}

	return score
}
