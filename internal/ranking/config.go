package ranking

// Config holds all tunables for the scoring system. Weights apply to the
// weighted composite and must sum to 1.0; facility and capacity dominate,
// location hints contribute least.
type Config struct {
	FacilityWeight     float64 `yaml:"facility_weight"`     // default: 0.35
	CapacityWeight     float64 `yaml:"capacity_weight"`     // default: 0.30
	AvailabilityWeight float64 `yaml:"availability_weight"` // default: 0.20
	LocationWeight     float64 `yaml:"location_weight"`     // default: 0.15

	// Discrete capacity scores (weighted model)
	CapacityExactScore    float64 `yaml:"capacity_exact_score"`    // default: 100
	CapacitySnugScore     float64 `yaml:"capacity_snug_score"`     // default: 90 (oversize <= 50%)
	CapacityRoomyScore    float64 `yaml:"capacity_roomy_score"`    // default: 70 (oversize 50-100%)
	CapacityOversizeScore float64 `yaml:"capacity_oversize_score"` // default: 50 (oversize > 100%)
	CapacityUnknownScore  float64 `yaml:"capacity_unknown_score"`  // default: 50

	// Availability scoring
	AvailableScore   float64 `yaml:"available_score"`   // default: 100
	UnavailableScore float64 `yaml:"unavailable_score"` // default: 30

	// Location hint scoring
	NeutralHintScore float64 `yaml:"neutral_hint_score"` // default: 50

	// Best-fit (multiplicative) model
	EfficiencyDecay       float64 `yaml:"efficiency_decay"`        // default: 0.15
	ExactFitBonus         float64 `yaml:"exact_fit_bonus"`         // default: 1.2
	UnavailablePenalty    float64 `yaml:"unavailable_penalty"`     // default: 0.5
	UnknownCapacityFactor float64 `yaml:"unknown_capacity_factor"` // default: 0.9
	BestFitTieEpsilon     float64 `yaml:"best_fit_tie_epsilon"`    // default: 0.01

	// Good-match thresholds per strategy, in each strategy's score scale.
	WeightedGoodMatch float64 `yaml:"weighted_good_match"` // default: 40
	BestFitGoodMatch  float64 `yaml:"best_fit_good_match"` // default: 0.4
}

// DefaultConfig returns the default scoring configuration.
func DefaultConfig() *Config {
	return &Config{
		FacilityWeight:     0.35,
		CapacityWeight:     0.30,
		AvailabilityWeight: 0.20,
		LocationWeight:     0.15,

		CapacityExactScore:    100,
		CapacitySnugScore:     90,
		CapacityRoomyScore:    70,
		CapacityOversizeScore: 50,
		CapacityUnknownScore:  50,

		AvailableScore:   100,
		UnavailableScore: 30,

		NeutralHintScore: 50,

		EfficiencyDecay:       0.15,
		ExactFitBonus:         1.2,
		UnavailablePenalty:    0.5,
		UnknownCapacityFactor: 0.9,
		BestFitTieEpsilon:     0.01,

		WeightedGoodMatch: 40,
		BestFitGoodMatch:  0.4,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *Config) ApplyDefaults() {
	defaults := DefaultConfig()

	if c.FacilityWeight == 0 {
		c.FacilityWeight = defaults.FacilityWeight
	}
	if c.CapacityWeight == 0 {
		c.CapacityWeight = defaults.CapacityWeight
	}
	if c.AvailabilityWeight == 0 {
		c.AvailabilityWeight = defaults.AvailabilityWeight
	}
	if c.LocationWeight == 0 {
		c.LocationWeight = defaults.LocationWeight
	}

	if c.CapacityExactScore == 0 {
		c.CapacityExactScore = defaults.CapacityExactScore
	}
	if c.CapacitySnugScore == 0 {
		c.CapacitySnugScore = defaults.CapacitySnugScore
	}
	if c.CapacityRoomyScore == 0 {
		c.CapacityRoomyScore = defaults.CapacityRoomyScore
	}
	if c.CapacityOversizeScore == 0 {
		c.CapacityOversizeScore = defaults.CapacityOversizeScore
	}
	if c.CapacityUnknownScore == 0 {
		c.CapacityUnknownScore = defaults.CapacityUnknownScore
	}

	if c.AvailableScore == 0 {
		c.AvailableScore = defaults.AvailableScore
	}
	if c.UnavailableScore == 0 {
		c.UnavailableScore = defaults.UnavailableScore
	}

	if c.NeutralHintScore == 0 {
		c.NeutralHintScore = defaults.NeutralHintScore
	}

	if c.EfficiencyDecay == 0 {
		c.EfficiencyDecay = defaults.EfficiencyDecay
	}
	if c.ExactFitBonus == 0 {
		c.ExactFitBonus = defaults.ExactFitBonus
	}
	if c.UnavailablePenalty == 0 {
		c.UnavailablePenalty = defaults.UnavailablePenalty
	}
	if c.UnknownCapacityFactor == 0 {
		c.UnknownCapacityFactor = defaults.UnknownCapacityFactor
	}
	if c.BestFitTieEpsilon == 0 {
		c.BestFitTieEpsilon = defaults.BestFitTieEpsilon
	}

	if c.WeightedGoodMatch == 0 {
		c.WeightedGoodMatch = defaults.WeightedGoodMatch
	}
	if c.BestFitGoodMatch == 0 {
		c.BestFitGoodMatch = defaults.BestFitGoodMatch
	}
}
