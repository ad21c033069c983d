package ranking

import (
	"math"
	"testing"

	"github.com/hyperjump/basho/internal/models"
)

func intPtr(n int) *int { return &n }

func capacityReq(n int) *models.ParsedRequirements {
	return &models.ParsedRequirements{Capacity: intPtr(n)}
}

func TestWeightedStrategy_NeutralFacilityScore(t *testing.T) {
	s := NewWeightedStrategy(nil)

	// No required facilities: the facility component must be the neutral
	// 100, never zero, for every candidate.
	ctx := &ScoringContext{
		Requirements:  &models.ParsedRequirements{},
		Location:      &models.Location{ID: "r1", Kind: models.KindRoom},
		FacilityScore: 100,
	}
	score := s.Score(ctx)
	// facility 100*0.35 + capacity 50*0.30 + availability 100*0.20 + hints 50*0.15
	want := 0.35*100 + 0.30*50 + 0.20*100 + 0.15*50
	if math.Abs(score-want) > 1e-9 {
		t.Errorf("Score() = %v, want %v", score, want)
	}
}

func TestWeightedStrategy_UnavailablePenalty(t *testing.T) {
	s := NewWeightedStrategy(nil)
	base := &ScoringContext{
		Requirements:        capacityReq(6),
		Location:            &models.Location{Capacity: intPtr(6)},
		FacilityScore:       100,
		AvailabilityChecked: true,
		Available:           true,
	}
	availableScore := s.Score(base)

	base.Available = false
	unavailableScore := s.Score(base)

	if unavailableScore >= availableScore {
		t.Errorf("unavailable (%v) should score below available (%v)", unavailableScore, availableScore)
	}
	if diff := availableScore - unavailableScore; math.Abs(diff-0.20*70) > 1e-9 {
		t.Errorf("availability delta = %v, want %v", diff, 0.20*70)
	}
}

func TestWeightedStrategy_WeightsSumToOne(t *testing.T) {
	cfg := DefaultConfig()
	sum := cfg.FacilityWeight + cfg.CapacityWeight + cfg.AvailabilityWeight + cfg.LocationWeight
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("default weights sum to %v, want 1.0", sum)
	}
	if cfg.LocationWeight >= cfg.FacilityWeight || cfg.LocationWeight >= cfg.CapacityWeight {
		t.Error("location hints must contribute least")
	}
}

func TestBestFitStrategy_Scenario(t *testing.T) {
	// Candidate capacity 8, requested 6, one exact facility match out of
	// one requested: 1.0 * 1.0 * e^(-0.15*2) before availability.
	s := NewBestFitStrategy(nil)
	ctx := &ScoringContext{
		Requirements: &models.ParsedRequirements{
			Capacity:   intPtr(6),
			Facilities: []string{"whiteboard"},
		},
		Location:      &models.Location{Capacity: intPtr(8)},
		FacilityScore: 100,
	}

	got := s.Score(ctx)
	want := math.Exp(-0.3) // ~0.741
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Score() = %v, want %v", got, want)
	}
}

func TestBestFitStrategy_ExactFitBonus(t *testing.T) {
	s := NewBestFitStrategy(nil)
	ctx := &ScoringContext{
		Requirements: capacityReq(6),
		Location:     &models.Location{Capacity: intPtr(6)},
	}
	if got := s.Score(ctx); math.Abs(got-1.2) > 1e-9 {
		t.Errorf("exact fit score = %v, want 1.2", got)
	}
}

func TestBestFitStrategy_UnknownCapacityNeutral(t *testing.T) {
	s := NewBestFitStrategy(nil)
	ctx := &ScoringContext{
		Requirements: capacityReq(6),
		Location:     &models.Location{}, // capacity unknown
	}
	if got := s.Score(ctx); math.Abs(got-0.9) > 1e-9 {
		t.Errorf("unknown capacity score = %v, want fixed neutral 0.9", got)
	}
}

func TestBestFitStrategy_UnavailableHalves(t *testing.T) {
	s := NewBestFitStrategy(nil)
	ctx := &ScoringContext{
		Requirements:        capacityReq(6),
		Location:            &models.Location{Capacity: intPtr(6)},
		AvailabilityChecked: true,
		Available:           false,
	}
	if got := s.Score(ctx); math.Abs(got-0.6) > 1e-9 {
		t.Errorf("unavailable score = %v, want 1.2 * 0.5 = 0.6", got)
	}
}

func TestBestFitStrategy_UncheckedHasNoPenalty(t *testing.T) {
	s := NewBestFitStrategy(nil)
	checked := &ScoringContext{
		Requirements:        capacityReq(4),
		Location:            &models.Location{Capacity: intPtr(4)},
		AvailabilityChecked: true,
		Available:           true,
	}
	unchecked := &ScoringContext{
		Requirements: capacityReq(4),
		Location:     &models.Location{Capacity: intPtr(4)},
	}
	if s.Score(checked) != s.Score(unchecked) {
		t.Error("an unchecked candidate must score as if available")
	}
}

func TestHintScorer(t *testing.T) {
	s := NewHintScorer(DefaultConfig())
	loc := &models.Location{
		Name:          "Aurora",
		Description:   "Corner room on the 3rd floor",
		QualifiedName: "HQ / Building B / Aurora",
	}

	tests := []struct {
		name  string
		hints []string
		want  float64
	}{
		{"no hints is neutral", nil, 50},
		{"all hints found", []string{"3rd floor", "building b"}, 100},
		{"half found", []string{"3rd floor", "near the lift"}, 50},
		{"none found", []string{"basement"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := &ScoringContext{
				Requirements: &models.ParsedRequirements{LocationHints: tt.hints},
				Location:     loc,
			}
			if got := s.Score(ctx); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}
