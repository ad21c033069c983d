package ranking

import "math"

// DiscreteCapacityScore maps a requested/actual capacity pair onto the
// banded 0-100 scale used by the weighted composite: an exact fit scores
// highest, increasingly oversized rooms step down, undersized rooms score
// zero.
func DiscreteCapacityScore(requested, actual int, cfg *Config) float64 {
	if requested <= 0 {
		return cfg.CapacityUnknownScore
	}
	if actual < requested {
		return 0
	}
	if actual == requested {
		return cfg.CapacityExactScore
	}
	oversize := float64(actual-requested) / float64(requested)
	switch {
	case oversize <= 0.5:
		return cfg.CapacitySnugScore
	case oversize <= 1.0:
		return cfg.CapacityRoomyScore
	default:
		return cfg.CapacityOversizeScore
	}
}

// CapacityEfficiency is the continuous waste penalty used by the best-fit
// model: e^(-decay * (actual - requested)). It equals 1.0 at an exact fit
// and strictly decreases as the room outgrows the request. Undersized
// candidates are excluded by the filter before this runs.
func CapacityEfficiency(requested, actual int, decay float64) float64 {
	return math.Exp(-decay * float64(actual-requested))
}
