package models

// MatchType classifies how a required facility term matched a facility.
type MatchType string

const (
	// MatchExact is a case-insensitive name equality match.
	MatchExact MatchType = "exact"
	// MatchPartial is a substring containment match in either direction.
	MatchPartial MatchType = "partial"
	// MatchRelated is a match through category or the related-terms table.
	MatchRelated MatchType = "related"
)

// FacilityMatch records how one required term matched one facility entry.
// A term with no match has no FacilityMatch at all, not a zero-score one.
type FacilityMatch struct {
	Facility   Facility  `json:"facility"`
	MatchType  MatchType `json:"match_type"`
	Score      float64   `json:"score"`
	SearchTerm string    `json:"search_term"`
}

// CapacityInfo explains the capacity fit for a scored candidate.
type CapacityInfo struct {
	Requested int  `json:"requested"`
	Actual    int  `json:"actual"`
	IsMatch   bool `json:"is_match"`
}

// Slot is one bookable interval reported by the availability collaborator.
type Slot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AvailabilityInfo is the availability overlay result for one candidate.
type AvailabilityInfo struct {
	IsAvailable    bool   `json:"is_available"`
	AvailableSlots []Slot `json:"available_slots,omitempty"`
	// Note carries degradation detail, e.g. when the check could not run.
	Note string `json:"note,omitempty"`
}

// ScoredCandidate is one ranked location with its match rationale.
type ScoredCandidate struct {
	Location        *Location         `json:"location"`
	Score           float64           `json:"score"`
	MatchDetails    []string          `json:"match_details"`
	FacilityMatches []FacilityMatch   `json:"facility_matches,omitempty"`
	CapacityInfo    *CapacityInfo     `json:"capacity_info,omitempty"`
	Availability    *AvailabilityInfo `json:"availability,omitempty"`
}

// SearchMetadata describes how a search was executed.
type SearchMetadata struct {
	SearchTimeMs        int64    `json:"search_time_ms"`
	LocationsSearched   int      `json:"locations_searched"`
	AvailabilityChecked int      `json:"availability_checked"`
	AppliedFilters      []string `json:"applied_filters"`
}

// SearchResponse is the engine's response shape. It is well-formed even
// when nothing matched; Suggestions then explains what to loosen.
// TotalMatches counts viable candidates before truncation.
type SearchResponse struct {
	Results      []*ScoredCandidate `json:"results"`
	TotalMatches int                `json:"total_matches"`
	Metadata     SearchMetadata     `json:"metadata"`
	Suggestions  []string           `json:"suggestions,omitempty"`
}
