package models

import "fmt"

// SearchRequest is the single entry-point request. A free-text query and
// explicit fields may be combined; explicit fields take precedence and
// parsed values only fill gaps.
type SearchRequest struct {
	Query            string   `json:"query,omitempty"`
	Capacity         int      `json:"capacity,omitempty"`
	Requirements     []string `json:"requirements,omitempty"`
	LocationKind     string   `json:"location_kind,omitempty"`
	DateFrom         string   `json:"date_from,omitempty"`
	DateTo           string   `json:"date_to,omitempty"`
	ParentLocationID string   `json:"parent_location_id,omitempty"`
	Limit            int      `json:"limit,omitempty"`
}

// Validate rejects programmer-error inputs. A request that matches nothing
// is not an error; a negative limit or capacity is.
func (r *SearchRequest) Validate() error {
	if r.Limit < 0 {
		return fmt.Errorf("limit cannot be negative")
	}
	if r.Capacity < 0 {
		return fmt.Errorf("capacity cannot be negative")
	}
	if r.Query == "" && r.Capacity == 0 && len(r.Requirements) == 0 && r.LocationKind == "" {
		return fmt.Errorf("request must include a query or at least one structured field")
	}
	return nil
}

// HasTimeWindow reports whether an explicit booking window was supplied.
func (r *SearchRequest) HasTimeWindow() bool {
	return r.DateFrom != "" && r.DateTo != ""
}

// TimeConstraints holds the booking window derived from a request.
// Duration is in minutes.
type TimeConstraints struct {
	DateFrom string `json:"date_from,omitempty"`
	DateTo   string `json:"date_to,omitempty"`
	Duration int    `json:"duration,omitempty"`
}

// ParsedRequirements is the canonical requirement set derived once per
// request and immutable afterward. Facilities are deduplicated canonical
// names; LocationHints keep their order of appearance in the query.
type ParsedRequirements struct {
	Capacity        *int             `json:"capacity,omitempty"`
	Facilities      []string         `json:"facilities,omitempty"`
	LocationHints   []string         `json:"location_hints,omitempty"`
	Category        string           `json:"category,omitempty"`
	TimeConstraints *TimeConstraints `json:"time_constraints,omitempty"`
}

// HasTimeWindow reports whether a usable booking window was derived.
func (p *ParsedRequirements) HasTimeWindow() bool {
	return p.TimeConstraints != nil && p.TimeConstraints.DateFrom != "" && p.TimeConstraints.DateTo != ""
}
