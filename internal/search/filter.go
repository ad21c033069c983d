package search

import (
	"fmt"
	"strings"

	"github.com/hyperjump/basho/internal/models"
)

// containerKinds are the hierarchy kinds that group other locations.
// Containers exist in the hierarchy but are never candidates themselves;
// the directory's kind set is otherwise open, so any unrecognized kind is
// treated as bookable.
var containerKinds = map[string]bool{
	"CAMPUS":   true,
	"BUILDING": true,
	"FLOOR":    true,
	"ZONE":     true,
}

// filterCandidates narrows the flattened location set by kind, capacity
// feasibility, and (on the free-text path) location hints. It returns the
// surviving candidates and the list of applied filter labels for the
// response metadata.
func filterCandidates(flat []*models.Location, reqs *models.ParsedRequirements, freeText bool) ([]*models.Location, []string) {
	var applied []string

	kind := reqs.Category
	// The generic meeting-capable tag never filters by kind; capacity
	// filtering naturally excludes non-meeting spaces.
	kindFilter := kind != "" && kind != models.KindMeetingSpace
	if kindFilter {
		applied = append(applied, "kind="+kind)
	}

	requested := 0
	if reqs.Capacity != nil {
		requested = *reqs.Capacity
		applied = append(applied, fmt.Sprintf("capacity>=%d", requested))
	}

	hintFilter := freeText && len(reqs.LocationHints) > 0
	if hintFilter {
		applied = append(applied, "location_hints")
	}

	var out []*models.Location
	for _, loc := range flat {
		if containerKinds[loc.Kind] {
			continue
		}
		if kindFilter && loc.Kind != kind {
			continue
		}
		if requested > 0 && !capacityFeasible(loc, requested) {
			continue
		}
		if hintFilter && !matchesAnyHint(loc, reqs.LocationHints) {
			continue
		}
		out = append(out, loc)
	}
	return out, applied
}

// capacityFeasible keeps a candidate that declares enough capacity, is a
// single-occupant kind serving a solo request, or declares no capacity at
// all. Unknown capacity defers the decision to scoring rather than
// excluding, whatever the kind.
func capacityFeasible(loc *models.Location, requested int) bool {
	if loc.Capacity == nil {
		return true
	}
	if *loc.Capacity >= requested {
		return true
	}
	return models.SingleOccupant(loc.Kind) && requested <= 1
}

// matchesAnyHint reports whether any hint substring appears in the
// candidate's searchable text.
func matchesAnyHint(loc *models.Location, hints []string) bool {
	haystack := strings.ToLower(loc.Name + " " + loc.Description + " " + loc.QualifiedName)
	for _, hint := range hints {
		if strings.Contains(haystack, strings.ToLower(hint)) {
			return true
		}
	}
	return false
}
