// Package matching evaluates required facility terms against a location's
// amenity list.
package matching

import (
	"strings"

	"github.com/hyperjump/basho/internal/models"
)

// Match scores by type. Exact beats partial beats related.
const (
	exactScore   = 100.0
	partialScore = 75.0
	relatedScore = 50.0
)

// Aggregate weighting: coverage dominates the quality of the individual
// matches.
const (
	coverageWeight   = 0.7
	matchScoreWeight = 0.3
)

// relatedLink is one undirected edge in the related-terms table.
type relatedLink struct {
	a, b string
}

// Matcher matches facility terms using an immutable related-terms table.
type Matcher struct {
	links []relatedLink
}

// NewMatcher builds a matcher from a related-terms table mapping a base
// term to the terms it is interchangeable with. Pass nil for the curated
// default table.
func NewMatcher(related map[string][]string) *Matcher {
	if related == nil {
		related = DefaultRelatedTerms()
	}
	var links []relatedLink
	for base, terms := range related {
		for _, term := range terms {
			links = append(links, relatedLink{strings.ToLower(base), strings.ToLower(term)})
		}
	}
	return &Matcher{links: links}
}

// DefaultRelatedTerms returns the curated table of interchangeable
// facility vocabulary.
func DefaultRelatedTerms() map[string][]string {
	return map[string][]string{
		"screen":           {"monitor", "display", "tv", "television", "projector"},
		"conference phone": {"polycom", "speaker phone", "speakerphone", "phone"},
		"whiteboard":       {"flip chart", "flipchart", "glassboard"},
		"video":            {"zoom", "teams", "webex", "camera"},
		"desk":             {"workstation", "workspace"},
	}
}

// Match evaluates one required term against a candidate's facilities.
// Facilities are tried in declared order and the first one that satisfies
// any rule wins; no attempt is made to find the best among several
// matching facilities. Returns nil when nothing matches.
func (m *Matcher) Match(term string, facilities []models.Facility) *models.FacilityMatch {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return nil
	}

	for _, facility := range facilities {
		name := strings.ToLower(facility.Name)
		if name == "" {
			continue
		}

		if name == needle {
			return &models.FacilityMatch{
				Facility:   facility,
				MatchType:  models.MatchExact,
				Score:      exactScore,
				SearchTerm: term,
			}
		}
		if strings.Contains(name, needle) || strings.Contains(needle, name) {
			return &models.FacilityMatch{
				Facility:   facility,
				MatchType:  models.MatchPartial,
				Score:      partialScore,
				SearchTerm: term,
			}
		}
		if m.sameCategory(needle, facility) || m.isRelated(needle, name) {
			return &models.FacilityMatch{
				Facility:   facility,
				MatchType:  models.MatchRelated,
				Score:      relatedScore,
				SearchTerm: term,
			}
		}
	}
	return nil
}

// MatchAll evaluates every required term, keeping one match per term that
// found one. Terms that matched nothing are simply absent from the result.
func (m *Matcher) MatchAll(terms []string, facilities []models.Facility) []models.FacilityMatch {
	var matches []models.FacilityMatch
	for _, term := range terms {
		if match := m.Match(term, facilities); match != nil {
			matches = append(matches, *match)
		}
	}
	return matches
}

// sameCategory reports whether the term names the facility's declared
// category (either containment direction).
func (m *Matcher) sameCategory(needle string, facility models.Facility) bool {
	category := strings.ToLower(facility.Category)
	if category == "" {
		return false
	}
	return strings.Contains(category, needle) || strings.Contains(needle, category)
}

// isRelated reports whether the related-terms table links the term and the
// facility name in either direction.
func (m *Matcher) isRelated(needle, name string) bool {
	for _, link := range m.links {
		if strings.Contains(needle, link.a) && strings.Contains(name, link.b) {
			return true
		}
		if strings.Contains(needle, link.b) && strings.Contains(name, link.a) {
			return true
		}
	}
	return false
}

// AggregateScore folds per-term matches into one 0-100 facility score:
// 70% term coverage, 30% mean match quality. A request with no required
// terms is neutral, not zero.
func AggregateScore(matches []models.FacilityMatch, requiredCount int) float64 {
	if requiredCount == 0 {
		return 100
	}
	coverage := float64(len(matches)) / float64(requiredCount) * 100

	average := 0.0
	if len(matches) > 0 {
		sum := 0.0
		for _, match := range matches {
			sum += match.Score
		}
		average = sum / float64(len(matches))
	}
	return coverageWeight*coverage + matchScoreWeight*average
}
