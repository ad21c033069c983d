package search

import (
	"fmt"
	"strings"

	"github.com/hyperjump/basho/internal/models"
)

const (
	suggestDirectoryDown = "the location directory is temporarily unavailable; please retry shortly"
	suggestScopeWidened  = "no matches in the requested location; showing results from all locations"
)

// buildSuggestions returns guidance when a search found nothing, or when
// every surviving candidate scored below the strategy's good-match
// threshold. Strong results return nil.
func buildSuggestions(reqs *models.ParsedRequirements, scored []*models.ScoredCandidate, threshold float64) []string {
	if len(scored) > 0 && bestScore(scored) >= threshold {
		return nil
	}

	var out []string
	if len(scored) == 0 {
		out = append(out, "no locations matched all requirements")
	} else {
		out = append(out, "only weak matches were found; consider loosening the requirements")
	}

	if reqs.Capacity != nil {
		out = append(out, fmt.Sprintf("try a smaller capacity than %d, or drop the capacity requirement", *reqs.Capacity))
	}
	if len(reqs.Facilities) > 0 {
		out = append(out, fmt.Sprintf("remove some facility requirements (currently: %s)", strings.Join(reqs.Facilities, ", ")))
	}
	if len(reqs.LocationHints) > 0 {
		out = append(out, "widen the location, e.g. search the whole building instead of one floor")
	}
	if reqs.HasTimeWindow() {
		out = append(out, "try a different time window")
	}
	if len(out) == 1 {
		out = append(out, "broaden the search terms")
	}
	return out
}

func bestScore(scored []*models.ScoredCandidate) float64 {
	best := scored[0].Score
	for _, c := range scored[1:] {
		if c.Score > best {
			best = c.Score
		}
	}
	return best
}
