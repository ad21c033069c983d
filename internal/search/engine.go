// Package search implements the search pipeline: requirement derivation,
// candidate filtering, facility matching, strategy scoring, the
// availability overlay, and result shaping.
package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/basho/internal/config"
	"github.com/hyperjump/basho/internal/directory"
	"github.com/hyperjump/basho/internal/matching"
	"github.com/hyperjump/basho/internal/models"
	"github.com/hyperjump/basho/internal/parser"
	"github.com/hyperjump/basho/internal/ranking"
)

// Engine is the single entry point for search. It owns the pipeline and
// picks the ranking strategy from the caller's intent: a capacity request
// takes the best-fit path, a plain query the weighted path.
type Engine struct {
	locations    directory.LocationProvider
	availability directory.AvailabilityChecker
	parser       *parser.Parser
	matcher      *matching.Matcher
	weighted     *ranking.Ranker
	bestFit      *ranking.Ranker
	cfg          *config.SearchConfig
	logger       *zap.Logger
}

// NewEngine creates a search engine. A nil search config or ranking config
// uses defaults; a nil logger is replaced with a no-op logger. The
// availability checker may be nil, in which case the overlay is skipped.
func NewEngine(
	locations directory.LocationProvider,
	availability directory.AvailabilityChecker,
	searchCfg *config.SearchConfig,
	rankingCfg *ranking.Config,
	logger *zap.Logger,
) *Engine {
	if searchCfg == nil {
		searchCfg = &config.SearchConfig{}
	}
	if searchCfg.DefaultLimit <= 0 {
		searchCfg.DefaultLimit = 10
	}
	if searchCfg.MaxLimit <= 0 {
		searchCfg.MaxLimit = 50
	}
	if searchCfg.MaxAvailabilityChecks <= 0 {
		searchCfg.MaxAvailabilityChecks = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		locations:    locations,
		availability: availability,
		parser:       parser.New(nil),
		matcher:      matching.NewMatcher(nil),
		weighted:     ranking.NewRanker(ranking.NewWeightedStrategy(rankingCfg)),
		bestFit:      ranking.NewRanker(ranking.NewBestFitStrategy(rankingCfg)),
		cfg:          searchCfg,
		logger:       logger,
	}
}

// Search executes the full pipeline for one request. It returns an error
// only for invalid requests; collaborator outages degrade to a well-formed
// empty response with suggestions.
func (e *Engine) Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResponse, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid search request: %w", err)
	}

	reqs := e.parser.Requirements(req)
	capacityRequested := reqs.Capacity != nil
	ranker := e.weighted
	if capacityRequested {
		ranker = e.bestFit
	}

	roots, err := e.fetchLocations(ctx, reqs, req.ParentLocationID)
	if err != nil {
		e.logger.Warn("location directory unavailable", zap.Error(err))
		return e.emptyResponse(start, []string{suggestDirectoryDown}), nil
	}

	flat := models.Flatten(roots)
	freeText := req.Query != ""
	candidates, applied := filterCandidates(flat, reqs, freeText)

	// A scoped search that finds nothing widens to all locations once,
	// so a caller pointing at the wrong building still gets answers.
	scopeWidened := false
	if len(candidates) == 0 && req.ParentLocationID != "" {
		globalRoots, gerr := e.fetchLocations(ctx, reqs, "")
		if gerr == nil {
			flat = models.Flatten(globalRoots)
			candidates, applied = filterCandidates(flat, reqs, freeText)
			scopeWidened = len(candidates) > 0
		}
	}

	scored := e.scoreCandidates(reqs, candidates, ranker, capacityRequested, len(req.Requirements) > 0)
	ranker.Sort(scored, requestedCapacity(reqs))

	checked := 0
	if reqs.HasTimeWindow() && e.availability != nil {
		checked = e.overlayAvailability(ctx, scored, reqs, ranker)
	}

	totalMatches := len(scored)
	limit := req.Limit
	if limit > e.cfg.MaxLimit {
		limit = e.cfg.MaxLimit
	}
	results := ranking.Truncate(scored, limit, e.cfg.DefaultLimit, capacityRequested)

	suggestions := buildSuggestions(reqs, scored, ranker.Strategy().GoodMatchThreshold())
	if scopeWidened {
		suggestions = append([]string{suggestScopeWidened}, suggestions...)
	}

	elapsed := time.Since(start)
	e.logger.Debug("search executed",
		zap.String("strategy", ranker.Strategy().Name()),
		zap.Int("locations_searched", len(flat)),
		zap.Int("candidates", totalMatches),
		zap.Int("availability_checked", checked),
		zap.Duration("elapsed", elapsed))

	return &models.SearchResponse{
		Results:      results,
		TotalMatches: totalMatches,
		Metadata: models.SearchMetadata{
			SearchTimeMs:        elapsed.Milliseconds(),
			LocationsSearched:   len(flat),
			AvailabilityChecked: checked,
			AppliedFilters:      applied,
		},
		Suggestions: suggestions,
	}, nil
}

// fetchLocations picks the fetch form: a time window asks for locations
// with live booking context, anything else asks for the static hierarchy.
func (e *Engine) fetchLocations(ctx context.Context, reqs *models.ParsedRequirements, parentID string) ([]models.Location, error) {
	if reqs.HasTimeWindow() {
		return e.locations.BookableLocations(ctx, directory.BookingFilter{
			Category:         reqs.Category,
			DateFrom:         reqs.TimeConstraints.DateFrom,
			DateTo:           reqs.TimeConstraints.DateTo,
			ParentLocationID: parentID,
		})
	}
	filter := directory.HierarchyFilter{ParentLocationID: parentID}
	if reqs.Category != "" && reqs.Category != models.KindMeetingSpace {
		filter.Kind = reqs.Category
	}
	return e.locations.LocationHierarchy(ctx, filter)
}

// scoreCandidates matches facilities and scores every surviving candidate.
// A candidate matching none of an explicitly requested facility list is
// dropped rather than ranked last: the caller asked for the facility, not
// a consolation. Facility terms that only came out of query parsing never
// drop a candidate; a zero match degrades to a low facility score instead.
func (e *Engine) scoreCandidates(reqs *models.ParsedRequirements, candidates []*models.Location, ranker *ranking.Ranker, capacityRequested, explicitFacilities bool) []*models.ScoredCandidate {
	scored := make([]*models.ScoredCandidate, 0, len(candidates))
	for _, loc := range candidates {
		matches := e.matcher.MatchAll(reqs.Facilities, loc.Facilities)
		if explicitFacilities && len(reqs.Facilities) > 0 && len(matches) == 0 {
			continue
		}
		facilityScore := matching.AggregateScore(matches, len(reqs.Facilities))

		sc := &ranking.ScoringContext{
			Requirements:    reqs,
			Location:        loc,
			FacilityMatches: matches,
			FacilityScore:   facilityScore,
		}
		cand := &models.ScoredCandidate{
			Location:        loc,
			Score:           ranker.Score(sc),
			FacilityMatches: matches,
			MatchDetails:    buildMatchDetails(reqs, loc, matches),
		}
		if capacityRequested {
			cand.CapacityInfo = capacityInfo(loc, *reqs.Capacity)
		}
		scored = append(scored, cand)
	}
	return scored
}

func capacityInfo(loc *models.Location, requested int) *models.CapacityInfo {
	info := &models.CapacityInfo{Requested: requested}
	if loc.Capacity != nil {
		info.Actual = *loc.Capacity
		info.IsMatch = *loc.Capacity >= requested
	}
	return info
}

// buildMatchDetails produces the human-readable match rationale shown with
// each result.
func buildMatchDetails(reqs *models.ParsedRequirements, loc *models.Location, matches []models.FacilityMatch) []string {
	details := make([]string, 0, len(matches)+2)
	for _, m := range matches {
		details = append(details, fmt.Sprintf("%s match: %s satisfies %q", m.MatchType, m.Facility.Name, m.SearchTerm))
	}
	if reqs.Capacity != nil {
		switch {
		case loc.Capacity == nil:
			details = append(details, fmt.Sprintf("capacity unknown for a request of %d", *reqs.Capacity))
		case *loc.Capacity == *reqs.Capacity:
			details = append(details, fmt.Sprintf("exact capacity fit for %d", *reqs.Capacity))
		case *loc.Capacity > *reqs.Capacity:
			details = append(details, fmt.Sprintf("seats %d for a request of %d", *loc.Capacity, *reqs.Capacity))
		default:
			details = append(details, fmt.Sprintf("single-occupant space serving a request of %d", *reqs.Capacity))
		}
	}
	for _, hint := range reqs.LocationHints {
		if matchesAnyHint(loc, []string{hint}) {
			details = append(details, fmt.Sprintf("located at %q", hint))
		}
	}
	return details
}

func requestedCapacity(reqs *models.ParsedRequirements) int {
	if reqs.Capacity == nil {
		return 0
	}
	return *reqs.Capacity
}

func (e *Engine) emptyResponse(start time.Time, suggestions []string) *models.SearchResponse {
	return &models.SearchResponse{
		Results:      []*models.ScoredCandidate{},
		TotalMatches: 0,
		Metadata: models.SearchMetadata{
			SearchTimeMs: time.Since(start).Milliseconds(),
		},
		Suggestions: suggestions,
	}
}
