package search

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/hyperjump/basho/internal/directory"
	"github.com/hyperjump/basho/internal/matching"
	"github.com/hyperjump/basho/internal/models"
	"github.com/hyperjump/basho/internal/ranking"
)

const availabilityUnknownNote = "could not check availability"

// overlayAvailability checks availability for the top-ranked candidates
// concurrently, rescores the checked subset, and re-sorts only that
// subset. Candidates past the check cap keep their pre-overlay order. A
// failed check is treated as unavailable: the candidate takes the
// unavailability penalty and a note explains the gap. Returns the number
// of candidates checked.
func (e *Engine) overlayAvailability(ctx context.Context, scored []*models.ScoredCandidate, reqs *models.ParsedRequirements, ranker *ranking.Ranker) int {
	n := e.cfg.MaxAvailabilityChecks
	if n > len(scored) {
		n = len(scored)
	}
	if n == 0 {
		return 0
	}

	outcomes := make([]*models.AvailabilityInfo, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cand := scored[i]
			info, err := e.availability.CheckAvailability(ctx, directory.AvailabilityQuery{
				LocationID: cand.Location.ID,
				DateFrom:   reqs.TimeConstraints.DateFrom,
				DateTo:     reqs.TimeConstraints.DateTo,
			})
			if err != nil {
				e.logger.Warn("availability check failed",
					zap.String("location_id", cand.Location.ID),
					zap.Error(err))
				outcomes[i] = &models.AvailabilityInfo{
					IsAvailable: false,
					Note:        availabilityUnknownNote,
				}
				return
			}
			outcomes[i] = info
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		cand := scored[i]
		cand.Availability = outcomes[i]
		sc := &ranking.ScoringContext{
			Requirements:        reqs,
			Location:            cand.Location,
			FacilityMatches:     cand.FacilityMatches,
			FacilityScore:       matching.AggregateScore(cand.FacilityMatches, len(reqs.Facilities)),
			AvailabilityChecked: true,
			Available:           outcomes[i].IsAvailable,
		}
		cand.Score = ranker.Score(sc)
	}

	ranker.Sort(scored[:n], requestedCapacity(reqs))
	return n
}
