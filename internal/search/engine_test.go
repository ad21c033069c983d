package search

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/hyperjump/basho/internal/directory"
	"github.com/hyperjump/basho/internal/models"
)

type fakeProvider struct {
	mu sync.Mutex

	hierarchy []models.Location
	bookable  []models.Location
	scoped    []models.Location
	err       error

	hierarchyCalls int
	bookableCalls  int
}

func (f *fakeProvider) LocationHierarchy(_ context.Context, filter directory.HierarchyFilter) ([]models.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hierarchyCalls++
	if f.err != nil {
		return nil, f.err
	}
	if filter.ParentLocationID != "" {
		return f.scoped, nil
	}
	return f.hierarchy, nil
}

func (f *fakeProvider) BookableLocations(_ context.Context, _ directory.BookingFilter) ([]models.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookableCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.bookable, nil
}

type fakeChecker struct {
	mu        sync.Mutex
	available map[string]bool
	failFor   map[string]bool
	calls     int
}

func (f *fakeChecker) CheckAvailability(_ context.Context, query directory.AvailabilityQuery) (*models.AvailabilityInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failFor[query.LocationID] {
		return nil, errors.New("upstream timeout")
	}
	return &models.AvailabilityInfo{IsAvailable: f.available[query.LocationID]}, nil
}

func room(id, name string, capacity int, facilities ...string) models.Location {
	loc := models.Location{ID: id, Name: name, Kind: models.KindRoom}
	if capacity > 0 {
		loc.Capacity = &capacity
	}
	for _, f := range facilities {
		loc.Facilities = append(loc.Facilities, models.Facility{Name: f})
	}
	return loc
}

func TestSearchRejectsInvalidRequest(t *testing.T) {
	engine := NewEngine(&fakeProvider{}, nil, nil, nil, nil)
	_, err := engine.Search(context.Background(), &models.SearchRequest{Limit: -1})
	if err == nil {
		t.Fatal("expected error for negative limit")
	}
}

func TestSearchWeightedPath(t *testing.T) {
	provider := &fakeProvider{hierarchy: []models.Location{
		{ID: "b1", Name: "HQ", Kind: "BUILDING", Locations: []models.Location{
			room("r1", "Plain Room", 6),
			room("r2", "Writable Room", 6, "Whiteboard"),
			room("r3", "Glass Room", 6, "Glassboard"),
		}},
	}}
	engine := NewEngine(provider, nil, nil, nil, nil)

	resp, err := engine.Search(context.Background(), &models.SearchRequest{Query: "room with a whiteboard"})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	// The whiteboard term came from parsing alone, so r1 degrades to a
	// penalized score instead of being dropped; the exact match outranks
	// the related one.
	if resp.TotalMatches != 3 {
		t.Fatalf("TotalMatches = %d, want 3", resp.TotalMatches)
	}
	gotOrder := []string{resp.Results[0].Location.ID, resp.Results[1].Location.ID, resp.Results[2].Location.ID}
	if gotOrder[0] != "r2" || gotOrder[1] != "r3" || gotOrder[2] != "r1" {
		t.Errorf("order = %v, want [r2 r3 r1]", gotOrder)
	}
	if resp.Results[0].Score <= resp.Results[1].Score {
		t.Errorf("exact match score %.2f not above related %.2f", resp.Results[0].Score, resp.Results[1].Score)
	}
	if resp.Results[2].Score >= resp.Results[1].Score {
		t.Errorf("zero-match score %.2f not below related %.2f", resp.Results[2].Score, resp.Results[1].Score)
	}
	if len(resp.Results[0].MatchDetails) == 0 {
		t.Error("expected match details on the top result")
	}
	if resp.Metadata.LocationsSearched != 4 {
		t.Errorf("LocationsSearched = %d, want 4", resp.Metadata.LocationsSearched)
	}
}

func TestSearchExplicitFacilityDropsZeroMatch(t *testing.T) {
	provider := &fakeProvider{hierarchy: []models.Location{
		room("r1", "Plain Room", 6),
		room("r2", "Writable Room", 6, "Whiteboard"),
	}}
	engine := NewEngine(provider, nil, nil, nil, nil)

	resp, err := engine.Search(context.Background(), &models.SearchRequest{
		Requirements: []string{"whiteboard"},
	})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	// The caller asked for the facility outright, so a zero-match
	// candidate is dropped, not ranked last.
	if resp.TotalMatches != 1 {
		t.Fatalf("TotalMatches = %d, want 1", resp.TotalMatches)
	}
	if resp.Results[0].Location.ID != "r2" {
		t.Errorf("result = %s, want r2", resp.Results[0].Location.ID)
	}
}

func TestSearchBestFitShortlist(t *testing.T) {
	provider := &fakeProvider{hierarchy: []models.Location{
		room("r6", "Six", 6),
		room("r8", "Eight", 8),
		room("r12", "Twelve", 12),
		room("r20", "Twenty", 20),
		room("rx", "Mystery", 0),
	}}
	engine := NewEngine(provider, nil, nil, nil, nil)

	resp, err := engine.Search(context.Background(), &models.SearchRequest{Capacity: 6})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	// A capacity search with no explicit limit returns a shortlist of 3
	// but still reports every viable candidate.
	if len(resp.Results) != 3 {
		t.Fatalf("len(Results) = %d, want 3", len(resp.Results))
	}
	if resp.TotalMatches != 5 {
		t.Errorf("TotalMatches = %d, want 5", resp.TotalMatches)
	}
	if resp.Results[0].Location.ID != "r6" {
		t.Errorf("top result = %s, want the exact fit r6", resp.Results[0].Location.ID)
	}
	if got := resp.Results[0].CapacityInfo; got == nil || !got.IsMatch || got.Actual != 6 {
		t.Errorf("CapacityInfo = %+v, want exact match of 6", got)
	}
	for i := 1; i < len(resp.Results); i++ {
		if resp.Results[i].Score > resp.Results[i-1].Score {
			t.Errorf("results not in descending score order at %d", i)
		}
	}
}

func TestSearchExplicitLimitOverridesShortlist(t *testing.T) {
	provider := &fakeProvider{hierarchy: []models.Location{
		room("r1", "A", 6), room("r2", "B", 7), room("r3", "C", 8),
		room("r4", "D", 9), room("r5", "E", 10),
	}}
	engine := NewEngine(provider, nil, nil, nil, nil)

	resp, err := engine.Search(context.Background(), &models.SearchRequest{Capacity: 6, Limit: 5})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(resp.Results) != 5 {
		t.Errorf("len(Results) = %d, want 5", len(resp.Results))
	}
}

func TestSearchDirectoryOutage(t *testing.T) {
	provider := &fakeProvider{err: errors.New("connection refused")}
	engine := NewEngine(provider, nil, nil, nil, nil)

	resp, err := engine.Search(context.Background(), &models.SearchRequest{Query: "any room"})
	if err != nil {
		t.Fatalf("outage must degrade, got error: %v", err)
	}
	if resp.TotalMatches != 0 || len(resp.Results) != 0 {
		t.Errorf("expected empty results, got %d", len(resp.Results))
	}
	if len(resp.Suggestions) == 0 || !strings.Contains(resp.Suggestions[0], "unavailable") {
		t.Errorf("expected outage suggestion, got %v", resp.Suggestions)
	}
}

func TestSearchParentScopeFallback(t *testing.T) {
	provider := &fakeProvider{
		scoped:    nil,
		hierarchy: []models.Location{room("r1", "Open Space", 6)},
	}
	engine := NewEngine(provider, nil, nil, nil, nil)

	resp, err := engine.Search(context.Background(), &models.SearchRequest{
		Capacity:         4,
		ParentLocationID: "building-2",
	})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("len(Results) = %d, want 1 from the widened scope", len(resp.Results))
	}
	if provider.hierarchyCalls != 2 {
		t.Errorf("hierarchyCalls = %d, want 2 (scoped then global)", provider.hierarchyCalls)
	}
	found := false
	for _, s := range resp.Suggestions {
		if strings.Contains(s, "all locations") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a scope-widened suggestion, got %v", resp.Suggestions)
	}
}

func TestSearchAvailabilityOverlay(t *testing.T) {
	provider := &fakeProvider{bookable: []models.Location{
		room("r4", "Four", 4),
		room("r5", "Five", 5),
		room("r6", "Six", 6),
	}}
	checker := &fakeChecker{
		available: map[string]bool{"r5": true},
		failFor:   map[string]bool{"r6": true},
	}
	engine := NewEngine(provider, checker, nil, nil, nil)

	resp, err := engine.Search(context.Background(), &models.SearchRequest{
		Capacity: 4,
		DateFrom: "2024-06-01T09:00:00.000",
		DateTo:   "2024-06-01T10:00:00.000",
	})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if provider.bookableCalls != 1 || provider.hierarchyCalls != 0 {
		t.Errorf("window search must use the bookings form, got bookable=%d hierarchy=%d",
			provider.bookableCalls, provider.hierarchyCalls)
	}
	if resp.Metadata.AvailabilityChecked != 3 {
		t.Errorf("AvailabilityChecked = %d, want 3", resp.Metadata.AvailabilityChecked)
	}
	// Only r5 escapes the unavailability penalty; the failed check on r6
	// is treated as unavailable and carries a note.
	if resp.Results[0].Location.ID != "r5" {
		t.Errorf("top result = %s, want the available r5", resp.Results[0].Location.ID)
	}
	byID := map[string]*models.ScoredCandidate{}
	for _, r := range resp.Results {
		byID[r.Location.ID] = r
	}
	if a := byID["r4"].Availability; a == nil || a.IsAvailable {
		t.Errorf("r4 availability = %+v, want unavailable", a)
	}
	if a := byID["r6"].Availability; a == nil || a.IsAvailable || a.Note != availabilityUnknownNote {
		t.Errorf("r6 availability = %+v, want unavailable with the could-not-check note", a)
	}
	want := math.Exp(-0.3) * 0.5
	if got := byID["r6"].Score; math.Abs(got-want) > 1e-9 {
		t.Errorf("failed check score = %.4f, want the halved %.4f", got, want)
	}
	if byID["r6"].Score >= byID["r5"].Score {
		t.Errorf("failed check r6 (%.3f) must rank below available r5 (%.3f)",
			byID["r6"].Score, byID["r5"].Score)
	}
}

func TestSearchAvailabilityCheckCap(t *testing.T) {
	var rooms []models.Location
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		rooms = append(rooms, room("room-"+id, "Room "+id, 6))
	}
	provider := &fakeProvider{bookable: rooms}
	checker := &fakeChecker{available: map[string]bool{}}
	engine := NewEngine(provider, checker, nil, nil, nil)

	resp, err := engine.Search(context.Background(), &models.SearchRequest{
		Capacity: 4,
		DateFrom: "2024-06-01T09:00:00.000",
		DateTo:   "2024-06-01T10:00:00.000",
		Limit:    12,
	})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if checker.calls != 10 {
		t.Errorf("checker calls = %d, want the cap of 10", checker.calls)
	}
	if resp.Metadata.AvailabilityChecked != 10 {
		t.Errorf("AvailabilityChecked = %d, want 10", resp.Metadata.AvailabilityChecked)
	}
}
