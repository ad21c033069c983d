// Package integration exercises the full pipeline against a fake space
// directory API: REST client, cache, parsing, matching, ranking, and the
// availability overlay together.
package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/hyperjump/basho/internal/config"
	"github.com/hyperjump/basho/internal/directory"
	"github.com/hyperjump/basho/internal/models"
	"github.com/hyperjump/basho/internal/search"
)

func capacityOf(n int) *int { return &n }

// fakeDirectory serves the three upstream endpoints from a fixed tree.
func fakeDirectory(t *testing.T, unavailable map[string]bool) *httptest.Server {
	t.Helper()
	tree := []models.Location{
		{ID: "hq", Name: "HQ", Kind: "BUILDING", Locations: []models.Location{
			{ID: "floor-1", Name: "Floor 1", Kind: "FLOOR", Locations: []models.Location{
				{ID: "huddle", Name: "Huddle", Kind: models.KindRoom, Capacity: capacityOf(4),
					QualifiedName: "HQ / Floor 1 / Huddle",
					Facilities:    []models.Facility{{Name: "Whiteboard"}}},
				{ID: "boardroom", Name: "Boardroom", Kind: models.KindRoom, Capacity: capacityOf(8),
					QualifiedName: "HQ / Floor 1 / Boardroom",
					Facilities:    []models.Facility{{Name: "Whiteboard"}, {Name: "Projector"}}},
			}},
			{ID: "floor-2", Name: "Floor 2", Kind: "FLOOR", Locations: []models.Location{
				{ID: "workshop", Name: "Workshop", Kind: models.KindRoom, Capacity: capacityOf(6),
					QualifiedName: "HQ / Floor 2 / Workshop",
					Facilities:    []models.Facility{{Name: "Whiteboard"}}},
				{ID: "desk-9", Name: "Desk 9", Kind: models.KindDesk, Capacity: capacityOf(1),
					QualifiedName: "HQ / Floor 2 / Desk 9"},
			}},
		}},
	}

	mux := http.NewServeMux()
	serveTree := func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"locations": tree})
	}
	mux.HandleFunc("/api/locations", serveTree)
	mux.HandleFunc("/api/bookings", serveTree)
	mux.HandleFunc("/api/availability", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("location_id")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"available": !unavailable[id]})
	})
	return httptest.NewServer(mux)
}

func newEngine(t *testing.T, baseURL string) *search.Engine {
	t.Helper()
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	client := directory.NewClient(directory.ClientConfig{
		BaseURL: baseURL,
	}, directory.NewMemoryCache(100), zap.NewNop())
	return search.NewEngine(client, client, &cfg.Search, &cfg.Ranking, zap.NewNop())
}

func TestIntegration_FreeTextSearch(t *testing.T) {
	upstream := fakeDirectory(t, nil)
	defer upstream.Close()
	engine := newEngine(t, upstream.URL)

	resp, err := engine.Search(context.Background(), &models.SearchRequest{
		Query: "room for 6 people with a whiteboard",
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.TotalMatches < 1 {
		t.Fatalf("expected results, got %d", resp.TotalMatches)
	}
	// Exact capacity fit with the facility wins over the bigger room.
	if resp.Results[0].Location.ID != "workshop" {
		t.Errorf("top result = %s, want workshop", resp.Results[0].Location.ID)
	}
	for _, r := range resp.Results {
		if r.Location.ID == "huddle" {
			t.Error("undersized huddle room must not appear for a 6-person request")
		}
		if r.Location.ID == "desk-9" {
			t.Error("desks must not appear for a 6-person request")
		}
	}
}

func TestIntegration_AvailabilityWindow(t *testing.T) {
	upstream := fakeDirectory(t, map[string]bool{"workshop": true})
	defer upstream.Close()
	engine := newEngine(t, upstream.URL)

	resp, err := engine.Search(context.Background(), &models.SearchRequest{
		Capacity: 6,
		DateFrom: "2024-06-01T09:00:00.000",
		DateTo:   "2024-06-01T10:00:00.000",
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Metadata.AvailabilityChecked == 0 {
		t.Fatal("expected availability checks for a windowed search")
	}
	// The booked exact fit is halved and falls behind the free boardroom.
	if resp.Results[0].Location.ID != "boardroom" {
		t.Errorf("top result = %s, want the available boardroom", resp.Results[0].Location.ID)
	}
	for _, r := range resp.Results {
		if r.Location.ID == "workshop" {
			if r.Availability == nil || r.Availability.IsAvailable {
				t.Errorf("workshop availability = %+v, want unavailable", r.Availability)
			}
		}
	}
}

func TestIntegration_NoMatchesSuggestions(t *testing.T) {
	upstream := fakeDirectory(t, nil)
	defer upstream.Close()
	engine := newEngine(t, upstream.URL)

	resp, err := engine.Search(context.Background(), &models.SearchRequest{Capacity: 50})
	if err != nil {
		t.Fatal(err)
	}
	if resp.TotalMatches != 0 {
		t.Fatalf("expected no matches for capacity 50, got %d", resp.TotalMatches)
	}
	if len(resp.Suggestions) == 0 {
		t.Error("expected suggestions for an empty result set")
	}
}
