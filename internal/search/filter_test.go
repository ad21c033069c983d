package search

import (
	"testing"

	"github.com/hyperjump/basho/internal/models"
)

func intPtr(n int) *int { return &n }

func TestFilterCandidates(t *testing.T) {
	flat := []*models.Location{
		{ID: "b1", Name: "HQ", Kind: "BUILDING"},
		{ID: "r1", Name: "Board Room", Kind: models.KindRoom, Capacity: intPtr(12), QualifiedName: "HQ / Floor 3 / Board Room"},
		{ID: "r2", Name: "Huddle", Kind: models.KindRoom, Capacity: intPtr(4), QualifiedName: "HQ / Floor 1 / Huddle"},
		{ID: "r3", Name: "Workshop", Kind: models.KindRoom, QualifiedName: "HQ / Floor 1 / Workshop"},
		{ID: "d1", Name: "Desk 12", Kind: models.KindDesk, Capacity: intPtr(1), QualifiedName: "HQ / Floor 1 / Desk 12"},
		{ID: "p1", Name: "Phone Pod", Kind: models.KindPod, QualifiedName: "HQ / Floor 2 / Phone Pod"},
		{ID: "g1", Name: "Garden Terrace", Kind: "TERRACE", Capacity: intPtr(10), QualifiedName: "HQ / Roof / Garden Terrace"},
	}

	tests := []struct {
		name     string
		reqs     *models.ParsedRequirements
		freeText bool
		wantIDs  []string
	}{
		{
			name:    "containers are never candidates, unrecognized kinds are",
			reqs:    &models.ParsedRequirements{},
			wantIDs: []string{"r1", "r2", "r3", "d1", "p1", "g1"},
		},
		{
			name:    "specific kind filters",
			reqs:    &models.ParsedRequirements{Category: models.KindDesk},
			wantIDs: []string{"d1"},
		},
		{
			name:    "generic meeting tag does not filter by kind",
			reqs:    &models.ParsedRequirements{Category: models.KindMeetingSpace},
			wantIDs: []string{"r1", "r2", "r3", "d1", "p1", "g1"},
		},
		{
			name:    "capacity excludes undersized, keeps unknown of any kind",
			reqs:    &models.ParsedRequirements{Capacity: intPtr(6)},
			wantIDs: []string{"r1", "r3", "p1", "g1"},
		},
		{
			name:    "solo request keeps single-occupant kinds",
			reqs:    &models.ParsedRequirements{Capacity: intPtr(1)},
			wantIDs: []string{"r1", "r2", "r3", "d1", "p1", "g1"},
		},
		{
			name:     "hints filter on the free-text path",
			reqs:     &models.ParsedRequirements{LocationHints: []string{"floor 1"}},
			freeText: true,
			wantIDs:  []string{"r2", "r3", "d1"},
		},
		{
			name:    "hints do not filter on the structured path",
			reqs:    &models.ParsedRequirements{LocationHints: []string{"floor 1"}},
			wantIDs: []string{"r1", "r2", "r3", "d1", "p1", "g1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := filterCandidates(flat, tt.reqs, tt.freeText)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d candidates, want %d", len(got), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if got[i].ID != want {
					t.Errorf("candidate %d = %s, want %s", i, got[i].ID, want)
				}
			}
		})
	}
}

func TestFilterCandidatesAppliedFilters(t *testing.T) {
	flat := []*models.Location{
		{ID: "r1", Kind: models.KindRoom, Capacity: intPtr(8)},
	}
	reqs := &models.ParsedRequirements{
		Capacity:      intPtr(4),
		Category:      models.KindRoom,
		LocationHints: []string{"floor 2"},
	}
	_, applied := filterCandidates(flat, reqs, true)
	want := []string{"kind=ROOM", "capacity>=4", "location_hints"}
	if len(applied) != len(want) {
		t.Fatalf("applied = %v, want %v", applied, want)
	}
	for i := range want {
		if applied[i] != want[i] {
			t.Errorf("applied[%d] = %s, want %s", i, applied[i], want[i])
		}
	}
}
