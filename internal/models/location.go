// Package models defines the request, location, and result types shared
// across the Basho engine.
package models

// Location kinds as reported by the directory collaborator.
const (
	KindRoom     = "ROOM"
	KindDesk     = "DESK"
	KindDeskBank = "DESK_BANK"
	KindPod      = "POD"

	// KindMeetingSpace is the generic meeting-capable tag. It is valid in
	// requests but never appears on a concrete location; a search for it
	// relies on capacity filtering instead of kind equality.
	KindMeetingSpace = "MEETING_SPACE"
)

// Facility is a single amenity attached to a location.
type Facility struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// Location is one node in the directory hierarchy. The tree is owned
// top-down by the directory collaborator and read-only here; a nil
// Capacity means unknown or not applicable, not zero.
type Location struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	Kind          string     `json:"kind"`
	Capacity      *int       `json:"capacity,omitempty"`
	Facilities    []Facility `json:"facilities,omitempty"`
	QualifiedName string     `json:"qualified_name,omitempty"`
	Locations     []Location `json:"locations,omitempty"`
}

// SingleOccupant reports whether the kind seats exactly one person.
func SingleOccupant(kind string) bool {
	return kind == KindDesk || kind == KindPod
}

// Flatten walks the location tree once and returns every node as a flat
// list. The upstream hierarchy is assumed acyclic, but a visited set
// guards against a cycle in the source data turning a search into an
// infinite walk.
func Flatten(roots []Location) []*Location {
	visited := make(map[string]bool, len(roots))
	var out []*Location
	var walk func(locs []Location)
	walk = func(locs []Location) {
		for i := range locs {
			loc := &locs[i]
			if loc.ID != "" {
				if visited[loc.ID] {
					continue
				}
				visited[loc.ID] = true
			}
			out = append(out, loc)
			walk(loc.Locations)
		}
	}
	walk(roots)
	return out
}
