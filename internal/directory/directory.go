// Package directory provides access to the external space directory API:
// the location hierarchy, booking-annotated location lookups, and
// per-location availability checks. The search engine consumes only the
// two interfaces defined here; the REST client is one implementation.
package directory

import (
	"context"

	"github.com/hyperjump/basho/internal/models"
)

// HierarchyFilter narrows a location hierarchy fetch.
type HierarchyFilter struct {
	Kind             string
	ParentLocationID string
}

// BookingFilter narrows a booking-annotated location fetch. It is used
// when a time window is present, because the bookings form returns
// locations annotated with live booking context rather than the static
// hierarchy.
type BookingFilter struct {
	Category         string
	DateFrom         string
	DateTo           string
	ParentLocationID string
}

// AvailabilityQuery asks whether one location is free in a window.
type AvailabilityQuery struct {
	LocationID string
	DateFrom   string
	DateTo     string
}

// LocationProvider is the location collaborator contract.
type LocationProvider interface {
	// LocationHierarchy returns the static location tree.
	LocationHierarchy(ctx context.Context, filter HierarchyFilter) ([]models.Location, error)
	// BookableLocations returns locations with live booking context for
	// the given window.
	BookableLocations(ctx context.Context, filter BookingFilter) ([]models.Location, error)
}

// AvailabilityChecker is the availability collaborator contract. It must
// tolerate one call per evaluated candidate.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, query AvailabilityQuery) (*models.AvailabilityInfo, error)
}
