// Package market builds the collector-facing list of open collections.
package market

import (
	"slices"

	"numatu/internal/domain/entity"
	"numatu/internal/domain/proximity"
)

// Options tunes the composed view.
type Options struct {
	// MaxRadiusKm drops listings farther than this from the observer. Zero keeps everything.
	MaxRadiusKm float64
}

// Listing is one open collection as seen by an observer.
type Listing struct {
	Collection *entity.Collection `json:"collection"`
	DistanceKm *float64           `json:"distance_km,omitempty"`
}

// Compose returns the ANNOUNCED, unclaimed records. With a known observer position the
// result is filtered by radius and sorted nearest first; otherwise the full list is
// returned in input order.
func Compose(records []*entity.Collection, observer *entity.Coordinates, opts Options) []Listing {
	listings := make([]Listing, 0, len(records))
	located := observer != nil && observer.IsKnown()

	for _, c := range records {
		if c == nil || !c.IsAvailable() {
			continue
		}

		listing := Listing{Collection: c}
		if located && c.Location.IsKnown() {
			km := proximity.DistanceMeters(*observer, c.Location.Coordinates) / 1000
			if opts.MaxRadiusKm > 0 && km > opts.MaxRadiusKm {
				continue
			}
			listing.DistanceKm = &km
		}
		listings = append(listings, listing)
	}

	if !located {
		return listings
	}

	slices.SortStableFunc(listings, compareListings)

	return listings
}

// compareListings orders by distance, then age, then id. Listings without a distance go last.
func compareListings(a, b Listing) int {
	switch {
	case a.DistanceKm != nil && b.DistanceKm == nil:
		return -1
	case a.DistanceKm == nil && b.DistanceKm != nil:
		return 1
	case a.DistanceKm != nil && b.DistanceKm != nil && *a.DistanceKm != *b.DistanceKm:
		if *a.DistanceKm < *b.DistanceKm {
			return -1
		}
		return 1
	}

	if c := a.Collection.RequestedAt.Compare(b.Collection.RequestedAt); c != 0 {
		return c
	}

	return slices.Compare(a.Collection.ID[:], b.Collection.ID[:])
}
