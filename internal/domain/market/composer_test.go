package market

import (
	"testing"
	"time"

	"numatu/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

func open(title string, lat, lng float64, offset time.Duration) *entity.Collection {
	return &entity.Collection{
		ID:          uuid.New(),
		GeneratorID: uuid.New(),
		Status:      entity.StatusAnnounced,
		Title:       title,
		Location:    entity.Location{Coordinates: entity.Coordinates{Lat: lat, Lng: lng}},
		RequestedAt: base.Add(offset),
	}
}

func titles(listings []Listing) []string {
	out := make([]string, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.Collection.Title)
	}

	return out
}

func TestCompose_OnlyOpenRecords(t *testing.T) {
	collectorID := uuid.New()
	claimed := open("claimed", -23.55, -46.63, 0)
	claimed.Status = entity.StatusAccepted
	claimed.CollectorID = &collectorID

	// announced but still carrying a collector must never be listed
	inconsistent := open("inconsistent", -23.55, -46.63, 0)
	inconsistent.CollectorID = &collectorID

	completed := open("completed", -23.55, -46.63, 0)
	completed.Status = entity.StatusCompleted

	records := []*entity.Collection{open("a", -23.55, -46.63, 0), claimed, inconsistent, completed, nil, open("b", -23.56, -46.64, time.Minute)}

	assert.Equal(t, []string{"a", "b"}, titles(Compose(records, nil, Options{})))
}

func TestCompose_SortsByDistance(t *testing.T) {
	observer := &entity.Coordinates{Lat: -23.5505, Lng: -46.6333}
	records := []*entity.Collection{
		open("far", -23.60, -46.70, 0),
		open("near", -23.551, -46.634, time.Minute),
		open("mid", -23.56, -46.64, 2*time.Minute),
	}

	listings := Compose(records, observer, Options{})

	require.Len(t, listings, 3)
	assert.Equal(t, []string{"near", "mid", "far"}, titles(listings))
	for _, l := range listings {
		require.NotNil(t, l.DistanceKm)
	}
	assert.Less(t, *listings[0].DistanceKm, *listings[1].DistanceKm)
}

func TestCompose_RadiusFilter(t *testing.T) {
	observer := &entity.Coordinates{Lat: -23.5505, Lng: -46.6333}
	records := []*entity.Collection{
		open("far", -23.70, -46.90, 0),
		open("near", -23.551, -46.634, 0),
	}

	assert.Equal(t, []string{"near"}, titles(Compose(records, observer, Options{MaxRadiusKm: 5})))
}

func TestCompose_UnknownObserverReturnsEverything(t *testing.T) {
	records := []*entity.Collection{
		open("far", -23.70, -46.90, 0),
		open("near", -23.551, -46.634, 0),
	}

	for name, observer := range map[string]*entity.Coordinates{
		"nil":       nil,
		"zero zero": {},
	} {
		t.Run(name, func(t *testing.T) {
			listings := Compose(records, observer, Options{MaxRadiusKm: 1})
			assert.Equal(t, []string{"far", "near"}, titles(listings))
			assert.Nil(t, listings[0].DistanceKm)
		})
	}
}

func TestCompose_TiesAndUnlocatedRecords(t *testing.T) {
	observer := &entity.Coordinates{Lat: -23.5505, Lng: -46.6333}
	records := []*entity.Collection{
		open("no location", 0, 0, 0),
		open("newer", -23.56, -46.64, time.Hour),
		open("older", -23.56, -46.64, 0),
	}

	assert.Equal(t, []string{"older", "newer", "no location"}, titles(Compose(records, observer, Options{MaxRadiusKm: 50})))
}
