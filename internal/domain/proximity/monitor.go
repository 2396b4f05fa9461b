// Package proximity turns collector position samples into automatic arrival events.
package proximity

import (
	"math"
	"sync"
	"time"

	"numatu/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// DefaultArrivalRadiusMeters is the distance under which a collector counts as arrived.
const DefaultArrivalRadiusMeters = 30.0

// DistanceMeters returns the great-circle distance between two points.
// Unknown coordinates are infinitely far from everything.
func DistanceMeters(a, b entity.Coordinates) float64 {
	if !a.IsKnown() || !b.IsKnown() {
		return math.Inf(1)
	}

	return geo.DistanceHaversine(orb.Point{a.Lng, a.Lat}, orb.Point{b.Lng, b.Lat})
}

// latch identifies one EN_ROUTE instance of a collection. A re-claim produces a new
// enRouteAt, so a fresh instance starts with fresh state.
type latch struct {
	collectionID uuid.UUID
	enRouteAt    time.Time
}

func (l latch) matches(other latch) bool {
	return l.collectionID == other.collectionID && l.enRouteAt.Equal(other.enRouteAt)
}

// collectorState is scoped to a single latch; nothing survives into the next instance.
type collectorState struct {
	instance       latch
	lastRecordedAt time.Time
	fired          bool
}

// Monitor tracks, per collector and EN_ROUTE instance, the last sample seen and whether
// arrival already fired. It is safe for concurrent use.
type Monitor struct {
	mu           sync.Mutex
	radiusMeters float64
	collectors   map[uuid.UUID]*collectorState
	now          func() time.Time
}

// NewMonitor creates a monitor. A non-positive radius selects the default.
func NewMonitor(radiusMeters float64) *Monitor {
	if radiusMeters <= 0 {
		radiusMeters = DefaultArrivalRadiusMeters
	}

	return &Monitor{
		radiusMeters: radiusMeters,
		collectors:   make(map[uuid.UUID]*collectorState),
		now:          time.Now,
	}
}

// RadiusMeters returns the arrival threshold.
func (m *Monitor) RadiusMeters() float64 {
	return m.radiusMeters
}

// Observe feeds one sample against the collector's EN_ROUTE target and reports whether
// arrival should be fired now. It returns true at most once per EN_ROUTE instance.
// Sample times after the local clock are treated as now.
func (m *Monitor) Observe(sample entity.PositionSample, target *entity.Collection) bool {
	if target == nil || target.Status != entity.StatusEnRoute || target.EnRouteAt == nil {
		return false
	}
	if !target.IsAssignedTo(sample.CollectorID) {
		return false
	}

	instance := latch{collectionID: target.ID, enRouteAt: *target.EnRouteAt}

	m.mu.Lock()
	defer m.mu.Unlock()

	state := m.collectors[sample.CollectorID]
	if state == nil || !state.instance.matches(instance) {
		state = &collectorState{instance: instance}
		m.collectors[sample.CollectorID] = state
	}

	if recordedAt := sample.RecordedAt; !recordedAt.IsZero() {
		if now := m.now(); recordedAt.After(now) {
			recordedAt = now
		}
		if recordedAt.Before(state.lastRecordedAt) {
			return false
		}
		state.lastRecordedAt = recordedAt
	}

	if state.fired {
		return false
	}

	if DistanceMeters(sample.Coordinates, target.Location.Coordinates) > m.radiusMeters {
		return false
	}

	state.fired = true

	return true
}

// Release re-arms the trigger for the collection after the arrival could not be committed.
func (m *Monitor) Release(collectorID, collectionID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if state := m.collectors[collectorID]; state != nil && state.instance.collectionID == collectionID {
		state.fired = false
	}
}

// ForgetCollection drops the collector's state when it belongs to collectionID.
func (m *Monitor) ForgetCollection(collectorID, collectionID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if state := m.collectors[collectorID]; state != nil && state.instance.collectionID == collectionID {
		delete(m.collectors, collectorID)
	}
}

// Tracked returns the number of collectors with live state.
func (m *Monitor) Tracked() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.collectors)
}
