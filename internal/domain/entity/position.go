package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Coordinates is a WGS84 point. The zero value means "unknown".
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsKnown reports whether the coordinates hold a usable location.
// 0/0 is the sentinel clients send when no fix is available.
func (c Coordinates) IsKnown() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
		return false
	}
	if c.Lat == 0 && c.Lng == 0 {
		return false
	}

	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// PositionSample is one fix reported by a collector's device.
type PositionSample struct {
	CollectorID uuid.UUID   `json:"collector_id"`
	Coordinates Coordinates `json:"coordinates"`
	Accuracy    *float64    `json:"accuracy,omitempty"`
	RecordedAt  time.Time   `json:"recorded_at"`
}
