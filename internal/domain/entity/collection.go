package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// CollectionStatus is the lifecycle state of a collection. Values are the wire names
// used by the mobile and web clients.
type CollectionStatus string

const (
	StatusAnnounced CollectionStatus = "ANUNCIADA"
	StatusAccepted  CollectionStatus = "ACEITA"
	StatusEnRoute   CollectionStatus = "EM_ROTA"
	StatusArrived   CollectionStatus = "EM_COLETA"
	StatusCompleted CollectionStatus = "CONCLUIDA"
	StatusCancelled CollectionStatus = "CANCELADA"
)

// String returns the string representation of the status.
func (s CollectionStatus) String() string {
	return string(s)
}

// IsValid checks if the status is a known lifecycle state.
func (s CollectionStatus) IsValid() bool {
	switch s {
	case StatusAnnounced, StatusAccepted, StatusEnRoute, StatusArrived, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is possible.
func (s CollectionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsClaimed reports whether a collector holds an active claim in this state.
func (s CollectionStatus) IsClaimed() bool {
	return s == StatusAccepted || s == StatusEnRoute || s == StatusArrived
}

// Material is the kind of waste offered.
type Material string

const (
	MaterialPaper       Material = "Papel"
	MaterialPlastic     Material = "Plástico"
	MaterialGlass       Material = "Vidro"
	MaterialMetal       Material = "Metal"
	MaterialOrganic     Material = "Orgânico"
	MaterialElectronics Material = "Eletrônicos"
	MaterialOther       Material = "Outros"
)

// Materials lists every accepted material in display order.
var Materials = []Material{
	MaterialPaper, MaterialPlastic, MaterialGlass, MaterialMetal,
	MaterialOrganic, MaterialElectronics, MaterialOther,
}

// String returns the string representation of the material.
func (m Material) String() string {
	return string(m)
}

// IsValid checks if the material is one of the accepted kinds.
func (m Material) IsValid() bool {
	return slices.Contains(Materials, m)
}

// Priority is the urgency flagged by the generator.
type Priority string

const (
	PriorityLow    Priority = "Baixa"
	PriorityMedium Priority = "Média"
	PriorityHigh   Priority = "Alta"
)

// IsValid checks if the priority is known. The empty priority is accepted and means medium.
func (p Priority) IsValid() bool {
	switch p {
	case "", PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Location is where the pickup happens.
type Location struct {
	Coordinates
	Address      string `json:"address"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
}

// Collection is one pickup request moving through the handshake lifecycle.
type Collection struct {
	ID          uuid.UUID        `json:"id"`
	GeneratorID uuid.UUID        `json:"generator_id"`
	CollectorID *uuid.UUID       `json:"collector_id,omitempty"`
	Status      CollectionStatus `json:"status"`

	Material    Material `json:"material"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	WeightKg    float64  `json:"weight_kg"`
	Location    Location `json:"location"`
	PhotoURLs   []string `json:"photo_urls,omitempty"`

	ConfirmationCode string `json:"confirmation_code,omitempty"`

	RequestedAt time.Time  `json:"requested_at"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
	EnRouteAt   *time.Time `json:"en_route_at,omitempty"`
	ArrivedAt   *time.Time `json:"arrived_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Version is the compare-and-swap token of the stored record.
	Version int64 `json:"version"`

	// Abandoned marks a record that just went back to the market because its collector
	// gave up or the claim expired. It lives for one change event and is never stored.
	Abandoned bool `json:"abandoned,omitempty"`
}

// Clone returns a deep copy of the collection.
func (c *Collection) Clone() *Collection {
	if c == nil {
		return nil
	}

	cloned := *c
	cloned.CollectorID = cloneUUID(c.CollectorID)
	cloned.PhotoURLs = slices.Clone(c.PhotoURLs)
	cloned.AcceptedAt = cloneTime(c.AcceptedAt)
	cloned.EnRouteAt = cloneTime(c.EnRouteAt)
	cloned.ArrivedAt = cloneTime(c.ArrivedAt)
	cloned.CompletedAt = cloneTime(c.CompletedAt)
	cloned.CancelledAt = cloneTime(c.CancelledAt)
	cloned.ExpiresAt = cloneTime(c.ExpiresAt)

	return &cloned
}

// IsTerminal reports whether the collection reached COMPLETED or CANCELLED.
func (c *Collection) IsTerminal() bool {
	return c.Status.IsTerminal()
}

// IsAssignedTo reports whether the given user is the current collector.
func (c *Collection) IsAssignedTo(userID uuid.UUID) bool {
	return c.CollectorID != nil && *c.CollectorID == userID
}

// IsOwnedBy reports whether the given user published the collection.
func (c *Collection) IsOwnedBy(userID uuid.UUID) bool {
	return c.GeneratorID == userID
}

// IsAvailable reports whether the collection can be claimed from the market.
func (c *Collection) IsAvailable() bool {
	return c.Status == StatusAnnounced && c.CollectorID == nil
}

// RedactedFor returns a copy safe to show to the viewer. The confirmation code is the
// generator's proof that the collector is physically present, so only the assigned
// collector and admins see it while the handshake is open.
func (c *Collection) RedactedFor(viewer Actor) *Collection {
	cloned := c.Clone()
	if cloned.ConfirmationCode == "" {
		return cloned
	}

	switch {
	case viewer.IsAdmin(), viewer.IsSystem():
	case cloned.IsAssignedTo(viewer.ID):
	case cloned.Status == StatusCompleted && cloned.IsOwnedBy(viewer.ID):
	default:
		cloned.ConfirmationCode = ""
	}

	return cloned
}

// LatestTimestamp returns the most recent transition timestamp recorded on the collection.
func (c *Collection) LatestTimestamp() time.Time {
	latest := c.RequestedAt
	for _, ts := range []*time.Time{c.AcceptedAt, c.EnRouteAt, c.ArrivedAt, c.CompletedAt, c.CancelledAt} {
		if ts != nil && ts.After(latest) {
			latest = *ts
		}
	}

	return latest
}

func cloneUUID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id

	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t

	return &v
}
