// Package entity contains the core business objects of the project.
package entity

import (
	"slices"

	"github.com/google/uuid"
)

// Role represents the part an actor plays in a collection handshake.
type Role string

const (
	// RoleAdvertiser is a waste generator publishing collections.
	RoleAdvertiser Role = "ADVERTISER"
	// RoleCollector picks collections up from the market.
	RoleCollector Role = "COLLECTOR"
	// RoleAdmin may cancel any non-terminal collection.
	RoleAdmin Role = "ADMIN"
	// RoleSystem is used for automatic transitions (proximity arrival, expiry).
	RoleSystem Role = "SYSTEM"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role can be carried by an authenticated user.
// RoleSystem is internal and never accepted from a token.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdvertiser, RoleCollector, RoleAdmin:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// Actor identifies who is asking for a transition.
type Actor struct {
	ID   uuid.UUID `json:"id"`
	Role Role      `json:"role"`
}

// SystemActor is the actor for transitions fired by the service itself.
func SystemActor() Actor {
	return Actor{ID: uuid.Nil, Role: RoleSystem}
}

// IsSystem reports whether the actor is the service itself.
func (a Actor) IsSystem() bool {
	return a.Role == RoleSystem
}

// IsAdmin reports whether the actor has administrative rights.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
