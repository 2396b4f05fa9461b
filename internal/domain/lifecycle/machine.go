// Package lifecycle implements the collection handshake state machine.
//
// The machine is pure: every transition takes the current record and returns the next
// one without touching the input. Persistence, retries and notifications belong to the
// caller, which commits the returned record with a compare-and-swap on its version.
package lifecycle

import (
	"crypto/subtle"
	"strings"
	"time"

	"numatu/internal/domain/entity"
	domainerrors "numatu/internal/domain/errors"

	"github.com/google/uuid"
)

// DefaultClaimWindow is how long a claim is held before it expires.
const DefaultClaimWindow = 45 * time.Minute

// Draft is the generator-supplied payload of a new collection.
type Draft struct {
	Material    entity.Material
	Title       string
	Description string
	Notes       string
	Priority    entity.Priority
	WeightKg    float64
	Location    entity.Location
	PhotoURLs   []string
}

// Machine validates and applies lifecycle transitions.
type Machine struct {
	now         func() time.Time
	codes       CodeGenerator
	newID       func() uuid.UUID
	claimWindow time.Duration
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		m.now = now
	}
}

// WithCodeGenerator overrides the confirmation code source.
func WithCodeGenerator(codes CodeGenerator) Option {
	return func(m *Machine) {
		m.codes = codes
	}
}

// WithIDGenerator overrides how new collection ids are assigned.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(m *Machine) {
		m.newID = newID
	}
}

// WithClaimWindow sets the claim expiry window. Zero disables expiry.
func WithClaimWindow(window time.Duration) Option {
	return func(m *Machine) {
		m.claimWindow = window
	}
}

// NewMachine creates a machine with a wall clock, crypto/rand codes and a 45 minute window.
func NewMachine(opts ...Option) *Machine {
	m := &Machine{
		now:         time.Now,
		codes:       RandomCodeGenerator{},
		newID:       uuid.New,
		claimWindow: DefaultClaimWindow,
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Now returns the machine's notion of the current time.
func (m *Machine) Now() time.Time {
	return m.now().UTC()
}

// ClaimWindow returns the configured claim expiry window.
func (m *Machine) ClaimWindow() time.Duration {
	return m.claimWindow
}

// Create builds a new ANNOUNCED collection owned by the generator.
func (m *Machine) Create(generator entity.Actor, draft Draft) (*entity.Collection, error) {
	if generator.Role != entity.RoleAdvertiser && !generator.IsAdmin() {
		return nil, domainerrors.ErrCollectionForbidden.WithDetails("only advertisers publish collections")
	}

	now := m.now().UTC()
	priority := draft.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}

	return &entity.Collection{
		ID:          m.newID(),
		GeneratorID: generator.ID,
		Status:      entity.StatusAnnounced,
		Material:    draft.Material,
		Title:       draft.Title,
		Description: draft.Description,
		Notes:       draft.Notes,
		Priority:    priority,
		WeightKg:    draft.WeightKg,
		Location:    draft.Location,
		PhotoURLs:   append([]string(nil), draft.PhotoURLs...),
		RequestedAt: now,
		UpdatedAt:   now,
	}, nil
}

// Claim assigns an ANNOUNCED, unclaimed collection to the collector and issues the
// confirmation code. Anything else is a lost race from the collector's point of view.
func (m *Machine) Claim(current *entity.Collection, collector entity.Actor) (*entity.Collection, error) {
	if collector.Role != entity.RoleCollector {
		return nil, domainerrors.ErrCollectionForbidden.WithDetails("only collectors claim collections")
	}
	if !current.IsAvailable() {
		return nil, domainerrors.ErrCollectionConflict.WithDetails("collection is " + current.Status.String())
	}

	code, err := m.codes.Generate()
	if err != nil {
		return nil, err
	}

	next := current.Clone()
	at := m.stamp(current)
	collectorID := collector.ID

	next.Status = entity.StatusAccepted
	next.CollectorID = &collectorID
	next.ConfirmationCode = code
	next.AcceptedAt = &at
	next.Abandoned = false
	if m.claimWindow > 0 {
		expiresAt := at.Add(m.claimWindow)
		next.ExpiresAt = &expiresAt
	}
	next.UpdatedAt = at

	return next, nil
}

// Depart moves an accepted collection en route.
func (m *Machine) Depart(current *entity.Collection, collector entity.Actor) (*entity.Collection, error) {
	if current.Status != entity.StatusAccepted {
		return nil, invalidState("depart", current.Status)
	}
	if !current.IsAssignedTo(collector.ID) || collector.IsSystem() {
		return nil, domainerrors.ErrCollectionForbidden.WithDetails("caller is not the assigned collector")
	}

	next := current.Clone()
	at := m.stamp(current)
	next.Status = entity.StatusEnRoute
	next.EnRouteAt = &at
	next.Abandoned = false
	next.UpdatedAt = at

	return next, nil
}

// Arrive marks the collector as present. The assigned collector or the system
// (proximity trigger) may report it.
func (m *Machine) Arrive(current *entity.Collection, actor entity.Actor) (*entity.Collection, error) {
	if current.Status != entity.StatusEnRoute {
		return nil, invalidState("arrive", current.Status)
	}
	if !actor.IsSystem() && !current.IsAssignedTo(actor.ID) {
		return nil, domainerrors.ErrCollectionForbidden.WithDetails("caller is not the assigned collector")
	}

	next := current.Clone()
	at := m.stamp(current)
	next.Status = entity.StatusArrived
	next.ArrivedAt = &at
	next.Abandoned = false
	next.UpdatedAt = at

	return next, nil
}

// Confirm closes the handshake when the generator types the collector's code.
// The code is retained on the record for audit.
func (m *Machine) Confirm(current *entity.Collection, generator entity.Actor, code string) (*entity.Collection, error) {
	if current.Status != entity.StatusArrived {
		return nil, invalidState("confirm", current.Status)
	}
	if !current.IsOwnedBy(generator.ID) || generator.IsSystem() {
		return nil, domainerrors.ErrCollectionForbidden.WithDetails("caller is not the generator")
	}

	input := strings.TrimSpace(code)
	if current.ConfirmationCode == "" ||
		subtle.ConstantTimeCompare([]byte(input), []byte(current.ConfirmationCode)) != 1 {
		return nil, domainerrors.ErrInvalidCode
	}

	next := current.Clone()
	at := m.stamp(current)
	next.Status = entity.StatusCompleted
	next.CompletedAt = &at
	next.ExpiresAt = nil
	next.Abandoned = false
	next.UpdatedAt = at

	return next, nil
}

// Abandon releases the claim and puts the collection back on the market.
func (m *Machine) Abandon(current *entity.Collection, collector entity.Actor) (*entity.Collection, error) {
	if !current.Status.IsClaimed() {
		return nil, invalidState("abandon", current.Status)
	}
	if !current.IsAssignedTo(collector.ID) || collector.IsSystem() {
		return nil, domainerrors.ErrCollectionForbidden.WithDetails("caller is not the assigned collector")
	}

	return m.release(current), nil
}

// Expire auto-abandons an ACCEPTED or EN_ROUTE claim whose window elapsed.
func (m *Machine) Expire(current *entity.Collection) (*entity.Collection, error) {
	if !m.IsExpired(current) {
		return nil, invalidState("expire", current.Status)
	}

	return m.release(current), nil
}

// IsExpired reports whether the claim window of the collection has elapsed.
func (m *Machine) IsExpired(current *entity.Collection) bool {
	if current.Status != entity.StatusAccepted && current.Status != entity.StatusEnRoute {
		return false
	}
	if current.ExpiresAt == nil {
		return false
	}

	return !m.now().Before(*current.ExpiresAt)
}

// Cancel withdraws a non-terminal collection. Only its generator or an admin may cancel.
func (m *Machine) Cancel(current *entity.Collection, actor entity.Actor) (*entity.Collection, error) {
	if current.IsTerminal() {
		return nil, invalidState("cancel", current.Status)
	}
	if !actor.IsAdmin() && (!current.IsOwnedBy(actor.ID) || actor.IsSystem()) {
		return nil, domainerrors.ErrCollectionForbidden.WithDetails("only the generator or an admin can cancel")
	}

	next := current.Clone()
	at := m.stamp(current)
	next.Status = entity.StatusCancelled
	next.CollectorID = nil
	next.ConfirmationCode = ""
	next.ExpiresAt = nil
	next.CancelledAt = &at
	next.Abandoned = false
	next.UpdatedAt = at

	return next, nil
}

func (m *Machine) release(current *entity.Collection) *entity.Collection {
	next := current.Clone()
	at := m.stamp(current)

	next.Status = entity.StatusAnnounced
	next.CollectorID = nil
	next.ConfirmationCode = ""
	next.AcceptedAt = nil
	next.EnRouteAt = nil
	next.ArrivedAt = nil
	next.ExpiresAt = nil
	next.Abandoned = true
	next.UpdatedAt = at

	return next
}

// stamp returns the timestamp for the next transition, never earlier than one already taken.
func (m *Machine) stamp(current *entity.Collection) time.Time {
	now := m.now().UTC()
	if latest := current.LatestTimestamp(); now.Before(latest) {
		return latest
	}

	return now
}

func invalidState(event string, status entity.CollectionStatus) error {
	return domainerrors.ErrInvalidState.WithDetails("cannot " + event + " from " + status.String())
}
