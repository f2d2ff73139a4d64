package delivery

import (
	"time"

	"fleetops/internal/core/domain/model/kernel"
)

// StatusUpdate is one entry of the append-only status history.
type StatusUpdate struct {
	status Status
	actor  kernel.UUID
	note   string
	at     time.Time
}

// RestoreStatusUpdate rehydrates a history entry from persistence.
func RestoreStatusUpdate(status Status, actor kernel.UUID, note string, at time.Time) StatusUpdate {
	return StatusUpdate{status: status, actor: actor, note: note, at: at}
}

// Status returns the status recorded by this entry.
func (u StatusUpdate) Status() Status { return u.status }

// Actor returns who triggered the transition.
func (u StatusUpdate) Actor() kernel.UUID { return u.actor }

// Note returns the free-text annotation.
func (u StatusUpdate) Note() string { return u.note }

// At returns the server timestamp of the transition.
func (u StatusUpdate) At() time.Time { return u.at }
