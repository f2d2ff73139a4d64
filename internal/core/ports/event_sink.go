package ports

import (
	"time"

	"fleetops/internal/core/domain/model/delivery"
	"fleetops/internal/core/domain/model/kernel"
)

// StatusEvent notifies subscribers of a delivery lifecycle change. Events
// are advisory; the status history on the aggregate is the durable record.
type StatusEvent struct {
	DeliveryID kernel.UUID
	Reference  string
	Status     delivery.Status
	Actor      kernel.UUID
	Timestamp  time.Time
	Note       string
}

// EventSink receives status events after a transition commits. Publish must
// never block the caller and never fail the operation that produced the
// event; slow or absent subscribers lose events.
type EventSink interface {
	Publish(event StatusEvent)
}

// NopEventSink discards every event.
type NopEventSink struct{}

// Publish implements EventSink.
func (NopEventSink) Publish(StatusEvent) {}
