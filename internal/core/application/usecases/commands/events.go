package commands

import (
	"time"

	"fleetops/internal/core/domain/model/delivery"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/ports"
)

// publishStatus emits a status event after a committed transition. Events
// are advisory and never fail the command; a nil sink drops them.
func publishStatus(sink ports.EventSink, d *delivery.Delivery, actor kernel.UUID, note string) {
	if sink == nil {
		return
	}
	sink.Publish(ports.StatusEvent{
		DeliveryID: d.ID(),
		Reference:  d.Reference(),
		Status:     d.Status(),
		Actor:      actor,
		Timestamp:  time.Now(),
		Note:       note,
	})
}
