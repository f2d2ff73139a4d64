// Package notify pushes delivery status events to websocket subscribers.
// Customers and drivers watch a single delivery by reference; the admin
// dashboard subscribes to the firehose and sees everything.
package notify

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"fleetops/internal/core/ports"
)

const eventBuffer = 256

// statusMessage is the wire format pushed to subscribers.
type statusMessage struct {
	Type       string    `json:"type"`
	DeliveryID string    `json:"deliveryId"`
	Reference  string    `json:"reference"`
	Status     string    `json:"status"`
	Actor      string    `json:"actor"`
	Timestamp  time.Time `json:"timestamp"`
	Note       string    `json:"note,omitempty"`
}

type subscription struct {
	reference string // empty subscribes to the firehose
	conn      *websocket.Conn
}

// Hub implements ports.EventSink over websockets. Publish enqueues and never
// blocks: when the buffer is full the event is dropped, because the status
// history on the aggregate is the durable record.
type Hub struct {
	logger *slog.Logger

	mu       sync.RWMutex
	watchers map[string]map[*websocket.Conn]struct{}
	firehose map[*websocket.Conn]struct{}

	events     chan ports.StatusEvent
	register   chan subscription
	unregister chan subscription
	done       chan struct{}
}

// NewHub creates a hub. Run must be started before the hub delivers
// anything.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:     logger,
		watchers:   make(map[string]map[*websocket.Conn]struct{}),
		firehose:   make(map[*websocket.Conn]struct{}),
		events:     make(chan ports.StatusEvent, eventBuffer),
		register:   make(chan subscription),
		unregister: make(chan subscription),
		done:       make(chan struct{}),
	}
}

// Publish implements ports.EventSink.
func (h *Hub) Publish(event ports.StatusEvent) {
	select {
	case h.events <- event:
	default:
		h.logger.Warn("event buffer full, dropping status event",
			"reference", event.Reference,
			"status", event.Status.String(),
		)
	}
}

// Run drains the event queue and manages subscriptions until Close is
// called. Meant to run in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case event := <-h.events:
			h.broadcast(event)
		case sub := <-h.register:
			h.add(sub)
		case sub := <-h.unregister:
			h.remove(sub)
		case <-h.done:
			h.closeAll()
			return
		}
	}
}

// Close stops the run loop and closes every open connection.
func (h *Hub) Close() {
	close(h.done)
}

// ServeDelivery upgrades the request to a websocket subscribed to one
// delivery reference.
func (h *Hub) ServeDelivery(w http.ResponseWriter, r *http.Request, reference string) {
	h.serve(w, r, reference)
}

// ServeFirehose upgrades the request to a websocket receiving every status
// event.
func (h *Hub) ServeFirehose(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "")
}

func (h *Hub) serve(w http.ResponseWriter, r *http.Request, reference string) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(*http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	h.register <- subscription{reference: reference, conn: conn}

	// Subscribers never send anything meaningful; the reader only detects
	// the close.
	go func() {
		for {
			if _, _, readErr := conn.NextReader(); readErr != nil {
				h.unregister <- subscription{reference: reference, conn: conn}
				return
			}
		}
	}()
}

func (h *Hub) add(sub subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sub.reference == "" {
		h.firehose[sub.conn] = struct{}{}
		return
	}
	if h.watchers[sub.reference] == nil {
		h.watchers[sub.reference] = make(map[*websocket.Conn]struct{})
	}
	h.watchers[sub.reference][sub.conn] = struct{}{}
}

func (h *Hub) remove(sub subscription) {
	h.mu.Lock()
	if sub.reference == "" {
		delete(h.firehose, sub.conn)
	} else if conns, ok := h.watchers[sub.reference]; ok {
		delete(conns, sub.conn)
		if len(conns) == 0 {
			delete(h.watchers, sub.reference)
		}
	}
	h.mu.Unlock()

	_ = sub.conn.Close()
}

func (h *Hub) broadcast(event ports.StatusEvent) {
	message := statusMessage{
		Type:       "status_update",
		DeliveryID: event.DeliveryID.String(),
		Reference:  event.Reference,
		Status:     event.Status.String(),
		Actor:      event.Actor.String(),
		Timestamp:  event.Timestamp,
		Note:       event.Note,
	}

	h.mu.RLock()
	targets := make([]subscription, 0, len(h.firehose)+len(h.watchers[event.Reference]))
	for conn := range h.firehose {
		targets = append(targets, subscription{conn: conn})
	}
	for conn := range h.watchers[event.Reference] {
		targets = append(targets, subscription{reference: event.Reference, conn: conn})
	}
	h.mu.RUnlock()

	for _, target := range targets {
		if err := target.conn.WriteJSON(message); err != nil {
			h.remove(target)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.firehose {
		_ = conn.Close()
	}
	for _, conns := range h.watchers {
		for conn := range conns {
			_ = conn.Close()
		}
	}
	h.firehose = make(map[*websocket.Conn]struct{})
	h.watchers = make(map[string]map[*websocket.Conn]struct{})
}
