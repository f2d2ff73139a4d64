package notify_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetops/internal/adapters/out/notify"
	"fleetops/internal/core/domain/model/delivery"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/ports"
)

type wireMessage struct {
	Type      string `json:"type"`
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Note      string `json:"note"`
}

func startHub(t *testing.T) *notify.Hub {
	t.Helper()
	hub := notify.NewHub(slog.New(slog.NewTextHandler(testWriter{t}, nil)))
	go hub.Run()
	t.Cleanup(hub.Close)
	return hub
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimSpace(string(p)))
	return len(p), nil
}

func dial(t *testing.T, server *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + path
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		defer resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// waitForSubscription gives the hub's run loop a moment to process the
// registration that the upgrade handler sent.
func waitForSubscription() {
	time.Sleep(50 * time.Millisecond)
}

func statusEvent(reference string, status delivery.Status, note string) ports.StatusEvent {
	return ports.StatusEvent{
		DeliveryID: kernel.NewUUID(),
		Reference:  reference,
		Status:     status,
		Actor:      kernel.NewUUID(),
		Timestamp:  time.Now(),
		Note:       note,
	}
}

func TestHub_DeliveryWatcherReceivesItsEvents(t *testing.T) {
	hub := startHub(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeDelivery(w, r, "DEL-1-AAAAAA")
	}))
	defer server.Close()

	conn := dial(t, server, "/")
	waitForSubscription()

	hub.Publish(statusEvent("DEL-1-AAAAAA", delivery.Approved, "Approved by admin"))

	var got wireMessage
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&got))

	assert.Equal(t, "status_update", got.Type)
	assert.Equal(t, "DEL-1-AAAAAA", got.Reference)
	assert.Equal(t, "Approved", got.Status)
	assert.Equal(t, "Approved by admin", got.Note)
}

func TestHub_FirehoseSeesEveryReference(t *testing.T) {
	hub := startHub(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeFirehose(w, r)
	}))
	defer server.Close()

	conn := dial(t, server, "/")
	waitForSubscription()

	hub.Publish(statusEvent("DEL-1-AAAAAA", delivery.Assigned, ""))
	hub.Publish(statusEvent("DEL-2-BBBBBB", delivery.Delivered, ""))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var first, second wireMessage
	require.NoError(t, conn.ReadJSON(&first))
	require.NoError(t, conn.ReadJSON(&second))

	assert.Equal(t, "DEL-1-AAAAAA", first.Reference)
	assert.Equal(t, "DEL-2-BBBBBB", second.Reference)
}

func TestHub_WatcherDoesNotSeeOtherDeliveries(t *testing.T) {
	hub := startHub(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeDelivery(w, r, "DEL-1-AAAAAA")
	}))
	defer server.Close()

	conn := dial(t, server, "/")
	waitForSubscription()

	hub.Publish(statusEvent("DEL-9-ZZZZZZ", delivery.Cancelled, ""))
	hub.Publish(statusEvent("DEL-1-AAAAAA", delivery.OnRoute, ""))

	var got wireMessage
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&got))

	// The unrelated event never arrives; the first message is our own.
	assert.Equal(t, "DEL-1-AAAAAA", got.Reference)
	assert.Equal(t, "On Route", got.Status)
}
