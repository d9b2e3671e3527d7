package websocket

import (
	"path/filepath"
	"testing"
	"time"

	"vetvox-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	log := logger.NewIsolatedLogger(filepath.Join(t.TempDir(), "hub.log"))
	hub := NewHub(nil, log)
	go hub.Run()
	return hub
}

func countClients(h *Hub) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, clients := range h.clients {
		n += len(clients)
	}
	return n
}

func TestBroadcastDropsSlowClient(t *testing.T) {
	hub := newTestHub(t)

	slow := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte, 1)}
	slow.Send <- []byte("stale")
	fast := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte, 8)}

	hub.register <- slow
	hub.register <- fast
	require.Eventually(t, func() bool { return countClients(hub) == 2 }, time.Second, 5*time.Millisecond)

	// Two broadcasts against a full buffer must not panic or block; the
	// responsive client keeps receiving.
	hub.Broadcast("visit.created", map[string]interface{}{"id": "1"})
	hub.Broadcast("visit.created", map[string]interface{}{"id": "2"})

	assert.Eventually(t, func() bool { return countClients(hub) == 1 }, time.Second, 5*time.Millisecond)
	assert.Len(t, fast.Send, 2)

	// The slow client's channel is closed exactly once, after its buffered
	// message.
	<-slow.Send
	_, open := <-slow.Send
	assert.False(t, open)
}

func TestUnregisterTwiceIsHarmless(t *testing.T) {
	hub := newTestHub(t)

	client := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte, 1)}
	hub.register <- client
	require.Eventually(t, func() bool { return countClients(hub) == 1 }, time.Second, 5*time.Millisecond)

	hub.unregister <- client
	hub.unregister <- client

	assert.Eventually(t, func() bool { return countClients(hub) == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-client.Send
	assert.False(t, open)
}
