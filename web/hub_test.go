package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webshotter/log"
)

func dialHub(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(h.Handle))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool {
		return h.ClientCount() == 1
	}, time.Second, 10*time.Millisecond, "client never registered")
	return conn
}

func TestHubBroadcastReachesClient(t *testing.T) {
	t.Parallel()

	h := NewHub(log.NullLogger())
	conn := dialHub(t, h)

	h.Broadcast(map[string]any{"type": "started", "total": 3})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	var msg struct {
		Type  string `json:"type"`
		Total int    `json:"total"`
	}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "started", msg.Type)
	assert.Equal(t, 3, msg.Total)
}

func TestHubDropsDisconnectedClient(t *testing.T) {
	t.Parallel()

	h := NewHub(log.NullLogger())
	conn := dialHub(t, h)

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		return h.ClientCount() == 0
	}, time.Second, 10*time.Millisecond, "closed client never dropped")

	// Broadcasting into an empty hub is a no-op, not a panic.
	h.Broadcast(map[string]any{"type": "done"})
	assert.Equal(t, 0, h.ClientCount())
}
