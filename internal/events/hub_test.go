package events

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// Registration happens on the server goroutine right after the upgrade.
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	require.Equal(t, 1, hub.ClientCount())

	return conn
}

func TestHub_BroadcastReachesClient(t *testing.T) {
	hub := NewHub(zap.NewNop())
	conn := dialHub(t, hub)

	hub.Broadcast(PartCreated, map[string]interface{}{"id": float64(3)})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg struct {
		Event string                 `json:"event"`
		Data  map[string]interface{} `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&msg))

	assert.Equal(t, PartCreated, msg.Event)
	assert.Equal(t, float64(3), msg.Data["id"])
}

func TestHub_DisconnectedClientIsDropped(t *testing.T) {
	hub := NewHub(zap.NewNop())
	conn := dialHub(t, hub)

	conn.Close()

	// The first write after the close fails and evicts the client.
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() > 0 && time.Now().Before(deadline) {
		hub.Broadcast(PartDeleted, map[string]interface{}{"id": 1})
		time.Sleep(5 * time.Millisecond)
	}

	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_BroadcastWithNoClients(t *testing.T) {
	hub := NewHub(zap.NewNop())

	// Must not panic or block.
	hub.Broadcast(ProductCreated, map[string]interface{}{"id": 1})

	assert.Equal(t, 0, hub.ClientCount())
}
