package events

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	PartCreated               = "partCreated"
	PartUpdated               = "partUpdated"
	PartDeleted               = "partDeleted"
	ProductCreated            = "productCreated"
	ProductUpdated            = "productUpdated"
	ProductDeleted            = "productDeleted"
	CustomProductCreated      = "customProductCreated"
	CustomProductUpdated      = "customProductUpdated"
	CustomProductPartsUpdated = "customProductPartsUpdated"
	CustomProductDeleted      = "customProductDeleted"
)

type message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub broadcasts entity change events to every connected websocket client.
// A client that fails a write is dropped; broadcasting never blocks a
// mutation on a slow consumer.
type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// HandleWS upgrades the request and keeps the connection registered until the
// client goes away.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.register(conn)
	defer h.unregister(conn)

	// Drain incoming frames; the hub is broadcast-only.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends the event to every connected client.
func (h *Hub) Broadcast(event string, payload interface{}) {
	msg := message{Event: event, Data: payload}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteJSON(msg); err != nil {
			h.logger.Warn("dropping websocket client", zap.Error(err))
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = struct{}{}
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		conn.Close()
		delete(h.clients, conn)
	}
}
