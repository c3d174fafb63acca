// Package ws streams restore progress events to connected clients.
package ws

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/pulto-app/pulto/backend/internal/logging"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

// client serializes all writes to one connection. gorilla/websocket permits
// only a single concurrent writer, so every write (welcome, pong, broadcast)
// must go through send.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) send(msg interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

// Hub tracks connected clients and broadcasts restore events to all of them
type Hub struct {
	mu      sync.Mutex
	clients map[*client]bool
	log     *logging.Logger
}

// NewHub creates an empty hub
func NewHub(log *logging.Logger) *Hub {
	if log == nil {
		log = logging.NewNop()
	}
	return &Hub{
		clients: make(map[*client]bool),
		log:     log,
	}
}

// Broadcast sends a JSON message to every connected client. Clients whose
// writes fail are dropped.
func (h *Hub) Broadcast(msg interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		if err := c.send(msg); err != nil {
			h.log.Warn("dropping websocket client", zap.Error(err))
			c.conn.Close()
			delete(h.clients, c)
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// HandleConnection upgrades the request and keeps the connection subscribed
// until the client disconnects
func (h *Hub) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	cl := &client{conn: conn}
	h.mu.Lock()
	h.clients[cl] = true
	h.mu.Unlock()

	cl.send(map[string]interface{}{
		"type":    "system",
		"message": "connected to workspace restore stream",
	})

	defer func() {
		h.mu.Lock()
		delete(h.clients, cl)
		h.mu.Unlock()
		conn.Close()
	}()

	// Read loop: only ping is recognized; anything unreadable ends the
	// subscription
	for {
		var msg map[string]interface{}
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg["type"] == "ping" {
			cl.send(map[string]interface{}{"type": "pong"})
		}
	}
}
