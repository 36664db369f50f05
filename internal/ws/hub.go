package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"

	"go-ferre-inventory/internal/service"
	"go-ferre-inventory/pkg/logger"
)

// Conn is the part of *websocket.Conn the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is a connection bound to the session that opened it.
type Client struct {
	Conn      Conn
	SessionID string
}

type envelope struct {
	sessionID string // empty means every client
	data      []byte
}

type Hub struct {
	Clients    map[Conn]string
	Register   chan Client
	Unregister chan Conn
	broadcast  chan envelope
	mutex      sync.Mutex
	done       chan struct{}
	log        *zap.Logger
}

func NewHub(l *zap.Logger) *Hub {
	return &Hub{
		Clients:    make(map[Conn]string),
		Register:   make(chan Client),
		Unregister: make(chan Conn),
		broadcast:  make(chan envelope, 256),
		done:       make(chan struct{}),
		log:        logger.OrNop(l),
	}
}

// Run dispatches registrations and messages until ctx is done, then closes
// every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for conn := range h.Clients {
				_ = conn.Close()
				delete(h.Clients, conn)
			}
			h.mutex.Unlock()
			return

		case c := <-h.Register:
			h.mutex.Lock()
			h.Clients[c.Conn] = c.SessionID
			h.mutex.Unlock()
			h.log.Debug("ws client connected", zap.String("session_id", c.SessionID))

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				_ = conn.Close()
			}
			h.mutex.Unlock()

		case msg := <-h.broadcast:
			h.mutex.Lock()
			for conn, sid := range h.Clients {
				if msg.sessionID != "" && msg.sessionID != sid {
					continue
				}
				if err := conn.WriteMessage(websocket.TextMessage, msg.data); err != nil {
					_ = conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Add registers a client unless the hub has stopped.
func (h *Hub) Add(c Client) {
	select {
	case h.Register <- c:
	case <-h.done:
		_ = c.Conn.Close()
	}
}

// Remove unregisters a client unless the hub has stopped.
func (h *Hub) Remove(conn Conn) {
	select {
	case h.Unregister <- conn:
	case <-h.done:
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

// Publish sends a data change event to every client.
func (h *Hub) Publish(ev service.Event) {
	h.send("", ev)
}

// SendTo sends v to the clients of one session.
func (h *Hub) SendTo(sessionID string, v interface{}) {
	h.send(sessionID, v)
}

// send never blocks; when the queue is full the message is dropped.
func (h *Hub) send(sessionID string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		h.log.Error("ws marshal failed", zap.Error(err))
		return
	}
	select {
	case h.broadcast <- envelope{sessionID: sessionID, data: data}:
	default:
		h.log.Warn("ws queue full, message dropped", zap.String("session_id", sessionID))
	}
}
