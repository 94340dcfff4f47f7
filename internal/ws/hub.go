package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// Event is what dashboards connected to /ws receive after a committed change.
type Event struct {
	ID         string      `json:"event_id"`
	Type       string      `json:"type"`
	Action     string      `json:"action"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"sale"`
}

const (
	ActionSaleCreated = "sale_created"
	ActionSaleUpdated = "sale_updated"
	ActionSaleDeleted = "sale_deleted"
)

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	quit       chan struct{}
	stopOnce   sync.Once
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			log.Println("New WS client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()

		case <-h.quit:
			h.mutex.Lock()
			for conn := range h.Clients {
				conn.Close()
				delete(h.Clients, conn)
			}
			h.mutex.Unlock()
			return
		}
	}
}

// Stop ends Run and disconnects every client. Safe to call more than once.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

// Join registers a connection. It reports false once the hub has stopped.
func (h *Hub) Join(conn *websocket.Conn) bool {
	select {
	case h.Register <- conn:
		return true
	case <-h.quit:
		return false
	}
}

func (h *Hub) Leave(conn *websocket.Conn) {
	select {
	case h.Unregister <- conn:
	case <-h.quit:
	}
}

// ClientCount is the number of connected dashboards.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

// Publish broadcasts a sale event without blocking the caller. A nil hub drops the event.
func (h *Hub) Publish(action string, data interface{}) {
	if h == nil {
		return
	}

	msg, err := json.Marshal(Event{
		ID:         uuid.NewString(),
		Type:       "sale_event",
		Action:     action,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	})
	if err != nil {
		log.Printf("ws: failed to encode %s event: %v", action, err)
		return
	}

	go func() {
		select {
		case h.Broadcast <- msg:
		case <-h.quit:
		}
	}()
}
