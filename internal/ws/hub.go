package ws

import (
	"encoding/json"
	"sync"

	"goldshop-api/pkg/logger"

	"github.com/gofiber/contrib/websocket"
)

// Hub fans stock and transfer events out to connected clients.
type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			logger.Info("ws", "client connected", nil)

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
		}
	}
}

// BroadcastEvent marshals and queues an event without blocking business
// code on slow clients.
func (h *Hub) BroadcastEvent(event string, payload map[string]interface{}) {
	body := map[string]interface{}{"type": event}
	for k, v := range payload {
		body[k] = v
	}
	msg, err := json.Marshal(body)
	if err != nil {
		return
	}
	go func() { h.Broadcast <- msg }()
}
