package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"coursehive_server/models"

	"github.com/gorilla/websocket"
)

type Client struct {
	UserID uint
	Conn   *websocket.Conn
	Send   chan []byte
	Hub    *Hub
}

type Hub struct {
	Clients    map[uint][]*Client
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex
}

var GlobalHub *Hub

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[uint][]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	log.Println("🔌 Progress sync hub started")

	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.Clients[client.UserID] = append(h.Clients[client.UserID], client)
			h.mu.Unlock()
			log.Printf("✓ User %d tab connected", client.UserID)

		case client := <-h.Unregister:
			h.mu.Lock()
			tabs := h.Clients[client.UserID]
			for i, tab := range tabs {
				if tab == client {
					h.Clients[client.UserID] = append(tabs[:i], tabs[i+1:]...)
					close(client.Send)
					break
				}
			}
			if len(h.Clients[client.UserID]) == 0 {
				delete(h.Clients, client.UserID)
			}
			h.mu.Unlock()
			log.Printf("✗ User %d tab disconnected", client.UserID)
		}
	}
}

// SendToUser fans a message out to every open tab of one user.
func (h *Hub) SendToUser(userID uint, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("❌ Failed to marshal message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.Clients[userID] {
		select {
		case client.Send <- data:
		default:
			log.Printf("⚠️ Dropped progress update for user %d (slow tab)", userID)
		}
	}
}

// NotifyCourseProgress pushes a freshly committed rollup to the user's other
// open tabs so concurrent players stay in sync. No-op until the hub runs.
func NotifyCourseProgress(userID uint, progress *models.CourseProgress) {
	if GlobalHub == nil || progress == nil {
		return
	}
	GlobalHub.SendToUser(userID, map[string]interface{}{
		"type":     "course_progress",
		"progress": progress,
	})
}

func InitHub() {
	GlobalHub = NewHub()
	go GlobalHub.Run()
}
