package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hub fans referral events out to connected dashboards. Every client
// joins its personal room; admins additionally join the rooms of the
// programs they watch.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	rooms      map[string]map[*Client]bool
	mutex      sync.RWMutex
}

type Event struct {
	Type      string                 `json:"type"`
	RoomID    string                 `json:"room_id,omitempty"`
	UserID    primitive.ObjectID     `json:"user_id,omitempty"`
	Timestamp int64                  `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastEvent(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[client] = true

	personalRoom := "user_" + client.UserID.Hex()
	h.joinRoom(client, personalRoom)

	if client.UserType == "admin" {
		h.joinRoom(client, "admins")
	}

	welcome := Event{
		Type:      "welcome",
		UserID:    client.UserID,
		Timestamp: time.Now().Unix(),
		Data: map[string]interface{}{
			"message": "Connected to referral event feed",
		},
	}

	h.sendToClient(client, welcome)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		for roomID, room := range h.rooms {
			if _, exists := room[client]; exists {
				delete(room, client)
				if len(room) == 0 {
					delete(h.rooms, roomID)
				}
			}
		}
	}
}

func (h *Hub) broadcastEvent(message []byte) {
	var event Event
	if err := json.Unmarshal(message, &event); err != nil {
		log.Printf("Error unmarshaling event: %v", err)
		return
	}

	if event.RoomID != "" {
		h.sendToRoom(event.RoomID, event)
	} else {
		h.sendToAll(event)
	}
}

func (h *Hub) sendToAll(event Event) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	data, _ := json.Marshal(event)
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			close(client.send)
			delete(h.clients, client)
		}
	}
}

func (h *Hub) sendToRoom(roomID string, event Event) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	room, exists := h.rooms[roomID]
	if !exists {
		return
	}

	data, _ := json.Marshal(event)
	for client := range room {
		select {
		case client.send <- data:
		default:
			close(client.send)
			delete(h.clients, client)
			delete(room, client)
		}
	}
}

func (h *Hub) sendToClient(client *Client, event Event) {
	data, _ := json.Marshal(event)
	select {
	case client.send <- data:
	default:
		close(client.send)
		delete(h.clients, client)
	}
}

// SendToUser delivers an event to a single referrer's dashboard.
func (h *Hub) SendToUser(userID primitive.ObjectID, event Event) {
	h.sendToRoom("user_"+userID.Hex(), event)
}

// SendToProgram delivers an event to everyone watching a program.
func (h *Hub) SendToProgram(programID primitive.ObjectID, event Event) {
	h.sendToRoom("program_"+programID.Hex(), event)
}

// SendToAdmins delivers an event to all connected admin dashboards.
func (h *Hub) SendToAdmins(event Event) {
	h.sendToRoom("admins", event)
}

func (h *Hub) joinRoom(client *Client, roomID string) {
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]bool)
	}
	h.rooms[roomID][client] = true
	client.rooms[roomID] = true
}

func (h *Hub) LeaveRoom(client *Client, roomID string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if room, exists := h.rooms[roomID]; exists {
		delete(room, client)
		delete(client.rooms, roomID)

		if len(room) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

// WatchProgram subscribes an admin client to a program's event room.
func (h *Hub) WatchProgram(client *Client, programID primitive.ObjectID) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.joinRoom(client, "program_"+programID.Hex())
}
