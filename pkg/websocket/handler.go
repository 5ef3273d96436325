package websocket

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Handler struct {
	hub *Hub
}

func NewHandler() *Handler {
	hub := NewHub()
	go hub.Run()

	return &Handler{
		hub: hub,
	}
}

func (h *Handler) HandleWebSocket(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	userType, exists := c.Get("user_type")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User type not found"})
		return
	}

	userObjectID, ok := userID.(primitive.ObjectID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	userTypeStr, ok := userType.(string)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user type"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := NewClient(h.hub, conn, userObjectID, userTypeStr)
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// NotifyUser pushes a referral event to one referrer's feed.
func (h *Handler) NotifyUser(userID primitive.ObjectID, eventType string, data map[string]interface{}) {
	event := Event{
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now().Unix(),
		Data:      data,
	}

	h.hub.SendToUser(userID, event)
}

// NotifyProgram pushes a referral event to a program's watchers.
func (h *Handler) NotifyProgram(programID primitive.ObjectID, eventType string, data map[string]interface{}) {
	event := Event{
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Data:      data,
	}

	h.hub.SendToProgram(programID, event)
}

// NotifyAdmins pushes an event to all connected admin dashboards. Fraud
// alerts use this path.
func (h *Handler) NotifyAdmins(eventType string, data map[string]interface{}) {
	event := Event{
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Data:      data,
	}

	h.hub.SendToAdmins(event)
}

func (h *Handler) GetHub() *Hub {
	return h.hub
}
