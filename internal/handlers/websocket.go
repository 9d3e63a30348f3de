package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/thereayou/courier/internal/database"
	"github.com/thereayou/courier/internal/middleware"
	ws "github.com/thereayou/courier/internal/websocket"
)

// WebSocketHandler управляет WebSocket соединениями
type WebSocketHandler struct {
	db       *database.Database
	hub      *ws.Hub
	router   *EventRouter
	upgrader websocket.Upgrader
}

func NewWebSocketHandler(db *database.Database, hub *ws.Hub, router *EventRouter) *WebSocketHandler {
	return &WebSocketHandler{
		db:     db,
		hub:    hub,
		router: router,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// TODO: Проверить origin в prod
				return true
			},
		},
	}
}

// HandleWebSocket обрабатывает WebSocket соединения. Без валидной сессии
// сюда не попасть: WSAuthMiddleware отклоняет запрос до апгрейда.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	username, err := h.db.GetUsername(userID.(uint))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(h.hub, conn, userID.(uint), username)

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump(h.router)
}
