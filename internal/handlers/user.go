package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/courier/internal/database"
	"github.com/thereayou/courier/internal/middleware"
	ws "github.com/thereayou/courier/internal/websocket"
)

type UserHandler struct {
	db  *database.Database
	hub *ws.Hub
}

func NewUserHandler(db *database.Database, hub *ws.Hub) *UserHandler {
	return &UserHandler{db: db, hub: hub}
}

// GetMe возвращает информацию о текущем пользователе
func (h *UserHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	user, err := h.db.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"status":     user.Status,
		"created_at": user.CreatedAt,
	})
}

// ListUsers возвращает всех пользователей вместе со срезом присутствия
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.db.GetAllUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}

	result := make([]gin.H, len(users))
	for i, user := range users {
		result[i] = gin.H{
			"id":        user.ID,
			"username":  user.Username,
			"is_online": h.hub.IsOnline(user.ID),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"users":      result,
		"online_ids": h.hub.OnlineUsers(),
	})
}
