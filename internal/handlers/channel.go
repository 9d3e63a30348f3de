package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/courier/internal/database"
	"github.com/thereayou/courier/internal/middleware"
	"github.com/thereayou/courier/internal/models"
	ws "github.com/thereayou/courier/internal/websocket"
)

type ChannelHandler struct {
	db  *database.Database
	hub *ws.Hub
}

func NewChannelHandler(db *database.Database, hub *ws.Hub) *ChannelHandler {
	return &ChannelHandler{db: db, hub: hub}
}

// CreateChannel создает канал; создатель — единственный, кто в него пишет
func (h *ChannelHandler) CreateChannel(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	channel := &models.Channel{AdminID: userID, Name: req.Name}
	if err := h.db.CreateChannel(channel); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create channel"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": channel.ID, "name": channel.Name, "admin_id": channel.AdminID})
}

// ListChannels возвращает все каналы: читать может любой
func (h *ChannelHandler) ListChannels(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	channels, err := h.db.GetAllChannels()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list channels"})
		return
	}

	ownedIDs, _ := h.db.GetOwnedChannelIDs(userID)
	owned := make(map[uint]bool, len(ownedIDs))
	for _, id := range ownedIDs {
		owned[id] = true
	}

	result := make([]gin.H, len(channels))
	for i, channel := range channels {
		adminName := ""
		if owner, err := h.db.GetChannelOwner(channel.ID); err == nil {
			adminName = owner.Username
		}
		result[i] = gin.H{
			"id":       channel.ID,
			"name":     channel.Name,
			"admin":    adminName,
			"is_admin": owned[channel.ID],
		}
	}

	c.JSON(http.StatusOK, gin.H{"channels": result})
}

// RenameChannel переименовывает канал; только админ
func (h *ChannelHandler) RenameChannel(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)
	channelID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	renamed, err := h.db.UpdateChannelName(channelID, req.Name, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rename channel"})
		return
	}
	if !renamed {
		c.JSON(http.StatusForbidden, gin.H{"error": "only channel admin can rename channel"})
		return
	}

	room := ws.ChannelRoom(channelID)
	if data, err := ws.MarshalEvent(ws.TypeSystem, room, userID, ws.SystemPayload{
		Message:   "channel_updated",
		ChannelID: channelID,
		NewName:   req.Name,
	}); err == nil {
		h.hub.SendToRoom(room, data)
	}

	c.JSON(http.StatusOK, gin.H{"message": "channel renamed"})
}

// DeleteChannel удаляет канал вместе с сообщениями; только админ
func (h *ChannelHandler) DeleteChannel(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)
	channelID, ok := parseIDParam(c)
	if !ok {
		return
	}

	deleted, err := h.db.DeleteChannel(channelID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete channel"})
		return
	}
	if !deleted {
		c.JSON(http.StatusForbidden, gin.H{"error": "only channel admin can delete channel"})
		return
	}

	room := ws.ChannelRoom(channelID)
	if data, err := ws.MarshalEvent(ws.TypeSystem, room, userID, ws.SystemPayload{
		Message:   "channel_deleted",
		ChannelID: channelID,
	}); err == nil {
		h.hub.SendToRoom(room, data)
	}

	c.JSON(http.StatusOK, gin.H{"message": "channel deleted"})
}
