package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/courier/internal/database"
	"github.com/thereayou/courier/internal/handlers/dto"
	"github.com/thereayou/courier/internal/middleware"
)

// HistoryHandler отдает логи сообщений: путь перечитывания после
// реконнекта — живые события, пропущенные оффлайн, не доставляются
type HistoryHandler struct {
	db *database.Database
}

func NewHistoryHandler(db *database.Database) *HistoryHandler {
	return &HistoryHandler{db: db}
}

// GetPersonalMessages возвращает переписку текущего пользователя с peer
func (h *HistoryHandler) GetPersonalMessages(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	peerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	messages, err := h.db.GetPersonalMessages(userID, uint(peerID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get messages"})
		return
	}

	result := make([]dto.MessageResponse, len(messages))
	for i, msg := range messages {
		result[i] = dto.MessageResponse{
			ID:       msg.ID,
			SenderID: msg.SenderID,
			Username: msg.Sender.Username,
			Text:     msg.Content,
			Ts:       msg.Timestamp,
		}
	}

	c.JSON(http.StatusOK, gin.H{"messages": result})
}

// GetChatMessages возвращает лог чата; только для участников
func (h *HistoryHandler) GetChatMessages(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)
	chatID, ok := parseIDParam(c)
	if !ok {
		return
	}

	member, err := h.db.IsChatMember(chatID, userID)
	if err != nil || !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not a member of this chat"})
		return
	}

	messages, err := h.db.GetChatMessages(chatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get messages"})
		return
	}

	result := make([]dto.MessageResponse, len(messages))
	for i, msg := range messages {
		result[i] = dto.MessageResponse{
			ID:       msg.ID,
			SenderID: msg.SenderID,
			Username: msg.Sender.Username,
			Text:     msg.Content,
			Ts:       msg.Timestamp,
		}
	}

	c.JSON(http.StatusOK, gin.H{"messages": result})
}

// GetChannelMessages возвращает лог канала; читать может любой
func (h *HistoryHandler) GetChannelMessages(c *gin.Context) {
	channelID, ok := parseIDParam(c)
	if !ok {
		return
	}

	messages, err := h.db.GetChannelMessages(channelID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get messages"})
		return
	}

	result := make([]dto.MessageResponse, len(messages))
	for i, msg := range messages {
		result[i] = dto.MessageResponse{
			ID:       msg.ID,
			SenderID: msg.SenderID,
			Username: msg.Sender.Username,
			Text:     msg.Content,
			Ts:       msg.Timestamp,
		}
	}

	c.JSON(http.StatusOK, gin.H{"messages": result})
}
