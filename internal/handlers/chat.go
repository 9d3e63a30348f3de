package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/courier/internal/database"
	"github.com/thereayou/courier/internal/middleware"
	"github.com/thereayou/courier/internal/models"
	ws "github.com/thereayou/courier/internal/websocket"
)

type ChatHandler struct {
	db  *database.Database
	hub *ws.Hub
}

func NewChatHandler(db *database.Database, hub *ws.Hub) *ChatHandler {
	return &ChatHandler{db: db, hub: hub}
}

// CreateChat создает чат; создатель становится админом и первым участником
func (h *ChatHandler) CreateChat(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chat := &models.Chat{AdminID: userID, Name: req.Name}
	if err := h.db.CreateChat(chat); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create chat"})
		return
	}

	if err := h.db.AddChatMember(chat.ID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add creator to chat"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": chat.ID, "name": chat.Name, "admin_id": chat.AdminID})
}

// GetMyChats возвращает чаты пользователя с числом участников онлайн
func (h *ChatHandler) GetMyChats(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	chats, err := h.db.GetUserChats(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get chats"})
		return
	}

	onlineIDs := h.hub.OnlineUsers()
	ownedIDs, _ := h.db.GetOwnedChatIDs(userID)
	owned := make(map[uint]bool, len(ownedIDs))
	for _, id := range ownedIDs {
		owned[id] = true
	}

	result := make([]gin.H, len(chats))
	for i, chat := range chats {
		onlineCount, _ := h.db.CountOnlineChatMembers(chat.ID, onlineIDs, userID)
		result[i] = gin.H{
			"id":           chat.ID,
			"name":         chat.Name,
			"online_count": onlineCount,
			"is_admin":     owned[chat.ID],
		}
	}

	c.JSON(http.StatusOK, gin.H{"chats": result})
}

// GetChatMembers возвращает участников чата; только для участников
func (h *ChatHandler) GetChatMembers(c *gin.Context) {
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

	members, err := h.db.GetChatMembers(chatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get members"})
		return
	}

	result := make([]gin.H, len(members))
	for i, m := range members {
		result[i] = gin.H{
			"id":        m.ID,
			"username":  m.Username,
			"is_online": h.hub.IsOnline(m.ID),
		}
	}

	c.JSON(http.StatusOK, gin.H{"members": result})
}

// AddMember добавляет пользователя в чат; добавлять могут участники
func (h *ChatHandler) AddMember(c *gin.Context) {
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

	var req struct {
		Username string `json:"username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newUserID, err := h.db.ResolveUserID(req.Username)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if err := h.db.AddChatMember(chatID, newUserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add member"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "member added"})
}

// RenameChat переименовывает чат; только админ. Участники в комнате
// получают системное уведомление.
func (h *ChatHandler) RenameChat(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)
	chatID, ok := parseIDParam(c)
	if !ok {
		return
	}

	admin, err := h.db.IsChatAdmin(userID, chatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rename chat"})
		return
	}
	if !admin {
		c.JSON(http.StatusForbidden, gin.H{"error": "only chat admin can rename chat"})
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Условие admin_id в самом UPDATE остается: проверка выше могла устареть
	renamed, err := h.db.UpdateChatName(chatID, req.Name, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rename chat"})
		return
	}
	if !renamed {
		c.JSON(http.StatusNotFound, gin.H{"error": "chat not found"})
		return
	}

	room := ws.ChatRoom(chatID)
	if data, err := ws.MarshalEvent(ws.TypeSystem, room, userID, ws.SystemPayload{
		Message: "chat_updated",
		ChatID:  chatID,
		NewName: req.Name,
	}); err == nil {
		h.hub.SendToRoom(room, data)
	}

	c.JSON(http.StatusOK, gin.H{"message": "chat renamed"})
}

// DeleteChat удаляет чат каскадом; только админ
func (h *ChatHandler) DeleteChat(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)
	chatID, ok := parseIDParam(c)
	if !ok {
		return
	}

	deleted, err := h.db.DeleteChat(chatID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete chat"})
		return
	}
	if !deleted {
		c.JSON(http.StatusForbidden, gin.H{"error": "only chat admin can delete chat"})
		return
	}

	room := ws.ChatRoom(chatID)
	if data, err := ws.MarshalEvent(ws.TypeSystem, room, userID, ws.SystemPayload{
		Message: "chat_deleted",
		ChatID:  chatID,
	}); err == nil {
		h.hub.SendToRoom(room, data)
	}

	c.JSON(http.StatusOK, gin.H{"message": "chat deleted"})
}

// parseIDParam разбирает :id; внешние идентификаторы не принимаются на веру
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
