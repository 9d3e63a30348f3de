package websocket

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thereayou/courier/internal/metrics"
)

// Hub владеет реестром присутствия и членством в комнатах. Присутствие
// считается по пользователям, а не по соединениям: online рассылается на
// первом соединении пользователя, offline — после закрытия последнего.
type Hub struct {
	clients map[uuid.UUID]*Client

	// Соединения по UserID (у пользователя может быть несколько вкладок)
	userClients map[uint]map[uuid.UUID]*Client

	// Члены комнат; комнаты — производные строки, не сущности
	rooms map[string]map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Контекст для graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub создает новый Hub
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[uuid.UUID]*Client),
		userClients: make(map[uint]map[uuid.UUID]*Client),
		rooms:       make(map[string]map[uuid.UUID]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Run запускает hub
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-ticker.C:
			h.ping()
		}
	}
}

// Stop останавливает hub
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		client.Conn.Close()
	}
}

// Register регистрирует нового клиента
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister отменяет регистрацию клиента
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	first := false
	if _, ok := h.userClients[client.UserID]; !ok {
		h.userClients[client.UserID] = make(map[uuid.UUID]*Client)
		first = true
	}
	h.userClients[client.UserID][client.ID] = client

	// Личная комната присутствия подключается автоматически
	h.addToRoomUnsafe(client, UserRoom(client.UserID))

	metrics.ConnectionsActive.Inc()
	log.Printf("Client registered: %s (User: %d)", client.ID, client.UserID)

	// Приветствие только подключившемуся соединению
	if data, err := MarshalEvent(TypeSystem, "", client.UserID, SystemPayload{
		Message: client.Username + " connected",
	}); err == nil {
		if err := client.Queue(data); err != nil {
			log.Printf("Client %s greeting dropped: %v", client.ID, err)
		}
	}

	if first {
		h.notifyPresenceUnsafe(client.UserID, true)
	}
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	// Членство в комнатах закрытого соединения просто выбрасывается
	client.mu.RLock()
	joined := make([]string, 0, len(client.Rooms))
	for room := range client.Rooms {
		joined = append(joined, room)
	}
	client.mu.RUnlock()
	for _, room := range joined {
		h.removeFromRoomUnsafe(client, room)
	}

	if userClients, ok := h.userClients[client.UserID]; ok {
		delete(userClients, client.ID)
		if len(userClients) == 0 {
			delete(h.userClients, client.UserID)
			h.notifyPresenceUnsafe(client.UserID, false)
		}
	}

	delete(h.clients, client.ID)
	close(client.Send)

	metrics.ConnectionsActive.Dec()
	log.Printf("Client unregistered: %s (User: %d)", client.ID, client.UserID)
}

// JoinRoom добавляет клиента в комнату и рассылает системное уведомление
func (h *Hub) JoinRoom(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.addToRoomUnsafe(client, room)

	data, err := MarshalEvent(TypeSystem, room, client.UserID, SystemPayload{
		Message: "joined room",
		Room:    room,
	})
	if err == nil {
		h.sendToRoomUnsafe(room, data, uuid.Nil)
	}
}

// LeaveRoom удаляет клиента из комнаты
func (h *Hub) LeaveRoom(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.removeFromRoomUnsafe(client, room) {
		return
	}

	data, err := MarshalEvent(TypeSystem, room, client.UserID, SystemPayload{
		Message: "left room",
		Room:    room,
	})
	if err == nil {
		h.sendToRoomUnsafe(room, data, uuid.Nil)
	}
}

func (h *Hub) addToRoomUnsafe(client *Client, room string) {
	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[uuid.UUID]*Client)
	}
	h.rooms[room][client.ID] = client

	client.mu.Lock()
	client.Rooms[room] = true
	client.mu.Unlock()
}

func (h *Hub) removeFromRoomUnsafe(client *Client, room string) bool {
	members, ok := h.rooms[room]
	if !ok {
		return false
	}
	if _, ok := members[client.ID]; !ok {
		return false
	}

	delete(members, client.ID)
	client.mu.Lock()
	delete(client.Rooms, room)
	client.mu.Unlock()

	if len(members) == 0 {
		delete(h.rooms, room)
	}
	return true
}

// SendToRoom отправляет событие всем соединениям в комнате
func (h *Hub) SendToRoom(room string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	h.sendToRoomUnsafe(room, data, uuid.Nil)
}

// SendToRoomExcept отправляет событие в комнату, исключая одно соединение
func (h *Hub) SendToRoomExcept(room string, data []byte, exclude uuid.UUID) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	h.sendToRoomUnsafe(room, data, exclude)
}

// SendToUser отправляет событие во все соединения пользователя
func (h *Hub) SendToUser(userID uint, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	h.sendToRoomUnsafe(UserRoom(userID), data, uuid.Nil)
}

// SendToAll отправляет событие каждому живому соединению
func (h *Hub) SendToAll(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	h.sendToAllUnsafe(data)
}

func (h *Hub) sendToRoomUnsafe(room string, data []byte, exclude uuid.UUID) {
	members, ok := h.rooms[room]
	if !ok {
		return
	}

	metrics.BroadcastsTotal.Inc()
	for _, client := range members {
		if client.ID == exclude {
			continue
		}
		if err := client.Queue(data); err != nil {
			log.Printf("Client %s dropped event: %v", client.ID, err)
		}
	}
}

func (h *Hub) sendToAllUnsafe(data []byte) {
	metrics.BroadcastsTotal.Inc()
	for _, client := range h.clients {
		if err := client.Queue(data); err != nil {
			log.Printf("Client %s dropped event: %v", client.ID, err)
		}
	}
}

// notifyPresenceUnsafe рассылает presence всем: статус может показывать
// любая открытая страница, поэтому без scope
func (h *Hub) notifyPresenceUnsafe(userID uint, online bool) {
	data, err := MarshalEvent(TypePresence, "", userID, PresencePayload{
		UserID: userID,
		Online: online,
	})
	if err != nil {
		return
	}
	h.sendToAllUnsafe(data)
}

func (h *Hub) ping() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	data, err := MarshalEvent(TypePing, "", 0, nil)
	if err != nil {
		return
	}
	for _, client := range h.clients {
		// ping теряется молча: следующий тикер повторит
		_ = client.Queue(data)
	}
}

// OnlineUsers возвращает список пользователей онлайн
func (h *Hub) OnlineUsers() []uint {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]uint, 0, len(h.userClients))
	for userID := range h.userClients {
		users = append(users, userID)
	}
	return users
}

// IsOnline сообщает, есть ли у пользователя хотя бы одно живое соединение
func (h *Hub) IsOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.userClients[userID]) > 0
}
