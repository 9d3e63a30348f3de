package handlers

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/thereayou/courier/internal/database"
	"github.com/thereayou/courier/internal/handlers/dto"
	"github.com/thereayou/courier/internal/metrics"
	ws "github.com/thereayou/courier/internal/websocket"
)

// Broadcaster — та часть hub'а, которая нужна роутеру
type Broadcaster interface {
	SendToRoom(room string, data []byte)
	SendToRoomExcept(room string, data []byte, exclude uuid.UUID)
	SendToUser(userID uint, data []byte)
	SendToAll(data []byte)
}

// EventRouter валидирует, авторизует, сохраняет и рассылает каждое
// входящее событие. Правила независимы: одно правило на вид события,
// общей транзакции нет. Любой отказ — молчаливый drop: отправителю
// ничего не возвращается, каждое правило срезается единственным early
// return.
type EventRouter struct {
	db  *database.Database
	hub Broadcaster

	// Мьютекс на комнату: внутри одной комнаты порядок рассылки обязан
	// совпадать с порядком записи в хранилище
	mu        sync.Mutex
	roomLocks map[string]*sync.Mutex
}

func NewEventRouter(db *database.Database, hub Broadcaster) *EventRouter {
	return &EventRouter{
		db:        db,
		hub:       hub,
		roomLocks: make(map[string]*sync.Mutex),
	}
}

// lockRoom сериализует пары persist+broadcast одной комнаты
func (r *EventRouter) lockRoom(room string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.roomLocks[room]
	if !ok {
		m = &sync.Mutex{}
		r.roomLocks[room] = m
	}
	return m
}

func (r *EventRouter) HandleEvent(client *ws.Client, ev *ws.Event) error {
	// Тип события — клиентская строка; неизвестные схлопываются в одну
	// метку, иначе каждая уникальная строка навсегда заводит серию
	label := "unknown"
	if ev.Type.Known() {
		label = string(ev.Type)
	}
	metrics.EventsTotal.WithLabelValues(label).Inc()

	switch ev.Type {
	case ws.TypeTyping:
		return r.handleTyping(client, ev)

	case ws.TypePersonalMessage:
		return r.handlePersonalMessage(client, ev)

	case ws.TypeChatMessage:
		return r.handleChatMessage(client, ev)

	case ws.TypeChannelMessage:
		return r.handleChannelMessage(client, ev)

	case ws.TypeDeleteMessage:
		return r.handleDeleteMessage(client, ev)

	default:
		log.Printf("Unknown event type: %s", ev.Type)
		return nil
	}
}

// handleTyping ретранслирует сигнал в комнату без отправителя; если
// комната — каноническая пара, второй участник дополнительно получает
// typing_presence в свою личную комнату
func (r *EventRouter) handleTyping(client *ws.Client, ev *ws.Event) error {
	if ev.Room == "" {
		return ws.ErrInvalidEvent
	}

	data, err := ws.MarshalEvent(ws.TypeTyping, ev.Room, client.UserID, ws.TypingPayload{UserID: client.UserID})
	if err != nil {
		return err
	}
	r.hub.SendToRoomExcept(ev.Room, data, client.ID)

	u1, u2, ok := ws.ParsePairRoom(ev.Room)
	if !ok {
		return nil
	}
	recipient := u1
	if client.UserID == u1 {
		recipient = u2
	}

	presence, err := ws.MarshalEvent(ws.TypeTypingPresence, "", client.UserID, ws.TypingPayload{UserID: client.UserID})
	if err != nil {
		return err
	}
	r.hub.SendToUser(recipient, presence)
	return nil
}

func (r *EventRouter) handlePersonalMessage(client *ws.Client, ev *ws.Event) error {
	var payload dto.PersonalMessagePayload
	if err := json.Unmarshal(ev.Data, &payload); err != nil {
		return ws.ErrInvalidEvent
	}
	if payload.Text == "" || ev.Room == "" {
		return ws.ErrInvalidEvent
	}

	u1, u2, ok := ws.ParsePairRoom(ev.Room)
	if !ok {
		return ws.ErrInvalidEvent
	}
	if client.UserID != u1 && client.UserID != u2 {
		return ws.ErrUnauthorized
	}

	other := u1
	if client.UserID == u1 {
		other = u2
	}
	room := ws.PairRoom(client.UserID, other)

	lock := r.lockRoom(room)
	lock.Lock()
	defer lock.Unlock()

	msg, err := r.db.CreatePersonalMessage(client.UserID, other, payload.Text)
	if err != nil {
		return err
	}
	metrics.MessagesPersisted.WithLabelValues("personal").Inc()

	username, err := r.db.GetUsername(client.UserID)
	if err != nil {
		return err
	}

	data, err := ws.MarshalEvent(ws.TypePersonalMessage, room, client.UserID, dto.MessageBroadcast{
		ID:       msg.ID,
		Username: username,
		Text:     msg.Content,
		Ts:       msg.Timestamp,
	})
	if err != nil {
		return err
	}
	r.hub.SendToRoom(room, data)
	return nil
}

func (r *EventRouter) handleChatMessage(client *ws.Client, ev *ws.Event) error {
	var payload dto.ChatMessagePayload
	if err := json.Unmarshal(ev.Data, &payload); err != nil {
		return ws.ErrInvalidEvent
	}
	if payload.Text == "" || payload.ChatID == 0 {
		return ws.ErrInvalidEvent
	}

	member, err := r.db.IsChatMember(payload.ChatID, client.UserID)
	if err != nil {
		return err
	}
	if !member {
		return ws.ErrUnauthorized
	}

	room := ws.ChatRoom(payload.ChatID)
	lock := r.lockRoom(room)
	lock.Lock()
	defer lock.Unlock()

	msg, err := r.db.CreateChatMessage(payload.ChatID, client.UserID, payload.Text)
	if err != nil {
		return err
	}
	metrics.MessagesPersisted.WithLabelValues("chat").Inc()

	username, err := r.db.GetUsername(client.UserID)
	if err != nil {
		return err
	}

	data, err := ws.MarshalEvent(ws.TypeChatMessage, room, client.UserID, dto.MessageBroadcast{
		ID:       msg.ID,
		Username: username,
		Text:     msg.Content,
		Ts:       msg.Timestamp,
	})
	if err != nil {
		return err
	}
	r.hub.SendToRoom(room, data)
	return nil
}

// handleChannelMessage: канал — комната с одним писателем, постит только
// админ; чат, напротив, принимает сообщения любого участника
func (r *EventRouter) handleChannelMessage(client *ws.Client, ev *ws.Event) error {
	var payload dto.ChannelMessagePayload
	if err := json.Unmarshal(ev.Data, &payload); err != nil {
		return ws.ErrInvalidEvent
	}
	if payload.Text == "" || payload.ChannelID == 0 {
		return ws.ErrInvalidEvent
	}

	admin, err := r.db.IsChannelAdmin(client.UserID, payload.ChannelID)
	if err != nil {
		return err
	}
	if !admin {
		return ws.ErrUnauthorized
	}

	room := ws.ChannelRoom(payload.ChannelID)
	lock := r.lockRoom(room)
	lock.Lock()
	defer lock.Unlock()

	msg, err := r.db.CreateChannelMessage(payload.ChannelID, client.UserID, payload.Text)
	if err != nil {
		return err
	}
	metrics.MessagesPersisted.WithLabelValues("channel").Inc()

	username, err := r.db.GetUsername(client.UserID)
	if err != nil {
		return err
	}

	data, err := ws.MarshalEvent(ws.TypeChannelMessage, room, client.UserID, dto.MessageBroadcast{
		ID:       msg.ID,
		Username: username,
		Text:     msg.Content,
		Ts:       msg.Timestamp,
	})
	if err != nil {
		return err
	}
	r.hub.SendToRoom(room, data)
	return nil
}

// handleDeleteMessage: владение проверяет хранилище (sender-match в
// самом DELETE); уведомление уходит только при фактическом удалении
func (r *EventRouter) handleDeleteMessage(client *ws.Client, ev *ws.Event) error {
	var payload dto.DeleteMessagePayload
	if err := json.Unmarshal(ev.Data, &payload); err != nil {
		return ws.ErrInvalidEvent
	}
	if payload.ID == 0 {
		return ws.ErrInvalidEvent
	}

	switch payload.Scope {
	case "personal":
		var room string
		if payload.PeerID != 0 {
			room = ws.PairRoom(client.UserID, payload.PeerID)
			lock := r.lockRoom(room)
			lock.Lock()
			defer lock.Unlock()
		}
		ok, err := r.db.DeletePersonalMessage(payload.ID, client.UserID)
		if err != nil || !ok {
			return err
		}
		data, err := ws.MarshalEvent(ws.TypeMessageDeleted, "", client.UserID, ws.MessageDeletedPayload{ID: payload.ID})
		if err != nil {
			return err
		}
		if room != "" {
			r.hub.SendToRoom(room, data)
		} else {
			// Без peer_id нацелить комнату нельзя
			r.hub.SendToAll(data)
		}
		return nil

	case "chat":
		if payload.ChatID == 0 {
			return ws.ErrInvalidEvent
		}
		room := ws.ChatRoom(payload.ChatID)
		lock := r.lockRoom(room)
		lock.Lock()
		defer lock.Unlock()

		ok, err := r.db.DeleteChatMessage(payload.ID, client.UserID)
		if err != nil || !ok {
			return err
		}
		data, err := ws.MarshalEvent(ws.TypeMessageDeleted, room, client.UserID, ws.MessageDeletedPayload{ID: payload.ID})
		if err != nil {
			return err
		}
		r.hub.SendToRoom(room, data)
		return nil

	case "channel":
		if payload.ChannelID == 0 {
			return ws.ErrInvalidEvent
		}
		room := ws.ChannelRoom(payload.ChannelID)
		lock := r.lockRoom(room)
		lock.Lock()
		defer lock.Unlock()

		ok, err := r.db.DeleteChannelMessage(payload.ID, client.UserID)
		if err != nil || !ok {
			return err
		}
		data, err := ws.MarshalEvent(ws.TypeMessageDeleted, room, client.UserID, ws.MessageDeletedPayload{ID: payload.ID})
		if err != nil {
			return err
		}
		r.hub.SendToRoom(room, data)
		return nil

	default:
		return ws.ErrInvalidEvent
	}
}
