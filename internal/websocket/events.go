package websocket

import (
	"encoding/json"
	"time"
)

// EventType определяет типы событий
type EventType string

const (
	// Системные типы
	TypePing EventType = "ping"
	TypePong EventType = "pong"

	// Комнаты
	TypeJoin  EventType = "join"
	TypeLeave EventType = "leave"

	// Входящие события сообщений
	TypePersonalMessage EventType = "personal_message"
	TypeChatMessage     EventType = "chat_message"
	TypeChannelMessage  EventType = "channel_message"
	TypeDeleteMessage   EventType = "delete_message"

	// Сигналы набора текста
	TypeTyping         EventType = "typing"
	TypeTypingPresence EventType = "typing_presence"

	// Исходящие уведомления
	TypePresence       EventType = "presence"
	TypeSystem         EventType = "system"
	TypeMessageDeleted EventType = "message_deleted"
)

// Known сообщает, входит ли тип в известный набор. Тип приходит с
// клиента как есть и не годится в метки метрик без этой проверки.
func (t EventType) Known() bool {
	switch t {
	case TypePing, TypePong, TypeJoin, TypeLeave,
		TypePersonalMessage, TypeChatMessage, TypeChannelMessage, TypeDeleteMessage,
		TypeTyping, TypeTypingPresence,
		TypePresence, TypeSystem, TypeMessageDeleted:
		return true
	}
	return false
}

type Event struct {
	Type      EventType       `json:"type"`
	Room      string          `json:"room,omitempty"`
	UserID    uint            `json:"user_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Исходящие payload'ы

type PresencePayload struct {
	UserID uint `json:"user_id"`
	Online bool `json:"online"`
}

type SystemPayload struct {
	Message   string `json:"message"`
	Room      string `json:"room,omitempty"`
	ChatID    uint   `json:"chat_id,omitempty"`
	ChannelID uint   `json:"channel_id,omitempty"`
	NewName   string `json:"new_name,omitempty"`
}

type TypingPayload struct {
	UserID uint `json:"user_id"`
}

type MessageDeletedPayload struct {
	ID    uint   `json:"id"`
	Scope string `json:"scope,omitempty"`
}

// MarshalEvent собирает событие с payload'ом в wire-формат
func MarshalEvent(t EventType, room string, userID uint, payload interface{}) ([]byte, error) {
	ev := Event{
		Type:      t,
		Room:      room,
		UserID:    userID,
		Timestamp: time.Now(),
	}

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		ev.Data = data
	}

	return json.Marshal(ev)
}
