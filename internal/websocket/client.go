package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Время ожидания записи
	writeWait = 10 * time.Second

	// Время ожидания pong от клиента
	pongWait = 60 * time.Second

	// Интервал отправки ping
	pingPeriod = (pongWait * 9) / 10

	// Максимальный размер события
	maxMessageSize = 64 * 1024
)

// EventHandler обрабатывает события, требующие авторизации и персистентности.
// Ошибка означает молчаливый drop: клиенту ничего не возвращается.
type EventHandler interface {
	HandleEvent(client *Client, ev *Event) error
}

type Client struct {
	ID       uuid.UUID
	UserID   uint
	Username string
	Conn     *websocket.Conn
	Send     chan []byte
	Rooms    map[string]bool
	Hub      *Hub
	mu       sync.RWMutex
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uint, username string) *Client {
	return &Client{
		ID:       uuid.New(),
		UserID:   userID,
		Username: username,
		Conn:     conn,
		Send:     make(chan []byte, 256),
		Rooms:    make(map[string]bool),
		Hub:      hub,
	}
}

// Queue ставит событие в очередь отправки без блокировки. Медленный
// получатель теряет событие, а не тормозит рассылку.
func (c *Client) Queue(data []byte) error {
	select {
	case c.Send <- data:
		return nil
	default:
		return ErrClientQueueFull
	}
}

// ReadPump читает события от клиента
func (c *Client) ReadPump(handler EventHandler) {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var ev Event
		err := c.Conn.ReadJSON(&ev)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		// Идентификатор отправителя берется из сессии, не из события
		ev.UserID = c.UserID

		switch ev.Type {
		case TypePong:
			continue

		case TypeJoin:
			if ev.Room != "" {
				c.Hub.JoinRoom(c, ev.Room)
			}
			continue

		case TypeLeave:
			if ev.Room != "" {
				c.Hub.LeaveRoom(c, ev.Room)
			}
			continue
		}

		if handler != nil {
			if err := handler.HandleEvent(c, &ev); err != nil {
				log.Printf("Event %s from user %d dropped: %v", ev.Type, c.UserID, err)
			}
		}
	}
}

// WritePump отправляет события клиенту
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub закрыл канал
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			c.Conn.WriteMessage(websocket.TextMessage, data)

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
