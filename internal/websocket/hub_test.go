package websocket

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func newTestClient(h *Hub, userID uint) *Client {
	return &Client{
		ID:     uuid.New(),
		UserID: userID,
		Send:   make(chan []byte, 64),
		Rooms:  make(map[string]bool),
		Hub:    h,
	}
}

// drainEvents разбирает все события, скопившиеся в канале клиента
func drainEvents(t *testing.T, c *Client) []Event {
	t.Helper()
	var events []Event
	for {
		select {
		case data := <-c.Send:
			var ev Event
			if err := json.Unmarshal(data, &ev); err != nil {
				t.Fatalf("bad event on wire: %v", err)
			}
			events = append(events, ev)
		default:
			return events
		}
	}
}

func TestPresencePerUserNotPerConnection(t *testing.T) {
	h := NewHub()

	observer := newTestClient(h, 99)
	h.registerClient(observer)
	drainEvents(t, observer)

	// Два соединения одного пользователя
	c1 := newTestClient(h, 1)
	c2 := newTestClient(h, 1)
	h.registerClient(c1)
	h.registerClient(c2)

	if got := len(h.OnlineUsers()); got != 2 {
		t.Fatalf("OnlineUsers() reports %d users, want 2", got)
	}
	if !h.IsOnline(1) {
		t.Fatal("user 1 should be online")
	}

	// Ровно одно presence-событие на первое соединение
	online := 0
	for _, ev := range drainEvents(t, observer) {
		if ev.Type == TypePresence {
			var p PresencePayload
			if err := json.Unmarshal(ev.Data, &p); err != nil {
				t.Fatal(err)
			}
			if p.UserID == 1 && p.Online {
				online++
			}
		}
	}
	if online != 1 {
		t.Errorf("observer saw %d online events for user 1, want 1", online)
	}

	// Первое закрытие ничего не меняет
	h.unregisterClient(c1)
	if !h.IsOnline(1) {
		t.Fatal("user 1 went offline with a live connection remaining")
	}
	for _, ev := range drainEvents(t, observer) {
		if ev.Type == TypePresence {
			t.Error("presence broadcast before the last connection closed")
		}
	}

	// Второе закрытие — offline
	h.unregisterClient(c2)
	if h.IsOnline(1) {
		t.Fatal("user 1 still online after both connections closed")
	}

	offline := 0
	for _, ev := range drainEvents(t, observer) {
		if ev.Type == TypePresence {
			var p PresencePayload
			if err := json.Unmarshal(ev.Data, &p); err != nil {
				t.Fatal(err)
			}
			if p.UserID == 1 && !p.Online {
				offline++
			}
		}
	}
	if offline != 1 {
		t.Errorf("observer saw %d offline events for user 1, want 1", offline)
	}
}

func TestRegisterGreetsConnection(t *testing.T) {
	h := NewHub()
	observer := newTestClient(h, 2)
	h.registerClient(observer)
	drainEvents(t, observer)

	c := newTestClient(h, 1)
	c.Username = "bob"
	h.registerClient(c)

	greeted := false
	for _, ev := range drainEvents(t, c) {
		if ev.Type != TypeSystem {
			continue
		}
		var p SystemPayload
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			t.Fatal(err)
		}
		if p.Message == "bob connected" {
			greeted = true
		}
	}
	if !greeted {
		t.Error("connecting socket did not receive its greeting")
	}

	// Приветствие личное: остальные видят только presence
	for _, ev := range drainEvents(t, observer) {
		if ev.Type == TypeSystem {
			t.Errorf("observer received a foreign greeting: %s", ev.Data)
		}
	}
}

func TestQueueFullReturnsError(t *testing.T) {
	c := &Client{
		ID:    uuid.New(),
		Send:  make(chan []byte, 1),
		Rooms: make(map[string]bool),
	}

	if err := c.Queue([]byte("a")); err != nil {
		t.Fatalf("first Queue: %v", err)
	}
	if err := c.Queue([]byte("b")); err != ErrClientQueueFull {
		t.Fatalf("Queue on full buffer = %v, want ErrClientQueueFull", err)
	}

	// Освободившийся буфер снова принимает
	<-c.Send
	if err := c.Queue([]byte("c")); err != nil {
		t.Fatalf("Queue after drain: %v", err)
	}
}

func TestRegisterAutoJoinsUserRoom(t *testing.T) {
	h := NewHub()
	c := newTestClient(h, 5)
	h.registerClient(c)
	drainEvents(t, c)

	h.SendToUser(5, []byte(`{"type":"system","timestamp":"2024-01-01T00:00:00Z"}`))

	if events := drainEvents(t, c); len(events) != 1 {
		t.Fatalf("SendToUser delivered %d events, want 1", len(events))
	}
}

func TestJoinLeaveIdempotent(t *testing.T) {
	h := NewHub()
	c := newTestClient(h, 1)
	h.registerClient(c)

	h.JoinRoom(c, "chat:7")
	h.JoinRoom(c, "chat:7")

	if got := len(h.rooms["chat:7"]); got != 1 {
		t.Fatalf("room has %d members after double join, want 1", got)
	}
	if !c.Rooms["chat:7"] {
		t.Fatal("client does not record joined room")
	}

	h.LeaveRoom(c, "chat:7")
	if _, ok := h.rooms["chat:7"]; ok {
		t.Fatal("empty room not dropped after leave")
	}

	// Повторный leave — no-op
	h.LeaveRoom(c, "chat:7")
}

func TestSendToRoomExceptExcludesSender(t *testing.T) {
	h := NewHub()
	sender := newTestClient(h, 1)
	peer := newTestClient(h, 2)
	h.registerClient(sender)
	h.registerClient(peer)
	h.JoinRoom(sender, "1:2")
	h.JoinRoom(peer, "1:2")
	drainEvents(t, sender)
	drainEvents(t, peer)

	data, err := MarshalEvent(TypeTyping, "1:2", 1, TypingPayload{UserID: 1})
	if err != nil {
		t.Fatal(err)
	}
	h.SendToRoomExcept("1:2", data, sender.ID)

	if events := drainEvents(t, sender); len(events) != 0 {
		t.Errorf("sender received %d of its own events", len(events))
	}
	if events := drainEvents(t, peer); len(events) != 1 {
		t.Errorf("peer received %d events, want 1", len(events))
	}
}

func TestDisconnectDiscardsRoomMemberships(t *testing.T) {
	h := NewHub()
	c := newTestClient(h, 1)
	other := newTestClient(h, 2)
	h.registerClient(c)
	h.registerClient(other)
	h.JoinRoom(c, "chat:3")
	h.JoinRoom(other, "chat:3")

	h.unregisterClient(c)

	if _, ok := h.rooms["chat:3"][c.ID]; ok {
		t.Fatal("closed connection still listed as room member")
	}
	if _, ok := h.rooms[UserRoom(1)]; ok {
		t.Fatal("personal room survives after last connection closed")
	}
}
