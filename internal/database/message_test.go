package database

import "testing"

func TestPersonalMessagesBothDirections(t *testing.T) {
	d := newTestDB(t)
	alice := mustUser(t, d, "A")
	bob := mustUser(t, d, "B")
	eve := mustUser(t, d, "E")

	if _, err := d.CreatePersonalMessage(alice, bob, "hi"); err != nil {
		t.Fatal(err)
	}
	if _, err := d.CreatePersonalMessage(bob, alice, "hey"); err != nil {
		t.Fatal(err)
	}
	if _, err := d.CreatePersonalMessage(alice, eve, "psst"); err != nil {
		t.Fatal(err)
	}

	msgs, err := d.GetPersonalMessages(alice, bob)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 2 {
		t.Fatalf("%d messages, want 2", len(msgs))
	}
	if msgs[0].Content != "hi" || msgs[1].Content != "hey" {
		t.Errorf("history out of order: %q, %q", msgs[0].Content, msgs[1].Content)
	}
	if msgs[0].Sender.Username != "A" {
		t.Errorf("sender not preloaded: %+v", msgs[0].Sender)
	}

	// Аргументы в любом порядке дают одну и ту же переписку
	swapped, err := d.GetPersonalMessages(bob, alice)
	if err != nil {
		t.Fatal(err)
	}
	if len(swapped) != 2 {
		t.Errorf("swapped lookup returned %d messages, want 2", len(swapped))
	}
}

func TestDeletePersonalMessageOwnership(t *testing.T) {
	d := newTestDB(t)
	alice := mustUser(t, d, "A")
	bob := mustUser(t, d, "B")

	msg, err := d.CreatePersonalMessage(alice, bob, "hi")
	if err != nil {
		t.Fatal(err)
	}

	ok, err := d.DeletePersonalMessage(msg.ID, bob)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("recipient delete reported success")
	}
	if msgs, _ := d.GetPersonalMessages(alice, bob); len(msgs) != 1 {
		t.Fatal("row removed by non-owner")
	}

	ok, err = d.DeletePersonalMessage(msg.ID, alice)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("owner delete reported failure")
	}
	if msgs, _ := d.GetPersonalMessages(alice, bob); len(msgs) != 0 {
		t.Fatal("row survived owner delete")
	}

	// Повторное удаление — уже false
	ok, err = d.DeletePersonalMessage(msg.ID, alice)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("second delete reported success")
	}
}

func TestDeleteChatMessageOwnership(t *testing.T) {
	d := newTestDB(t)
	admin := mustUser(t, d, "admin")
	member := mustUser(t, d, "member")
	chatID := mustChat(t, d, admin, "general", member)

	msg, err := d.CreateChatMessage(chatID, member, "mine")
	if err != nil {
		t.Fatal(err)
	}

	if ok, _ := d.DeleteChatMessage(msg.ID, admin); ok {
		t.Fatal("admin deleted another sender's chat message")
	}
	if ok, _ := d.DeleteChatMessage(msg.ID, member); !ok {
		t.Fatal("sender could not delete own chat message")
	}
}

func TestDeleteChannelMessageOwnership(t *testing.T) {
	d := newTestDB(t)
	admin := mustUser(t, d, "admin")
	other := mustUser(t, d, "other")

	channelID := mustChannel(t, d, admin, "news")

	msg, err := d.CreateChannelMessage(channelID, admin, "post")
	if err != nil {
		t.Fatal(err)
	}

	if ok, _ := d.DeleteChannelMessage(msg.ID, other); ok {
		t.Fatal("non-owner deleted a channel message")
	}
	if ok, _ := d.DeleteChannelMessage(msg.ID, admin); !ok {
		t.Fatal("owner could not delete channel message")
	}
}
