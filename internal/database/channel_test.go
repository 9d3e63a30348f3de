package database

import "testing"

func TestIsChannelAdmin(t *testing.T) {
	d := newTestDB(t)
	admin := mustUser(t, d, "admin")
	reader := mustUser(t, d, "reader")
	channelID := mustChannel(t, d, admin, "news")

	tests := []struct {
		name      string
		userID    uint
		channelID uint
		want      bool
	}{
		{"owner", admin, channelID, true},
		{"reader", reader, channelID, false},
		{"missing channel", admin, 999, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.IsChannelAdmin(tt.userID, tt.channelID)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("IsChannelAdmin(%d, %d) = %v, want %v", tt.userID, tt.channelID, got, tt.want)
			}
		})
	}
}

func TestGetChannelOwner(t *testing.T) {
	d := newTestDB(t)
	admin := mustUser(t, d, "admin")
	channelID := mustChannel(t, d, admin, "news")

	owner, err := d.GetChannelOwner(channelID)
	if err != nil {
		t.Fatal(err)
	}
	if owner.ID != admin || owner.Username != "admin" {
		t.Errorf("owner = %+v, want user %d %q", owner, admin, "admin")
	}

	if _, err := d.GetChannelOwner(999); err == nil {
		t.Error("missing channel returned an owner")
	}
}

func TestDeleteChannelCascades(t *testing.T) {
	d := newTestDB(t)
	admin := mustUser(t, d, "admin")
	other := mustUser(t, d, "other")
	channelID := mustChannel(t, d, admin, "news")

	if _, err := d.CreateChannelMessage(channelID, admin, "post"); err != nil {
		t.Fatal(err)
	}

	ok, err := d.DeleteChannel(channelID, other)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("non-admin delete reported success")
	}

	ok, err = d.DeleteChannel(channelID, admin)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("admin delete reported failure")
	}

	if _, err := d.GetChannelName(channelID); err == nil {
		t.Error("channel row survived delete")
	}
	if msgs, _ := d.GetChannelMessages(channelID); len(msgs) != 0 {
		t.Errorf("%d orphaned messages after delete", len(msgs))
	}
}
