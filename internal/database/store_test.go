package database

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/thereayou/courier/internal/models"
)

func newTestDB(t *testing.T) *Database {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = gdb.AutoMigrate(
		&models.User{},
		&models.Chat{},
		&models.ChatMember{},
		&models.Channel{},
		&models.PersonalMessage{},
		&models.ChatMessage{},
		&models.ChannelMessage{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return NewDatabase(gdb)
}

func mustUser(t *testing.T, d *Database, username string) uint {
	t.Helper()
	user := models.User{Username: username, PasswordHash: "x"}
	if err := d.SaveUser(&user); err != nil {
		t.Fatalf("save user %q: %v", username, err)
	}
	return user.ID
}

func mustChat(t *testing.T, d *Database, adminID uint, name string, memberIDs ...uint) uint {
	t.Helper()
	chat := models.Chat{AdminID: adminID, Name: name}
	if err := d.CreateChat(&chat); err != nil {
		t.Fatalf("create chat: %v", err)
	}
	for _, id := range append([]uint{adminID}, memberIDs...) {
		if err := d.AddChatMember(chat.ID, id); err != nil {
			t.Fatalf("add member %d: %v", id, err)
		}
	}
	return chat.ID
}

func mustChannel(t *testing.T, d *Database, adminID uint, name string) uint {
	t.Helper()
	channel := models.Channel{AdminID: adminID, Name: name}
	if err := d.CreateChannel(&channel); err != nil {
		t.Fatalf("create channel: %v", err)
	}
	return channel.ID
}
