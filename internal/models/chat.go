package models

import "time"

type Chat struct {
	ID        uint   `gorm:"primaryKey"`
	AdminID   uint   `gorm:"not null;index"`
	Name      string `gorm:"not null"`
	CreatedAt time.Time

	// Связи
	Admin   User         `gorm:"foreignKey:AdminID"`
	Members []ChatMember `gorm:"foreignKey:ChatID"`
}

// ChatMember определяет, кто может читать и писать в чате
type ChatMember struct {
	ID     uint `gorm:"primaryKey"`
	ChatID uint `gorm:"not null;uniqueIndex:idx_chat_member"`
	UserID uint `gorm:"not null;uniqueIndex:idx_chat_member"`

	User User `gorm:"foreignKey:UserID"`
}
