package models

import "time"

// Timestamp выставляется хранилищем при записи и служит единственным
// ключом сортировки при перечитывании лога.

type PersonalMessage struct {
	ID        uint      `gorm:"primaryKey"`
	SenderID  uint      `gorm:"not null;index"`
	ToUserID  uint      `gorm:"not null;index"`
	Content   string    `gorm:"not null"`
	Timestamp time.Time `gorm:"autoCreateTime;index"`

	Sender User `gorm:"foreignKey:SenderID"`
}

type ChatMessage struct {
	ID        uint      `gorm:"primaryKey"`
	ChatID    uint      `gorm:"not null;index"`
	SenderID  uint      `gorm:"not null"`
	Content   string    `gorm:"not null"`
	Timestamp time.Time `gorm:"autoCreateTime;index"`

	Sender User `gorm:"foreignKey:SenderID"`
	Chat   Chat `gorm:"foreignKey:ChatID"`
}

type ChannelMessage struct {
	ID        uint      `gorm:"primaryKey"`
	ChannelID uint      `gorm:"not null;index"`
	SenderID  uint      `gorm:"not null"`
	Content   string    `gorm:"not null"`
	Timestamp time.Time `gorm:"autoCreateTime;index"`

	Sender  User    `gorm:"foreignKey:SenderID"`
	Channel Channel `gorm:"foreignKey:ChannelID"`
}
