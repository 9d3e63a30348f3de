package models

import "time"

// Channel — широковещательная комната: читают все, пишет только админ
type Channel struct {
	ID        uint   `gorm:"primaryKey"`
	AdminID   uint   `gorm:"not null;index"`
	Name      string `gorm:"not null"`
	CreatedAt time.Time

	Admin User `gorm:"foreignKey:AdminID"`
}
