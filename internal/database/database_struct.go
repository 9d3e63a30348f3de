package database

import "gorm.io/gorm"

// Database — долговременное хранилище: пользователи, чаты, каналы,
// членства и три лога сообщений
type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}
