package database

import (
	"gorm.io/gorm"

	"github.com/thereayou/courier/internal/models"
)

func (d *Database) CreateChat(chat *models.Chat) error {
	return d.db.Create(chat).Error
}

func (d *Database) GetChat(id uint) (*models.Chat, error) {
	var chat models.Chat
	if err := d.db.First(&chat, id).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

func (d *Database) GetChatName(id uint) (string, error) {
	var chat models.Chat
	if err := d.db.Select("name").First(&chat, id).Error; err != nil {
		return "", err
	}
	return chat.Name, nil
}

// AddChatMember идемпотентно добавляет пользователя в чат
func (d *Database) AddChatMember(chatID, userID uint) error {
	member := models.ChatMember{ChatID: chatID, UserID: userID}
	return d.db.Where(&member).FirstOrCreate(&member).Error
}

func (d *Database) IsChatMember(chatID, userID uint) (bool, error) {
	var count int64
	err := d.db.Model(&models.ChatMember{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Count(&count).Error
	return count > 0, err
}

func (d *Database) IsChatAdmin(userID, chatID uint) (bool, error) {
	var chat models.Chat
	if err := d.db.Select("admin_id").First(&chat, chatID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}
	return chat.AdminID == userID, nil
}

// GetUserChats возвращает чаты, в которых пользователь состоит
func (d *Database) GetUserChats(userID uint) ([]models.Chat, error) {
	var chats []models.Chat
	err := d.db.
		Joins("JOIN chat_members ON chat_members.chat_id = chats.id").
		Where("chat_members.user_id = ?", userID).
		Find(&chats).Error
	return chats, err
}

func (d *Database) GetChatMembers(chatID uint) ([]models.User, error) {
	var users []models.User
	err := d.db.
		Joins("JOIN chat_members ON chat_members.user_id = users.id").
		Where("chat_members.chat_id = ?", chatID).
		Find(&users).Error
	return users, err
}

func (d *Database) GetOwnedChatIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := d.db.Model(&models.Chat{}).
		Where("admin_id = ?", userID).
		Pluck("id", &ids).Error
	return ids, err
}

// UpdateChatName переименовывает чат; только админ
func (d *Database) UpdateChatName(chatID uint, newName string, adminID uint) (bool, error) {
	res := d.db.Model(&models.Chat{}).
		Where("id = ? AND admin_id = ?", chatID, adminID).
		Update("name", newName)
	return res.RowsAffected > 0, res.Error
}

// DeleteChat удаляет чат вместе с сообщениями и членствами одной
// транзакцией; только админ
func (d *Database) DeleteChat(chatID, ownerID uint) (bool, error) {
	deleted := false
	err := d.db.Transaction(func(tx *gorm.DB) error {
		var chat models.Chat
		if err := tx.First(&chat, chatID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return err
		}
		if chat.AdminID != ownerID {
			return nil
		}

		// Дочерние строки удаляются раньше родительской
		if err := tx.Delete(&models.ChatMessage{}, "chat_id = ?", chatID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.ChatMember{}, "chat_id = ?", chatID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&chat).Error; err != nil {
			return err
		}

		deleted = true
		return nil
	})
	return deleted, err
}

// CountOnlineChatMembers пересекает членов чата с реестром присутствия
func (d *Database) CountOnlineChatMembers(chatID uint, onlineIDs []uint, excludeUserID uint) (int, error) {
	if len(onlineIDs) == 0 {
		return 0, nil
	}

	var memberIDs []uint
	err := d.db.Model(&models.ChatMember{}).
		Where("chat_id = ?", chatID).
		Pluck("user_id", &memberIDs).Error
	if err != nil {
		return 0, err
	}

	online := make(map[uint]bool, len(onlineIDs))
	for _, id := range onlineIDs {
		online[id] = true
	}

	count := 0
	for _, id := range memberIDs {
		if id != excludeUserID && online[id] {
			count++
		}
	}
	return count, nil
}
