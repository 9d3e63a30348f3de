package database

import (
	"github.com/thereayou/courier/internal/models"
)

// Create* возвращают запись с id и timestamp, выставленными хранилищем;
// они уходят в broadcast как есть.

func (d *Database) CreatePersonalMessage(senderID, toUserID uint, content string) (*models.PersonalMessage, error) {
	msg := models.PersonalMessage{
		SenderID: senderID,
		ToUserID: toUserID,
		Content:  content,
	}
	if err := d.db.Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

func (d *Database) CreateChatMessage(chatID, senderID uint, content string) (*models.ChatMessage, error) {
	msg := models.ChatMessage{
		ChatID:   chatID,
		SenderID: senderID,
		Content:  content,
	}
	if err := d.db.Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

func (d *Database) CreateChannelMessage(channelID, senderID uint, content string) (*models.ChannelMessage, error) {
	msg := models.ChannelMessage{
		ChannelID: channelID,
		SenderID:  senderID,
		Content:   content,
	}
	if err := d.db.Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// GetPersonalMessages возвращает переписку пары в обе стороны
func (d *Database) GetPersonalMessages(user1ID, user2ID uint) ([]models.PersonalMessage, error) {
	var messages []models.PersonalMessage
	err := d.db.
		Where("(sender_id = ? AND to_user_id = ?) OR (sender_id = ? AND to_user_id = ?)",
			user1ID, user2ID, user2ID, user1ID).
		Order("timestamp ASC").
		Preload("Sender").
		Find(&messages).Error
	return messages, err
}

func (d *Database) GetChatMessages(chatID uint) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := d.db.
		Where("chat_id = ?", chatID).
		Order("timestamp ASC").
		Preload("Sender").
		Find(&messages).Error
	return messages, err
}

func (d *Database) GetChannelMessages(channelID uint) ([]models.ChannelMessage, error) {
	var messages []models.ChannelMessage
	err := d.db.
		Where("channel_id = ?", channelID).
		Order("timestamp ASC").
		Preload("Sender").
		Find(&messages).Error
	return messages, err
}

// Delete*Message удаляют строку только если она принадлежит ownerID;
// true — строка существовала и была удалена.

func (d *Database) DeletePersonalMessage(id, ownerID uint) (bool, error) {
	res := d.db.Delete(&models.PersonalMessage{}, "id = ? AND sender_id = ?", id, ownerID)
	return res.RowsAffected > 0, res.Error
}

func (d *Database) DeleteChatMessage(id, ownerID uint) (bool, error) {
	res := d.db.Delete(&models.ChatMessage{}, "id = ? AND sender_id = ?", id, ownerID)
	return res.RowsAffected > 0, res.Error
}

func (d *Database) DeleteChannelMessage(id, ownerID uint) (bool, error) {
	res := d.db.Delete(&models.ChannelMessage{}, "id = ? AND sender_id = ?", id, ownerID)
	return res.RowsAffected > 0, res.Error
}
