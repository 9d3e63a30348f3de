package database

import (
	"gorm.io/gorm"

	"github.com/thereayou/courier/internal/models"
)

func (d *Database) CreateChannel(channel *models.Channel) error {
	return d.db.Create(channel).Error
}

func (d *Database) GetChannelName(id uint) (string, error) {
	var channel models.Channel
	if err := d.db.Select("name").First(&channel, id).Error; err != nil {
		return "", err
	}
	return channel.Name, nil
}

func (d *Database) IsChannelAdmin(userID, channelID uint) (bool, error) {
	var channel models.Channel
	if err := d.db.Select("admin_id").First(&channel, channelID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}
	return channel.AdminID == userID, nil
}

func (d *Database) GetAllChannels() ([]models.Channel, error) {
	var channels []models.Channel
	err := d.db.Order("name ASC").Find(&channels).Error
	return channels, err
}

func (d *Database) GetChannelOwner(channelID uint) (*models.User, error) {
	var channel models.Channel
	if err := d.db.Preload("Admin").First(&channel, channelID).Error; err != nil {
		return nil, err
	}
	return &channel.Admin, nil
}

func (d *Database) GetOwnedChannelIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := d.db.Model(&models.Channel{}).
		Where("admin_id = ?", userID).
		Pluck("id", &ids).Error
	return ids, err
}

// UpdateChannelName переименовывает канал; только админ
func (d *Database) UpdateChannelName(channelID uint, newName string, adminID uint) (bool, error) {
	res := d.db.Model(&models.Channel{}).
		Where("id = ? AND admin_id = ?", channelID, adminID).
		Update("name", newName)
	return res.RowsAffected > 0, res.Error
}

// DeleteChannel удаляет канал вместе с сообщениями одной транзакцией;
// только админ
func (d *Database) DeleteChannel(channelID, ownerID uint) (bool, error) {
	deleted := false
	err := d.db.Transaction(func(tx *gorm.DB) error {
		var channel models.Channel
		if err := tx.First(&channel, channelID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return err
		}
		if channel.AdminID != ownerID {
			return nil
		}

		if err := tx.Delete(&models.ChannelMessage{}, "channel_id = ?", channelID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&channel).Error; err != nil {
			return err
		}

		deleted = true
		return nil
	})
	return deleted, err
}
