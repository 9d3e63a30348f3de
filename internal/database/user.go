package database

import (
	"github.com/thereayou/courier/internal/models"
)

func (d *Database) SaveUser(user *models.User) error {
	return d.db.Create(user).Error
}

func (d *Database) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := d.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) FindUserByName(name string) (*models.User, error) {
	var user models.User
	if err := d.db.Where("username = ?", name).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ResolveUserID возвращает id пользователя по имени
func (d *Database) ResolveUserID(name string) (uint, error) {
	var user models.User
	if err := d.db.Select("id").Where("username = ?", name).First(&user).Error; err != nil {
		return 0, err
	}
	return user.ID, nil
}

func (d *Database) GetUsername(id uint) (string, error) {
	var user models.User
	if err := d.db.Select("username").First(&user, id).Error; err != nil {
		return "", err
	}
	return user.Username, nil
}

func (d *Database) GetAllUsers() ([]models.User, error) {
	var users []models.User
	err := d.db.Order("username ASC").Find(&users).Error
	return users, err
}
