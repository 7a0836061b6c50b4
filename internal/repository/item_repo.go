package repository

import (
	"go-gudang/internal/model"

	"gorm.io/gorm"
)

// ItemRepository scopes every lookup by owner. Write methods take the
// transaction they must run in.
type ItemRepository interface {
	FindAllByUser(userID uint) ([]model.Item, error)
	FindByIDForUser(id, userID uint) (*model.Item, error)
	Create(tx *gorm.DB, item *model.Item) error
	Update(tx *gorm.DB, item *model.Item, fields map[string]interface{}) error
	Delete(tx *gorm.DB, id, userID uint) error
	DeleteByUser(tx *gorm.DB, userID uint) error
}

type itemRepo struct {
	db *gorm.DB
}

func NewItemRepo(db *gorm.DB) ItemRepository {
	return &itemRepo{db}
}

func (r *itemRepo) FindAllByUser(userID uint) ([]model.Item, error) {
	items := []model.Item{}
	err := r.db.Where("user_id = ?", userID).Order("id DESC").Find(&items).Error
	return items, err
}

func (r *itemRepo) FindByIDForUser(id, userID uint) (*model.Item, error) {
	var item model.Item
	if err := r.db.First(&item, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) Create(tx *gorm.DB, item *model.Item) error {
	return tx.Create(item).Error
}

// Update writes fields to the item owned by item.UserID and reloads it.
// It returns gorm.ErrRecordNotFound when the caller does not own the item.
func (r *itemRepo) Update(tx *gorm.DB, item *model.Item, fields map[string]interface{}) error {
	result := tx.Model(&model.Item{}).
		Where("id = ? AND user_id = ?", item.ID, item.UserID).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return tx.First(item, "id = ?", item.ID).Error
}

func (r *itemRepo) Delete(tx *gorm.DB, id, userID uint) error {
	result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Item{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *itemRepo) DeleteByUser(tx *gorm.DB, userID uint) error {
	return tx.Where("user_id = ?", userID).Delete(&model.Item{}).Error
}
