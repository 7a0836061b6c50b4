package repository

import (
	"go-gudang/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	FindByUsername(username string) (*model.User, error)
	FindByID(id uint) (*model.User, error)
	Create(user *model.User) error
	Update(user *model.User) error
	UpdatePassword(username, hashedPassword string) error
	FindAllWithItemCount() ([]model.UserWithItemCount, error)
	Delete(tx *gorm.DB, id uint) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepo) Update(user *model.User) error {
	return r.db.Save(user).Error
}

// UpdatePassword returns gorm.ErrRecordNotFound when no user has that username.
func (r *userRepo) UpdatePassword(username, hashedPassword string) error {
	result := r.db.Model(&model.User{}).Where("username = ?", username).Update("password", hashedPassword)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type userCountRow struct {
	model.User
	ItemCount int64 `gorm:"column:item_count"`
}

func (r *userRepo) FindAllWithItemCount() ([]model.UserWithItemCount, error) {
	var rows []userCountRow
	err := r.db.Model(&model.User{}).
		Select("users.*, (SELECT COUNT(*) FROM items WHERE items.user_id = users.id) AS item_count").
		Order("users.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	users := make([]model.UserWithItemCount, len(rows))
	for i := range rows {
		users[i] = model.UserWithItemCount{
			UserResponse: rows[i].User.ToResponse(),
			Count:        model.ItemCount{Items: rows[i].ItemCount},
		}
	}
	return users, nil
}

// Delete runs inside the caller's transaction so it can follow the removal
// of the user's logs and items.
func (r *userRepo) Delete(tx *gorm.DB, id uint) error {
	result := tx.Delete(&model.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
