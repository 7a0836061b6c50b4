package repository

import (
	"go-gudang/internal/model"

	"gorm.io/gorm"
)

type ActivityLogRepository interface {
	Create(tx *gorm.DB, log *model.ActivityLog) error
	FindRecentByUser(userID uint, limit int) ([]model.ActivityLog, error)
	DeleteByUser(tx *gorm.DB, userID uint) error
}

type activityLogRepo struct {
	db *gorm.DB
}

func NewActivityLogRepo(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepo{db}
}

func (r *activityLogRepo) Create(tx *gorm.DB, log *model.ActivityLog) error {
	return tx.Create(log).Error
}

// FindRecentByUser returns the newest logs first; id breaks ties between
// rows written within the same clock tick.
func (r *activityLogRepo) FindRecentByUser(userID uint, limit int) ([]model.ActivityLog, error) {
	logs := []model.ActivityLog{}
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (r *activityLogRepo) DeleteByUser(tx *gorm.DB, userID uint) error {
	return tx.Where("user_id = ?", userID).Delete(&model.ActivityLog{}).Error
}
