package service

import (
	"go-gudang/internal/model"
	"go-gudang/internal/repository"
)

// RecentLogLimit is how many entries GET /logs returns.
const RecentLogLimit = 15

type ActivityService interface {
	GetRecentLogs(userID uint) ([]model.ActivityLog, error)
}

type activityService struct {
	logRepo repository.ActivityLogRepository
}

func NewActivityService(logRepo repository.ActivityLogRepository) ActivityService {
	return &activityService{logRepo: logRepo}
}

func (s *activityService) GetRecentLogs(userID uint) ([]model.ActivityLog, error) {
	return s.logRepo.FindRecentByUser(userID, RecentLogLimit)
}
