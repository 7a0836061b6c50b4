package handler

import (
	"go-gudang/internal/middleware"
	"go-gudang/internal/service"

	"github.com/gofiber/fiber/v2"
)

type LogHandler struct {
	activityService service.ActivityService
}

func NewLogHandler(s service.ActivityService) *LogHandler {
	return &LogHandler{activityService: s}
}

// GetLogs returns the caller's latest activity, newest first.
// GET /logs
func (h *LogHandler) GetLogs(c *fiber.Ctx) error {
	logs, err := h.activityService.GetRecentLogs(middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(logs)
}
