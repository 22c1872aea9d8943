package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/votehub/votehub-api/internal/models"
)

// AdminHandler exposes the operational endpoints behind the admin gate.
type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// ListLogs returns recent persisted error logs, newest first.
func (h *AdminHandler) ListLogs(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	if limit < 1 || limit > 1000 {
		limit = 100
	}

	var logs []models.SystemLog
	if err := h.db.WithContext(c.UserContext()).
		Order("timestamp DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return internalError(c)
	}
	return c.JSON(logs)
}
