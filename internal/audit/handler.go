package audit

import (
	"salesorders-backend/internal/database"
	"salesorders-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/audit-logs?action=import
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.AuditLog{})

		if action := c.Query("action"); action != "" {
			dbq = dbq.Where("action = ?", action)
		}

		var logs []models.AuditLog
		if err := dbq.Order("created_at desc").Limit(200).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list audit logs")
		}

		return c.JSON(logs)
	}
}
