package audit

import (
	"log"

	"salesorders-backend/internal/database"
	"salesorders-backend/internal/models"
)

// Record writes one audit entry. Audit failures are logged and swallowed so
// they never fail the operation they describe.
func Record(userID uint, userName string, action models.AuditAction, subject, description string) {
	entry := models.AuditLog{
		UserID:      userID,
		UserName:    userName,
		Action:      action,
		Subject:     subject,
		Description: description,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		log.Printf("audit log write failed: %v", err)
	}
}
