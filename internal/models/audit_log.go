package models

import "time"

type AuditAction string

const (
	AuditActionImport AuditAction = "import"
	AuditActionExport AuditAction = "export"
	AuditActionPrint  AuditAction = "print"
)

// AuditLog records operator-triggered file operations (import, export, print).
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID   uint   `json:"user_id"`
	UserName string `gorm:"size:100" json:"user_name"` // denormalized

	Action AuditAction `gorm:"size:20;index" json:"action"`

	// Order reference for print, file name for import/export.
	Subject string `gorm:"size:255" json:"subject"`

	// Short human-readable summary, e.g. "12 orders, 40 lines, 2 warnings".
	Description string `gorm:"size:255" json:"description"`
}
