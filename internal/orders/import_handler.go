package orders

import (
	"errors"
	"fmt"
	"log"

	"salesorders-backend/internal/audit"
	"salesorders-backend/internal/auth"
	"salesorders-backend/internal/config"
	"salesorders-backend/internal/database"
	"salesorders-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// POST /api/orders/import
// Multipart upload, field "file". Row problems come back as warnings in the
// response; only file-level problems produce an error status.
func ImportOrdersHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No file uploaded: "+err.Error())
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not open uploaded file")
		}
		defer file.Close()

		importer := &Importer{DB: database.DB, ImportLines: cfg.ImportOrderLines}

		result, err := importer.Import(fileHeader.Filename, file)
		if err != nil {
			switch {
			case errors.Is(err, ErrUnsupportedFormat),
				errors.Is(err, ErrMalformedWorkbook),
				errors.Is(err, ErrMissingSheet):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			log.Printf("import failed: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Import failed")
		}

		userID, userName := auth.CurrentUser(c)
		audit.Record(userID, userName, models.AuditActionImport, fileHeader.Filename,
			fmt.Sprintf("%d orders, %d lines, %d warnings",
				result.OrdersImported, result.LinesImported, len(result.Warnings)))

		return c.JSON(result)
	}
}
