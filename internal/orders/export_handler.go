package orders

import (
	"fmt"
	"log"
	"time"

	"salesorders-backend/internal/audit"
	"salesorders-backend/internal/auth"
	"salesorders-backend/internal/database"
	"salesorders-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GET /api/orders/export?format=xlsx|csv
// Always a full dump. xlsx carries both sheets, csv carries orders only.
func ExportOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		format := c.Query("format", "xlsx")
		exporter := &Exporter{DB: database.DB}

		var (
			data        []byte
			err         error
			contentType string
		)
		switch format {
		case "xlsx":
			data, err = exporter.Workbook()
			contentType = xlsxContentType
		case "csv":
			data, err = exporter.CSV()
			contentType = "text/csv"
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Unknown export format, use xlsx or csv")
		}
		if err != nil {
			log.Printf("export failed: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Export failed")
		}

		filename := fmt.Sprintf("SalesOrders_%s.%s", time.Now().Format("2006-01-02"), format)

		userID, userName := auth.CurrentUser(c)
		audit.Record(userID, userName, models.AuditActionExport, filename,
			fmt.Sprintf("%s export, %d bytes", format, len(data)))

		c.Set(fiber.HeaderContentType, contentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
		return c.Send(data)
	}
}
