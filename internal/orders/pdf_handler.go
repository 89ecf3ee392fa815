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

// GET /api/orders/:reference/pdf
func PrintOrderHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reference := c.Params("reference")

		renderer := &Renderer{DB: database.DB, SiteHeader: cfg.SiteHeader}

		data, err := renderer.Render(reference)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Order not found")
			}
			log.Printf("pdf render failed for %s: %v", reference, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not render document")
		}

		userID, userName := auth.CurrentUser(c)
		audit.Record(userID, userName, models.AuditActionPrint, reference, "sales order pdf")

		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename=%q`, fmt.Sprintf("SalesOrder_%s.pdf", reference)))
		return c.Send(data)
	}
}
