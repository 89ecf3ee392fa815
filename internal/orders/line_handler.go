package orders

import (
	"salesorders-backend/internal/database"
	"salesorders-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LineRequest struct {
	Product   string `json:"product"`
	Quantity  string `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Cost      string `json:"cost"`
}

// toModel goes through the shared row mapping; margin columns are left blank
// because ComputeMargins is the only source for them.
func (req *LineRequest) toModel(reference string) (*models.SalesOrderLine, error) {
	return LineFromRow([]string{
		reference, req.Product, req.Quantity, req.UnitPrice, req.Cost, "", "",
	})
}

// GET /api/orders/:reference/lines
func ListOrderLinesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reference := c.Params("reference")

		if err := requireOrder(reference); err != nil {
			return err
		}

		var lines []models.SalesOrderLine
		if err := database.DB.Where("order_reference = ?", reference).
			Order("id asc").Find(&lines).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list order lines")
		}

		return c.JSON(lines)
	}
}

// POST /api/orders/:reference/lines
func CreateOrderLineHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reference := c.Params("reference")

		if err := requireOrder(reference); err != nil {
			return err
		}

		var body LineRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		line, err := body.toModel(reference)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := database.DB.Create(line).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create order line")
		}

		return c.Status(fiber.StatusCreated).JSON(line)
	}
}

// PUT /api/order-lines/:id
func UpdateOrderLineHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var existing models.SalesOrderLine
		if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Order line not found")
		}

		var body LineRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		line, err := body.toModel(existing.OrderReference)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		line.ID = existing.ID
		line.CreatedAt = existing.CreatedAt

		if err := database.DB.Save(line).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update order line")
		}

		return c.JSON(line)
	}
}

// DELETE /api/order-lines/:id
func DeleteOrderLineHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var line models.SalesOrderLine
		if err := database.DB.First(&line, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Order line not found")
		}

		if err := database.DB.Delete(&line).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete order line")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

func requireOrder(reference string) error {
	var count int64
	database.DB.Model(&models.SalesOrder{}).
		Where("order_reference = ?", reference).
		Count(&count)
	if count == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Order not found")
	}
	return nil
}
