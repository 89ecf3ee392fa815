package orders

import (
	"strings"

	"salesorders-backend/internal/database"
	"salesorders-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type OrderRequest struct {
	CreationDate   string `json:"creation_date"`
	Customer       string `json:"customer"`
	Currency       string `json:"currency"`
	OrderReference string `json:"order_reference"`
	Salesperson    string `json:"salesperson"`
	Status         string `json:"status"`
	Total          string `json:"total"`

	PrimaryContact         string `json:"primary_contact"`
	FinanceContact         string `json:"finance_contact"`
	DeliveryAddress        string `json:"delivery_address"`
	InvoiceAddress         string `json:"invoice_address"`
	EmailAddress           string `json:"email_address"`
	DeliveryDate           string `json:"delivery_date"`
	DeliveryOfficeLocation string `json:"delivery_office_location"`
	TellNo                 string `json:"tell_no"`
	Designation            string `json:"designation"`
	Department             string `json:"department"`
	LPOConfirmationDate    string `json:"lpo_confirmation_date"`
	LPODate                string `json:"lpo_date"`
	LPONumber              string `json:"lpo_number"`
	Comments               string `json:"comments"`
}

// toModel reuses the positional row mapping so form entry and spreadsheet
// import validate identically.
func (req *OrderRequest) toModel() (*models.SalesOrder, error) {
	return OrderFromRow([]string{
		req.CreationDate, req.Customer, req.Currency, req.OrderReference,
		req.Salesperson, req.Status, req.Total, req.PrimaryContact,
		req.FinanceContact, req.DeliveryAddress, req.InvoiceAddress,
		req.EmailAddress, req.DeliveryDate, req.DeliveryOfficeLocation,
		req.TellNo, req.Designation, req.Department, req.LPOConfirmationDate,
		req.LPODate, req.LPONumber, req.Comments,
	})
}

// GET /api/orders?status=Confirmed&q=acme
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.SalesOrder{})

		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}
		if q := strings.TrimSpace(c.Query("q")); q != "" {
			pattern := "%" + strings.ToLower(q) + "%"
			dbq = dbq.Where("lower(order_reference) LIKE ? OR lower(customer) LIKE ?", pattern, pattern)
		}

		var orders []models.SalesOrder
		if err := dbq.Order("creation_date desc, order_reference asc").Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list orders")
		}

		return c.JSON(orders)
	}
}

// GET /api/orders/:reference
func GetOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reference := c.Params("reference")

		var order models.SalesOrder
		if err := database.DB.Preload("Lines").
			First(&order, "order_reference = ?", reference).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Order not found")
		}

		return c.JSON(order)
	}
}

// POST /api/orders
func CreateOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body OrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		order, err := body.toModel()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var count int64
		database.DB.Model(&models.SalesOrder{}).
			Where("order_reference = ?", order.OrderReference).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "An order with this reference already exists")
		}

		if err := database.DB.Create(order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create order")
		}

		return c.Status(fiber.StatusCreated).JSON(order)
	}
}

// PUT /api/orders/:reference
// The reference is the primary key and cannot be changed.
func UpdateOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reference := c.Params("reference")

		var existing models.SalesOrder
		if err := database.DB.First(&existing, "order_reference = ?", reference).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Order not found")
		}

		var body OrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.OrderReference != "" && body.OrderReference != reference {
			return fiber.NewError(fiber.StatusBadRequest, "The order reference cannot be changed")
		}
		body.OrderReference = reference

		order, err := body.toModel()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		order.CreatedAt = existing.CreatedAt

		if err := database.DB.Save(order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update order")
		}

		return c.JSON(order)
	}
}

// DELETE /api/orders/:reference
// Deleting an order removes its lines as well.
func DeleteOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reference := c.Params("reference")

		var order models.SalesOrder
		if err := database.DB.First(&order, "order_reference = ?", reference).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Order not found")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_reference = ?", reference).
				Delete(&models.SalesOrderLine{}).Error; err != nil {
				return err
			}
			return tx.Delete(&order).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete order")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

type AutocompleteEntry struct {
	OrderReference string `json:"order_reference"`
	Customer       string `json:"customer"`
}

// GET /api/orders/autocomplete?q=so-1
// Used by the line editor to look up a parent order by reference or customer.
func AutocompleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := strings.TrimSpace(c.Query("q"))
		if q == "" {
			return c.JSON([]AutocompleteEntry{})
		}

		pattern := "%" + strings.ToLower(q) + "%"
		var orders []models.SalesOrder
		if err := database.DB.
			Where("lower(order_reference) LIKE ? OR lower(customer) LIKE ?", pattern, pattern).
			Order("order_reference asc").Limit(10).Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Lookup failed")
		}

		res := make([]AutocompleteEntry, 0, len(orders))
		for _, o := range orders {
			res = append(res, AutocompleteEntry{OrderReference: o.OrderReference, Customer: o.Customer})
		}
		return c.JSON(res)
	}
}
