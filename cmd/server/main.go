package main

import (
	"log"
	"strings"

	"salesorders-backend/internal/audit"
	"salesorders-backend/internal/auth"
	"salesorders-backend/internal/config"
	"salesorders-backend/internal/database"
	"salesorders-backend/internal/orders"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		AppName: cfg.SiteTitle,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Branding for the admin frontend, from config rather than baked in.
	api.Get("/site", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"header": cfg.SiteHeader,
			"title":  cfg.SiteTitle,
		})
	})

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Operator actions: import, export, print-one
	protected.Post("/orders/import", orders.ImportOrdersHandler(cfg))
	protected.Get("/orders/export", orders.ExportOrdersHandler())
	protected.Get("/orders/autocomplete", orders.AutocompleteHandler())
	protected.Get("/orders/:reference/pdf", orders.PrintOrderHandler(cfg))

	// Order CRUD
	protected.Get("/orders", orders.ListOrdersHandler())
	protected.Post("/orders", orders.CreateOrderHandler())
	protected.Get("/orders/:reference", orders.GetOrderHandler())
	protected.Put("/orders/:reference", orders.UpdateOrderHandler())
	protected.Delete("/orders/:reference", orders.DeleteOrderHandler())

	// Order line CRUD
	protected.Get("/orders/:reference/lines", orders.ListOrderLinesHandler())
	protected.Post("/orders/:reference/lines", orders.CreateOrderLineHandler())
	protected.Put("/order-lines/:id", orders.UpdateOrderLineHandler())
	protected.Delete("/order-lines/:id", orders.DeleteOrderLineHandler())

	// Audit trail
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server listening on port", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
