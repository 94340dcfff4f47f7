// Package router assembles the fiber application: middleware, routes and the websocket endpoint.
package router

import (
	"tortilleria-ventas/internal/config"
	"tortilleria-ventas/internal/handler"
	"tortilleria-ventas/internal/middleware"
	"tortilleria-ventas/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

const AppName = "Tortillería Ventas v1.0"

type Deps struct {
	Sales   *handler.SaleHandler
	Reports *handler.ReportHandler
	Catalog *handler.CatalogHandler
	Health  *handler.HealthHandler
	Hub     *ws.Hub
}

func New(cfg *config.Config, d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      AppName,
		ErrorHandler: handler.ErrorHandler,
	})

	// Middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${method} ${path} | req=${locals:requestid}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))
	app.Use(middleware.QueryDeadline(cfg.QueryTimeout))

	app.Get("/health", d.Health.Health)

	// Writes carry the cashier identity when a signing secret is configured
	write := []fiber.Handler{}
	if cfg.AuthEnabled() {
		write = append(write, middleware.RequireAuth([]byte(cfg.JWTSecret)))
	}

	// ============ SALES ============
	// Fixed paths are registered before /ventas/:id so they are not captured as ids
	ventas := app.Group("/ventas")
	ventas.Get("/periodo", d.Sales.GetSalesByPeriod)
	ventas.Get("/por-fecha", d.Sales.GetSalesByPeriod)
	ventas.Get("/resumen/total", d.Reports.GetTotalByPeriod)
	ventas.Get("/resumen/diario", d.Reports.GetDailySales)
	ventas.Get("/por-sucursal/:id", d.Sales.GetSalesByBranch)

	ventas.Get("/", d.Sales.ListSales)
	ventas.Post("/", append(write, d.Sales.CreateSale)...)
	ventas.Get("/:id", d.Sales.GetSale)
	ventas.Put("/:id", append(write, d.Sales.UpdateSale)...)
	ventas.Delete("/:id", append(write, d.Sales.DeleteSale)...)

	app.Get("/detalles-venta/:venta_id", d.Sales.GetLineItems)

	// ============ CATALOG ============
	app.Get("/sucursales", d.Catalog.GetBranches)
	app.Get("/sucursales/:id", d.Catalog.GetBranch)
	app.Get("/empleados", d.Catalog.GetEmployees)
	app.Get("/empleados/:id", d.Catalog.GetEmployee)
	app.Get("/productos", d.Catalog.GetProducts)
	app.Get("/productos/:id", d.Catalog.GetProduct)

	if d.Hub != nil {
		registerWebsocket(app, d.Hub)
	}

	return app
}

func registerWebsocket(app *fiber.App, hub *ws.Hub) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		if !hub.Join(c) {
			return
		}
		defer hub.Leave(c)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))
}
