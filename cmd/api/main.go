package main

import (
	"context"
	"io"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"tortilleria-ventas/internal/config"
	"tortilleria-ventas/internal/handler"
	"tortilleria-ventas/internal/repository"
	"tortilleria-ventas/internal/router"
	"tortilleria-ventas/internal/service"
	"tortilleria-ventas/internal/ws"
	"tortilleria-ventas/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.Load()

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("open log file %s: %v", cfg.LogFile, err)
		}
		defer f.Close()
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}

	// 2. Setup Database
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("Warning: closing database: %v", err)
		}
	}()

	if cfg.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate schema: %v", err)
		}
	}

	// 3. Repositories, optional demo catalog
	saleRepo := repository.NewSaleRepo(db)
	catalogRepo := repository.NewCatalogRepo(db)

	if cfg.SeedDemoData {
		if err := catalogRepo.SeedDefaults(context.Background()); err != nil {
			log.Printf("Warning: Failed to seed demo catalog: %v", err)
		}
	}

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	saleService := service.NewSaleService(saleRepo, catalogRepo, wsHub)
	reportService := service.NewReportService(saleRepo)
	catalogService := service.NewCatalogService(catalogRepo)

	app := router.New(cfg, router.Deps{
		Sales:   handler.NewSaleHandler(saleService),
		Reports: handler.NewReportHandler(reportService),
		Catalog: handler.NewCatalogHandler(catalogService),
		Health: handler.NewHealthHandler(func(ctx context.Context) error {
			return database.Ping(ctx, db)
		}),
		Hub: wsHub,
	})

	printBanner(app, cfg)

	// 6. Graceful Shutdown
	go func() {
		if err := app.Listen(cfg.Addr()); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	wsHub.Stop()
	if err := app.Shutdown(); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func printBanner(app *fiber.App, cfg *config.Config) {
	log.Printf("%s listening on %s (LAN: http://%s:%s)", router.AppName, cfg.Addr(), outboundIP(), cfg.Port)
	if cfg.AuthEnabled() {
		log.Println("Write routes on /ventas require a bearer token")
	}
	for _, r := range app.GetRoutes(true) {
		if r.Method == fiber.MethodHead {
			continue
		}
		log.Printf("  %-6s %s", r.Method, r.Path)
	}
}

// outboundIP is the address other machines on the network can reach us at.
func outboundIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "127.0.0.1"
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}
