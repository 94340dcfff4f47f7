package handler

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger is satisfied by a closure over database.Ping.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	ping    Pinger
	started time.Time
}

func NewHealthHandler(ping Pinger) *HealthHandler {
	return &HealthHandler{ping: ping, started: time.Now()}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	uptime := time.Since(h.started).Round(time.Second).String()
	if err := h.ping(ctx); err != nil {
		log.Printf("health: database unreachable: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   statusError,
			"message":  "Base de datos no disponible",
			"database": "down",
			"uptime":   uptime,
		})
	}

	return c.JSON(fiber.Map{
		"status":   "ok",
		"database": "up",
		"uptime":   uptime,
	})
}
