package handler

import (
	"tortilleria-ventas/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetTotalByPeriod handles GET /ventas/resumen/total?fecha_inicio=...&fecha_fin=...
func (h *ReportHandler) GetTotalByPeriod(c *fiber.Ctx) error {
	start, end, err := parsePeriod(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	total, err := h.service.GetTotalByPeriod(c.UserContext(), start, end)
	if err != nil {
		return respondError(c, "total by period", err)
	}

	return c.JSON(fiber.Map{
		"status":       statusSuccess,
		"total_ventas": total,
		"fecha_inicio": start,
		"fecha_fin":    end,
	})
}

// GetDailySales handles GET /ventas/resumen/diario for the dashboard chart
func (h *ReportHandler) GetDailySales(c *fiber.Ctx) error {
	start, end, err := parsePeriod(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	rows, err := h.service.GetDailySales(c.UserContext(), start, end)
	if err != nil {
		return respondError(c, "daily sales", err)
	}
	return successList(c, rows)
}
