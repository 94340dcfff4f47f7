package handler

import (
	"log"
	"strconv"

	"tortilleria-ventas/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SaleHandler struct {
	service service.SaleService
}

func NewSaleHandler(s service.SaleService) *SaleHandler {
	return &SaleHandler{service: s}
}

// CreateSale handles POST /ventas
func (h *SaleHandler) CreateSale(c *fiber.Ctx) error {
	var req service.CreateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("create sale: invalid body [req=%s]: %v", requestID(c), err)
		return fail(c, fiber.StatusBadRequest, "JSON inválido")
	}

	// A cashier authenticated by token is the default seller
	if req.EmployeeID == nil {
		if id, ok := c.Locals("employee_id").(uint); ok {
			req.EmployeeID = &id
		}
	}

	sale, err := h.service.CreateSale(c.UserContext(), &req)
	if err != nil {
		return respondError(c, "create sale", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  statusSuccess,
		"message": "Venta creada",
		"data":    sale,
	})
}

// ListSales handles GET /ventas?skip=0&limit=100
func (h *SaleHandler) ListSales(c *fiber.Ctx) error {
	offset, err := queryInt(c, 0, "skip", "offset")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "skip debe ser un número entero")
	}
	limit, err := queryInt(c, service.DefaultPageSize, "limit")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "limit debe ser un número entero")
	}

	sales, err := h.service.ListSales(c.UserContext(), offset, limit)
	if err != nil {
		return respondError(c, "list sales", err)
	}
	return successList(c, sales)
}

// GetSale handles GET /ventas/:id
func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID de venta inválido")
	}

	sale, err := h.service.GetSale(c.UserContext(), id)
	if err != nil {
		return respondError(c, "get sale "+strconv.FormatUint(uint64(id), 10), err)
	}
	return success(c, fiber.StatusOK, sale)
}

// UpdateSale handles PUT /ventas/:id
func (h *SaleHandler) UpdateSale(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID de venta inválido")
	}

	var req service.UpdateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("update sale %d: invalid body [req=%s]: %v", id, requestID(c), err)
		return fail(c, fiber.StatusBadRequest, "JSON inválido")
	}

	sale, err := h.service.UpdateSale(c.UserContext(), id, &req)
	if err != nil {
		return respondError(c, "update sale "+strconv.FormatUint(uint64(id), 10), err)
	}

	return c.JSON(fiber.Map{
		"status":  statusSuccess,
		"message": "Venta actualizada",
		"data":    sale,
	})
}

// DeleteSale handles DELETE /ventas/:id
func (h *SaleHandler) DeleteSale(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID de venta inválido")
	}

	if err := h.service.DeleteSale(c.UserContext(), id); err != nil {
		return respondError(c, "delete sale "+strconv.FormatUint(uint64(id), 10), err)
	}

	return c.JSON(fiber.Map{
		"status":  statusSuccess,
		"message": "Venta eliminada",
		"data":    fiber.Map{"id_venta": id},
	})
}

// GetSalesByPeriod handles GET /ventas/periodo and /ventas/por-fecha
func (h *SaleHandler) GetSalesByPeriod(c *fiber.Ctx) error {
	start, end, err := parsePeriod(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	sales, err := h.service.GetSalesByPeriod(c.UserContext(), start, end)
	if err != nil {
		return respondError(c, "sales by period", err)
	}
	return successList(c, sales)
}

// GetSalesByBranch handles GET /ventas/por-sucursal/:id
func (h *SaleHandler) GetSalesByBranch(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID de sucursal inválido")
	}

	sales, err := h.service.GetSalesByBranch(c.UserContext(), id)
	if err != nil {
		return respondError(c, "sales by branch "+strconv.FormatUint(uint64(id), 10), err)
	}
	return successList(c, sales)
}

// GetLineItems handles GET /detalles-venta/:venta_id
func (h *SaleHandler) GetLineItems(c *fiber.Ctx) error {
	id, err := parseID(c, "venta_id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID de venta inválido")
	}

	items, err := h.service.GetLineItems(c.UserContext(), id)
	if err != nil {
		return respondError(c, "line items of sale "+strconv.FormatUint(uint64(id), 10), err)
	}
	return successList(c, items)
}

func queryInt(c *fiber.Ctx, def int, keys ...string) (int, error) {
	raw := firstQuery(c, keys...)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
