package handler

import (
	"tortilleria-ventas/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves the read-only reference data sales point to.
type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// GET /sucursales
func (h *CatalogHandler) GetBranches(c *fiber.Ctx) error {
	branches, err := h.service.GetBranches(c.UserContext())
	if err != nil {
		return respondError(c, "list branches", err)
	}
	return successList(c, branches)
}

// GET /sucursales/:id
func (h *CatalogHandler) GetBranch(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID de sucursal inválido")
	}
	branch, err := h.service.GetBranch(c.UserContext(), id)
	if err != nil {
		return respondError(c, "get branch", err)
	}
	return success(c, fiber.StatusOK, branch)
}

// GET /empleados
func (h *CatalogHandler) GetEmployees(c *fiber.Ctx) error {
	employees, err := h.service.GetEmployees(c.UserContext())
	if err != nil {
		return respondError(c, "list employees", err)
	}
	return successList(c, employees)
}

// GET /empleados/:id
func (h *CatalogHandler) GetEmployee(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID de empleado inválido")
	}
	employee, err := h.service.GetEmployee(c.UserContext(), id)
	if err != nil {
		return respondError(c, "get employee", err)
	}
	return success(c, fiber.StatusOK, employee)
}

// GET /productos?sucursal=1
func (h *CatalogHandler) GetProducts(c *fiber.Ctx) error {
	var branchID *uint
	if c.Query("sucursal") != "" {
		id, err := parseUintQuery(c, "sucursal")
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "sucursal debe ser un ID válido")
		}
		branchID = &id
	}

	products, err := h.service.GetProducts(c.UserContext(), branchID)
	if err != nil {
		return respondError(c, "list products", err)
	}
	return successList(c, products)
}

// GET /productos/:id
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID de producto inválido")
	}
	product, err := h.service.GetProduct(c.UserContext(), id)
	if err != nil {
		return respondError(c, "get product", err)
	}
	return success(c, fiber.StatusOK, product)
}
