package handler

import (
	"errors"
	"log"
	"strconv"

	"tortilleria-ventas/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	statusSuccess = "success"
	statusError   = "error"

	msgInternal = "Error interno del servidor"
)

func success(c *fiber.Ctx, code int, data interface{}) error {
	return c.Status(code).JSON(fiber.Map{"status": statusSuccess, "data": data})
}

func successList[T any](c *fiber.Ctx, items []T) error {
	if items == nil {
		items = []T{}
	}
	return c.JSON(fiber.Map{"status": statusSuccess, "count": len(items), "data": items})
}

func fail(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{"status": statusError, "message": message})
}

// respondError maps service outcomes to status codes. Anything unclassified is logged with
// its cause and answered with a generic 500.
func respondError(c *fiber.Ctx, op string, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		log.Printf("%s rejected [req=%s]: %v", op, requestID(c), err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  statusError,
			"message": verr.Error(),
			"errors":  verr.Fields,
		})
	case errors.Is(err, service.ErrSaleNotFound):
		log.Printf("%s: sale not found [req=%s]", op, requestID(c))
		return fail(c, fiber.StatusNotFound, "Venta no encontrada")
	case errors.Is(err, service.ErrBranchNotFound):
		log.Printf("%s: branch not found [req=%s]", op, requestID(c))
		return fail(c, fiber.StatusNotFound, "Sucursal no encontrada")
	case errors.Is(err, service.ErrEmployeeNotFound):
		return fail(c, fiber.StatusNotFound, "Empleado no encontrado")
	case errors.Is(err, service.ErrProductNotFound):
		return fail(c, fiber.StatusNotFound, "Producto no encontrado")
	default:
		log.Printf("%s failed [req=%s]: %v", op, requestID(c), err)
		return fail(c, fiber.StatusInternalServerError, msgInternal)
	}
}

// ErrorHandler is the fiber fallback for errors returned by handlers or recovered panics.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fail(c, fe.Code, fe.Message)
	}
	log.Printf("unhandled error %s %s [req=%s]: %v", c.Method(), c.OriginalURL(), requestID(c), err)
	return fail(c, fiber.StatusInternalServerError, msgInternal)
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return "-"
}

// parseID reads a positive integer path parameter.
func parseID(c *fiber.Ctx, name string) (uint, error) {
	return parsePositive(c.Params(name))
}

func parseUintQuery(c *fiber.Ctx, key string) (uint, error) {
	return parsePositive(c.Query(key))
}

func parsePositive(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
