package service

import (
	"strings"
	"time"

	"tortilleria-ventas/internal/model"
	"tortilleria-ventas/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	DefaultPageSize = 100
	MaxPageSize     = 1000
)

// LineItemRequest fields are pointers so a missing field is told apart from a zero value.
type LineItemRequest struct {
	ProductID *uint            `json:"producto" validate:"required,gt=0"`
	Quantity  *int             `json:"cantidad" validate:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"precio_unitario" validate:"required,money"`
	Subtotal  *decimal.Decimal `json:"subtotal" validate:"required,money"`
}

type CreateSaleRequest struct {
	Total         *decimal.Decimal  `json:"total" validate:"required,money"`
	PaymentMethod *string           `json:"metodo_pago" validate:"required,min=1,max=50"`
	BranchID      *uint             `json:"sucursal" validate:"omitnil,gt=0"`
	EmployeeID    *uint             `json:"empleado_venta" validate:"omitnil,gt=0"`
	Status        *string           `json:"estado" validate:"required,oneof=Completada Cancelada Reembolsada"`
	SaleDate      *time.Time        `json:"fecha_venta"` // defaults to now
	LineItems     []LineItemRequest `json:"detalles" validate:"required,min=1,dive"`

	// Older clients send the list as "detalles_venta".
	LegacyLineItems []LineItemRequest `json:"detalles_venta" validate:"-"`
}

// UpdateSaleRequest: absent fields are left untouched; a present "detalles" replaces every line item.
type UpdateSaleRequest struct {
	Total         *decimal.Decimal   `json:"total" validate:"omitnil,money"`
	PaymentMethod *string            `json:"metodo_pago" validate:"omitnil,min=1,max=50"`
	BranchID      *uint              `json:"sucursal" validate:"omitnil,gt=0"`
	EmployeeID    *uint              `json:"empleado_venta" validate:"omitnil,gt=0"`
	Status        *string            `json:"estado" validate:"omitnil,oneof=Completada Cancelada Reembolsada"`
	LineItems     *[]LineItemRequest `json:"detalles" validate:"omitnil,min=1,dive"`

	LegacyLineItems *[]LineItemRequest `json:"detalles_venta" validate:"-"`
}

func (r *CreateSaleRequest) normalize() {
	if r.LineItems == nil && r.LegacyLineItems != nil {
		r.LineItems = r.LegacyLineItems
	}
	r.LegacyLineItems = nil
	if r.PaymentMethod != nil {
		trimmed := strings.TrimSpace(*r.PaymentMethod)
		r.PaymentMethod = &trimmed
	}
}

func (r *UpdateSaleRequest) normalize() {
	if r.LineItems == nil && r.LegacyLineItems != nil {
		r.LineItems = r.LegacyLineItems
	}
	r.LegacyLineItems = nil
	if r.PaymentMethod != nil {
		trimmed := strings.TrimSpace(*r.PaymentMethod)
		r.PaymentMethod = &trimmed
	}
}

// toModel assumes the request passed validation.
func (r *CreateSaleRequest) toModel(now time.Time) *model.Sale {
	saleDate := now
	if r.SaleDate != nil {
		saleDate = r.SaleDate.UTC()
	}

	return &model.Sale{
		SaleDate:      saleDate,
		Total:         *r.Total,
		PaymentMethod: *r.PaymentMethod,
		BranchID:      r.BranchID,
		EmployeeID:    r.EmployeeID,
		Status:        model.SaleStatus(*r.Status),
		LineItems:     lineItemsToModel(r.LineItems),
	}
}

func (r *UpdateSaleRequest) toChanges() repository.SaleChanges {
	changes := repository.SaleChanges{
		Total:         r.Total,
		PaymentMethod: r.PaymentMethod,
		BranchID:      r.BranchID,
		EmployeeID:    r.EmployeeID,
	}
	if r.Status != nil {
		status := model.SaleStatus(*r.Status)
		changes.Status = &status
	}
	if r.LineItems != nil {
		changes.LineItems = lineItemsToModel(*r.LineItems)
	}
	return changes
}

func lineItemsToModel(reqs []LineItemRequest) []model.SaleLineItem {
	items := make([]model.SaleLineItem, 0, len(reqs))
	for _, req := range reqs {
		items = append(items, model.SaleLineItem{
			ProductID: *req.ProductID,
			Quantity:  *req.Quantity,
			UnitPrice: *req.UnitPrice,
			Subtotal:  *req.Subtotal,
		})
	}
	return items
}

func productIDs(reqs []LineItemRequest) []uint {
	ids := make([]uint, 0, len(reqs))
	for _, req := range reqs {
		ids = append(ids, *req.ProductID)
	}
	return ids
}
