package service

import (
	"context"
	"log"
	"time"

	"tortilleria-ventas/internal/model"
	"tortilleria-ventas/internal/repository"
	"tortilleria-ventas/internal/ws"
	"tortilleria-ventas/pkg/validator"
)

type SaleService interface {
	CreateSale(ctx context.Context, req *CreateSaleRequest) (*model.Sale, error)
	ListSales(ctx context.Context, offset, limit int) ([]model.Sale, error)
	GetSale(ctx context.Context, id uint) (*model.Sale, error)
	GetSalesByPeriod(ctx context.Context, start, end time.Time) ([]model.Sale, error)
	GetSalesByBranch(ctx context.Context, branchID uint) ([]model.Sale, error)
	UpdateSale(ctx context.Context, id uint, req *UpdateSaleRequest) (*model.Sale, error)
	DeleteSale(ctx context.Context, id uint) error
	GetLineItems(ctx context.Context, saleID uint) ([]model.SaleLineItem, error)
}

type saleService struct {
	saleRepo    repository.SaleRepository
	catalogRepo repository.CatalogRepository
	wsHub       *ws.Hub
	now         func() time.Time
}

// NewSaleService wires the sale use cases. hub may be nil when no dashboard feed is needed.
func NewSaleService(saleRepo repository.SaleRepository, catalogRepo repository.CatalogRepository, hub *ws.Hub) SaleService {
	return &saleService{
		saleRepo:    saleRepo,
		catalogRepo: catalogRepo,
		wsHub:       hub,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *saleService) CreateSale(ctx context.Context, req *CreateSaleRequest) (*model.Sale, error) {
	// 1. Validate the sale and every line item before touching the store
	req.normalize()
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	// 2. Referenced rows must exist
	if err := s.checkReferences(ctx, req.BranchID, req.EmployeeID, productIDs(req.LineItems)); err != nil {
		return nil, err
	}

	sale := req.toModel(s.now())
	warnTotalMismatch("create", sale)

	// 3. Sale + line items in one transaction
	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}

	log.Printf("Sale created. id_venta=%d items=%d total=%s", sale.ID, len(sale.LineItems), sale.Total)
	s.wsHub.Publish(ws.ActionSaleCreated, sale)
	return sale, nil
}

func (s *saleService) ListSales(ctx context.Context, offset, limit int) ([]model.Sale, error) {
	if offset < 0 {
		return nil, invalidf("skip", "skip must be zero or greater")
	}
	if limit < 1 || limit > MaxPageSize {
		return nil, invalidf("limit", "limit must be between 1 and %d", MaxPageSize)
	}
	return s.saleRepo.FindAll(ctx, offset, limit)
}

func (s *saleService) GetSale(ctx context.Context, id uint) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, saleLookupError(err)
	}
	return sale, nil
}

// GetSalesByPeriod expects end already normalized by the caller when it came in as a bare date.
func (s *saleService) GetSalesByPeriod(ctx context.Context, start, end time.Time) ([]model.Sale, error) {
	if end.Before(start) {
		return nil, invalidf("fecha_fin", "fecha_fin must not be before fecha_inicio")
	}
	return s.saleRepo.FindByPeriod(ctx, start, end)
}

func (s *saleService) GetSalesByBranch(ctx context.Context, branchID uint) ([]model.Sale, error) {
	ok, err := s.catalogRepo.BranchExists(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrBranchNotFound
	}
	return s.saleRepo.FindByBranch(ctx, branchID)
}

func (s *saleService) UpdateSale(ctx context.Context, id uint, req *UpdateSaleRequest) (*model.Sale, error) {
	// 1. Validate everything, replacement line items included, before anything is deleted
	req.normalize()
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	// 2. The sale must exist
	if _, err := s.saleRepo.FindByID(ctx, id); err != nil {
		return nil, saleLookupError(err)
	}

	// 3. Referenced rows must exist
	var ids []uint
	if req.LineItems != nil {
		ids = productIDs(*req.LineItems)
	}
	if err := s.checkReferences(ctx, req.BranchID, req.EmployeeID, ids); err != nil {
		return nil, err
	}

	// 4. Field updates and line item replacement in one transaction
	updated, err := s.saleRepo.Update(ctx, id, req.toChanges())
	if err != nil {
		return nil, saleLookupError(err)
	}
	warnTotalMismatch("update", updated)

	log.Printf("Sale updated. id_venta=%d items_replaced=%t", id, req.LineItems != nil)
	s.wsHub.Publish(ws.ActionSaleUpdated, updated)
	return updated, nil
}

func (s *saleService) DeleteSale(ctx context.Context, id uint) error {
	if err := s.saleRepo.Delete(ctx, id); err != nil {
		return saleLookupError(err)
	}

	log.Printf("Sale deleted. id_venta=%d", id)
	s.wsHub.Publish(ws.ActionSaleDeleted, map[string]uint{"id_venta": id})
	return nil
}

func (s *saleService) GetLineItems(ctx context.Context, saleID uint) ([]model.SaleLineItem, error) {
	return s.saleRepo.FindLineItems(ctx, saleID)
}

func (s *saleService) checkReferences(ctx context.Context, branchID, employeeID *uint, products []uint) error {
	if branchID != nil {
		ok, err := s.catalogRepo.BranchExists(ctx, *branchID)
		if err != nil {
			return err
		}
		if !ok {
			return invalidf("sucursal", "sucursal %d does not exist", *branchID)
		}
	}

	if employeeID != nil {
		ok, err := s.catalogRepo.EmployeeExists(ctx, *employeeID)
		if err != nil {
			return err
		}
		if !ok {
			return invalidf("empleado_venta", "empleado_venta %d does not exist", *employeeID)
		}
	}

	missing, err := s.catalogRepo.MissingProducts(ctx, products)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return invalidf("detalles.producto", "producto %v does not exist", missing)
	}
	return nil
}

// saleLookupError turns a missing row into ErrSaleNotFound and leaves other errors intact.
func saleLookupError(err error) error {
	return notFoundAs(err, ErrSaleNotFound)
}

// warnTotalMismatch only logs: total is caller-supplied and is not reconciled with the line items.
func warnTotalMismatch(op string, sale *model.Sale) {
	if sum := sale.LineItemsTotal(); !sum.Equal(sale.Total) {
		log.Printf("[WARN] %s sale id_venta=%d: total %s differs from line item subtotals %s", op, sale.ID, sale.Total, sum)
	}
}
