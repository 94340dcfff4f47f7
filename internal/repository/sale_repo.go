package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tortilleria-ventas/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrCreateFailed wraps any store error raised while inserting a sale and its line items.
var ErrCreateFailed = errors.New("sale creation failed")

type SaleRepository interface {
	Create(ctx context.Context, sale *model.Sale) error
	FindAll(ctx context.Context, offset, limit int) ([]model.Sale, error)
	FindByID(ctx context.Context, id uint) (*model.Sale, error)
	FindByPeriod(ctx context.Context, start, end time.Time) ([]model.Sale, error)
	SumByPeriod(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	FindByBranch(ctx context.Context, branchID uint) ([]model.Sale, error)
	DailySummary(ctx context.Context, start, end time.Time) ([]DailySales, error)
	Update(ctx context.Context, id uint, changes SaleChanges) (*model.Sale, error)
	Delete(ctx context.Context, id uint) error
	FindLineItems(ctx context.Context, saleID uint) ([]model.SaleLineItem, error)
}

// SaleChanges is a partial update. Nil fields are left untouched; a non-nil LineItems
// replaces the whole set.
type SaleChanges struct {
	Total         *decimal.Decimal
	PaymentMethod *string
	BranchID      *uint
	EmployeeID    *uint
	Status        *model.SaleStatus
	LineItems     []model.SaleLineItem
}

func (c SaleChanges) columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if c.Total != nil {
		cols["total"] = *c.Total
	}
	if c.PaymentMethod != nil {
		cols["metodo_pago"] = *c.PaymentMethod
	}
	if c.BranchID != nil {
		cols["sucursal"] = *c.BranchID
	}
	if c.EmployeeID != nil {
		cols["empleado_venta"] = *c.EmployeeID
	}
	if c.Status != nil {
		cols["estado"] = *c.Status
	}
	return cols
}

// DailySales is one row of the per-day chart.
type DailySales struct {
	Date  string          `json:"fecha"`
	Count int64           `json:"ventas"`
	Total decimal.Decimal `json:"total"`
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(ctx context.Context, sale *model.Sale) error {
	items := sale.LineItems

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Line items are inserted explicitly below, once the sale id exists
		if err := tx.Omit(clause.Associations).Create(sale).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].ID = 0
			items[i].SaleID = sale.ID
		}
		if len(items) > 0 {
			if err := tx.Omit(clause.Associations).Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		sale.ID = 0
		return fmt.Errorf("%w: %w", ErrCreateFailed, err)
	}

	sale.LineItems = items
	return nil
}

func (r *saleRepo) FindAll(ctx context.Context, offset, limit int) ([]model.Sale, error) {
	sales := []model.Sale{}
	err := r.withItems(ctx).
		Order("id_venta ASC").
		Offset(offset).
		Limit(limit).
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(ctx context.Context, id uint) (*model.Sale, error) {
	var sale model.Sale
	if err := r.withItems(ctx).First(&sale, "id_venta = ?", id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

// FindByPeriod is inclusive on both ends.
func (r *saleRepo) FindByPeriod(ctx context.Context, start, end time.Time) ([]model.Sale, error) {
	sales := []model.Sale{}
	err := r.withItems(ctx).
		Where("fecha_venta BETWEEN ? AND ?", start.UTC(), end.UTC()).
		Order("fecha_venta ASC, id_venta ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) SumByPeriod(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("COALESCE(SUM(total), 0)").
		Where("fecha_venta BETWEEN ? AND ?", start.UTC(), end.UTC()).
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *saleRepo) FindByBranch(ctx context.Context, branchID uint) ([]model.Sale, error) {
	sales := []model.Sale{}
	err := r.withItems(ctx).
		Where("sucursal = ?", branchID).
		Order("id_venta ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) DailySummary(ctx context.Context, start, end time.Time) ([]DailySales, error) {
	results := []DailySales{}

	rows, err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select(`
			DATE(fecha_venta) as fecha,
			COUNT(*) as ventas,
			COALESCE(SUM(total), 0) as total
		`).
		Where("fecha_venta BETWEEN ? AND ?", start.UTC(), end.UTC()).
		Group("DATE(fecha_venta)").
		Order("fecha ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data DailySales
		if err := rows.Scan(&data.Date, &data.Count, &data.Total); err != nil {
			return nil, err
		}
		// postgres hands DATE back as a full timestamp string
		if len(data.Date) > len("2006-01-02") {
			data.Date = data.Date[:len("2006-01-02")]
		}
		results = append(results, data)
	}

	return results, rows.Err()
}

func (r *saleRepo) Update(ctx context.Context, id uint, changes SaleChanges) (*model.Sale, error) {
	var updated model.Sale

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Sale
		if err := lockForUpdate(tx).First(&existing, "id_venta = ?", id).Error; err != nil {
			return err
		}

		cols := changes.columns()
		cols["updated_at"] = tx.NowFunc()
		if err := tx.Model(&model.Sale{}).Where("id_venta = ?", id).Updates(cols).Error; err != nil {
			return err
		}

		if changes.LineItems != nil {
			if err := tx.Where("venta = ?", id).Delete(&model.SaleLineItem{}).Error; err != nil {
				return err
			}
			items := changes.LineItems
			for i := range items {
				items[i].ID = 0
				items[i].SaleID = id
			}
			if len(items) > 0 {
				if err := tx.Omit(clause.Associations).Create(&items).Error; err != nil {
					return err
				}
			}
		}

		return tx.Preload("LineItems", orderItems).First(&updated, "id_venta = ?", id).Error
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Delete removes the sale; the store cascades to detalles_venta.
func (r *saleRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Sale{}, "id_venta = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *saleRepo) FindLineItems(ctx context.Context, saleID uint) ([]model.SaleLineItem, error) {
	items := []model.SaleLineItem{}
	err := r.db.WithContext(ctx).
		Where("venta = ?", saleID).
		Order("id_detalle ASC").
		Find(&items).Error
	return items, err
}

func (r *saleRepo) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("LineItems", orderItems)
}

func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("id_detalle ASC")
}

// lockForUpdate takes a row lock where the dialect supports it.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
