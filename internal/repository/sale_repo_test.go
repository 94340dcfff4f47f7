package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"tortilleria-ventas/internal/model"
	"tortilleria-ventas/internal/testdb"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newSale(f testdb.Fixture, at time.Time, total string, items ...model.SaleLineItem) *model.Sale {
	return &model.Sale{
		SaleDate:      at,
		Total:         money(total),
		PaymentMethod: "efectivo",
		BranchID:      &f.Branch.ID,
		EmployeeID:    &f.Employee.ID,
		Status:        model.SaleCompleted,
		LineItems:     items,
	}
}

func lineItem(productID uint, qty int, price, subtotal string) model.SaleLineItem {
	return model.SaleLineItem{ProductID: productID, Quantity: qty, UnitPrice: money(price), Subtotal: money(subtotal)}
}

func countRows(t *testing.T, db *gorm.DB, table interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(table).Count(&n).Error)
	return n
}

func TestSaleRepoCreatePersistsSaleAndItems(t *testing.T) {
	db := testdb.Open(t)
	f := testdb.Seed(t, db)
	repo := NewSaleRepo(db)
	ctx := context.Background()

	sale := newSale(f, time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC), "182.50",
		lineItem(f.Tortilla.ID, 2, "75.00", "150.00"),
		lineItem(f.Totopos.ID, 1, "32.50", "32.50"),
	)
	require.NoError(t, repo.Create(ctx, sale))

	require.NotZero(t, sale.ID)
	require.Len(t, sale.LineItems, 2)
	for _, item := range sale.LineItems {
		assert.NotZero(t, item.ID)
		assert.Equal(t, sale.ID, item.SaleID)
		assert.False(t, item.CreatedAt.IsZero())
	}
	assert.Equal(t, int64(1), countRows(t, db, &model.Sale{}))
	assert.Equal(t, int64(2), countRows(t, db, &model.SaleLineItem{}))

	got, err := repo.FindByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.True(t, got.Total.Equal(money("182.50")))
	assert.Equal(t, model.SaleCompleted, got.Status)
	require.Len(t, got.LineItems, 2)
	assert.Equal(t, f.Tortilla.ID, got.LineItems[0].ProductID)
	assert.True(t, got.LineItems[0].Subtotal.Equal(money("150")))
}

func TestSaleRepoCreateRollsBackOnItemFailure(t *testing.T) {
	db := testdb.Open(t)
	f := testdb.Seed(t, db)
	repo := NewSaleRepo(db)

	sale := newSale(f, time.Now().UTC(), "100.00",
		lineItem(f.Tortilla.ID, 1, "75.00", "75.00"),
		lineItem(9999, 1, "25.00", "25.00"), // no such product
	)
	err := repo.Create(context.Background(), sale)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCreateFailed))
	assert.Zero(t, sale.ID)
	assert.Equal(t, int64(0), countRows(t, db, &model.Sale{}))
	assert.Equal(t, int64(0), countRows(t, db, &model.SaleLineItem{}))
}

func TestSaleRepoFindAllPaginates(t *testing.T) {
	db := testdb.Open(t)
	f := testdb.Seed(t, db)
	repo := NewSaleRepo(db)
	ctx := context.Background()

	var ids []uint
	for i := 0; i < 5; i++ {
		s := newSale(f, time.Now().UTC(), "25.00", lineItem(f.Tortilla.ID, 1, "25.00", "25.00"))
		require.NoError(t, repo.Create(ctx, s))
		ids = append(ids, s.ID)
	}

	page, err := repo.FindAll(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[1], page[0].ID)
	assert.Equal(t, ids[2], page[1].ID)
	assert.Len(t, page[0].LineItems, 1)

	empty, err := repo.FindAll(ctx, 10, 100)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestSaleRepoFindByIDNotFound(t *testing.T) {
	db := testdb.Open(t)
	repo := NewSaleRepo(db)

	_, err := repo.FindByID(context.Background(), 42)

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSaleRepoPeriodQueries(t *testing.T) {
	db := testdb.Open(t)
	f := testdb.Seed(t, db)
	repo := NewSaleRepo(db)
	ctx := context.Background()

	day := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	endOfDay := day.Add(24*time.Hour - time.Microsecond)

	inside := []*model.Sale{
		newSale(f, day, "10.00", lineItem(f.Tortilla.ID, 1, "10.00", "10.00")),
		newSale(f, day.Add(23*time.Hour+59*time.Minute+59*time.Second), "20.50", lineItem(f.Tortilla.ID, 1, "20.50", "20.50")),
	}
	outside := []*model.Sale{
		newSale(f, day.Add(-time.Second), "1000.00", lineItem(f.Tortilla.ID, 1, "1000.00", "1000.00")),
		newSale(f, day.Add(24*time.Hour), "2000.00", lineItem(f.Tortilla.ID, 1, "2000.00", "2000.00")),
	}
	for _, s := range append(inside, outside...) {
		require.NoError(t, repo.Create(ctx, s))
	}

	sales, err := repo.FindByPeriod(ctx, day, endOfDay)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, inside[0].ID, sales[0].ID)
	assert.Equal(t, inside[1].ID, sales[1].ID)

	total, err := repo.SumByPeriod(ctx, day, endOfDay)
	require.NoError(t, err)
	assert.True(t, total.Equal(money("30.50")), "got %s", total)

	none, err := repo.SumByPeriod(ctx, day.AddDate(1, 0, 0), day.AddDate(1, 0, 1))
	require.NoError(t, err)
	assert.True(t, none.IsZero())

	noSales, err := repo.FindByPeriod(ctx, day.AddDate(1, 0, 0), day.AddDate(1, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, noSales)
}

func TestSaleRepoDailySummary(t *testing.T) {
	db := testdb.Open(t)
	f := testdb.Seed(t, db)
	repo := NewSaleRepo(db)
	ctx := context.Background()

	day1 := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	for _, s := range []*model.Sale{
		newSale(f, day1, "10.00", lineItem(f.Tortilla.ID, 1, "10.00", "10.00")),
		newSale(f, day1.Add(time.Hour), "15.00", lineItem(f.Tortilla.ID, 1, "15.00", "15.00")),
		newSale(f, day2, "40.00", lineItem(f.Tortilla.ID, 1, "40.00", "40.00")),
	} {
		require.NoError(t, repo.Create(ctx, s))
	}

	rows, err := repo.DailySummary(ctx, day1.Truncate(24*time.Hour), day2.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2026-06-01", rows[0].Date)
	assert.Equal(t, int64(2), rows[0].Count)
	assert.True(t, rows[0].Total.Equal(money("25")))
	assert.Equal(t, "2026-06-02", rows[1].Date)
	assert.Equal(t, int64(1), rows[1].Count)
}

func TestSaleRepoFindByBranch(t *testing.T) {
	db := testdb.Open(t)
	f := testdb.Seed(t, db)
	repo := NewSaleRepo(db)
	ctx := context.Background()

	centro := newSale(f, time.Now().UTC(), "25.00", lineItem(f.Tortilla.ID, 1, "25.00", "25.00"))
	norte := newSale(f, time.Now().UTC(), "32.50", lineItem(f.Totopos.ID, 1, "32.50", "32.50"))
	norte.BranchID = &f.OtherBranch.ID
	require.NoError(t, repo.Create(ctx, centro))
	require.NoError(t, repo.Create(ctx, norte))

	sales, err := repo.FindByBranch(ctx, f.OtherBranch.ID)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, norte.ID, sales[0].ID)
}

func TestSaleRepoUpdatePartialFields(t *testing.T) {
	db := testdb.Open(t)
	f := testdb.Seed(t, db)
	repo := NewSaleRepo(db)
	ctx := context.Background()

	sale := newSale(f, time.Now().UTC(), "75.00", lineItem(f.Tortilla.ID, 1, "75.00", "75.00"))
	require.NoError(t, repo.Create(ctx, sale))

	status := model.SaleRefunded
	updated, err := repo.Update(ctx, sale.ID, SaleChanges{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, model.SaleRefunded, updated.Status)
	assert.Equal(t, "efectivo", updated.PaymentMethod)
	assert.True(t, updated.Total.Equal(money("75")))
	require.Len(t, updated.LineItems, 1)
	assert.Equal(t, sale.LineItems[0].ID, updated.LineItems[0].ID)
}

func TestSaleRepoUpdateReplacesLineItems(t *testing.T) {
	db := testdb.Open(t)
	f := testdb.Seed(t, db)
	repo := NewSaleRepo(db)
	ctx := context.Background()

	sale := newSale(f, time.Now().UTC(), "75.00", lineItem(f.Tortilla.ID, 1, "75.00", "75.00"))
	require.NoError(t, repo.Create(ctx, sale))

	total := money("97.50")
	updated, err := repo.Update(ctx, sale.ID, SaleChanges{
		Total: &total,
		LineItems: []model.SaleLineItem{
			lineItem(f.Totopos.ID, 3, "32.50", "97.50"),
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.LineItems, 1)
	assert.Equal(t, f.Totopos.ID, updated.LineItems[0].ProductID)
	assert.Equal(t, 3, updated.LineItems[0].Quantity)
	assert.True(t, updated.Total.Equal(total))
	assert.Equal(t, int64(1), countRows(t, db, &model.SaleLineItem{}))
}

func TestSaleRepoUpdateRollsBackReplacement(t *testing.T) {
	db := testdb.Open(t)
	f := testdb.Seed(t, db)
	repo := NewSaleRepo(db)
	ctx := context.Background()

	sale := newSale(f, time.Now().UTC(), "75.00", lineItem(f.Tortilla.ID, 1, "75.00", "75.00"))
	require.NoError(t, repo.Create(ctx, sale))

	_, err := repo.Update(ctx, sale.ID, SaleChanges{
		LineItems: []model.SaleLineItem{lineItem(9999, 1, "1.00", "1.00")},
	})
	require.Error(t, err)

	items, err := repo.FindLineItems(ctx, sale.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, sale.LineItems[0].ID, items[0].ID)
}

func TestSaleRepoUpdateNotFound(t *testing.T) {
	db := testdb.Open(t)
	repo := NewSaleRepo(db)

	_, err := repo.Update(context.Background(), 77, SaleChanges{})

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSaleRepoDeleteCascadesLineItems(t *testing.T) {
	db := testdb.Open(t)
	f := testdb.Seed(t, db)
	repo := NewSaleRepo(db)
	ctx := context.Background()

	sale := newSale(f, time.Now().UTC(), "107.50",
		lineItem(f.Tortilla.ID, 1, "75.00", "75.00"),
		lineItem(f.Totopos.ID, 1, "32.50", "32.50"),
	)
	require.NoError(t, repo.Create(ctx, sale))

	require.NoError(t, repo.Delete(ctx, sale.ID))

	items, err := repo.FindLineItems(ctx, sale.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, int64(0), countRows(t, db, &model.SaleLineItem{}))

	assert.ErrorIs(t, repo.Delete(ctx, sale.ID), gorm.ErrRecordNotFound)
}

func TestProductReferencedByLineItemCannotBeDeleted(t *testing.T) {
	db := testdb.Open(t)
	f := testdb.Seed(t, db)
	repo := NewSaleRepo(db)

	sale := newSale(f, time.Now().UTC(), "75.00", lineItem(f.Tortilla.ID, 1, "75.00", "75.00"))
	require.NoError(t, repo.Create(context.Background(), sale))

	err := db.Delete(&model.Product{}, "id_producto = ?", f.Tortilla.ID).Error

	assert.Error(t, err)
	assert.Equal(t, int64(1), countRows(t, db, &model.SaleLineItem{}))
}
