package repository

import (
	"context"

	"tortilleria-ventas/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CatalogRepository reads the reference entities a sale points to.
type CatalogRepository interface {
	FindBranches(ctx context.Context) ([]model.Branch, error)
	FindBranchByID(ctx context.Context, id uint) (*model.Branch, error)
	BranchExists(ctx context.Context, id uint) (bool, error)
	FindEmployees(ctx context.Context) ([]model.Employee, error)
	FindEmployeeByID(ctx context.Context, id uint) (*model.Employee, error)
	EmployeeExists(ctx context.Context, id uint) (bool, error)
	FindProducts(ctx context.Context, branchID *uint) ([]model.Product, error)
	FindProductByID(ctx context.Context, id uint) (*model.Product, error)
	MissingProducts(ctx context.Context, ids []uint) ([]uint, error)
	SeedDefaults(ctx context.Context) error
}

type catalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepo(db *gorm.DB) CatalogRepository {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) FindBranches(ctx context.Context) ([]model.Branch, error) {
	branches := []model.Branch{}
	err := r.db.WithContext(ctx).Order("id_sucursal ASC").Find(&branches).Error
	return branches, err
}

func (r *catalogRepo) FindBranchByID(ctx context.Context, id uint) (*model.Branch, error) {
	var branch model.Branch
	if err := r.db.WithContext(ctx).First(&branch, "id_sucursal = ?", id).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *catalogRepo) BranchExists(ctx context.Context, id uint) (bool, error) {
	return r.exists(ctx, &model.Branch{}, "id_sucursal = ?", id)
}

func (r *catalogRepo) FindEmployees(ctx context.Context) ([]model.Employee, error) {
	employees := []model.Employee{}
	err := r.db.WithContext(ctx).Order("id_empleado ASC").Find(&employees).Error
	return employees, err
}

func (r *catalogRepo) FindEmployeeByID(ctx context.Context, id uint) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.WithContext(ctx).First(&employee, "id_empleado = ?", id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *catalogRepo) EmployeeExists(ctx context.Context, id uint) (bool, error) {
	return r.exists(ctx, &model.Employee{}, "id_empleado = ?", id)
}

func (r *catalogRepo) FindProducts(ctx context.Context, branchID *uint) ([]model.Product, error) {
	products := []model.Product{}
	query := r.db.WithContext(ctx).Order("id_producto ASC")
	if branchID != nil {
		query = query.Where("sucursal = ?", *branchID)
	}
	err := query.Find(&products).Error
	return products, err
}

func (r *catalogRepo) FindProductByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, "id_producto = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// MissingProducts returns the ids in ids that have no productos row, in input order, without duplicates.
func (r *catalogRepo) MissingProducts(ctx context.Context, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []uint
	if err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id_producto IN ?", ids).
		Pluck("id_producto", &found).Error; err != nil {
		return nil, err
	}

	present := make(map[uint]bool, len(found))
	for _, id := range found {
		present[id] = true
	}

	var missing []uint
	for _, id := range ids {
		if !present[id] {
			missing = append(missing, id)
			present[id] = true
		}
	}
	return missing, nil
}

func (r *catalogRepo) exists(ctx context.Context, table interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(table).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SeedDefaults inserts a demo branch, cashier and product list when no branch exists yet.
func (r *catalogRepo) SeedDefaults(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Branch{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		phone := "555-0100"
		branch := model.Branch{Name: "Sucursal Centro", Address: "Av. Juárez 10", Phone: &phone}
		if err := tx.Create(&branch).Error; err != nil {
			return err
		}

		cashier := model.Employee{FirstName: "Rosa", LastName: "Hernández", Role: "Cajera", BranchID: &branch.ID}
		if err := tx.Create(&cashier).Error; err != nil {
			return err
		}

		products := []model.Product{
			{Name: "Tortilla de maíz 1kg", Price: decimal.RequireFromString("25.00")},
			{Name: "Tortilla de harina 1kg", Price: decimal.RequireFromString("40.00")},
			{Name: "Totopos 500g", Price: decimal.RequireFromString("32.50")},
			{Name: "Masa 1kg", Price: decimal.RequireFromString("20.00")},
		}
		for i := range products {
			products[i].BranchID = &branch.ID
		}
		return tx.Create(&products).Error
	})
}
