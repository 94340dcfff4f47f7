package service

import (
	"context"
	"errors"

	"tortilleria-ventas/internal/model"
	"tortilleria-ventas/internal/repository"

	"gorm.io/gorm"
)

// CatalogService exposes branches, employees and products read-only.
type CatalogService interface {
	GetBranches(ctx context.Context) ([]model.Branch, error)
	GetBranch(ctx context.Context, id uint) (*model.Branch, error)
	GetEmployees(ctx context.Context) ([]model.Employee, error)
	GetEmployee(ctx context.Context, id uint) (*model.Employee, error)
	GetProducts(ctx context.Context, branchID *uint) ([]model.Product, error)
	GetProduct(ctx context.Context, id uint) (*model.Product, error)
}

type catalogService struct {
	repo repository.CatalogRepository
}

func NewCatalogService(repo repository.CatalogRepository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) GetBranches(ctx context.Context) ([]model.Branch, error) {
	return s.repo.FindBranches(ctx)
}

func (s *catalogService) GetBranch(ctx context.Context, id uint) (*model.Branch, error) {
	branch, err := s.repo.FindBranchByID(ctx, id)
	return branch, notFoundAs(err, ErrBranchNotFound)
}

func (s *catalogService) GetEmployees(ctx context.Context) ([]model.Employee, error) {
	return s.repo.FindEmployees(ctx)
}

func (s *catalogService) GetEmployee(ctx context.Context, id uint) (*model.Employee, error) {
	employee, err := s.repo.FindEmployeeByID(ctx, id)
	return employee, notFoundAs(err, ErrEmployeeNotFound)
}

func (s *catalogService) GetProducts(ctx context.Context, branchID *uint) ([]model.Product, error) {
	return s.repo.FindProducts(ctx, branchID)
}

func (s *catalogService) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	return product, notFoundAs(err, ErrProductNotFound)
}

func notFoundAs(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}
