package service

import (
	"context"
	"time"

	"tortilleria-ventas/internal/repository"

	"github.com/shopspring/decimal"
)

// ReportService aggregates sales for summaries and the dashboard chart.
type ReportService interface {
	GetTotalByPeriod(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	GetDailySales(ctx context.Context, start, end time.Time) ([]repository.DailySales, error)
}

type reportService struct {
	saleRepo repository.SaleRepository
}

func NewReportService(saleRepo repository.SaleRepository) ReportService {
	return &reportService{saleRepo: saleRepo}
}

// GetTotalByPeriod is zero, never an error, for a period without sales.
func (s *reportService) GetTotalByPeriod(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	if end.Before(start) {
		return decimal.Zero, invalidf("fecha_fin", "fecha_fin must not be before fecha_inicio")
	}
	return s.saleRepo.SumByPeriod(ctx, start, end)
}

func (s *reportService) GetDailySales(ctx context.Context, start, end time.Time) ([]repository.DailySales, error) {
	if end.Before(start) {
		return nil, invalidf("fecha_fin", "fecha_fin must not be before fecha_inicio")
	}
	return s.saleRepo.DailySummary(ctx, start, end)
}
