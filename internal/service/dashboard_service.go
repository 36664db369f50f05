package service

import (
	"context"

	"github.com/shopspring/decimal"

	"go-ferre-inventory/internal/model"
	"go-ferre-inventory/internal/repository"
)

// DashboardStats summarises the shop for the dashboard screen.
type DashboardStats struct {
	TotalProducts  int     `json:"totalProducts"`
	LowStockCount  int     `json:"lowStockCount"`
	TotalValuation float64 `json:"totalValuation"`
	TotalSales     int     `json:"totalSales"`
	SalesRevenue   float64 `json:"salesRevenue"`
}

type DashboardService interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
	GetLowStock(ctx context.Context) ([]model.Product, error)
}

type dashboardService struct {
	repo *repository.Repository
}

func NewDashboardService(repo *repository.Repository) DashboardService {
	return &dashboardService{repo: repo}
}

func (s *dashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalProducts: len(snap.Products),
		TotalSales:    len(snap.Sales),
	}

	valuation := decimal.Zero
	for _, p := range snap.Products {
		if p.IsLowStock() {
			stats.LowStockCount++
		}
		valuation = valuation.Add(decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(p.Quantity))))
	}

	revenue := decimal.Zero
	for _, sale := range snap.Sales {
		revenue = revenue.Add(decimal.NewFromFloat(sale.Total))
	}

	stats.TotalValuation = valuation.InexactFloat64()
	stats.SalesRevenue = revenue.InexactFloat64()
	return stats, nil
}

// GetLowStock lists products at or below their minimum stock, in catalog order.
func (s *dashboardService) GetLowStock(ctx context.Context) ([]model.Product, error) {
	products, err := s.repo.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}
	low := []model.Product{}
	for _, p := range products {
		if p.IsLowStock() {
			low = append(low, p)
		}
	}
	return low, nil
}
