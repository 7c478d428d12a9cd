package service

import (
	"context"
	"time"

	"github.com/dukahub/dukapos-api/internal/domain/authz"
	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/pkg/apperror"
)

// DashboardService aggregates figures for the overview and reports screens
type DashboardService struct {
	receiptRepo  repository.ReceiptRepository
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	receiptRepo repository.ReceiptRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
) *DashboardService {
	return &DashboardService{
		receiptRepo:  receiptRepo,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
	}
}

// DashboardStats holds the headline figures for the overview screen
type DashboardStats struct {
	TodayReceipts       int64   `json:"today_receipts"`
	TodaySales          float64 `json:"today_sales"`
	PendingOrders       int64   `json:"pending_orders"`
	ProcessingOrders    int64   `json:"processing_orders"`
	LowStockProducts    int     `json:"low_stock_products"`
	SupplierOutstanding float64 `json:"supplier_outstanding"`
}

// SalesReport aggregates sales over a date range
type SalesReport struct {
	From     time.Time                  `json:"from"`
	To       time.Time                  `json:"to"`
	Receipts int64                      `json:"receipts"`
	Total    float64                    `json:"total"`
	Daily    []repository.DailySalesRow `json:"daily"`
}

// GetStats returns the overview figures for today
func (s *DashboardService) GetStats(ctx context.Context, actor Actor) (*DashboardStats, error) {
	if !authz.Allowed(actor.Role, authz.ActionViewReports) {
		return nil, apperror.ErrForbidden
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	receipts, sales, err := s.receiptRepo.SalesTotals(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	pending, err := s.orderRepo.CountByStatus(ctx, enum.OrderStatusPending)
	if err != nil {
		return nil, err
	}
	processing, err := s.orderRepo.CountByStatus(ctx, enum.OrderStatusProcessing)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}

	outstanding, err := s.supplierRepo.TotalOutstanding(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TodayReceipts:       receipts,
		TodaySales:          float64(sales) / 100,
		PendingOrders:       pending,
		ProcessingOrders:    processing,
		LowStockProducts:    len(lowStock),
		SupplierOutstanding: float64(outstanding) / 100,
	}, nil
}

// GetSalesReport aggregates receipts per day in the half-open range [from, to)
func (s *DashboardService) GetSalesReport(ctx context.Context, actor Actor, from, to time.Time) (*SalesReport, error) {
	if !authz.Allowed(actor.Role, authz.ActionViewReports) {
		return nil, apperror.ErrForbidden
	}
	if !to.After(from) {
		return nil, apperror.NewBadRequestError("Report range is empty")
	}

	receipts, total, err := s.receiptRepo.SalesTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}

	daily, err := s.receiptRepo.DailySales(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &SalesReport{
		From:     from,
		To:       to,
		Receipts: receipts,
		Total:    float64(total) / 100,
		Daily:    daily,
	}, nil
}
