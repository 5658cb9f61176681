package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/winprintid/pos-api/internal/domain/entity"
	"github.com/winprintid/pos-api/internal/domain/repository"
)

// DashboardService aggregates the landing-page summary figures
type DashboardService struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) *DashboardService {
	return &DashboardService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

// DashboardSummary is the landing-page snapshot
type DashboardSummary struct {
	TodayRevenue  int64         `json:"today_revenue"`
	TodaySales    int64         `json:"today_sales"`
	MonthRevenue  int64         `json:"month_revenue"`
	MonthSales    int64         `json:"month_sales"`
	ProductCount  int64         `json:"product_count"`
	CustomerCount int64         `json:"customer_count"`
	RecentSales   []entity.Sale `json:"recent_sales"`
}

// Summary computes today's and this month's revenue and sale counts,
// catalog sizes, and the most recent sales. "Today" and "this month" are
// local calendar windows.
func (s *DashboardService) Summary(ctx context.Context, userID uuid.UUID, now time.Time) (*DashboardSummary, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1).Add(-time.Nanosecond)

	todayRevenue, todaySales, err := s.saleRepo.SumRevenueInPeriod(ctx, userID, &startOfDay, &endOfDay)
	if err != nil {
		return nil, err
	}

	startOfMonth, endOfMonth, err := PeriodBounds(PeriodMonth, now.Year(), now.Month(), now.Location())
	if err != nil {
		return nil, err
	}

	monthRevenue, monthSales, err := s.saleRepo.SumRevenueInPeriod(ctx, userID, startOfMonth, endOfMonth)
	if err != nil {
		return nil, err
	}

	productCount, err := s.productRepo.Count(ctx, userID)
	if err != nil {
		return nil, err
	}

	customerCount, err := s.customerRepo.Count(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := s.saleRepo.ListRecent(ctx, userID, 5)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		TodayRevenue:  todayRevenue,
		TodaySales:    todaySales,
		MonthRevenue:  monthRevenue,
		MonthSales:    monthSales,
		ProductCount:  productCount,
		CustomerCount: customerCount,
		RecentSales:   recent,
	}, nil
}
