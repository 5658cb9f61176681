package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/winprintid/pos-api/internal/domain/repository"
	"github.com/winprintid/pos-api/pkg/apperror"
	"github.com/winprintid/pos-api/pkg/pagination"
	"github.com/winprintid/pos-api/pkg/pricing"
)

// CogsService produces cost-of-goods-sold reports over a period
type CogsService struct {
	saleRepo repository.SaleRepository
}

// NewCogsService creates a new COGS service
func NewCogsService(saleRepo repository.SaleRepository) *CogsService {
	return &CogsService{saleRepo: saleRepo}
}

// PeriodType selects the date range of a COGS report
type PeriodType string

const (
	PeriodMonth PeriodType = "month"
	PeriodYear  PeriodType = "year"
	PeriodAll   PeriodType = "all"
)

// CogsReportInput represents the report request
type CogsReportInput struct {
	UserID     uuid.UUID
	Period     PeriodType
	Year       int
	Month      time.Month
	Pagination *pagination.PaginationParams
	Location   *time.Location
}

// CogsItem is one sale item as it appears on the report
type CogsItem struct {
	SaleID      uuid.UUID          `json:"sale_id"`
	InvoiceNo   string             `json:"invoice_no"`
	SaleDate    time.Time          `json:"sale_date"`
	ProductName string             `json:"product_name"`
	PricingType string             `json:"pricing_type"`
	Quantity    int                `json:"quantity"`
	UnitCost    int64              `json:"unit_cost"`
	TotalCost   int64              `json:"total_cost"`
	Revenue     int64              `json:"revenue"`
	CostMissing bool               `json:"cost_missing"`
}

// CogsReport carries the aggregate figures over the whole filtered period
// plus one paginated page of items. The totals are computed before
// pagination and never vary with the requested page.
type CogsReport struct {
	Period              PeriodType                          `json:"period"`
	StartDate           *time.Time                          `json:"start_date,omitempty"`
	EndDate             *time.Time                          `json:"end_date,omitempty"`
	TotalRevenue        int64                               `json:"total_revenue"`
	TotalCOGS           int64                               `json:"total_cogs"`
	GrossProfit         int64                               `json:"gross_profit"`
	ProfitMarginPercent float64                             `json:"profit_margin_percent"`
	MarginTier          pricing.MarginTier                  `json:"margin_tier"`
	Items               *pagination.PaginatedResult[CogsItem] `json:"items"`
}

// PeriodBounds resolves a report period to its inclusive calendar bounds in
// the given location: months run from the 1st at 00:00:00 through the last
// day at 23:59:59.999..., years from Jan 1 through Dec 31. The all-time
// period has no bounds.
func PeriodBounds(period PeriodType, year int, month time.Month, loc *time.Location) (*time.Time, *time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	switch period {
	case PeriodMonth:
		start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
		end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
		return &start, &end, nil
	case PeriodYear:
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
		end := start.AddDate(1, 0, 0).Add(-time.Nanosecond)
		return &start, &end, nil
	case PeriodAll:
		return nil, nil, nil
	default:
		return nil, nil, apperror.NewBadRequestError("Invalid report period")
	}
}

// Report builds the COGS report for a period. Aggregates cover every item
// in the filtered set; only the item list is paginated.
func (s *CogsService) Report(ctx context.Context, input *CogsReportInput) (*CogsReport, error) {
	start, end, err := PeriodBounds(input.Period, input.Year, input.Month, input.Location)
	if err != nil {
		return nil, err
	}

	saleItems, err := s.saleRepo.ListItemsInPeriod(ctx, input.UserID, start, end)
	if err != nil {
		return nil, err
	}

	var totalRevenue, totalCOGS int64
	rows := make([]CogsItem, 0, len(saleItems))

	for _, item := range saleItems {
		line := pricing.LineInput{
			PricingType:  item.PricingType,
			PricePerUnit: item.PricePerUnit,
			CostPrice:    item.CostPrice,
			Quantity:     item.Quantity,
		}
		if item.Width != nil {
			line.Width = *item.Width
		}
		if item.Height != nil {
			line.Height = *item.Height
		}

		totalCost := pricing.CostLine(line)
		totalRevenue += item.ItemTotal
		totalCOGS += totalCost

		rows = append(rows, CogsItem{
			SaleID:      item.SaleID,
			InvoiceNo:   item.Sale.InvoiceNo,
			SaleDate:    item.Sale.CreatedAt,
			ProductName: item.Product.Name,
			PricingType: item.PricingType.String(),
			Quantity:    item.Quantity,
			UnitCost:    pricing.UnitCost(line),
			TotalCost:   totalCost,
			Revenue:     item.ItemTotal,
			CostMissing: item.CostPrice == nil,
		})
	}

	grossProfit := totalRevenue - totalCOGS
	marginPercent := pricing.MarginPercent(totalRevenue, totalCOGS)

	input.Pagination.Validate()
	page := pagination.Slice(rows, input.Pagination)
	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, int64(len(rows)))

	return &CogsReport{
		Period:              input.Period,
		StartDate:           start,
		EndDate:             end,
		TotalRevenue:        totalRevenue,
		TotalCOGS:           totalCOGS,
		GrossProfit:         grossProfit,
		ProfitMarginPercent: marginPercent,
		MarginTier:          pricing.ClassifyMargin(marginPercent),
		Items:               pagination.NewPaginatedResult(page, pag),
	}, nil
}
