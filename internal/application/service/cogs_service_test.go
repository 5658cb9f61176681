package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/winprintid/pos-api/internal/domain/entity"
	"github.com/winprintid/pos-api/internal/domain/enum"
	"github.com/winprintid/pos-api/pkg/pagination"
	"github.com/winprintid/pos-api/pkg/pricing"
	"github.com/winprintid/pos-api/pkg/utils"
)

func TestPeriodBoundsMonthIsInclusive(t *testing.T) {
	loc := time.UTC
	start, end, err := PeriodBounds(PeriodMonth, 2026, time.January, loc)
	require.NoError(t, err)
	require.NotNil(t, start)
	require.NotNil(t, end)

	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, loc), *start)
	// The end bound is the last representable instant of Jan 31
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, loc).Add(-time.Nanosecond), *end)

	lastMoment := time.Date(2026, time.January, 31, 23, 59, 59, 999999999, loc)
	assert.False(t, lastMoment.After(*end))
	assert.True(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, loc).After(*end))
}

func TestPeriodBoundsYearCoversDecember(t *testing.T) {
	loc := time.UTC
	start, end, err := PeriodBounds(PeriodYear, 2025, time.June, loc)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, loc), *start)

	newYearsEve := time.Date(2025, time.December, 31, 23, 59, 59, 0, loc)
	assert.False(t, newYearsEve.After(*end))
	assert.True(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, loc).After(*end))
}

func TestPeriodBoundsAllTimeHasNoBounds(t *testing.T) {
	start, end, err := PeriodBounds(PeriodAll, 0, 0, time.UTC)
	require.NoError(t, err)
	assert.Nil(t, start)
	assert.Nil(t, end)
}

func TestPeriodBoundsRejectsUnknownPeriod(t *testing.T) {
	_, _, err := PeriodBounds(PeriodType("quarter"), 2026, time.January, time.UTC)
	require.Error(t, err)
}

// seedSale inserts a sale with a single quantity-priced item directly into
// the fake repo with a fixed timestamp.
func seedSale(t *testing.T, repo *fakeSaleRepo, userID uuid.UUID, invoiceNo string, createdAt time.Time, qty int, pricePerUnit int64, costPrice *int64) {
	t.Helper()

	line := pricing.LineInput{
		PricingType:  enum.PricingTypeQuantity,
		PricePerUnit: pricePerUnit,
		CostPrice:    costPrice,
		Quantity:     qty,
	}
	res := pricing.PriceLine(line)
	require.False(t, res.Incomplete)

	sale := &entity.Sale{
		UserID:     userID,
		InvoiceNo:  invoiceNo,
		TotalPrice: res.Total,
		CreatedAt:  createdAt,
	}
	items := []entity.SaleItem{{
		ProductID:    uuid.New(),
		PricingType:  enum.PricingTypeQuantity,
		Quantity:     qty,
		PricePerUnit: pricePerUnit,
		CostPrice:    costPrice,
		ItemTotal:    res.Total,
		Product:      entity.Product{Name: "Sticker"},
	}}
	require.NoError(t, repo.CreateWithItems(context.Background(), sale, items))
}

func TestReportAggregatesMatchKnownFigures(t *testing.T) {
	userID := uuid.New()
	repo := newFakeSaleRepo()
	jan := time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC)

	// 150000 revenue against 40000 cost
	seedSale(t, repo, userID, "INV-000001", jan, 10, 15000, int64Ptr(4000))

	svc := NewCogsService(repo)
	report, err := svc.Report(context.Background(), &CogsReportInput{
		UserID:     userID,
		Period:     PeriodMonth,
		Year:       2026,
		Month:      time.January,
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
		Location:   time.UTC,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(150000), report.TotalRevenue)
	assert.Equal(t, int64(40000), report.TotalCOGS)
	assert.Equal(t, int64(110000), report.GrossProfit)
	assert.InDelta(t, 73.33, report.ProfitMarginPercent, 0.01)
	assert.Equal(t, pricing.MarginStrong, report.MarginTier)

	require.Len(t, report.Items.Items, 1)
	row := report.Items.Items[0]
	assert.Equal(t, "INV-000001", row.InvoiceNo)
	assert.Equal(t, int64(4000), row.UnitCost)
	assert.Equal(t, int64(40000), row.TotalCost)
	assert.False(t, row.CostMissing)
}

func TestReportTotalsDoNotVaryWithPage(t *testing.T) {
	userID := uuid.New()
	repo := newFakeSaleRepo()
	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 25; i++ {
		seedSale(t, repo, userID, utils.FormatInvoiceNo(int64(i+1)), base.Add(time.Duration(i)*time.Hour), 1, 10000, int64Ptr(4000))
	}

	svc := NewCogsService(repo)

	fetch := func(page int) *CogsReport {
		report, err := svc.Report(context.Background(), &CogsReportInput{
			UserID:     userID,
			Period:     PeriodMonth,
			Year:       2026,
			Month:      time.March,
			Pagination: &pagination.PaginationParams{Page: page, PerPage: 10},
			Location:   time.UTC,
		})
		require.NoError(t, err)
		return report
	}

	first := fetch(1)
	last := fetch(3)

	assert.Equal(t, int64(250000), first.TotalRevenue)
	assert.Equal(t, int64(100000), first.TotalCOGS)
	assert.Equal(t, first.TotalRevenue, last.TotalRevenue)
	assert.Equal(t, first.TotalCOGS, last.TotalCOGS)
	assert.Equal(t, first.ProfitMarginPercent, last.ProfitMarginPercent)

	assert.Len(t, first.Items.Items, 10)
	assert.Len(t, last.Items.Items, 5)
	assert.Equal(t, int64(25), first.Items.Pagination.Total)
}

func TestReportExcludesSalesOutsidePeriod(t *testing.T) {
	userID := uuid.New()
	repo := newFakeSaleRepo()

	seedSale(t, repo, userID, "INV-000001", time.Date(2026, time.January, 31, 23, 59, 59, 0, time.UTC), 1, 10000, int64Ptr(4000))
	seedSale(t, repo, userID, "INV-000002", time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), 1, 20000, int64Ptr(8000))

	svc := NewCogsService(repo)
	report, err := svc.Report(context.Background(), &CogsReportInput{
		UserID:     userID,
		Period:     PeriodMonth,
		Year:       2026,
		Month:      time.January,
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
		Location:   time.UTC,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10000), report.TotalRevenue)
	require.Len(t, report.Items.Items, 1)
	assert.Equal(t, "INV-000001", report.Items.Items[0].InvoiceNo)
}

func TestReportTreatsMissingCostAsZero(t *testing.T) {
	userID := uuid.New()
	repo := newFakeSaleRepo()
	jan := time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)

	seedSale(t, repo, userID, "INV-000001", jan, 2, 15000, nil)

	svc := NewCogsService(repo)
	report, err := svc.Report(context.Background(), &CogsReportInput{
		UserID:     userID,
		Period:     PeriodMonth,
		Year:       2026,
		Month:      time.January,
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
		Location:   time.UTC,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(30000), report.TotalRevenue)
	assert.Equal(t, int64(0), report.TotalCOGS)
	assert.InDelta(t, 100.0, report.ProfitMarginPercent, 0.001)

	require.Len(t, report.Items.Items, 1)
	assert.True(t, report.Items.Items[0].CostMissing)
	assert.Equal(t, int64(0), report.Items.Items[0].TotalCost)
}

func TestReportEmptyPeriodHasZeroMargin(t *testing.T) {
	svc := NewCogsService(newFakeSaleRepo())

	report, err := svc.Report(context.Background(), &CogsReportInput{
		UserID:     uuid.New(),
		Period:     PeriodMonth,
		Year:       2026,
		Month:      time.May,
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
		Location:   time.UTC,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), report.TotalRevenue)
	assert.Equal(t, int64(0), report.TotalCOGS)
	assert.Equal(t, float64(0), report.ProfitMarginPercent)
	assert.Equal(t, pricing.MarginPoor, report.MarginTier)
	assert.Empty(t, report.Items.Items)
}

func TestReportRowsSortedNewestFirst(t *testing.T) {
	userID := uuid.New()
	repo := newFakeSaleRepo()

	seedSale(t, repo, userID, "INV-000001", time.Date(2026, time.April, 1, 8, 0, 0, 0, time.UTC), 1, 10000, nil)
	seedSale(t, repo, userID, "INV-000002", time.Date(2026, time.April, 20, 8, 0, 0, 0, time.UTC), 1, 10000, nil)
	seedSale(t, repo, userID, "INV-000003", time.Date(2026, time.April, 10, 8, 0, 0, 0, time.UTC), 1, 10000, nil)

	svc := NewCogsService(repo)
	report, err := svc.Report(context.Background(), &CogsReportInput{
		UserID:     userID,
		Period:     PeriodMonth,
		Year:       2026,
		Month:      time.April,
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
		Location:   time.UTC,
	})
	require.NoError(t, err)

	require.Len(t, report.Items.Items, 3)
	assert.Equal(t, "INV-000002", report.Items.Items[0].InvoiceNo)
	assert.Equal(t, "INV-000003", report.Items.Items[1].InvoiceNo)
	assert.Equal(t, "INV-000001", report.Items.Items[2].InvoiceNo)
}
