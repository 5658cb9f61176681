package invoice

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/winprintid/pos-api/internal/domain/entity"
	"github.com/winprintid/pos-api/internal/domain/enum"
)

func TestFormatRupiah(t *testing.T) {
	cases := []struct {
		amount   int64
		expected string
	}{
		{0, "Rp 0"},
		{500, "Rp 500"},
		{1000, "Rp 1.000"},
		{45000, "Rp 45.000"},
		{5000000, "Rp 5.000.000"},
		{1234567890, "Rp 1.234.567.890"},
		{-45000, "-Rp 45.000"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, FormatRupiah(tc.amount), "amount %d", tc.amount)
	}
}

func testSale() *entity.Sale {
	width := 100.0
	height := 50.0
	phone := "0812-3456-7890"
	cost := int64(200)

	return &entity.Sale{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		InvoiceNo:  "INV-000042",
		TotalPrice: 5045000,
		CreatedAt:  time.Date(2026, time.February, 14, 10, 30, 0, 0, time.UTC),
		Customer: &entity.Customer{
			Name:  "Budi Santoso",
			Phone: &phone,
		},
		Items: []entity.SaleItem{
			{
				PricingType:  enum.PricingTypeQuantity,
				Quantity:     3,
				PricePerUnit: 15000,
				ItemTotal:    45000,
				Product:      entity.Product{Name: "Sticker Pack"},
			},
			{
				PricingType:  enum.PricingTypeSize,
				Quantity:     2,
				Width:        &width,
				Height:       &height,
				PricePerUnit: 500,
				CostPrice:    &cost,
				ItemTotal:    5000000,
				Product:      entity.Product{Name: "Flex Banner"},
			},
		},
	}
}

func TestRenderProducesPDF(t *testing.T) {
	renderer := NewRenderer(
		CompanyInfo{
			Name:    "Winprint Digital Printing",
			Address: "Jl. Merdeka No. 1, Jakarta",
			Phone:   "021-555-0199",
			Email:   "hello@winprint.example",
		},
		PaymentInfo{
			BankName:      "BCA",
			AccountNumber: "1234567890",
			AccountHolder: "PT Winprint",
		},
	)

	pdfBytes, err := renderer.Render(testSale())
	require.NoError(t, err)
	require.NotEmpty(t, pdfBytes)
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF")))
}

func TestRenderWalkInCustomer(t *testing.T) {
	sale := testSale()
	sale.Customer = nil

	renderer := NewRenderer(CompanyInfo{Name: "Winprint"}, PaymentInfo{})
	pdfBytes, err := renderer.Render(sale)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF")))
}
