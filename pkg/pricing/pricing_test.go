package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/winprintid/pos-api/internal/domain/enum"
)

func money(v int64) *Money {
	return &v
}

func TestRoundUpToThousand(t *testing.T) {
	tests := []struct {
		name string
		in   Money
		want Money
	}{
		{"zero", 0, 0},
		{"negative", -500, 0},
		{"exact multiple unchanged", 5000000, 5000000},
		{"one thousand unchanged", 1000, 1000},
		{"just above multiple", 33700, 34000},
		{"just below multiple", 999, 1000},
		{"one above multiple", 1001, 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoundUpToThousand(tt.in))
		})
	}
}

func TestRoundUpToThousandProperties(t *testing.T) {
	for x := Money(0); x <= 10000; x += 37 {
		got := RoundUpToThousand(x)
		assert.Zero(t, got%1000, "result must be a multiple of 1000, x=%d", x)
		assert.GreaterOrEqual(t, got, x, "result must not be below input, x=%d", x)
		assert.Less(t, got-x, Money(1000), "result must be within 1000 of input, x=%d", x)
		if x%1000 == 0 {
			assert.Equal(t, x, got, "exact multiples are identity, x=%d", x)
		} else {
			assert.NotEqual(t, x, got, "non-multiples must change, x=%d", x)
		}
	}
}

func TestPriceLineQuantity(t *testing.T) {
	res := PriceLine(LineInput{
		PricingType:  enum.PricingTypeQuantity,
		PricePerUnit: 15000,
		Quantity:     3,
	})

	assert.Equal(t, Money(45000), res.Total)
	assert.False(t, res.Incomplete)
}

func TestPriceLineQuantityNoRounding(t *testing.T) {
	// Quantity pricing is exact even when the result is not a round number.
	res := PriceLine(LineInput{
		PricingType:  enum.PricingTypeQuantity,
		PricePerUnit: 333,
		Quantity:     7,
	})

	assert.Equal(t, Money(2331), res.Total)
	assert.False(t, res.Incomplete)
}

func TestPriceLineSize(t *testing.T) {
	// 100cm x 50cm banner at 500/cm², two copies: raw 5,000,000 is already
	// a multiple of 1000 so rounding leaves it untouched.
	res := PriceLine(LineInput{
		PricingType:  enum.PricingTypeSize,
		PricePerUnit: 500,
		Quantity:     2,
		Width:        100,
		Height:       50,
	})

	assert.Equal(t, Money(5000000), res.Total)
	assert.False(t, res.Incomplete)
}

func TestPriceLineSizeRoundsUp(t *testing.T) {
	// 10x10 at 337/cm² → raw 33,700 → ceiling to 34,000.
	res := PriceLine(LineInput{
		PricingType:  enum.PricingTypeSize,
		PricePerUnit: 337,
		Quantity:     1,
		Width:        10,
		Height:       10,
	})

	assert.Equal(t, Money(34000), res.Total)
	assert.False(t, res.Incomplete)
}

func TestPriceLineSizeCeilsNonMultiple(t *testing.T) {
	// 10x10 at 333/cm² → raw 33,300 → ceiling to 34,000.
	res := PriceLine(LineInput{
		PricingType:  enum.PricingTypeSize,
		PricePerUnit: 333,
		Quantity:     1,
		Width:        10,
		Height:       10,
	})

	assert.Equal(t, Money(34000), res.Total)
}

func TestPriceLineSizeFractionalDimensions(t *testing.T) {
	// 10.5 x 10.5 at 333/cm² → raw 36,713.25 → 37,000.
	res := PriceLine(LineInput{
		PricingType:  enum.PricingTypeSize,
		PricePerUnit: 333,
		Quantity:     1,
		Width:        10.5,
		Height:       10.5,
	})

	assert.Equal(t, Money(37000), res.Total)
}

func TestPriceLineQuantityMultipliesSize(t *testing.T) {
	one := PriceLine(LineInput{
		PricingType:  enum.PricingTypeSize,
		PricePerUnit: 500,
		Quantity:     1,
		Width:        20,
		Height:       30,
	})
	three := PriceLine(LineInput{
		PricingType:  enum.PricingTypeSize,
		PricePerUnit: 500,
		Quantity:     3,
		Width:        20,
		Height:       30,
	})

	assert.Equal(t, one.Total*3, three.Total, "raw subtotal is a multiple of 1000 so the quantity factor scales exactly")
}

func TestPriceLineIncomplete(t *testing.T) {
	tests := []struct {
		name string
		in   LineInput
	}{
		{"zero quantity", LineInput{PricingType: enum.PricingTypeQuantity, PricePerUnit: 15000, Quantity: 0}},
		{"negative quantity", LineInput{PricingType: enum.PricingTypeQuantity, PricePerUnit: 15000, Quantity: -2}},
		{"size missing width", LineInput{PricingType: enum.PricingTypeSize, PricePerUnit: 500, Quantity: 1, Height: 50}},
		{"size missing height", LineInput{PricingType: enum.PricingTypeSize, PricePerUnit: 500, Quantity: 1, Width: 100}},
		{"size zero quantity", LineInput{PricingType: enum.PricingTypeSize, PricePerUnit: 500, Quantity: 0, Width: 100, Height: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := PriceLine(tt.in)
			assert.True(t, res.Incomplete)
			assert.Zero(t, res.Total)
		})
	}
}

func TestCostLine(t *testing.T) {
	t.Run("quantity type", func(t *testing.T) {
		got := CostLine(LineInput{
			PricingType:  enum.PricingTypeQuantity,
			PricePerUnit: 15000,
			CostPrice:    money(6000),
			Quantity:     3,
		})
		assert.Equal(t, Money(18000), got)
	})

	t.Run("size type rounds like the selling side", func(t *testing.T) {
		got := CostLine(LineInput{
			PricingType:  enum.PricingTypeSize,
			PricePerUnit: 500,
			CostPrice:    money(337),
			Quantity:     1,
			Width:        10,
			Height:       10,
		})
		assert.Equal(t, Money(34000), got)
	})

	t.Run("missing cost price contributes zero", func(t *testing.T) {
		got := CostLine(LineInput{
			PricingType:  enum.PricingTypeQuantity,
			PricePerUnit: 15000,
			Quantity:     3,
		})
		assert.Zero(t, got)
	})
}

func TestUnitCost(t *testing.T) {
	t.Run("spreads cost total over quantity", func(t *testing.T) {
		got := UnitCost(LineInput{
			PricingType:  enum.PricingTypeQuantity,
			PricePerUnit: 15000,
			CostPrice:    money(6000),
			Quantity:     3,
		})
		assert.Equal(t, Money(6000), got)
	})

	t.Run("zero quantity never divides by zero", func(t *testing.T) {
		got := UnitCost(LineInput{
			PricingType:  enum.PricingTypeQuantity,
			PricePerUnit: 15000,
			CostPrice:    money(6000),
			Quantity:     0,
		})
		assert.Zero(t, got)
	})
}

func TestDisplayUnitPrice(t *testing.T) {
	t.Run("quantity type uses stored rate", func(t *testing.T) {
		got := DisplayUnitPrice(enum.PricingTypeQuantity, 15000, 45000, 3)
		assert.Equal(t, Money(15000), got)
	})

	t.Run("size type back-computes from total", func(t *testing.T) {
		got := DisplayUnitPrice(enum.PricingTypeSize, 500, 5000000, 2)
		assert.Equal(t, Money(2500000), got)
	})

	t.Run("size type clamps quantity to one", func(t *testing.T) {
		got := DisplayUnitPrice(enum.PricingTypeSize, 500, 34000, 0)
		assert.Equal(t, Money(34000), got)
	})
}

func TestMarginPercent(t *testing.T) {
	assert.InDelta(t, 73.33, MarginPercent(150000, 40000), 0.01)
	assert.Zero(t, MarginPercent(0, 40000), "zero revenue is defined as zero margin")
	assert.InDelta(t, -50, MarginPercent(100000, 150000), 0.001, "losses produce negative margins")
}

func TestClassifyMargin(t *testing.T) {
	tests := []struct {
		percent float64
		want    MarginTier
	}{
		{73.3, MarginStrong},
		{50, MarginStrong},
		{49.999, MarginGood},
		{30, MarginGood},
		{29.999, MarginWeak},
		{10, MarginWeak},
		{9.999, MarginPoor},
		{0, MarginPoor},
		{-120, MarginPoor},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyMargin(tt.percent), "percent=%v", tt.percent)
	}
}
