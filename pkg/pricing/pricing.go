// Package pricing computes line-item totals, cost totals, and margin
// classification for sales. Every function is pure: no persistence, no
// clock, no I/O. Both the sale-creation and sale-edit flows must price
// through this package so the two paths can never diverge.
package pricing

import (
	"math"

	"github.com/winprintid/pos-api/internal/domain/enum"
)

// Money is a monetary amount in whole rupiah.
type Money = int64

// LineInput carries everything needed to price one line item. PricePerUnit
// is rupiah per piece for quantity-priced products and rupiah per cm² for
// size-priced products. CostPrice follows the same semantics and is nil
// when the product has no recorded cost basis.
type LineInput struct {
	PricingType  enum.PricingType
	PricePerUnit Money
	CostPrice    *Money
	Quantity     int
	Width        float64
	Height       float64
}

// LineResult is the outcome of pricing a line item. Incomplete lines price
// to zero rather than erroring; callers treat the flag as a validation
// signal.
type LineResult struct {
	Total      Money `json:"total"`
	Incomplete bool  `json:"incomplete"`
}

// RoundUpToThousand returns x unchanged when it is an exact multiple of
// 1000, otherwise the smallest multiple of 1000 greater than x.
// Non-positive amounts round to zero.
func RoundUpToThousand(x Money) Money {
	if x <= 0 {
		return 0
	}
	if r := x % 1000; r != 0 {
		return x - r + 1000
	}
	return x
}

// SizeSubtotal computes the raw area-based subtotal width*height*rate*qty,
// rounded to the nearest whole rupiah. Quantity multiplies the subtotal for
// size-priced items just as it does for quantity-priced ones.
func SizeSubtotal(width, height float64, rate Money, quantity int) Money {
	raw := width * height * float64(rate) * float64(quantity)
	return Money(math.Round(raw))
}

// PriceLine computes the selling total for a line item.
//
// Quantity pricing: quantity * pricePerUnit, exact.
// Size pricing: width*height*pricePerUnit*quantity, rounded up to the
// nearest 1000 rupiah.
//
// A non-positive quantity, or a size line with a non-positive width or
// height, yields a zero total flagged incomplete.
func PriceLine(in LineInput) LineResult {
	if in.Quantity <= 0 {
		return LineResult{Total: 0, Incomplete: true}
	}

	switch in.PricingType {
	case enum.PricingTypeSize:
		if in.Width <= 0 || in.Height <= 0 {
			return LineResult{Total: 0, Incomplete: true}
		}
		sub := SizeSubtotal(in.Width, in.Height, in.PricePerUnit, in.Quantity)
		return LineResult{Total: RoundUpToThousand(sub)}
	default:
		return LineResult{Total: Money(in.Quantity) * in.PricePerUnit}
	}
}

// CostLine computes the cost-side total for a line item using the same
// formulas as PriceLine with the cost price substituted for the selling
// rate. A nil cost price contributes zero; this substitution is deliberate
// so reports always produce a number instead of failing on bad catalog
// data.
func CostLine(in LineInput) Money {
	if in.CostPrice == nil {
		return 0
	}
	res := PriceLine(LineInput{
		PricingType:  in.PricingType,
		PricePerUnit: *in.CostPrice,
		Quantity:     in.Quantity,
		Width:        in.Width,
		Height:       in.Height,
	})
	return res.Total
}

// UnitCost is the per-piece cost shown on report rows: the cost-side total
// spread back over the quantity. Quantity is clamped to 1 so the division
// is always defined.
func UnitCost(in LineInput) Money {
	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}
	return CostLine(in) / Money(qty)
}

// DisplayUnitPrice derives the per-piece price printed on invoices and
// detail screens. For size-priced lines the stored rate is per cm², so the
// display value is back-computed from the persisted total; for
// quantity-priced lines the stored rate is already per piece. This is a
// presentation value only and never feeds back into totals.
func DisplayUnitPrice(pricingType enum.PricingType, pricePerUnit, itemTotal Money, quantity int) Money {
	if pricingType == enum.PricingTypeSize {
		if quantity < 1 {
			quantity = 1
		}
		return itemTotal / Money(quantity)
	}
	return pricePerUnit
}

// MarginPercent returns the gross profit margin as a percentage of
// revenue. Zero revenue yields zero, never NaN.
func MarginPercent(revenue, cogs Money) float64 {
	if revenue == 0 {
		return 0
	}
	return float64(revenue-cogs) / float64(revenue) * 100
}

// MarginTier is the presentational classification of a profit margin.
type MarginTier string

const (
	MarginStrong MarginTier = "strong"
	MarginGood   MarginTier = "good"
	MarginWeak   MarginTier = "weak"
	MarginPoor   MarginTier = "poor"
)

// ClassifyMargin maps a margin percentage to its tier. The tiers cover the
// whole real line: >=50 strong, [30,50) good, [10,30) weak, everything
// below 10 (including negative margins) poor.
func ClassifyMargin(percent float64) MarginTier {
	switch {
	case percent >= 50:
		return MarginStrong
	case percent >= 30:
		return MarginGood
	case percent >= 10:
		return MarginWeak
	default:
		return MarginPoor
	}
}
