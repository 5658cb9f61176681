package enum

// PricingType determines which pricing formula applies to a product
type PricingType string

const (
	// PricingTypeQuantity prices the product per unit sold
	PricingTypeQuantity PricingType = "quantity"
	// PricingTypeSize prices the product per cm² of printed area
	PricingTypeSize PricingType = "size"
)

// IsValid checks whether the pricing type is one of the known values
func (t PricingType) IsValid() bool {
	return t == PricingTypeQuantity || t == PricingTypeSize
}

// String returns the string representation of the pricing type
func (t PricingType) String() string {
	return string(t)
}
