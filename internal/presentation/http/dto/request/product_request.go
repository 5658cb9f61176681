package request

// CreateProductRequest represents a create product request
type CreateProductRequest struct {
	Name         string  `json:"name" binding:"required,min=1,max=255"`
	PricingType  string  `json:"pricing_type" binding:"required,oneof=quantity size"`
	PricePerUnit int64   `json:"price_per_unit" binding:"required,min=0"`
	CostPrice    *int64  `json:"cost_price"`
	Notes        *string `json:"notes"`
}

// UpdateProductRequest represents a partial product update request
type UpdateProductRequest struct {
	Name         *string `json:"name"`
	PricingType  *string `json:"pricing_type"`
	PricePerUnit *int64  `json:"price_per_unit"`
	CostPrice    *int64  `json:"cost_price"`
	ClearCost    bool    `json:"clear_cost"`
	Notes        *string `json:"notes"`
}

// ProductFilterRequest represents product list query parameters
type ProductFilterRequest struct {
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
	Search  string `form:"search"`
}
