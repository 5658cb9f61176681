package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/winprintid/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Product represents a sellable item in the catalog.
// Prices are stored in whole rupiah. For quantity-priced products
// PricePerUnit is the price per piece; for size-priced products it is the
// rate per cm² of printed area. CostPrice follows the same semantics and is
// nil when the cost basis is unknown.
type Product struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string           `gorm:"size:255;not null" json:"name"`
	PricingType  enum.PricingType `gorm:"size:20;not null;default:'quantity'" json:"pricing_type"`
	PricePerUnit int64            `gorm:"not null;default:0" json:"price_per_unit"`
	CostPrice    *int64           `json:"cost_price,omitempty"`
	Notes        *string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	User      User       `gorm:"foreignKey:UserID" json:"-"`
	SaleItems []SaleItem `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}
