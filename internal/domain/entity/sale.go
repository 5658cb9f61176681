package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/winprintid/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale represents a completed sales transaction. TotalPrice always equals
// the sum of its items' ItemTotal values; it is written at create/update
// time and never recomputed from dimensions afterwards.
type Sale struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID *uuid.UUID     `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	InvoiceNo  string         `gorm:"size:100;unique;not null" json:"invoice_no"`
	TotalPrice int64          `gorm:"not null;default:0" json:"total_price"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User     User       `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleItem represents a line item in a sale. Quantity applies to both
// pricing types; Width and Height are set only for size-priced items.
// PricePerUnit and CostPrice are snapshots of the product's rates at the
// moment of sale so that later catalog edits do not rewrite history.
type SaleItem struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	SaleID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"product_id"`
	PricingType  enum.PricingType `gorm:"size:20;not null" json:"pricing_type"`
	Quantity     int              `gorm:"not null;default:1" json:"quantity"`
	Width        *float64         `json:"width,omitempty"`
	Height       *float64         `json:"height,omitempty"`
	Description  *string          `gorm:"type:text" json:"description,omitempty"`
	PricePerUnit int64            `gorm:"not null;default:0" json:"price_per_unit"`
	CostPrice    *int64           `json:"cost_price,omitempty"`
	ItemTotal    int64            `gorm:"not null;default:0" json:"item_total"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`

	// Relationships
	Sale    Sale    `gorm:"foreignKey:SaleID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}
