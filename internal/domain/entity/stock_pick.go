package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockPick is an entry on a user's stock watchlist. Price levels are the
// user's own plan (support and take-profit targets); live market data is
// fetched separately and never persisted here.
type StockPick struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Ticker      string         `gorm:"size:20;not null" json:"ticker"`
	CompanyName *string        `gorm:"size:255" json:"company_name,omitempty"`
	BuyPrice    *float64       `json:"buy_price,omitempty"`
	Support1    *float64       `json:"support1,omitempty"`
	Support2    *float64       `json:"support2,omitempty"`
	TakeProfit1 *float64       `json:"take_profit1,omitempty"`
	TakeProfit2 *float64       `json:"take_profit2,omitempty"`
	Notes       *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new stock pick
func (sp *StockPick) BeforeCreate(tx *gorm.DB) error {
	if sp.ID == uuid.Nil {
		sp.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockPick model
func (StockPick) TableName() string {
	return "stock_picks"
}
