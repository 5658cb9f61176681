package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/winprintid/pos-api/internal/domain/entity"
	"github.com/winprintid/pos-api/pkg/pagination"
)

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// SaleRepository defines the interface for sale data operations. Writes
// that touch a sale and its items together must be atomic: CreateWithItems
// inserts the sale row and all item rows in one transaction, and
// ReplaceItems updates the sale row, deletes the previous item set, and
// inserts the new one in one transaction.
type SaleRepository interface {
	CreateWithItems(ctx context.Context, sale *entity.Sale, items []entity.SaleItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	// GetWithDetails loads the sale with its customer and its items'
	// product records resolved.
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	ReplaceItems(ctx context.Context, sale *entity.Sale, items []entity.SaleItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *SaleFilterParams) ([]entity.Sale, int64, error)
	Count(ctx context.Context, userID uuid.UUID) (int64, error)
	// NextInvoiceSeq returns the next invoice sequence number for a user.
	NextInvoiceSeq(ctx context.Context, userID uuid.UUID) (int64, error)
	// ListItemsInPeriod returns all sale items whose parent sale was
	// created in [start, end] (nil bounds mean unbounded), with the parent
	// sale and product preloaded, sorted by sale timestamp descending.
	ListItemsInPeriod(ctx context.Context, userID uuid.UUID, start, end *time.Time) ([]entity.SaleItem, error)
	// SumRevenueInPeriod totals sale TotalPrice over [start, end] and
	// returns the matching sale count.
	SumRevenueInPeriod(ctx context.Context, userID uuid.UUID, start, end *time.Time) (int64, int64, error)
	// ListRecent returns the most recent sales with customers resolved.
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]entity.Sale, error)
}
