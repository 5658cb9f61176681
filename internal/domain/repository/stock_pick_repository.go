package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/winprintid/pos-api/internal/domain/entity"
	"github.com/winprintid/pos-api/pkg/pagination"
)

// StockPickRepository defines the interface for stock watchlist operations
type StockPickRepository interface {
	Create(ctx context.Context, pick *entity.StockPick) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.StockPick, error)
	Update(ctx context.Context, pick *entity.StockPick) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.StockPick, int64, error)
	// ListTickers returns the distinct tickers on a user's watchlist.
	ListTickers(ctx context.Context, userID uuid.UUID) ([]string, error)
}
