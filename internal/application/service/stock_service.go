package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/winprintid/pos-api/internal/domain/entity"
	"github.com/winprintid/pos-api/internal/domain/repository"
	"github.com/winprintid/pos-api/pkg/apperror"
	"github.com/winprintid/pos-api/pkg/pagination"
	"github.com/winprintid/pos-api/pkg/quotes"
	"golang.org/x/sync/singleflight"
)

// StockService handles the stock watchlist and quote refreshes
type StockService struct {
	pickRepo    repository.StockPickRepository
	quoteClient *quotes.Client
	// refreshGroup collapses concurrent quote refreshes for the same user
	// into a single upstream fetch.
	refreshGroup singleflight.Group
}

// NewStockService creates a new stock service
func NewStockService(pickRepo repository.StockPickRepository, quoteClient *quotes.Client) *StockService {
	return &StockService{
		pickRepo:    pickRepo,
		quoteClient: quoteClient,
	}
}

// CreateStockPickInput represents the create stock pick input
type CreateStockPickInput struct {
	UserID      uuid.UUID
	Ticker      string
	CompanyName *string
	BuyPrice    *float64
	Support1    *float64
	Support2    *float64
	TakeProfit1 *float64
	TakeProfit2 *float64
	Notes       *string
}

// CreateStockPick adds a ticker to the user's watchlist
func (s *StockService) CreateStockPick(ctx context.Context, input *CreateStockPickInput) (*entity.StockPick, error) {
	ticker := strings.ToUpper(strings.TrimSpace(input.Ticker))
	if ticker == "" {
		return nil, apperror.NewBadRequestError("Ticker is required")
	}

	pick := &entity.StockPick{
		UserID:      input.UserID,
		Ticker:      ticker,
		CompanyName: input.CompanyName,
		BuyPrice:    input.BuyPrice,
		Support1:    input.Support1,
		Support2:    input.Support2,
		TakeProfit1: input.TakeProfit1,
		TakeProfit2: input.TakeProfit2,
		Notes:       input.Notes,
	}

	if err := s.pickRepo.Create(ctx, pick); err != nil {
		return nil, err
	}

	return pick, nil
}

// GetStockPick retrieves a stock pick by ID
func (s *StockService) GetStockPick(ctx context.Context, userID, id uuid.UUID) (*entity.StockPick, error) {
	pick, err := s.pickRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pick == nil || pick.UserID != userID {
		return nil, apperror.NewNotFoundError("Stock pick")
	}
	return pick, nil
}

// ListStockPicks lists a user's watchlist
func (s *StockService) ListStockPicks(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.StockPick], error) {
	picks, total, err := s.pickRepo.List(ctx, userID, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(picks, pag), nil
}

// UpdateStockPickInput represents the update stock pick input
type UpdateStockPickInput struct {
	UserID      uuid.UUID
	ID          uuid.UUID
	Ticker      *string
	CompanyName *string
	BuyPrice    *float64
	Support1    *float64
	Support2    *float64
	TakeProfit1 *float64
	TakeProfit2 *float64
	Notes       *string
}

// UpdateStockPick updates a stock pick
func (s *StockService) UpdateStockPick(ctx context.Context, input *UpdateStockPickInput) (*entity.StockPick, error) {
	pick, err := s.pickRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if pick == nil || pick.UserID != input.UserID {
		return nil, apperror.NewNotFoundError("Stock pick")
	}

	if input.Ticker != nil {
		ticker := strings.ToUpper(strings.TrimSpace(*input.Ticker))
		if ticker == "" {
			return nil, apperror.NewBadRequestError("Ticker is required")
		}
		pick.Ticker = ticker
	}
	if input.CompanyName != nil {
		pick.CompanyName = input.CompanyName
	}
	if input.BuyPrice != nil {
		pick.BuyPrice = input.BuyPrice
	}
	if input.Support1 != nil {
		pick.Support1 = input.Support1
	}
	if input.Support2 != nil {
		pick.Support2 = input.Support2
	}
	if input.TakeProfit1 != nil {
		pick.TakeProfit1 = input.TakeProfit1
	}
	if input.TakeProfit2 != nil {
		pick.TakeProfit2 = input.TakeProfit2
	}
	if input.Notes != nil {
		pick.Notes = input.Notes
	}

	if err := s.pickRepo.Update(ctx, pick); err != nil {
		return nil, err
	}

	return pick, nil
}

// DeleteStockPick removes a ticker from the watchlist
func (s *StockService) DeleteStockPick(ctx context.Context, userID, id uuid.UUID) error {
	pick, err := s.pickRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if pick == nil || pick.UserID != userID {
		return apperror.NewNotFoundError("Stock pick")
	}

	return s.pickRepo.Delete(ctx, id)
}

// RefreshQuotes fetches live quotes for every ticker on the user's
// watchlist. Concurrent refresh requests for the same user share one
// upstream fetch instead of piling on to the rate-limited provider.
func (s *StockService) RefreshQuotes(ctx context.Context, userID uuid.UUID) (map[string]*quotes.Quote, error) {
	result, err, _ := s.refreshGroup.Do(userID.String(), func() (interface{}, error) {
		tickers, err := s.pickRepo.ListTickers(ctx, userID)
		if err != nil {
			return nil, err
		}
		if len(tickers) == 0 {
			return map[string]*quotes.Quote{}, nil
		}
		return s.quoteClient.FetchBatch(ctx, tickers)
	})
	if err != nil {
		return nil, err
	}

	return result.(map[string]*quotes.Quote), nil
}
