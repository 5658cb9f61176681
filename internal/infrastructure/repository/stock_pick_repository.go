package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/winprintid/pos-api/internal/domain/entity"
	domainRepo "github.com/winprintid/pos-api/internal/domain/repository"
	"github.com/winprintid/pos-api/pkg/pagination"
	"gorm.io/gorm"
)

type stockPickRepository struct {
	db *gorm.DB
}

// NewStockPickRepository creates a new stock pick repository
func NewStockPickRepository(db *gorm.DB) domainRepo.StockPickRepository {
	return &stockPickRepository{db: db}
}

func (r *stockPickRepository) Create(ctx context.Context, pick *entity.StockPick) error {
	return r.db.WithContext(ctx).Create(pick).Error
}

func (r *stockPickRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.StockPick, error) {
	var pick entity.StockPick
	err := r.db.WithContext(ctx).First(&pick, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &pick, err
}

func (r *stockPickRepository) Update(ctx context.Context, pick *entity.StockPick) error {
	return r.db.WithContext(ctx).Save(pick).Error
}

func (r *stockPickRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.StockPick{}, "id = ?", id).Error
}

func (r *stockPickRepository) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.StockPick, int64, error) {
	var picks []entity.StockPick
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.StockPick{}).Where("user_id = ?", userID)

	if search != "" {
		query = query.Where("ticker ILIKE ? OR company_name ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("ticker ASC").
		Find(&picks).Error

	return picks, total, err
}

func (r *stockPickRepository) ListTickers(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var tickers []string
	err := r.db.WithContext(ctx).Model(&entity.StockPick{}).
		Where("user_id = ?", userID).
		Distinct("ticker").
		Order("ticker ASC").
		Pluck("ticker", &tickers).Error
	return tickers, err
}
