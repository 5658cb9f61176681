package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/winprintid/pos-api/internal/domain/entity"
	domainRepo "github.com/winprintid/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) CreateWithItems(ctx context.Context, sale *entity.Sale, items []entity.SaleItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sale).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].SaleID = sale.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Customer").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		Preload("Items.Product").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

// ReplaceItems persists an edited sale: the sale row is saved, the old item
// set is hard-deleted, and the new set inserted, all in one transaction so
// a reader never observes a sale with a partial item set.
func (r *saleRepository) ReplaceItems(ctx context.Context, sale *entity.Sale, items []entity.SaleItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(sale).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Delete(&entity.SaleItem{}, "sale_id = ?", sale.ID).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].SaleID = sale.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *saleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&entity.SaleItem{}, "sale_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Sale{}, "id = ?", id).Error
	})
}

func (r *saleRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{}).Where("user_id = ?", userID)

	if params.Search != "" {
		query = query.Where("invoice_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Preload("Items").
		Order("created_at DESC").
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}

// NextInvoiceSeq counts every sale row the user ever created, including
// soft-deleted ones, so invoice numbers are never reissued.
func (r *saleRepository) NextInvoiceSeq(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Unscoped().Model(&entity.Sale{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total + 1, err
}

func (r *saleRepository) ListItemsInPeriod(ctx context.Context, userID uuid.UUID, start, end *time.Time) ([]entity.SaleItem, error) {
	var items []entity.SaleItem

	query := r.db.WithContext(ctx).Model(&entity.SaleItem{}).
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.user_id = ? AND sales.deleted_at IS NULL", userID)

	if start != nil {
		query = query.Where("sales.created_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("sales.created_at <= ?", *end)
	}

	err := query.
		Preload("Sale").
		Preload("Product").
		Order("sales.created_at DESC").
		Find(&items).Error

	return items, err
}

func (r *saleRepository) SumRevenueInPeriod(ctx context.Context, userID uuid.UUID, start, end *time.Time) (int64, int64, error) {
	var result struct {
		Revenue int64
		Count   int64
	}

	query := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("user_id = ?", userID)

	if start != nil {
		query = query.Where("created_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("created_at <= ?", *end)
	}

	err := query.
		Select("COALESCE(SUM(total_price), 0) AS revenue, COUNT(*) AS count").
		Scan(&result).Error

	return result.Revenue, result.Count, err
}

func (r *saleRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Customer").
		Order("created_at DESC").
		Limit(limit).
		Find(&sales).Error
	return sales, err
}
