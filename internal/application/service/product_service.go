package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/winprintid/pos-api/internal/domain/entity"
	"github.com/winprintid/pos-api/internal/domain/enum"
	"github.com/winprintid/pos-api/internal/domain/repository"
	"github.com/winprintid/pos-api/pkg/apperror"
	"github.com/winprintid/pos-api/pkg/pagination"
)

// ProductService handles catalog operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	UserID       uuid.UUID
	Name         string
	PricingType  enum.PricingType
	PricePerUnit int64
	CostPrice    *int64
	Notes        *string
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if !input.PricingType.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid pricing type")
	}
	if input.PricePerUnit < 0 {
		return nil, apperror.NewBadRequestError("Price per unit cannot be negative")
	}
	if input.CostPrice != nil && *input.CostPrice < 0 {
		return nil, apperror.NewBadRequestError("Cost price cannot be negative")
	}

	product := &entity.Product{
		UserID:       input.UserID,
		Name:         input.Name,
		PricingType:  input.PricingType,
		PricePerUnit: input.PricePerUnit,
		CostPrice:    input.CostPrice,
		Notes:        input.Notes,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, userID, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.UserID != userID {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists a user's products
func (s *ProductService) ListProducts(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, userID, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	UserID       uuid.UUID
	ID           uuid.UUID
	Name         *string
	PricingType  *enum.PricingType
	PricePerUnit *int64
	CostPrice    *int64
	ClearCost    bool
	Notes        *string
}

// UpdateProduct updates a product. Historical sale items keep their
// snapshotted rates, so catalog edits never rewrite past totals.
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.UserID != input.UserID {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.PricingType != nil {
		if !input.PricingType.IsValid() {
			return nil, apperror.NewBadRequestError("Invalid pricing type")
		}
		product.PricingType = *input.PricingType
	}
	if input.PricePerUnit != nil {
		if *input.PricePerUnit < 0 {
			return nil, apperror.NewBadRequestError("Price per unit cannot be negative")
		}
		product.PricePerUnit = *input.PricePerUnit
	}
	if input.ClearCost {
		product.CostPrice = nil
	} else if input.CostPrice != nil {
		if *input.CostPrice < 0 {
			return nil, apperror.NewBadRequestError("Cost price cannot be negative")
		}
		product.CostPrice = input.CostPrice
	}
	if input.Notes != nil {
		product.Notes = input.Notes
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, userID, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil || product.UserID != userID {
		return apperror.NewNotFoundError("Product")
	}

	return s.productRepo.Delete(ctx, id)
}
