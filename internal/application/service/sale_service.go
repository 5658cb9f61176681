package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/winprintid/pos-api/internal/domain/entity"
	"github.com/winprintid/pos-api/internal/domain/repository"
	"github.com/winprintid/pos-api/pkg/apperror"
	"github.com/winprintid/pos-api/pkg/pagination"
	"github.com/winprintid/pos-api/pkg/pricing"
	"github.com/winprintid/pos-api/pkg/utils"
)

// SaleService handles sale transactions. All line totals are computed here
// through the pricing package; clients never supply monetary amounts.
type SaleService struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

// SaleItemInput represents a line item in a sale request
type SaleItemInput struct {
	ProductID   uuid.UUID
	Quantity    int
	Width       *float64
	Height      *float64
	Description *string
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	UserID     uuid.UUID
	CustomerID *uuid.UUID
	Items      []SaleItemInput
}

// CreateSale prices the submitted items, verifies every line is complete,
// and persists the sale with its items in one transaction.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Sale must have at least one item")
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil || customer.UserID != input.UserID {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	items, total, err := s.priceItems(ctx, input.UserID, input.Items)
	if err != nil {
		return nil, err
	}

	seq, err := s.saleRepo.NextInvoiceSeq(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	sale := &entity.Sale{
		UserID:     input.UserID,
		CustomerID: input.CustomerID,
		InvoiceNo:  utils.FormatInvoiceNo(seq),
		TotalPrice: total,
	}

	if err := s.saleRepo.CreateWithItems(ctx, sale, items); err != nil {
		return nil, err
	}

	return s.saleRepo.GetWithDetails(ctx, sale.ID)
}

// priceItems resolves products in one batch, prices each line through the
// shared engine, and rejects the request if any line is incomplete. The
// returned total is the exact sum of the item totals.
func (s *SaleService) priceItems(ctx context.Context, userID uuid.UUID, inputs []SaleItemInput) ([]entity.SaleItem, int64, error) {
	productIDs := make([]uuid.UUID, len(inputs))
	for i, item := range inputs {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, 0, err
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	var total int64
	items := make([]entity.SaleItem, 0, len(inputs))

	for i, item := range inputs {
		product, exists := productMap[item.ProductID]
		if !exists || product.UserID != userID {
			return nil, 0, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}

		line := pricing.LineInput{
			PricingType:  product.PricingType,
			PricePerUnit: product.PricePerUnit,
			CostPrice:    product.CostPrice,
			Quantity:     item.Quantity,
		}
		if item.Width != nil {
			line.Width = *item.Width
		}
		if item.Height != nil {
			line.Height = *item.Height
		}

		res := pricing.PriceLine(line)
		if res.Incomplete {
			return nil, 0, apperror.NewBadRequestError(
				fmt.Sprintf("Item %d is incomplete: quantity and, for size pricing, width and height must be positive", i+1))
		}

		total += res.Total
		items = append(items, entity.SaleItem{
			ProductID:    product.ID,
			PricingType:  product.PricingType,
			Quantity:     item.Quantity,
			Width:        item.Width,
			Height:       item.Height,
			Description:  item.Description,
			PricePerUnit: product.PricePerUnit,
			CostPrice:    product.CostPrice,
			ItemTotal:    res.Total,
		})
	}

	return items, total, nil
}

// GetSale retrieves a sale with its customer and items resolved
func (s *SaleService) GetSale(ctx context.Context, userID, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil || sale.UserID != userID {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists a user's sales with filtering
func (s *SaleService) ListSales(ctx context.Context, userID uuid.UUID, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// UpdateSaleInput represents the update sale input. The item list is a
// full replacement: the previous item set is discarded and reinserted.
type UpdateSaleInput struct {
	UserID        uuid.UUID
	ID            uuid.UUID
	CustomerID    *uuid.UUID
	ClearCustomer bool
	Items         []SaleItemInput
}

// UpdateSale reprices the submitted item set and replaces the sale's items
// wholesale. Repricing uses the product's current catalog rates; the new
// items carry fresh snapshots.
func (s *SaleService) UpdateSale(ctx context.Context, input *UpdateSaleInput) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if sale == nil || sale.UserID != input.UserID {
		return nil, apperror.NewNotFoundError("Sale")
	}

	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Sale must have at least one item")
	}

	if input.ClearCustomer {
		sale.CustomerID = nil
	} else if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil || customer.UserID != input.UserID {
			return nil, apperror.NewNotFoundError("Customer")
		}
		sale.CustomerID = input.CustomerID
	}

	items, total, err := s.priceItems(ctx, input.UserID, input.Items)
	if err != nil {
		return nil, err
	}

	sale.TotalPrice = total
	sale.Customer = nil

	if err := s.saleRepo.ReplaceItems(ctx, sale, items); err != nil {
		return nil, err
	}

	return s.saleRepo.GetWithDetails(ctx, sale.ID)
}

// DeleteSale deletes a sale and its items
func (s *SaleService) DeleteSale(ctx context.Context, userID, id uuid.UUID) error {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sale == nil || sale.UserID != userID {
		return apperror.NewNotFoundError("Sale")
	}

	return s.saleRepo.Delete(ctx, id)
}
