package service

import (
	"context"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/winprintid/pos-api/internal/domain/entity"
	"github.com/winprintid/pos-api/internal/domain/enum"
	"github.com/winprintid/pos-api/internal/domain/repository"
	"github.com/winprintid/pos-api/pkg/apperror"
	"github.com/winprintid/pos-api/pkg/pagination"
)

// fakeSaleRepo is an in-memory SaleRepository for service tests.
type fakeSaleRepo struct {
	sales map[uuid.UUID]*entity.Sale
	items map[uuid.UUID][]entity.SaleItem
	seq   int64
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{
		sales: make(map[uuid.UUID]*entity.Sale),
		items: make(map[uuid.UUID][]entity.SaleItem),
	}
}

func (r *fakeSaleRepo) CreateWithItems(ctx context.Context, sale *entity.Sale, items []entity.SaleItem) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now()
	}
	saved := *sale
	r.sales[sale.ID] = &saved
	stored := make([]entity.SaleItem, len(items))
	for i, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.SaleID = sale.ID
		stored[i] = item
	}
	r.items[sale.ID] = stored
	return nil
}

func (r *fakeSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	copied := *sale
	return &copied, nil
}

func (r *fakeSaleRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	copied := *sale
	copied.Items = append([]entity.SaleItem(nil), r.items[id]...)
	return &copied, nil
}

func (r *fakeSaleRepo) ReplaceItems(ctx context.Context, sale *entity.Sale, items []entity.SaleItem) error {
	saved := *sale
	r.sales[sale.ID] = &saved
	stored := make([]entity.SaleItem, len(items))
	for i, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.SaleID = sale.ID
		stored[i] = item
	}
	r.items[sale.ID] = stored
	return nil
}

func (r *fakeSaleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.sales, id)
	delete(r.items, id)
	return nil
}

func (r *fakeSaleRepo) List(ctx context.Context, userID uuid.UUID, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	var out []entity.Sale
	for _, sale := range r.sales {
		if sale.UserID == userID {
			out = append(out, *sale)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeSaleRepo) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, sale := range r.sales {
		if sale.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeSaleRepo) NextInvoiceSeq(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.seq++
	return r.seq, nil
}

func (r *fakeSaleRepo) ListItemsInPeriod(ctx context.Context, userID uuid.UUID, start, end *time.Time) ([]entity.SaleItem, error) {
	var out []entity.SaleItem
	for saleID, items := range r.items {
		sale := r.sales[saleID]
		if sale == nil || sale.UserID != userID {
			continue
		}
		if start != nil && sale.CreatedAt.Before(*start) {
			continue
		}
		if end != nil && sale.CreatedAt.After(*end) {
			continue
		}
		for _, item := range items {
			item.Sale = *sale
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Sale.CreatedAt.After(out[j].Sale.CreatedAt)
	})
	return out, nil
}

func (r *fakeSaleRepo) SumRevenueInPeriod(ctx context.Context, userID uuid.UUID, start, end *time.Time) (int64, int64, error) {
	var revenue, count int64
	for _, sale := range r.sales {
		if sale.UserID != userID {
			continue
		}
		if start != nil && sale.CreatedAt.Before(*start) {
			continue
		}
		if end != nil && sale.CreatedAt.After(*end) {
			continue
		}
		revenue += sale.TotalPrice
		count++
	}
	return revenue, count, nil
}

func (r *fakeSaleRepo) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]entity.Sale, error) {
	var out []entity.Sale
	for _, sale := range r.sales {
		if sale.UserID == userID {
			out = append(out, *sale)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeProductRepo is an in-memory ProductRepository for service tests.
type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	seen := make(map[uuid.UUID]bool)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Product, int64, error) {
	var out []entity.Product
	for _, p := range r.products {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.products {
		if p.UserID == userID {
			n++
		}
	}
	return n, nil
}

// fakeCustomerRepo is an in-memory CustomerRepository for service tests.
type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
}

func newFakeCustomerRepo(customers ...*entity.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
	for _, c := range customers {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		r.customers[c.ID] = c
	}
	return r
}

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (r *fakeCustomerRepo) GetByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.Email != nil && *c.Email == email {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var out []entity.Customer
	for _, c := range r.customers {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeCustomerRepo) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, c := range r.customers {
		if c.UserID == userID {
			n++
		}
	}
	return n, nil
}

func int64Ptr(v int64) *int64       { return &v }
func float64Ptr(v float64) *float64 { return &v }

func TestCreateSaleComputesTotalsServerSide(t *testing.T) {
	userID := uuid.New()

	sticker := &entity.Product{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         "Sticker Pack",
		PricingType:  enum.PricingTypeQuantity,
		PricePerUnit: 15000,
		CostPrice:    int64Ptr(6000),
	}
	banner := &entity.Product{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         "Flex Banner",
		PricingType:  enum.PricingTypeSize,
		PricePerUnit: 500,
		CostPrice:    int64Ptr(200),
	}

	saleRepo := newFakeSaleRepo()
	svc := NewSaleService(saleRepo, newFakeProductRepo(sticker, banner), newFakeCustomerRepo())

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID: userID,
		Items: []SaleItemInput{
			{ProductID: sticker.ID, Quantity: 3},
			{ProductID: banner.ID, Quantity: 2, Width: float64Ptr(100), Height: float64Ptr(50)},
		},
	})
	require.NoError(t, err)
	require.Len(t, sale.Items, 2)

	// 3 x 15000 plus 100x50cm at 500/cm2 twice
	assert.Equal(t, int64(45000), sale.Items[0].ItemTotal)
	assert.Equal(t, int64(5000000), sale.Items[1].ItemTotal)
	assert.Equal(t, int64(5045000), sale.TotalPrice)
	assert.Equal(t, "INV-000001", sale.InvoiceNo)

	// Items snapshot the catalog rates at sale time
	assert.Equal(t, int64(15000), sale.Items[0].PricePerUnit)
	assert.Equal(t, int64(500), sale.Items[1].PricePerUnit)
	require.NotNil(t, sale.Items[1].CostPrice)
	assert.Equal(t, int64(200), *sale.Items[1].CostPrice)
}

func TestCreateSaleRoundsSizeLinesUp(t *testing.T) {
	userID := uuid.New()
	banner := &entity.Product{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         "Banner",
		PricingType:  enum.PricingTypeSize,
		PricePerUnit: 337,
	}

	saleRepo := newFakeSaleRepo()
	svc := NewSaleService(saleRepo, newFakeProductRepo(banner), newFakeCustomerRepo())

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID: userID,
		Items: []SaleItemInput{
			{ProductID: banner.ID, Quantity: 1, Width: float64Ptr(10), Height: float64Ptr(10)},
		},
	})
	require.NoError(t, err)
	// 10 x 10 x 337 = 33700, rounded up to the next thousand
	assert.Equal(t, int64(34000), sale.TotalPrice)
}

func TestCreateSaleRejectsIncompleteLine(t *testing.T) {
	userID := uuid.New()
	banner := &entity.Product{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         "Banner",
		PricingType:  enum.PricingTypeSize,
		PricePerUnit: 500,
	}

	svc := NewSaleService(newFakeSaleRepo(), newFakeProductRepo(banner), newFakeCustomerRepo())

	cases := []struct {
		name string
		item SaleItemInput
	}{
		{"zero quantity", SaleItemInput{ProductID: banner.ID, Quantity: 0, Width: float64Ptr(10), Height: float64Ptr(10)}},
		{"missing dimensions", SaleItemInput{ProductID: banner.ID, Quantity: 1}},
		{"zero width", SaleItemInput{ProductID: banner.ID, Quantity: 1, Width: float64Ptr(0), Height: float64Ptr(10)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
				UserID: userID,
				Items:  []SaleItemInput{tc.item},
			})
			require.Error(t, err)
			appErr := apperror.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, http.StatusBadRequest, appErr.Code)
		})
	}
}

func TestCreateSaleRequiresItems(t *testing.T) {
	svc := NewSaleService(newFakeSaleRepo(), newFakeProductRepo(), newFakeCustomerRepo())

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{UserID: uuid.New()})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestCreateSaleRejectsForeignProduct(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()
	product := &entity.Product{
		ID:           uuid.New(),
		UserID:       owner,
		Name:         "Sticker",
		PricingType:  enum.PricingTypeQuantity,
		PricePerUnit: 15000,
	}

	svc := NewSaleService(newFakeSaleRepo(), newFakeProductRepo(product), newFakeCustomerRepo())

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID: other,
		Items:  []SaleItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestCreateSaleRejectsForeignCustomer(t *testing.T) {
	userID := uuid.New()
	product := &entity.Product{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         "Sticker",
		PricingType:  enum.PricingTypeQuantity,
		PricePerUnit: 15000,
	}
	foreignCustomer := &entity.Customer{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Name:   "Someone Else's Customer",
	}

	svc := NewSaleService(newFakeSaleRepo(), newFakeProductRepo(product), newFakeCustomerRepo(foreignCustomer))

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID:     userID,
		CustomerID: &foreignCustomer.ID,
		Items:      []SaleItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestInvoiceNumbersAreSequential(t *testing.T) {
	userID := uuid.New()
	product := &entity.Product{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         "Sticker",
		PricingType:  enum.PricingTypeQuantity,
		PricePerUnit: 15000,
	}

	svc := NewSaleService(newFakeSaleRepo(), newFakeProductRepo(product), newFakeCustomerRepo())

	first, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID: userID,
		Items:  []SaleItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	second, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID: userID,
		Items:  []SaleItemInput{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-000001", first.InvoiceNo)
	assert.Equal(t, "INV-000002", second.InvoiceNo)
}

func TestUpdateSaleReplacesItemsAndReprices(t *testing.T) {
	userID := uuid.New()
	sticker := &entity.Product{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         "Sticker",
		PricingType:  enum.PricingTypeQuantity,
		PricePerUnit: 15000,
	}
	banner := &entity.Product{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         "Banner",
		PricingType:  enum.PricingTypeSize,
		PricePerUnit: 500,
	}

	saleRepo := newFakeSaleRepo()
	svc := NewSaleService(saleRepo, newFakeProductRepo(sticker, banner), newFakeCustomerRepo())

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID: userID,
		Items:  []SaleItemInput{{ProductID: sticker.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(45000), sale.TotalPrice)

	updated, err := svc.UpdateSale(context.Background(), &UpdateSaleInput{
		UserID: userID,
		ID:     sale.ID,
		Items: []SaleItemInput{
			{ProductID: banner.ID, Quantity: 2, Width: float64Ptr(100), Height: float64Ptr(50)},
		},
	})
	require.NoError(t, err)

	// Old items are gone, the new set is fully repriced
	require.Len(t, updated.Items, 1)
	assert.Equal(t, banner.ID, updated.Items[0].ProductID)
	assert.Equal(t, int64(5000000), updated.TotalPrice)
	// The invoice number survives edits
	assert.Equal(t, sale.InvoiceNo, updated.InvoiceNo)
}

func TestUpdateSaleClearsCustomer(t *testing.T) {
	userID := uuid.New()
	product := &entity.Product{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         "Sticker",
		PricingType:  enum.PricingTypeQuantity,
		PricePerUnit: 15000,
	}
	customer := &entity.Customer{ID: uuid.New(), UserID: userID, Name: "Budi"}

	saleRepo := newFakeSaleRepo()
	svc := NewSaleService(saleRepo, newFakeProductRepo(product), newFakeCustomerRepo(customer))

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID:     userID,
		CustomerID: &customer.ID,
		Items:      []SaleItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	require.NotNil(t, sale.CustomerID)

	updated, err := svc.UpdateSale(context.Background(), &UpdateSaleInput{
		UserID:        userID,
		ID:            sale.ID,
		ClearCustomer: true,
		Items:         []SaleItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Nil(t, updated.CustomerID)
}

func TestDeleteSaleEnforcesOwnership(t *testing.T) {
	userID := uuid.New()
	product := &entity.Product{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         "Sticker",
		PricingType:  enum.PricingTypeQuantity,
		PricePerUnit: 15000,
	}

	saleRepo := newFakeSaleRepo()
	svc := NewSaleService(saleRepo, newFakeProductRepo(product), newFakeCustomerRepo())

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID: userID,
		Items:  []SaleItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	err = svc.DeleteSale(context.Background(), uuid.New(), sale.ID)
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)

	require.NoError(t, svc.DeleteSale(context.Background(), userID, sale.ID))

	_, err = svc.GetSale(context.Background(), userID, sale.ID)
	require.Error(t, err)
}
