package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/winprintid/pos-api/internal/domain/enum"
	"github.com/winprintid/pos-api/pkg/apperror"
)

func TestCreateProductValidation(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())
	userID := uuid.New()

	cases := []struct {
		name  string
		input CreateProductInput
	}{
		{"invalid pricing type", CreateProductInput{UserID: userID, Name: "X", PricingType: "weight", PricePerUnit: 100}},
		{"negative price", CreateProductInput{UserID: userID, Name: "X", PricingType: enum.PricingTypeQuantity, PricePerUnit: -1}},
		{"negative cost", CreateProductInput{UserID: userID, Name: "X", PricingType: enum.PricingTypeQuantity, PricePerUnit: 100, CostPrice: int64Ptr(-5)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), &tc.input)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
		})
	}
}

func TestCreateAndGetProduct(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())
	userID := uuid.New()

	created, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		UserID:       userID,
		Name:         "Flex Banner",
		PricingType:  enum.PricingTypeSize,
		PricePerUnit: 500,
		CostPrice:    int64Ptr(200),
	})
	require.NoError(t, err)

	got, err := svc.GetProduct(context.Background(), userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Flex Banner", got.Name)
	assert.Equal(t, enum.PricingTypeSize, got.PricingType)
}

func TestGetProductEnforcesOwnership(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())
	owner := uuid.New()

	created, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		UserID:       owner,
		Name:         "Sticker",
		PricingType:  enum.PricingTypeQuantity,
		PricePerUnit: 15000,
	})
	require.NoError(t, err)

	_, err = svc.GetProduct(context.Background(), uuid.New(), created.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestUpdateProductClearsCost(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())
	userID := uuid.New()

	created, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		UserID:       userID,
		Name:         "Sticker",
		PricingType:  enum.PricingTypeQuantity,
		PricePerUnit: 15000,
		CostPrice:    int64Ptr(6000),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(context.Background(), &UpdateProductInput{
		UserID:    userID,
		ID:        created.ID,
		ClearCost: true,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.CostPrice)
}
