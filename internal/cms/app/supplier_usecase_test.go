package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"simplylife/internal/cms/app"
	"simplylife/internal/cms/domain/entities"
)

const supplierID = "3f1c7d2e-5b6a-4c8d-9e0f-1a2b3c4d5e6f"

var products = []entities.SupplierProduct{
	{ID: "p-1", Name: "Assurance vie"},
	{ID: "p-2", Name: "SCPI rendement"},
}

func TestProductViewUsesCache(t *testing.T) {
	repo, cache := &mockSupplierRepository{}, &mockProductCache{}
	uc := app.NewSupplierUseCase(repo, cache)

	assoc := &entities.ProductAssociation{ProductID: "p-2", ProductName: "SCPI rendement", CategoryID: entities.CategorySCPI}
	repo.On("FindProductAssociation", mock.Anything, supplierID).Return(assoc, nil).Once()
	cache.On("Get", mock.Anything).Return(products, true, nil).Once()

	view, err := uc.ProductView(context.Background(), supplierID)
	require.NoError(t, err)
	assert.True(t, view.Toggled)
	assert.True(t, view.Visibility.OtherInformation)
	assert.False(t, view.Visibility.Enveloppe)
	assert.Equal(t, products, view.Products)
	repo.AssertNotCalled(t, "ListProducts", mock.Anything)
}

func TestProductViewWithoutSupplierID(t *testing.T) {
	repo, cache := &mockSupplierRepository{}, &mockProductCache{}
	uc := app.NewSupplierUseCase(repo, cache)

	repo.On("FindProductAssociation", mock.Anything, entities.PlaceholderSupplierID).Return(nil, nil).Once()
	cache.On("Get", mock.Anything).Return(nil, false, nil).Once()
	repo.On("ListProducts", mock.Anything).Return(products, nil).Once()
	cache.On("Set", mock.Anything, products).Return(nil).Once()

	view, err := uc.ProductView(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, view.Toggled)
	assert.Nil(t, view.Associated)
	assert.Equal(t, entities.FieldVisibility{}, view.Visibility)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestListProductsFallsBackWhenCacheFails(t *testing.T) {
	repo, cache := &mockSupplierRepository{}, &mockProductCache{}
	uc := app.NewSupplierUseCase(repo, cache)

	cache.On("Get", mock.Anything).Return(nil, false, errors.New("redis down")).Once()
	repo.On("ListProducts", mock.Anything).Return(products, nil).Once()
	cache.On("Set", mock.Anything, products).Return(errors.New("redis down")).Once()

	got, err := uc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, products, got)
}

func TestSetProduct(t *testing.T) {
	t.Run("known product", func(t *testing.T) {
		repo, cache := &mockSupplierRepository{}, &mockProductCache{}
		uc := app.NewSupplierUseCase(repo, cache)

		cache.On("Get", mock.Anything).Return(products, true, nil).Once()
		repo.On("SetProduct", mock.Anything, supplierID, "p-1").Return(nil).Once()

		require.NoError(t, uc.SetProduct(context.Background(), supplierID, "p-1"))
		repo.AssertExpectations(t)
	})

	t.Run("stale cache is refreshed", func(t *testing.T) {
		repo, cache := &mockSupplierRepository{}, &mockProductCache{}
		uc := app.NewSupplierUseCase(repo, cache)
		fresh := append([]entities.SupplierProduct{{ID: "p-3", Name: "Private equity"}}, products...)

		cache.On("Get", mock.Anything).Return(products, true, nil).Once()
		cache.On("Invalidate", mock.Anything).Return(nil).Once()
		repo.On("ListProducts", mock.Anything).Return(fresh, nil).Once()
		cache.On("Set", mock.Anything, fresh).Return(nil).Once()
		repo.On("SetProduct", mock.Anything, supplierID, "p-3").Return(nil).Once()

		require.NoError(t, uc.SetProduct(context.Background(), supplierID, "p-3"))
		cache.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("unknown product", func(t *testing.T) {
		repo, cache := &mockSupplierRepository{}, &mockProductCache{}
		uc := app.NewSupplierUseCase(repo, cache)

		cache.On("Get", mock.Anything).Return(products, true, nil).Once()
		cache.On("Invalidate", mock.Anything).Return(nil).Once()
		repo.On("ListProducts", mock.Anything).Return(products, nil).Once()
		cache.On("Set", mock.Anything, products).Return(nil).Once()

		err := uc.SetProduct(context.Background(), supplierID, "p-404")
		require.ErrorIs(t, err, entities.ErrSupplierProductNotFound)
		repo.AssertNotCalled(t, "SetProduct", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("clearing skips the product check", func(t *testing.T) {
		repo, cache := &mockSupplierRepository{}, &mockProductCache{}
		uc := app.NewSupplierUseCase(repo, cache)

		repo.On("SetProduct", mock.Anything, supplierID, "").Return(nil).Once()

		require.NoError(t, uc.SetProduct(context.Background(), supplierID, ""))
		cache.AssertNotCalled(t, "Get", mock.Anything)
	})
}

func TestListSuppliers(t *testing.T) {
	repo, cache := &mockSupplierRepository{}, &mockProductCache{}
	uc := app.NewSupplierUseCase(repo, cache)
	suppliers := []*entities.Supplier{{ID: "s-1", Name: "Primonial"}}

	repo.On("List", mock.Anything, entities.FilterSCPI).Return(suppliers, nil).Once()

	got, err := uc.ListSuppliers(context.Background(), entities.FilterSCPI)
	require.NoError(t, err)
	assert.Equal(t, suppliers, got)
}
