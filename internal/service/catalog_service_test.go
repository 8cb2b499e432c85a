package service

import (
	"context"
	"slices"
	"sync"
	"testing"

	"stockroom/internal/model"
	"stockroom/internal/repository"
	"stockroom/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_Add(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		input       string
		existing    []string
		expectNames []string
		expectErr   error
	}{
		{name: "Appends trimmed name", input: "  Garden ", existing: []string{"Books"}, expectNames: []string{"Books", "Garden"}},
		{name: "Blank name", input: "   ", existing: []string{"Books"}, expectErr: model.ErrValidation},
		{name: "Duplicate name", input: "Books", existing: []string{"Books"}, expectErr: model.ErrConflict},
		{name: "Case differs is a new name", input: "books", existing: []string{"Books"}, expectNames: []string{"Books", "books"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names := new(MockNameRepository)
			names.On("Add", ctx).Return(tt.existing, nil)
			svc := NewCategoryService(names, new(MockProductRepository), NewCatalogLock(), zerolog.Nop())

			got, err := svc.Add(ctx, tt.input)

			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectNames, got)
		})
	}
}

func TestCatalogService_Remove(t *testing.T) {
	ctx := context.Background()
	products := []model.Product{{ID: "p1", Category: "Books", Vendor: "Amazon"}}

	t.Run("Category in use", func(t *testing.T) {
		names := new(MockNameRepository)
		productRepo := new(MockProductRepository)
		productRepo.On("List", ctx).Return(products, nil)
		svc := NewCategoryService(names, productRepo, NewCatalogLock(), zerolog.Nop())

		_, err := svc.Remove(ctx, "Books")

		require.ErrorIs(t, err, model.ErrConflict)
		assert.Contains(t, err.Error(), "category")
		names.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
	})

	t.Run("Vendor in use", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		productRepo.On("List", ctx).Return(products, nil)
		svc := NewVendorService(new(MockNameRepository), productRepo, NewCatalogLock(), zerolog.Nop())

		_, err := svc.Remove(ctx, "Amazon")

		assert.ErrorIs(t, err, model.ErrConflict)
	})

	t.Run("Unused name is removed", func(t *testing.T) {
		names := new(MockNameRepository)
		names.On("Remove", ctx, "Books").Return([]string{"Toys"}, nil)
		productRepo := new(MockProductRepository)
		productRepo.On("List", ctx).Return(products, nil)
		svc := NewVendorService(names, productRepo, NewCatalogLock(), zerolog.Nop())

		got, err := svc.Remove(ctx, "Books")

		require.NoError(t, err)
		assert.Equal(t, []string{"Toys"}, got)
		names.AssertExpectations(t)
	})

	t.Run("Unknown name", func(t *testing.T) {
		names := new(MockNameRepository)
		names.On("Remove", ctx, "Nope").Return(nil, model.NewNotFoundError("Category", "Nope"))
		productRepo := new(MockProductRepository)
		productRepo.On("List", ctx).Return(nil, nil)
		svc := NewCategoryService(names, productRepo, NewCatalogLock(), zerolog.Nop())

		_, err := svc.Remove(ctx, "Nope")

		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestCatalogService_RemoveRacesProductCreate(t *testing.T) {
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		s := store.NewMemoryStore()
		products := repository.NewProductRepository(s, zerolog.Nop())
		categories := repository.NewCategoryRepository(s, zerolog.Nop())
		vendors := repository.NewVendorRepository(s, zerolog.Nop())
		require.NoError(t, SeedCatalog(ctx, categories, vendors))

		lock := NewCatalogLock()
		catalog := NewCategoryService(categories, products, lock, zerolog.Nop())
		productSvc := NewProductService(products, categories, vendors, lock, new(MockImageStore),
			UploadLimits{ImageMaxBytes: 1 << 20, CSVMaxBytes: 1 << 20}, zerolog.Nop())

		var (
			wg        sync.WaitGroup
			start     = make(chan struct{})
			removeErr error
			createErr error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			_, removeErr = catalog.Remove(ctx, "Books")
		}()
		go func() {
			defer wg.Done()
			<-start
			_, createErr = productSvc.Create(ctx, model.ProductInput{
				Name: "Novel", Category: "Books", Vendor: "Amazon",
				BuyingPrice: "10", SellingPrice: "12", Quantity: "3",
			}, nil)
		}()
		close(start)
		wg.Wait()

		assert.True(t, (removeErr == nil) != (createErr == nil),
			"exactly one of remove and create succeeds: remove=%v create=%v", removeErr, createErr)

		stored, err := products.List(ctx)
		require.NoError(t, err)
		names, err := categories.List(ctx)
		require.NoError(t, err)
		for _, p := range stored {
			assert.True(t, slices.Contains(names, p.Category), "product %s points at removed category %q", p.ID, p.Category)
		}
	}
}

func TestSeedCatalog(t *testing.T) {
	ctx := context.Background()
	categories := new(MockNameRepository)
	vendors := new(MockNameRepository)
	categories.On("Seed", ctx, DefaultCategories).Return(nil)
	vendors.On("Seed", ctx, DefaultVendors).Return(nil)

	require.NoError(t, SeedCatalog(ctx, categories, vendors))

	categories.AssertExpectations(t)
	vendors.AssertExpectations(t)
}
