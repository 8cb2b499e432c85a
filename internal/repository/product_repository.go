package repository

import (
	"context"

	"stockroom/internal/model"
	"stockroom/internal/store"

	"github.com/rs/zerolog"
)

func productID(p model.Product) string { return p.ID }

// productRepository implements ProductRepository over the products collection.
type productRepository struct {
	products *collection[model.Product]
	logger   zerolog.Logger
}

// NewProductRepository creates a product repository persisted through s.
func NewProductRepository(s store.Store, logger zerolog.Logger) ProductRepository {
	logger = logger.With().Str("repository", "product").Logger()
	return &productRepository{
		products: newCollection(store.Products, s, productID, logger),
		logger:   logger,
	}
}

// List returns every product in insertion order.
func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	return r.products.all(ctx)
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	p, ok, err := r.products.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		r.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, notFound("Product", id)
	}
	return &p, nil
}

// Create appends products in one write.
func (r *productRepository) Create(ctx context.Context, products ...model.Product) error {
	if len(products) == 0 {
		return nil
	}
	err := r.products.update(ctx, func(items []model.Product) ([]model.Product, error) {
		seen := make(map[string]struct{}, len(items)+len(products))
		for _, p := range items {
			seen[p.ID] = struct{}{}
		}
		for _, p := range products {
			if _, dup := seen[p.ID]; dup {
				return nil, duplicate("Product", p.ID)
			}
			seen[p.ID] = struct{}{}
		}
		return append(items, products...), nil
	})
	if err != nil {
		return err
	}
	r.logger.Info().Int("count", len(products)).Msg("products created")
	return nil
}

// Replace overwrites the product with the same ID.
func (r *productRepository) Replace(ctx context.Context, product model.Product) error {
	return r.products.update(ctx, func(items []model.Product) ([]model.Product, error) {
		i := position(items, productID, product.ID)
		if i < 0 {
			return nil, notFound("Product", product.ID)
		}
		items[i] = product
		return items, nil
	})
}

// Delete removes a product and returns it.
func (r *productRepository) Delete(ctx context.Context, id string) (*model.Product, error) {
	var removed model.Product
	err := r.products.update(ctx, func(items []model.Product) ([]model.Product, error) {
		i := position(items, productID, id)
		if i < 0 {
			return nil, notFound("Product", id)
		}
		removed = items[i]
		return append(items[:i], items[i+1:]...), nil
	})
	if err != nil {
		return nil, err
	}
	r.logger.Info().Str("product_id", id).Msg("product deleted")
	return &removed, nil
}
