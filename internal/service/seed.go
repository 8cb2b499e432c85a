package service

import (
	"context"
	"fmt"

	"stockroom/internal/repository"
)

// DefaultCategories seeds an empty category list.
var DefaultCategories = []string{
	"Electronics", "Clothing", "Books", "Home & Garden",
	"Sports", "Automotive", "Health & Beauty", "Toys",
}

// DefaultVendors seeds an empty vendor list.
var DefaultVendors = []string{
	"Amazon", "Walmart", "Target", "Best Buy",
	"Costco", "Home Depot", "Apple", "Samsung",
}

// SeedCatalog fills empty category and vendor lists with the defaults.
func SeedCatalog(ctx context.Context, categories, vendors repository.NameRepository) error {
	if err := categories.Seed(ctx, DefaultCategories); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	if err := vendors.Seed(ctx, DefaultVendors); err != nil {
		return fmt.Errorf("failed to seed vendors: %w", err)
	}
	return nil
}
