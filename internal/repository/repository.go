package repository

import (
	"context"

	"stockroom/internal/model"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List returns every product in insertion order.
	List(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Create appends products in one write. Nothing is written when any ID
	// is already taken.
	Create(ctx context.Context, products ...model.Product) error

	// Replace overwrites the product with the same ID.
	Replace(ctx context.Context, product model.Product) error

	// Delete removes a product and returns what was removed.
	Delete(ctx context.Context, id string) (*model.Product, error)
}

// NameRepository holds an ordered set of unique names (categories or vendors).
type NameRepository interface {
	// List returns the names in insertion order.
	List(ctx context.Context) ([]string, error)

	// Add appends the name returned by check, which sees the current names
	// and may reject the addition. It returns the updated list.
	Add(ctx context.Context, check func(existing []string) (string, error)) ([]string, error)

	// Remove deletes name and returns the updated list.
	Remove(ctx context.Context, name string) ([]string, error)

	// Seed stores names when the collection is empty.
	Seed(ctx context.Context, names []string) error
}

// CustomerRepository defines the interface for customer data access operations.
type CustomerRepository interface {
	List(ctx context.Context) ([]model.Customer, error)
	GetByID(ctx context.Context, id string) (*model.Customer, error)
	Create(ctx context.Context, customer model.Customer) error
	Replace(ctx context.Context, customer model.Customer) error
	Delete(ctx context.Context, id string) error
}

// SettingsRepository stores the singleton company settings.
type SettingsRepository interface {
	// Get returns the saved settings, or defaults when none were saved.
	Get(ctx context.Context) (model.Settings, error)

	// Update applies fn to the current settings and saves the result.
	Update(ctx context.Context, fn func(*model.Settings)) (model.Settings, error)
}

// UserRepository defines the interface for login account access.
type UserRepository interface {
	// FindByUsername returns the user with the exact username.
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*model.User, error)

	// Count returns the number of accounts.
	Count(ctx context.Context) (int, error)

	// CreateIfEmpty stores user only when there are no users yet. It
	// reports whether the user was created.
	CreateIfEmpty(ctx context.Context, user model.User) (bool, error)
}
