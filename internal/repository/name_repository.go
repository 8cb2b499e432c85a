package repository

import (
	"context"
	"slices"

	"stockroom/internal/store"

	"github.com/rs/zerolog"
)

func identity(s string) string { return s }

// nameRepository implements NameRepository over a collection of strings.
type nameRepository struct {
	kind   string
	names  *collection[string]
	logger zerolog.Logger
}

// NewCategoryRepository creates the category list repository.
func NewCategoryRepository(s store.Store, logger zerolog.Logger) NameRepository {
	return newNameRepository("Category", store.Categories, s, logger)
}

// NewVendorRepository creates the vendor list repository.
func NewVendorRepository(s store.Store, logger zerolog.Logger) NameRepository {
	return newNameRepository("Vendor", store.Vendors, s, logger)
}

func newNameRepository(kind, collectionName string, s store.Store, logger zerolog.Logger) *nameRepository {
	logger = logger.With().Str("repository", collectionName).Logger()
	return &nameRepository{
		kind:   kind,
		names:  newCollection(collectionName, s, identity, logger),
		logger: logger,
	}
}

// List returns the names in insertion order.
func (r *nameRepository) List(ctx context.Context) ([]string, error) {
	return r.names.all(ctx)
}

// Add appends the name produced by check.
func (r *nameRepository) Add(ctx context.Context, check func(existing []string) (string, error)) ([]string, error) {
	var out []string
	err := r.names.update(ctx, func(items []string) ([]string, error) {
		name, err := check(slices.Clone(items))
		if err != nil {
			return nil, err
		}
		if slices.Contains(items, name) {
			return nil, duplicate(r.kind, name)
		}
		out = append(items, name)
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(out), nil
}

// Remove deletes name and returns the updated list.
func (r *nameRepository) Remove(ctx context.Context, name string) ([]string, error) {
	var out []string
	err := r.names.update(ctx, func(items []string) ([]string, error) {
		i := slices.Index(items, name)
		if i < 0 {
			return nil, notFound(r.kind, name)
		}
		out = slices.Delete(items, i, i+1)
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(out), nil
}

// Seed stores names when the collection is empty.
func (r *nameRepository) Seed(ctx context.Context, names []string) error {
	seeded := false
	err := r.names.update(ctx, func(items []string) ([]string, error) {
		if len(items) > 0 {
			return nil, errNoChange
		}
		seeded = true
		return slices.Clone(names), nil
	})
	if err == nil && seeded {
		r.logger.Info().Int("count", len(names)).Msg("seeded default names")
	}
	return err
}
