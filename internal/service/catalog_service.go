package service

import (
	"context"
	"strings"

	"stockroom/internal/inventory"
	"stockroom/internal/repository"

	"github.com/rs/zerolog"
)

// catalogService implements CatalogService for one of the name lists.
type catalogService struct {
	kind        string
	field       inventory.Field
	names       repository.NameRepository
	productRepo repository.ProductRepository
	lock        *CatalogLock
	logger      zerolog.Logger
}

// NewCategoryService manages the category list.
func NewCategoryService(names repository.NameRepository, productRepo repository.ProductRepository, lock *CatalogLock, logger zerolog.Logger) CatalogService {
	return newCatalogService("Category", inventory.CategoryField, names, productRepo, lock, logger)
}

// NewVendorService manages the vendor list.
func NewVendorService(names repository.NameRepository, productRepo repository.ProductRepository, lock *CatalogLock, logger zerolog.Logger) CatalogService {
	return newCatalogService("Vendor", inventory.VendorField, names, productRepo, lock, logger)
}

func newCatalogService(kind string, field inventory.Field, names repository.NameRepository, productRepo repository.ProductRepository, lock *CatalogLock, logger zerolog.Logger) *catalogService {
	return &catalogService{
		kind:        kind,
		field:       field,
		names:       names,
		productRepo: productRepo,
		lock:        lock,
		logger:      logger.With().Str("service", strings.ToLower(kind)).Logger(),
	}
}

func (s *catalogService) List(ctx context.Context) ([]string, error) {
	return s.names.List(ctx)
}

func (s *catalogService) Add(ctx context.Context, name string) ([]string, error) {
	names, err := s.names.Add(ctx, func(existing []string) (string, error) {
		return inventory.ValidateNewName(s.kind, name, existing)
	})
	if err != nil {
		s.logger.Debug().Err(err).Str("name", name).Msg("name rejected")
		return nil, err
	}
	s.logger.Info().Str("name", strings.TrimSpace(name)).Msg("name added")
	return names, nil
}

func (s *catalogService) Remove(ctx context.Context, name string) ([]string, error) {
	s.lock.mu.Lock()
	defer s.lock.mu.Unlock()

	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := inventory.CheckRemovable(s.kind, s.field, name, products); err != nil {
		s.logger.Debug().Str("name", name).Msg("name still in use")
		return nil, err
	}

	names, err := s.names.Remove(ctx, name)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("name", name).Msg("name removed")
	return names, nil
}
