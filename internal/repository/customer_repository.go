package repository

import (
	"context"

	"stockroom/internal/model"
	"stockroom/internal/store"

	"github.com/rs/zerolog"
)

func customerID(c model.Customer) string { return c.ID }

type customerRepository struct {
	customers *collection[model.Customer]
	logger    zerolog.Logger
}

// NewCustomerRepository creates a customer repository persisted through s.
func NewCustomerRepository(s store.Store, logger zerolog.Logger) CustomerRepository {
	logger = logger.With().Str("repository", "customer").Logger()
	return &customerRepository{
		customers: newCollection(store.Customers, s, customerID, logger),
		logger:    logger,
	}
}

func (r *customerRepository) List(ctx context.Context) ([]model.Customer, error) {
	return r.customers.all(ctx)
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	c, ok, err := r.customers.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound("Customer", id)
	}
	return &c, nil
}

func (r *customerRepository) Create(ctx context.Context, customer model.Customer) error {
	return r.customers.update(ctx, func(items []model.Customer) ([]model.Customer, error) {
		if position(items, customerID, customer.ID) >= 0 {
			return nil, duplicate("Customer", customer.ID)
		}
		return append(items, customer), nil
	})
}

func (r *customerRepository) Replace(ctx context.Context, customer model.Customer) error {
	return r.customers.update(ctx, func(items []model.Customer) ([]model.Customer, error) {
		i := position(items, customerID, customer.ID)
		if i < 0 {
			return nil, notFound("Customer", customer.ID)
		}
		items[i] = customer
		return items, nil
	})
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	return r.customers.update(ctx, func(items []model.Customer) ([]model.Customer, error) {
		i := position(items, customerID, id)
		if i < 0 {
			return nil, notFound("Customer", id)
		}
		return append(items[:i], items[i+1:]...), nil
	})
}
