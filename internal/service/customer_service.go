package service

import (
	"context"
	"time"

	"stockroom/internal/inventory"
	"stockroom/internal/model"
	"stockroom/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type customerService struct {
	customerRepo repository.CustomerRepository
	now          Clock
	logger       zerolog.Logger
}

// NewCustomerService creates a new customer service.
func NewCustomerService(customerRepo repository.CustomerRepository, logger zerolog.Logger) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		now:          time.Now,
		logger:       logger.With().Str("service", "customer").Logger(),
	}
}

func (s *customerService) List(ctx context.Context) ([]model.Customer, error) {
	return s.customerRepo.List(ctx)
}

func (s *customerService) Create(ctx context.Context, req *model.CustomerRequest) (*model.Customer, error) {
	if err := inventory.ValidateCustomer(req).Err(); err != nil {
		return nil, err
	}

	c := model.Customer{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Address:      req.Address,
		MobileNumber: req.MobileNumber,
		ProductCodes: req.ProductCodes,
		Date:         req.Date,
		Time:         req.Time,
		CreatedAt:    s.now(),
	}
	if err := s.customerRepo.Create(ctx, c); err != nil {
		s.logger.Error().Err(err).Msg("failed to create customer")
		return nil, err
	}

	s.logger.Info().Str("customer_id", c.ID).Msg("customer created")
	return &c, nil
}

func (s *customerService) Update(ctx context.Context, id string, req *model.CustomerRequest) (*model.Customer, error) {
	existing, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := inventory.ValidateCustomer(req).Err(); err != nil {
		return nil, err
	}

	now := s.now()
	c := *existing
	c.Name = req.Name
	c.Address = req.Address
	c.MobileNumber = req.MobileNumber
	c.ProductCodes = req.ProductCodes
	c.Date = req.Date
	c.Time = req.Time
	c.UpdatedAt = &now

	if err := s.customerRepo.Replace(ctx, c); err != nil {
		s.logger.Error().Err(err).Str("customer_id", id).Msg("failed to update customer")
		return nil, err
	}
	return &c, nil
}

func (s *customerService) Delete(ctx context.Context, id string) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("customer_id", id).Msg("customer deleted")
	return nil
}
