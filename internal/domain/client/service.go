package client

import (
	"context"

	"locafest/internal/core/apperror"
	"locafest/pkg/logger"
)

// Address is a postal-code lookup result.
type Address struct {
	CEP      string `json:"cep"`
	Street   string `json:"street"`
	District string `json:"district"`
	City     string `json:"city"`
	State    string `json:"state"`
}

// AddressLookup resolves a postal code to an address. The implementation
// calls an external service with an explicit timeout.
type AddressLookup interface {
	Lookup(ctx context.Context, cep string) (*Address, error)
}

// Service provides business logic for the client directory.
type Service struct {
	repo   Repository
	lookup AddressLookup
}

// NewService creates a new client service.
func NewService(repo Repository, lookup AddressLookup) *Service {
	return &Service{repo: repo, lookup: lookup}
}

// Create registers a client. Email and tax-id uniqueness is enforced by the
// database and surfaces as a duplicate error.
func (s *Service) Create(ctx context.Context, c *Client) error {
	c.Normalize()
	if err := c.Validate(ctx); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return err
	}
	logger.Info(ctx, "client created", "id", c.ID, "email", c.Email)
	return nil
}

// GetByID retrieves a client.
func (s *Service) GetByID(ctx context.Context, id int64) (*Client, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves clients with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Client, error) {
	return s.repo.List(ctx, filter)
}

// Update modifies a client's contact and address fields.
func (s *Service) Update(ctx context.Context, c *Client) error {
	c.Normalize()
	if err := c.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Update(ctx, c)
}

// Delete removes a client. Foreign keys block deletion while any quote or
// event references the row; the rejection surfaces as a conflict.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// LookupAddress resolves a postal code through the external lookup service.
func (s *Service) LookupAddress(ctx context.Context, cep string) (*Address, error) {
	cep = digitsOnly(cep)
	if len(cep) != 8 {
		return nil, apperror.NewValidation("postal code must have 8 digits")
	}
	return s.lookup.Lookup(ctx, cep)
}
