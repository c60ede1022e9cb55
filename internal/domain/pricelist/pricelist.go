// Package pricelist provides the table of named standing prices (services,
// labor, freight) used when composing quotes.
package pricelist

import (
	"context"
	"strings"

	"locafest/internal/core/apperror"
	"locafest/internal/core/types"
)

// Type of a standing price.
type Type string

const (
	TypeService Type = "service"
	TypeLabor   Type = "labor"
	TypeFreight Type = "freight"
	TypeOther   Type = "other"
)

// Price is one named row in the price table.
type Price struct {
	ID     int64       `db:"id" json:"id"`
	Name   string      `db:"name" json:"name"`
	Type   Type        `db:"type" json:"type"`
	Amount types.Money `db:"amount" json:"amount"`
}

// Validate checks invariants before persistence.
func (p *Price) Validate(ctx context.Context) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperror.NewValidation("price name is required")
	}
	switch p.Type {
	case TypeService, TypeLabor, TypeFreight, TypeOther:
	default:
		return apperror.NewValidation("invalid price type").WithDetail("value", string(p.Type))
	}
	if p.Amount.IsNegative() {
		return apperror.NewValidation("amount cannot be negative")
	}
	return nil
}

// Repository defines the interface for price persistence.
type Repository interface {
	Create(ctx context.Context, p *Price) error
	List(ctx context.Context) ([]Price, error)
	Update(ctx context.Context, p *Price) error
	Delete(ctx context.Context, id int64) error
}

// Service provides CRUD over the price table.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, p *Price) error {
	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) List(ctx context.Context) ([]Price, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, p *Price) error {
	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
