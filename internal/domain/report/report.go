// Package report aggregates dashboard figures and exports ledgers to XLSX.
package report

import (
	"context"

	"locafest/internal/domain/cashflow"
	"locafest/internal/domain/event"
	"locafest/internal/domain/material"
)

// StatusCount is one slice of the event pipeline.
type StatusCount struct {
	Status event.Status `db:"status" json:"status"`
	Count  int64        `db:"count" json:"count"`
}

// Repository answers the aggregate queries that do not belong to any single
// domain repository.
type Repository interface {
	EventCountsByStatus(ctx context.Context) ([]StatusCount, error)
}

// CashLedger is the slice of the cash-flow service reports read from.
type CashLedger interface {
	List(ctx context.Context, filter cashflow.Filter) ([]cashflow.Entry, error)
	Summarize(ctx context.Context, filter cashflow.Filter) (cashflow.Summary, error)
}

// Inventory lists materials for the stock export.
type Inventory interface {
	List(ctx context.Context, filter material.ListFilter) ([]material.Material, error)
}

// Dashboard is the landing-page aggregate.
type Dashboard struct {
	EventsByStatus []StatusCount    `json:"eventsByStatus"`
	CashFlow       cashflow.Summary `json:"cashFlow"`
}

// Service assembles reports from the domain services.
type Service struct {
	repo      Repository
	cash      CashLedger
	inventory Inventory
}

func NewService(repo Repository, cash CashLedger, inventory Inventory) *Service {
	return &Service{repo: repo, cash: cash, inventory: inventory}
}

// Dashboard returns the pipeline breakdown and the all-time cash summary.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	counts, err := s.repo.EventCountsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	summary, err := s.cash.Summarize(ctx, cashflow.Filter{})
	if err != nil {
		return nil, err
	}
	return &Dashboard{EventsByStatus: counts, CashFlow: summary}, nil
}
