package cashflow

import (
	"context"
	"fmt"
	"time"

	"locafest/internal/core/types"
	"locafest/pkg/logger"
)

// Service provides business logic for the cash-flow ledger.
type Service struct {
	repo Repository
}

// NewService creates a new cash-flow service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Append records a manual ledger entry.
func (s *Service) Append(ctx context.Context, e *Entry) error {
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	if err := e.Validate(ctx); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return fmt.Errorf("append cash-flow entry: %w", err)
	}
	return nil
}

// List retrieves entries with filtering, newest first.
func (s *Service) List(ctx context.Context, filter Filter) ([]Entry, error) {
	return s.repo.List(ctx, filter)
}

// Summarize totals revenue, expense and balance for the filtered range.
func (s *Service) Summarize(ctx context.Context, filter Filter) (Summary, error) {
	return s.repo.Summarize(ctx, filter)
}

// RecordMaterialPurchase books the expense for a stock purchase. Runs inside
// the material-creation transaction.
func (s *Service) RecordMaterialPurchase(ctx context.Context, materialID int64, name string, amount types.Money) error {
	e := &Entry{
		Date:        time.Now(),
		Description: fmt.Sprintf("stock purchase: %s", name),
		Kind:        KindExpense,
		Amount:      amount,
		MaterialID:  &materialID,
	}
	if err := e.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Create(ctx, e)
}

// RecordEventRevenue books the incremental amount of a registered payment.
// Only the delta is posted, never the running total, so repeated partial
// payments are not double counted.
func (s *Service) RecordEventRevenue(ctx context.Context, eventID int64, eventName string, amount types.Money) error {
	e := &Entry{
		Date:        time.Now(),
		Description: fmt.Sprintf("event payment: %s", eventName),
		Kind:        KindRevenue,
		Amount:      amount,
		EventID:     &eventID,
	}
	if err := e.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Create(ctx, e)
}

// ReverseForEvent removes the revenue entries an event booked. Runs inside
// the event-deletion transaction; matching is by foreign key, so manual
// entries and entries of other events are never touched.
func (s *Service) ReverseForEvent(ctx context.Context, eventID int64) error {
	if err := s.repo.DeleteByEvent(ctx, eventID, KindRevenue); err != nil {
		return fmt.Errorf("reverse revenue for event %d: %w", eventID, err)
	}
	logger.Info(ctx, "reversed event revenue entries", "event_id", eventID)
	return nil
}
