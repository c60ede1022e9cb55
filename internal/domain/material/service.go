package material

import (
	"context"
	"fmt"

	"locafest/internal/core/apperror"
	"locafest/internal/core/tx"
	"locafest/internal/core/types"
	"locafest/internal/domain/activity"
	"locafest/pkg/logger"
)

// ExpenseBook posts purchase expenses to the cash-flow ledger.
type ExpenseBook interface {
	RecordMaterialPurchase(ctx context.Context, materialID int64, name string, amount types.Money) error
}

// ImageStore removes stored material images when the owning row goes away.
type ImageStore interface {
	Remove(path string) error
}

// Service provides business logic for the inventory ledger.
type Service struct {
	repo     Repository
	expenses ExpenseBook
	files    ImageStore
	activity activity.Recorder
	txm      tx.Manager
}

// NewService creates a new material service.
func NewService(repo Repository, expenses ExpenseBook, files ImageStore, rec activity.Recorder, txm tx.Manager) *Service {
	return &Service{
		repo:     repo,
		expenses: expenses,
		files:    files,
		activity: rec,
		txm:      txm,
	}
}

// Create registers a new material. If the purchase price and initial quantity
// are both positive, the purchase expense is booked atomically with the insert.
func (s *Service) Create(ctx context.Context, m *Material) error {
	m.Normalize()
	if err := m.Validate(ctx); err != nil {
		return err
	}

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.repo.NameExists(ctx, m.Name)
		if err != nil {
			return fmt.Errorf("check name: %w", err)
		}
		if exists {
			return apperror.NewDuplicate("material", "name", m.Name)
		}

		if err := s.repo.Create(ctx, m); err != nil {
			return fmt.Errorf("create material: %w", err)
		}

		if m.PurchasePrice.IsPositive() && m.Quantity.IsPositive() {
			cost := m.PurchasePrice.Mul(m.Quantity)
			if err := s.expenses.RecordMaterialPurchase(ctx, m.ID, m.Name, cost); err != nil {
				return fmt.Errorf("book purchase expense: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.activity.Record(ctx, activity.KindMaterialCreated, &m.ID,
		fmt.Sprintf("material %q registered with %s %s on hand", m.Name, m.Quantity, m.Unit))
	logger.Info(ctx, "material created", "id", m.ID, "name", m.Name)
	return nil
}

// GetByID retrieves a material.
func (s *Service) GetByID(ctx context.Context, id int64) (*Material, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves materials with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Material, error) {
	return s.repo.List(ctx, filter)
}

// Update modifies a material's descriptive fields and prices.
func (s *Service) Update(ctx context.Context, m *Material) error {
	m.Normalize()
	if err := m.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Update(ctx, m)
}

// SetImage replaces the stored image path, removing the previous file.
func (s *Service) SetImage(ctx context.Context, id int64, path string) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m.ImagePath != nil && *m.ImagePath != path {
		if err := s.files.Remove(*m.ImagePath); err != nil {
			logger.Warn(ctx, "failed to remove previous material image", "path", *m.ImagePath, "error", err)
		}
	}
	m.ImagePath = &path
	return s.repo.Update(ctx, m)
}

// Delete removes a material. Rows referenced by kit compositions or event
// line items are protected by foreign keys and surface as a conflict.
func (s *Service) Delete(ctx context.Context, id int64) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if m.ImagePath != nil {
		if err := s.files.Remove(*m.ImagePath); err != nil {
			logger.Warn(ctx, "failed to remove material image", "path", *m.ImagePath, "error", err)
		}
	}

	s.activity.Record(ctx, activity.KindMaterialDeleted, &id,
		fmt.Sprintf("material %q removed from inventory", m.Name))
	return nil
}

// CheckAvailable verifies on-hand quantity without mutating it, taking the
// row lock so the answer holds for the rest of the caller's transaction.
func (s *Service) CheckAvailable(ctx context.Context, id int64, qty types.Quantity) (*Material, error) {
	m, err := s.repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.Quantity.LessThan(qty) {
		return nil, apperror.NewInsufficientStock(m.Name, qty.InexactFloat64(), m.Quantity.InexactFloat64())
	}
	return m, nil
}

// Reserve decrements on-hand quantity as part of the caller's transaction.
// Fails with an insufficient-stock error and no mutation when the request
// exceeds availability. Returns the material as it was before the decrement.
func (s *Service) Reserve(ctx context.Context, id int64, qty types.Quantity) (*Material, error) {
	if !qty.IsPositive() {
		return nil, apperror.NewValidation("reservation quantity must be positive")
	}
	m, err := s.CheckAvailable(ctx, id, qty)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AdjustQuantity(ctx, id, qty.Neg()); err != nil {
		return nil, fmt.Errorf("reserve %q: %w", m.Name, err)
	}
	return m, nil
}

// Release returns a previously reserved quantity to stock.
func (s *Service) Release(ctx context.Context, id int64, qty types.Quantity) error {
	if !qty.IsPositive() {
		return apperror.NewValidation("release quantity must be positive")
	}
	if err := s.repo.AdjustQuantity(ctx, id, qty); err != nil {
		return fmt.Errorf("release material %d: %w", id, err)
	}
	return nil
}
