package kit

import (
	"context"
	"fmt"

	"locafest/internal/core/apperror"
	"locafest/internal/core/tx"
	"locafest/internal/core/types"
	"locafest/internal/domain/activity"
	"locafest/internal/domain/material"
	"locafest/pkg/logger"
)

// Ledger is the slice of the inventory service kits depend on.
type Ledger interface {
	CheckAvailable(ctx context.Context, id int64, qty types.Quantity) (*material.Material, error)
	Reserve(ctx context.Context, id int64, qty types.Quantity) (*material.Material, error)
	Release(ctx context.Context, id int64, qty types.Quantity) error
}

// ImageStore removes stored kit images when the owning row goes away.
type ImageStore interface {
	Remove(path string) error
}

// Service provides business logic for kit composition.
type Service struct {
	repo      Repository
	inventory Ledger
	files     ImageStore
	activity  activity.Recorder
	txm       tx.Manager
}

// NewService creates a new kit service.
func NewService(repo Repository, inventory Ledger, files ImageStore, rec activity.Recorder, txm tx.Manager) *Service {
	return &Service{
		repo:      repo,
		inventory: inventory,
		files:     files,
		activity:  rec,
		txm:       txm,
	}
}

// Create assembles a kit from components. Every component's availability is
// verified before anything is written; on success the kit row, its
// composition rows and the stock deductions commit together. A shortfall in
// any component aborts with no partial effect.
func (s *Service) Create(ctx context.Context, k *Kit, components []Component) error {
	k.Status = StatusAvailable
	k.Normalize()
	if err := k.Validate(ctx); err != nil {
		return err
	}
	if len(components) == 0 {
		return apperror.NewValidation("a kit needs at least one component")
	}
	for _, c := range components {
		if !c.Quantity.IsPositive() {
			return apperror.NewValidation("component quantity must be positive").
				WithDetail("material_id", c.MaterialID)
		}
	}

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.repo.NameExists(ctx, k.Name)
		if err != nil {
			return fmt.Errorf("check name: %w", err)
		}
		if exists {
			return apperror.NewDuplicate("kit", "name", k.Name)
		}

		// First pass: lock and verify every component, naming the
		// offending material on shortfall.
		for _, c := range components {
			if _, err := s.inventory.CheckAvailable(ctx, c.MaterialID, c.Quantity); err != nil {
				return err
			}
		}

		if err := s.repo.Create(ctx, k); err != nil {
			return fmt.Errorf("create kit: %w", err)
		}

		items := make([]Item, 0, len(components))
		for _, c := range components {
			items = append(items, Item{KitID: k.ID, MaterialID: c.MaterialID, Quantity: c.Quantity})
		}
		if err := s.repo.SaveItems(ctx, k.ID, items); err != nil {
			return fmt.Errorf("save kit items: %w", err)
		}

		for _, c := range components {
			if _, err := s.inventory.Reserve(ctx, c.MaterialID, c.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.activity.Record(ctx, activity.KindKitCreated, &k.ID,
		fmt.Sprintf("kit %q assembled from %d components", k.Name, len(components)))
	logger.Info(ctx, "kit created", "id", k.ID, "name", k.Name)
	return nil
}

// GetByID retrieves a kit with its composition.
func (s *Service) GetByID(ctx context.Context, id int64) (*Kit, error) {
	k, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.GetItems(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get kit items: %w", err)
	}
	k.Items = items
	return k, nil
}

// List retrieves kits with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Kit, error) {
	return s.repo.List(ctx, filter)
}

// SetImage replaces the stored image path, removing the previous file.
func (s *Service) SetImage(ctx context.Context, id int64, path string) error {
	k, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if k.ImagePath != nil && *k.ImagePath != path {
		if err := s.files.Remove(*k.ImagePath); err != nil {
			logger.Warn(ctx, "failed to remove previous kit image", "path", *k.ImagePath, "error", err)
		}
	}
	return s.repo.UpdateImage(ctx, id, path)
}

// Delete disassembles a kit: each component's quantity returns to stock, the
// composition rows and the kit row are removed. Kits placed in an event
// (in_use) cannot be deleted.
func (s *Service) Delete(ctx context.Context, id int64) error {
	var imagePath *string
	var name string

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		k, err := s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if k.Status == StatusInUse {
			return apperror.NewConflict(fmt.Sprintf("kit %q is in use and cannot be deleted", k.Name))
		}
		imagePath = k.ImagePath
		name = k.Name

		items, err := s.repo.GetItems(ctx, id)
		if err != nil {
			return fmt.Errorf("get kit items: %w", err)
		}
		for _, it := range items {
			if err := s.inventory.Release(ctx, it.MaterialID, it.Quantity); err != nil {
				return err
			}
		}

		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	if imagePath != nil {
		if err := s.files.Remove(*imagePath); err != nil {
			logger.Warn(ctx, "failed to remove kit image", "path", *imagePath, "error", err)
		}
	}

	s.activity.Record(ctx, activity.KindKitDeleted, &id,
		fmt.Sprintf("kit %q disassembled, components returned to stock", name))
	return nil
}

// MarkInUse transitions an available kit to in_use within the caller's
// transaction. Any other current status is a conflict.
func (s *Service) MarkInUse(ctx context.Context, id int64) (*Kit, error) {
	k, err := s.repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if k.Status != StatusAvailable {
		return nil, apperror.NewConflict(fmt.Sprintf("kit %q is not available", k.Name)).
			WithDetail("status", string(k.Status))
	}
	if err := s.repo.UpdateStatus(ctx, id, StatusInUse); err != nil {
		return nil, fmt.Errorf("mark kit in use: %w", err)
	}
	return k, nil
}

// MarkAvailable returns a kit to circulation within the caller's transaction.
func (s *Service) MarkAvailable(ctx context.Context, id int64) error {
	if err := s.repo.UpdateStatus(ctx, id, StatusAvailable); err != nil {
		return fmt.Errorf("mark kit available: %w", err)
	}
	return nil
}

// SetMaintenance toggles a kit in or out of maintenance. A kit placed in an
// event stays in_use until the event releases it.
func (s *Service) SetMaintenance(ctx context.Context, id int64, maintenance bool) error {
	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		k, err := s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if k.Status == StatusInUse {
			return apperror.NewConflict(fmt.Sprintf("kit %q is in use", k.Name))
		}
		target := StatusAvailable
		if maintenance {
			target = StatusMaintenance
		}
		return s.repo.UpdateStatus(ctx, id, target)
	})
}

// CheckAvailable verifies the kit can be placed in a quote or event, holding
// the row lock for the caller's transaction. No mutation.
func (s *Service) CheckAvailable(ctx context.Context, id int64) (*Kit, error) {
	k, err := s.repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if k.Status != StatusAvailable {
		return nil, apperror.NewConflict(fmt.Sprintf("kit %q is not available", k.Name)).
			WithDetail("status", string(k.Status))
	}
	return k, nil
}
