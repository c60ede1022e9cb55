package kit

import (
	"context"
)

// Repository defines the interface for Kit persistence.
type Repository interface {
	Create(ctx context.Context, k *Kit) error

	GetByID(ctx context.Context, id int64) (*Kit, error)

	// GetForUpdate retrieves a kit with a row lock so status transitions
	// (available -> in_use and back) serialize.
	GetForUpdate(ctx context.Context, id int64) (*Kit, error)

	NameExists(ctx context.Context, name string) (bool, error)

	List(ctx context.Context, filter ListFilter) ([]Kit, error)

	SaveItems(ctx context.Context, kitID int64, items []Item) error

	GetItems(ctx context.Context, kitID int64) ([]Item, error)

	UpdateStatus(ctx context.Context, id int64, status Status) error

	UpdateImage(ctx context.Context, id int64, path string) error

	// Delete removes the kit row. Composition rows cascade.
	Delete(ctx context.Context, id int64) error
}

// ListFilter narrows kit listings.
type ListFilter struct {
	Status *Status
	Search string
	Limit  int
	Offset int
}
