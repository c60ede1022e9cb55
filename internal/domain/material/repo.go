package material

import (
	"context"

	"locafest/internal/core/types"
)

// Repository defines the interface for Material persistence.
type Repository interface {
	Create(ctx context.Context, m *Material) error

	GetByID(ctx context.Context, id int64) (*Material, error)

	// GetForUpdate retrieves a material with a row lock. Reservation fights
	// are serialized on this lock, not on isolation level.
	GetForUpdate(ctx context.Context, id int64) (*Material, error)

	// NameExists reports whether a material with the normalized name exists.
	NameExists(ctx context.Context, name string) (bool, error)

	List(ctx context.Context, filter ListFilter) ([]Material, error)

	Update(ctx context.Context, m *Material) error

	Delete(ctx context.Context, id int64) error

	// AdjustQuantity applies a signed delta to the on-hand quantity.
	// Callers must hold the row lock when decrementing.
	AdjustQuantity(ctx context.Context, id int64, delta types.Quantity) error
}

// ListFilter narrows material listings.
type ListFilter struct {
	Category Category
	Search   string
	Limit    int
	Offset   int
}
