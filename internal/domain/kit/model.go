// Package kit provides kits: fixed-price bundles of inventory materials
// rented as a single unit. Creating a kit deducts its components from stock;
// the kit then circulates as one piece with its own availability status.
package kit

import (
	"context"
	"strings"
	"time"

	"locafest/internal/core/apperror"
	"locafest/internal/core/types"
)

// Status of a kit.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusInUse       Status = "in_use"
	StatusMaintenance Status = "maintenance"
)

// Kit is a named bundle with a fixed price.
type Kit struct {
	ID        int64       `db:"id" json:"id"`
	Name      string      `db:"name" json:"name"`
	Price     types.Money `db:"price" json:"price"`
	ImagePath *string     `db:"image_path" json:"imagePath,omitempty"`
	Status    Status      `db:"status" json:"status"`
	CreatedAt time.Time   `db:"created_at" json:"createdAt"`

	// Items is the composition; loaded on demand.
	Items []Item `db:"-" json:"items,omitempty"`
}

// Item is one (material, quantity) pair of the composition.
type Item struct {
	ID         int64          `db:"id" json:"id"`
	KitID      int64          `db:"kit_id" json:"kitId"`
	MaterialID int64          `db:"material_id" json:"materialId"`
	Quantity   types.Quantity `db:"quantity" json:"quantity"`
}

// Component is the creation input for one composition line.
type Component struct {
	MaterialID int64          `json:"materialId"`
	Quantity   types.Quantity `json:"quantity"`
}

// Normalize lower-cases and trims the name before any uniqueness check.
func (k *Kit) Normalize() {
	k.Name = strings.ToLower(strings.TrimSpace(k.Name))
}

// Validate checks invariants before persistence.
func (k *Kit) Validate(ctx context.Context) error {
	if strings.TrimSpace(k.Name) == "" {
		return apperror.NewValidation("kit name is required")
	}
	if k.Price.IsNegative() {
		return apperror.NewValidation("kit price cannot be negative")
	}
	if !isValidStatus(k.Status) {
		return apperror.NewValidation("invalid kit status").
			WithDetail("value", string(k.Status))
	}
	return nil
}

func isValidStatus(s Status) bool {
	switch s {
	case StatusAvailable, StatusInUse, StatusMaintenance:
		return true
	}
	return false
}
