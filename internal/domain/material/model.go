// Package material provides the inventory ledger: atomic rental, sale and
// disposable materials with their on-hand quantities.
package material

import (
	"context"
	"strings"
	"time"

	"locafest/internal/core/apperror"
	"locafest/internal/core/types"
)

// Category defines how a material is consumed by events.
type Category string

const (
	CategoryDisposable   Category = "disposable"
	CategoryRental       Category = "rental"
	CategorySale         Category = "sale"
	CategoryKitComponent Category = "kit_component"
)

// Material is a single inventory row.
type Material struct {
	ID int64 `db:"id" json:"id"`

	// Name is stored lower-cased and trimmed; uniqueness is case-insensitive.
	Name string `db:"name" json:"name"`

	Category Category `db:"category" json:"category"`

	// Unit is the unit of measure ("unidade", "caixa", "metro", ...).
	Unit string `db:"unit" json:"unit"`

	// SubUnitQty is the quantity contained in one larger packing unit
	// (e.g. cups per box). Only meaningful for disposables.
	SubUnitQty *types.Quantity `db:"sub_unit_qty" json:"subUnitQty,omitempty"`

	// Quantity is the current on-hand quantity. Never negative after a
	// committed operation.
	Quantity types.Quantity `db:"quantity" json:"quantity"`

	// PurchasePrice is what the business paid per unit.
	PurchasePrice types.Money `db:"purchase_price" json:"purchasePrice"`

	// ResalePrice is the per-unit price charged to clients.
	ResalePrice types.Money `db:"resale_price" json:"resalePrice"`

	ImagePath *string `db:"image_path" json:"imagePath,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Normalize lower-cases and trims the name before any uniqueness check.
func (m *Material) Normalize() {
	m.Name = strings.ToLower(strings.TrimSpace(m.Name))
	m.Unit = strings.TrimSpace(m.Unit)
	if m.Unit == "" {
		m.Unit = "unidade"
	}
}

// Validate checks invariants before persistence.
func (m *Material) Validate(ctx context.Context) error {
	if m.Name == "" {
		return apperror.NewValidation("material name is required")
	}
	if !isValidCategory(m.Category) {
		return apperror.NewValidation("invalid material category").
			WithDetail("field", "category").
			WithDetail("value", string(m.Category))
	}
	if m.Quantity.IsNegative() {
		return apperror.NewValidation("quantity cannot be negative")
	}
	if m.PurchasePrice.IsNegative() || m.ResalePrice.IsNegative() {
		return apperror.NewValidation("prices cannot be negative")
	}
	return nil
}

// Returnable reports whether finalizing an event puts this material back on
// the shelf. Disposables and sale items are consumed.
func (m *Material) Returnable() bool {
	return m.Category == CategoryRental
}

func isValidCategory(c Category) bool {
	switch c {
	case CategoryDisposable, CategoryRental, CategorySale, CategoryKitComponent:
		return true
	}
	return false
}
