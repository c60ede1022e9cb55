// Package event provides confirmed bookings: inventory-backed events with a
// payment ledger and a finalization lifecycle.
package event

import (
	"context"
	"strings"
	"time"

	"locafest/internal/core/apperror"
	"locafest/internal/core/types"
)

// Status of an event.
type Status string

const (
	StatusPending            Status = "pending"
	StatusConfirmed          Status = "confirmed"
	StatusInAssembly         Status = "in_assembly"
	StatusFinalized          Status = "finalized"
	StatusPartiallyFinalized Status = "partially_finalized"
)

// PaymentStatus is an axis orthogonal to Status, driven by payment
// registration alone.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentTotal   PaymentStatus = "total"
)

// PaymentMode selects how a registered payment is interpreted.
type PaymentMode string

const (
	PaymentModePartial PaymentMode = "partial"
	PaymentModeTotal   PaymentMode = "total"
)

// FinalizeMode selects what returns to stock when an event closes.
type FinalizeMode string

const (
	// FinalizeTotal returns rental materials to stock and kits to
	// availability.
	FinalizeTotal FinalizeMode = "total"

	// FinalizePartial releases only kits; rental materials are assumed
	// damaged or retained and stay off the shelf.
	FinalizePartial FinalizeMode = "partial"
)

// Event is a confirmed booking.
type Event struct {
	ID int64 `db:"id" json:"id"`

	// QuoteID links back to the originating quote, if any.
	QuoteID *int64 `db:"quote_id" json:"quoteId,omitempty"`

	ClientID int64 `db:"client_id" json:"clientId"`

	Name string  `db:"name" json:"name"`
	Type *string `db:"type" json:"type,omitempty"`

	Date       time.Time  `db:"date" json:"date"`
	PickupDate *time.Time `db:"pickup_date" json:"pickupDate,omitempty"`

	Observations *string `db:"observations" json:"observations,omitempty"`

	// Total includes line items plus labor and freight.
	Total types.Money `db:"total" json:"total"`

	// Paid accumulates registered payments; never exceeds Total.
	Paid types.Money `db:"paid" json:"paid"`

	Labor   types.Money `db:"labor" json:"labor"`
	Freight types.Money `db:"freight" json:"freight"`

	Status        Status        `db:"status" json:"status"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"paymentStatus"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	// Lines is loaded on demand.
	Lines []LineItem `db:"-" json:"lines,omitempty"`
}

// LineItem references exactly one of material or kit, never both. UnitValue
// is frozen at the moment the line is created so later price changes do not
// rewrite history.
type LineItem struct {
	ID         int64          `db:"id" json:"id"`
	EventID    int64          `db:"event_id" json:"eventId"`
	MaterialID *int64         `db:"material_id" json:"materialId,omitempty"`
	KitID      *int64         `db:"kit_id" json:"kitId,omitempty"`
	Quantity   types.Quantity `db:"quantity" json:"quantity"`
	UnitValue  types.Money    `db:"unit_value" json:"unitValue"`
}

// LineInput is the caller's request for one line.
type LineInput struct {
	MaterialID *int64         `json:"materialId,omitempty"`
	KitID      *int64         `json:"kitId,omitempty"`
	Quantity   types.Quantity `json:"quantity"`
}

// Validate checks the material-xor-kit rule and quantity.
func (l LineInput) Validate() error {
	if (l.MaterialID == nil) == (l.KitID == nil) {
		return apperror.NewValidation("line item must reference exactly one of material or kit")
	}
	if !l.Quantity.IsPositive() {
		return apperror.NewValidation("line item quantity must be positive")
	}
	return nil
}

// Validate checks invariants before persistence.
func (e *Event) Validate(ctx context.Context) error {
	if strings.TrimSpace(e.Name) == "" {
		return apperror.NewValidation("event name is required")
	}
	if e.ClientID == 0 {
		return apperror.NewValidation("client is required")
	}
	if e.Date.IsZero() {
		return apperror.NewValidation("event date is required")
	}
	if e.Labor.IsNegative() || e.Freight.IsNegative() {
		return apperror.NewValidation("labor and freight cannot be negative")
	}
	return nil
}

// Closed reports whether the event already went through finalization.
func (e *Event) Closed() bool {
	return e.Status == StatusFinalized || e.Status == StatusPartiallyFinalized
}

// Outstanding is the unpaid balance.
func (e *Event) Outstanding() types.Money {
	return e.Total.Sub(e.Paid)
}
