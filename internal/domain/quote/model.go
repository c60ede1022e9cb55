// Package quote provides priced proposals that convert into events through an
// emailed single-use approval token.
package quote

import (
	"strings"
	"time"

	"locafest/internal/core/apperror"
	"locafest/internal/core/types"
)

// Status of a quote.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRefused  Status = "refused"
)

// ItemKind discriminates what a snapshot item references.
type ItemKind string

const (
	ItemMaterial ItemKind = "material"
	ItemKit      ItemKind = "kit"
)

// Item is one entry of the frozen item snapshot. Only the reference and the
// quantity are frozen; prices are resolved fresh at approval time when the
// event lines are created.
type Item struct {
	ID       int64          `json:"id"`
	Kind     ItemKind       `json:"kind"`
	Quantity types.Quantity `json:"quantity"`
}

// Validate checks one snapshot item.
func (i Item) Validate() error {
	if i.ID == 0 {
		return apperror.NewValidation("quote item id is required")
	}
	if i.Kind != ItemMaterial && i.Kind != ItemKit {
		return apperror.NewValidation("quote item kind must be material or kit")
	}
	if !i.Quantity.IsPositive() {
		return apperror.NewValidation("quote item quantity must be positive")
	}
	return nil
}

// Quote is a priced proposal. Items is stored as a JSONB column and never
// changes after creation.
type Quote struct {
	ID       int64 `db:"id" json:"id"`
	ClientID int64 `db:"client_id" json:"clientId"`

	EventName string  `db:"event_name" json:"eventName"`
	EventType *string `db:"event_type" json:"eventType,omitempty"`

	EventDate  time.Time  `db:"event_date" json:"eventDate"`
	PickupDate *time.Time `db:"pickup_date" json:"pickupDate,omitempty"`

	Observations *string `db:"observations" json:"observations,omitempty"`

	Items []Item `db:"items" json:"items"`

	Labor   types.Money `db:"labor" json:"labor"`
	Freight types.Money `db:"freight" json:"freight"`
	Total   types.Money `db:"total" json:"total"`

	Token  string `db:"token" json:"-"`
	Status Status `db:"status" json:"status"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Validate checks invariants before persistence.
func (q *Quote) Validate() error {
	if q.ClientID == 0 {
		return apperror.NewValidation("client is required")
	}
	if strings.TrimSpace(q.EventName) == "" {
		return apperror.NewValidation("event name is required")
	}
	if q.EventDate.IsZero() {
		return apperror.NewValidation("event date is required")
	}
	if len(q.Items) == 0 {
		return apperror.NewValidation("quote requires at least one item")
	}
	if q.Labor.IsNegative() || q.Freight.IsNegative() {
		return apperror.NewValidation("labor and freight cannot be negative")
	}
	for _, it := range q.Items {
		if err := it.Validate(); err != nil {
			return err
		}
	}
	return nil
}
