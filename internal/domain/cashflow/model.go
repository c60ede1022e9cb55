// Package cashflow provides the revenue/expense ledger.
package cashflow

import (
	"context"
	"strings"
	"time"

	"locafest/internal/core/apperror"
	"locafest/internal/core/types"
)

// Kind of a cash-flow entry.
type Kind string

const (
	KindRevenue Kind = "revenue"
	KindExpense Kind = "expense"
)

// Entry is one row in the cash-flow ledger. Entries generated by other
// components carry the originating event or material id, so reversal is an
// exact join instead of a description-text match.
type Entry struct {
	ID          int64       `db:"id" json:"id"`
	Date        time.Time   `db:"date" json:"date"`
	Description string      `db:"description" json:"description"`
	Kind        Kind        `db:"kind" json:"kind"`
	Amount      types.Money `db:"amount" json:"amount"`
	Observations *string    `db:"observations" json:"observations,omitempty"`

	// EventID links revenue entries posted by payment registration.
	EventID *int64 `db:"event_id" json:"eventId,omitempty"`

	// MaterialID links expense entries posted by stock purchases.
	MaterialID *int64 `db:"material_id" json:"materialId,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Validate checks invariants before persistence.
func (e *Entry) Validate(ctx context.Context) error {
	if strings.TrimSpace(e.Description) == "" {
		return apperror.NewValidation("description is required")
	}
	if e.Kind != KindRevenue && e.Kind != KindExpense {
		return apperror.NewValidation("kind must be revenue or expense")
	}
	if !e.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive")
	}
	if e.Date.IsZero() {
		return apperror.NewValidation("date is required")
	}
	return nil
}

// Summary totals a filtered slice of the ledger.
type Summary struct {
	Revenue types.Money `db:"revenue" json:"revenue"`
	Expense types.Money `db:"expense" json:"expense"`
	Balance types.Money `db:"-" json:"balance"`
}

// Filter narrows ledger queries. Translated into a parameterized query by the
// repository; fields left nil are ignored.
type Filter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Kind     *Kind
	EventID  *int64
	Search   string
	Limit    int
	Offset   int
}
