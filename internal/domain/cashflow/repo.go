package cashflow

import (
	"context"
)

// Repository defines the interface for cash-flow persistence.
type Repository interface {
	Create(ctx context.Context, e *Entry) error

	List(ctx context.Context, filter Filter) ([]Entry, error)

	Summarize(ctx context.Context, filter Filter) (Summary, error)

	// DeleteByEvent removes entries of the given kind linked to an event.
	// Used when an event deletion reverses its booked revenue.
	DeleteByEvent(ctx context.Context, eventID int64, kind Kind) error
}
