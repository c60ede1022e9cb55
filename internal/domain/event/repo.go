package event

import (
	"context"
	"time"

	"locafest/internal/core/types"
)

// ListFilter narrows event listings.
type ListFilter struct {
	Status   Status
	ClientID int64
	DateFrom *time.Time
	DateTo   *time.Time
	Search   string
	Limit    int
	Offset   int
}

// Repository persists events and their line items.
type Repository interface {
	Create(ctx context.Context, ev *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	GetForUpdate(ctx context.Context, id int64) (*Event, error)
	List(ctx context.Context, filter ListFilter) ([]Event, error)

	UpdateStatus(ctx context.Context, id int64, status Status) error
	UpdatePayment(ctx context.Context, id int64, paid types.Money, status PaymentStatus) error
	UpdateObservations(ctx context.Context, id int64, observations string) error

	CreateLines(ctx context.Context, eventID int64, lines []LineItem) error
	GetLines(ctx context.Context, eventID int64) ([]LineItem, error)
	DeleteLines(ctx context.Context, eventID int64) error

	Delete(ctx context.Context, id int64) error
}
