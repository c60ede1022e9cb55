package quote

import "context"

// ListFilter narrows quote listings.
type ListFilter struct {
	Status   Status
	ClientID int64
	Search   string
	Limit    int
	Offset   int
}

// Repository persists quotes.
type Repository interface {
	Create(ctx context.Context, q *Quote) error
	GetByID(ctx context.Context, id int64) (*Quote, error)

	// GetPendingByToken locks and returns the pending quote holding this
	// token. Approved and refused quotes are invisible here, which makes
	// the approval link single-use.
	GetPendingByToken(ctx context.Context, token string) (*Quote, error)

	List(ctx context.Context, filter ListFilter) ([]Quote, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	Delete(ctx context.Context, id int64) error
}
