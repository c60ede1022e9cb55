// Package activity provides the append-only activity log.
//
// Writes are best-effort: a failure to record activity must never abort the
// business transaction it describes. Implementations therefore write outside
// any caller transaction and swallow their own errors.
package activity

import (
	"context"
	"time"
)

// Entry kinds mirror the operations worth auditing.
const (
	KindMaterialCreated = "MATERIAL_CREATED"
	KindMaterialDeleted = "MATERIAL_DELETED"
	KindKitCreated      = "KIT_CREATED"
	KindKitDeleted      = "KIT_DELETED"
	KindQuoteCreated    = "QUOTE_CREATED"
	KindQuoteApproved   = "QUOTE_APPROVED"
	KindQuoteRefused    = "QUOTE_REFUSED"
	KindEventCreated    = "EVENT_CREATED"
	KindEventStatus     = "EVENT_STATUS_CHANGED"
	KindEventPayment    = "EVENT_PAYMENT"
	KindEventFinalized  = "EVENT_FINALIZED"
	KindEventDeleted    = "EVENT_DELETED"
)

// Entry is one activity log row.
type Entry struct {
	ID          int64     `db:"id" json:"id"`
	Kind        string    `db:"kind" json:"kind"`
	RefID       *int64    `db:"ref_id" json:"refId,omitempty"`
	Description string    `db:"description" json:"description"`
	LoggedAt    time.Time `db:"logged_at" json:"loggedAt"`
}

// Recorder is the non-transactional side channel for activity entries.
type Recorder interface {
	// Record appends an entry. Never returns an error; failures are logged
	// and discarded.
	Record(ctx context.Context, kind string, refID *int64, description string)
}

// Reader lists recorded activity.
type Reader interface {
	List(ctx context.Context, limit, offset int) ([]Entry, error)
}

// Discard is a Recorder that drops everything. Used in tests.
type Discard struct{}

func (Discard) Record(context.Context, string, *int64, string) {}
