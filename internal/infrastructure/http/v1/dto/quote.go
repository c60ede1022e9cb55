package dto

import (
	"time"

	"locafest/internal/core/types"
	"locafest/internal/domain/quote"
)

// QuoteItemRequest is one snapshot line of a quote.
type QuoteItemRequest struct {
	ID       int64          `json:"id" binding:"required"`
	Kind     quote.ItemKind `json:"kind" binding:"required"`
	Quantity types.Quantity `json:"quantity" binding:"required"`
}

// CreateQuoteRequest is the request body for creating a quote.
type CreateQuoteRequest struct {
	ClientID     int64              `json:"clientId" binding:"required"`
	EventName    string             `json:"eventName" binding:"required"`
	EventType    *string            `json:"eventType,omitempty"`
	EventDate    time.Time          `json:"eventDate" binding:"required"`
	PickupDate   *time.Time         `json:"pickupDate,omitempty"`
	Observations *string            `json:"observations,omitempty"`
	Items        []QuoteItemRequest `json:"items" binding:"required"`
	Labor        types.Money        `json:"labor"`
	Freight      types.Money        `json:"freight"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateQuoteRequest) ToEntity() *quote.Quote {
	items := make([]quote.Item, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, quote.Item{
			ID:       it.ID,
			Kind:     it.Kind,
			Quantity: it.Quantity,
		})
	}
	return &quote.Quote{
		ClientID:     r.ClientID,
		EventName:    r.EventName,
		EventType:    r.EventType,
		EventDate:    r.EventDate,
		PickupDate:   r.PickupDate,
		Observations: r.Observations,
		Items:        items,
		Labor:        r.Labor,
		Freight:      r.Freight,
	}
}

// QuoteListParams are query parameters for listing quotes.
type QuoteListParams struct {
	ListParams
	Status   string `form:"status"`
	ClientID int64  `form:"clientId"`
}
