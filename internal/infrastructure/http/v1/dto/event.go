package dto

import (
	"time"

	"locafest/internal/core/types"
	"locafest/internal/domain/event"
)

// EventLineRequest is one line of a direct booking.
type EventLineRequest struct {
	MaterialID *int64         `json:"materialId,omitempty"`
	KitID      *int64         `json:"kitId,omitempty"`
	Quantity   types.Quantity `json:"quantity" binding:"required"`
}

// CreateEventRequest is the request body for booking an event directly.
type CreateEventRequest struct {
	ClientID     int64              `json:"clientId" binding:"required"`
	Name         string             `json:"name" binding:"required"`
	Type         *string            `json:"type,omitempty"`
	Date         time.Time          `json:"date" binding:"required"`
	PickupDate   *time.Time         `json:"pickupDate,omitempty"`
	Observations *string            `json:"observations,omitempty"`
	Lines        []EventLineRequest `json:"lines" binding:"required"`
	Labor        types.Money        `json:"labor"`
	Freight      types.Money        `json:"freight"`
}

// ToEntity converts DTO to domain entity plus line inputs.
func (r *CreateEventRequest) ToEntity() (*event.Event, []event.LineInput) {
	lines := make([]event.LineInput, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, event.LineInput{
			MaterialID: l.MaterialID,
			KitID:      l.KitID,
			Quantity:   l.Quantity,
		})
	}
	ev := &event.Event{
		ClientID:     r.ClientID,
		Name:         r.Name,
		Type:         r.Type,
		Date:         r.Date,
		PickupDate:   r.PickupDate,
		Observations: r.Observations,
		Labor:        r.Labor,
		Freight:      r.Freight,
	}
	return ev, lines
}

// StatusRequest moves an event along its pipeline.
type StatusRequest struct {
	Status event.Status `json:"status" binding:"required"`
}

// PaymentRequest registers a payment against an event.
type PaymentRequest struct {
	Mode   event.PaymentMode `json:"mode" binding:"required"`
	Amount types.Money       `json:"amount"`
}

// FinalizeRequest closes an event.
type FinalizeRequest struct {
	Mode         event.FinalizeMode `json:"mode" binding:"required"`
	Observations string             `json:"observations"`
}

// EventListParams are query parameters for listing events.
type EventListParams struct {
	ListParams
	Status   string `form:"status"`
	ClientID int64  `form:"clientId"`
	DateFrom string `form:"dateFrom"`
	DateTo   string `form:"dateTo"`
}
