package dto

import (
	"time"

	"locafest/internal/core/types"
	"locafest/internal/domain/cashflow"
	"locafest/internal/domain/pricelist"
)

// CreateEntryRequest appends a manual ledger entry.
type CreateEntryRequest struct {
	Date         time.Time     `json:"date" binding:"required"`
	Description  string        `json:"description" binding:"required"`
	Kind         cashflow.Kind `json:"kind" binding:"required"`
	Amount       types.Money   `json:"amount" binding:"required"`
	Observations *string       `json:"observations,omitempty"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateEntryRequest) ToEntity() *cashflow.Entry {
	return &cashflow.Entry{
		Date:         r.Date,
		Description:  r.Description,
		Kind:         r.Kind,
		Amount:       r.Amount,
		Observations: r.Observations,
	}
}

// CashFlowListParams are query parameters for the ledger.
type CashFlowListParams struct {
	ListParams
	DateFrom string `form:"dateFrom"`
	DateTo   string `form:"dateTo"`
	Kind     string `form:"kind"`
	EventID  int64  `form:"eventId"`
}

// PriceRequest creates or updates a price-list entry.
type PriceRequest struct {
	Name   string         `json:"name" binding:"required"`
	Type   pricelist.Type `json:"type" binding:"required"`
	Amount types.Money    `json:"amount" binding:"required"`
}

// ToEntity converts DTO to domain entity.
func (r *PriceRequest) ToEntity() *pricelist.Price {
	return &pricelist.Price{
		Name:   r.Name,
		Type:   r.Type,
		Amount: r.Amount,
	}
}
