// Package dto defines request and response bodies for the v1 API.
package dto

// ListParams are common pagination query parameters.
type ListParams struct {
	Search string `form:"search"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

// IDResponse returns the identifier of a newly created resource.
type IDResponse struct {
	ID int64 `json:"id"`
}

// MessageResponse is a human-readable outcome for state transitions.
type MessageResponse struct {
	Message string `json:"message"`
}
