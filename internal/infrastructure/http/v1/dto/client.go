package dto

import "locafest/internal/domain/client"

// ClientRequest is the request body for creating or updating a client.
type ClientRequest struct {
	Name       string  `json:"name" binding:"required"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email" binding:"required"`
	TaxID      string  `json:"taxId" binding:"required"`
	CEP        *string `json:"cep,omitempty"`
	Street     *string `json:"street,omitempty"`
	District   *string `json:"district,omitempty"`
	City       *string `json:"city,omitempty"`
	State      *string `json:"state,omitempty"`
	Number     *string `json:"number,omitempty"`
	Complement *string `json:"complement,omitempty"`
}

// ToEntity converts DTO to domain entity.
func (r *ClientRequest) ToEntity() *client.Client {
	return &client.Client{
		Name:       r.Name,
		Phone:      r.Phone,
		Email:      r.Email,
		TaxID:      r.TaxID,
		CEP:        r.CEP,
		Street:     r.Street,
		District:   r.District,
		City:       r.City,
		State:      r.State,
		Number:     r.Number,
		Complement: r.Complement,
	}
}
