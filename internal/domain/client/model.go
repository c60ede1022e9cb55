// Package client provides the client directory.
package client

import (
	"context"
	"regexp"
	"strings"
	"time"

	"locafest/internal/core/apperror"
)

var (
	emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	cpfRE   = regexp.MustCompile(`^\d{11}$`)
	cepRE   = regexp.MustCompile(`^\d{8}$`)
)

// Client is a person or company that books events. Once referenced by a
// quote or event the row is effectively immutable: foreign keys block its
// deletion.
type Client struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Phone string `db:"phone" json:"phone"`

	// Email is unique across clients.
	Email string `db:"email" json:"email"`

	// TaxID is the CPF, digits only, unique across clients.
	TaxID string `db:"tax_id" json:"taxId"`

	CEP        *string `db:"cep" json:"cep,omitempty"`
	Street     *string `db:"street" json:"street,omitempty"`
	District   *string `db:"district" json:"district,omitempty"`
	City       *string `db:"city" json:"city,omitempty"`
	State      *string `db:"state" json:"state,omitempty"`
	Number     *string `db:"number" json:"number,omitempty"`
	Complement *string `db:"complement" json:"complement,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Normalize strips formatting from the identity fields.
func (c *Client) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.TaxID = digitsOnly(c.TaxID)
	if c.CEP != nil {
		cep := digitsOnly(*c.CEP)
		c.CEP = &cep
	}
}

// Validate checks invariants before persistence.
func (c *Client) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("client name is required")
	}
	if !emailRE.MatchString(c.Email) {
		return apperror.NewValidation("invalid email address")
	}
	if !cpfRE.MatchString(c.TaxID) {
		return apperror.NewValidation("tax id must have 11 digits")
	}
	if c.CEP != nil && *c.CEP != "" && !cepRE.MatchString(*c.CEP) {
		return apperror.NewValidation("postal code must have 8 digits")
	}
	return nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
