package client

import (
	"context"
)

// Repository defines the interface for Client persistence.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id int64) (*Client, error)
	List(ctx context.Context, filter ListFilter) ([]Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id int64) error
}

// ListFilter narrows client listings.
type ListFilter struct {
	Search string
	Limit  int
	Offset int
}
