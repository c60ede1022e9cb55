package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locafest/internal/core/apperror"
)

type fakeRepo struct {
	clients map[int64]*Client
	nextID  int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{clients: map[int64]*Client{}}
}

func (r *fakeRepo) Create(_ context.Context, c *Client) error {
	for _, existing := range r.clients {
		if existing.Email == c.Email {
			return apperror.NewDuplicate("client", "email", c.Email)
		}
	}
	r.nextID++
	c.ID = r.nextID
	cc := *c
	r.clients[c.ID] = &cc
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, apperror.NewNotFound("client", id)
	}
	cc := *c
	return &cc, nil
}

func (r *fakeRepo) List(_ context.Context, _ ListFilter) ([]Client, error) {
	out := make([]Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, c *Client) error {
	if _, ok := r.clients[c.ID]; !ok {
		return apperror.NewNotFound("client", c.ID)
	}
	cc := *c
	r.clients[c.ID] = &cc
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.clients[id]; !ok {
		return apperror.NewNotFound("client", id)
	}
	delete(r.clients, id)
	return nil
}

type fakeLookup struct {
	lastCEP string
	addr    *Address
	err     error
}

func (f *fakeLookup) Lookup(_ context.Context, cep string) (*Address, error) {
	f.lastCEP = cep
	if f.err != nil {
		return nil, f.err
	}
	return f.addr, nil
}

func ptr(s string) *string { return &s }

func testClient() *Client {
	return &Client{
		Name:  "Maria Souza",
		Phone: "(41) 99999-0000",
		Email: "Maria.Souza@Example.com ",
		TaxID: "123.456.789-01",
		CEP:   ptr("80010-000"),
	}
}

func TestCreateNormalizesIdentityFields(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeLookup{})

	c := testClient()
	require.NoError(t, svc.Create(context.Background(), c))

	stored := repo.clients[c.ID]
	assert.Equal(t, "maria.souza@example.com", stored.Email)
	assert.Equal(t, "12345678901", stored.TaxID)
	require.NotNil(t, stored.CEP)
	assert.Equal(t, "80010000", *stored.CEP)
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeLookup{})

	tests := []struct {
		name   string
		mutate func(*Client)
	}{
		{"EmptyName", func(c *Client) { c.Name = "  " }},
		{"BadEmail", func(c *Client) { c.Email = "not-an-email" }},
		{"ShortTaxID", func(c *Client) { c.TaxID = "123" }},
		{"BadCEP", func(c *Client) { c.CEP = ptr("123") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testClient()
			tt.mutate(c)
			err := svc.Create(context.Background(), c)
			require.Error(t, err)
			assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
		})
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeLookup{})

	require.NoError(t, svc.Create(context.Background(), testClient()))

	dup := testClient()
	dup.TaxID = "98765432109"
	err := svc.Create(context.Background(), dup)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeDuplicate))
}

func TestLookupAddressSanitizesCode(t *testing.T) {
	lookup := &fakeLookup{addr: &Address{CEP: "80010-000", City: "Curitiba", State: "PR"}}
	svc := NewService(newFakeRepo(), lookup)

	addr, err := svc.LookupAddress(context.Background(), "80010-000")
	require.NoError(t, err)
	assert.Equal(t, "80010000", lookup.lastCEP)
	assert.Equal(t, "Curitiba", addr.City)
}

func TestLookupAddressRejectsShortCode(t *testing.T) {
	lookup := &fakeLookup{}
	svc := NewService(newFakeRepo(), lookup)

	_, err := svc.LookupAddress(context.Background(), "80010")
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	assert.Empty(t, lookup.lastCEP)
}
