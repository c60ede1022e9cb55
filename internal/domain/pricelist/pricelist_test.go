package pricelist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locafest/internal/core/apperror"
	"locafest/internal/core/types"
)

type fakeRepo struct {
	prices map[int64]*Price
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{prices: map[int64]*Price{}}
}

func (r *fakeRepo) Create(_ context.Context, p *Price) error {
	r.nextID++
	p.ID = r.nextID
	c := *p
	r.prices[p.ID] = &c
	return nil
}

func (r *fakeRepo) List(_ context.Context) ([]Price, error) {
	out := make([]Price, 0, len(r.prices))
	for _, p := range r.prices {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, p *Price) error {
	if _, ok := r.prices[p.ID]; !ok {
		return apperror.NewNotFound("price", p.ID)
	}
	c := *p
	r.prices[p.ID] = &c
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.prices[id]; !ok {
		return apperror.NewNotFound("price", id)
	}
	delete(r.prices, id)
	return nil
}

func TestCreateTrimsName(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	p := &Price{Name: "  montagem de palco ", Type: TypeService, Amount: types.MustMoney("500.00")}
	require.NoError(t, svc.Create(context.Background(), p))
	assert.Equal(t, "montagem de palco", repo.prices[p.ID].Name)
}

func TestValidation(t *testing.T) {
	svc := NewService(newFakeRepo())

	tests := []struct {
		name  string
		price Price
	}{
		{"EmptyName", Price{Name: "  ", Type: TypeService, Amount: types.MustMoney("10.00")}},
		{"UnknownType", Price{Name: "frete", Type: "delivery", Amount: types.MustMoney("10.00")}},
		{"NegativeAmount", Price{Name: "frete", Type: TypeFreight, Amount: types.MustMoney("-1.00")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.price
			err := svc.Create(context.Background(), &p)
			require.Error(t, err)
			assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
		})
	}
}

func TestUpdateMissingPrice(t *testing.T) {
	svc := NewService(newFakeRepo())

	err := svc.Update(context.Background(), &Price{ID: 99, Name: "frete", Type: TypeFreight, Amount: types.Zero()})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
