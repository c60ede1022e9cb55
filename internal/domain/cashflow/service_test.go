package cashflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locafest/internal/core/apperror"
	"locafest/internal/core/types"
)

type fakeRepo struct {
	entries []Entry
	nextID  int64
}

func (r *fakeRepo) Create(_ context.Context, e *Entry) error {
	r.nextID++
	e.ID = r.nextID
	r.entries = append(r.entries, *e)
	return nil
}

func (r *fakeRepo) List(_ context.Context, _ Filter) ([]Entry, error) {
	return append([]Entry(nil), r.entries...), nil
}

func (r *fakeRepo) Summarize(_ context.Context, _ Filter) (Summary, error) {
	var s Summary
	s.Revenue = types.Zero()
	s.Expense = types.Zero()
	for _, e := range r.entries {
		switch e.Kind {
		case KindRevenue:
			s.Revenue = s.Revenue.Add(e.Amount)
		case KindExpense:
			s.Expense = s.Expense.Add(e.Amount)
		}
	}
	s.Balance = s.Revenue.Sub(s.Expense)
	return s, nil
}

func (r *fakeRepo) DeleteByEvent(_ context.Context, eventID int64, kind Kind) error {
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.Kind == kind && e.EventID != nil && *e.EventID == eventID {
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	return nil
}

func TestAppendDefaultsDate(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	e := &Entry{Description: "compra de lona", Kind: KindExpense, Amount: types.MustMoney("350.00")}
	require.NoError(t, svc.Append(context.Background(), e))
	assert.False(t, repo.entries[0].Date.IsZero())
}

func TestAppendValidation(t *testing.T) {
	svc := NewService(&fakeRepo{})

	tests := []struct {
		name  string
		entry Entry
	}{
		{"EmptyDescription", Entry{Kind: KindExpense, Amount: types.MustMoney("10.00")}},
		{"UnknownKind", Entry{Description: "x", Kind: "transfer", Amount: types.MustMoney("10.00")}},
		{"ZeroAmount", Entry{Description: "x", Kind: KindExpense, Amount: types.Zero()}},
		{"NegativeAmount", Entry{Description: "x", Kind: KindExpense, Amount: types.MustMoney("-5.00")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := tt.entry
			err := svc.Append(context.Background(), &e)
			require.Error(t, err)
			assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
		})
	}
}

func TestRecordedEntriesCarryTheirLinks(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.RecordMaterialPurchase(ctx, 5, "toalha", types.MustMoney("120.00")))
	require.NoError(t, svc.RecordEventRevenue(ctx, 9, "formatura", types.MustMoney("300.00")))

	require.Len(t, repo.entries, 2)

	purchase := repo.entries[0]
	assert.Equal(t, KindExpense, purchase.Kind)
	require.NotNil(t, purchase.MaterialID)
	assert.Equal(t, int64(5), *purchase.MaterialID)
	assert.Contains(t, purchase.Description, "toalha")

	revenue := repo.entries[1]
	assert.Equal(t, KindRevenue, revenue.Kind)
	require.NotNil(t, revenue.EventID)
	assert.Equal(t, int64(9), *revenue.EventID)
	assert.Contains(t, revenue.Description, "formatura")
}

func TestReverseForEventLeavesManualEntriesAlone(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.RecordEventRevenue(ctx, 9, "formatura", types.MustMoney("300.00")))
	require.NoError(t, svc.RecordEventRevenue(ctx, 10, "batizado", types.MustMoney("150.00")))
	require.NoError(t, svc.Append(ctx, &Entry{
		Date: time.Now(), Description: "venda avulsa", Kind: KindRevenue, Amount: types.MustMoney("80.00"),
	}))

	require.NoError(t, svc.ReverseForEvent(ctx, 9))

	s, err := svc.Summarize(ctx, Filter{})
	require.NoError(t, err)
	assert.True(t, s.Revenue.Equal(types.MustMoney("230.00")))
	assert.True(t, s.Balance.Equal(types.MustMoney("230.00")))
	require.Len(t, repo.entries, 2)
}
