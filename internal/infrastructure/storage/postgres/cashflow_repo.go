package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"locafest/internal/domain/cashflow"
)

const cashflowTable = "cashflow_entries"

var cashflowCols = []string{
	"id", "date", "description", "kind", "amount", "observations",
	"event_id", "material_id", "created_at",
}

// CashFlowRepo implements cashflow.Repository.
type CashFlowRepo struct {
	txm *TxManager
}

func NewCashFlowRepo(txm *TxManager) *CashFlowRepo {
	return &CashFlowRepo{txm: txm}
}

func (r *CashFlowRepo) Create(ctx context.Context, e *cashflow.Entry) error {
	q := Builder().
		Insert(cashflowTable).
		Columns("date", "description", "kind", "amount", "observations",
			"event_id", "material_id").
		Values(e.Date, e.Description, e.Kind, e.Amount, e.Observations,
			e.EventID, e.MaterialID).
		Suffix("RETURNING id, created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&e.ID, &e.CreatedAt); err != nil {
		return MapError(err, "cash-flow entry")
	}
	return nil
}

// applyFilter translates the structured filter into WHERE clauses. Free-text
// search only ever touches the description column as a bound ILIKE pattern.
func applyFilter(q squirrel.SelectBuilder, f cashflow.Filter) squirrel.SelectBuilder {
	if f.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *f.DateFrom})
	}
	if f.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *f.DateTo})
	}
	if f.Kind != nil {
		q = q.Where(squirrel.Eq{"kind": *f.Kind})
	}
	if f.EventID != nil {
		q = q.Where(squirrel.Eq{"event_id": *f.EventID})
	}
	if f.Search != "" {
		q = q.Where(squirrel.ILike{"description": "%" + f.Search + "%"})
	}
	return q
}

func (r *CashFlowRepo) List(ctx context.Context, filter cashflow.Filter) ([]cashflow.Entry, error) {
	q := applyFilter(Builder().
		Select(cashflowCols...).
		From(cashflowTable), filter).
		OrderBy("date DESC", "id DESC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	entries := []cashflow.Entry{}
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &entries, sql, args...); err != nil {
		return nil, MapError(err, "cash-flow entry")
	}
	return entries, nil
}

func (r *CashFlowRepo) Summarize(ctx context.Context, filter cashflow.Filter) (cashflow.Summary, error) {
	q := applyFilter(Builder().
		Select(
			"COALESCE(SUM(amount) FILTER (WHERE kind = 'revenue'), 0) AS revenue",
			"COALESCE(SUM(amount) FILTER (WHERE kind = 'expense'), 0) AS expense",
		).
		From(cashflowTable), filter)

	sql, args, err := q.ToSql()
	if err != nil {
		return cashflow.Summary{}, fmt.Errorf("build select: %w", err)
	}

	var s cashflow.Summary
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &s, sql, args...); err != nil {
		return cashflow.Summary{}, MapError(err, "cash-flow summary")
	}
	s.Balance = s.Revenue.Sub(s.Expense)
	return s, nil
}

// DeleteByEvent removes every entry of the given kind linked to the event
// through its foreign key. Entries typed in by hand, with no event link, are
// never touched.
func (r *CashFlowRepo) DeleteByEvent(ctx context.Context, eventID int64, kind cashflow.Kind) error {
	sql, args, err := Builder().
		Delete(cashflowTable).
		Where(squirrel.Eq{"event_id": eventID, "kind": kind}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return MapError(err, "cash-flow entry")
	}
	return nil
}
