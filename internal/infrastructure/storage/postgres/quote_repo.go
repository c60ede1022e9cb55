package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"locafest/internal/core/apperror"
	"locafest/internal/domain/quote"
)

const quoteTable = "quotes"

var quoteCols = []string{
	"id", "client_id", "event_name", "event_type", "event_date", "pickup_date",
	"observations", "items", "labor", "freight", "total", "token", "status",
	"created_at",
}

// QuoteRepo implements quote.Repository. The item snapshot lives in a JSONB
// column and round-trips through the pgx JSON codec.
type QuoteRepo struct {
	txm *TxManager
}

func NewQuoteRepo(txm *TxManager) *QuoteRepo {
	return &QuoteRepo{txm: txm}
}

func (r *QuoteRepo) Create(ctx context.Context, q *quote.Quote) error {
	b := Builder().
		Insert(quoteTable).
		Columns("client_id", "event_name", "event_type", "event_date",
			"pickup_date", "observations", "items", "labor", "freight",
			"total", "token", "status").
		Values(q.ClientID, q.EventName, q.EventType, q.EventDate,
			q.PickupDate, q.Observations, q.Items, q.Labor, q.Freight,
			q.Total, q.Token, q.Status).
		Suffix("RETURNING id, created_at")

	sql, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&q.ID, &q.CreatedAt); err != nil {
		return MapError(err, "quote")
	}
	return nil
}

func (r *QuoteRepo) GetByID(ctx context.Context, id int64) (*quote.Quote, error) {
	b := Builder().
		Select(quoteCols...).
		From(quoteTable).
		Where(squirrel.Eq{"id": id})

	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var q quote.Quote
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &q, sql, args...); err != nil {
		return nil, MapError(err, "quote")
	}
	return &q, nil
}

// GetPendingByToken locks the pending quote carrying this token. A consumed
// or unknown token maps to NotFound, which is what makes approval links
// single-use.
func (r *QuoteRepo) GetPendingByToken(ctx context.Context, token string) (*quote.Quote, error) {
	b := Builder().
		Select(quoteCols...).
		From(quoteTable).
		Where(squirrel.Eq{"token": token, "status": quote.StatusPending}).
		Suffix("FOR UPDATE")

	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var q quote.Quote
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &q, sql, args...); err != nil {
		return nil, MapError(err, "quote")
	}
	return &q, nil
}

func (r *QuoteRepo) List(ctx context.Context, filter quote.ListFilter) ([]quote.Quote, error) {
	b := Builder().
		Select(quoteCols...).
		From(quoteTable).
		OrderBy("created_at DESC")

	if filter.Status != "" {
		b = b.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.ClientID != 0 {
		b = b.Where(squirrel.Eq{"client_id": filter.ClientID})
	}
	if filter.Search != "" {
		b = b.Where(squirrel.ILike{"event_name": "%" + filter.Search + "%"})
	}
	if filter.Limit > 0 {
		b = b.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		b = b.Offset(uint64(filter.Offset))
	}

	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	quotes := []quote.Quote{}
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &quotes, sql, args...); err != nil {
		return nil, MapError(err, "quote")
	}
	return quotes, nil
}

func (r *QuoteRepo) UpdateStatus(ctx context.Context, id int64, status quote.Status) error {
	b := Builder().
		Update(quoteTable).
		Set("status", status).
		Where(squirrel.Eq{"id": id})

	sql, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	res, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return MapError(err, "quote")
	}
	if res.RowsAffected() == 0 {
		return apperror.NewNotFound("quote", id)
	}
	return nil
}

// Delete removes a quote row. Event deletion calls this for the originating
// quote; a quote already gone is not an error there, so missing rows are
// reported as NotFound and filtered by the caller when appropriate.
func (r *QuoteRepo) Delete(ctx context.Context, id int64) error {
	b := Builder().
		Delete(quoteTable).
		Where(squirrel.Eq{"id": id})

	sql, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	res, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return MapError(err, "quote")
	}
	if res.RowsAffected() == 0 {
		return apperror.NewNotFound("quote", id)
	}
	return nil
}
