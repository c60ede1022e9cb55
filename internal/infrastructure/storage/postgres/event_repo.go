package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"locafest/internal/core/apperror"
	"locafest/internal/core/types"
	"locafest/internal/domain/event"
)

const (
	eventTable     = "events"
	eventItemTable = "event_items"
)

var eventCols = []string{
	"id", "quote_id", "client_id", "name", "type", "date", "pickup_date",
	"observations", "total", "paid", "labor", "freight", "status",
	"payment_status", "created_at",
}

// EventRepo implements event.Repository.
type EventRepo struct {
	txm *TxManager
}

func NewEventRepo(txm *TxManager) *EventRepo {
	return &EventRepo{txm: txm}
}

func (r *EventRepo) Create(ctx context.Context, ev *event.Event) error {
	q := Builder().
		Insert(eventTable).
		Columns("quote_id", "client_id", "name", "type", "date",
			"pickup_date", "observations", "total", "paid", "labor",
			"freight", "status", "payment_status").
		Values(ev.QuoteID, ev.ClientID, ev.Name, ev.Type, ev.Date,
			ev.PickupDate, ev.Observations, ev.Total, ev.Paid, ev.Labor,
			ev.Freight, ev.Status, ev.PaymentStatus).
		Suffix("RETURNING id, created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&ev.ID, &ev.CreatedAt); err != nil {
		return MapError(err, "event")
	}
	return nil
}

func (r *EventRepo) get(ctx context.Context, id int64, forUpdate bool) (*event.Event, error) {
	q := Builder().
		Select(eventCols...).
		From(eventTable).
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var ev event.Event
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &ev, sql, args...); err != nil {
		return nil, MapError(err, "event")
	}
	return &ev, nil
}

func (r *EventRepo) GetByID(ctx context.Context, id int64) (*event.Event, error) {
	return r.get(ctx, id, false)
}

func (r *EventRepo) GetForUpdate(ctx context.Context, id int64) (*event.Event, error) {
	return r.get(ctx, id, true)
}

func (r *EventRepo) List(ctx context.Context, filter event.ListFilter) ([]event.Event, error) {
	q := Builder().
		Select(eventCols...).
		From(eventTable).
		OrderBy("date ASC")

	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.ClientID != 0 {
		q = q.Where(squirrel.Eq{"client_id": filter.ClientID})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}
	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"name": "%" + filter.Search + "%"})
	}
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

	events := []event.Event{}
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &events, sql, args...); err != nil {
		return nil, MapError(err, "event")
	}
	return events, nil
}

func (r *EventRepo) UpdateStatus(ctx context.Context, id int64, status event.Status) error {
	return r.update(ctx, id, map[string]any{"status": status})
}

func (r *EventRepo) UpdatePayment(ctx context.Context, id int64, paid types.Money, status event.PaymentStatus) error {
	return r.update(ctx, id, map[string]any{"paid": paid, "payment_status": status})
}

func (r *EventRepo) UpdateObservations(ctx context.Context, id int64, observations string) error {
	return r.update(ctx, id, map[string]any{"observations": observations})
}

func (r *EventRepo) update(ctx context.Context, id int64, set map[string]any) error {
	q := Builder().
		Update(eventTable).
		SetMap(set).
		Where(squirrel.Eq{"id": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	res, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return MapError(err, "event")
	}
	if res.RowsAffected() == 0 {
		return apperror.NewNotFound("event", id)
	}
	return nil
}

func (r *EventRepo) CreateLines(ctx context.Context, eventID int64, lines []event.LineItem) error {
	if len(lines) == 0 {
		return nil
	}
	q := Builder().
		Insert(eventItemTable).
		Columns("event_id", "material_id", "kit_id", "quantity", "unit_value")
	for _, l := range lines {
		q = q.Values(eventID, l.MaterialID, l.KitID, l.Quantity, l.UnitValue)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return MapError(err, "event line")
	}
	return nil
}

func (r *EventRepo) GetLines(ctx context.Context, eventID int64) ([]event.LineItem, error) {
	q := Builder().
		Select("id", "event_id", "material_id", "kit_id", "quantity", "unit_value").
		From(eventItemTable).
		Where(squirrel.Eq{"event_id": eventID}).
		OrderBy("id ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	lines := []event.LineItem{}
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return nil, MapError(err, "event line")
	}
	return lines, nil
}

func (r *EventRepo) DeleteLines(ctx context.Context, eventID int64) error {
	sql, args, err := Builder().
		Delete(eventItemTable).
		Where(squirrel.Eq{"event_id": eventID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return MapError(err, "event line")
	}
	return nil
}

func (r *EventRepo) Delete(ctx context.Context, id int64) error {
	sql, args, err := Builder().
		Delete(eventTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	res, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return MapError(err, "event")
	}
	if res.RowsAffected() == 0 {
		return apperror.NewNotFound("event", id)
	}
	return nil
}
