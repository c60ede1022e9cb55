package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"locafest/internal/domain/activity"
	"locafest/pkg/logger"
)

const activityTable = "activity_log"

// ActivityLog implements activity.Recorder and activity.Reader. Writes go
// straight to the pool, never through a context transaction, so a rolled-back
// business operation still leaves no trace and a failed append never aborts
// the operation that produced it. Append failures are logged and swallowed.
type ActivityLog struct {
	pool *pgxpool.Pool
}

func NewActivityLog(pool *pgxpool.Pool) *ActivityLog {
	return &ActivityLog{pool: pool}
}

func (l *ActivityLog) Record(ctx context.Context, kind string, refID *int64, description string) {
	q := Builder().
		Insert(activityTable).
		Columns("kind", "ref_id", "description").
		Values(kind, refID, description)

	sql, args, err := q.ToSql()
	if err != nil {
		logger.Warn(ctx, "activity log build failed", "kind", kind, "error", err)
		return
	}
	if _, err := l.pool.Exec(ctx, sql, args...); err != nil {
		logger.Warn(ctx, "activity log append failed", "kind", kind, "error", err)
	}
}

func (l *ActivityLog) List(ctx context.Context, limit, offset int) ([]activity.Entry, error) {
	q := Builder().
		Select("id", "kind", "ref_id", "description", "logged_at").
		From(activityTable).
		OrderBy("logged_at DESC", "id DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	if offset > 0 {
		q = q.Offset(uint64(offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	entries := []activity.Entry{}
	if err := pgxscan.Select(ctx, l.pool, &entries, sql, args...); err != nil {
		return nil, MapError(err, "activity entry")
	}
	return entries, nil
}
