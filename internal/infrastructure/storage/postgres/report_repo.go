package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"locafest/internal/domain/report"
)

// ReportRepo implements report.Repository.
type ReportRepo struct {
	txm *TxManager
}

func NewReportRepo(txm *TxManager) *ReportRepo {
	return &ReportRepo{txm: txm}
}

func (r *ReportRepo) EventCountsByStatus(ctx context.Context) ([]report.StatusCount, error) {
	sql, args, err := Builder().
		Select("status", "COUNT(*) AS count").
		From(eventTable).
		GroupBy("status").
		OrderBy("status ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	counts := []report.StatusCount{}
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &counts, sql, args...); err != nil {
		return nil, MapError(err, "event status counts")
	}
	return counts, nil
}
