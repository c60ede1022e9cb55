package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"locafest/internal/core/apperror"
	"locafest/internal/domain/pricelist"
)

const priceTable = "price_list"

// PriceListRepo implements pricelist.Repository.
type PriceListRepo struct {
	txm *TxManager
}

func NewPriceListRepo(txm *TxManager) *PriceListRepo {
	return &PriceListRepo{txm: txm}
}

func (r *PriceListRepo) Create(ctx context.Context, p *pricelist.Price) error {
	q := Builder().
		Insert(priceTable).
		Columns("name", "type", "amount").
		Values(p.Name, p.Type, p.Amount).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&p.ID); err != nil {
		return MapError(err, "price")
	}
	return nil
}

func (r *PriceListRepo) List(ctx context.Context) ([]pricelist.Price, error) {
	sql, args, err := Builder().
		Select("id", "name", "type", "amount").
		From(priceTable).
		OrderBy("type ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	prices := []pricelist.Price{}
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &prices, sql, args...); err != nil {
		return nil, MapError(err, "price")
	}
	return prices, nil
}

func (r *PriceListRepo) Update(ctx context.Context, p *pricelist.Price) error {
	q := Builder().
		Update(priceTable).
		Set("name", p.Name).
		Set("type", p.Type).
		Set("amount", p.Amount).
		Where(squirrel.Eq{"id": p.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	res, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return MapError(err, "price")
	}
	if res.RowsAffected() == 0 {
		return apperror.NewNotFound("price", p.ID)
	}
	return nil
}

func (r *PriceListRepo) Delete(ctx context.Context, id int64) error {
	sql, args, err := Builder().
		Delete(priceTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	res, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return MapError(err, "price")
	}
	if res.RowsAffected() == 0 {
		return apperror.NewNotFound("price", id)
	}
	return nil
}
