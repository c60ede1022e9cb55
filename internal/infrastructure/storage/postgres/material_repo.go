package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"locafest/internal/core/apperror"
	"locafest/internal/core/types"
	"locafest/internal/domain/material"
)

const materialTable = "materials"

var materialCols = []string{
	"id", "name", "category", "unit", "sub_unit_qty", "quantity",
	"purchase_price", "resale_price", "image_path", "created_at",
}

// MaterialRepo implements material.Repository.
type MaterialRepo struct {
	txm *TxManager
}

func NewMaterialRepo(txm *TxManager) *MaterialRepo {
	return &MaterialRepo{txm: txm}
}

func (r *MaterialRepo) Create(ctx context.Context, m *material.Material) error {
	q := Builder().
		Insert(materialTable).
		Columns("name", "category", "unit", "sub_unit_qty", "quantity",
			"purchase_price", "resale_price", "image_path").
		Values(m.Name, m.Category, m.Unit, m.SubUnitQty, m.Quantity,
			m.PurchasePrice, m.ResalePrice, m.ImagePath).
		Suffix("RETURNING id, created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&m.ID, &m.CreatedAt); err != nil {
		return MapError(err, "material")
	}
	return nil
}

func (r *MaterialRepo) get(ctx context.Context, id int64, forUpdate bool) (*material.Material, error) {
	q := Builder().
		Select(materialCols...).
		From(materialTable).
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var m material.Material
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &m, sql, args...); err != nil {
		return nil, MapError(err, "material")
	}
	return &m, nil
}

func (r *MaterialRepo) GetByID(ctx context.Context, id int64) (*material.Material, error) {
	return r.get(ctx, id, false)
}

func (r *MaterialRepo) GetForUpdate(ctx context.Context, id int64) (*material.Material, error) {
	return r.get(ctx, id, true)
}

func (r *MaterialRepo) NameExists(ctx context.Context, name string) (bool, error) {
	q := Builder().
		Select("1").
		From(materialTable).
		Where(squirrel.Eq{"name": name}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build select: %w", err)
	}

	var one int
	querier := r.txm.GetQuerier(ctx)
	err = querier.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if apperror.IsNotFound(MapError(err, "material")) {
			return false, nil
		}
		return false, MapError(err, "material")
	}
	return true, nil
}

// applyMaterialFilter translates the listing filter into WHERE clauses.
func applyMaterialFilter(q squirrel.SelectBuilder, f material.ListFilter) squirrel.SelectBuilder {
	if f.Category != "" {
		q = q.Where(squirrel.Eq{"category": f.Category})
	}
	if f.Search != "" {
		q = q.Where(squirrel.ILike{"name": "%" + f.Search + "%"})
	}
	return q
}

func (r *MaterialRepo) List(ctx context.Context, filter material.ListFilter) ([]material.Material, error) {
	q := applyMaterialFilter(Builder().
		Select(materialCols...).
		From(materialTable), filter).
		OrderBy("name ASC")

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

	materials := []material.Material{}
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &materials, sql, args...); err != nil {
		return nil, MapError(err, "material")
	}
	return materials, nil
}

func (r *MaterialRepo) Update(ctx context.Context, m *material.Material) error {
	q := Builder().
		Update(materialTable).
		Set("name", m.Name).
		Set("category", m.Category).
		Set("unit", m.Unit).
		Set("sub_unit_qty", m.SubUnitQty).
		Set("purchase_price", m.PurchasePrice).
		Set("resale_price", m.ResalePrice).
		Set("image_path", m.ImagePath).
		Where(squirrel.Eq{"id": m.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	res, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return MapError(err, "material")
	}
	if res.RowsAffected() == 0 {
		return apperror.NewNotFound("material", m.ID)
	}
	return nil
}

func (r *MaterialRepo) Delete(ctx context.Context, id int64) error {
	q := Builder().
		Delete(materialTable).
		Where(squirrel.Eq{"id": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	res, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return MapError(err, "material")
	}
	if res.RowsAffected() == 0 {
		return apperror.NewNotFound("material", id)
	}
	return nil
}

// AdjustQuantity applies a signed delta to the on-hand quantity. The CHECK
// constraint on the column turns a negative result into an integrity error.
func (r *MaterialRepo) AdjustQuantity(ctx context.Context, id int64, delta types.Quantity) error {
	q := Builder().
		Update(materialTable).
		Set("quantity", squirrel.Expr("quantity + ?", delta)).
		Where(squirrel.Eq{"id": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	res, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return MapError(err, "material")
	}
	if res.RowsAffected() == 0 {
		return apperror.NewNotFound("material", id)
	}
	return nil
}
