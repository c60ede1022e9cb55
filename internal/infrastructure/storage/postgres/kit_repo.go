package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"locafest/internal/core/apperror"
	"locafest/internal/domain/kit"
)

const (
	kitTable     = "kits"
	kitItemTable = "kit_items"
)

var kitCols = []string{"id", "name", "price", "image_path", "status", "created_at"}

// KitRepo implements kit.Repository.
type KitRepo struct {
	txm *TxManager
}

func NewKitRepo(txm *TxManager) *KitRepo {
	return &KitRepo{txm: txm}
}

func (r *KitRepo) Create(ctx context.Context, k *kit.Kit) error {
	q := Builder().
		Insert(kitTable).
		Columns("name", "price", "image_path", "status").
		Values(k.Name, k.Price, k.ImagePath, k.Status).
		Suffix("RETURNING id, created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&k.ID, &k.CreatedAt); err != nil {
		return MapError(err, "kit")
	}
	return nil
}

func (r *KitRepo) get(ctx context.Context, id int64, forUpdate bool) (*kit.Kit, error) {
	q := Builder().
		Select(kitCols...).
		From(kitTable).
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var k kit.Kit
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &k, sql, args...); err != nil {
		return nil, MapError(err, "kit")
	}
	return &k, nil
}

func (r *KitRepo) GetByID(ctx context.Context, id int64) (*kit.Kit, error) {
	return r.get(ctx, id, false)
}

func (r *KitRepo) GetForUpdate(ctx context.Context, id int64) (*kit.Kit, error) {
	return r.get(ctx, id, true)
}

func (r *KitRepo) NameExists(ctx context.Context, name string) (bool, error) {
	q := Builder().
		Select("1").
		From(kitTable).
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
		if apperror.IsNotFound(MapError(err, "kit")) {
			return false, nil
		}
		return false, MapError(err, "kit")
	}
	return true, nil
}

func (r *KitRepo) List(ctx context.Context, filter kit.ListFilter) ([]kit.Kit, error) {
	q := Builder().
		Select(kitCols...).
		From(kitTable).
		OrderBy("name ASC")

	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"status": *filter.Status})
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

	kits := []kit.Kit{}
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &kits, sql, args...); err != nil {
		return nil, MapError(err, "kit")
	}
	return kits, nil
}

func (r *KitRepo) SaveItems(ctx context.Context, kitID int64, items []kit.Item) error {
	if len(items) == 0 {
		return nil
	}
	q := Builder().
		Insert(kitItemTable).
		Columns("kit_id", "material_id", "quantity")
	for _, it := range items {
		q = q.Values(kitID, it.MaterialID, it.Quantity)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return MapError(err, "kit item")
	}
	return nil
}

func (r *KitRepo) GetItems(ctx context.Context, kitID int64) ([]kit.Item, error) {
	q := Builder().
		Select("id", "kit_id", "material_id", "quantity").
		From(kitItemTable).
		Where(squirrel.Eq{"kit_id": kitID}).
		OrderBy("id ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	items := []kit.Item{}
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, MapError(err, "kit item")
	}
	return items, nil
}

func (r *KitRepo) UpdateStatus(ctx context.Context, id int64, status kit.Status) error {
	q := Builder().
		Update(kitTable).
		Set("status", status).
		Where(squirrel.Eq{"id": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	res, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return MapError(err, "kit")
	}
	if res.RowsAffected() == 0 {
		return apperror.NewNotFound("kit", id)
	}
	return nil
}

func (r *KitRepo) UpdateImage(ctx context.Context, id int64, path string) error {
	q := Builder().
		Update(kitTable).
		Set("image_path", path).
		Where(squirrel.Eq{"id": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	res, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return MapError(err, "kit")
	}
	if res.RowsAffected() == 0 {
		return apperror.NewNotFound("kit", id)
	}
	return nil
}

// Delete removes the kit together with its composition rows.
func (r *KitRepo) Delete(ctx context.Context, id int64) error {
	itemsSQL, itemsArgs, err := Builder().
		Delete(kitItemTable).
		Where(squirrel.Eq{"kit_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, itemsSQL, itemsArgs...); err != nil {
		return MapError(err, "kit item")
	}

	kitSQL, kitArgs, err := Builder().
		Delete(kitTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	res, err := querier.Exec(ctx, kitSQL, kitArgs...)
	if err != nil {
		return MapError(err, "kit")
	}
	if res.RowsAffected() == 0 {
		return apperror.NewNotFound("kit", id)
	}
	return nil
}
