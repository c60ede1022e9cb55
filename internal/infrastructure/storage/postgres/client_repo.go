package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"locafest/internal/core/apperror"
	"locafest/internal/domain/client"
)

const clientTable = "clients"

var clientCols = []string{
	"id", "name", "phone", "email", "tax_id", "cep", "street", "district",
	"city", "state", "number", "complement", "created_at",
}

// ClientRepo implements client.Repository.
type ClientRepo struct {
	txm *TxManager
}

func NewClientRepo(txm *TxManager) *ClientRepo {
	return &ClientRepo{txm: txm}
}

func (r *ClientRepo) Create(ctx context.Context, c *client.Client) error {
	q := Builder().
		Insert(clientTable).
		Columns("name", "phone", "email", "tax_id", "cep", "street",
			"district", "city", "state", "number", "complement").
		Values(c.Name, c.Phone, c.Email, c.TaxID, c.CEP, c.Street,
			c.District, c.City, c.State, c.Number, c.Complement).
		Suffix("RETURNING id, created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.CreatedAt); err != nil {
		return MapError(err, "client")
	}
	return nil
}

func (r *ClientRepo) GetByID(ctx context.Context, id int64) (*client.Client, error) {
	q := Builder().
		Select(clientCols...).
		From(clientTable).
		Where(squirrel.Eq{"id": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var c client.Client
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &c, sql, args...); err != nil {
		return nil, MapError(err, "client")
	}
	return &c, nil
}

func (r *ClientRepo) List(ctx context.Context, filter client.ListFilter) ([]client.Client, error) {
	q := Builder().
		Select(clientCols...).
		From(clientTable).
		OrderBy("name ASC")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"email": pattern},
			squirrel.ILike{"tax_id": pattern},
		})
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

	clients := []client.Client{}
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &clients, sql, args...); err != nil {
		return nil, MapError(err, "client")
	}
	return clients, nil
}

func (r *ClientRepo) Update(ctx context.Context, c *client.Client) error {
	q := Builder().
		Update(clientTable).
		Set("name", c.Name).
		Set("phone", c.Phone).
		Set("email", c.Email).
		Set("tax_id", c.TaxID).
		Set("cep", c.CEP).
		Set("street", c.Street).
		Set("district", c.District).
		Set("city", c.City).
		Set("state", c.State).
		Set("number", c.Number).
		Set("complement", c.Complement).
		Where(squirrel.Eq{"id": c.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	res, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return MapError(err, "client")
	}
	if res.RowsAffected() == 0 {
		return apperror.NewNotFound("client", c.ID)
	}
	return nil
}

// Delete fails with an integrity error while quotes or events still
// reference the client; the foreign keys are declared RESTRICT.
func (r *ClientRepo) Delete(ctx context.Context, id int64) error {
	q := Builder().
		Delete(clientTable).
		Where(squirrel.Eq{"id": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	res, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return MapError(err, "client")
	}
	if res.RowsAffected() == 0 {
		return apperror.NewNotFound("client", id)
	}
	return nil
}
