package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"locafest/internal/domain/user"
)

const userTable = "users"

// UserRepo implements user.Repository.
type UserRepo struct {
	txm *TxManager
}

func NewUserRepo(txm *TxManager) *UserRepo {
	return &UserRepo{txm: txm}
}

func (r *UserRepo) Create(ctx context.Context, u *user.User) error {
	q := Builder().
		Insert(userTable).
		Columns("username", "password_hash", "role").
		Values(u.Username, u.PasswordHash, u.Role).
		Suffix("RETURNING id, created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&u.ID, &u.CreatedAt); err != nil {
		return MapError(err, "user")
	}
	return nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	sql, args, err := Builder().
		Select("id", "username", "password_hash", "role", "created_at").
		From(userTable).
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var u user.User
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &u, sql, args...); err != nil {
		return nil, MapError(err, "user")
	}
	return &u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]user.User, error) {
	sql, args, err := Builder().
		Select("id", "username", "password_hash", "role", "created_at").
		From(userTable).
		OrderBy("username ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	users := []user.User{}
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &users, sql, args...); err != nil {
		return nil, MapError(err, "user")
	}
	return users, nil
}
