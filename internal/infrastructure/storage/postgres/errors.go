package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"locafest/internal/core/apperror"
)

// PostgreSQL error codes we translate into the application taxonomy.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// MapError translates driver errors into AppError values. entity names the
// record being touched so constraint rejections produce a readable message.
func MapError(err error, entity string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NewNotFound(entity, nil)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperror.NewDuplicate(entity, constraintField(pgErr), "").
				WithCause(err)
		case pgForeignKeyViolation:
			return apperror.NewIntegrity(entity + " is referenced by other records").
				WithDetail("constraint", pgErr.ConstraintName).
				WithCause(err)
		case pgCheckViolation:
			return apperror.NewIntegrity(entity + " violates a data constraint").
				WithDetail("constraint", pgErr.ConstraintName).
				WithCause(err)
		}
	}

	return err
}

// constraintField guesses the offending field from a unique constraint name
// (our indexes follow the <table>_<field>_key / uq_<table>_<field> convention).
func constraintField(pgErr *pgconn.PgError) string {
	name := pgErr.ConstraintName
	if name == "" {
		return "value"
	}
	for _, field := range []string{"email", "tax_id", "token", "username", "name"} {
		if strings.Contains(name, field) {
			return field
		}
	}
	return "value"
}
