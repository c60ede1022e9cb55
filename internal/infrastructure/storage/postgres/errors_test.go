package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"locafest/internal/core/apperror"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "NoRows",
			err:      pgx.ErrNoRows,
			wantCode: apperror.CodeNotFound,
		},
		{
			name:     "UniqueViolation",
			err:      &pgconn.PgError{Code: "23505", ConstraintName: "clients_email_key"},
			wantCode: apperror.CodeDuplicate,
		},
		{
			name:     "ForeignKeyViolation",
			err:      &pgconn.PgError{Code: "23503", ConstraintName: "event_items_material_id_fkey"},
			wantCode: apperror.CodeIntegrity,
		},
		{
			name:     "CheckViolation",
			err:      &pgconn.PgError{Code: "23514", ConstraintName: "materials_quantity_check"},
			wantCode: apperror.CodeIntegrity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err, "client")
			if !apperror.IsCode(got, tt.wantCode) {
				t.Errorf("code mismatch\nwant: %s\ngot:  %v", tt.wantCode, got)
			}
		})
	}
}

func TestMapErrorPassthrough(t *testing.T) {
	if got := MapError(nil, "client"); got != nil {
		t.Errorf("nil should map to nil, got %v", got)
	}

	plain := errors.New("connection reset")
	if got := MapError(plain, "client"); got != plain {
		t.Errorf("unrecognized errors must pass through, got %v", got)
	}
}

func TestConstraintField(t *testing.T) {
	tests := []struct {
		constraint string
		want       string
	}{
		{"clients_email_key", "email"},
		{"clients_tax_id_key", "tax_id"},
		{"quotes_token_key", "token"},
		{"uq_materials_name", "name"},
		{"", "value"},
		{"something_else", "value"},
	}
	for _, tt := range tests {
		got := constraintField(&pgconn.PgError{ConstraintName: tt.constraint})
		if got != tt.want {
			t.Errorf("constraintField(%q) = %q, want %q", tt.constraint, got, tt.want)
		}
	}
}
