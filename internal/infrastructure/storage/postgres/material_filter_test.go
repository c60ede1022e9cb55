package postgres

import (
	"reflect"
	"testing"

	"locafest/internal/domain/material"
)

func TestApplyMaterialFilter(t *testing.T) {
	tests := []struct {
		name     string
		filter   material.ListFilter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "Empty",
			filter:   material.ListFilter{},
			wantSQL:  "SELECT id FROM materials",
			wantArgs: nil,
		},
		{
			name:     "Category",
			filter:   material.ListFilter{Category: material.CategoryRental},
			wantSQL:  "SELECT id FROM materials WHERE category = $1",
			wantArgs: []any{material.CategoryRental},
		},
		{
			name:     "Search",
			filter:   material.ListFilter{Search: "toalha"},
			wantSQL:  "SELECT id FROM materials WHERE name ILIKE $1",
			wantArgs: []any{"%toalha%"},
		},
		{
			name:     "Combined",
			filter:   material.ListFilter{Category: material.CategoryDisposable, Search: "copo"},
			wantSQL:  "SELECT id FROM materials WHERE category = $1 AND name ILIKE $2",
			wantArgs: []any{material.CategoryDisposable, "%copo%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := applyMaterialFilter(Builder().Select("id").From(materialTable), tt.filter)

			sql, args, err := q.ToSql()
			if err != nil {
				t.Fatalf("ToSql failed: %v", err)
			}

			if sql != tt.wantSQL {
				t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", tt.wantSQL, sql)
			}
			if len(args) != len(tt.wantArgs) {
				t.Fatalf("Args count mismatch\nwant: %d\ngot:  %d", len(tt.wantArgs), len(args))
			}
			for i := range args {
				if !reflect.DeepEqual(args[i], tt.wantArgs[i]) {
					t.Errorf("Arg %d mismatch\nwant: %v\ngot:  %v", i, tt.wantArgs[i], args[i])
				}
			}
		})
	}
}
