// Where: internal/infra/schema/schema.go
// What: Column introspection contracts and the inspector chain.
// Why: Scaffolds without attributes reuse the columns of an existing model table.
package schema

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/poruru/prefab/internal/domain/scaffold"
)

// Column is one table column expressed with a Rails column type.
type Column struct {
	Name string
	Type string
}

// Inspector lists the columns of a table. An unknown table yields no
// columns and no error.
type Inspector interface {
	Columns(ctx context.Context, table string) ([]Column, error)
}

// reservedColumns are maintained by the framework and never scaffolded.
var reservedColumns = []string{"id", "created_at", "updated_at"}

// ChainInspector tries inspectors in order and returns the first non-empty
// column list. Errors are collected and returned only when nothing matched.
type ChainInspector []Inspector

func (c ChainInspector) Columns(ctx context.Context, table string) ([]Column, error) {
	var errs []error
	for _, inspector := range c {
		if inspector == nil {
			continue
		}
		columns, err := inspector.Columns(ctx, table)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if len(columns) > 0 {
			return columns, nil
		}
	}
	return nil, errors.Join(errs...)
}

// UserColumns drops the framework-maintained columns.
func UserColumns(columns []Column) []Column {
	out := make([]Column, 0, len(columns))
	for _, column := range columns {
		if slices.Contains(reservedColumns, column.Name) {
			continue
		}
		out = append(out, column)
	}
	return out
}

// AttributesForModel converts the user columns of table into scaffold attributes.
func AttributesForModel(ctx context.Context, inspector Inspector, table string) ([]scaffold.Attribute, error) {
	if inspector == nil {
		return nil, nil
	}
	columns, err := inspector.Columns(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("inspect columns of %s: %w", table, err)
	}
	columns = UserColumns(columns)
	attrs := make([]scaffold.Attribute, 0, len(columns))
	for _, column := range columns {
		attrs = append(attrs, scaffold.Attribute{Name: column.Name, Type: column.Type})
	}
	return attrs, nil
}
