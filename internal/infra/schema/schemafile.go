// Where: internal/infra/schema/schemafile.go
// What: Column inspector backed by the dumped db/schema.rb.
// Why: Projects without a reachable database still carry their schema dump.
package schema

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	createTablePattern = regexp.MustCompile(`^\s*create_table\s+["':]?([\w.]+)["']?(.*)\bdo\s*\|\s*(\w+)\s*\|`)
	columnPattern      = regexp.MustCompile(`^\s*(\w+)\.(\w+)(?:\s+["':]?(\w+)["']?)?`)
	endPattern         = regexp.MustCompile(`^\s*end\b`)
)

// nonColumnMethods are table-block calls that do not declare a column.
var nonColumnMethods = map[string]bool{
	"index":            true,
	"timestamps":       true,
	"remove":           true,
	"check_constraint": true,
}

// SchemaFileInspector reads columns from a schema.rb dump.
type SchemaFileInspector struct {
	Path string
}

func (i SchemaFileInspector) Columns(_ context.Context, table string) ([]Column, error) {
	data, err := os.ReadFile(i.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	return ParseSchemaFile(string(data), table), nil
}

// ParseSchemaFile returns the columns declared by the create_table block of
// table. Tables created with `:id => false` or `id: false` get no id column.
func ParseSchemaFile(content, table string) []Column {
	var (
		columns []Column
		block   string
		inTable bool
	)
	for _, line := range strings.Split(content, "\n") {
		if !inTable {
			match := createTablePattern.FindStringSubmatch(line)
			if match == nil || match[1] != table {
				continue
			}
			inTable = true
			block = match[3]
			if !strings.Contains(match[2], "id: false") && !strings.Contains(match[2], ":id => false") {
				columns = append(columns, Column{Name: "id", Type: "integer"})
			}
			continue
		}
		if endPattern.MatchString(line) {
			break
		}
		match := columnPattern.FindStringSubmatch(line)
		if match == nil || match[1] != block {
			continue
		}
		method, name := match[2], match[3]
		if nonColumnMethods[method] {
			if method == "timestamps" {
				columns = append(columns,
					Column{Name: "created_at", Type: "datetime"},
					Column{Name: "updated_at", Type: "datetime"},
				)
			}
			continue
		}
		if name == "" {
			continue
		}
		if method == "column" {
			columns = append(columns, Column{Name: name, Type: columnCallType(line)})
			continue
		}
		columns = append(columns, Column{Name: name, Type: method})
	}
	return columns
}

var columnCallPattern = regexp.MustCompile(`\.column\s+["':]?\w+["']?\s*,\s*[:"']?(\w+)`)

func columnCallType(line string) string {
	match := columnCallPattern.FindStringSubmatch(line)
	if match == nil {
		return "string"
	}
	return match[1]
}
