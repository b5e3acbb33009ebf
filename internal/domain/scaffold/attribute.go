// Where: internal/domain/scaffold/attribute.go
// What: Model attribute (name:type) and its derived form/fixture values.
// Why: Templates need the form helper and a sample value per column type.
package scaffold

import (
	"strings"
	"time"
)

// Attribute is one field of the generated model.
type Attribute struct {
	Name string
	Type string
}

// ParseAttribute splits a "name:type" token on its first separator.
// A missing type defaults to string.
func ParseAttribute(token string) Attribute {
	name, typ, _ := strings.Cut(token, ":")
	typ = strings.TrimSpace(typ)
	if typ == "" {
		typ = "string"
	}
	return Attribute{Name: strings.TrimSpace(name), Type: typ}
}

// String renders the attribute back into its "name:type" token form.
func (a Attribute) String() string {
	return a.Name + ":" + a.Type
}

// FieldType returns the form builder helper used to edit the attribute.
func (a Attribute) FieldType() string {
	switch a.Type {
	case "integer", "float", "decimal":
		return "text_field"
	case "datetime", "timestamp", "time":
		return "datetime_select"
	case "date":
		return "date_select"
	case "string":
		return "text_field"
	case "text":
		return "text_area"
	case "boolean":
		return "check_box"
	default:
		return "text_field"
	}
}

// Default returns the sample fixture value for the attribute type.
// Time-typed attributes are rendered relative to now.
func (a Attribute) Default(now time.Time) string {
	switch a.Type {
	case "integer":
		return "1"
	case "float":
		return "1.5"
	case "decimal":
		return "9.99"
	case "datetime", "timestamp", "time":
		return now.Format("2006-01-02 15:04:05")
	case "date":
		return now.Format("2006-01-02")
	case "string":
		return "MyString"
	case "text":
		return "MyText"
	case "boolean":
		return "false"
	default:
		return ""
	}
}

// Reference reports whether the attribute declares an association.
func (a Attribute) Reference() bool {
	return a.Type == "references" || a.Type == "belongs_to"
}

// ColumnName is the database column backing the attribute.
func (a Attribute) ColumnName() string {
	if a.Reference() {
		return a.Name + "_id"
	}
	return a.Name
}
