// Where: internal/domain/scaffold/helpers.go
// What: Naming and route-path helpers derived from a request.
// Why: Templates and manifest paths share one set of name transforms.
package scaffold

import (
	"slices"
	"strings"

	"github.com/poruru/prefab/internal/domain/inflect"
)

// Singular is the underscored model name.
func (r *Request) Singular() string { return inflect.Underscore(r.Name) }

// Plural is the underscored, pluralized model name.
func (r *Request) Plural() string { return inflect.Pluralize(r.Singular()) }

// ClassName is the model class name.
func (r *Request) ClassName() string { return inflect.Camelize(r.Name) }

// PluralClassName is the camelized plural, used for controller and migration classes.
func (r *Request) PluralClassName() string { return inflect.Camelize(r.Plural()) }

// HumanName is the sentence-cased singular name ("Blog post").
func (r *Request) HumanName() string { return inflect.Humanize(r.Singular()) }

// TitleName is the title-cased singular name ("Blog Post").
func (r *Request) TitleName() string { return inflect.Titleize(r.Singular()) }

// TitlePlural is the title-cased plural name ("Blog Posts").
func (r *Request) TitlePlural() string { return inflect.Titleize(r.Plural()) }

// MigrationName is the file-name stem of the create-table migration.
func (r *Request) MigrationName() string { return "create_" + r.TableName() }

// VarName is the singular name as a Ruby identifier, used for instance
// variables, params keys and route helpers ("admin/post" -> "admin_post").
func (r *Request) VarName() string {
	return strings.ReplaceAll(r.Singular(), "/", "_")
}

// Namespaced reports whether the name carries a module path ("admin/post").
func (r *Request) Namespaced() bool {
	return strings.Contains(r.Singular(), "/")
}

// SpecHelperPath is the spec_helper require path relative to a generated
// spec, one level deeper per namespace segment.
func (r *Request) SpecHelperPath() string {
	return "/" + strings.Repeat("../", 1+strings.Count(r.Singular(), "/")) + "spec_helper"
}

// Action reports whether the named action is generated.
func (r *Request) Action(name string) bool {
	return slices.Contains(r.Actions, name)
}

// HasActions reports whether every named action is generated.
func (r *Request) HasActions(names ...string) bool {
	for _, name := range names {
		if !r.Action(name) {
			return false
		}
	}
	return true
}

// FormPartial reports whether new and edit share a _form partial.
func (r *Request) FormPartial() bool {
	return r.HasActions("new", "edit")
}

// ItemPath is the redirect target for a single record inside views and
// controllers: the instance when a show action exists, else the collection.
func (r *Request) ItemPath(suffix string) string {
	suffix = pathSuffix(suffix)
	if r.Action("show") {
		return "@" + r.VarName()
	}
	return r.TableName() + "_" + suffix
}

// ItemPathForSpec is ItemPath expressed for RSpec controller specs.
func (r *Request) ItemPathForSpec(suffix string) string {
	suffix = pathSuffix(suffix)
	if r.Action("show") {
		return r.VarName() + "_" + suffix + "(assigns[:" + r.VarName() + "])"
	}
	return r.TableName() + "_" + suffix
}

// ItemPathForTest is ItemPath expressed for Test::Unit functional tests.
func (r *Request) ItemPathForTest(suffix string) string {
	suffix = pathSuffix(suffix)
	if r.Action("show") {
		return r.VarName() + "_" + suffix + "(assigns(:" + r.VarName() + "))"
	}
	return r.TableName() + "_" + suffix
}

func pathSuffix(suffix string) string {
	if suffix == "" {
		return "path"
	}
	return suffix
}

// TableName is the database table of the model.
func (r *Request) TableName() string {
	return strings.ReplaceAll(r.Plural(), "/", "_")
}
