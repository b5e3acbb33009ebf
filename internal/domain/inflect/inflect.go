// Where: internal/domain/inflect/inflect.go
// What: Name inflection helpers (underscore, camelize, pluralize, humanize).
// Why: Derive every generated identifier from one canonical model name.
package inflect

import (
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/jinzhu/inflection"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	titleCaser = cases.Title(language.English)
	lowerCaser = cases.Lower(language.English)
)

// Underscore converts a class-style name to its snake_case path form.
// Namespace separators ("::") become path separators, so "Admin::BlogPost"
// underscores to "admin/blog_post".
func Underscore(name string) string {
	segments := splitNamespace(name)
	for i, segment := range segments {
		segments[i] = strcase.ToSnake(segment)
	}
	return strings.Join(segments, "/")
}

// Camelize converts a snake_case or path name to its class form.
// "admin/blog_post" camelizes to "Admin::BlogPost".
func Camelize(name string) string {
	segments := splitNamespace(name)
	for i, segment := range segments {
		segments[i] = strcase.ToCamel(segment)
	}
	return strings.Join(segments, "::")
}

// Pluralize returns the plural form of the last word in name.
func Pluralize(name string) string {
	if name == "" {
		return ""
	}
	return inflection.Plural(name)
}

// Singularize returns the singular form of the last word in name.
func Singularize(name string) string {
	if name == "" {
		return ""
	}
	return inflection.Singular(name)
}

// Humanize turns an underscored name into a sentence-cased phrase:
// a trailing "_id" is dropped, underscores become spaces and only the
// first word is capitalized ("author_id" -> "Author", "blog_post" -> "Blog post").
func Humanize(name string) string {
	name = strings.TrimSuffix(Underscore(name), "_id")
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "/", " ")
	name = strings.TrimSpace(lowerCaser.String(name))
	if name == "" {
		return ""
	}
	first, rest, found := strings.Cut(name, " ")
	if !found {
		return titleCaser.String(first)
	}
	return titleCaser.String(first) + " " + rest
}

// Titleize capitalizes every word of the humanized name ("blog_posts" -> "Blog Posts").
func Titleize(name string) string {
	return titleCaser.String(Humanize(name))
}

func splitNamespace(name string) []string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "::", "/")
	parts := strings.Split(name, "/")
	out := parts[:0]
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}
