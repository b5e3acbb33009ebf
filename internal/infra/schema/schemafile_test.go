// Where: internal/infra/schema/schemafile_test.go
// What: Tests for db/schema.rb parsing.
// Why: Cover both hash syntaxes written by schema dumpers.
package schema

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const railsSchema = `ActiveRecord::Schema.define(version: 2026_10_01_120000) do
  create_table "authors", force: :cascade do |t|
    t.string "name"
  end

  create_table "blog_posts", force: :cascade do |t|
    t.string "title", limit: 120
    t.text "body"
    t.boolean "published", default: false, null: false
    t.references "author", foreign_key: true
    t.column "rating", :decimal
    t.datetime "created_at", null: false
    t.datetime "updated_at", null: false
    t.index ["author_id"], name: "index_blog_posts_on_author_id"
  end
end
`

const legacySchema = `ActiveRecord::Schema.define(:version => 20090101000000) do
  create_table "tags", :id => false, :force => true do |table|
    table.string   "label"
    table.integer  "weight"
    table.timestamps
  end
end
`

func TestParseSchemaFile(t *testing.T) {
	got := ParseSchemaFile(railsSchema, "blog_posts")
	want := []Column{
		{Name: "id", Type: "integer"},
		{Name: "title", Type: "string"},
		{Name: "body", Type: "text"},
		{Name: "published", Type: "boolean"},
		{Name: "author", Type: "references"},
		{Name: "rating", Type: "decimal"},
		{Name: "created_at", Type: "datetime"},
		{Name: "updated_at", Type: "datetime"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseSchemaFile() = %#v, want %#v", got, want)
	}
}

func TestParseSchemaFileLegacySyntax(t *testing.T) {
	got := ParseSchemaFile(legacySchema, "tags")
	want := []Column{
		{Name: "label", Type: "string"},
		{Name: "weight", Type: "integer"},
		{Name: "created_at", Type: "datetime"},
		{Name: "updated_at", Type: "datetime"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseSchemaFile() = %#v, want %#v", got, want)
	}
	if got := ParseSchemaFile(legacySchema, "missing"); len(got) != 0 {
		t.Fatalf("expected no columns for unknown table, got %#v", got)
	}
}

func TestSchemaFileInspector(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.rb")

	cols, err := SchemaFileInspector{Path: path}.Columns(context.Background(), "blog_posts")
	if err != nil || cols != nil {
		t.Fatalf("missing schema file = %#v, %v", cols, err)
	}

	if err := os.WriteFile(path, []byte(railsSchema), 0o644); err != nil {
		t.Fatalf("write schema: %v", err)
	}
	cols, err = SchemaFileInspector{Path: path}.Columns(context.Background(), "authors")
	if err != nil {
		t.Fatalf("Columns() error = %v", err)
	}
	want := []Column{{Name: "id", Type: "integer"}, {Name: "name", Type: "string"}}
	if !reflect.DeepEqual(cols, want) {
		t.Fatalf("Columns() = %#v, want %#v", cols, want)
	}
}
