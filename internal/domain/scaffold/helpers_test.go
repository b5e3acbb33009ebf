package scaffold

import (
	"testing"
	"time"
)

func TestNameTransforms(t *testing.T) {
	req := &Request{Name: "blog_post"}
	checks := map[string]string{
		"Singular":        req.Singular(),
		"Plural":          req.Plural(),
		"ClassName":       req.ClassName(),
		"PluralClassName": req.PluralClassName(),
		"HumanName":       req.HumanName(),
		"TitlePlural":     req.TitlePlural(),
		"MigrationName":   req.MigrationName(),
	}
	want := map[string]string{
		"Singular":        "blog_post",
		"Plural":          "blog_posts",
		"ClassName":       "BlogPost",
		"PluralClassName": "BlogPosts",
		"HumanName":       "Blog post",
		"TitlePlural":     "Blog Posts",
		"MigrationName":   "create_blog_posts",
	}
	for key, got := range checks {
		if got != want[key] {
			t.Fatalf("%s = %q, want %q", key, got, want[key])
		}
	}
}

func TestNamespacedNameTransforms(t *testing.T) {
	req := &Request{Name: "Admin::BlogPost", Actions: []string{"index", "show"}}
	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "Singular", got: req.Singular(), want: "admin/blog_post"},
		{name: "Plural", got: req.Plural(), want: "admin/blog_posts"},
		{name: "ClassName", got: req.ClassName(), want: "Admin::BlogPost"},
		{name: "PluralClassName", got: req.PluralClassName(), want: "Admin::BlogPosts"},
		{name: "TableName", got: req.TableName(), want: "admin_blog_posts"},
		{name: "MigrationName", got: req.MigrationName(), want: "create_admin_blog_posts"},
		{name: "VarName", got: req.VarName(), want: "admin_blog_post"},
		{name: "SpecHelperPath", got: req.SpecHelperPath(), want: "/../../spec_helper"},
		{name: "ItemPath", got: req.ItemPath("url"), want: "@admin_blog_post"},
		{name: "ItemPathForTest", got: req.ItemPathForTest("url"), want: "admin_blog_post_url(assigns(:admin_blog_post))"},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Fatalf("%s = %q, want %q", tc.name, tc.got, tc.want)
		}
	}
	if !req.Namespaced() {
		t.Fatal("expected namespaced request")
	}

	flat := &Request{Name: "post", Actions: []string{"index"}}
	if flat.Namespaced() || flat.SpecHelperPath() != "/../spec_helper" || flat.ItemPath("url") != "posts_url" {
		t.Fatalf("unexpected flat helpers: %v %q %q", flat.Namespaced(), flat.SpecHelperPath(), flat.ItemPath("url"))
	}
}

func TestFormPartial(t *testing.T) {
	tests := []struct {
		actions []string
		want    bool
	}{
		{actions: []string{"new", "create", "edit", "update"}, want: true},
		{actions: []string{"new", "create"}, want: false},
		{actions: []string{"edit", "update"}, want: false},
		{actions: nil, want: false},
	}
	for _, tc := range tests {
		req := &Request{Name: "post", Actions: tc.actions}
		if got := req.FormPartial(); got != tc.want {
			t.Fatalf("FormPartial(%v) = %v, want %v", tc.actions, got, tc.want)
		}
	}
}

func TestItemPathHelpers(t *testing.T) {
	withShow := &Request{Name: "blog_post", Actions: []string{"index", "show"}}
	withoutShow := &Request{Name: "blog_post", Actions: []string{"index"}}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "view with show", got: withShow.ItemPath("url"), want: "@blog_post"},
		{name: "view without show", got: withoutShow.ItemPath("url"), want: "blog_posts_url"},
		{name: "view default suffix", got: withoutShow.ItemPath(""), want: "blog_posts_path"},
		{name: "spec with show", got: withShow.ItemPathForSpec("url"), want: "blog_post_url(assigns[:blog_post])"},
		{name: "spec without show", got: withoutShow.ItemPathForSpec("url"), want: "blog_posts_url"},
		{name: "test with show", got: withShow.ItemPathForTest("url"), want: "blog_post_url(assigns(:blog_post))"},
		{name: "test without show", got: withoutShow.ItemPathForTest(""), want: "blog_posts_path"},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, tc.got, tc.want)
		}
	}
}

func TestAttributeDerivedValues(t *testing.T) {
	now := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	tests := []struct {
		attr      Attribute
		fieldType string
		value     string
	}{
		{attr: Attribute{"views", "integer"}, fieldType: "text_field", value: "1"},
		{attr: Attribute{"ratio", "float"}, fieldType: "text_field", value: "1.5"},
		{attr: Attribute{"price", "decimal"}, fieldType: "text_field", value: "9.99"},
		{attr: Attribute{"published_at", "datetime"}, fieldType: "datetime_select", value: "2026-10-16 09:30:00"},
		{attr: Attribute{"born_on", "date"}, fieldType: "date_select", value: "2026-10-16"},
		{attr: Attribute{"title", "string"}, fieldType: "text_field", value: "MyString"},
		{attr: Attribute{"body", "text"}, fieldType: "text_area", value: "MyText"},
		{attr: Attribute{"draft", "boolean"}, fieldType: "check_box", value: "false"},
		{attr: Attribute{"blob", "binary"}, fieldType: "text_field", value: ""},
	}
	for _, tc := range tests {
		if got := tc.attr.FieldType(); got != tc.fieldType {
			t.Fatalf("%s FieldType() = %q, want %q", tc.attr, got, tc.fieldType)
		}
		if got := tc.attr.Default(now); got != tc.value {
			t.Fatalf("%s Default() = %q, want %q", tc.attr, got, tc.value)
		}
	}

	author := ParseAttribute("author:references")
	if !author.Reference() || author.ColumnName() != "author_id" {
		t.Fatalf("unexpected reference handling: %+v", author)
	}
	if got := ParseAttribute("title").Type; got != "string" {
		t.Fatalf("ParseAttribute default type = %q", got)
	}
}
