// Where: internal/domain/manifest/manifest.go
// What: Ordered list of file operations for one generator run.
// Why: Keep the option gating of every emitted file in one linear sequence.
package manifest

import (
	"fmt"
	"path"
	"strings"

	"github.com/poruru/prefab/internal/domain/scaffold"
)

// Kind identifies the operation performed by a step.
type Kind int

const (
	// Directory ensures a directory exists.
	Directory Kind = iota
	// Template renders Source into Destination.
	Template
	// MigrationTemplate renders Source into a timestamped file under Destination.
	MigrationTemplate
	// RouteResources registers a resource route.
	RouteResources
)

func (k Kind) String() string {
	switch k {
	case Directory:
		return "directory"
	case Template:
		return "template"
	case MigrationTemplate:
		return "migration_template"
	case RouteResources:
		return "route_resources"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Step is a single manifest operation. Paths are slash-separated and
// relative to the project root.
type Step struct {
	Kind          Kind
	Source        string
	Destination   string
	MigrationName string
	Resource      string
}

func (s Step) String() string {
	switch s.Kind {
	case Directory:
		return fmt.Sprintf("%s %s", s.Kind, s.Destination)
	case MigrationTemplate:
		return fmt.Sprintf("%s %s -> %s/*_%s.rb", s.Kind, s.Source, s.Destination, s.MigrationName)
	case RouteResources:
		return fmt.Sprintf("%s %s", s.Kind, s.Resource)
	default:
		return fmt.Sprintf("%s %s -> %s", s.Kind, s.Source, s.Destination)
	}
}

// TemplateLookup reports whether a template source exists.
type TemplateLookup interface {
	Exists(name string) bool
}

// Build returns the manifest for req. Per-action views are included only
// when templates provides the matching view template.
func Build(req *scaffold.Request, templates TemplateLookup) []Step {
	var m recorder
	singular, plural := req.Singular(), req.Plural()
	fw := req.Options.TestFramework

	if !req.Options.SkipModel {
		m.directory("app/models")
		m.nested("app/models", path.Dir(singular))
		m.template("model.rb", path.Join("app/models", singular+".rb"))
		if !req.Options.SkipMigration {
			m.migrationTemplate("migration.rb", "db/migrate", req.MigrationName())
		}

		if fw == scaffold.RSpec {
			m.directory("spec/models")
			m.nested("spec/models", path.Dir(singular))
			m.template("tests/rspec/model.rb", path.Join("spec/models", singular+"_spec.rb"))
		} else {
			m.directory("test/unit")
			m.nested("test/unit", path.Dir(singular))
			m.template(path.Join("tests", fw, "model.rb"), path.Join("test/unit", singular+"_test.rb"))
		}
		m.directory("test/fixtures")
		m.nested("test/fixtures", path.Dir(plural))
		m.template("fixtures.yml", path.Join("test/fixtures", plural+".yml"))
	}

	if !req.Options.SkipController {
		m.directory("app/controllers")
		m.nested("app/controllers", path.Dir(plural))
		m.template("controller.rb", path.Join("app/controllers", plural+"_controller.rb"))

		if fw == scaffold.RSpec {
			m.directory("spec/controllers")
			m.nested("spec/controllers", path.Dir(plural))
			m.template("tests/rspec/controller.rb", path.Join("spec/controllers", plural+"_controller_spec.rb"))
		} else {
			m.directory("test/functional")
			m.nested("test/functional", path.Dir(plural))
			m.template(path.Join("tests", fw, "controller.rb"), path.Join("test/functional", plural+"_controller_test.rb"))
		}

		lang := req.Options.ViewLanguage()
		viewDir := path.Join("app/views", plural)
		m.nested("app/views", plural)
		for _, action := range req.Actions {
			source := ViewTemplate(lang, action)
			if templates != nil && templates.Exists(source) {
				m.template(source, path.Join(viewDir, action+".html."+lang))
			}
		}
		m.template(ViewTemplate(lang, "_model"), path.Join(viewDir, "_"+path.Base(singular)+".html."+lang))
		if req.FormPartial() {
			m.template(ViewTemplate(lang, "_form"), path.Join(viewDir, "_form.html."+lang))
		}
		m.routeResources(plural)
	}
	return m.steps
}

// ViewTemplate is the template name of a view in the given language.
func ViewTemplate(lang, view string) string {
	return path.Join("views", lang, view+".html."+lang)
}

type recorder struct {
	steps []Step
}

func (r *recorder) directory(dest string) {
	r.steps = append(r.steps, Step{Kind: Directory, Destination: dest})
}

// nested records one directory per segment of rel below base, outermost
// first, so destroy removes namespace directories innermost first.
func (r *recorder) nested(base, rel string) {
	if rel == "." || rel == "" {
		return
	}
	dir := base
	for _, segment := range strings.Split(rel, "/") {
		dir = path.Join(dir, segment)
		r.directory(dir)
	}
}

func (r *recorder) template(source, dest string) {
	r.steps = append(r.steps, Step{Kind: Template, Source: source, Destination: dest})
}

func (r *recorder) migrationTemplate(source, dir, name string) {
	r.steps = append(r.steps, Step{Kind: MigrationTemplate, Source: source, Destination: dir, MigrationName: name})
}

func (r *recorder) routeResources(resource string) {
	r.steps = append(r.steps, Step{Kind: RouteResources, Resource: resource})
}
