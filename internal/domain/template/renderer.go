// Where: internal/domain/template/renderer.go
// What: Layered text/template renderer for generator templates.
// Why: Resolve templates from project overrides first, then from the built-in set.
package template

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/poruru/prefab/internal/domain/inflect"
)

// Renderer renders named templates from an ordered list of sources.
// The first source that contains a template wins.
type Renderer struct {
	sources []fs.FS
	cache   sync.Map
}

// NewRenderer returns a renderer over sources. Nil sources are ignored.
func NewRenderer(sources ...fs.FS) *Renderer {
	r := &Renderer{}
	for _, src := range sources {
		if src != nil {
			r.sources = append(r.sources, src)
		}
	}
	return r
}

// Exists reports whether any source provides name.
func (r *Renderer) Exists(name string) bool {
	_, ok := r.resolve(name)
	return ok
}

// Render executes the template name with data.
func (r *Renderer) Render(name string, data any) (string, error) {
	tmpl, err := r.load(name)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

func (r *Renderer) load(name string) (*template.Template, error) {
	if value, ok := r.cache.Load(name); ok {
		cached, ok := value.(*template.Template)
		if !ok {
			return nil, fmt.Errorf("template cache type mismatch for %s", name)
		}
		return cached, nil
	}
	src, ok := r.resolve(name)
	if !ok {
		return nil, fmt.Errorf("template not found: %s", name)
	}
	tmpl, err := template.New(path.Base(name)).
		Option("missingkey=error").
		Funcs(funcMap()).
		ParseFS(src, name)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	r.cache.Store(name, tmpl)
	return tmpl, nil
}

func (r *Renderer) resolve(name string) (fs.FS, bool) {
	for _, src := range r.sources {
		info, err := fs.Stat(src, name)
		if err == nil && !info.IsDir() {
			return src, true
		}
	}
	return nil, false
}

func funcMap() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["underscore"] = inflect.Underscore
	funcs["camelize"] = inflect.Camelize
	funcs["pluralize"] = inflect.Pluralize
	funcs["singularize"] = inflect.Singularize
	funcs["humanize"] = inflect.Humanize
	funcs["titleize"] = inflect.Titleize
	return funcs
}
