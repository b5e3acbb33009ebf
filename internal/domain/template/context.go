// Where: internal/domain/template/context.go
// What: Render data handed to every generator template.
// Why: Expose request helpers plus the composite helpers that render other templates.
package template

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/poruru/prefab/internal/domain/inflect"
	"github.com/poruru/prefab/internal/domain/scaffold"
	"gopkg.in/yaml.v3"
)

// Context is the data passed to templates. Request helpers such as
// Singular, ItemPath or Action are promoted from the embedded request.
type Context struct {
	*scaffold.Request
	Now time.Time

	renderer *Renderer
}

// NewContext binds req to renderer for composite helpers.
func NewContext(req *scaffold.Request, renderer *Renderer, now time.Time) *Context {
	return &Context{Request: req, Now: now, renderer: renderer}
}

// MigrationClassName is the class name of the create-table migration.
func (c *Context) MigrationClassName() string {
	return inflect.Camelize(c.MigrationName())
}

// ShowLinks lists the link_to calls of the show view for the generated
// actions, in edit, destroy, index order.
func (c *Context) ShowLinks() []string {
	var links []string
	if c.Action("edit") {
		links = append(links, fmt.Sprintf(`link_to "Edit", edit_%s_path(@%s)`, c.VarName(), c.VarName()))
	}
	if c.Action("destroy") {
		links = append(links, fmt.Sprintf(`link_to "Destroy", @%s, :confirm => 'Are you sure?', :method => :delete`, c.VarName()))
	}
	if c.Action("index") {
		links = append(links, fmt.Sprintf(`link_to "View All", %s_path`, c.TableName()))
	}
	return links
}

// AccessibleAttributes lists the mass-assignable columns as Ruby symbols.
func (c *Context) AccessibleAttributes() string {
	symbols := make([]string, 0, len(c.Attributes))
	for _, attr := range c.Attributes {
		symbols = append(symbols, ":"+attr.ColumnName())
	}
	return strings.Join(symbols, ", ")
}

// ControllerMethods renders <dir>/<action>.rb for every generated action
// and joins them with a blank line. Actions without a template are left out.
func (c *Context) ControllerMethods(dir string) (string, error) {
	methods := make([]string, 0, len(c.Actions))
	for _, action := range c.Actions {
		name := path.Join(dir, action+".rb")
		if !c.renderer.Exists(name) {
			continue
		}
		out, err := c.renderer.Render(name, c)
		if err != nil {
			return "", err
		}
		methods = append(methods, strings.TrimRight(out, "\n"))
	}
	return strings.TrimSpace(strings.Join(methods, "\n\n")), nil
}

// RenderForm returns the form markup for new/edit views: a partial render
// call when the _form partial is generated, otherwise the inlined form.
func (c *Context) RenderForm() (string, error) {
	if c.FormPartial() {
		if c.Options.Haml {
			return "= render :partial => 'form'", nil
		}
		return "<%= render :partial => 'form' %>", nil
	}
	lang := c.Options.ViewLanguage()
	out, err := c.renderer.Render(path.Join("views", lang, "_form.html."+lang), c)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// Fixture renders one labelled fixture record with a sample value per attribute.
func (c *Context) Fixture(label string) (string, error) {
	record := &yaml.Node{Kind: yaml.MappingNode}
	for _, attr := range c.Attributes {
		record.Content = append(record.Content, scalar(attr.Name), scalar(attr.Default(c.Now)))
	}
	doc := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{scalar(label), record}}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		_ = encoder.Close()
		return "", fmt.Errorf("encode fixture %s: %w", label, err)
	}
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("encode fixture %s: %w", label, err)
	}
	return buf.String(), nil
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value}
}
