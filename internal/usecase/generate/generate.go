// Where: internal/usecase/generate/generate.go
// What: Generate and destroy workflow orchestration.
// Why: Encapsulate option resolution, manifest building and emission without CLI concerns.
package generate

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/poruru/prefab/assets"
	"github.com/poruru/prefab/internal/config"
	"github.com/poruru/prefab/internal/domain/manifest"
	"github.com/poruru/prefab/internal/domain/scaffold"
	"github.com/poruru/prefab/internal/domain/template"
	"github.com/poruru/prefab/internal/envutil"
	"github.com/poruru/prefab/internal/infra/emitter"
	"github.com/poruru/prefab/internal/infra/fileops"
	"github.com/poruru/prefab/internal/infra/interaction"
	"github.com/poruru/prefab/internal/infra/schema"
	"github.com/poruru/prefab/internal/infra/ui"
	"github.com/poruru/prefab/internal/meta"
)

// Flags are the generator switches given on the command line or through
// the environment. They override the project configuration.
type Flags struct {
	SkipModel      bool
	SkipMigration  bool
	SkipTimestamps bool
	SkipController bool
	Invert         bool
	Haml           bool
	TestFramework  string
}

// Request captures the inputs of one generate or destroy run.
type Request struct {
	ProjectDir   string
	Args         []string
	Flags        Flags
	TemplatesDir string
	Destroy      bool
	Pretend      bool
	Force        bool
	Skip         bool
	Quiet        bool
}

// InspectorFactory builds the column inspector for a project.
type InspectorFactory func(root string, cfg config.ProjectConfig, logger *slog.Logger) schema.Inspector

// Workflow runs generator requests.
type Workflow struct {
	UI          ui.UserInterface
	Prompter    interaction.Prompter
	Interactive bool
	Logger      *slog.Logger
	Now         func() time.Time
	Inspector   InspectorFactory
}

// Run executes req and returns the interpreted scaffold request.
func (w Workflow) Run(ctx context.Context, req Request) (*scaffold.Request, error) {
	root := req.ProjectDir
	if root == "" {
		return nil, fmt.Errorf("project dir is required")
	}
	log := w.logger().With("project", root)

	cfg, err := config.LoadProjectConfig(root)
	if err != nil {
		return nil, err
	}
	opts := ResolveOptions(req.Flags, cfg, root)
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	log.Debug("resolved options", "test_framework", opts.TestFramework, "haml", opts.Haml)

	var lookup scaffold.ModelLookup
	if !req.Destroy {
		lookup = modelLookup{
			root:      root,
			inspector: w.inspector(root, cfg, log),
			ui:        w.UI,
			logger:    log,
		}
	}
	parsed, err := scaffold.Parse(ctx, req.Args, opts, lookup)
	if err != nil {
		return nil, err
	}

	renderer := template.NewRenderer(overrideTemplates(root, req.TemplatesDir, cfg.TemplatesDir, log), assets.Templates())
	steps := manifest.Build(parsed, renderer)
	log.Debug("built manifest", "model", parsed.ClassName(), "steps", len(steps))

	if req.Pretend && !req.Quiet && w.UI != nil {
		w.UI.Block("🔍", "Pretend "+parsed.ClassName()+" scaffold", summaryRows(parsed))
	}

	em := &emitter.Emitter{
		Root:        root,
		Renderer:    renderer,
		UI:          w.UI,
		Prompter:    w.Prompter,
		Interactive: w.Interactive,
		Logger:      log,
		Now:         w.now,
		RoutesFile:  cfg.RoutesFile,
		Pretend:     req.Pretend,
		Force:       req.Force,
		Skip:        req.Skip,
		Quiet:       req.Quiet,
	}
	if req.Destroy {
		if err := em.Revoke(ctx, steps); err != nil {
			return parsed, err
		}
		return parsed, nil
	}
	data := template.NewContext(parsed, renderer, w.now())
	if err := em.Invoke(ctx, steps, data); err != nil {
		return parsed, err
	}
	return parsed, nil
}

// ResolveOptions merges flags over the project configuration. The test
// framework falls back to rspec when a spec directory exists, then testunit.
func ResolveOptions(flags Flags, cfg config.ProjectConfig, root string) scaffold.Options {
	opts := scaffold.Options{
		Invert:         flags.Invert,
		SkipModel:      flags.SkipModel,
		SkipMigration:  flags.SkipMigration,
		SkipTimestamps: flags.SkipTimestamps || cfg.SkipTimestamps,
		SkipController: flags.SkipController,
		Haml:           flags.Haml || cfg.Haml,
		TestFramework:  strings.TrimSpace(flags.TestFramework),
	}
	if opts.TestFramework == "" {
		opts.TestFramework = cfg.TestFramework
	}
	if opts.TestFramework == "" {
		opts.TestFramework = DefaultTestFramework(root)
	}
	return opts
}

// DefaultTestFramework picks rspec for projects with a spec directory.
func DefaultTestFramework(root string) string {
	if fileops.DirExists(filepath.Join(root, meta.SpecDir)) {
		return scaffold.RSpec
	}
	return scaffold.TestUnit
}

// DefaultInspector checks the configured database first, then db/schema.rb.
func DefaultInspector(root string, cfg config.ProjectConfig, logger *slog.Logger) schema.Inspector {
	environment := cfg.Database.Environment
	if environment == "" {
		environment = envutil.RailsEnv()
	}
	return schema.ChainInspector{
		schema.DatabaseInspector{Root: root, Environment: environment, Logger: logger},
		schema.SchemaFileInspector{Path: filepath.Join(root, meta.SchemaFile)},
	}
}

// overrideTemplates returns the project template directory, if any. An
// explicit directory wins over the configured one, then the conventional path.
func overrideTemplates(root, explicit, configured string, log *slog.Logger) fs.FS {
	for _, dir := range []string{explicit, configured, meta.TemplateOverrideDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(root, dir)
		}
		if fileops.DirExists(dir) {
			log.Debug("using template overrides", "dir", dir)
			return os.DirFS(dir)
		}
	}
	return nil
}

func summaryRows(req *scaffold.Request) []ui.KeyValue {
	attrs := make([]string, 0, len(req.Attributes))
	for _, attr := range req.Attributes {
		attrs = append(attrs, attr.String())
	}
	return []ui.KeyValue{
		{Key: "Model", Value: req.ClassName()},
		{Key: "Actions", Value: strings.Join(req.Actions, ", ")},
		{Key: "Attributes", Value: strings.Join(attrs, ", ")},
		{Key: "Test framework", Value: req.Options.TestFramework},
		{Key: "Views", Value: req.Options.ViewLanguage()},
	}
}

func (w Workflow) inspector(root string, cfg config.ProjectConfig, log *slog.Logger) schema.Inspector {
	if w.Inspector != nil {
		return w.Inspector(root, cfg, log)
	}
	return DefaultInspector(root, cfg, log)
}

func (w Workflow) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

func (w Workflow) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.New(slog.DiscardHandler)
}
