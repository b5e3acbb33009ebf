// Where: internal/infra/emitter/emitter.go
// What: Runs manifest steps against a project directory.
// Why: Generate and destroy share one step walker with collision and pretend handling.
package emitter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/poruru/prefab/internal/domain/manifest"
	"github.com/poruru/prefab/internal/infra/fileops"
	"github.com/poruru/prefab/internal/infra/interaction"
	"github.com/poruru/prefab/internal/infra/routes"
	"github.com/poruru/prefab/internal/infra/ui"
	"github.com/poruru/prefab/internal/meta"
)

var (
	// ErrMigrationExists reports a different migration with the same name.
	ErrMigrationExists = errors.New("another migration is already named")
	// ErrAborted reports that the user quit at a collision prompt.
	ErrAborted = errors.New("generation aborted")
	// ErrRoutesFileMissing reports a routes file that cannot be found.
	ErrRoutesFileMissing = errors.New("routes file not found")
)

// Status verbs printed for every step.
const (
	StatusCreate    = "create"
	StatusExists    = "exists"
	StatusIdentical = "identical"
	StatusSkip      = "skip"
	StatusForce     = "force"
	StatusRemove    = "rm"
	StatusRemoveDir = "rmdir"
	StatusRoute     = "route"
	StatusNotEmpty  = "notempty"
	StatusMissing   = "missing"
)

// MigrationTimestampFormat names migrations in UTC.
const MigrationTimestampFormat = "20060102150405"

// Renderer renders a named template with data.
type Renderer interface {
	Render(name string, data any) (string, error)
}

// Emitter applies manifest steps below Root.
type Emitter struct {
	Root        string
	Renderer    Renderer
	UI          ui.UserInterface
	Prompter    interaction.Prompter
	Interactive bool
	Logger      *slog.Logger
	Now         func() time.Time
	RoutesFile  string

	Pretend bool
	Force   bool
	Skip    bool
	Quiet   bool

	overwriteAll bool
}

// Invoke runs steps in order.
func (e *Emitter) Invoke(ctx context.Context, steps []manifest.Step, data any) error {
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.logger().Debug("invoke", "step", step.String())
		var err error
		switch step.Kind {
		case manifest.Directory:
			err = e.createDirectory(step.Destination)
		case manifest.Template:
			err = e.createTemplate(step, data)
		case manifest.MigrationTemplate:
			err = e.createMigration(step, data)
		case manifest.RouteResources:
			err = e.addRoute(step.Resource)
		default:
			err = fmt.Errorf("unsupported manifest step: %s", step.Kind)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Revoke undoes steps in reverse order.
func (e *Emitter) Revoke(ctx context.Context, steps []manifest.Step) error {
	for i := len(steps) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return err
		}
		step := steps[i]
		e.logger().Debug("revoke", "step", step.String())
		var err error
		switch step.Kind {
		case manifest.Directory:
			err = e.removeDirectory(step.Destination)
		case manifest.Template:
			err = e.removeFile(step.Destination)
		case manifest.MigrationTemplate:
			err = e.removeMigration(step)
		case manifest.RouteResources:
			err = e.removeRoute(step.Resource)
		default:
			err = fmt.Errorf("unsupported manifest step: %s", step.Kind)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) createDirectory(rel string) error {
	abs := e.abs(rel)
	if fileops.DirExists(abs) {
		e.status(StatusExists, rel)
		return nil
	}
	if !e.Pretend {
		if err := fileops.EnsureDir(abs); err != nil {
			return fmt.Errorf("create directory %s: %w", rel, err)
		}
	}
	e.status(StatusCreate, rel)
	return nil
}

func (e *Emitter) createTemplate(step manifest.Step, data any) error {
	content, err := e.render(step.Source, data)
	if err != nil {
		return err
	}
	return e.writeFile(step.Destination, content)
}

func (e *Emitter) createMigration(step manifest.Step, data any) error {
	content, err := e.render(step.Source, data)
	if err != nil {
		return err
	}
	existing, err := e.findMigrations(step)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		rel := e.rel(existing[0])
		same, err := fileops.SameContent(existing[0], content)
		if err != nil {
			return fmt.Errorf("compare %s: %w", rel, err)
		}
		if !same {
			return fmt.Errorf("%w %s: %s", ErrMigrationExists, step.MigrationName, rel)
		}
		e.status(StatusIdentical, rel)
		return nil
	}
	stamp := e.now().UTC().Format(MigrationTimestampFormat)
	rel := path.Join(step.Destination, stamp+"_"+step.MigrationName+".rb")
	return e.writeFile(rel, content)
}

func (e *Emitter) addRoute(resource string) error {
	rel := e.routesFile()
	abs := e.abs(rel)
	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrRoutesFileMissing, rel)
		}
		return fmt.Errorf("read %s: %w", rel, err)
	}
	content := string(data)
	line, err := routes.Line(content, resource)
	if err != nil {
		return fmt.Errorf("%s: %w", rel, err)
	}
	updated, inserted, err := routes.Insert(content, resource)
	if err != nil {
		return fmt.Errorf("%s: %w", rel, err)
	}
	if !inserted {
		e.status(StatusIdentical, line)
		return nil
	}
	if !e.Pretend {
		if err := fileops.WriteFile(abs, updated); err != nil {
			return fmt.Errorf("write %s: %w", rel, err)
		}
	}
	e.status(StatusRoute, line)
	return nil
}

// writeFile creates rel or resolves a collision with an existing file.
func (e *Emitter) writeFile(rel, content string) error {
	abs := e.abs(rel)
	if fileops.FileExists(abs) {
		same, err := fileops.SameContent(abs, content)
		if err != nil {
			return fmt.Errorf("compare %s: %w", rel, err)
		}
		if same {
			e.status(StatusIdentical, rel)
			return nil
		}
		overwrite, err := e.resolveCollision(rel)
		if err != nil {
			return err
		}
		if !overwrite {
			e.status(StatusSkip, rel)
			return nil
		}
		if err := e.write(abs, rel, content); err != nil {
			return err
		}
		e.status(StatusForce, rel)
		return nil
	}
	if err := e.write(abs, rel, content); err != nil {
		return err
	}
	e.status(StatusCreate, rel)
	return nil
}

func (e *Emitter) write(abs, rel, content string) error {
	if e.Pretend {
		return nil
	}
	if err := fileops.WriteFile(abs, content); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	return nil
}

func (e *Emitter) removeDirectory(rel string) error {
	abs := e.abs(rel)
	if !fileops.DirExists(abs) {
		e.status(StatusMissing, rel)
		return nil
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return fmt.Errorf("read directory %s: %w", rel, err)
	}
	if len(entries) > 0 {
		e.status(StatusNotEmpty, rel)
		return nil
	}
	if !e.Pretend {
		if _, err := fileops.RemoveEmptyDir(abs); err != nil {
			return fmt.Errorf("remove directory %s: %w", rel, err)
		}
	}
	e.status(StatusRemoveDir, rel)
	return nil
}

func (e *Emitter) removeFile(rel string) error {
	abs := e.abs(rel)
	if !fileops.FileExists(abs) {
		e.status(StatusMissing, rel)
		return nil
	}
	if !e.Pretend {
		if err := fileops.RemoveFile(abs); err != nil {
			return fmt.Errorf("remove %s: %w", rel, err)
		}
	}
	e.status(StatusRemove, rel)
	return nil
}

func (e *Emitter) removeMigration(step manifest.Step) error {
	existing, err := e.findMigrations(step)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		e.status(StatusMissing, path.Join(step.Destination, "*_"+step.MigrationName+".rb"))
		return nil
	}
	for _, abs := range existing {
		if err := e.removeFile(e.rel(abs)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) removeRoute(resource string) error {
	rel := e.routesFile()
	abs := e.abs(rel)
	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			e.status(StatusMissing, rel)
			return nil
		}
		return fmt.Errorf("read %s: %w", rel, err)
	}
	content := string(data)
	line, err := routes.Line(content, resource)
	if err != nil {
		line = "resources :" + resource
	}
	updated, removed := routes.Remove(content, resource)
	if !removed {
		if routes.Contains(content, resource) {
			e.logger().Warn("route customized, leaving it", "file", rel, "resource", resource)
			if !e.Quiet && e.UI != nil {
				e.UI.Warn(fmt.Sprintf("leaving customized route in %s: %s", rel, line))
			}
			e.status(StatusSkip, line)
			return nil
		}
		e.status(StatusMissing, line)
		return nil
	}
	if !e.Pretend {
		if err := fileops.WriteFile(abs, updated); err != nil {
			return fmt.Errorf("write %s: %w", rel, err)
		}
	}
	e.status(StatusRoute, line)
	return nil
}

func (e *Emitter) findMigrations(step manifest.Step) ([]string, error) {
	dir := e.abs(step.Destination)
	matches, err := fileops.Glob(dir, "*_"+step.MigrationName+".rb")
	if err != nil {
		return nil, fmt.Errorf("search migrations: %w", err)
	}
	return matches, nil
}

func (e *Emitter) render(source string, data any) (string, error) {
	if e.Renderer == nil {
		return "", fmt.Errorf("render %s: renderer is not configured", source)
	}
	content, err := e.Renderer.Render(source, data)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", source, err)
	}
	return content, nil
}

func (e *Emitter) status(verb, rel string) {
	e.logger().Debug(verb, "path", rel, "pretend", e.Pretend)
	if e.Quiet || e.UI == nil {
		return
	}
	e.UI.Status(verb, rel)
}

func (e *Emitter) abs(rel string) string {
	return filepath.Join(e.Root, filepath.FromSlash(rel))
}

func (e *Emitter) rel(abs string) string {
	rel, err := filepath.Rel(e.Root, abs)
	if err != nil {
		return abs
	}
	return filepath.ToSlash(rel)
}

func (e *Emitter) routesFile() string {
	if e.RoutesFile != "" {
		return e.RoutesFile
	}
	return meta.RoutesFile
}

func (e *Emitter) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Emitter) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.New(slog.DiscardHandler)
}
