// Where: internal/infra/emitter/emitter_test.go
// What: Tests for manifest execution, collisions and destroy.
// Why: Generate/destroy must be repeatable and leave no stray files.
package emitter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/poruru/prefab/internal/domain/manifest"
	"github.com/poruru/prefab/internal/infra/interaction"
	"github.com/poruru/prefab/internal/infra/ui"
)

type fakeRenderer map[string]string

func (f fakeRenderer) Render(name string, _ any) (string, error) {
	content, ok := f[name]
	if !ok {
		return "", fmt.Errorf("template %s not found", name)
	}
	return content, nil
}

type recordingUI struct {
	statuses []string
	warnings []string
}

func (r *recordingUI) Info(string) {}

func (r *recordingUI) Success(string) {}

func (r *recordingUI) Warn(msg string) {
	r.warnings = append(r.warnings, msg)
}

func (r *recordingUI) Status(verb, path string) {
	r.statuses = append(r.statuses, verb+" "+path)
}

func (r *recordingUI) Block(string, string, []ui.KeyValue) {}

type fakePrompter struct {
	answers []string
	titles  []string
}

func (f *fakePrompter) Select(title string, _ []string) (string, error) {
	return f.next(title)
}

func (f *fakePrompter) SelectValue(title string, _ []interaction.SelectOption) (string, error) {
	return f.next(title)
}

func (f *fakePrompter) next(title string) (string, error) {
	f.titles = append(f.titles, title)
	if len(f.answers) == 0 {
		return "", errors.New("unexpected prompt")
	}
	answer := f.answers[0]
	f.answers = f.answers[1:]
	return answer, nil
}

var fixedNow = time.Date(2026, 10, 16, 9, 30, 5, 0, time.FixedZone("JST", 9*60*60))

const legacyRoutes = "ActionController::Routing::Routes.draw do |map|\nend\n"

var testSteps = []manifest.Step{
	{Kind: manifest.Directory, Destination: "app/models"},
	{Kind: manifest.Template, Source: "model.rb", Destination: "app/models/post.rb"},
	{Kind: manifest.MigrationTemplate, Source: "migration.rb", Destination: "db/migrate", MigrationName: "create_posts"},
	{Kind: manifest.Directory, Destination: "app/views/posts"},
	{Kind: manifest.Template, Source: "index.html.erb", Destination: "app/views/posts/index.html.erb"},
	{Kind: manifest.RouteResources, Resource: "posts"},
}

func newProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "config", "routes.rb"), legacyRoutes)
	return root
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func newEmitter(root string, out *recordingUI) *Emitter {
	return &Emitter{
		Root: root,
		Renderer: fakeRenderer{
			"model.rb":       "class Post < ActiveRecord::Base\nend\n",
			"migration.rb":   "class CreatePosts < ActiveRecord::Migration\nend\n",
			"index.html.erb": "<h1>Posts</h1>\n",
		},
		UI:  out,
		Now: func() time.Time { return fixedNow },
	}
}

func TestInvokeCreatesFiles(t *testing.T) {
	root := newProject(t)
	out := &recordingUI{}
	if err := newEmitter(root, out).Invoke(context.Background(), testSteps, nil); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}

	want := []string{
		"create app/models",
		"create app/models/post.rb",
		"create db/migrate/20261016003005_create_posts.rb",
		"create app/views/posts",
		"create app/views/posts/index.html.erb",
		"route map.resources :posts",
	}
	if !reflect.DeepEqual(out.statuses, want) {
		t.Fatalf("statuses = %#v, want %#v", out.statuses, want)
	}
	if got := readFile(t, filepath.Join(root, "db", "migrate", "20261016003005_create_posts.rb")); !strings.HasPrefix(got, "class CreatePosts") {
		t.Fatalf("unexpected migration: %q", got)
	}
	routes := readFile(t, filepath.Join(root, "config", "routes.rb"))
	if routes != "ActionController::Routing::Routes.draw do |map|\n  map.resources :posts\nend\n" {
		t.Fatalf("unexpected routes: %q", routes)
	}
}

func TestInvokeTwiceIsIdentical(t *testing.T) {
	root := newProject(t)
	if err := newEmitter(root, &recordingUI{}).Invoke(context.Background(), testSteps, nil); err != nil {
		t.Fatalf("first Invoke() error = %v", err)
	}

	out := &recordingUI{}
	second := newEmitter(root, out)
	second.Now = func() time.Time { return fixedNow.Add(time.Hour) }
	if err := second.Invoke(context.Background(), testSteps, nil); err != nil {
		t.Fatalf("second Invoke() error = %v", err)
	}
	for _, status := range out.statuses {
		if !strings.HasPrefix(status, "identical ") && !strings.HasPrefix(status, "exists ") {
			t.Fatalf("second run must not change anything, got %q in %#v", status, out.statuses)
		}
	}
	matches, _ := filepath.Glob(filepath.Join(root, "db", "migrate", "*_create_posts.rb"))
	if len(matches) != 1 {
		t.Fatalf("expected a single migration, got %v", matches)
	}
}

func TestInvokePretendWritesNothing(t *testing.T) {
	root := newProject(t)
	out := &recordingUI{}
	e := newEmitter(root, out)
	e.Pretend = true
	if err := e.Invoke(context.Background(), testSteps, nil); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if len(out.statuses) != len(testSteps) {
		t.Fatalf("expected a status per step, got %#v", out.statuses)
	}
	for _, rel := range []string{"app", "db"} {
		if _, err := os.Stat(filepath.Join(root, rel)); !os.IsNotExist(err) {
			t.Fatalf("pretend run created %s", rel)
		}
	}
	if got := readFile(t, filepath.Join(root, "config", "routes.rb")); got != legacyRoutes {
		t.Fatalf("pretend run changed routes: %q", got)
	}
}

func TestInvokeQuietSuppressesStatus(t *testing.T) {
	root := newProject(t)
	out := &recordingUI{}
	e := newEmitter(root, out)
	e.Quiet = true
	if err := e.Invoke(context.Background(), testSteps, nil); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if len(out.statuses) != 0 {
		t.Fatalf("quiet run printed %#v", out.statuses)
	}
}

func TestRevokeRemovesGeneratedFiles(t *testing.T) {
	root := newProject(t)
	if err := newEmitter(root, &recordingUI{}).Invoke(context.Background(), testSteps, nil); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	writeFile(t, filepath.Join(root, "app", "models", "author.rb"), "class Author\nend\n")

	out := &recordingUI{}
	if err := newEmitter(root, out).Revoke(context.Background(), testSteps); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	want := []string{
		"route map.resources :posts",
		"rm app/views/posts/index.html.erb",
		"rmdir app/views/posts",
		"rm db/migrate/20261016003005_create_posts.rb",
		"rm app/models/post.rb",
		"notempty app/models",
	}
	if !reflect.DeepEqual(out.statuses, want) {
		t.Fatalf("statuses = %#v, want %#v", out.statuses, want)
	}
	if got := readFile(t, filepath.Join(root, "config", "routes.rb")); got != legacyRoutes {
		t.Fatalf("routes not restored: %q", got)
	}
	if _, err := os.Stat(filepath.Join(root, "app", "views", "posts")); !os.IsNotExist(err) {
		t.Fatal("expected view directory to be removed")
	}

	out = &recordingUI{}
	if err := newEmitter(root, out).Revoke(context.Background(), testSteps); err != nil {
		t.Fatalf("second Revoke() error = %v", err)
	}
	if out.statuses[0] != "missing map.resources :posts" || out.statuses[3] != "missing db/migrate/*_create_posts.rb" {
		t.Fatalf("unexpected second revoke statuses: %#v", out.statuses)
	}
}

func TestCollisionHandling(t *testing.T) {
	model := filepath.Join("app", "models", "post.rb")
	steps := testSteps[:2]

	tests := []struct {
		name        string
		configure   func(*Emitter)
		wantStatus  string
		wantContent string
		wantWarn    bool
	}{
		{
			name:        "force overwrites",
			configure:   func(e *Emitter) { e.Force = true },
			wantStatus:  "force app/models/post.rb",
			wantContent: "class Post < ActiveRecord::Base\nend\n",
		},
		{
			name:        "skip keeps file",
			configure:   func(e *Emitter) { e.Skip = true },
			wantStatus:  "skip app/models/post.rb",
			wantContent: "class Post\nend\n",
		},
		{
			name:        "non interactive skips with warning",
			configure:   func(e *Emitter) {},
			wantStatus:  "skip app/models/post.rb",
			wantContent: "class Post\nend\n",
			wantWarn:    true,
		},
		{
			name: "prompt overwrite",
			configure: func(e *Emitter) {
				e.Interactive = true
				e.Prompter = &fakePrompter{answers: []string{choiceOverwrite}}
			},
			wantStatus:  "force app/models/post.rb",
			wantContent: "class Post < ActiveRecord::Base\nend\n",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := newProject(t)
			writeFile(t, filepath.Join(root, model), "class Post\nend\n")
			out := &recordingUI{}
			e := newEmitter(root, out)
			tc.configure(e)
			if err := e.Invoke(context.Background(), steps, nil); err != nil {
				t.Fatalf("Invoke() error = %v", err)
			}
			if got := out.statuses[len(out.statuses)-1]; got != tc.wantStatus {
				t.Fatalf("status = %q, want %q", got, tc.wantStatus)
			}
			if got := readFile(t, filepath.Join(root, model)); got != tc.wantContent {
				t.Fatalf("content = %q, want %q", got, tc.wantContent)
			}
			if (len(out.warnings) > 0) != tc.wantWarn {
				t.Fatalf("warnings = %#v", out.warnings)
			}
		})
	}
}

func TestCollisionOverwriteAllAndQuit(t *testing.T) {
	root := newProject(t)
	writeFile(t, filepath.Join(root, "app", "models", "post.rb"), "old\n")
	writeFile(t, filepath.Join(root, "app", "views", "posts", "index.html.erb"), "old\n")

	prompter := &fakePrompter{answers: []string{choiceOverwriteAll}}
	e := newEmitter(root, &recordingUI{})
	e.Interactive = true
	e.Prompter = prompter
	if err := e.Invoke(context.Background(), testSteps, nil); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if len(prompter.titles) != 1 || prompter.titles[0] != "Overwrite app/models/post.rb?" {
		t.Fatalf("prompts = %#v", prompter.titles)
	}
	if got := readFile(t, filepath.Join(root, "app", "views", "posts", "index.html.erb")); got != "<h1>Posts</h1>\n" {
		t.Fatalf("overwrite all did not apply: %q", got)
	}

	writeFile(t, filepath.Join(root, "app", "models", "post.rb"), "old\n")
	e = newEmitter(root, &recordingUI{})
	e.Interactive = true
	e.Prompter = &fakePrompter{answers: []string{choiceQuit}}
	if err := e.Invoke(context.Background(), testSteps, nil); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestInvokeMigrationExists(t *testing.T) {
	root := newProject(t)
	writeFile(t, filepath.Join(root, "db", "migrate", "20250101000000_create_posts.rb"), "class CreatePosts\n  # edited\nend\n")

	err := newEmitter(root, &recordingUI{}).Invoke(context.Background(), testSteps, nil)
	if !errors.Is(err, ErrMigrationExists) {
		t.Fatalf("expected ErrMigrationExists, got %v", err)
	}
	if !strings.Contains(err.Error(), "another migration is already named create_posts") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestInvokeRoutesErrors(t *testing.T) {
	root := t.TempDir()
	route := []manifest.Step{{Kind: manifest.RouteResources, Resource: "posts"}}
	if err := newEmitter(root, &recordingUI{}).Invoke(context.Background(), route, nil); !errors.Is(err, ErrRoutesFileMissing) {
		t.Fatalf("expected ErrRoutesFileMissing, got %v", err)
	}

	writeFile(t, filepath.Join(root, "config", "app_routes.rb"), "Rails.application.routes.draw do\nend\n")
	out := &recordingUI{}
	e := newEmitter(root, out)
	e.RoutesFile = "config/app_routes.rb"
	if err := e.Invoke(context.Background(), route, nil); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if err := e.Invoke(context.Background(), route, nil); err != nil {
		t.Fatalf("second Invoke() error = %v", err)
	}
	want := []string{"route resources :posts", "identical resources :posts"}
	if !reflect.DeepEqual(out.statuses, want) {
		t.Fatalf("statuses = %#v, want %#v", out.statuses, want)
	}
}

func TestInvokeStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := newEmitter(t.TempDir(), &recordingUI{}).Invoke(ctx, testSteps, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRevokeLeavesCustomizedRoute(t *testing.T) {
	root := t.TempDir()
	customized := "ActionController::Routing::Routes.draw do |map|\n  map.resources :posts, :only => [:index]\nend\n"
	writeFile(t, filepath.Join(root, "config", "routes.rb"), customized)
	route := []manifest.Step{{Kind: manifest.RouteResources, Resource: "posts"}}

	out := &recordingUI{}
	if err := newEmitter(root, out).Invoke(context.Background(), route, nil); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if err := newEmitter(root, out).Revoke(context.Background(), route); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	want := []string{"identical map.resources :posts", "skip map.resources :posts"}
	if !reflect.DeepEqual(out.statuses, want) {
		t.Fatalf("statuses = %#v, want %#v", out.statuses, want)
	}
	if len(out.warnings) != 1 || !strings.Contains(out.warnings[0], "leaving customized route in config/routes.rb") {
		t.Fatalf("warnings = %#v", out.warnings)
	}
	if got := readFile(t, filepath.Join(root, "config", "routes.rb")); got != customized {
		t.Fatalf("routes changed: %q", got)
	}
}
