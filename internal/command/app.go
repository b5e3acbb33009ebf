// Where: internal/command/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package command

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/poruru/prefab/internal/infra/interaction"
	"github.com/poruru/prefab/internal/infra/logging"
	"github.com/poruru/prefab/internal/usecase/generate"
	"github.com/poruru/prefab/internal/version"
)

// Dependencies holds all injected dependencies required for CLI command execution.
// Tests swap the prompter, clock, working directory and inspector.
type Dependencies struct {
	Out         io.Writer
	ErrOut      io.Writer
	Prompter    interaction.Prompter
	Interactive bool
	EmojiAuto   bool
	Getwd       func() (string, error)
	Now         func() time.Time
	Inspector   generate.InspectorFactory
}

// CLI defines the command-line interface structure parsed by Kong.
// It contains global flags and all subcommand definitions.
type CLI struct {
	ProjectDir string      `short:"C" name:"project-dir" help:"Rails project directory (default: discovered from the working directory)"`
	EnvFile    string      `name:"env-file" help:"Path to .env file (default: .env in the project directory)"`
	Verbose    bool        `short:"v" help:"Write debug logs to stderr"`
	LogFormat  string      `name:"log-format" env:"PREFAB_LOG_FORMAT" enum:"text,json" default:"text" help:"Diagnostic log format (text/json)"`
	Emoji      bool        `name:"emoji" help:"Enable emoji output (default: auto)"`
	NoEmoji    bool        `name:"no-emoji" help:"Disable emoji output"`
	Generate   GenerateCmd `cmd:"" aliases:"g" help:"Generate a model, controller, views, tests and route"`
	Destroy    DestroyCmd  `cmd:"" aliases:"d" help:"Remove the files a generate run would create"`
	Init       InitCmd     `cmd:"" help:"Write .prefab.yml with the detected generator defaults"`
	Version    VersionCmd  `cmd:"" help:"Show version information"`
}

type (
	// GeneratorFlags are shared by generate and destroy.
	GeneratorFlags struct {
		Args           []string `arg:"" optional:"" name:"args" help:"ModelName followed by controller actions and model:attributes"`
		SkipModel      bool     `name:"skip-model" env:"PREFAB_SKIP_MODEL" help:"Don't generate a model or migration file"`
		SkipMigration  bool     `name:"skip-migration" env:"PREFAB_SKIP_MIGRATION" help:"Don't generate migration file for model"`
		SkipTimestamps bool     `name:"skip-timestamps" env:"PREFAB_SKIP_TIMESTAMPS" help:"Don't add timestamps to migration file"`
		SkipController bool     `name:"skip-controller" env:"PREFAB_SKIP_CONTROLLER" help:"Don't generate controller, tests, views or route"`
		Invert         bool     `env:"PREFAB_INVERT" help:"Generate all controller actions except those mentioned"`
		Haml           bool     `env:"PREFAB_HAML" help:"Generate HAML views instead of ERB"`
		TestUnit       bool     `name:"testunit" xor:"framework" help:"Use Test::Unit for test files"`
		Shoulda        bool     `xor:"framework" help:"Use Shoulda for test files"`
		RSpec          bool     `name:"rspec" xor:"framework" help:"Use RSpec for test files"`
		TestFramework  string   `name:"test-framework" env:"PREFAB_TEST_FRAMEWORK" hidden:"" help:"Test framework (testunit/shoulda/rspec)"`
		Templates      string   `name:"templates" env:"PREFAB_TEMPLATES" help:"Directory with template overrides"`
		Pretend        bool     `short:"p" help:"Run but do not make any changes"`
		Force          bool     `short:"f" xor:"collision" help:"Overwrite files that already exist"`
		Skip           bool     `short:"s" xor:"collision" help:"Skip files that already exist"`
		Quiet          bool     `short:"q" help:"Suppress status output"`
	}

	GenerateCmd struct {
		GeneratorFlags
	}

	DestroyCmd struct {
		GeneratorFlags
	}

	InitCmd struct {
		TestFramework  string `name:"test-framework" help:"Test framework to pin (default: detected)"`
		Haml           bool   `help:"Generate HAML views by default"`
		SkipTimestamps bool   `name:"skip-timestamps" help:"Leave timestamps out of migrations by default"`
		Templates      string `name:"templates" help:"Directory with template overrides"`
		Force          bool   `short:"f" help:"Overwrite an existing .prefab.yml"`
	}

	VersionCmd struct{}
)

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments, identifies the requested command,
// and dispatches to the appropriate handler. Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}
	if deps.ErrOut == nil {
		deps.ErrOut = os.Stderr
	}
	if deps.Getwd == nil {
		deps.Getwd = os.Getwd
	}

	// Handle no arguments: show usage
	if len(args) == 0 {
		return runNoArgs(out)
	}

	loadEnvFiles(args, deps, out)

	cli := CLI{}
	parser, err := kong.New(&cli,
		kong.Name(cliName()),
		kong.Description("Scaffold a Rails model, controller, views, tests and route."),
		kong.Writers(out, deps.ErrOut),
	)
	if err != nil {
		return exitWithError(out, err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return handleParseError(err, out)
	}
	command := ctx.Command()
	if exitCode, handled := dispatchCommand(command, cli, deps, out); handled {
		return exitCode
	}

	plainUI(out).Warn("unknown command")
	return 1
}

type commandHandler func(CLI, Dependencies, io.Writer) int

func dispatchCommand(command string, cli CLI, deps Dependencies, out io.Writer) (int, bool) {
	handlers := map[string]commandHandler{
		"generate": func(cli CLI, deps Dependencies, out io.Writer) int {
			return runGenerator(cli, cli.Generate.GeneratorFlags, false, deps, out)
		},
		"destroy": func(cli CLI, deps Dependencies, out io.Writer) int {
			return runGenerator(cli, cli.Destroy.GeneratorFlags, true, deps, out)
		},
		"init":    runInit,
		"version": func(_ CLI, _ Dependencies, out io.Writer) int { return runVersion(out) },
	}

	name, _, _ := strings.Cut(command, " ")
	if handler, ok := handlers[name]; ok {
		return handler(cli, deps, out), true
	}
	return 1, false
}

// runVersion prints the version information of the CLI.
func runVersion(out io.Writer) int {
	plainUI(out).Info(version.GetVersion())
	return 0
}

// runNoArgs handles the case when the CLI is invoked without arguments.
func runNoArgs(out io.Writer) int {
	printUsage(out)
	return 1
}

func printUsage(out io.Writer) {
	ui := plainUI(out)
	cmd := cliName()
	ui.Info("Usage:")
	ui.Info(fmt.Sprintf("  %s generate ModelName [controller_actions_and_model:attributes] [flags]", cmd))
	ui.Info(fmt.Sprintf("  %s destroy ModelName [controller_actions_and_model:attributes] [flags]", cmd))
	ui.Info("")
	ui.Info("Example:")
	ui.Info(fmt.Sprintf("  %s generate blog_post index show new title:string body:text", cmd))
	ui.Info("")
	ui.Info(fmt.Sprintf("Try: %s generate --help", cmd))
}

func newLogger(cli CLI, deps Dependencies) *slog.Logger {
	return logging.New(
		logging.WithWriter(deps.ErrOut),
		logging.WithVerbose(cli.Verbose),
		logging.WithFormat(logging.Format(cli.LogFormat)),
		logging.WithoutTimestamp(),
	)
}

func resolveEmoji(cli CLI, deps Dependencies) bool {
	switch {
	case cli.NoEmoji:
		return false
	case cli.Emoji:
		return true
	default:
		return deps.EmojiAuto
	}
}

// handleParseError provides user-friendly error messages for parse failures.
func handleParseError(err error, out io.Writer) int {
	msg := err.Error()
	ui := plainUI(out)
	cmd := cliName()
	if strings.Contains(msg, "expected string value") || strings.Contains(msg, "expected a value") {
		switch {
		case strings.Contains(msg, "--project-dir"):
			ui.Warn("`-C/--project-dir` expects a value. Provide the Rails project directory.")
			ui.Info(fmt.Sprintf("Example: %s -C ./blog generate post title:string", cmd))
			return 1
		case strings.Contains(msg, "--env-file"):
			ui.Warn("`--env-file` expects a value. Provide a file path.")
			ui.Info(fmt.Sprintf("Example: %s --env-file .env.dev generate post", cmd))
			return 1
		case strings.Contains(msg, "--templates"):
			ui.Warn("`--templates` expects a value. Provide a template override directory.")
			ui.Info(fmt.Sprintf("Example: %s generate post --templates lib/templates/prefab", cmd))
			return 1
		}
	}
	if strings.Contains(msg, "can't be used together") {
		ui.Warn(fmt.Sprintf("✗ %s", msg))
		ui.Info("Pick one of --testunit/--shoulda/--rspec and one of --force/--skip.")
		return 1
	}
	return exitWithError(out, err)
}
