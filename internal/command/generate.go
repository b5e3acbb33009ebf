// Where: internal/command/generate.go
// What: generate/destroy command adapters.
// Why: Translate CLI flags into a workflow request and report the outcome.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/poruru/prefab/internal/config"
	"github.com/poruru/prefab/internal/domain/scaffold"
	"github.com/poruru/prefab/internal/infra/emitter"
	"github.com/poruru/prefab/internal/infra/routes"
	"github.com/poruru/prefab/internal/infra/ui"
	"github.com/poruru/prefab/internal/usecase/generate"
)

func runGenerator(cli CLI, flags GeneratorFlags, destroy bool, deps Dependencies, out io.Writer) int {
	logger := newLogger(cli, deps)

	cwd, err := deps.Getwd()
	if err != nil {
		return exitWithError(out, fmt.Errorf("get working directory: %w", err))
	}
	root, err := config.ResolveProjectRoot(cli.ProjectDir, cwd)
	if err != nil {
		logger.Debug("project root not found, using working directory", "error", err)
		root = cwd
	}

	workflow := generate.Workflow{
		UI:          ui.NewGeneratorUI(out, resolveEmoji(cli, deps)),
		Prompter:    deps.Prompter,
		Interactive: deps.Interactive,
		Logger:      logger,
		Now:         deps.Now,
		Inspector:   deps.Inspector,
	}
	req := generate.Request{
		ProjectDir:   root,
		Args:         flags.Args,
		Flags:        flags.toWorkflowFlags(),
		TemplatesDir: flags.Templates,
		Destroy:      destroy,
		Pretend:      flags.Pretend,
		Force:        flags.Force,
		Skip:         flags.Skip,
		Quiet:        flags.Quiet,
	}

	parsed, err := workflow.Run(context.Background(), req)
	if err != nil {
		return reportGeneratorError(out, err, flags, destroy)
	}
	if !flags.Quiet && !flags.Pretend {
		verb := "Generated"
		if destroy {
			verb = "Removed"
		}
		workflow.UI.Success(fmt.Sprintf("%s %s scaffold", verb, parsed.ClassName()))
	}
	return 0
}

func (f GeneratorFlags) toWorkflowFlags() generate.Flags {
	framework := f.TestFramework
	switch {
	case f.TestUnit:
		framework = scaffold.TestUnit
	case f.Shoulda:
		framework = scaffold.Shoulda
	case f.RSpec:
		framework = scaffold.RSpec
	}
	return generate.Flags{
		SkipModel:      f.SkipModel,
		SkipMigration:  f.SkipMigration,
		SkipTimestamps: f.SkipTimestamps,
		SkipController: f.SkipController,
		Invert:         f.Invert,
		Haml:           f.Haml,
		TestFramework:  framework,
	}
}

func reportGeneratorError(out io.Writer, err error, flags GeneratorFlags, destroy bool) int {
	cmd := cliName()
	sub := "generate"
	if destroy {
		sub = "destroy"
	}
	switch {
	case errors.Is(err, scaffold.ErrUsage):
		plainUI(out).Warn(fmt.Sprintf("✗ %v", err))
		printUsage(out)
		return 1
	case errors.Is(err, emitter.ErrMigrationExists):
		name := ""
		if len(flags.Args) > 0 {
			name = flags.Args[0]
		}
		return exitWithSuggestion(out, err.Error(), []string{
			fmt.Sprintf("%s destroy %s   # remove the previous scaffold", cmd, name),
			fmt.Sprintf("%s %s %s --skip-migration", cmd, sub, name),
		})
	case errors.Is(err, emitter.ErrRoutesFileMissing), errors.Is(err, routes.ErrSentinelNotFound):
		return exitWithSuggestion(out, err.Error(), []string{
			fmt.Sprintf("run %s from the Rails project root or pass -C <dir>", cmd),
			"set routes_file in .prefab.yml",
			"use --skip-controller to skip route registration",
		})
	case errors.Is(err, emitter.ErrAborted):
		plainUI(out).Warn(fmt.Sprintf("✗ %v", err))
		return 1
	}
	if strings.Contains(err.Error(), "invalid generator options") {
		return exitWithSuggestionAndAvailable(out, err.Error(),
			[]string{"pass --testunit, --shoulda or --rspec"},
			[]string{scaffold.TestUnit, scaffold.Shoulda, scaffold.RSpec},
		)
	}
	return exitWithError(out, err)
}
