// Where: internal/command/init.go
// What: init command adapter.
// Why: Pin the detected generator defaults in .prefab.yml once per project.
package command

import (
	"fmt"
	"io"

	"github.com/poruru/prefab/internal/config"
	"github.com/poruru/prefab/internal/infra/fileops"
	"github.com/poruru/prefab/internal/infra/ui"
	"github.com/poruru/prefab/internal/meta"
	"github.com/poruru/prefab/internal/usecase/generate"
)

func runInit(cli CLI, deps Dependencies, out io.Writer) int {
	logger := newLogger(cli, deps)
	flags := cli.Init

	cwd, err := deps.Getwd()
	if err != nil {
		return exitWithError(out, fmt.Errorf("get working directory: %w", err))
	}
	root, err := config.ResolveProjectRoot(cli.ProjectDir, cwd)
	if err != nil {
		logger.Debug("project root not found, using working directory", "error", err)
		root = cwd
	}

	path, err := config.ProjectConfigPath(root)
	if err != nil {
		return exitWithError(out, err)
	}
	if fileops.FileExists(path) && !flags.Force {
		return exitWithSuggestion(out, fmt.Sprintf("%s already exists", path), []string{
			fmt.Sprintf("%s init --force   # overwrite it", cliName()),
		})
	}

	cfg := config.DefaultProjectConfig()
	cfg.TestFramework = flags.TestFramework
	if cfg.TestFramework == "" {
		cfg.TestFramework = generate.DefaultTestFramework(root)
	}
	cfg.Haml = flags.Haml
	cfg.SkipTimestamps = flags.SkipTimestamps
	cfg.TemplatesDir = flags.Templates
	logger.Debug("writing project config", "path", path, "test_framework", cfg.TestFramework)

	if err := config.SaveProjectConfig(root, cfg); err != nil {
		return exitWithError(out, err)
	}
	ui.NewGeneratorUI(out, resolveEmoji(cli, deps)).Success(fmt.Sprintf("Wrote %s (test_framework: %s)", meta.ConfigFile, cfg.TestFramework))
	return 0
}
