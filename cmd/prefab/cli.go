// Where: cmd/prefab/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"os"
	"time"

	"github.com/poruru/prefab/internal/command"
	"github.com/poruru/prefab/internal/infra/interaction"
	"github.com/poruru/prefab/internal/usecase/generate"
)

var (
	getwd      = os.Getwd
	isTerminal = interaction.IsTerminal
)

// buildDependencies constructs the runtime dependencies required by the CLI.
// Collision prompts are enabled only when stdin is a terminal, and emoji
// output defaults to on only when stdout is one.
func buildDependencies() (command.Dependencies, error) {
	if _, err := getwd(); err != nil {
		return command.Dependencies{}, err
	}

	return command.Dependencies{
		Out:         os.Stdout,
		ErrOut:      os.Stderr,
		Prompter:    interaction.HuhPrompter{},
		Interactive: isTerminal(os.Stdin),
		EmojiAuto:   isTerminal(os.Stdout),
		Getwd:       getwd,
		Now:         time.Now,
		Inspector:   generate.DefaultInspector,
	}, nil
}
