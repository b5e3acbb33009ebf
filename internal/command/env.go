// Where: internal/command/env.go
// What: .env loading ahead of flag parsing.
// Why: Env-backed flags (PREFAB_*) must see values from the env file.
package command

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/poruru/prefab/internal/infra/fileops"
)

// loadEnvFiles loads --env-file when given, otherwise .env from the project
// directory (or the working directory). Existing variables are kept.
func loadEnvFiles(args []string, deps Dependencies, out io.Writer) {
	ui := plainUI(out)
	envFile := flagValue(args, "", "--env-file")
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			ui.Warn(fmt.Sprintf("Warning: failed to load env file %s: %v", envFile, err))
		}
		return
	}

	dir := flagValue(args, "-C", "--project-dir")
	if dir == "" {
		cwd, err := deps.Getwd()
		if err != nil {
			return
		}
		dir = cwd
	}
	path := filepath.Join(dir, ".env")
	if !fileops.FileExists(path) {
		return
	}
	if err := godotenv.Load(path); err != nil {
		ui.Warn(fmt.Sprintf("Warning: failed to load .env: %v", err))
	}
}

// flagValue extracts the value of a global flag before kong parses args.
// Recognizes "--flag value", "--flag=value", "-C value" and "-Cvalue".
func flagValue(args []string, short, long string) string {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		switch {
		case arg == long || (short != "" && arg == short):
			if i+1 < len(args) {
				return args[i+1]
			}
			return ""
		case strings.HasPrefix(arg, long+"="):
			return strings.TrimPrefix(arg, long+"=")
		case short != "" && strings.HasPrefix(arg, short) && len(arg) > len(short) && !strings.HasPrefix(arg, "--"):
			return strings.TrimPrefix(strings.TrimPrefix(arg, short), "=")
		}
	}
	return ""
}
