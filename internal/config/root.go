// Where: internal/config/root.go
// What: Project root discovery.
// Why: Allow running prefab from any directory inside a Rails project.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/poruru/prefab/internal/envutil"
	"github.com/poruru/prefab/internal/meta"
)

var errProjectRootNotFound = errors.New("rails project root not found")

// ResolveProjectRoot determines the project root.
// Priority order.
// 1. Explicit directory (the --project-dir flag), used as-is.
// 2. Brand-prefixed PROJECT environment variable.
// 3. Upward search for config/routes.rb or .prefab.yml from startDir.
func ResolveProjectRoot(explicit, startDir string) (string, error) {
	if dir := strings.TrimSpace(explicit); dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", fmt.Errorf("resolve project dir: %w", err)
		}
		return abs, nil
	}

	if project := strings.TrimSpace(envutil.GetHostEnv("PROJECT")); project != "" {
		if root, ok := findProjectRoot(project); ok {
			return root, nil
		}
	}

	if startDir != "" {
		if root, ok := findProjectRoot(startDir); ok {
			return root, nil
		}
	}

	return "", fmt.Errorf("%w: run inside a Rails project, pass --project-dir or set %s",
		errProjectRootNotFound, envutil.HostEnvKey("PROJECT"))
}

// findProjectRoot searches upward from path for a directory holding a
// project marker.
func findProjectRoot(path string) (string, bool) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}

	markers := []string{meta.ConfigFile, meta.RoutesFile}
	for {
		for _, marker := range markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false
}
