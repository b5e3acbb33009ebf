// Where: internal/config/project.go
// What: Project-level generator defaults loaded from .prefab.yml.
// Why: Let a project pin its test framework, view language and paths once.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/poruru/prefab/internal/meta"
	"gopkg.in/yaml.v3"
)

// ProjectConfig mirrors the .prefab.yml document.
type ProjectConfig struct {
	TestFramework  string         `yaml:"test_framework,omitempty"`
	Haml           bool           `yaml:"haml,omitempty"`
	SkipTimestamps bool           `yaml:"skip_timestamps,omitempty"`
	TemplatesDir   string         `yaml:"templates_dir,omitempty"`
	RoutesFile     string         `yaml:"routes_file,omitempty"`
	Database       DatabaseConfig `yaml:"database,omitempty"`
}

// DatabaseConfig selects the database used for column introspection.
type DatabaseConfig struct {
	Environment string `yaml:"environment,omitempty"`
}

// DefaultProjectConfig returns the configuration used when no file exists.
func DefaultProjectConfig() ProjectConfig {
	return ProjectConfig{RoutesFile: meta.RoutesFile}
}

// ProjectConfigPath returns the path to the project config file.
func ProjectConfigPath(projectRoot string) (string, error) {
	root := strings.TrimSpace(projectRoot)
	if root == "" {
		return "", fmt.Errorf("project root is required")
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return filepath.Join(root, meta.ConfigFile), nil
}

// LoadProjectConfig reads .prefab.yml under projectRoot. A missing or empty
// file yields the defaults.
func LoadProjectConfig(projectRoot string) (ProjectConfig, error) {
	cfg := DefaultProjectConfig()
	path, err := ProjectConfigPath(projectRoot)
	if err != nil {
		return cfg, err
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read project config: %w", err)
	}
	if strings.TrimSpace(string(payload)) == "" {
		return cfg, nil
	}
	if err := validateProjectConfig(payload); err != nil {
		return cfg, fmt.Errorf("invalid %s: %w", meta.ConfigFile, err)
	}
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return cfg, fmt.Errorf("decode project config: %w", err)
	}
	if cfg.RoutesFile == "" {
		cfg.RoutesFile = meta.RoutesFile
	}
	return cfg, nil
}

// SaveProjectConfig writes cfg to .prefab.yml under projectRoot.
func SaveProjectConfig(projectRoot string, cfg ProjectConfig) error {
	path, err := ProjectConfigPath(projectRoot)
	if err != nil {
		return err
	}
	payload, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("encode project config: %w", err)
	}
	if err := validateProjectConfig(payload); err != nil {
		return fmt.Errorf("invalid %s: %w", meta.ConfigFile, err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write project config: %w", err)
	}
	return nil
}
