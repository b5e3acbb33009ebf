// Package envutil provides helper functions for environment variable handling.
package envutil

import (
	"os"
	"strings"

	"github.com/poruru/prefab/internal/meta"
)

// HostEnvKey constructs a prefixed environment variable name.
// Example: HostEnvKey("HAML") returns "PREFAB_HAML".
func HostEnvKey(suffix string) string {
	prefix := strings.TrimSpace(os.Getenv("ENV_PREFIX"))
	if prefix == "" {
		prefix = meta.EnvPrefix
	}
	return prefix + "_" + suffix
}

// GetHostEnv retrieves a prefixed environment variable.
// Example: GetHostEnv("TEMPLATES") returns the value of PREFAB_TEMPLATES.
func GetHostEnv(suffix string) string {
	return os.Getenv(HostEnvKey(suffix))
}

// RailsEnv returns the Rails environment used for database introspection.
// RAILS_ENV wins over RACK_ENV; both fall back to development.
func RailsEnv() string {
	for _, key := range []string{"RAILS_ENV", "RACK_ENV"} {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	return meta.DefaultEnvironment
}
