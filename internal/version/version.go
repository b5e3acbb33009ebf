// Where: internal/version/version.go
// What: Version information retrieval.
// Why: Report either the release version stamped at link time or the VCS revision.
package version

import (
	"fmt"
	"runtime/debug"
)

// Version is set with -ldflags "-X github.com/poruru/prefab/internal/version.Version=v1.2.3".
var Version = ""

var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the stamped release version when present.
// Otherwise it falls back to the short VCS revision from build info,
// suffixed with "(dirty)" for modified trees, or "dev" when nothing is known.
func GetVersion() string {
	if Version != "" {
		return Version
	}
	info, ok := readBuildInfo()
	if !ok {
		return "dev"
	}

	var revision string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}

	if revision == "" {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
		return "dev"
	}
	if modified {
		return fmt.Sprintf("%s (dirty)", revision)
	}
	return revision
}
