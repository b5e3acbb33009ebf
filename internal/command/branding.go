// Where: internal/command/branding.go
// What: CLI naming for usage and suggestion text.
// Why: Keep user-facing command names consistent when the binary is wrapped or renamed.
package command

import (
	"os"
	"strings"

	"github.com/poruru/prefab/internal/meta"
)

func cliName() string {
	name := strings.TrimSpace(os.Getenv("CLI_CMD"))
	if name == "" {
		name = meta.AppName
	}
	return name
}
