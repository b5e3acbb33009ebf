// Where: internal/command/output.go
// What: Output helpers for command adapters.
// Why: Centralize UserInterface usage for usage text and errors.
package command

import (
	"io"

	"github.com/poruru/prefab/internal/infra/ui"
)

func plainUI(out io.Writer) ui.UserInterface {
	return ui.NewPlainUI(out)
}
