// Where: assets/templates_embed.go
// What: Embed the built-in generator templates.
// Why: Ship a complete template set inside the binary; projects may override any file.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed all:templates
var templatesFS embed.FS

// Templates returns the built-in template tree rooted at the templates directory.
func Templates() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}
