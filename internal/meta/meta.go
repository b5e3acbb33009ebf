// Where: internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep naming of the binary, env prefix, and project files in one place.
package meta

const (
	// Project Identity
	AppName   = "prefab"
	EnvPrefix = "PREFAB"

	// Project Layout
	ConfigFile          = ".prefab.yml"
	TemplateOverrideDir = "lib/generators/prefab/templates"
	RoutesFile          = "config/routes.rb"
	DatabaseConfigFile  = "config/database.yml"
	SchemaFile          = "db/schema.rb"
	MigrationDir        = "db/migrate"
	ModelDir            = "app/models"
	SpecDir             = "spec"
	DefaultEnvironment  = "development"
)
