// Where: internal/usecase/generate/model_lookup.go
// What: Attributes of an existing model for attribute-less invocations.
// Why: Scaffolding controllers and views for a model that already has a table.
package generate

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/poruru/prefab/internal/domain/scaffold"
	"github.com/poruru/prefab/internal/infra/fileops"
	"github.com/poruru/prefab/internal/infra/schema"
	"github.com/poruru/prefab/internal/infra/ui"
	"github.com/poruru/prefab/internal/meta"
)

type modelLookup struct {
	root      string
	inspector schema.Inspector
	ui        ui.UserInterface
	logger    *slog.Logger
}

// ModelAttributes returns the columns of the model's table when the model
// file exists. Inspection failures fall back to the default attribute.
func (l modelLookup) ModelAttributes(ctx context.Context, req *scaffold.Request) ([]scaffold.Attribute, error) {
	model := filepath.Join(l.root, filepath.FromSlash(meta.ModelDir), filepath.FromSlash(req.Singular())+".rb")
	if !fileops.FileExists(model) {
		l.logger.Debug("model not found, using default attributes", "model", model)
		return nil, nil
	}
	table := req.TableName()
	attrs, err := schema.AttributesForModel(ctx, l.inspector, table)
	if err != nil {
		l.logger.Warn("column inspection failed", "table", table, "error", err)
	}
	if len(attrs) == 0 && l.ui != nil {
		l.ui.Warn("no columns found for " + table + "; using name:string")
	}
	return attrs, nil
}
