// Where: internal/config/validator.go
// What: JSON schema validation for .prefab.yml.
// Why: Reject unknown keys and bad enum values before they silently change generation.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"sigs.k8s.io/yaml"
)

const projectSchemaURL = "https://prefab.local/schema/project.json"

//go:embed schema/project.schema.json
var projectSchema []byte

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema
)

func validateProjectConfig(content []byte) error {
	sch, err := loadSchema()
	if err != nil {
		return err
	}

	jsonData, err := yaml.YAMLToJSON(content)
	if err != nil {
		return fmt.Errorf("convert yaml to json: %w", err)
	}

	var document any
	if err := json.Unmarshal(jsonData, &document); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return sch.Validate(document)
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(projectSchemaURL, bytes.NewReader(projectSchema)); err != nil {
			schemaErr = fmt.Errorf("load project schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(projectSchemaURL)
	})
	return compiledSchema, schemaErr
}
