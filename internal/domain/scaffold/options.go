// Where: internal/domain/scaffold/options.go
// What: Generator option set and its validation.
// Why: Keep every boolean gate of the manifest in a single validated struct.
package scaffold

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Test framework identifiers.
const (
	TestUnit = "testunit"
	Shoulda  = "shoulda"
	RSpec    = "rspec"
)

// Options holds the flag set of one generator invocation.
type Options struct {
	Invert         bool
	SkipModel      bool
	SkipMigration  bool
	SkipTimestamps bool
	SkipController bool
	Haml           bool
	TestFramework  string `validate:"required,oneof=testunit shoulda rspec"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validate checks option values that have a closed set of choices.
func (o Options) Validate() error {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid generator options: %w", err)
	}
	return nil
}

// ViewLanguage is the template language of generated views.
func (o Options) ViewLanguage() string {
	if o.Haml {
		return "haml"
	}
	return "erb"
}
