// Where: internal/domain/scaffold/request.go
// What: Generation request built from command-line tokens.
// Why: Turn a flat token list into name, effective actions, attributes, and options.
package scaffold

import (
	"context"
	"errors"
	"slices"
	"strings"
)

// ErrUsage reports an invocation without a model name.
var ErrUsage = errors.New("model name is required")

// AllActions is the universe of controller actions, in generation order.
var AllActions = []string{"index", "show", "new", "create", "edit", "update", "destroy"}

// Request is one generator invocation.
type Request struct {
	Name       string
	Actions    []string
	Attributes []Attribute
	Options    Options
}

// ModelLookup supplies attributes for an already existing model when the
// invocation names none. Returning no attributes selects the default.
type ModelLookup interface {
	ModelAttributes(ctx context.Context, req *Request) ([]Attribute, error)
}

// Parse interprets args (the model name followed by actions and attributes).
// Tokens containing ':' are attributes, "!" inverts the action list and
// anything else is a controller action; "new" implies "create" and "edit"
// implies "update". With no attributes the model group is skipped and the
// attributes come from lookup (when non-nil) or default to name:string.
func Parse(ctx context.Context, args []string, opts Options, lookup ModelLookup) (*Request, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return nil, ErrUsage
	}

	req := &Request{Name: strings.TrimSpace(args[0]), Options: opts}
	var named []string
	for _, arg := range args[1:] {
		switch {
		case arg == "!":
			req.Options.Invert = true
		case strings.Contains(arg, ":"):
			req.Attributes = appendAttribute(req.Attributes, ParseAttribute(arg))
		default:
			named = appendUnique(named, arg)
			switch arg {
			case "new":
				named = appendUnique(named, "create")
			case "edit":
				named = appendUnique(named, "update")
			}
		}
	}

	req.Actions = named
	if req.Options.Invert || len(named) == 0 {
		req.Actions = complement(named)
	}

	if len(req.Attributes) == 0 {
		req.Options.SkipModel = true
		if lookup != nil {
			attrs, err := lookup.ModelAttributes(ctx, req)
			if err != nil {
				return nil, err
			}
			for _, attr := range attrs {
				req.Attributes = appendAttribute(req.Attributes, attr)
			}
		}
		if len(req.Attributes) == 0 {
			req.Attributes = []Attribute{{Name: "name", Type: "string"}}
		}
	}
	return req, nil
}

func complement(named []string) []string {
	out := make([]string, 0, len(AllActions))
	for _, action := range AllActions {
		if !slices.Contains(named, action) {
			out = append(out, action)
		}
	}
	return out
}

func appendUnique(list []string, value string) []string {
	if slices.Contains(list, value) {
		return list
	}
	return append(list, value)
}

func appendAttribute(list []Attribute, attr Attribute) []Attribute {
	if slices.Contains(list, attr) {
		return list
	}
	return append(list, attr)
}
