// Package schema validates imported and exported JSON documents against the
// editor's CUE schemas before any content reaches the stores.
//
// Validation is advisory at the import boundary: a document that fails
// validation is treated as "no data available" by the loader (fail-soft),
// while the CLI surfaces the individual errors to the author.
package schema

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed schema.cue
var schemaCUE string

// Kind selects which document schema to validate against.
type Kind string

const (
	// KindContentBundle is the editor's persisted/imported content format.
	KindContentBundle Kind = "#ContentBundle"
	// KindGameWorld is the exported engine-consumable format.
	KindGameWorld Kind = "#GameWorld"
)

// ValidationError describes one schema violation.
type ValidationError struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

var (
	compileOnce sync.Once
	compiled    cue.Value
	compileErr  error
	cuectx      *cue.Context
)

// compiledSchema compiles the embedded schema once. A compile failure is a
// programming error (the schema ships with the binary) but is still reported
// rather than panicking.
func compiledSchema() (*cue.Context, cue.Value, error) {
	compileOnce.Do(func() {
		cuectx = cuecontext.New()
		compiled = cuectx.CompileString(schemaCUE, cue.Filename("schema.cue"))
		if err := compiled.Err(); err != nil {
			compileErr = fmt.Errorf("compile embedded schema: %w", err)
		}
	})
	return cuectx, compiled, compileErr
}

// Validate checks a JSON document against the schema for kind.
// Returns nil when the document conforms; otherwise one ValidationError per
// violation found.
func Validate(kind Kind, data []byte) []ValidationError {
	ctx, root, err := compiledSchema()
	if err != nil {
		return []ValidationError{{Message: err.Error()}}
	}

	def := root.LookupPath(cue.ParsePath(string(kind)))
	if err := def.Err(); err != nil {
		return []ValidationError{{Message: fmt.Sprintf("unknown schema kind %q: %v", kind, err)}}
	}

	expr, err := cuejson.Extract("document.json", data)
	if err != nil {
		return []ValidationError{{Message: fmt.Sprintf("invalid JSON: %v", err)}}
	}

	doc := ctx.BuildExpr(expr)
	if err := doc.Err(); err != nil {
		return []ValidationError{{Message: fmt.Sprintf("invalid document: %v", err)}}
	}

	unified := def.Unify(doc)
	if err := unified.Validate(cue.Concrete(true), cue.Final()); err != nil {
		return toValidationErrors(err)
	}
	return nil
}

// ValidateBundle checks a content-bundle document.
func ValidateBundle(data []byte) []ValidationError {
	return Validate(KindContentBundle, data)
}

// ValidateGameWorld checks a game-world document.
func ValidateGameWorld(data []byte) []ValidationError {
	return Validate(KindGameWorld, data)
}

// toValidationErrors flattens a CUE error into one entry per violation.
func toValidationErrors(err error) []ValidationError {
	var out []ValidationError
	for _, e := range cueerrors.Errors(err) {
		out = append(out, ValidationError{
			Path:    strings.Join(e.Path(), "."),
			Message: e.Error(),
		})
	}
	if out == nil {
		out = []ValidationError{{Message: err.Error()}}
	}
	return out
}
