// Package schema validates decoded upstream payloads against JSON Schema
// (draft 2020-12) documents.
package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrValidation marks payloads that do not satisfy their schema.
var ErrValidation = errors.New("schema validation failed")

// Diagnostic is one field-level validation failure.
type Diagnostic struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Path, d.Reason)
}

type ValidationError struct {
	Diagnostics []Diagnostic
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		parts = append(parts, d.String())
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Result is either valid (no diagnostics) or carries at least one diagnostic.
type Result struct {
	Diagnostics []Diagnostic
}

func (r *Result) Valid() bool {
	return len(r.Diagnostics) == 0
}

// Err returns nil for a valid result and a *ValidationError otherwise.
func (r *Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &ValidationError{Diagnostics: r.Diagnostics}
}

type Validator struct {
	schema  *jsonschema.Schema
	printer *message.Printer
}

func NewValidator(schemaPath string) (*Validator, error) {
	data, err := os.ReadFile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	return NewValidatorFromBytes(schemaPath, data)
}

func NewValidatorFromBytes(name string, data []byte) (*Validator, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema %s: %w", name, err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft2020)

	if err := compiler.AddResource(name, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema %s: %w", name, err)
	}

	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}

	return &Validator{
		schema:  compiled,
		printer: message.NewPrinter(language.English),
	}, nil
}

// Decode parses JSON into the generic form the validator expects.
func Decode(r io.Reader) (any, error) {
	return jsonschema.UnmarshalJSON(r)
}

// Validate checks payload without modifying it.
func (v *Validator) Validate(payload any) *Result {
	err := v.schema.Validate(payload)
	if err == nil {
		return &Result{}
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return &Result{Diagnostics: []Diagnostic{{Path: "/", Reason: err.Error()}}}
	}

	var diagnostics []Diagnostic
	v.collect(validationErr, &diagnostics)
	return &Result{Diagnostics: diagnostics}
}

// collect flattens the cause tree to its leaves.
func (v *Validator) collect(err *jsonschema.ValidationError, out *[]Diagnostic) {
	if len(err.Causes) == 0 {
		*out = append(*out, Diagnostic{
			Path:   "/" + strings.Join(err.InstanceLocation, "/"),
			Reason: err.ErrorKind.LocalizedString(v.printer),
		})
		return
	}
	for _, cause := range err.Causes {
		v.collect(cause, out)
	}
}
