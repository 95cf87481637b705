// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

package validate

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"

	jschema "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"github.com/samber/oops"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Schema names, matching the embedded schemas/<name>.json files.
const (
	SchemaRegister   = "register"
	SchemaLogin      = "login"
	SchemaListCreate = "list_create"
	SchemaListUpdate = "list_update"
	SchemaTaskCreate = "task_create"
	SchemaTaskUpdate = "task_update"
)

// FieldError is one validation failure, addressed to the offending field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator holds the compiled request schemas. Compile once at startup;
// Check is safe for concurrent use.
type Validator struct {
	schemas map[string]*jschema.Schema
	printer *message.Printer
}

// New compiles all embedded schemas.
func New() (*Validator, error) {
	c := jschema.NewCompiler()
	c.AssertFormat()

	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, oops.Code("SCHEMA_LOAD_FAILED").Wrap(err)
	}

	schemas := make(map[string]*jschema.Schema, len(entries))
	for _, entry := range entries {
		data, err := schemaFS.ReadFile("schemas/" + entry.Name())
		if err != nil {
			return nil, oops.Code("SCHEMA_LOAD_FAILED").
				With("schema", entry.Name()).
				Wrap(err)
		}
		doc, err := jschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return nil, oops.Code("SCHEMA_LOAD_FAILED").
				With("schema", entry.Name()).
				Wrap(err)
		}
		if err := c.AddResource(entry.Name(), doc); err != nil {
			return nil, oops.Code("SCHEMA_LOAD_FAILED").
				With("schema", entry.Name()).
				Wrap(err)
		}
		sch, err := c.Compile(entry.Name())
		if err != nil {
			return nil, oops.Code("SCHEMA_COMPILE_FAILED").
				With("schema", entry.Name()).
				Wrap(err)
		}
		schemas[strings.TrimSuffix(entry.Name(), ".json")] = sch
	}

	return &Validator{
		schemas: schemas,
		printer: message.NewPrinter(language.English),
	}, nil
}

// Check validates a raw JSON body against the named schema. It returns the
// field-level failures; an empty slice means the body is valid. A non-nil
// error is returned only for an unknown schema name.
func (v *Validator) Check(schema string, body []byte) ([]FieldError, error) {
	sch, ok := v.schemas[schema]
	if !ok {
		return nil, oops.Code("SCHEMA_UNKNOWN").Errorf("unknown schema %q", schema)
	}

	doc, err := jschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return []FieldError{{Field: "body", Message: "must be valid JSON"}}, nil
	}

	err = sch.Validate(doc)
	if err == nil {
		return nil, nil
	}
	var ve *jschema.ValidationError
	if !errors.As(err, &ve) {
		return []FieldError{{Field: "body", Message: err.Error()}}, nil
	}
	return v.flatten(ve), nil
}

// flatten walks the validation error tree and emits one FieldError per
// leaf cause, addressed by instance location.
func (v *Validator) flatten(ve *jschema.ValidationError) []FieldError {
	if len(ve.Causes) > 0 {
		var out []FieldError
		for _, cause := range ve.Causes {
			out = append(out, v.flatten(cause)...)
		}
		return out
	}

	// A missing-property failure points at the parent object; address it
	// to the missing properties themselves.
	if req, ok := ve.ErrorKind.(*kind.Required); ok {
		out := make([]FieldError, 0, len(req.Missing))
		for _, name := range req.Missing {
			out = append(out, FieldError{
				Field:   joinPath(ve.InstanceLocation, name),
				Message: "is required",
			})
		}
		return out
	}

	return []FieldError{{
		Field:   fieldPath(ve.InstanceLocation),
		Message: ve.ErrorKind.LocalizedString(v.printer),
	}}
}

func fieldPath(location []string) string {
	if len(location) == 0 {
		return "body"
	}
	return strings.Join(location, ".")
}

func joinPath(location []string, name string) string {
	if len(location) == 0 {
		return name
	}
	return fmt.Sprintf("%s.%s", strings.Join(location, "."), name)
}
