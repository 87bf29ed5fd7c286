// Package schema checks that a document has the structure of a notebook file.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "notebook.schema.json"

//go:embed notebook.schema.json
var notebookSchema []byte

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// ValidationError reports every structural problem found in a document as
// "<path> <message>" strings.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return "invalid notebook"
	}
	return fmt.Sprintf("invalid notebook: %s", strings.Join(e.Messages, "; "))
}

// MarshalJSON renders the error for API responses.
func (e *ValidationError) MarshalJSON() ([]byte, error) {
	messages := e.Messages
	if messages == nil {
		messages = []string{}
	}
	return json.Marshal(struct {
		Error    string   `json:"error"`
		Messages []string `json:"messages"`
	}{"validation failed", messages})
}

func notebookValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft7
		if err := c.AddResource(schemaURL, bytes.NewReader(notebookSchema)); err != nil {
			compileErr = fmt.Errorf("failed to load notebook schema: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("failed to compile notebook schema: %w", compileErr)
		}
	})
	return compiled, compileErr
}

// Validate checks doc, a decoded JSON value, against the notebook schema.
// Documents that are merely outdated pass; a *ValidationError is returned
// otherwise.
func Validate(doc any) error {
	sch, err := notebookValidator()
	if err != nil {
		return err
	}

	v, err := normalize(doc)
	if err != nil {
		return &ValidationError{Messages: []string{err.Error()}}
	}

	if err := sch.Validate(v); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return &ValidationError{Messages: collect(verr)}
		}
		return fmt.Errorf("failed to validate notebook: %w", err)
	}
	return nil
}

// ValidateBytes decodes data and validates it. Malformed JSON is reported as
// a *ValidationError.
func ValidateBytes(data []byte) error {
	doc, err := Decode(data)
	if err != nil {
		return err
	}
	return Validate(doc)
}

// Decode parses data keeping numbers as json.Number, which is what the
// validator and the migration passes work on.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, &ValidationError{Messages: []string{fmt.Sprintf("malformed JSON: %v", err)}}
	}
	return doc, nil
}

// Schema returns a copy of the embedded schema document.
func Schema() []byte {
	return append([]byte(nil), notebookSchema...)
}

// normalize turns doc into the generic JSON tree the validator walks, so
// typed values and Go integers are accepted too.
func normalize(doc any) (any, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("document is not JSON encodable: %v", err)
	}
	return Decode(data)
}

// collect flattens the cause tree into its leaves.
func collect(err *jsonschema.ValidationError) []string {
	var messages []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			path := e.InstanceLocation
			if path == "" {
				path = "/"
			}
			messages = append(messages, fmt.Sprintf("%s %s", path, e.Message))
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(err)
	sort.Strings(messages)
	return dedupe(messages)
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, m := range sorted {
		if i == 0 || m != sorted[i-1] {
			out = append(out, m)
		}
	}
	return out
}
