// Package migrate brings validated notebook documents up to the current
// format through a fixed sequence of idempotent passes.
package migrate

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/fieldmark/designer/internal/notebook"
	"github.com/fieldmark/designer/internal/schema"
)

// Notebook validates raw, migrates a copy of it and returns the typed
// notebook. Validation failures are returned as *schema.ValidationError and
// no pass runs.
func Notebook(raw any) (*notebook.Notebook, error) {
	doc, err := Document(raw)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode migrated notebook: %w", err)
	}
	return notebook.Decode(data)
}

// Bytes migrates a notebook file.
func Bytes(data []byte) (*notebook.Notebook, error) {
	raw, err := schema.Decode(data)
	if err != nil {
		return nil, err
	}
	return Notebook(raw)
}

// Document validates and migrates raw and returns the resulting JSON tree.
// raw itself is never modified.
func Document(raw any) (map[string]any, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, &schema.ValidationError{Messages: []string{fmt.Sprintf("document is not JSON encodable: %v", err)}}
	}
	decoded, err := schema.Decode(data)
	if err != nil {
		return nil, err
	}

	doc, ok := decoded.(map[string]any)
	if ok {
		removeNullConditions(doc)
	}

	if err := schema.Validate(decoded); err != nil {
		return nil, err
	}

	Run(doc, Passes()...)
	return doc, nil
}

// Run applies passes to doc in order.
func Run(doc map[string]any, passes ...Pass) {
	for _, p := range passes {
		p.Apply(doc)
	}
}

// removeNullConditions drops explicit null conditions and null fields, which
// older files contain and the schema rejects for sections.
func removeNullConditions(doc map[string]any) {
	spec := object(doc["ui-specification"])
	if spec == nil {
		return
	}

	if all, ok := spec["fields"].(map[string]any); ok {
		for name, raw := range all {
			if raw == nil {
				delete(all, name)
				continue
			}
			if field := object(raw); field != nil {
				if c, ok := field["condition"]; ok && c == nil {
					delete(field, "condition")
				}
			}
		}
	}

	for _, raw := range object(spec["fviews"]) {
		if view := object(raw); view != nil {
			if c, ok := view["condition"]; ok && c == nil {
				delete(view, "condition")
			}
		}
	}
}

func fields(doc map[string]any) map[string]map[string]any {
	out := make(map[string]map[string]any)
	for name, raw := range object(object(doc["ui-specification"])["fields"]) {
		if field := object(raw); field != nil {
			out[name] = field
		}
	}
	return out
}

func object(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func stringList(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// truthy follows the loose truth rules legacy files were written against:
// empty strings, zero, false and null are false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case float64:
		return t != 0
	}
	return true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
