package condition

import (
	"fmt"
	"strings"

	"github.com/fieldmark/designer/internal/notebook"
)

const emptyCondition = "empty condition"

// Translate renders c as an English sentence, e.g.
// "Site Type equal to Midden or Find Count greater than 3".
// Field names are resolved to labels through fields; unknown names are
// printed as they are.
func Translate(c *notebook.Condition, fields map[string]*notebook.Field) string {
	if c == nil {
		return emptyCondition
	}

	if c.IsBoolean() {
		if len(c.Conditions) == 0 {
			return emptyCondition
		}
		parts := make([]string, len(c.Conditions))
		for i, child := range c.Conditions {
			parts[i] = Translate(child, fields)
		}
		return strings.Join(parts, " "+c.Operator+" ")
	}

	phrase, ok := Phrase(c.Operator)
	if !ok {
		phrase = c.Operator
	}
	return fmt.Sprintf("%s %s %s", fieldLabel(c.Field, fields), strings.ToLower(phrase), formatValue(c.Value))
}

func fieldLabel(name string, fields map[string]*notebook.Field) string {
	if f, ok := fields[name]; ok && f != nil {
		if label := f.Label(); label != "" {
			return label
		}
	}
	return name
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []any:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(t, ", ")
	}
	return fmt.Sprint(v)
}

// Translation pairs a condition owner with its rendered text.
type Translation struct {
	Kind  string `json:"kind"`
	ID    string `json:"id"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

// TranslateAll renders every section and field condition of spec, sections
// first, each group ordered by id.
func TranslateAll(spec *notebook.UISpec) []Translation {
	var out []Translation
	for _, id := range sortedKeys(spec.FViews) {
		section := spec.FViews[id]
		if section.Condition == nil {
			continue
		}
		out = append(out, Translation{
			Kind:  "section",
			ID:    id,
			Label: section.Label,
			Text:  Translate(section.Condition, spec.Fields),
		})
	}
	for _, name := range spec.FieldNames() {
		f := spec.Fields[name]
		if f.Condition == nil {
			continue
		}
		out = append(out, Translation{
			Kind:  "field",
			ID:    name,
			Label: f.DisplayLabel(),
			Text:  Translate(f.Condition, spec.Fields),
		})
	}
	return out
}
