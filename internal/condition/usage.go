package condition

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fieldmark/designer/internal/notebook"
)

// Scope identifies what a condition being edited is attached to.
type Scope struct {
	Field   string
	Section string
}

// SelectableFields lists the fields a condition in scope may refer to: a
// field condition cannot use its own field and a section condition cannot
// use the section's fields. The result is sorted.
func SelectableFields(spec *notebook.UISpec, scope Scope) []string {
	excluded := make(map[string]bool)
	switch {
	case scope.Field != "":
		excluded[scope.Field] = true
	case scope.Section != "":
		if section, ok := spec.FViews[scope.Section]; ok {
			for _, name := range section.Fields {
				excluded[name] = true
			}
		}
	}

	var names []string
	for _, name := range spec.FieldNames() {
		if !excluded[name] {
			names = append(names, name)
		}
	}
	return names
}

// UsesField reports whether c refers to fieldName anywhere in its tree.
func UsesField(c *notebook.Condition, fieldName string) bool {
	if c == nil {
		return false
	}
	if c.Field == fieldName {
		return true
	}
	if c.IsBoolean() {
		for _, child := range c.Conditions {
			if UsesField(child, fieldName) {
				return true
			}
		}
	}
	return false
}

func usesAny(c *notebook.Condition, names []string) bool {
	for _, name := range names {
		if UsesField(c, name) {
			return true
		}
	}
	return false
}

// FieldUsage describes where fieldName is used by section conditions, field
// conditions and templated string fields.
func FieldUsage(fieldName string, spec *notebook.UISpec) []string {
	var affected []string

	for _, id := range sortedKeys(spec.FViews) {
		if UsesField(spec.FViews[id].Condition, fieldName) {
			affected = append(affected, fmt.Sprintf("Section: %s", spec.FViews[id].Label))
		}
	}

	for _, name := range spec.FieldNames() {
		f := spec.Fields[name]
		if UsesField(f.Condition, fieldName) {
			affected = append(affected, fmt.Sprintf("Field Condition: %s", labelOr(f, name)))
		}
	}

	placeholder := "{{" + fieldName + "}}"
	for _, name := range spec.FieldNames() {
		f := spec.Fields[name]
		if f.ComponentName != "TemplatedStringField" {
			continue
		}
		if strings.Contains(f.ComponentParameters.String("template"), placeholder) {
			affected = append(affected, fmt.Sprintf("Templated String: %s (uses '%s')", labelOr(f, name), placeholder))
		}
	}

	return affected
}

// SectionExternalUsage lists the conditions outside sectionID that depend on
// one of its fields.
func SectionExternalUsage(sectionID string, spec *notebook.UISpec) []string {
	var refs []string
	var targets []string
	if section, ok := spec.FViews[sectionID]; ok {
		targets = section.Fields
	}

	for _, id := range sortedKeys(spec.FViews) {
		if id == sectionID {
			continue
		}
		section := spec.FViews[id]
		if section.Condition != nil && usesAny(section.Condition, targets) {
			refs = append(refs, fmt.Sprintf("Section: %s", section.Label))
		}
		for _, name := range section.Fields {
			f, ok := spec.Fields[name]
			if !ok || f.Condition == nil {
				continue
			}
			if usesAny(f.Condition, targets) {
				refs = append(refs, fmt.Sprintf("Field: %s (section: %s)", labelOr(f, name), section.Label))
			}
		}
	}
	return refs
}

// FormExternalUsage lists the conditions in other forms that depend on a
// field of formID.
func FormExternalUsage(formID string, spec *notebook.UISpec) []string {
	var refs []string
	if _, ok := spec.ViewSets[formID]; !ok {
		return refs
	}
	targets := spec.FormFields(formID)

	for _, id := range sortedKeys(spec.ViewSets) {
		if id == formID {
			continue
		}
		form := spec.ViewSets[id]
		for _, sectionID := range form.Views {
			section, ok := spec.FViews[sectionID]
			if !ok {
				continue
			}
			if section.Condition != nil && usesAny(section.Condition, targets) {
				refs = append(refs, fmt.Sprintf("Section: %s (Form: %s)", section.Label, form.Label))
			}
			for _, name := range section.Fields {
				f, ok := spec.Fields[name]
				if !ok || f.Condition == nil {
					continue
				}
				if usesAny(f.Condition, targets) {
					refs = append(refs, fmt.Sprintf("Field: %s (Form: %s, Section: %s)", labelOr(f, name), form.Label, section.Label))
				}
			}
		}
	}
	return refs
}

// InvalidValueReferences finds conditions on an option backed field that
// expect a value no longer among its options.
func InvalidValueReferences(fieldName string, spec *notebook.UISpec) []string {
	var invalid []string
	target, ok := spec.Fields[fieldName]
	if !ok {
		return invalid
	}
	switch target.ComponentName {
	case "Select", "RadioGroup", "MultiSelect":
	default:
		return invalid
	}

	valid := make(map[string]bool)
	for _, v := range target.ComponentParameters.OptionValues() {
		valid[v] = true
	}

	var expected func(c *notebook.Condition) []string
	expected = func(c *notebook.Condition) []string {
		if c == nil {
			return nil
		}
		if c.IsBoolean() {
			var out []string
			for _, child := range c.Conditions {
				out = append(out, expected(child)...)
			}
			return out
		}
		if c.Field != fieldName {
			return nil
		}
		if list, ok := c.Value.([]any); ok {
			var missing []string
			for _, v := range list {
				if s := fmt.Sprint(v); !valid[s] {
					missing = append(missing, s)
				}
			}
			if len(missing) > 0 {
				return []string{fmt.Sprintf("expects '%s'", strings.Join(missing, ", "))}
			}
			return nil
		}
		if s := fmt.Sprint(c.Value); !valid[s] {
			return []string{fmt.Sprintf("expects '%s'", s)}
		}
		return nil
	}

	for _, name := range spec.FieldNames() {
		f := spec.Fields[name]
		for _, msg := range expected(f.Condition) {
			invalid = append(invalid, fmt.Sprintf("Field: %s (%s)", labelOr(f, name), msg))
		}
	}
	for _, id := range sortedKeys(spec.FViews) {
		for _, msg := range expected(spec.FViews[id].Condition) {
			invalid = append(invalid, fmt.Sprintf("Section: %s (%s)", spec.FViews[id].Label, msg))
		}
	}
	return invalid
}

// OptionReferences lists the conditions comparing fieldName with oldValue.
func OptionReferences(fieldName, oldValue string, spec *notebook.UISpec) []string {
	var refs []string
	for _, name := range spec.FieldNames() {
		f := spec.Fields[name]
		if containsOption(f.Condition, fieldName, oldValue) {
			refs = append(refs, fmt.Sprintf("Field: %s", labelOr(f, name)))
		}
	}
	for _, id := range sortedKeys(spec.FViews) {
		if containsOption(spec.FViews[id].Condition, fieldName, oldValue) {
			refs = append(refs, fmt.Sprintf("Section: %s", spec.FViews[id].Label))
		}
	}
	return refs
}

func containsOption(c *notebook.Condition, fieldName, value string) bool {
	if c == nil {
		return false
	}
	if c.IsBoolean() {
		for _, child := range c.Conditions {
			if containsOption(child, fieldName, value) {
				return true
			}
		}
		return false
	}
	if c.Field != fieldName {
		return false
	}
	if list, ok := c.Value.([]any); ok {
		for _, v := range list {
			if v == value {
				return true
			}
		}
		return false
	}
	return c.Value == value
}

// ReplaceOptionValue returns a copy of c where comparisons of fieldName with
// oldValue use newValue instead.
func ReplaceOptionValue(c *notebook.Condition, fieldName, oldValue, newValue string) *notebook.Condition {
	if c == nil {
		return nil
	}
	out := c.Clone()
	if out.IsBoolean() {
		for i, child := range out.Conditions {
			out.Conditions[i] = ReplaceOptionValue(child, fieldName, oldValue, newValue)
		}
		return out
	}
	if out.Field != fieldName {
		return out
	}
	if list, ok := out.Value.([]any); ok {
		for i, v := range list {
			if v == oldValue {
				list[i] = newValue
			}
		}
		return out
	}
	if out.Value == oldValue {
		out.Value = newValue
	}
	return out
}

func labelOr(f *notebook.Field, fallback string) string {
	if label := f.ComponentParameters.String("label"); label != "" {
		return label
	}
	return fallback
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
