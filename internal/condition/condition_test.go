package condition

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldmark/designer/internal/notebook"
	"github.com/fieldmark/designer/internal/notebook/notebooktest"
)

func field(op, name string, value any) *notebook.Condition {
	return &notebook.Condition{Operator: op, Field: name, Value: value}
}

func group(op string, children ...*notebook.Condition) *notebook.Condition {
	return &notebook.Condition{Operator: op, Conditions: children}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		cond   *notebook.Condition
		values Values
		want   bool
	}{
		{"nil holds", nil, Values{}, true},
		{"empty and holds", group(And), Values{}, true},
		{"equal string", field(Equal, "a", "x"), Values{"a": "x"}, true},
		{"equal is strict across types", field(Equal, "a", "1"), Values{"a": 1}, false},
		{"equal numbers across kinds", field(Equal, "a", json.Number("3")), Values{"a": 3.0}, true},
		{"not equal", field(NotEqual, "a", "x"), Values{"a": "y"}, true},
		{"greater", field(Greater, "a", 3), Values{"a": 4}, true},
		{"greater missing value", field(Greater, "a", 3), Values{}, false},
		{"greater equal", field(GreaterEqual, "a", 3), Values{"a": 3}, true},
		{"less", field(Less, "a", 3), Values{"a": 2}, true},
		{"less equal strings", field(LessEqual, "a", "b"), Values{"a": "a"}, true},
		{"regex", field(Regex, "a", "^ab"), Values{"a": "abc"}, true},
		{"regex on missing value", field(Regex, "a", ".*"), Values{}, false},
		{"contains", field(Contains, "a", "x"), Values{"a": []any{"x", "y"}}, true},
		{"does not contain", field(DoesNotContain, "a", "z"), Values{"a": []any{"x"}}, true},
		{"contains regex", field(ContainsRegex, "a", "^y"), Values{"a": []any{"x", "yes"}}, true},
		{"does not contain regex", field(DoesNotContainRegex, "a", "^y"), Values{"a": []any{"x"}}, true},
		{"contains one of", field(ContainsOneOf, "a", []any{"q", "x"}), Values{"a": []any{"x"}}, true},
		{"does not contain any of", field(DoesNotContainAnyOf, "a", []any{"q"}), Values{"a": []any{"x"}}, true},
		{"contains all of", field(ContainsAllOf, "a", []any{"x", "y"}), Values{"a": []any{"y", "x", "z"}}, true},
		{"does not contain all of", field(DoesNotContainAllOf, "a", []any{"x", "q"}), Values{"a": []any{"x"}}, true},
		{"and", group(And, field(Equal, "a", "x"), field(Equal, "b", "y")), Values{"a": "x", "b": "n"}, false},
		{"or", group(Or, field(Equal, "a", "x"), field(Equal, "b", "y")), Values{"a": "n", "b": "y"}, true},
		{"nested", group(And, field(Equal, "a", "x"), group(Or, field(Equal, "b", "1"), field(Equal, "c", true))), Values{"a": "x", "c": true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.cond, tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	_, err := Evaluate(field(Regex, "a", "("), Values{"a": "x"})
	assert.Error(t, err)

	_, err = Evaluate(field("between", "a", 1), Values{"a": 1})
	assert.ErrorContains(t, err, "unknown condition operator")
}

func TestSplitWrapsOriginal(t *testing.T) {
	original := field(Equal, "Sample-Location", 100)

	split := Split(original)

	assert.Equal(t, And, split.Operator)
	require.Len(t, split.Conditions, 2)
	assert.Equal(t, original, split.Conditions[0])
	assert.Equal(t, &notebook.Condition{Operator: Equal, Field: "", Value: ""}, split.Conditions[1])

	split.Conditions[0].Value = 5
	assert.Equal(t, 100, original.Value)
}

func TestRemoveChild(t *testing.T) {
	t.Run("removing the last child collapses to nothing", func(t *testing.T) {
		got, err := RemoveChild(group(And, field(Equal, "a", "x")), 0)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("removing one of many keeps the rest", func(t *testing.T) {
		c := group(Or, field(Equal, "a", "x"), field(Equal, "b", "y"))
		got, err := RemoveChild(c, 0)
		require.NoError(t, err)
		require.Len(t, got.Conditions, 1)
		assert.Equal(t, "b", got.Conditions[0].Field)
		assert.Len(t, c.Conditions, 2)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := RemoveChild(group(And, field(Equal, "a", "x")), 3)
		assert.Error(t, err)
	})

	t.Run("field condition has no children", func(t *testing.T) {
		_, err := RemoveChild(field(Equal, "a", "x"), 0)
		assert.Error(t, err)
	})
}

func TestAppendAndReplaceChild(t *testing.T) {
	c, err := AppendChild(group(And, field(Equal, "a", "x")))
	require.NoError(t, err)
	require.Len(t, c.Conditions, 2)
	assert.Equal(t, EmptyField(), c.Conditions[1])

	c, err = ReplaceChild(c, 1, field(Equal, "b", "y"))
	require.NoError(t, err)
	assert.Equal(t, "b", c.Conditions[1].Field)

	c, err = ReplaceChild(c, 1, nil)
	require.NoError(t, err)
	assert.Len(t, c.Conditions, 1)

	_, err = AppendChild(field(Equal, "a", "x"))
	assert.Error(t, err)
}

func TestCompleteness(t *testing.T) {
	assert.False(t, Complete(EmptyField()))
	assert.True(t, Complete(field(Equal, "a", "")))
	assert.False(t, Complete(field(Equal, "a", nil)))
	assert.False(t, Complete(EmptyBoolean()))
	assert.True(t, Complete(group(Or, EmptyField())))
	assert.Nil(t, Normalize(EmptyBoolean()))
}

func TestBuilder(t *testing.T) {
	spec := notebooktest.Spec()

	var changes []*notebook.Condition
	b := NewBuilder(nil, func(c *notebook.Condition) { changes = append(changes, c) })

	b.SetOperator(Greater)
	assert.Empty(t, changes, "incomplete drafts stay local")

	b.SetField("Site-Type", spec.Fields["Site-Type"])
	require.Len(t, changes, 1)
	assert.Equal(t, field(Equal, "Site-Type", "Quarry"), changes[0])

	b.SetValue("Midden")
	require.Len(t, changes, 2)
	assert.Equal(t, "Midden", changes[1].Value)

	b.Split()
	require.Len(t, changes, 3)
	assert.Equal(t, And, changes[2].Operator)
	assert.Len(t, changes[2].Conditions, 2)

	b.Delete()
	require.Len(t, changes, 4)
	assert.Nil(t, changes[3])
	assert.Nil(t, b.Current())
}

func TestBuilderCheckboxTarget(t *testing.T) {
	target := notebooktest.TextField("Hazard", "Hazard")
	target.ComponentName = "Checkbox"

	var last *notebook.Condition
	b := NewBuilder(field(Greater, "", ""), func(c *notebook.Condition) { last = c })
	b.SetField("Hazard", target)

	assert.Equal(t, field(Equal, "Hazard", true), last)
}

func TestAllowedOperators(t *testing.T) {
	multi := notebooktest.SelectField("m", "M", "a")
	multi.ComponentName = "MultiSelect"

	assert.Equal(t, []string{Equal, NotEqual}, AllowedOperators(notebooktest.SelectField("s", "S", "a")))
	assert.Len(t, AllowedOperators(multi), 4)
	assert.Contains(t, AllowedOperators(notebooktest.TextField("t", "T")), Regex)
	assert.Nil(t, AllowedOperators(nil))
	assert.Len(t, Operators(), 15)
}

func TestTranslate(t *testing.T) {
	spec := notebooktest.Spec()

	tests := []struct {
		name string
		cond *notebook.Condition
		want string
	}{
		{"nil", nil, "empty condition"},
		{"empty group", EmptyBoolean(), "empty condition"},
		{"field", field(Equal, "Site-Type", "Midden"), "Site Type equal to Midden"},
		{"unknown field", field(Greater, "Depth", 3), "Depth greater than 3"},
		{"list value", field(ContainsOneOf, "Site-Type", []any{"Quarry", "Midden"}), "Site Type list contains one of these values Quarry, Midden"},
		{
			"group",
			group(Or, field(Equal, "Site-Type", "Midden"), field(NotEqual, "Site-Name", "")),
			"Site Type equal to Midden or Site Name not equal to ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Translate(tt.cond, spec.Fields))
		})
	}
}

func TestTranslateAll(t *testing.T) {
	got := TranslateAll(notebooktest.Spec())

	require.Len(t, got, 2)
	assert.Equal(t, Translation{Kind: "section", ID: "Survey-Finds", Label: "Finds", Text: "Site Type not equal to Quarry"}, got[0])
	assert.Equal(t, Translation{Kind: "field", ID: "Find-Count", Label: "Find Count", Text: "Site Type equal to Midden"}, got[1])
}

func TestSelectableFields(t *testing.T) {
	spec := notebooktest.Spec()

	assert.Equal(t, []string{"Find-Count", "Sample-ID", "Site-Name"}, SelectableFields(spec, Scope{Field: "Site-Type"}))
	assert.Equal(t, []string{"Find-Count", "Sample-ID"}, SelectableFields(spec, Scope{Section: "Survey-Site"}))
	assert.Len(t, SelectableFields(spec, Scope{}), 4)
}

func TestFieldUsage(t *testing.T) {
	spec := notebooktest.Spec()
	spec.Fields["Sample-HRID"] = notebooktest.TextField("Sample-HRID", "Sample HRID")
	spec.Fields["Sample-HRID"].ComponentName = "TemplatedStringField"
	spec.Fields["Sample-HRID"].ComponentParameters["template"] = "S-{{Site-Type}}"

	assert.Equal(t, []string{
		"Section: Finds",
		"Field Condition: Find Count",
		"Templated String: Sample HRID (uses '{{Site-Type}}')",
	}, FieldUsage("Site-Type", spec))

	assert.Empty(t, FieldUsage("Sample-ID", spec))
}

func TestSectionExternalUsage(t *testing.T) {
	spec := notebooktest.Spec()

	assert.Equal(t, []string{"Section: Finds", "Field: Find Count (section: Finds)"}, SectionExternalUsage("Survey-Site", spec))
	assert.Empty(t, SectionExternalUsage("Survey-Finds", spec))
}

func TestFormExternalUsage(t *testing.T) {
	spec := notebooktest.Spec()
	spec.Fields["Sample-ID"].Condition = field(Equal, "Site-Name", "Trench")

	assert.Equal(t, []string{"Field: Sample ID (Form: Sample, Section: Main)"}, FormExternalUsage("Survey", spec))
	assert.Empty(t, FormExternalUsage("Sample", spec))
	assert.Empty(t, FormExternalUsage("Missing", spec))
}

func TestInvalidValueReferences(t *testing.T) {
	spec := notebooktest.Spec()
	spec.Fields["Site-Type"] = notebooktest.SelectField("Site-Type", "Site Type", "Quarry", "Shelter")

	assert.Equal(t, []string{"Field: Find Count (expects 'Midden')"}, InvalidValueReferences("Site-Type", spec))
	assert.Empty(t, InvalidValueReferences("Site-Name", spec))
}

func TestOptionReferencesAndReplace(t *testing.T) {
	spec := notebooktest.Spec()

	assert.Equal(t, []string{"Section: Finds"}, OptionReferences("Site-Type", "Quarry", spec))

	original := group(And, field(Equal, "Site-Type", "Quarry"), field(ContainsOneOf, "Site-Type", []any{"Quarry", "Midden"}))
	replaced := ReplaceOptionValue(original, "Site-Type", "Quarry", "Pit")

	assert.Equal(t, "Pit", replaced.Conditions[0].Value)
	assert.Equal(t, []any{"Pit", "Midden"}, replaced.Conditions[1].Value)
	assert.Equal(t, "Quarry", original.Conditions[0].Value)
}
