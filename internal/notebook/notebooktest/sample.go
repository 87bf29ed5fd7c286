// Package notebooktest provides notebook fixtures shared by tests.
package notebooktest

import (
	"bytes"
	_ "embed"
	"encoding/json"

	"github.com/fieldmark/designer/internal/notebook"
)

//go:embed testdata/legacy.json
var legacyJSON []byte

// LegacyJSON returns a notebook file in the old format: labels in
// InputLabelProps/FormLabelProps/FormControlLabelProps, boolean annotations,
// section descriptions in metadata and a two element TakePhoto validation.
func LegacyJSON() []byte {
	return append([]byte(nil), legacyJSON...)
}

// LegacyDocument decodes LegacyJSON the way the validator expects.
func LegacyDocument() map[string]any {
	dec := json.NewDecoder(bytes.NewReader(legacyJSON))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		panic(err)
	}
	return doc
}

// TextField returns a canonical text field called name.
func TextField(name, label string) *notebook.Field {
	return &notebook.Field{
		ComponentNamespace: "formik-material-ui",
		ComponentName:      "TextField",
		TypeReturned:       "faims-core::String",
		ComponentParameters: notebook.Params{
			"name":            name,
			"label":           label,
			"helperText":      "",
			"InputLabelProps": map[string]any{"label": label},
		},
		ValidationSchema: notebook.ValidationSchema{{"yup.string"}},
		InitialValue:     "",
		Meta:             notebook.DefaultMeta(),
	}
}

// SelectField returns a canonical select field with the given options.
func SelectField(name, label string, options ...string) *notebook.Field {
	opts := make([]any, len(options))
	for i, o := range options {
		opts[i] = map[string]any{"value": o, "label": o}
	}
	f := TextField(name, label)
	f.ComponentNamespace = "faims-custom"
	f.ComponentName = "Select"
	f.ComponentParameters["ElementProps"] = map[string]any{"options": opts}
	return f
}

// Spec returns a small canonical UI specification:
//
//	Survey (visible)  -> Survey-Site [Site-Name, Site-Type], Survey-Finds [Find-Count]
//	Sample (hidden)   -> Sample-Main [Sample-ID]
func Spec() *notebook.UISpec {
	spec := notebook.NewUISpec()

	spec.Fields["Site-Name"] = TextField("Site-Name", "Site Name")
	spec.Fields["Site-Type"] = SelectField("Site-Type", "Site Type", "Quarry", "Midden", "Shelter")
	spec.Fields["Find-Count"] = TextField("Find-Count", "Find Count")
	spec.Fields["Find-Count"].Condition = &notebook.Condition{Operator: "equal", Field: "Site-Type", Value: "Midden"}
	spec.Fields["Sample-ID"] = TextField("Sample-ID", "Sample ID")

	spec.FViews["Survey-Site"] = &notebook.Section{Label: "Site", Fields: []string{"Site-Name", "Site-Type"}}
	spec.FViews["Survey-Finds"] = &notebook.Section{
		Label:     "Finds",
		Fields:    []string{"Find-Count"},
		Condition: &notebook.Condition{Operator: "not-equal", Field: "Site-Type", Value: "Quarry"},
	}
	spec.FViews["Sample-Main"] = &notebook.Section{Label: "Main", Fields: []string{"Sample-ID"}}

	spec.ViewSets["Survey"] = &notebook.Form{Label: "Survey", Views: []string{"Survey-Site", "Survey-Finds"}}
	spec.ViewSets["Sample"] = &notebook.Form{Label: "Sample", Views: []string{"Sample-Main"}}
	spec.VisibleTypes = []string{"Survey"}

	return spec
}

// Notebook wraps Spec with minimal metadata.
func Notebook() *notebook.Notebook {
	return &notebook.Notebook{
		Metadata: notebook.Metadata{"name": "Test Survey", "accesses": []any{"admin"}},
		UISpec:   Spec(),
	}
}
