package migrate

import "strings"

// Pass is a single idempotent rewrite of a notebook document. A pass must
// tolerate any subset of legacy shapes and leave current ones alone.
type Pass struct {
	Name  string
	Apply func(doc map[string]any)
}

var (
	// FieldLabels moves labels from InputLabelProps, FormControlLabelProps or
	// FormLabelProps to component-parameters.label, falling back to the name.
	FieldLabels = Pass{Name: "field-labels", Apply: updateFieldLabels}

	// AnnotationFormat rewrites boolean meta.annotation into the
	// {annotation, uncertainty} object form.
	AnnotationFormat = Pass{Name: "annotation-format", Apply: updateAnnotationFormat}

	// HelperText folds helpertext and FormHelperTextProps into helperText.
	HelperText = Pass{Name: "helper-text", Apply: updateHelperText}

	// SectionDescriptions moves metadata.sections descriptions into fviews.
	SectionDescriptions = Pass{Name: "section-descriptions", Apply: updateSectionDescriptions}

	// PhotoValidation replaces the broken two element TakePhoto validation.
	PhotoValidation = Pass{Name: "photo-validation", Apply: fixPhotoValidation}

	// TemplatedStringRequired marks every TemplatedStringField as required so
	// it may serve as a form's hrid field.
	TemplatedStringRequired = Pass{Name: "templated-string-required", Apply: requireTemplatedStringFields}

	// AutoIncrementerInitialValue replaces a null BasicAutoIncrementer
	// initialValue with "".
	AutoIncrementerInitialValue = Pass{Name: "auto-incrementer-initial-value", Apply: fixAutoIncrementerInitialValue}

	// HRIDField records hrid prefixed fields as their form's hridField and
	// drops the obsolete hrid parameter.
	HRIDField = Pass{Name: "hrid-field", Apply: fixHRIDPrefix}
)

// Passes returns the migration passes in the order they run.
func Passes() []Pass {
	return []Pass{
		FieldLabels,
		AnnotationFormat,
		HelperText,
		SectionDescriptions,
		PhotoValidation,
		TemplatedStringRequired,
		AutoIncrementerInitialValue,
		HRIDField,
	}
}

const sectionDescriptionPrefix = "sectiondescription"

func updateFieldLabels(doc map[string]any) {
	for _, field := range fields(doc) {
		params := object(field["component-parameters"])
		if params == nil || truthy(params["label"]) {
			continue
		}

		if legacy := object(params["InputLabelProps"]); truthy(legacy["label"]) {
			params["label"] = legacy["label"]
			delete(params, "InputLabelProps")
		} else if legacy := object(params["FormControlLabelProps"]); truthy(legacy["label"]) {
			params["label"] = legacy["label"]
			delete(params, "FormControlLabelProps")
		} else if legacy := object(params["FormLabelProps"]); truthy(legacy["children"]) {
			params["label"] = legacy["children"]
			delete(params, "FormLabelProps")
		} else if truthy(params["name"]) {
			params["label"] = params["name"]
		}
	}
}

func updateAnnotationFormat(doc map[string]any) {
	for _, field := range fields(doc) {
		meta := object(field["meta"])
		include, ok := meta["annotation"].(bool)
		if !ok {
			continue
		}

		label := "Annotation"
		if s, ok := meta["annotation_label"].(string); ok && s != "" {
			label = s
		}

		uncertainty := object(meta["uncertainty"])
		uncertaintyInclude, _ := uncertainty["include"].(bool)
		uncertaintyLabel := "uncertainty"
		if s, ok := uncertainty["label"].(string); ok && s != "" {
			uncertaintyLabel = s
		}

		field["meta"] = map[string]any{
			"annotation":  map[string]any{"include": include, "label": label},
			"uncertainty": map[string]any{"include": uncertaintyInclude, "label": uncertaintyLabel},
		}
	}
}

func updateHelperText(doc map[string]any) {
	for _, field := range fields(doc) {
		params := object(field["component-parameters"])
		if params == nil {
			continue
		}
		original := params["helperText"]

		var legacy any
		switch {
		case truthy(params["helpertext"]):
			legacy = params["helpertext"]
			delete(params, "helpertext")
		case truthy(params["FormHelperTextProps"]):
			legacy = object(params["FormHelperTextProps"])["children"]
			delete(params, "FormHelperTextProps")
		default:
			continue
		}

		value := original
		if !truthy(value) {
			value = legacy
		}
		if value == nil {
			delete(params, "helperText")
		} else {
			params["helperText"] = value
		}
	}
}

func updateSectionDescriptions(doc map[string]any) {
	metadata := object(doc["metadata"])
	sections := metadata["sections"]
	if !truthy(sections) {
		return
	}

	fviews := object(object(doc["ui-specification"])["fviews"])
	for id, entry := range object(sections) {
		description := ""
		if s, ok := object(entry)[sectionDescriptionPrefix+id].(string); ok {
			description = s
		}
		if view := object(fviews[id]); view != nil {
			view["description"] = description
		}
	}
	delete(metadata, "sections")
}

func fixPhotoValidation(doc map[string]any) {
	for _, field := range fields(doc) {
		if field["component-name"] != "TakePhoto" {
			continue
		}
		if v, ok := field["validationSchema"].([]any); ok && len(v) == 2 {
			field["validationSchema"] = photoValidation()
		}
	}
}

func photoValidation() []any {
	return []any{
		[]any{"yup.array"},
		[]any{"yup.of", []any{[]any{"yup.object"}, []any{"yup.nullable"}}},
		[]any{"yup.nullable"},
	}
}

func requireTemplatedStringFields(doc map[string]any) {
	for _, field := range fields(doc) {
		if field["component-name"] != "TemplatedStringField" {
			continue
		}
		if params := object(field["component-parameters"]); params != nil {
			params["required"] = true
		}
	}
}

func fixAutoIncrementerInitialValue(doc map[string]any) {
	for _, field := range fields(doc) {
		if field["component-name"] != "BasicAutoIncrementer" {
			continue
		}
		if v, ok := field["initialValue"]; ok && v == nil {
			field["initialValue"] = ""
		}
	}
}

func fixHRIDPrefix(doc map[string]any) {
	spec := object(doc["ui-specification"])
	fviews := object(spec["fviews"])
	viewsets := object(spec["viewsets"])

	formOf := make(map[string]string)
	for _, formID := range sortedKeys(viewsets) {
		for _, viewID := range stringList(object(viewsets[formID])["views"]) {
			for _, name := range stringList(object(fviews[viewID])["fields"]) {
				formOf[name] = formID
			}
		}
	}

	all := fields(doc)
	for _, name := range sortedKeys(all) {
		field := all[name]
		if params := object(field["component-parameters"]); params != nil {
			delete(params, "hrid")
		}
		if !strings.HasPrefix(name, "hrid") {
			continue
		}
		if formID, ok := formOf[name]; ok {
			object(viewsets[formID])["hridField"] = name
		}
	}
}
