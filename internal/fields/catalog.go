package fields

import "github.com/fieldmark/designer/internal/notebook"

type obj = map[string]any

func builtins() []Type {
	return []Type{
		{
			Name: "TextField",
			Prototype: &notebook.Field{
				ComponentNamespace: "formik-material-ui",
				ComponentName:      "TextField",
				TypeReturned:       "faims-core::String",
				ComponentParameters: notebook.Params{
					"fullWidth":           true,
					"helperText":          "Helper Text",
					"variant":             "outlined",
					"required":            false,
					"InputProps":          obj{"type": "text"},
					"SelectProps":         obj{},
					"InputLabelProps":     obj{"label": "Text Field"},
					"FormHelperTextProps": obj{},
				},
				ValidationSchema: notebook.ValidationSchema{{"yup.string"}},
				InitialValue:     "",
			},
		},
		{
			Name: "Email",
			Prototype: &notebook.Field{
				ComponentNamespace: "formik-material-ui",
				ComponentName:      "TextField",
				TypeReturned:       "faims-core::Email",
				ComponentParameters: notebook.Params{
					"fullWidth":           true,
					"helperText":          "We can also store Email addresses.",
					"variant":             "outlined",
					"required":            false,
					"InputProps":          obj{"type": "email"},
					"SelectProps":         obj{},
					"InputLabelProps":     obj{"label": "Email"},
					"FormHelperTextProps": obj{},
				},
				ValidationSchema: notebook.ValidationSchema{{"yup.string"}, {"yup.email", "Enter a valid email"}},
				InitialValue:     "",
			},
		},
		{
			Name: "Number",
			Prototype: &notebook.Field{
				ComponentNamespace: "formik-material-ui",
				ComponentName:      "TextField",
				TypeReturned:       "faims-core::Integer",
				ComponentParameters: notebook.Params{
					"fullWidth":           true,
					"helperText":          "We have fields for storing Numbers.",
					"variant":             "outlined",
					"required":            false,
					"InputProps":          obj{"type": "number"},
					"SelectProps":         obj{},
					"InputLabelProps":     obj{"label": "Number field"},
					"FormHelperTextProps": obj{},
				},
				ValidationSchema: notebook.ValidationSchema{{"yup.number"}},
				InitialValue:     "",
			},
		},
		{
			Name: "ControlledNumber",
			Prototype: &notebook.Field{
				ComponentNamespace: "formik-material-ui",
				ComponentName:      "TextField",
				TypeReturned:       "faims-core::Integer",
				ComponentParameters: notebook.Params{
					"fullWidth":           true,
					"helperText":          "This number must be at least 10 and not more than 20.",
					"variant":             "outlined",
					"required":            true,
					"InputProps":          obj{"type": "number"},
					"SelectProps":         obj{},
					"InputLabelProps":     obj{"label": "Controlled number"},
					"FormHelperTextProps": obj{},
				},
				ValidationSchema: notebook.ValidationSchema{
					{"yup.number"},
					{"yup.min", 10, "Must be 10 or more"},
					{"yup.max", 20, "Must be 20 or less"},
					{"yup.required", "You must fill this in!"},
				},
				InitialValue: "",
			},
		},
		{
			Name: "BasicAutoIncrementer",
			Prototype: &notebook.Field{
				ComponentNamespace: "faims-custom",
				ComponentName:      "BasicAutoIncrementer",
				TypeReturned:       "faims-core::String",
				ComponentParameters: notebook.Params{
					"name":       "basic-autoincrementer-field",
					"id":         "basic-autoincrementer-field",
					"variant":    "outlined",
					"required":   true,
					"num_digits": 5,
					"form_id":    "default",
					"label":      "Auto Incrementing Field",
				},
				ValidationSchema: notebook.ValidationSchema{{"yup.string"}, {"yup.required"}},
			},
			OnAdd: setFormID,
		},
		{
			Name: "MultipleTextField",
			Prototype: &notebook.Field{
				ComponentNamespace: "formik-material-ui",
				ComponentName:      "MultipleTextField",
				TypeReturned:       "faims-core::String",
				ComponentParameters: notebook.Params{
					"fullWidth":           true,
					"helperText":          "Helper Text",
					"variant":             "outlined",
					"required":            false,
					"multiline":           true,
					"InputProps":          obj{"type": "text", "rows": 4},
					"SelectProps":         obj{},
					"InputLabelProps":     obj{"label": "Text Field"},
					"FormHelperTextProps": obj{},
				},
				ValidationSchema: notebook.ValidationSchema{{"yup.string"}},
				InitialValue:     "",
			},
		},
		{
			Name: "Checkbox",
			Prototype: &notebook.Field{
				ComponentNamespace: "faims-custom",
				ComponentName:      "Checkbox",
				TypeReturned:       "faims-core::Bool",
				ComponentParameters: notebook.Params{
					"name":                  "checkbox-field",
					"id":                    "checkbox-field",
					"required":              false,
					"type":                  "checkbox",
					"FormControlLabelProps": obj{"label": "Terms and Conditions"},
					"FormHelperTextProps":   obj{"children": "Read the terms and conditions carefully."},
				},
				ValidationSchema: notebook.ValidationSchema{{"yup.bool"}},
				InitialValue:     false,
			},
		},
		{
			Name: "DateTimeNow",
			Prototype: &notebook.Field{
				ComponentNamespace: "faims-custom",
				ComponentName:      "DateTimeNow",
				TypeReturned:       "faims-core::String",
				ComponentParameters: notebook.Params{
					"fullWidth":       true,
					"helperText":      "Add a datetime stamp (click now to record the current date+time)",
					"variant":         "outlined",
					"required":        false,
					"InputLabelProps": obj{"label": "DateTimeNow Field"},
					"is_auto_pick":    false,
				},
				ValidationSchema: notebook.ValidationSchema{{"yup.string"}},
				InitialValue:     "",
			},
		},
		textInput("DatePicker", "faims-core::Date", "date", "Date picker", "We have a date picker with a calendar prompt."),
		textInput("DateTimePicker", "faims-core::Datetime", "datetime-local", "Date and Time picker", "And a calendar prompt with a timestamp."),
		textInput("MonthPicker", "faims-core::Date", "month", "Month picker", "And one to select just the month if that is all you need."),
		{
			Name: "FileUploader",
			Prototype: &notebook.Field{
				ComponentNamespace: "faims-custom",
				ComponentName:      "FileUploader",
				TypeReturned:       "faims-attachment::Files",
				ComponentParameters: notebook.Params{
					"name":       "file-upload-field",
					"id":         "file-upload-field",
					"helperText": "Choose a file",
				},
				ValidationSchema: notebook.ValidationSchema{{"yup.mixed"}},
			},
		},
		{
			Name: "MapFormField",
			Prototype: &notebook.Field{
				ComponentNamespace: "mapping-plugin",
				ComponentName:      "MapFormField",
				TypeReturned:       "faims-core::JSON",
				ComponentParameters: notebook.Params{
					"name":        "map-form-field",
					"id":          "map-form-field",
					"variant":     "outlined",
					"required":    false,
					"featureType": "Point",
					"zoom":        12,
					"label":       "",
					"geoTiff":     "",
				},
				ValidationSchema: notebook.ValidationSchema{{"yup.string"}},
				InitialValue:     "1",
			},
		},
		{
			Name: "MultiSelect",
			Prototype: &notebook.Field{
				ComponentNamespace: "faims-custom",
				ComponentName:      "MultiSelect",
				TypeReturned:       "faims-core::Array",
				ComponentParameters: notebook.Params{
					"fullWidth":   true,
					"helperText":  "Choose items from the dropdown",
					"variant":     "outlined",
					"required":    false,
					"select":      true,
					"InputProps":  obj{},
					"SelectProps": obj{"multiple": true},
					"ElementProps": obj{"options": []any{
						obj{"value": "Default", "label": "Default"},
						obj{"value": "Default2", "label": "Default2"},
					}},
					"InputLabelProps": obj{"label": "Select Multiple"},
				},
				ValidationSchema: notebook.ValidationSchema{{"yup.array"}},
				InitialValue:     []any{},
			},
		},
		{
			Name: "RadioGroup",
			Prototype: &notebook.Field{
				ComponentNamespace: "faims-custom",
				ComponentName:      "RadioGroup",
				TypeReturned:       "faims-core::String",
				ComponentParameters: notebook.Params{
					"name":     "radio-group-field",
					"id":       "radio-group-field",
					"variant":  "outlined",
					"required": false,
					"ElementProps": obj{"options": []any{
						obj{"value": "1", "label": "1", "RadioProps": obj{"id": "radio-group-field-1"}},
					}},
					"FormLabelProps":      obj{"children": "Pick a number"},
					"FormHelperTextProps": obj{"children": "Make sure you choose the right one!"},
				},
				ValidationSchema: notebook.ValidationSchema{{"yup.string"}},
				InitialValue:     "1",
			},
		},
		{
			Name: "RandomStyle",
			Prototype: &notebook.Field{
				ComponentNamespace: "faims-custom",
				ComponentName:      "RandomStyle",
				TypeReturned:       "faims-core::String",
				ComponentParameters: notebook.Params{
					"fullWidth":     true,
					"helperText":    "This is sub Title",
					"variant":       "outlined",
					"label":         "Title",
					"variant_style": "h5",
					"html_tag":      "",
				},
				ValidationSchema: notebook.ValidationSchema{{"yup.string"}},
				InitialValue:     "",
			},
		},
		{
			Name: "RichText",
			Prototype: &notebook.Field{
				ComponentNamespace: "faims-custom",
				ComponentName:      "RichText",
				TypeReturned:       "faims-core::String",
				ComponentParameters: notebook.Params{
					"label":   "Unused",
					"content": "Hello __World__",
				},
			},
		},
		{
			Name: "RelatedRecordSelector",
			Prototype: &notebook.Field{
				ComponentNamespace: "faims-custom",
				ComponentName:      "RelatedRecordSelector",
				TypeReturned:       "faims-core::Relationship",
				ComponentParameters: notebook.Params{
					"fullWidth":           true,
					"helperText":          "Select or add new related record",
					"variant":             "outlined",
					"required":            true,
					"related_type":        "",
					"relation_type":       "faims-core::Child",
					"InputProps":          obj{"type": "text"},
					"multiple":            false,
					"SelectProps":         obj{},
					"InputLabelProps":     obj{"label": "Select Related"},
					"FormHelperTextProps": obj{},
				},
				ValidationSchema: notebook.ValidationSchema{{"yup.string"}},
				InitialValue:     "",
			},
			OnAdd: relateToForm,
		},
		{
			Name: "Select",
			Prototype: &notebook.Field{
				ComponentNamespace: "faims-custom",
				ComponentName:      "Select",
				TypeReturned:       "faims-core::String",
				ComponentParameters: notebook.Params{
					"fullWidth":       true,
					"helperText":      "Choose a field from the dropdown",
					"variant":         "outlined",
					"required":        false,
					"select":          true,
					"InputProps":      obj{},
					"SelectProps":     obj{},
					"ElementProps":    obj{"options": []any{}},
					"InputLabelProps": obj{"label": "Select Field"},
				},
				ValidationSchema: notebook.ValidationSchema{{"yup.string"}},
				InitialValue:     "",
			},
		},
		{
			Name: "AdvancedSelect",
			Prototype: &notebook.Field{
				ComponentNamespace: "faims-custom",
				ComponentName:      "AdvancedSelect",
				TypeReturned:       "faims-core::String",
				ComponentParameters: notebook.Params{
					"fullWidth":    true,
					"helperText":   "Select from list",
					"variant":      "outlined",
					"required":     false,
					"select":       true,
					"InputProps":   obj{},
					"SelectProps":  obj{},
					"ElementProps": obj{"optiontree": []any{obj{"name": "Default", "children": []any{}}}},
					"label":        "Select Field",
					"valuetype":    "full",
				},
				ValidationSchema: notebook.ValidationSchema{{"yup.string"}},
				InitialValue:     "",
			},
		},
		{
			Name: "TakePhoto",
			Prototype: &notebook.Field{
				ComponentNamespace: "faims-custom",
				ComponentName:      "TakePhoto",
				TypeReturned:       "faims-attachment::Files",
				ComponentParameters: notebook.Params{
					"fullWidth":  true,
					"name":       "take-photo-field",
					"id":         "take-photo-field",
					"helperText": "Take a photo",
					"variant":    "outlined",
					"label":      "Take Photo",
				},
				ValidationSchema: notebook.ValidationSchema{
					{"yup.array"},
					{"yup.of", []any{[]any{"yup.object"}, []any{"yup.nullable"}}},
					{"yup.nullable"},
				},
			},
		},
		{
			Name: "TakePoint",
			Prototype: &notebook.Field{
				ComponentNamespace: "faims-custom",
				ComponentName:      "TakePoint",
				TypeReturned:       "faims-pos::Location",
				ComponentParameters: notebook.Params{
					"fullWidth":  true,
					"name":       "take-point-field",
					"id":         "take-point-field",
					"helperText": "Click to save current location",
					"variant":    "outlined",
					"label":      "Take point",
				},
				ValidationSchema: notebook.ValidationSchema{{"yup.object"}, {"yup.nullable"}},
			},
		},
		{
			Name: "TemplatedStringField",
			Prototype: &notebook.Field{
				ComponentNamespace: "faims-custom",
				ComponentName:      "TemplatedStringField",
				TypeReturned:       "faims-core::String",
				ComponentParameters: notebook.Params{
					"fullWidth":       true,
					"name":            "hrid-field",
					"id":              "hrid-field",
					"helperText":      "Human Readable ID",
					"variant":         "outlined",
					"required":        true,
					"template":        " {{}}",
					"InputProps":      obj{"type": "text"},
					"InputLabelProps": obj{"label": "Human Readable ID"},
				},
				ValidationSchema: notebook.ValidationSchema{{"yup.string"}, {"yup.required"}},
				InitialValue:     "",
			},
			OnAdd: claimHRID,
		},
		{
			Name: "QRCodeFormField",
			Prototype: &notebook.Field{
				ComponentNamespace: "qrcode",
				ComponentName:      "QRCodeFormField",
				TypeReturned:       "faims-core::String",
				ComponentParameters: notebook.Params{
					"name":           "qr-code-field",
					"id":             "qr-code-field",
					"variant":        "outlined",
					"required":       false,
					"label":          "Scan QR Code",
					"FormLabelProps": obj{"children": "Input a value here"},
				},
				ValidationSchema: notebook.ValidationSchema{{"yup.string"}},
				InitialValue:     "1",
			},
		},
	}
}

// textInput builds the formik TextField variants that differ only in input
// type, label and help text.
func textInput(name, returned, inputType, label, help string) Type {
	return Type{
		Name: name,
		Prototype: &notebook.Field{
			ComponentNamespace: "formik-material-ui",
			ComponentName:      "TextField",
			TypeReturned:       returned,
			ComponentParameters: notebook.Params{
				"fullWidth":           true,
				"helperText":          help,
				"variant":             "outlined",
				"required":            false,
				"InputProps":          obj{"type": inputType},
				"SelectProps":         obj{},
				"InputLabelProps":     obj{"label": label},
				"FormHelperTextProps": obj{},
			},
			ValidationSchema: notebook.ValidationSchema{{"yup.string"}},
			InitialValue:     "",
		},
	}
}
