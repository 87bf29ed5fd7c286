package notebook

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Extra holds the keys of a field, section or form that the model does not
// declare. They are written back unchanged.
type Extra map[string]any

// Clone deep copies the extra keys.
func (e Extra) Clone() Extra {
	if e == nil {
		return nil
	}
	out := make(Extra, len(e))
	for k, v := range e {
		out[k] = cloneValue(v)
	}
	return out
}

type plainField Field

// MarshalJSON writes the declared keys followed by any extra ones. A field
// read with an explicit null initialValue keeps it.
func (f *Field) MarshalJSON() ([]byte, error) {
	extra := f.Extra
	if f.InitialValue == nil && f.nullInitialValue {
		extra = extra.Clone()
		if extra == nil {
			extra = Extra{}
		}
		extra["initialValue"] = nil
	}
	return marshalWithExtra((*plainField)(f), extra)
}

// UnmarshalJSON reads the declared keys and keeps the rest in Extra.
func (f *Field) UnmarshalJSON(data []byte) error {
	var plain plainField
	raw, err := unmarshalWithExtra(data, &plain, &plain.Extra)
	if err != nil {
		return err
	}
	*f = Field(plain)
	if v, ok := raw["initialValue"]; ok && string(v) == "null" {
		f.nullInitialValue = true
	}
	return nil
}

type plainSection Section

// MarshalJSON writes the declared keys followed by any extra ones.
func (s *Section) MarshalJSON() ([]byte, error) {
	return marshalWithExtra((*plainSection)(s), s.Extra)
}

// UnmarshalJSON reads the declared keys and keeps the rest in Extra.
func (s *Section) UnmarshalJSON(data []byte) error {
	var plain plainSection
	if _, err := unmarshalWithExtra(data, &plain, &plain.Extra); err != nil {
		return err
	}
	*s = Section(plain)
	return nil
}

type plainForm Form

// MarshalJSON writes the declared keys followed by any extra ones.
func (f *Form) MarshalJSON() ([]byte, error) {
	return marshalWithExtra((*plainForm)(f), f.Extra)
}

// UnmarshalJSON reads the declared keys and keeps the rest in Extra.
func (f *Form) UnmarshalJSON(data []byte) error {
	var plain plainForm
	if _, err := unmarshalWithExtra(data, &plain, &plain.Extra); err != nil {
		return err
	}
	*f = Form(plain)
	return nil
}

// marshalWithExtra encodes v and adds the extra keys v does not write.
func marshalWithExtra(v any, extra Extra) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for k, val := range extra {
		if _, ok := merged[k]; ok {
			continue
		}
		raw, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		merged[k] = raw
	}
	return json.Marshal(merged)
}

// unmarshalWithExtra decodes data into v and stores the keys that v's type
// does not declare in extra. It returns the raw object.
func unmarshalWithExtra(data []byte, v any, extra *Extra) (map[string]json.RawMessage, error) {
	if err := json.Unmarshal(data, v); err != nil {
		return nil, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	known := jsonKeys(reflect.TypeOf(v).Elem())
	for k, msg := range raw {
		if known[k] {
			continue
		}
		var val any
		if err := json.Unmarshal(msg, &val); err != nil {
			return nil, err
		}
		if *extra == nil {
			*extra = Extra{}
		}
		(*extra)[k] = val
	}
	return raw, nil
}

// jsonKeys returns the JSON names of the exported fields of struct type t.
func jsonKeys(t reflect.Type) map[string]bool {
	keys := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		switch name {
		case "-":
			continue
		case "":
			name = sf.Name
		}
		keys[name] = true
	}
	return keys
}
