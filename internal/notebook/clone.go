package notebook

// Clone deep copies the notebook.
func (n *Notebook) Clone() *Notebook {
	if n == nil {
		return nil
	}
	return &Notebook{
		Metadata: n.Metadata.Clone(),
		UISpec:   n.UISpec.Clone(),
	}
}

// Clone deep copies the UI specification.
func (s *UISpec) Clone() *UISpec {
	if s == nil {
		return nil
	}
	out := &UISpec{
		Fields:       make(map[string]*Field, len(s.Fields)),
		FViews:       make(map[string]*Section, len(s.FViews)),
		ViewSets:     make(map[string]*Form, len(s.ViewSets)),
		VisibleTypes: cloneStrings(s.VisibleTypes),
	}
	for k, f := range s.Fields {
		out.Fields[k] = f.Clone()
	}
	for k, v := range s.FViews {
		out.FViews[k] = v.Clone()
	}
	for k, v := range s.ViewSets {
		out.ViewSets[k] = v.Clone()
	}
	return out
}

// Clone deep copies the field.
func (f *Field) Clone() *Field {
	if f == nil {
		return nil
	}
	out := *f
	out.ComponentParameters = f.ComponentParameters.Clone()
	if f.ValidationSchema != nil {
		out.ValidationSchema = make(ValidationSchema, len(f.ValidationSchema))
		for i, tuple := range f.ValidationSchema {
			out.ValidationSchema[i], _ = cloneValue(tuple).([]any)
		}
	}
	out.InitialValue = cloneValue(f.InitialValue)
	if f.Access != nil {
		out.Access = append([]string{}, f.Access...)
	}
	out.Condition = f.Condition.Clone()
	if f.Persistent != nil {
		v := *f.Persistent
		out.Persistent = &v
	}
	if f.DisplayParent != nil {
		v := *f.DisplayParent
		out.DisplayParent = &v
	}
	if f.Meta != nil {
		m := *f.Meta
		out.Meta = &m
	}
	out.Extra = f.Extra.Clone()
	return &out
}

// Clone deep copies the section.
func (s *Section) Clone() *Section {
	if s == nil {
		return nil
	}
	out := *s
	out.Fields = cloneStrings(s.Fields)
	out.Condition = s.Condition.Clone()
	out.Extra = s.Extra.Clone()
	return &out
}

// Clone deep copies the form.
func (f *Form) Clone() *Form {
	if f == nil {
		return nil
	}
	out := *f
	out.Views = cloneStrings(f.Views)
	if f.SummaryFields != nil {
		out.SummaryFields = append([]string{}, f.SummaryFields...)
	}
	out.Extra = f.Extra.Clone()
	return &out
}

// Clone deep copies the parameter bag.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

// Clone deep copies the metadata map.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneStrings copies a string slice and never returns nil.
func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// cloneValue copies the JSON-shaped values found in parameter bags and
// condition literals. Scalars are returned as is.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case Params:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	case []string:
		return append([]string{}, t...)
	case [][]any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	case ValidationSchema:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	default:
		return v
	}
}
