package notebook

// Params is the loosely typed component-parameters bag of a field.
type Params map[string]any

// String returns the string stored under key, or "".
func (p Params) String(key string) string {
	if p == nil {
		return ""
	}
	s, _ := p[key].(string)
	return s
}

// Bool returns the bool stored under key, or false.
func (p Params) Bool(key string) bool {
	if p == nil {
		return false
	}
	b, _ := p[key].(bool)
	return b
}

// Map returns the nested object stored under key, or nil.
func (p Params) Map(key string) Params {
	if p == nil {
		return nil
	}
	switch m := p[key].(type) {
	case Params:
		return m
	case map[string]any:
		return Params(m)
	}
	return nil
}

// Has reports whether key is present.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Set stores value under key.
func (p Params) Set(key string, value any) {
	p[key] = value
}

// Delete removes key.
func (p Params) Delete(key string) {
	delete(p, key)
}

// Option is a value/label pair from ElementProps.options.
type Option struct {
	Value string
	Label string
}

// Options returns ElementProps.options of select-like fields.
func (p Params) Options() []Option {
	raw, _ := p.Map("ElementProps")["options"].([]any)
	opts := make([]Option, 0, len(raw))
	for _, item := range raw {
		var m Params
		switch v := item.(type) {
		case map[string]any:
			m = Params(v)
		case Params:
			m = v
		default:
			continue
		}
		opts = append(opts, Option{Value: m.String("value"), Label: m.String("label")})
	}
	return opts
}

// OptionValues returns the values of Options.
func (p Params) OptionValues() []string {
	opts := p.Options()
	values := make([]string, len(opts))
	for i, o := range opts {
		values[i] = o.Value
	}
	return values
}
