package notebook

import "encoding/json"

// Boolean operators combine child conditions.
const (
	OperatorAnd = "and"
	OperatorOr  = "or"
)

// Condition is a visibility expression attached to a field or a section.
// A field condition compares Field's value to Value using Operator; a boolean
// condition combines Conditions with "and" or "or".
type Condition struct {
	Operator   string       `json:"operator"`
	Field      string       `json:"field,omitempty"`
	Value      any          `json:"value,omitempty"`
	Conditions []*Condition `json:"conditions,omitempty"`
}

// IsBoolean reports whether the condition is an and/or group.
func (c *Condition) IsBoolean() bool {
	return c != nil && (c.Operator == OperatorAnd || c.Operator == OperatorOr)
}

// MarshalJSON writes boolean conditions as {operator, conditions} and field
// conditions as {operator, field, value}.
func (c *Condition) MarshalJSON() ([]byte, error) {
	if c.IsBoolean() {
		conditions := c.Conditions
		if conditions == nil {
			conditions = []*Condition{}
		}
		return json.Marshal(struct {
			Operator   string       `json:"operator"`
			Conditions []*Condition `json:"conditions"`
		}{c.Operator, conditions})
	}
	return json.Marshal(struct {
		Operator string `json:"operator"`
		Field    string `json:"field"`
		Value    any    `json:"value"`
	}{c.Operator, c.Field, c.Value})
}

// Clone deep copies the condition tree.
func (c *Condition) Clone() *Condition {
	if c == nil {
		return nil
	}
	out := &Condition{
		Operator: c.Operator,
		Field:    c.Field,
		Value:    cloneValue(c.Value),
	}
	if c.Conditions != nil {
		out.Conditions = make([]*Condition, len(c.Conditions))
		for i, child := range c.Conditions {
			out.Conditions[i] = child.Clone()
		}
	}
	return out
}
