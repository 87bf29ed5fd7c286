package condition

import (
	"fmt"

	"github.com/fieldmark/designer/internal/notebook"
)

// EmptyField returns the blank field condition the editor starts from.
func EmptyField() *notebook.Condition {
	return &notebook.Condition{Operator: Equal, Field: "", Value: ""}
}

// EmptyBoolean returns a blank "and" group.
func EmptyBoolean() *notebook.Condition {
	return &notebook.Condition{Operator: And, Conditions: []*notebook.Condition{}}
}

// FieldComplete reports whether a field condition has a field, an operator
// and a defined value.
func FieldComplete(c *notebook.Condition) bool {
	return c != nil && !c.IsBoolean() && c.Field != "" && c.Operator != "" && c.Value != nil
}

// BooleanComplete reports whether a boolean condition has an operator and at
// least one child.
func BooleanComplete(c *notebook.Condition) bool {
	return c != nil && c.IsBoolean() && len(c.Conditions) > 0
}

// Complete reports whether c may be handed to its owner.
func Complete(c *notebook.Condition) bool {
	if c.IsBoolean() {
		return BooleanComplete(c)
	}
	return FieldComplete(c)
}

// Split turns a field condition into an "and" group holding the original and
// a new empty field condition.
func Split(c *notebook.Condition) *notebook.Condition {
	return &notebook.Condition{
		Operator:   And,
		Conditions: []*notebook.Condition{c.Clone(), EmptyField()},
	}
}

// AppendChild returns a copy of the boolean condition c with an empty field
// condition appended.
func AppendChild(c *notebook.Condition) (*notebook.Condition, error) {
	if !c.IsBoolean() {
		return nil, fmt.Errorf("cannot add a child to %q condition", operatorOf(c))
	}
	out := c.Clone()
	out.Conditions = append(out.Conditions, EmptyField())
	return out, nil
}

// ReplaceChild returns a copy of c with child i replaced. Replacing with nil
// removes the child.
func ReplaceChild(c *notebook.Condition, i int, child *notebook.Condition) (*notebook.Condition, error) {
	if child == nil {
		return RemoveChild(c, i)
	}
	if !c.IsBoolean() {
		return nil, fmt.Errorf("cannot replace a child of %q condition", operatorOf(c))
	}
	if i < 0 || i >= len(c.Conditions) {
		return nil, fmt.Errorf("condition child %d out of range", i)
	}
	out := c.Clone()
	out.Conditions[i] = child.Clone()
	return out, nil
}

// RemoveChild returns a copy of c without child i. Removing the last child
// collapses the whole group to nil, meaning no condition.
func RemoveChild(c *notebook.Condition, i int) (*notebook.Condition, error) {
	if !c.IsBoolean() {
		return nil, fmt.Errorf("cannot remove a child of %q condition", operatorOf(c))
	}
	if i < 0 || i >= len(c.Conditions) {
		return nil, fmt.Errorf("condition child %d out of range", i)
	}
	out := c.Clone()
	out.Conditions = append(out.Conditions[:i], out.Conditions[i+1:]...)
	if len(out.Conditions) == 0 {
		return nil, nil
	}
	return out, nil
}

// SetOperator returns a copy of c with a new operator. Switching a group
// between and/or keeps its children.
func SetOperator(c *notebook.Condition, op string) *notebook.Condition {
	out := c.Clone()
	if out == nil {
		out = EmptyField()
	}
	out.Operator = op
	return out
}

// Normalize treats an empty boolean group as no condition.
func Normalize(c *notebook.Condition) *notebook.Condition {
	if c.IsBoolean() && len(c.Conditions) == 0 {
		return nil
	}
	return c
}

func operatorOf(c *notebook.Condition) string {
	if c == nil {
		return "empty"
	}
	return c.Operator
}

// Builder mirrors the editor's behaviour: drafts are kept locally and only
// complete conditions, or a deletion, reach OnChange.
type Builder struct {
	OnChange func(*notebook.Condition)
	current  *notebook.Condition
}

// NewBuilder starts from initial, or an empty field condition.
func NewBuilder(initial *notebook.Condition, onChange func(*notebook.Condition)) *Builder {
	if initial == nil {
		initial = EmptyField()
	}
	return &Builder{OnChange: onChange, current: initial.Clone()}
}

// Current returns the draft, which may be incomplete.
func (b *Builder) Current() *notebook.Condition {
	return b.current.Clone()
}

// Update replaces the draft and notifies OnChange when it is complete.
func (b *Builder) Update(c *notebook.Condition) {
	b.current = c.Clone()
	if b.OnChange != nil && Complete(b.current) {
		b.OnChange(b.current.Clone())
	}
}

// SetField changes the operand. Checkbox targets reset to equal/true and
// option backed targets default to their first option.
func (b *Builder) SetField(name string, target *notebook.Field) {
	next := b.current.Clone()
	if next == nil || next.IsBoolean() {
		next = EmptyField()
	}
	next.Field = name
	switch {
	case target != nil && target.ComponentName == "Checkbox":
		next.Operator = Equal
		next.Value = true
	case target != nil && hasPredefinedOptions(target):
		next.Operator = Equal
		next.Value = ""
		if opts := target.ComponentParameters.Options(); len(opts) > 0 {
			next.Value = opts[0].Value
		}
	default:
		next.Value = ""
	}
	b.Update(next)
}

// SetOperator changes the operator of the draft.
func (b *Builder) SetOperator(op string) {
	b.Update(SetOperator(b.current, op))
}

// SetValue changes the literal of the draft.
func (b *Builder) SetValue(v any) {
	next := b.current.Clone()
	if next == nil {
		next = EmptyField()
	}
	next.Value = v
	b.Update(next)
}

// Split replaces the draft with a two child group and always notifies.
func (b *Builder) Split() {
	b.current = Split(b.current)
	if b.OnChange != nil {
		b.OnChange(b.current.Clone())
	}
}

// Delete clears the condition and notifies with nil.
func (b *Builder) Delete() {
	b.current = nil
	if b.OnChange != nil {
		b.OnChange(nil)
	}
}

func hasPredefinedOptions(f *notebook.Field) bool {
	switch f.ComponentName {
	case "Select", "RadioGroup", "MultiSelect", "Checkbox":
		return true
	}
	return false
}
