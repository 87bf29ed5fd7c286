package uispec

import (
	"github.com/fieldmark/designer/internal/fields"
	"github.com/fieldmark/designer/internal/notebook"
	utilstrings "github.com/fieldmark/designer/internal/util/strings"
)

// Loaded replaces the whole specification.
type Loaded struct {
	Spec *notebook.UISpec
}

func (Loaded) Name() string { return "loaded" }

func (op Loaded) apply(_ *Engine, s *notebook.UISpec) error {
	next := op.Spec.Clone()
	if next == nil {
		next = notebook.NewUISpec()
	}
	*s = *next
	return nil
}

// FieldUpdated replaces the definition of an existing field.
type FieldUpdated struct {
	FieldName string          `json:"fieldName"`
	NewField  *notebook.Field `json:"newField"`
}

func (FieldUpdated) Name() string { return "fieldUpdated" }

func (op FieldUpdated) apply(_ *Engine, s *notebook.UISpec) error {
	if _, ok := s.Fields[op.FieldName]; !ok {
		return notFound(op.Name(), "field", op.FieldName)
	}
	if op.NewField == nil {
		return invalid(op.Name(), "newField is required")
	}
	s.Fields[op.FieldName] = op.NewField.Clone()
	return nil
}

// FieldMoved swaps a field with its neighbour in a section.
type FieldMoved struct {
	FieldName string    `json:"fieldName"`
	ViewID    string    `json:"viewId"`
	Direction Direction `json:"direction"`
}

func (FieldMoved) Name() string { return "fieldMoved" }

func (op FieldMoved) apply(_ *Engine, s *notebook.UISpec) error {
	if !op.Direction.valid(Up, Down) {
		return invalid(op.Name(), "direction must be up or down, got %q", op.Direction)
	}
	section, ok := s.FViews[op.ViewID]
	if !ok {
		return notFound(op.Name(), "section", op.ViewID)
	}
	move(section.Fields, op.FieldName, op.Direction)
	return nil
}

// FieldMovedToSection moves a field to the end of another section. Moving
// to another form drops it from the source form's summary fields.
type FieldMovedToSection struct {
	FieldName    string `json:"fieldName"`
	SourceViewID string `json:"sourceViewId"`
	TargetViewID string `json:"targetViewId"`
}

func (FieldMovedToSection) Name() string { return "fieldMovedToSection" }

func (op FieldMovedToSection) apply(_ *Engine, s *notebook.UISpec) error {
	if _, ok := s.Fields[op.FieldName]; !ok {
		return notFound(op.Name(), "field", op.FieldName)
	}
	source, ok := s.FViews[op.SourceViewID]
	if !ok {
		return notFound(op.Name(), "section", op.SourceViewID)
	}
	target, ok := s.FViews[op.TargetViewID]
	if !ok {
		return notFound(op.Name(), "section", op.TargetViewID)
	}
	if indexOf(source.Fields, op.FieldName) < 0 {
		return notListed(op.Name(), "field", op.FieldName, "section "+op.SourceViewID)
	}

	source.Fields = without(source.Fields, op.FieldName)
	target.Fields = append(target.Fields, op.FieldName)

	sourceForm, _ := s.FormOf(op.SourceViewID)
	targetForm, _ := s.FormOf(op.TargetViewID)
	if sourceForm != "" && sourceForm != targetForm {
		removeFromSummary(s.ViewSets[sourceForm], op.FieldName)
	}
	return nil
}

// FieldRenamed gives a field a new unique identifier and rewrites every
// reference to the old one.
type FieldRenamed struct {
	ViewID       string `json:"viewId"`
	FieldName    string `json:"fieldName"`
	NewFieldName string `json:"newFieldName"`
}

func (FieldRenamed) Name() string { return "fieldRenamed" }

func (op FieldRenamed) apply(_ *Engine, s *notebook.UISpec) error {
	field, ok := s.Fields[op.FieldName]
	if !ok {
		return notFound(op.Name(), "field", op.FieldName)
	}
	section, ok := s.FViews[op.ViewID]
	if !ok {
		return notFound(op.Name(), "section", op.ViewID)
	}
	at := indexOf(section.Fields, op.FieldName)
	if at < 0 {
		return notListed(op.Name(), "field", op.FieldName, "section "+op.ViewID)
	}

	newName := utilstrings.UniqueSlug(op.NewFieldName, func(id string) bool {
		_, taken := s.Fields[id]
		return taken
	})

	if field.ComponentParameters == nil {
		field.ComponentParameters = notebook.Params{}
	}
	field.ComponentParameters.Set("name", newName)
	delete(s.Fields, op.FieldName)
	s.Fields[newName] = field
	section.Fields[at] = newName

	for _, f := range s.Fields {
		renameInCondition(f.Condition, op.FieldName, newName)
	}
	for _, v := range s.FViews {
		renameInCondition(v.Condition, op.FieldName, newName)
	}
	for _, form := range s.ViewSets {
		for i, name := range form.SummaryFields {
			if name == op.FieldName {
				form.SummaryFields[i] = newName
			}
		}
		if form.HRIDField == op.FieldName {
			form.HRIDField = newName
		}
	}
	return nil
}

// FieldAdded creates a field from a registered type and appends it to a
// section, or inserts it after AddAfter when that field is in the section.
type FieldAdded struct {
	FieldName string `json:"fieldName"`
	FieldType string `json:"fieldType"`
	ViewID    string `json:"viewId"`
	ViewSetID string `json:"viewSetId"`
	AddAfter  string `json:"addAfter,omitempty"`
}

func (FieldAdded) Name() string { return "fieldAdded" }

func (op FieldAdded) apply(e *Engine, s *notebook.UISpec) error {
	section, ok := s.FViews[op.ViewID]
	if !ok {
		return notFound(op.Name(), "section", op.ViewID)
	}
	if !e.registry.Has(op.FieldType) {
		return notFound(op.Name(), "field type", op.FieldType)
	}

	field, override, err := e.registry.Instantiate(op.FieldType, fields.Placement{
		Spec:      s,
		ViewID:    op.ViewID,
		ViewSetID: op.ViewSetID,
	})
	if err != nil {
		return notFound(op.Name(), "field type", op.FieldType)
	}

	candidate := utilstrings.Slugify(op.FieldName)
	if override != "" {
		candidate = override
	}

	field.Meta = notebook.DefaultMeta()
	if field.ComponentParameters == nil {
		field.ComponentParameters = notebook.Params{}
	}
	params := field.ComponentParameters
	if params.Has("label") {
		params.Set("label", op.FieldName)
	} else if labelProps := params.Map("InputLabelProps"); labelProps != nil && labelProps.Has("label") {
		labelProps.Set("label", op.FieldName)
	}

	name := utilstrings.UniqueSlugFrom(candidate, op.FieldName, func(id string) bool {
		_, taken := s.Fields[id]
		return taken
	})
	params.Set("name", name)
	s.Fields[name] = field

	if i := indexOf(section.Fields, op.AddAfter); op.AddAfter != "" && i >= 0 {
		section.Fields = insertAt(section.Fields, i+1, name)
	} else {
		section.Fields = append(section.Fields, name)
	}
	return nil
}

// FieldDeleted removes a field from the UI specification and its section.
type FieldDeleted struct {
	FieldName string `json:"fieldName"`
	ViewID    string `json:"viewId"`
}

func (FieldDeleted) Name() string { return "fieldDeleted" }

func (op FieldDeleted) apply(_ *Engine, s *notebook.UISpec) error {
	field, ok := s.Fields[op.FieldName]
	if !ok {
		return notFound(op.Name(), "field", op.FieldName)
	}
	section, ok := s.FViews[op.ViewID]
	if !ok {
		return notFound(op.Name(), "section", op.ViewID)
	}
	if indexOf(section.Fields, op.FieldName) < 0 {
		return notListed(op.Name(), "field", op.FieldName, "section "+op.ViewID)
	}
	if field.ComponentParameters.String("protection") == ProtectionProtected {
		return &ProtectedError{ID: op.FieldName}
	}

	delete(s.Fields, op.FieldName)
	section.Fields = without(section.Fields, op.FieldName)
	removeFromSummaries(s, op.FieldName)
	return nil
}

// FieldDuplicated copies a field under a new label and places the copy
// right after the original.
type FieldDuplicated struct {
	OriginalFieldName string `json:"originalFieldName"`
	NewFieldName      string `json:"newFieldName"`
	ViewID            string `json:"viewId"`
}

func (FieldDuplicated) Name() string { return "fieldDuplicated" }

func (op FieldDuplicated) apply(_ *Engine, s *notebook.UISpec) error {
	original, ok := s.Fields[op.OriginalFieldName]
	if !ok {
		return notFound(op.Name(), "field", op.OriginalFieldName)
	}
	section, ok := s.FViews[op.ViewID]
	if !ok {
		return notFound(op.Name(), "section", op.ViewID)
	}
	at := indexOf(section.Fields, op.OriginalFieldName)
	if at < 0 {
		return notListed(op.Name(), "field", op.OriginalFieldName, "section "+op.ViewID)
	}

	name := utilstrings.UniqueSlug(op.NewFieldName, func(id string) bool {
		_, taken := s.Fields[id]
		return taken
	})

	field := original.Clone()
	if field.ComponentParameters == nil {
		field.ComponentParameters = notebook.Params{}
	}
	field.ComponentParameters.Set("label", op.NewFieldName)
	field.ComponentParameters.Set("name", name)
	s.Fields[name] = field

	section.Fields = insertAt(section.Fields, at+1, name)
	return nil
}

// FieldConditionChanged sets or, with a nil condition, clears the
// visibility condition of a field.
type FieldConditionChanged struct {
	FieldName string              `json:"fieldName"`
	Condition *notebook.Condition `json:"condition"`
}

func (FieldConditionChanged) Name() string { return "fieldConditionChanged" }

func (op FieldConditionChanged) apply(_ *Engine, s *notebook.UISpec) error {
	field, ok := s.Fields[op.FieldName]
	if !ok {
		return notFound(op.Name(), "field", op.FieldName)
	}
	field.Condition = op.Condition.Clone()
	return nil
}

// Field protection levels.
const (
	ProtectionNone        = "none"
	ProtectionAllowHiding = "allow-hiding"
	ProtectionProtected   = "protected"
)

// FieldProtectionToggled sets the protection level of a field. Protecting a
// field also unhides it.
type FieldProtectionToggled struct {
	FieldName  string `json:"fieldName"`
	Protection string `json:"protection"`
}

func (FieldProtectionToggled) Name() string { return "toggleFieldProtection" }

func (op FieldProtectionToggled) apply(_ *Engine, s *notebook.UISpec) error {
	field, ok := s.Fields[op.FieldName]
	if !ok {
		return notFound(op.Name(), "field", op.FieldName)
	}
	switch op.Protection {
	case ProtectionNone, ProtectionAllowHiding, ProtectionProtected:
	default:
		return invalid(op.Name(), "unknown protection %q", op.Protection)
	}

	if field.ComponentParameters == nil {
		field.ComponentParameters = notebook.Params{}
	}
	field.ComponentParameters.Set("protection", op.Protection)
	if op.Protection == ProtectionProtected && field.ComponentParameters.Bool("hidden") {
		field.ComponentParameters.Set("hidden", false)
	}
	return nil
}

// FieldHiddenToggled hides or shows a field. Fields at the protected level
// cannot be hidden; allow-hiding permits it.
type FieldHiddenToggled struct {
	FieldName string `json:"fieldName"`
	Hidden    bool   `json:"hidden"`
}

func (FieldHiddenToggled) Name() string { return "toggleFieldHidden" }

func (op FieldHiddenToggled) apply(_ *Engine, s *notebook.UISpec) error {
	field, ok := s.Fields[op.FieldName]
	if !ok {
		return notFound(op.Name(), "field", op.FieldName)
	}
	if op.Hidden && field.ComponentParameters.String("protection") == ProtectionProtected {
		return &ProtectedError{ID: op.FieldName, Action: "hidden"}
	}
	if field.ComponentParameters == nil {
		field.ComponentParameters = notebook.Params{}
	}
	field.ComponentParameters.Set("hidden", op.Hidden)
	return nil
}
