package uispec

import (
	"github.com/fieldmark/designer/internal/notebook"
	utilstrings "github.com/fieldmark/designer/internal/util/strings"
)

// SectionRenamed changes the label of a section. The id is kept.
type SectionRenamed struct {
	ViewID string `json:"viewId"`
	Label  string `json:"label"`
}

func (SectionRenamed) Name() string { return "sectionRenamed" }

func (op SectionRenamed) apply(_ *Engine, s *notebook.UISpec) error {
	section, ok := s.FViews[op.ViewID]
	if !ok {
		return notFound(op.Name(), "section", op.ViewID)
	}
	section.Label = op.Label
	return nil
}

// SectionAdded appends an empty section to a form. The id is derived from
// the form id and the label.
type SectionAdded struct {
	ViewSetID    string `json:"viewSetId"`
	SectionLabel string `json:"sectionLabel"`
}

func (SectionAdded) Name() string { return "sectionAdded" }

func (op SectionAdded) apply(_ *Engine, s *notebook.UISpec) error {
	form, ok := s.ViewSets[op.ViewSetID]
	if !ok {
		return notFound(op.Name(), "form", op.ViewSetID)
	}
	id := sectionID(op.ViewSetID, op.SectionLabel)
	if _, exists := s.FViews[id]; exists {
		return &ConflictError{Kind: "section", ID: op.SectionLabel, Scope: "form " + op.ViewSetID}
	}
	s.FViews[id] = &notebook.Section{Label: op.SectionLabel, Fields: []string{}}
	form.Views = append(form.Views, id)
	return nil
}

func sectionID(formID, label string) string {
	return utilstrings.Slugify(formID + "-" + label)
}

// SectionDuplicated copies a section and every field in it. The copy goes to
// DestinationViewSetID, or to the source section's own form when that is
// empty.
type SectionDuplicated struct {
	SourceViewID         string `json:"sourceViewId"`
	DestinationViewSetID string `json:"destinationViewSetId,omitempty"`
	NewSectionLabel      string `json:"newSectionLabel"`
}

func (SectionDuplicated) Name() string { return "sectionDuplicated" }

func (op SectionDuplicated) apply(_ *Engine, s *notebook.UISpec) error {
	source, ok := s.FViews[op.SourceViewID]
	if !ok {
		return notFound(op.Name(), "section", op.SourceViewID)
	}

	formID := op.DestinationViewSetID
	if formID == "" {
		formID, ok = s.FormOf(op.SourceViewID)
		if !ok {
			return invalid(op.Name(), "section %s belongs to no form", op.SourceViewID)
		}
	}
	form, ok := s.ViewSets[formID]
	if !ok {
		return notFound(op.Name(), "form", formID)
	}

	id := sectionID(formID, op.NewSectionLabel)
	if _, exists := s.FViews[id]; exists {
		return &ConflictError{Kind: "section", ID: op.NewSectionLabel, Scope: "form " + formID}
	}

	copied := &notebook.Section{
		Label:     op.NewSectionLabel,
		Fields:    make([]string, 0, len(source.Fields)),
		UIDesign:  source.UIDesign,
		Condition: source.Condition.Clone(),
	}
	for _, original := range source.Fields {
		field, ok := s.Fields[original]
		if !ok {
			continue
		}
		label := field.ComponentParameters.String("label")
		if label == "" {
			label = original
		}
		name := utilstrings.UniqueSlug(label, func(id string) bool {
			_, taken := s.Fields[id]
			return taken
		})

		dup := field.Clone()
		if dup.ComponentParameters == nil {
			dup.ComponentParameters = notebook.Params{}
		}
		dup.ComponentParameters.Set("label", label)
		dup.ComponentParameters.Set("name", name)
		s.Fields[name] = dup
		copied.Fields = append(copied.Fields, name)
	}

	s.FViews[id] = copied
	form.Views = append(form.Views, id)
	return nil
}

// SectionDeleted removes a section and every field it lists. Deleting a
// section that does not exist is a no-op; an existing section must be listed
// by the named form.
type SectionDeleted struct {
	ViewSetID string `json:"viewSetID"`
	ViewID    string `json:"viewID"`
}

func (SectionDeleted) Name() string { return "sectionDeleted" }

func (op SectionDeleted) apply(_ *Engine, s *notebook.UISpec) error {
	section, ok := s.FViews[op.ViewID]
	if !ok {
		return nil
	}
	form, ok := s.ViewSets[op.ViewSetID]
	if !ok {
		return notFound(op.Name(), "form", op.ViewSetID)
	}
	if indexOf(form.Views, op.ViewID) < 0 {
		return notListed(op.Name(), "section", op.ViewID, "form "+op.ViewSetID)
	}

	for _, name := range section.Fields {
		delete(s.Fields, name)
		removeFromSummaries(s, name)
	}
	delete(s.FViews, op.ViewID)
	form.Views = without(form.Views, op.ViewID)
	return nil
}

// SectionMovedToForm moves a section from the end of one form's views to the
// end of another's.
type SectionMovedToForm struct {
	SourceViewSetID string `json:"sourceViewSetId"`
	TargetViewSetID string `json:"targetViewSetId"`
	ViewID          string `json:"viewId"`
}

func (SectionMovedToForm) Name() string { return "sectionMovedToForm" }

func (op SectionMovedToForm) apply(_ *Engine, s *notebook.UISpec) error {
	section, ok := s.FViews[op.ViewID]
	if !ok {
		return notFound(op.Name(), "section", op.ViewID)
	}
	source, ok := s.ViewSets[op.SourceViewSetID]
	if !ok {
		return notFound(op.Name(), "form", op.SourceViewSetID)
	}
	target, ok := s.ViewSets[op.TargetViewSetID]
	if !ok {
		return notFound(op.Name(), "form", op.TargetViewSetID)
	}
	if indexOf(source.Views, op.ViewID) < 0 {
		return notListed(op.Name(), "section", op.ViewID, "form "+op.SourceViewSetID)
	}
	if op.SourceViewSetID == op.TargetViewSetID {
		return nil
	}

	source.Views = without(source.Views, op.ViewID)
	target.Views = append(target.Views, op.ViewID)
	for _, name := range section.Fields {
		removeFromSummary(source, name)
	}
	return nil
}

// SectionMoved swaps a section with its neighbour in the form's views.
type SectionMoved struct {
	ViewSetID string    `json:"viewSetId"`
	ViewID    string    `json:"viewId"`
	Direction Direction `json:"direction"`
}

func (SectionMoved) Name() string { return "sectionMoved" }

func (op SectionMoved) apply(_ *Engine, s *notebook.UISpec) error {
	if !op.Direction.valid(Left, Right) {
		return invalid(op.Name(), "direction must be left or right, got %q", op.Direction)
	}
	form, ok := s.ViewSets[op.ViewSetID]
	if !ok {
		return notFound(op.Name(), "form", op.ViewSetID)
	}
	move(form.Views, op.ViewID, op.Direction)
	return nil
}

// SectionConditionChanged sets or clears a section's visibility condition.
type SectionConditionChanged struct {
	ViewID    string              `json:"viewId"`
	Condition *notebook.Condition `json:"condition"`
}

func (SectionConditionChanged) Name() string { return "sectionConditionChanged" }

func (op SectionConditionChanged) apply(_ *Engine, s *notebook.UISpec) error {
	section, ok := s.FViews[op.ViewID]
	if !ok {
		return notFound(op.Name(), "section", op.ViewID)
	}
	section.Condition = op.Condition.Clone()
	return nil
}

// SectionDescriptionUpdated sets the description shown above a section.
type SectionDescriptionUpdated struct {
	ViewID      string `json:"viewId"`
	Description string `json:"description"`
}

func (SectionDescriptionUpdated) Name() string { return "sectionDescriptionUpdated" }

func (op SectionDescriptionUpdated) apply(_ *Engine, s *notebook.UISpec) error {
	section, ok := s.FViews[op.ViewID]
	if !ok {
		return notFound(op.Name(), "section", op.ViewID)
	}
	section.Description = op.Description
	return nil
}
