package uispec

import (
	"github.com/fieldmark/designer/internal/notebook"
	utilstrings "github.com/fieldmark/designer/internal/util/strings"
)

// Publish button behaviours of a form.
const (
	PublishAlways   = "always"
	PublishVisited  = "visited"
	PublishNoErrors = "noErrors"
)

// Form layouts.
const (
	LayoutInline = "inline"
	LayoutTabs   = "tabs"
)

// ViewSetAdded creates an empty form and makes it visible.
type ViewSetAdded struct {
	FormName string `json:"formName"`
}

func (ViewSetAdded) Name() string { return "viewSetAdded" }

func (op ViewSetAdded) apply(_ *Engine, s *notebook.UISpec) error {
	id := utilstrings.Slugify(op.FormName)
	if id == "" {
		return invalid(op.Name(), "form name %q has no usable characters", op.FormName)
	}
	if _, exists := s.ViewSets[id]; exists {
		return &ConflictError{Kind: "form", ID: id, Scope: "notebook"}
	}
	s.ViewSets[id] = &notebook.Form{
		Label:                  op.FormName,
		Views:                  []string{},
		PublishButtonBehaviour: PublishAlways,
	}
	s.VisibleTypes = append(s.VisibleTypes, id)
	return nil
}

// ViewSetDeleted removes a form with all its sections and fields. It fails
// without changes while fields in other forms link to the form.
type ViewSetDeleted struct {
	ViewSetID string `json:"viewSetId"`
}

func (ViewSetDeleted) Name() string { return "viewSetDeleted" }

func (op ViewSetDeleted) apply(_ *Engine, s *notebook.UISpec) error {
	form, ok := s.ViewSets[op.ViewSetID]
	if !ok {
		return nil
	}
	if refs := s.RelatedReferences(op.ViewSetID); len(refs) > 0 {
		return &IntegrityError{Kind: "form", ID: op.ViewSetID, References: refs}
	}

	for _, view := range form.Views {
		section, ok := s.FViews[view]
		if !ok {
			continue
		}
		for _, name := range section.Fields {
			delete(s.Fields, name)
		}
		delete(s.FViews, view)
	}
	delete(s.ViewSets, op.ViewSetID)
	s.VisibleTypes = without(s.VisibleTypes, op.ViewSetID)
	return nil
}

// ViewSetMoved swaps a form with its neighbour in visible_types.
type ViewSetMoved struct {
	ViewSetID string    `json:"viewSetId"`
	Direction Direction `json:"direction"`
}

func (ViewSetMoved) Name() string { return "viewSetMoved" }

func (op ViewSetMoved) apply(_ *Engine, s *notebook.UISpec) error {
	if !op.Direction.valid(Left, Right) {
		return invalid(op.Name(), "direction must be left or right, got %q", op.Direction)
	}
	move(s.VisibleTypes, op.ViewSetID, op.Direction)
	return nil
}

// ViewSetRenamed changes the label of a form. The id is kept.
type ViewSetRenamed struct {
	ViewSetID string `json:"viewSetId"`
	Label     string `json:"label"`
}

func (ViewSetRenamed) Name() string { return "viewSetRenamed" }

func (op ViewSetRenamed) apply(_ *Engine, s *notebook.UISpec) error {
	form, ok := s.ViewSets[op.ViewSetID]
	if !ok {
		return notFound(op.Name(), "form", op.ViewSetID)
	}
	form.Label = op.Label
	return nil
}

// ViewSetSummaryFieldsUpdated replaces the fields shown in record lists.
type ViewSetSummaryFieldsUpdated struct {
	ViewSetID string   `json:"viewSetId"`
	Fields    []string `json:"fields"`
}

func (ViewSetSummaryFieldsUpdated) Name() string { return "viewSetSummaryFieldsUpdated" }

func (op ViewSetSummaryFieldsUpdated) apply(_ *Engine, s *notebook.UISpec) error {
	form, ok := s.ViewSets[op.ViewSetID]
	if !ok {
		return notFound(op.Name(), "form", op.ViewSetID)
	}
	for _, name := range op.Fields {
		if _, ok := s.Fields[name]; !ok {
			return notFound(op.Name(), "field", name)
		}
	}
	form.SummaryFields = append([]string{}, op.Fields...)
	return nil
}

// ViewSetLayoutUpdated sets how a form's sections are laid out. An empty
// layout clears it.
type ViewSetLayoutUpdated struct {
	ViewSetID string `json:"viewSetId"`
	Layout    string `json:"layout,omitempty"`
}

func (ViewSetLayoutUpdated) Name() string { return "viewSetLayoutUpdated" }

func (op ViewSetLayoutUpdated) apply(_ *Engine, s *notebook.UISpec) error {
	form, ok := s.ViewSets[op.ViewSetID]
	if !ok {
		return notFound(op.Name(), "form", op.ViewSetID)
	}
	switch op.Layout {
	case "", LayoutInline, LayoutTabs:
	default:
		return invalid(op.Name(), "unknown layout %q", op.Layout)
	}
	form.Layout = op.Layout
	return nil
}

// ViewSetHridUpdated selects the field used as a record's human readable id.
type ViewSetHridUpdated struct {
	ViewSetID string `json:"viewSetId"`
	HRIDField string `json:"hridField,omitempty"`
}

func (ViewSetHridUpdated) Name() string { return "viewSetHridUpdated" }

func (op ViewSetHridUpdated) apply(_ *Engine, s *notebook.UISpec) error {
	form, ok := s.ViewSets[op.ViewSetID]
	if !ok {
		return notFound(op.Name(), "form", op.ViewSetID)
	}
	if op.HRIDField != "" {
		if _, ok := s.Fields[op.HRIDField]; !ok {
			return notFound(op.Name(), "field", op.HRIDField)
		}
	}
	form.HRIDField = op.HRIDField
	return nil
}

// ViewSetPublishButtonBehaviourUpdated sets when a form's publish button is
// shown.
type ViewSetPublishButtonBehaviourUpdated struct {
	ViewSetID              string `json:"viewSetId"`
	PublishButtonBehaviour string `json:"publishButtonBehaviour"`
}

func (ViewSetPublishButtonBehaviourUpdated) Name() string {
	return "viewSetPublishButtonBehaviourUpdated"
}

func (op ViewSetPublishButtonBehaviourUpdated) apply(_ *Engine, s *notebook.UISpec) error {
	form, ok := s.ViewSets[op.ViewSetID]
	if !ok {
		return notFound(op.Name(), "form", op.ViewSetID)
	}
	switch op.PublishButtonBehaviour {
	case PublishAlways, PublishVisited, PublishNoErrors:
	default:
		return invalid(op.Name(), "unknown publish button behaviour %q", op.PublishButtonBehaviour)
	}
	form.PublishButtonBehaviour = op.PublishButtonBehaviour
	return nil
}

// FormVisibilityUpdated shows or hides a form in the new record menu. A form
// shown again is appended to the end of visible_types; InitialIndex is
// accepted but not used to restore its position.
type FormVisibilityUpdated struct {
	ViewSetID    string `json:"viewSetId"`
	Ticked       bool   `json:"ticked"`
	InitialIndex int    `json:"initialIndex"`
}

func (FormVisibilityUpdated) Name() string { return "formVisibilityUpdated" }

func (op FormVisibilityUpdated) apply(_ *Engine, s *notebook.UISpec) error {
	if !op.Ticked {
		s.VisibleTypes = without(s.VisibleTypes, op.ViewSetID)
		return nil
	}
	if _, ok := s.ViewSets[op.ViewSetID]; !ok {
		return notFound(op.Name(), "form", op.ViewSetID)
	}
	if indexOf(s.VisibleTypes, op.ViewSetID) < 0 {
		s.VisibleTypes = append(s.VisibleTypes, op.ViewSetID)
	}
	return nil
}
