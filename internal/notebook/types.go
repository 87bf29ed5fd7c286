// Package notebook defines the notebook document model: metadata plus a UI
// specification made of fields, sections (fviews) and forms (viewsets).
package notebook

import (
	"encoding/json"
	"fmt"
	"sort"

	utilstrings "github.com/fieldmark/designer/internal/util/strings"
)

// Notebook is the top level document exchanged as a JSON file.
type Notebook struct {
	Metadata Metadata `json:"metadata"`
	UISpec   *UISpec  `json:"ui-specification"`
}

// UISpec holds the three related collections and the list of forms shown to users.
type UISpec struct {
	Fields       map[string]*Field   `json:"fields"`
	FViews       map[string]*Section `json:"fviews"`
	ViewSets     map[string]*Form    `json:"viewsets"`
	VisibleTypes []string            `json:"visible_types"`
}

// Section is an ordered group of fields inside a form.
type Section struct {
	Label       string     `json:"label"`
	Fields      []string   `json:"fields"`
	UIDesign    string     `json:"uidesign,omitempty"`
	Condition   *Condition `json:"condition,omitempty"`
	Description string     `json:"description,omitempty"`
	Extra       Extra      `json:"-"`
}

// Form is an ordered list of sections.
type Form struct {
	Label                  string   `json:"label"`
	Views                  []string `json:"views"`
	SummaryFields          []string `json:"summary_fields,omitempty"`
	Layout                 string   `json:"layout,omitempty"`
	HRIDField              string   `json:"hridField,omitempty"`
	PublishButtonBehaviour string   `json:"publishButtonBehaviour,omitempty"`
	Extra                  Extra    `json:"-"`
}

// ValidationSchema is the tuple list consumed by the client side validator,
// e.g. [["yup.string"], ["yup.min", 10, "Must be 10 or more"]].
type ValidationSchema [][]any

// LabelInclude is a toggle with a display label.
type LabelInclude struct {
	Include bool   `json:"include"`
	Label   string `json:"label"`
}

// Meta holds the annotation and uncertainty toggles of a field.
type Meta struct {
	Annotation  LabelInclude `json:"annotation"`
	Uncertainty LabelInclude `json:"uncertainty"`
}

// DefaultMeta is attached to newly added fields.
func DefaultMeta() *Meta {
	return &Meta{
		Annotation:  LabelInclude{Include: true, Label: "annotation"},
		Uncertainty: LabelInclude{Include: true, Label: "uncertainty"},
	}
}

// Field is a single data entry component. The shape of ComponentParameters
// depends on ComponentName.
type Field struct {
	ComponentNamespace  string           `json:"component-namespace"`
	ComponentName       string           `json:"component-name"`
	TypeReturned        string           `json:"type-returned"`
	ComponentParameters Params           `json:"component-parameters"`
	ValidationSchema    ValidationSchema `json:"validationSchema,omitempty"`
	InitialValue        any              `json:"initialValue,omitempty"`
	Access              []string         `json:"access,omitempty"`
	Condition           *Condition       `json:"condition,omitempty"`
	Persistent          *bool            `json:"persistent,omitempty"`
	DisplayParent       *bool            `json:"displayParent,omitempty"`
	Meta                *Meta            `json:"meta,omitempty"`
	Extra               Extra            `json:"-"`

	nullInitialValue bool
}

// Name returns the name recorded in the field's parameters.
func (f *Field) Name() string {
	return f.ComponentParameters.String("name")
}

// Label resolves the label shown for a field in condition text:
// InputLabelProps.label first, then the field's name parameter.
func (f *Field) Label() string {
	if label := f.ComponentParameters.Map("InputLabelProps").String("label"); label != "" {
		return label
	}
	return f.ComponentParameters.String("name")
}

// DisplayLabel prefers the canonical label parameter and falls back to Label.
func (f *Field) DisplayLabel() string {
	if label := f.ComponentParameters.String("label"); label != "" {
		return label
	}
	return f.Label()
}

// NewUISpec returns an empty UI specification with all collections allocated.
func NewUISpec() *UISpec {
	return &UISpec{
		Fields:       make(map[string]*Field),
		FViews:       make(map[string]*Section),
		ViewSets:     make(map[string]*Form),
		VisibleTypes: []string{},
	}
}

// SectionOf returns the id of the first section listing fieldName.
func (s *UISpec) SectionOf(fieldName string) (string, bool) {
	for _, id := range sortedKeys(s.FViews) {
		for _, name := range s.FViews[id].Fields {
			if name == fieldName {
				return id, true
			}
		}
	}
	return "", false
}

// FormOf returns the id of the first form listing sectionID.
func (s *UISpec) FormOf(sectionID string) (string, bool) {
	for _, id := range sortedKeys(s.ViewSets) {
		for _, view := range s.ViewSets[id].Views {
			if view == sectionID {
				return id, true
			}
		}
	}
	return "", false
}

// FormFields lists the field names of every section in a form, in order.
func (s *UISpec) FormFields(formID string) []string {
	form, ok := s.ViewSets[formID]
	if !ok {
		return nil
	}
	var names []string
	for _, view := range form.Views {
		if section, ok := s.FViews[view]; ok {
			names = append(names, section.Fields...)
		}
	}
	return names
}

// FieldNames returns all field keys sorted.
func (s *UISpec) FieldNames() []string {
	return sortedKeys(s.Fields)
}

// normalize replaces nil collections so the document always serialises with
// arrays and objects where the schema requires them.
func (s *UISpec) normalize() {
	if s.Fields == nil {
		s.Fields = make(map[string]*Field)
	}
	if s.FViews == nil {
		s.FViews = make(map[string]*Section)
	}
	if s.ViewSets == nil {
		s.ViewSets = make(map[string]*Form)
	}
	if s.VisibleTypes == nil {
		s.VisibleTypes = []string{}
	}
	for _, section := range s.FViews {
		if section != nil && section.Fields == nil {
			section.Fields = []string{}
		}
	}
	for _, form := range s.ViewSets {
		if form != nil && form.Views == nil {
			form.Views = []string{}
		}
	}
}

// MarshalJSON normalises nil collections before encoding.
func (s *UISpec) MarshalJSON() ([]byte, error) {
	type plain UISpec
	c := s.Clone()
	c.normalize()
	return json.Marshal((*plain)(c))
}

// Name returns metadata.name.
func (n *Notebook) Name() string {
	name, _ := n.Metadata["name"].(string)
	return name
}

// ExportFileName is the download name of the notebook: <slugified-name>.json.
func (n *Notebook) ExportFileName() string {
	slug := utilstrings.Slugify(n.Name())
	if slug == "" {
		slug = "notebook"
	}
	return fmt.Sprintf("%s.json", slug)
}

// Decode parses a notebook without validating or migrating it.
func Decode(data []byte) (*Notebook, error) {
	var nb Notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, fmt.Errorf("failed to decode notebook: %w", err)
	}
	if nb.Metadata == nil {
		nb.Metadata = Metadata{}
	}
	if nb.UISpec == nil {
		nb.UISpec = NewUISpec()
	}
	nb.UISpec.normalize()
	return &nb, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
