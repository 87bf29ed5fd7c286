package notebook

import (
	"github.com/google/uuid"
)

const (
	defaultFormID    = "FORM1"
	defaultSectionID = "FORM1SECTION1"
)

// New returns an empty notebook with a single visible form holding one
// empty section.
func New(name string) *Notebook {
	spec := NewUISpec()
	spec.FViews[defaultSectionID] = &Section{Label: "Section 1", Fields: []string{}}
	spec.ViewSets[defaultFormID] = &Form{Label: "Form 1", Views: []string{defaultSectionID}}
	spec.VisibleTypes = []string{defaultFormID}

	return &Notebook{
		Metadata: Metadata{
			"name":             name,
			"project_id":       uuid.NewString(),
			"notebook_version": "1.0",
			"schema_version":   "1.0",
			"project_status":   "New",
			"accesses":         []any{"admin", "moderator", "team"},
			"filenames":        []any{},
			"ispublic":         false,
			"isrequest":        false,
			"pre_description":  "",
			"project_lead":     "",
			"lead_institution": "",
			"showQRCodeButton": false,
		},
		UISpec: spec,
	}
}
