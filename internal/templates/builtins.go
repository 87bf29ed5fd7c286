package templates

import "github.com/fieldmark/designer/internal/uispec"

// The empty notebook has form FORM1 holding section FORM1SECTION1.
const (
	firstForm    = "FORM1"
	firstSection = "FORM1SECTION1"
)

func builtins() []*Template {
	return []*Template{
		{
			Name:        "blank",
			Description: "One form with one empty section",
		},
		{
			Name:        "site-survey",
			Description: "Site records with an id, name, location, photos and notes",
			Steps: []uispec.Operation{
				uispec.ViewSetRenamed{ViewSetID: firstForm, Label: "Site"},
				uispec.SectionRenamed{ViewID: firstSection, Label: "Site details"},
				uispec.FieldAdded{FieldName: "Site ID", FieldType: "TemplatedStringField", ViewID: firstSection, ViewSetID: firstForm},
				uispec.FieldAdded{FieldName: "Site name", FieldType: "TextField", ViewID: firstSection, ViewSetID: firstForm},
				uispec.FieldAdded{FieldName: "Location", FieldType: "TakePoint", ViewID: firstSection, ViewSetID: firstForm},
				uispec.FieldAdded{FieldName: "Photos", FieldType: "TakePhoto", ViewID: firstSection, ViewSetID: firstForm},
				uispec.SectionAdded{ViewSetID: firstForm, SectionLabel: "Notes"},
				uispec.FieldAdded{FieldName: "Notes", FieldType: "MultipleTextField", ViewID: firstForm + "-Notes", ViewSetID: firstForm},
				uispec.ViewSetHridUpdated{ViewSetID: firstForm, HRIDField: "hrid" + firstSection},
				uispec.ViewSetLayoutUpdated{ViewSetID: firstForm, Layout: uispec.LayoutTabs},
			},
		},
		{
			Name:        "observation-log",
			Description: "Timed observations with counts, plus a specimen form",
			Steps: []uispec.Operation{
				uispec.ViewSetRenamed{ViewSetID: firstForm, Label: "Observation"},
				uispec.SectionRenamed{ViewID: firstSection, Label: "Details"},
				uispec.FieldAdded{FieldName: "Observation ID", FieldType: "TemplatedStringField", ViewID: firstSection, ViewSetID: firstForm},
				uispec.FieldAdded{FieldName: "Observed at", FieldType: "DateTimeNow", ViewID: firstSection, ViewSetID: firstForm},
				uispec.FieldAdded{FieldName: "Count", FieldType: "Number", ViewID: firstSection, ViewSetID: firstForm},
				uispec.ViewSetHridUpdated{ViewSetID: firstForm, HRIDField: "hrid" + firstSection},
				uispec.ViewSetSummaryFieldsUpdated{ViewSetID: firstForm, Fields: []string{"Observed-at", "Count"}},
				uispec.ViewSetAdded{FormName: "Specimen"},
				uispec.SectionAdded{ViewSetID: "Specimen", SectionLabel: "Specimen"},
				uispec.FieldAdded{FieldName: "Specimen label", FieldType: "TextField", ViewID: "Specimen-Specimen", ViewSetID: "Specimen"},
				uispec.FieldAdded{FieldName: "Photo", FieldType: "TakePhoto", ViewID: "Specimen-Specimen", ViewSetID: "Specimen"},
			},
		},
	}
}
