package templates

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldmark/designer/internal/schema"
	"github.com/fieldmark/designer/internal/uispec"
)

func TestBuiltinsBuildValidNotebooks(t *testing.T) {
	reg := DefaultRegistry()
	require.Equal(t, []string{"blank", "observation-log", "site-survey"}, reg.Names())

	for _, tmpl := range reg.List() {
		t.Run(tmpl.Name, func(t *testing.T) {
			nb, err := tmpl.Build(nil, "Field Season")
			require.NoError(t, err)
			assert.Equal(t, "Field Season", nb.Name())
			assert.Empty(t, nb.UISpec.CheckIntegrity())

			data, err := json.Marshal(nb)
			require.NoError(t, err)
			assert.NoError(t, schema.ValidateBytes(data))
		})
	}
}

func TestSiteSurvey(t *testing.T) {
	tmpl, err := DefaultRegistry().Get("site-survey")
	require.NoError(t, err)

	nb, err := tmpl.Build(uispec.NewEngine(nil), "Sites")
	require.NoError(t, err)

	form := nb.UISpec.ViewSets["FORM1"]
	assert.Equal(t, "Site", form.Label)
	assert.Equal(t, []string{"FORM1SECTION1", "FORM1-Notes"}, form.Views)
	assert.Equal(t, "hridFORM1SECTION1", form.HRIDField)
	assert.Equal(t, uispec.LayoutTabs, form.Layout)
	assert.Equal(t,
		[]string{"hridFORM1SECTION1", "Site-name", "Location", "Photos"},
		nb.UISpec.FViews["FORM1SECTION1"].Fields)
}

func TestBuildReportsFailingStep(t *testing.T) {
	tmpl := &Template{
		Name:        "broken",
		Description: "adds a field to a missing section",
		Steps:       []uispec.Operation{uispec.FieldAdded{FieldName: "X", FieldType: "TextField", ViewID: "nowhere"}},
	}
	_, err := tmpl.Build(nil, "Broken")
	assert.ErrorIs(t, err, uispec.ErrNotFound)
	assert.ErrorContains(t, err, "template broken")
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	assert.Error(t, reg.Register(&Template{Description: "no name"}))
	assert.Error(t, reg.Register(&Template{Name: "x"}))

	require.NoError(t, reg.Register(&Template{Name: "x", Description: "d"}))
	assert.Error(t, reg.Register(&Template{Name: "x", Description: "again"}))
	assert.True(t, reg.Exists("x"))
	assert.False(t, reg.Exists("y"))

	_, err := reg.Get("y")
	assert.Error(t, err)
}
