package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldmark/designer/internal/notebook"
	"github.com/fieldmark/designer/internal/notebook/notebooktest"
)

func TestNewRegistryCatalog(t *testing.T) {
	r := NewRegistry()

	names := r.Names()
	assert.Len(t, names, 24)
	assert.IsIncreasing(t, names)
	for _, name := range []string{"TextField", "Select", "RelatedRecordSelector", "TemplatedStringField", "BasicAutoIncrementer", "TakePhoto"} {
		assert.True(t, r.Has(name), name)
	}
	assert.False(t, r.Has("Hologram"))
}

func TestGetReturnsCopy(t *testing.T) {
	r := NewRegistry()

	first, ok := r.Get("TextField")
	require.True(t, ok)
	first.Prototype.ComponentParameters.Map("InputLabelProps").Set("label", "Changed")
	first.Prototype.ValidationSchema[0][0] = "yup.number"

	second, _ := r.Get("TextField")
	assert.Equal(t, "Text Field", second.Prototype.Label())
	assert.Equal(t, "yup.string", second.Prototype.ValidationSchema[0][0])
}

func TestRegister(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(Type{Name: "Barcode", Prototype: notebooktest.TextField("barcode", "Barcode")}))
	assert.True(t, r.Has("Barcode"))
	assert.Len(t, r.Names(), 25)

	assert.Error(t, r.Register(Type{Name: ""}))
	assert.Error(t, r.Register(Type{Name: "Nothing"}))
}

func TestInstantiateHooks(t *testing.T) {
	r := NewRegistry()
	spec := notebooktest.Spec()
	at := Placement{Spec: spec, ViewID: "Sample-Main", ViewSetID: "Survey"}

	t.Run("related record selector points at the form", func(t *testing.T) {
		f, name, err := r.Instantiate("RelatedRecordSelector", at)
		require.NoError(t, err)
		assert.Empty(t, name)
		assert.Equal(t, "Survey", f.ComponentParameters.String("related_type"))
		assert.Equal(t, "Survey", f.ComponentParameters.String("related_type_label"))
	})

	t.Run("auto incrementer records its section", func(t *testing.T) {
		f, _, err := r.Instantiate("BasicAutoIncrementer", at)
		require.NoError(t, err)
		assert.Equal(t, "Sample-Main", f.ComponentParameters.String("form_id"))
	})

	t.Run("first templated string becomes the hrid field", func(t *testing.T) {
		_, name, err := r.Instantiate("TemplatedStringField", at)
		require.NoError(t, err)
		assert.Equal(t, "hridSample-Main", name)
	})

	t.Run("second templated string keeps its label name", func(t *testing.T) {
		spec.Fields["hridSample-Main"] = &notebook.Field{ComponentName: "TemplatedStringField", ComponentParameters: notebook.Params{}}
		spec.FViews["Sample-Main"].Fields = append(spec.FViews["Sample-Main"].Fields, "hridSample-Main")

		_, name, err := r.Instantiate("TemplatedStringField", at)
		require.NoError(t, err)
		assert.Empty(t, name)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, _, err := r.Instantiate("Hologram", at)
		assert.ErrorContains(t, err, "unknown field type")
	})
}
