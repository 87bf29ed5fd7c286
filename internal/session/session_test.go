package session

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fieldmark/designer/internal/notebook"
	"github.com/fieldmark/designer/internal/notebook/notebooktest"
	"github.com/fieldmark/designer/internal/uispec"
)

type recorder struct {
	mu      sync.Mutex
	changes []Change
}

func (r *recorder) listen(c Change) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, c)
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.changes))
	for i, c := range r.changes {
		out[i] = c.Type + ":" + c.Operation
	}
	return out
}

func newManager(t *testing.T, rec *recorder) *Manager {
	t.Helper()
	opts := Options{HistoryDepth: 5, Logger: zap.NewNop()}
	if rec != nil {
		opts.Listener = rec.listen
	}
	return NewManager(uispec.NewEngine(nil), opts)
}

func TestApplyUndoRedo(t *testing.T) {
	rec := &recorder{}
	s := newManager(t, rec).Create(notebooktest.Notebook())

	nb, err := s.Apply(uispec.SectionAdded{ViewSetID: "Survey", SectionLabel: "Photos"})
	require.NoError(t, err)
	assert.Contains(t, nb.UISpec.FViews, "Survey-Photos")

	nb, err = s.Undo()
	require.NoError(t, err)
	assert.NotContains(t, nb.UISpec.FViews, "Survey-Photos")
	assert.Equal(t, notebooktest.Spec(), nb.UISpec)

	nb, err = s.Redo()
	require.NoError(t, err)
	assert.Contains(t, nb.UISpec.FViews, "Survey-Photos")

	assert.Equal(t, []string{"operation:sectionAdded", "undo:sectionAdded", "redo:sectionAdded"}, rec.types())
}

func TestApplyFailureKeepsState(t *testing.T) {
	rec := &recorder{}
	s := newManager(t, rec).Create(notebooktest.Notebook())

	_, err := s.Apply(uispec.FieldDeleted{FieldName: "Ghost", ViewID: "Survey-Site"})
	assert.ErrorIs(t, err, uispec.ErrNotFound)

	names, canRedo := s.History()
	assert.Empty(t, names)
	assert.False(t, canRedo)
	assert.Equal(t, notebooktest.Spec(), s.Notebook().UISpec)
	assert.Empty(t, rec.types())
}

func TestLoadedResetsHistory(t *testing.T) {
	s := newManager(t, nil).Create(notebooktest.Notebook())
	_, err := s.Apply(uispec.ViewSetAdded{FormName: "Extra"})
	require.NoError(t, err)

	_, err = s.Apply(uispec.Loaded{Spec: notebook.NewUISpec()})
	require.NoError(t, err)

	names, _ := s.History()
	assert.Empty(t, names)
	_, err = s.Undo()
	assert.Error(t, err)
}

func TestHistoryDepth(t *testing.T) {
	s := newManager(t, nil).Create(notebooktest.Notebook())
	for _, label := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		_, err := s.Apply(uispec.SectionAdded{ViewSetID: "Survey", SectionLabel: label})
		require.NoError(t, err)
	}

	names, _ := s.History()
	assert.Len(t, names, 5)

	for i := 0; i < 5; i++ {
		_, err := s.Undo()
		require.NoError(t, err)
	}
	nb := s.Notebook()
	assert.Contains(t, nb.UISpec.FViews, "Survey-B")
	assert.NotContains(t, nb.UISpec.FViews, "Survey-C")
}

func TestSetMetadata(t *testing.T) {
	s := newManager(t, nil).Create(notebooktest.Notebook())

	nb, err := s.SetMetadata("pre_description", "A survey")
	require.NoError(t, err)
	assert.Equal(t, "A survey", nb.Metadata["pre_description"])

	_, err = s.SetMetadata("accesses", []any{"x"})
	assert.ErrorIs(t, err, notebook.ErrProtectedProperty)

	nb = s.UpdateRoles([]string{"team", "team"})
	assert.Equal(t, []string{"admin", "team"}, nb.Metadata.Roles())
}

func TestExport(t *testing.T) {
	s := newManager(t, nil).Create(notebooktest.Notebook())

	data, name, err := s.Export()
	require.NoError(t, err)
	assert.Equal(t, "Test-Survey.json", name)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "metadata")
	assert.Contains(t, doc, "ui-specification")
}

func TestNotebookIsACopy(t *testing.T) {
	s := newManager(t, nil).Create(notebooktest.Notebook())

	nb := s.Notebook()
	nb.UISpec.Fields["Site-Name"].ComponentParameters.Set("label", "Changed")

	assert.Equal(t, "Site Name", s.Notebook().UISpec.Fields["Site-Name"].ComponentParameters.String("label"))
}

func TestManager(t *testing.T) {
	m := newManager(t, nil)

	first := m.Create(nil)
	second := m.Create(notebooktest.Notebook())
	assert.Equal(t, "Untitled Notebook", first.Notebook().Name())
	assert.Equal(t, 2, m.Len())
	assert.ElementsMatch(t, []string{first.ID, second.ID}, m.List())

	got, err := m.Get(second.ID)
	require.NoError(t, err)
	assert.Same(t, second, got)

	require.NoError(t, m.Delete(first.ID))
	_, err = m.Get(first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.Delete(first.ID), ErrNotFound)
}

func TestConcurrentApply(t *testing.T) {
	s := newManager(t, nil).Create(notebooktest.Notebook())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Apply(uispec.FieldAdded{FieldName: "Note", FieldType: "TextField", ViewID: "Survey-Site", ViewSetID: "Survey"})
			_ = s.Notebook()
		}()
	}
	wg.Wait()

	nb := s.Notebook()
	assert.Len(t, nb.UISpec.FViews["Survey-Site"].Fields, 22)
	assert.Empty(t, nb.UISpec.CheckIntegrity())
}
