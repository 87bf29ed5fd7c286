package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldmark/designer/internal/notebook"
	"github.com/fieldmark/designer/internal/notebook/notebooktest"
	"github.com/fieldmark/designer/internal/schema"
	"github.com/fieldmark/designer/internal/uispec"
	"github.com/fieldmark/designer/internal/web/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type result struct {
	stdout string
	stderr string
	err    error
}

// run executes the root command with a config file in dir
func run(t *testing.T, dir string, config string, args ...string) result {
	t.Helper()
	cfgPath := filepath.Join(dir, "designer.yml")
	content := "output:\n  dir: " + dir + "\n" + config
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))

	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config", cfgPath, "--no-color"}, args...))
	err := root.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func writeFixture(t *testing.T, dir string) string {
	t.Helper()
	data, err := json.Marshal(notebooktest.Notebook())
	require.NoError(t, err)
	return writeFile(t, dir, "survey.json", data)
}

func TestVersion(t *testing.T) {
	res := run(t, t.TempDir(), "", "version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Designer version")
	assert.Contains(t, res.stdout, Version)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	valid := writeFixture(t, dir)
	invalid := writeFile(t, dir, "broken.json", []byte(
		`{"metadata":{},"ui-specification":{"fields":{},"fviews":{},"viewsets":{},"visible_types":[]}}`))

	res := run(t, dir, "", "validate", valid)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "survey.json is a valid notebook")

	res = run(t, dir, "", "validate", valid, invalid)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "1 of 2")
	assert.Contains(t, res.stderr, "INVALID NOTEBOOK")
	assert.Contains(t, res.stderr, "/metadata")

	res = run(t, dir, "", "validate", dir)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "1 of 2")

	res = run(t, dir, "", "validate", t.TempDir())
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "no notebook files")
}

func TestValidateWatch(t *testing.T) {
	dir := t.TempDir()
	notebooks := filepath.Join(dir, "notebooks")
	require.NoError(t, os.Mkdir(notebooks, 0755))
	file := writeFixture(t, notebooks)

	cfgPath := filepath.Join(dir, "designer.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output:\n  dir: "+dir+"\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	out := &syncBuffer{}
	root := NewRootCommand()
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs([]string{"--config", cfgPath, "--no-color", "validate", "--watch", notebooks})

	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool { return strings.Contains(out.String(), "Watching") }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, os.WriteFile(file, []byte(`{"metadata":{}}`), 0644))
	assert.Eventually(t, func() bool { return strings.Contains(out.String(), "INVALID NOTEBOOK") }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("validate --watch did not stop")
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestMigrate(t *testing.T) {
	dir := t.TempDir()
	legacy := writeFile(t, dir, "legacy.json", notebooktest.LegacyJSON())

	res := run(t, dir, "", "migrate", legacy)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"ui-specification"`)

	out := filepath.Join(dir, "out", "migrated.json")
	res = run(t, dir, "", "migrate", legacy, "-o", out)
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "Wrote")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NoError(t, schema.ValidateBytes(data))
}

func TestApply(t *testing.T) {
	dir := t.TempDir()
	nbPath := writeFixture(t, dir)

	t.Run("writes the edited notebook", func(t *testing.T) {
		script := writeFile(t, dir, "ok.yml", []byte(`
- type: fieldAdded
  payload: {fieldName: Depth, fieldType: Number, viewSetId: Survey, viewId: Survey-Site}
- type: sectionRenamed
  payload: {viewId: Survey-Site, label: Location}
`))
		out := filepath.Join(dir, "edited.json")
		res := run(t, dir, "", "apply", nbPath, script, "-o", out)
		require.NoError(t, res.err)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		nb, err := notebook.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, []string{"Site-Name", "Site-Type", "Depth"}, nb.UISpec.FViews["Survey-Site"].Fields)
		assert.Equal(t, "Location", nb.UISpec.FViews["Survey-Site"].Label)
	})

	t.Run("suggests unknown operations", func(t *testing.T) {
		script := writeFile(t, dir, "typo.yml", []byte("- type: fieldAded\n  payload: {}\n"))
		res := run(t, dir, "", "apply", nbPath, script)
		require.Error(t, res.err)
		assert.ErrorIs(t, res.err, uispec.ErrNotFound)

		var reported *reportedError
		require.ErrorAs(t, res.err, &reported)
		assert.Contains(t, reported.report, "UNKNOWN OPERATION")
		assert.Contains(t, reported.report, "fieldAdded")
		assert.Empty(t, res.stdout)
	})

	t.Run("reports the failing step", func(t *testing.T) {
		script := writeFile(t, dir, "missing.yml", []byte(`
- type: sectionRenamed
  payload: {viewId: Survey-Site, label: Location}
- type: sectionRenamed
  payload: {viewId: Nowhere, label: Lost}
`))
		res := run(t, dir, "", "apply", nbPath, script)
		require.Error(t, res.err)

		var reported *reportedError
		require.ErrorAs(t, res.err, &reported)
		assert.Contains(t, reported.report, "OPERATION FAILED")
		assert.Contains(t, reported.report, "step 2 (sectionRenamed)")
		assert.Empty(t, res.stdout)
	})
}

func TestConditions(t *testing.T) {
	dir := t.TempDir()
	res := run(t, dir, "", "conditions", writeFixture(t, dir))
	require.NoError(t, res.err)

	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "KIND"))
	assert.Contains(t, lines[1], "Survey-Finds")
	assert.Contains(t, lines[2], "Find-Count")

	empty, err := json.Marshal(notebook.New("Blank"))
	require.NoError(t, err)
	res = run(t, dir, "", "conditions", writeFile(t, dir, "blank.json", empty))
	require.NoError(t, res.err)
	assert.Equal(t, "No conditions defined\n", res.stdout)
}

func TestFieldsAndOperations(t *testing.T) {
	dir := t.TempDir()

	res := run(t, dir, "", "fields")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "NAME"))
	assert.Contains(t, res.stdout, "formik-material-ui::TextField")

	res = run(t, dir, "", "operations")
	require.NoError(t, res.err)
	assert.Equal(t, uispec.OperationNames(), strings.Fields(res.stdout))
}

func TestNew(t *testing.T) {
	dir := t.TempDir()

	res := run(t, dir, "", "new", "Site Survey", "--project-lead", "R. Ortiz")
	require.NoError(t, res.err)

	path := filepath.Join(dir, "Site-Survey.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, schema.ValidateBytes(data))

	nb, err := notebook.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "Site Survey", nb.Name())
	assert.Equal(t, "R. Ortiz", nb.Metadata["project_lead"])
	assert.NotContains(t, nb.Metadata, "lead_institution")

	res = run(t, dir, "", "new", "Site Survey")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "already exists")

	res = run(t, dir, "", "new", "Site Survey", "--force", "--template", "site-survey")
	require.NoError(t, res.err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	nb, err = notebook.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "Site", nb.UISpec.ViewSets["FORM1"].Label)

	res = run(t, dir, "", "new", "Other", "--template", "site-survy")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "did you mean site-survey")
}

func TestToken(t *testing.T) {
	dir := t.TempDir()

	res := run(t, dir, "", "token", "ana")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "auth.secret")

	withSecret := "auth:\n  secret: " + testSecret + "\n  token_ttl: 1h\n"
	res = run(t, dir, withSecret, "token", "ana", "--role", "viewer", "--role", "designer")
	require.NoError(t, res.err)

	claims, err := auth.NewService(testSecret, time.Hour).Verify(strings.TrimSpace(res.stdout))
	require.NoError(t, err)
	assert.Equal(t, "ana", claims.Subject)
	assert.Equal(t, []string{"viewer", "designer"}, claims.Roles)

	res = run(t, dir, withSecret, "token", "ana", "--role", "owner")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "unknown role")
}

func TestInvalidConfig(t *testing.T) {
	res := run(t, t.TempDir(), "history:\n  depth: 0\n", "operations")
	require.Error(t, res.err)

	var reported *reportedError
	require.ErrorAs(t, res.err, &reported)
	assert.Contains(t, reported.report, "CONFIGURATION ERROR")
}
