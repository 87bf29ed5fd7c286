// Package templates provides starter notebooks for "designer new".
package templates

import (
	"fmt"

	"github.com/fieldmark/designer/internal/notebook"
	"github.com/fieldmark/designer/internal/uispec"
)

// Template is a named starter notebook, described as the operations that
// turn an empty notebook into it
type Template struct {
	Name        string
	Description string
	Steps       []uispec.Operation
}

// Validate checks the template definition
func (t *Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("template name is required")
	}
	if t.Description == "" {
		return fmt.Errorf("template %s: description is required", t.Name)
	}
	return nil
}

// Build creates a notebook called name from the template. A nil engine uses
// the built in field types.
func (t *Template) Build(engine *uispec.Engine, name string) (*notebook.Notebook, error) {
	if engine == nil {
		engine = uispec.NewEngine(nil)
	}
	nb := notebook.New(name)
	spec, err := engine.ApplyAll(nb.UISpec, t.Steps...)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", t.Name, err)
	}
	nb.UISpec = spec
	return nb, nil
}
