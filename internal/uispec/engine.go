// Package uispec applies structural edits to a notebook's UI specification.
// Every edit is an Operation value; Engine.Apply runs it against a copy of
// the current state so the input is never modified.
package uispec

import (
	"github.com/fieldmark/designer/internal/fields"
	"github.com/fieldmark/designer/internal/notebook"
)

// Operation is one named edit. The set of operations is closed to this
// package.
type Operation interface {
	Name() string
	apply(e *Engine, s *notebook.UISpec) error
}

// Engine applies operations using a field-type registry for new fields.
type Engine struct {
	registry *fields.Registry
}

// NewEngine returns an engine backed by reg. A nil registry falls back to
// the built in catalog.
func NewEngine(reg *fields.Registry) *Engine {
	if reg == nil {
		reg = fields.NewRegistry()
	}
	return &Engine{registry: reg}
}

// Registry returns the engine's field-type registry.
func (e *Engine) Registry() *fields.Registry {
	return e.registry
}

// Apply runs op on a copy of state and returns the new state. On error the
// returned state is nil and state is unchanged.
func (e *Engine) Apply(state *notebook.UISpec, op Operation) (*notebook.UISpec, error) {
	next := state.Clone()
	if next == nil {
		next = notebook.NewUISpec()
	}
	if err := op.apply(e, next); err != nil {
		return nil, err
	}
	return next, nil
}

// ApplyAll applies ops in order, stopping at the first failure.
func (e *Engine) ApplyAll(state *notebook.UISpec, ops ...Operation) (*notebook.UISpec, error) {
	if len(ops) == 0 {
		return state.Clone(), nil
	}
	current := state
	for _, op := range ops {
		next, err := e.Apply(current, op)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}
