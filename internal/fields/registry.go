// Package fields holds the catalog of field types a designer can add to a
// section. A Registry is built explicitly and passed to whatever needs it.
package fields

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/fieldmark/designer/internal/notebook"
)

// Placement describes where a new field is being inserted.
type Placement struct {
	Spec      *notebook.UISpec
	ViewID    string
	ViewSetID string
}

// Hook applies type specific defaults to a freshly copied prototype. A non
// empty return value replaces the identifier derived from the field's label.
type Hook func(f *notebook.Field, at Placement) string

// Type is a named field prototype.
type Type struct {
	Name      string
	Prototype *notebook.Field
	OnAdd     Hook
}

// Registry maps type names to prototypes.
type Registry struct {
	mu    sync.RWMutex
	types map[string]Type
}

// NewRegistry returns a registry loaded with the built in catalog.
func NewRegistry() *Registry {
	r := &Registry{types: make(map[string]Type)}
	for _, t := range builtins() {
		r.types[t.Name] = t
	}
	return r
}

// Register adds or replaces a type.
func (r *Registry) Register(t Type) error {
	if t.Name == "" {
		return fmt.Errorf("field type name is required")
	}
	if t.Prototype == nil {
		return fmt.Errorf("field type %s has no prototype", t.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	t.Prototype = t.Prototype.Clone()
	r.types[t.Name] = t
	return nil
}

// Get returns a deep copy of the named type, so callers may modify the
// prototype freely.
func (r *Registry) Get(name string) (Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	if !ok {
		return Type{}, false
	}
	t.Prototype = t.Prototype.Clone()
	return t, true
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.types[name]
	return ok
}

// Names returns the registered type names sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Instantiate copies the named prototype and runs its hook.
func (r *Registry) Instantiate(name string, at Placement) (*notebook.Field, string, error) {
	t, ok := r.Get(name)
	if !ok {
		return nil, "", fmt.Errorf("unknown field type %q", name)
	}
	if t.Prototype.ComponentParameters == nil {
		t.Prototype.ComponentParameters = notebook.Params{}
	}
	override := ""
	if t.OnAdd != nil {
		override = t.OnAdd(t.Prototype, at)
	}
	return t.Prototype, override, nil
}

func relateToForm(f *notebook.Field, at Placement) string {
	f.ComponentParameters.Set("related_type", at.ViewSetID)
	if at.Spec != nil {
		if form, ok := at.Spec.ViewSets[at.ViewSetID]; ok {
			f.ComponentParameters.Set("related_type_label", form.Label)
		}
	}
	return ""
}

func setFormID(f *notebook.Field, at Placement) string {
	f.ComponentParameters.Set("form_id", at.ViewID)
	return ""
}

// claimHRID names the field hrid<viewId> unless the section already has a
// field of that shape.
func claimHRID(f *notebook.Field, at Placement) string {
	if at.Spec == nil {
		return ""
	}
	if section, ok := at.Spec.FViews[at.ViewID]; ok {
		for _, name := range section.Fields {
			if strings.HasPrefix(name, "hrid") && strings.HasSuffix(name, at.ViewID) {
				return ""
			}
		}
	}
	return "hrid" + at.ViewID
}
