package notebook

import (
	"errors"
	"fmt"
	"sort"
)

// Metadata is the open-ended property map describing a notebook.
type Metadata map[string]any

// ErrProtectedProperty is returned when a generic update targets a key that
// has a dedicated operation.
var ErrProtectedProperty = errors.New("protected metadata property")

// ErrPropertyExists is returned when adding a key that is already present.
var ErrPropertyExists = errors.New("metadata property already exists")

// protectedProperties cannot be changed through SetProperty.
var protectedProperties = map[string]bool{
	"accesses":         true,
	"access":           true,
	"sections":         true,
	"forms":            true,
	"filenames":        true,
	"project_status":   true,
	"ispublic":         true,
	"isrequest":        true,
	"schema_version":   true,
	"notebook_version": true,
}

// knownProperties are the keys the designer edits through dedicated controls.
var knownProperties = map[string]bool{
	"name":             true,
	"pre_description":  true,
	"behaviours":       true,
	"meta":             true,
	"project_lead":     true,
	"lead_institution": true,
	"showQRCodeButton": true,
}

// IsProtected reports whether key can only be changed by a dedicated operation.
func IsProtected(key string) bool {
	return protectedProperties[key]
}

// SetProperty returns a copy of m with key set to value.
func (m Metadata) SetProperty(key string, value any) (Metadata, error) {
	if key == "" {
		return nil, fmt.Errorf("metadata property name cannot be empty")
	}
	if IsProtected(key) {
		return nil, fmt.Errorf("cannot set %q: %w", key, ErrProtectedProperty)
	}
	out := m.Clone()
	if out == nil {
		out = Metadata{}
	}
	out[key] = value
	return out, nil
}

// AddProperty is SetProperty for a key that must not exist yet.
func (m Metadata) AddProperty(key string, value any) (Metadata, error) {
	if _, exists := m[key]; exists {
		return nil, fmt.Errorf("field '%s' already exists: %w", key, ErrPropertyExists)
	}
	return m.SetProperty(key, value)
}

// UpdateRoles returns a copy of m with accesses replaced by roles.
// Duplicates are dropped and the admin role is always present.
func (m Metadata) UpdateRoles(roles []string) Metadata {
	seen := map[string]bool{"admin": true}
	accesses := []any{"admin"}
	for _, role := range roles {
		if role == "" || seen[role] {
			continue
		}
		seen[role] = true
		accesses = append(accesses, role)
	}
	out := m.Clone()
	if out == nil {
		out = Metadata{}
	}
	out["accesses"] = accesses
	return out
}

// Roles returns the accesses list.
func (m Metadata) Roles() []string {
	var roles []string
	switch v := m["accesses"].(type) {
	case []string:
		roles = append(roles, v...)
	case []any:
		for _, r := range v {
			if s, ok := r.(string); ok {
				roles = append(roles, s)
			}
		}
	}
	return roles
}

// ExtraProperties returns the user-defined keys, sorted.
func (m Metadata) ExtraProperties() []string {
	var keys []string
	for k := range m {
		if !knownProperties[k] && !protectedProperties[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
