// Package session keeps notebooks open for editing. A Session owns one
// notebook, applies operations to it through the mutation engine and keeps
// its undo history.
package session

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fieldmark/designer/internal/history"
	"github.com/fieldmark/designer/internal/notebook"
	"github.com/fieldmark/designer/internal/uispec"
)

// Change kinds reported to listeners.
const (
	ChangeOperation = "operation"
	ChangeUndo      = "undo"
	ChangeRedo      = "redo"
	ChangeMetadata  = "metadata"
)

// Change describes a successful edit.
type Change struct {
	Type      string    `json:"type"`
	Session   string    `json:"session"`
	Operation string    `json:"operation,omitempty"`
	At        time.Time `json:"at"`
}

// Listener is called after every successful edit, outside the session lock.
type Listener func(Change)

// Session is a notebook being edited. It is safe for concurrent use.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.RWMutex
	nb       *notebook.Notebook
	engine   *uispec.Engine
	history  *history.Stack
	logger   *zap.Logger
	listener Listener
}

// Notebook returns a copy of the current notebook.
func (s *Session) Notebook() *notebook.Notebook {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nb.Clone()
}

// Apply runs op against the current UI specification. A failed operation
// leaves the notebook and its history as they were.
func (s *Session) Apply(op uispec.Operation) (*notebook.Notebook, error) {
	s.mu.Lock()
	before := s.nb.UISpec
	next, err := s.engine.Apply(before, op)
	if err != nil {
		s.mu.Unlock()
		s.logger.Debug("operation rejected",
			zap.String("session", s.ID),
			zap.String("operation", op.Name()),
			zap.Error(err))
		return nil, err
	}

	if _, ok := op.(uispec.Loaded); ok {
		s.history.Reset()
	} else {
		s.history.Record(history.Entry{Operation: op.Name(), Before: before, After: next})
	}
	s.nb.UISpec = next
	out := s.nb.Clone()
	s.mu.Unlock()

	s.logger.Debug("operation applied", zap.String("session", s.ID), zap.String("operation", op.Name()))
	s.notify(ChangeOperation, op.Name())
	return out, nil
}

// Undo restores the state before the most recent operation.
func (s *Session) Undo() (*notebook.Notebook, error) {
	return s.step(ChangeUndo, func() (history.Entry, *notebook.UISpec, error) {
		e, err := s.history.Undo()
		return e, e.Before, err
	})
}

// Redo reapplies the most recently undone operation.
func (s *Session) Redo() (*notebook.Notebook, error) {
	return s.step(ChangeRedo, func() (history.Entry, *notebook.UISpec, error) {
		e, err := s.history.Redo()
		return e, e.After, err
	})
}

func (s *Session) step(kind string, move func() (history.Entry, *notebook.UISpec, error)) (*notebook.Notebook, error) {
	s.mu.Lock()
	e, state, err := move()
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.nb.UISpec = state
	out := s.nb.Clone()
	s.mu.Unlock()

	s.logger.Debug("history step", zap.String("session", s.ID), zap.String("step", kind), zap.String("operation", e.Operation))
	s.notify(kind, e.Operation)
	return out, nil
}

// History returns the names of the operations that can be undone, oldest
// first, and whether a redo is available.
func (s *Session) History() ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.history.Entries()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Operation
	}
	return names, s.history.CanRedo()
}

// SetMetadata sets a metadata property. Protected keys are rejected with
// notebook.ErrProtectedProperty.
func (s *Session) SetMetadata(key string, value any) (*notebook.Notebook, error) {
	s.mu.Lock()
	meta, err := s.nb.Metadata.SetProperty(key, value)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.nb.Metadata = meta
	out := s.nb.Clone()
	s.mu.Unlock()

	s.logger.Debug("metadata updated", zap.String("session", s.ID), zap.String("key", key))
	s.notify(ChangeMetadata, key)
	return out, nil
}

// UpdateRoles replaces the roles allowed to use the notebook.
func (s *Session) UpdateRoles(roles []string) *notebook.Notebook {
	s.mu.Lock()
	s.nb.Metadata = s.nb.Metadata.UpdateRoles(roles)
	out := s.nb.Clone()
	s.mu.Unlock()

	s.notify(ChangeMetadata, "accesses")
	return out
}

// Export returns the notebook file contents and its download name.
func (s *Session) Export() ([]byte, string, error) {
	nb := s.Notebook()
	data, err := json.MarshalIndent(nb, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode notebook: %w", err)
	}
	return data, nb.ExportFileName(), nil
}

func (s *Session) notify(kind, operation string) {
	if s.listener == nil {
		return
	}
	s.listener(Change{Type: kind, Session: s.ID, Operation: operation, At: time.Now()})
}
