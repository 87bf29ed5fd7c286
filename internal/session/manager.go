package session

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fieldmark/designer/internal/history"
	"github.com/fieldmark/designer/internal/logging"
	"github.com/fieldmark/designer/internal/notebook"
	"github.com/fieldmark/designer/internal/uispec"
)

// ErrNotFound is returned for an unknown session id.
var ErrNotFound = errors.New("session not found")

// Options configures a Manager.
type Options struct {
	HistoryDepth int
	Logger       *zap.Logger
	Listener     Listener
}

// Manager keeps sessions in memory keyed by id.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	engine   *uispec.Engine
	depth    int
	logger   *zap.Logger
	listener Listener
}

// NewManager returns a manager whose sessions share engine.
func NewManager(engine *uispec.Engine, opts Options) *Manager {
	if engine == nil {
		engine = uispec.NewEngine(nil)
	}
	depth := opts.HistoryDepth
	if depth <= 0 {
		depth = history.DefaultDepth
	}
	return &Manager{
		sessions: make(map[string]*Session),
		engine:   engine,
		depth:    depth,
		logger:   logging.Or(opts.Logger),
		listener: opts.Listener,
	}
}

// Engine returns the engine shared by all sessions.
func (m *Manager) Engine() *uispec.Engine {
	return m.engine
}

// Create opens a session on a copy of nb. A nil notebook starts an empty one.
func (m *Manager) Create(nb *notebook.Notebook) *Session {
	if nb == nil {
		nb = notebook.New("Untitled Notebook")
	} else {
		nb = nb.Clone()
	}
	if nb.UISpec == nil {
		nb.UISpec = notebook.NewUISpec()
	}
	if nb.Metadata == nil {
		nb.Metadata = notebook.Metadata{}
	}

	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		nb:        nb,
		engine:    m.engine,
		history:   history.New(m.depth),
		logger:    m.logger,
		listener:  m.listener,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Info("session created", zap.String("session", s.ID), zap.String("notebook", nb.Name()))
	return s
}

// Get returns the session with id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete closes the session with id.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	m.logger.Info("session closed", zap.String("session", id))
	return nil
}

// List returns the open session ids sorted by creation time.
func (m *Manager) List() []string {
	m.mu.RLock()
	all := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	ids := make([]string, len(all))
	for i, s := range all {
		ids[i] = s.ID
	}
	return ids
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
