package mcp

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/keycalc/internal/dispatcher"
	"github.com/dshills/keycalc/internal/engine"
	"github.com/dshills/keycalc/internal/engine/display"
)

// Session errors.
var (
	// ErrSessionNotFound is returned for an unknown or closed session ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrTooManySessions is returned when the session limit is reached.
	ErrTooManySessions = errors.New("too many sessions")
)

// DefaultMaxSessions bounds the number of open sessions.
const DefaultMaxSessions = 64

// Session is one calculator addressed by ID.
type Session struct {
	mu         sync.Mutex
	engine     *engine.Engine
	dispatcher *dispatcher.Dispatcher
	formatter  *display.Formatter
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.engine.SessionID()
}

// Press applies a key string and returns the display lines.
// A malformed key stops the sequence; keys before it stay applied.
func (s *Session) Press(keys string) (previous, current string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.dispatcher.Press(keys)
	if errors.Is(err, dispatcher.ErrQuit) {
		err = nil
	}
	previous, current = s.formatter.Lines(s.engine.State())
	return previous, current, err
}

// Lines returns the formatted display lines.
func (s *Session) Lines() (previous, current string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.formatter.Lines(s.engine.State())
}

// Clear resets the calculator.
func (s *Session) Clear() (previous, current string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.engine.Apply(engine.ClearInput)
	return s.formatter.Lines(s.engine.State())
}

// Snapshot returns the session state as JSON.
func (s *Session) Snapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.formatter.Snapshot(s.engine.SessionID(), s.engine.State())
}

// Manager owns the open sessions.
// A Manager is safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	locale   string
	max      int
	notifier engine.Notifier
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLocale sets the display locale for new sessions.
func WithLocale(locale string) ManagerOption {
	return func(m *Manager) {
		m.locale = locale
	}
}

// WithMaxSessions sets the session limit. Values below one are ignored.
func WithMaxSessions(n int) ManagerOption {
	return func(m *Manager) {
		if n > 0 {
			m.max = n
		}
	}
}

// WithNotifier sets the signal receiver shared by every session engine.
func WithNotifier(n engine.Notifier) ManagerOption {
	return func(m *Manager) {
		m.notifier = n
	}
}

// NewManager creates an empty session manager.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		locale:   display.DefaultLocale,
		max:      DefaultMaxSessions,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create opens a new session.
func (m *Manager) Create() (*Session, error) {
	f, err := display.NewFormatter(m.locale)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	var eopts []engine.Option
	if m.notifier != nil {
		eopts = append(eopts, engine.WithNotifier(m.notifier))
	}
	e := engine.New(eopts...)
	s := &Session{
		engine:     e,
		dispatcher: dispatcher.NewWithDefaults(e),
		formatter:  f,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sessions) >= m.max {
		return nil, ErrTooManySessions
	}
	m.sessions[s.ID()] = s
	return s, nil
}

// Get returns the session with the given ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Close removes a session.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(m.sessions, id)
	return nil
}

// IDs returns the open session IDs in sorted order.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
