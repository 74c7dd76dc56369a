package session

import (
	"log/slog"
	"sync"

	"github.com/applitest/testrunner-mcp/internal/logging"
	"github.com/applitest/testrunner-mcp/pkg/domain"
)

// Registry stores zero or one open session.
type Registry struct {
	mu      sync.RWMutex
	current *domain.Session

	logger *slog.Logger
}

// Option configures the Registry.
type Option func(*Registry)

// WithLogger configures a logger for the Registry.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetCurrent unconditionally overwrites the slot. It returns the session it replaced, if any.
func (r *Registry) SetCurrent(id string, sessionType domain.SessionType) (previous *domain.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous = r.current
	r.current = &domain.Session{ID: id, Type: sessionType}
	r.logger.Debug("Registry updated", "session_id", id, "session_type", sessionType)
	return previous
}

// ClearCurrent empties the slot.
func (r *Registry) ClearCurrent() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current != nil {
		r.logger.Debug("Registry cleared", "session_id", r.current.ID)
	}
	r.current = nil
}

// IsCurrent reports whether id is the open session. An empty slot never matches.
func (r *Registry) IsCurrent(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.current != nil && r.current.ID == id
}

// CurrentType returns the declared type of the open session.
func (r *Registry) CurrentType() (domain.SessionType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.current == nil {
		return "", false
	}
	return r.current.Type, true
}

// Current returns a copy of the open session.
func (r *Registry) Current() (domain.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.current == nil {
		return domain.Session{}, false
	}
	return *r.current, true
}
