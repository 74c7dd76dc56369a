// Package memory provides an in-process automation engine that drives no real browser.
//
// It keeps a table of open sessions and records every call, which makes it useful for dry
// runs of the server (`--engine memory`) and for tests that need to assert which engine
// entry points were reached. Outcomes can be scripted per entry point.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/applitest/testrunner-mcp/pkg/domain"
	"github.com/google/uuid"
)

// Operation names recorded in Call.Op.
const (
	OpOpen    = "open"
	OpClose   = "close"
	OpRun     = "run"
	OpAXTree  = "axtree"
	OpDOMTree = "domtree"
)

// Call records one engine invocation.
type Call struct {
	Op        string
	SessionID string
	Options   domain.RunnerOptions
	Depth     int
	Selector  string
}

// OpenFunc scripts the outcome of OpenSession.
type OpenFunc func(opts domain.RunnerOptions) (domain.SessionResult, error)

// RunFunc scripts the outcome of RunSession for a known session.
type RunFunc func(sessionID string, opts domain.RunnerOptions) (domain.SessionResult, error)

// Engine implements ports.Engine in memory.
// Safe for concurrent use.
type Engine struct {
	mu       sync.Mutex
	sessions map[string]domain.SessionType
	calls    []Call

	newID   func() string
	onOpen  OpenFunc
	onRun   RunFunc
	axTree  any
	domTree any
}

// Option configures the Engine.
type Option func(*Engine)

// WithIDGenerator replaces the UUID generator used for new session identifiers.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		e.newID = fn
	}
}

// WithOpenFunc scripts OpenSession. A successful scripted result registers its SessionID.
func WithOpenFunc(fn OpenFunc) Option {
	return func(e *Engine) {
		e.onOpen = fn
	}
}

// WithRunFunc scripts RunSession.
func WithRunFunc(fn RunFunc) Option {
	return func(e *Engine) {
		e.onRun = fn
	}
}

// WithTrees sets the trees returned by the tree queries.
func WithTrees(axTree, domTree any) Option {
	return func(e *Engine) {
		e.axTree = axTree
		e.domTree = domTree
	}
}

// New creates an in-memory engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		sessions: make(map[string]domain.SessionType),
		newID:    uuid.NewString,
		axTree: map[string]any{
			"role": "WebArea",
			"name": "",
			"children": []any{
				map[string]any{"role": "heading", "name": "Example Domain", "level": 1},
			},
		},
		domTree: map[string]any{
			"tag": "html",
			"children": []any{
				map[string]any{"tag": "body", "children": []any{
					map[string]any{"tag": "h1", "text": "Example Domain"},
				}},
			},
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) record(c Call) {
	e.calls = append(e.calls, c)
}

// OpenSession registers a new session of the first configured session type.
func (e *Engine) OpenSession(ctx context.Context, opts domain.RunnerOptions) (domain.SessionResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionResult{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.record(Call{Op: OpOpen, Options: opts})

	sessionType := domain.SessionWeb
	if rc := opts.RunConfiguration; rc != nil && len(rc.Sessions) > 0 {
		sessionType = rc.Sessions[0].Type
	}

	if e.onOpen != nil {
		res, err := e.onOpen(opts)
		if err == nil && res.Success && res.SessionID != "" {
			e.sessions[res.SessionID] = sessionType
		}
		return res, err
	}

	if opts.RunConfiguration == nil || len(opts.RunConfiguration.Sessions) == 0 {
		return domain.Failed("run configuration declares no session"), nil
	}

	id := e.newID()
	e.sessions[id] = sessionType
	return domain.SessionResult{Success: true, SessionID: id}, nil
}

// CloseSession forgets the session.
func (e *Engine) CloseSession(ctx context.Context, sessionID string) (domain.SessionResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionResult{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.record(Call{Op: OpClose, SessionID: sessionID})

	if _, ok := e.sessions[sessionID]; !ok {
		return domain.Failed(fmt.Sprintf("%v: %s", domain.ErrSessionNotFound, sessionID)), nil
	}
	delete(e.sessions, sessionID)
	return domain.SessionResult{Success: true, SessionID: sessionID}, nil
}

// RunSession accepts every step unless a RunFunc is scripted.
func (e *Engine) RunSession(ctx context.Context, sessionID string, opts domain.RunnerOptions) (domain.SessionResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionResult{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.record(Call{Op: OpRun, SessionID: sessionID, Options: opts})

	if _, ok := e.sessions[sessionID]; !ok {
		return domain.Failed(fmt.Sprintf("%v: %s", domain.ErrSessionNotFound, sessionID)), nil
	}
	if e.onRun != nil {
		return e.onRun(sessionID, opts)
	}
	return domain.SessionResult{
		Success:   true,
		SessionID: sessionID,
		Message:   fmt.Sprintf("executed %d step(s)", len(opts.Steps())),
	}, nil
}

// AccessibilityTree returns the configured accessibility tree.
func (e *Engine) AccessibilityTree(ctx context.Context, sessionID, selector string) (domain.SessionResult, error) {
	return e.tree(ctx, Call{Op: OpAXTree, SessionID: sessionID, Selector: selector}, e.axTree)
}

// DOMTree returns the configured DOM tree.
func (e *Engine) DOMTree(ctx context.Context, sessionID string, depth int, selector string) (domain.SessionResult, error) {
	return e.tree(ctx, Call{Op: OpDOMTree, SessionID: sessionID, Depth: depth, Selector: selector}, e.domTree)
}

func (e *Engine) tree(ctx context.Context, c Call, tree any) (domain.SessionResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionResult{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.record(c)

	if _, ok := e.sessions[c.SessionID]; !ok {
		return domain.Failed(fmt.Sprintf("%v: %s", domain.ErrSessionNotFound, c.SessionID)), nil
	}
	return domain.SessionResult{Success: true, SessionID: c.SessionID, Tree: tree}, nil
}

// Calls returns a copy of every recorded call, oldest first.
func (e *Engine) Calls() []Call {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Call(nil), e.calls...)
}

// CallCount returns how many calls of op were recorded. An empty op counts every call.
func (e *Engine) CallCount(op string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if op == "" {
		return len(e.calls)
	}
	n := 0
	for _, c := range e.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// OpenSessions lists the identifiers the engine currently holds.
func (e *Engine) OpenSessions() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	ids := make([]string, 0, len(e.sessions))
	for id := range e.sessions {
		ids = append(ids, id)
	}
	return ids
}
