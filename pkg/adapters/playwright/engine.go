// Package playwright implements the automation engine on top of playwright-go.
//
// Only web sessions are supported. Each session owns a browser, a context and a page; steps,
// tree snapshots and close calls on one session are serialized by that session's lock.
package playwright

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/applitest/testrunner-mcp/internal/logging"
	"github.com/applitest/testrunner-mcp/pkg/domain"
	"github.com/applitest/testrunner-mcp/pkg/translate"
	"github.com/google/uuid"
	pw "github.com/playwright-community/playwright-go"
)

// DefaultTimeout bounds every Playwright action.
const DefaultTimeout = 30 * time.Second

// ErrNotStarted is returned when the Playwright driver could not be started.
var ErrNotStarted = errors.New("playwright driver not running")

type browserSession struct {
	mu      sync.Mutex
	browser pw.Browser
	context pw.BrowserContext
	page    pw.Page
}

func (s *browserSession) close() {
	_ = s.page.Close()
	_ = s.context.Close()
	_ = s.browser.Close()
}

// Engine implements ports.Engine with real browsers.
type Engine struct {
	mu       sync.Mutex
	pw       *pw.Playwright
	sessions map[string]*browserSession

	headless bool
	timeout  time.Duration
	install  bool
	logger   *slog.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithHeadless controls whether browsers run without a window.
func WithHeadless(headless bool) Option {
	return func(e *Engine) {
		e.headless = headless
	}
}

// WithTimeout sets the default action timeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithInstall downloads the driver and browsers before the first start.
func WithInstall(install bool) Option {
	return func(e *Engine) {
		e.install = install
	}
}

// WithLogger configures a logger for the Engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an engine. The driver starts lazily on the first OpenSession.
func New(opts ...Option) *Engine {
	e := &Engine{
		sessions: make(map[string]*browserSession),
		headless: true,
		timeout:  DefaultTimeout,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// start launches the driver. Callers hold e.mu.
func (e *Engine) start() error {
	if e.pw != nil {
		return nil
	}

	// Driver output would corrupt the stdio transport.
	runOpts := &pw.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}
	if e.install {
		if err := pw.Install(runOpts); err != nil {
			return fmt.Errorf("%w: install: %v", ErrNotStarted, err)
		}
	}

	p, err := pw.Run(runOpts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotStarted, err)
	}
	e.pw = p
	e.logger.Info("Playwright driver started", "headless", e.headless)
	return nil
}

func browserType(driver *pw.Playwright, name domain.Browser) (pw.BrowserType, *string, error) {
	switch name {
	case "", domain.BrowserChrome:
		return driver.Chromium, nil, nil
	case domain.BrowserEdge:
		return driver.Chromium, pw.String("msedge"), nil
	case domain.BrowserFirefox:
		return driver.Firefox, nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported browser %q", name)
	}
}

// OpenSession launches a browser for the first web session of the run configuration and
// navigates to its start URL.
func (e *Engine) OpenSession(ctx context.Context, opts domain.RunnerOptions) (domain.SessionResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionResult{}, err
	}

	rc := opts.RunConfiguration
	if rc == nil || len(rc.Sessions) == 0 {
		return domain.Failed("run configuration declares no session"), nil
	}
	cfg := rc.Sessions[0]
	if cfg.Type != domain.SessionWeb {
		return domain.Failed(fmt.Sprintf("%s sessions are not supported by the playwright engine", cfg.Type)), nil
	}

	var browserName domain.Browser
	startURL := opts.Variables[translate.StartURLVariable]
	if cfg.Browser != nil {
		browserName = cfg.Browser.Name
		if cfg.Browser.StartURL != "" {
			startURL = cfg.Browser.StartURL
		}
	}

	e.mu.Lock()
	err := e.start()
	driver := e.pw
	e.mu.Unlock()
	if err != nil {
		return domain.SessionResult{}, err
	}

	// Launch and navigation can take up to the timeout; they run without e.mu so lookups
	// for other sessions are not blocked.
	s, msg := e.launch(driver, browserName, startURL)
	if s == nil {
		return domain.Failed(msg), nil
	}

	id := uuid.NewString()
	e.mu.Lock()
	if e.pw != driver {
		e.mu.Unlock()
		s.close()
		return domain.SessionResult{}, fmt.Errorf("%w: stopped while opening a session", ErrNotStarted)
	}
	e.sessions[id] = s
	e.mu.Unlock()

	e.logger.Debug("Browser session opened", "session_id", id, "browser", browserName, "url", startURL)
	return domain.SessionResult{Success: true, SessionID: id}, nil
}

// launch starts a browser with one page on startURL. On failure it returns a nil session and
// the reason.
func (e *Engine) launch(driver *pw.Playwright, name domain.Browser, startURL string) (*browserSession, string) {
	bt, channel, err := browserType(driver, name)
	if err != nil {
		return nil, err.Error()
	}

	browser, err := bt.Launch(pw.BrowserTypeLaunchOptions{
		Headless: pw.Bool(e.headless),
		Channel:  channel,
	})
	if err != nil {
		return nil, fmt.Sprintf("failed to launch browser: %v", err)
	}
	bctx, err := browser.NewContext()
	if err != nil {
		_ = browser.Close()
		return nil, fmt.Sprintf("failed to create context: %v", err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		_ = browser.Close()
		return nil, fmt.Sprintf("failed to create page: %v", err)
	}
	page.SetDefaultTimeout(float64(e.timeout.Milliseconds()))

	s := &browserSession{browser: browser, context: bctx, page: page}
	if startURL != "" {
		if _, err := page.Goto(startURL); err != nil {
			s.close()
			return nil, fmt.Sprintf("navigation failed: %v", err)
		}
	}
	return s, ""
}

func (e *Engine) session(id string) (*browserSession, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sessions[id]
	return s, ok
}

func notFound(id string) domain.SessionResult {
	return domain.Failed(fmt.Sprintf("%v: %s", domain.ErrSessionNotFound, id))
}

// CloseSession closes the browser of the session.
func (e *Engine) CloseSession(ctx context.Context, sessionID string) (domain.SessionResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionResult{}, err
	}

	e.mu.Lock()
	s, ok := e.sessions[sessionID]
	delete(e.sessions, sessionID)
	e.mu.Unlock()
	if !ok {
		return notFound(sessionID), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.close()
	return domain.SessionResult{Success: true, SessionID: sessionID}, nil
}

// RunSession executes every step of opts in order and stops at the first failure.
func (e *Engine) RunSession(ctx context.Context, sessionID string, opts domain.RunnerOptions) (domain.SessionResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionResult{}, err
	}

	s, ok := e.session(sessionID)
	if !ok {
		return notFound(sessionID), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r := stepRunner{page: s.page, vars: opts.Variables, timeout: e.timeout}
	for i, step := range opts.Steps() {
		if err := ctx.Err(); err != nil {
			return domain.SessionResult{}, err
		}
		if err := r.run(step); err != nil {
			e.logger.Debug("Step failed", "session_id", sessionID, "index", i, "command", step.Command, "err", err)
			return domain.Failed(err.Error()), nil
		}
	}
	return domain.SessionResult{Success: true, SessionID: sessionID}, nil
}

func (e *Engine) target(page pw.Page, selector string) (pw.Locator, error) {
	if selector == "" {
		return page.Locator("body"), nil
	}
	return resolve(page, []string{selector}, nil)
}

// AccessibilityTree returns the aria snapshot of the page body or of selector.
func (e *Engine) AccessibilityTree(ctx context.Context, sessionID, selector string) (domain.SessionResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionResult{}, err
	}

	s, ok := e.session(sessionID)
	if !ok {
		return notFound(sessionID), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	loc, err := e.target(s.page, selector)
	if err != nil {
		return domain.Failed(err.Error()), nil
	}
	snapshot, err := loc.AriaSnapshot()
	if err != nil {
		return domain.Failed(err.Error()), nil
	}
	return domain.SessionResult{Success: true, SessionID: sessionID, Tree: parseAriaSnapshot(snapshot)}, nil
}

// DOMTree returns the DOM of the page or of selector, at most depth levels deep.
func (e *Engine) DOMTree(ctx context.Context, sessionID string, depth int, selector string) (domain.SessionResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionResult{}, err
	}

	s, ok := e.session(sessionID)
	if !ok {
		return notFound(sessionID), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var markup string
	if selector == "" {
		content, err := s.page.Content()
		if err != nil {
			return domain.Failed(err.Error()), nil
		}
		markup = content
	} else {
		loc, err := resolve(s.page, []string{selector}, nil)
		if err != nil {
			return domain.Failed(err.Error()), nil
		}
		v, err := loc.Evaluate("el => el.outerHTML", nil)
		if err != nil {
			return domain.Failed(err.Error()), nil
		}
		html, ok := v.(string)
		if !ok {
			return domain.Failed("element has no outer HTML"), nil
		}
		markup = html
	}

	tree, err := BuildDOMTree(markup, depth, selector != "")
	if err != nil {
		return domain.Failed(err.Error()), nil
	}
	return domain.SessionResult{Success: true, SessionID: sessionID, Tree: tree}, nil
}

// Shutdown closes every session and stops the driver.
func (e *Engine) Shutdown() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for id, s := range e.sessions {
		s.mu.Lock()
		s.close()
		s.mu.Unlock()
		delete(e.sessions, id)
	}

	if e.pw == nil {
		return nil
	}
	err := e.pw.Stop()
	e.pw = nil
	if err != nil {
		return fmt.Errorf("stop playwright: %w", err)
	}
	return nil
}
