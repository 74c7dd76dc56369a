package ports

import (
	"context"

	"github.com/applitest/testrunner-mcp/pkg/domain"
)

// Engine is the automation engine boundary consumed by the tool dispatcher.
//
// Every method reports business outcomes through domain.SessionResult (Success=false plus a
// Message). A returned error means the engine itself faulted; the dispatcher does not recover
// from it and the transport turns it into a protocol-level error.
type Engine interface {
	// OpenSession opens a session described by opts.RunConfiguration and returns its identifier.
	OpenSession(ctx context.Context, opts domain.RunnerOptions) (domain.SessionResult, error)

	// CloseSession releases every resource behind sessionID.
	CloseSession(ctx context.Context, sessionID string) (domain.SessionResult, error)

	// RunSession executes the suites of opts against an already open session.
	RunSession(ctx context.Context, sessionID string, opts domain.RunnerOptions) (domain.SessionResult, error)

	// AccessibilityTree returns the accessibility tree of the page, or of selector when set.
	AccessibilityTree(ctx context.Context, sessionID, selector string) (domain.SessionResult, error)

	// DOMTree returns the DOM tree limited to depth levels, rooted at selector when set.
	DOMTree(ctx context.Context, sessionID string, depth int, selector string) (domain.SessionResult, error)
}
