package tools

import (
	"encoding/json"
	"log/slog"

	"github.com/applitest/testrunner-mcp/internal/logging"
	"github.com/applitest/testrunner-mcp/pkg/ports"
	"github.com/applitest/testrunner-mcp/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// Dispatcher composes the registry, the translator and the engine into tool handlers.
// Its exported handler methods match server.ToolHandlerFunc.
type Dispatcher struct {
	engine   ports.Engine
	registry *session.Registry
	logger   *slog.Logger
}

// Option configures the Dispatcher.
type Option func(*Dispatcher)

// WithLogger configures a logger for the Dispatcher.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// NewDispatcher creates a Dispatcher over engine and registry.
func NewDispatcher(engine ports.Engine, registry *session.Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		engine:   engine,
		registry: registry,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Registry returns the session registry the dispatcher mutates.
func (d *Dispatcher) Registry() *session.Registry {
	return d.registry
}

func textResult(structured any, texts ...string) *mcp.CallToolResult {
	content := make([]mcp.Content, 0, len(texts))
	for _, t := range texts {
		content = append(content, mcp.NewTextContent(t))
	}
	res := &mcp.CallToolResult{Content: content}
	if structured != nil {
		res.StructuredContent = structured
	}
	return res
}

func failureText(prefix, message string) string {
	if message == "" {
		return prefix + "."
	}
	return prefix + ": " + message
}

func prettyJSON(v any) string {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "null"
	}
	return string(raw)
}
