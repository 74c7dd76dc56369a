// Package mcp exposes the tool dispatcher, the server-info resource and the prompt templates
// as an MCP server over stdio, SSE or streamable HTTP.
package mcp

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/applitest/testrunner-mcp/internal/logging"
	"github.com/applitest/testrunner-mcp/pkg/catalog"
	"github.com/applitest/testrunner-mcp/pkg/domain"
	"github.com/applitest/testrunner-mcp/pkg/tools"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server wraps the tool dispatcher and exposes it as an MCP Server.
type Server struct {
	dispatcher *tools.Dispatcher
	info       catalog.Info
	mcpServer  *server.MCPServer
	logger     *slog.Logger
	serverOpts []server.ServerOption
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures a logger for the Server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithServerOptions passes extra options (middleware, hooks) to the underlying MCP server.
func WithServerOptions(opts ...server.ServerOption) Option {
	return func(s *Server) {
		s.serverOpts = append(s.serverOpts, opts...)
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(dispatcher *tools.Dispatcher, info catalog.Info, opts ...Option) *Server {
	s := &Server{
		dispatcher: dispatcher,
		info:       info,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	serverOpts := append([]server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithPromptCapabilities(false),
	}, s.serverOpts...)
	s.mcpServer = server.NewMCPServer(info.Name, info.Version, serverOpts...)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves on Stdin/Stdout until the input is closed.
func (s *Server) ServeStdio() error {
	s.logger.Info("MCP Server listening (stdio)", "name", s.info.Name, "version", s.info.Version)
	return server.ServeStdio(s.mcpServer)
}

// SSEServer returns the SSE transport. Its SSEHandler and MessageHandler are mounted by the
// HTTP adapter at /sse and /message.
func (s *Server) SSEServer(baseURL string) *server.SSEServer {
	return server.NewSSEServer(s.mcpServer,
		server.WithBaseURL(baseURL),
		server.WithSSEEndpoint("/sse"),
		server.WithMessageEndpoint("/message"),
	)
}

// StreamableHTTPHandler returns the stateless streamable HTTP transport for /mcp.
func (s *Server) StreamableHTTPHandler() http.Handler {
	return server.NewStreamableHTTPServer(s.mcpServer, server.WithStateLess(true))
}

func entry(entries []catalog.Entry, name string) catalog.Entry {
	e, _ := catalog.Lookup(entries, name)
	return e
}

func (s *Server) registerTools() {
	d := s.dispatcher

	open := entry(catalog.Tools, catalog.ToolOpenSession)
	s.mcpServer.AddTool(mcp.NewTool(open.Name,
		mcp.WithTitleAnnotation(open.Title),
		mcp.WithDescription(open.Description),
		mcp.WithString("type",
			mcp.Enum("web", "mobile", "api"),
			mcp.DefaultString(string(domain.SessionWeb)),
			mcp.Description("Type of session to open (web, mobile or api)"),
		),
		mcp.WithString("url", mcp.Description("URL to open in browser")),
		mcp.WithString("browser",
			mcp.Enum("chrome", "firefox", "edge"),
			mcp.Description("Browser to use for the session (e.g., chrome, firefox, edge)"),
		),
		mcp.WithOutputSchema[tools.OpenSessionOutput](),
	), d.OpenSession)

	closeTool := entry(catalog.Tools, catalog.ToolCloseSession)
	s.mcpServer.AddTool(mcp.NewTool(closeTool.Name,
		mcp.WithTitleAnnotation(closeTool.Title),
		mcp.WithDescription(closeTool.Description),
		mcp.WithString("sessionId", mcp.Required(), mcp.Description("ID of the session to close")),
	), d.CloseSession)

	ax := entry(catalog.Tools, catalog.ToolGetAccessibilityTree)
	s.mcpServer.AddTool(mcp.NewTool(ax.Name,
		mcp.WithTitleAnnotation(ax.Title),
		mcp.WithDescription(ax.Description),
		mcp.WithString("sessionId", mcp.Required(), mcp.Description("ID of the session to get accessibility tree from")),
		mcp.WithString("selector", mcp.Description("Optional selector to narrow down the accessibility tree")),
		mcp.WithOutputSchema[tools.AccessibilityTreeOutput](),
	), d.GetAccessibilityTree)

	dom := entry(catalog.Tools, catalog.ToolGetDOMTree)
	s.mcpServer.AddTool(mcp.NewTool(dom.Name,
		mcp.WithTitleAnnotation(dom.Title),
		mcp.WithDescription(dom.Description),
		mcp.WithString("sessionId", mcp.Required(), mcp.Description("ID of the session to get DOM tree from")),
		mcp.WithNumber("depth",
			mcp.DefaultNumber(domain.DefaultDOMDepth),
			mcp.Description("Optional depth to limit the DOM tree levels retrieved"),
		),
		mcp.WithString("selector", mcp.Description("Optional selector to narrow down the DOM tree")),
		mcp.WithOutputSchema[tools.DOMTreeOutput](),
	), d.GetDOMTree)

	step := entry(catalog.Tools, catalog.ToolDoStep)
	s.mcpServer.AddTool(mcp.NewTool(step.Name,
		mcp.WithTitleAnnotation(step.Title),
		mcp.WithDescription(step.Description),
		mcp.WithString("sessionId", mcp.Required(), mcp.Description("ID of the session to perform step in")),
		mcp.WithString("command", mcp.Required(), mcp.Description("Step command to perform (e.g., click, item-select, etc...)")),
		mcp.WithArray("selectors",
			mcp.WithStringItems(),
			mcp.Description("Array of potential selectors for the element to perform action on"),
		),
		mcp.WithNumber("position",
			mcp.DefaultNumber(domain.PositionUnset),
			mcp.Description("Optional position index for the selector in case it could match several elements"),
		),
		mcp.WithString("value", mcp.Description("Optional value for the step (e.g., text input)")),
		mcp.WithString("operator", mcp.Description("Optional operator for the step (e.g. type of comparison operator)")),
		mcp.WithOutputSchema[tools.DoStepOutput](),
	), d.DoStep)
}

func (s *Server) registerResources() {
	info := entry(catalog.Resources, catalog.ResourceServerInfo)
	s.mcpServer.AddResource(mcp.NewResource(catalog.ResourceServerInfoURI, info.Name,
		mcp.WithResourceDescription(info.Description),
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "text/plain",
				Text:     catalog.ServerInfoText(s.info),
			},
		}, nil
	})
}
