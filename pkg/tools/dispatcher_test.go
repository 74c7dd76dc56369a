package tools_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/applitest/testrunner-mcp/pkg/adapters/memory"
	"github.com/applitest/testrunner-mcp/pkg/domain"
	"github.com/applitest/testrunner-mcp/pkg/session"
	"github.com/applitest/testrunner-mcp/pkg/tools"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func newDispatcher(opts ...memory.Option) (*tools.Dispatcher, *memory.Engine) {
	opts = append([]memory.Option{memory.WithIDGenerator(func() string { return "abc" })}, opts...)
	engine := memory.New(opts...)
	return tools.NewDispatcher(engine, session.NewRegistry()), engine
}

func call(t *testing.T, h handler, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func structured(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	raw, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	return string(raw)
}

func text(t *testing.T, res *mcp.CallToolResult, i int) string {
	t.Helper()
	require.Greater(t, len(res.Content), i)
	tc, ok := res.Content[i].(mcp.TextContent)
	require.True(t, ok, "content %d is not text", i)
	return tc.Text
}

func openWeb(t *testing.T, d *tools.Dispatcher) {
	t.Helper()
	res := call(t, d.OpenSession, map[string]any{"type": "web", "url": "https://example.com"})
	require.JSONEq(t, `{"sessionType":"web","sessionId":"abc"}`, structured(t, res))
}

func TestOpenSession_Web(t *testing.T) {
	d, engine := newDispatcher()

	res := call(t, d.OpenSession, map[string]any{"type": "web", "url": "https://example.com"})

	assert.False(t, res.IsError)
	assert.JSONEq(t, `{"sessionType":"web","sessionId":"abc"}`, structured(t, res))
	assert.Contains(t, text(t, res, 0), `Opening test runner session for URL "https://example.com" using browser "chrome"`)
	assert.Contains(t, text(t, res, 0), "Session successfully created for type web with ID: abc !")

	current, ok := d.Registry().Current()
	require.True(t, ok)
	assert.Equal(t, domain.Session{ID: "abc", Type: domain.SessionWeb}, current)

	calls := engine.Calls()
	require.Len(t, calls, 1)
	rc := calls[0].Options.RunConfiguration
	require.NotNil(t, rc)
	require.Len(t, rc.Sessions, 1)
	assert.Equal(t, domain.BrowserChrome, rc.Sessions[0].Browser.Name)
	assert.Equal(t, "https://example.com", rc.Sessions[0].Browser.StartURL)
}

func TestOpenSession_DefaultBrowserMatchesChrome(t *testing.T) {
	implicit, implicitEngine := newDispatcher()
	explicit, explicitEngine := newDispatcher()

	a := call(t, implicit.OpenSession, map[string]any{"url": "https://example.com"})
	b := call(t, explicit.OpenSession, map[string]any{"url": "https://example.com", "browser": "chrome"})

	assert.Equal(t, structured(t, b), structured(t, a))
	assert.Equal(t, text(t, b, 0), text(t, a, 0))
	assert.Equal(t, explicitEngine.Calls()[0].Options, implicitEngine.Calls()[0].Options)
}

func TestOpenSession_WebWithoutURL(t *testing.T) {
	d, engine := newDispatcher()

	res := call(t, d.OpenSession, map[string]any{"type": "web"})

	assert.JSONEq(t, `{"sessionType":"web","sessionId":null}`, structured(t, res))
	assert.Equal(t, "Error: Url must be provided to open a web session.", text(t, res, 0))
	assert.Zero(t, engine.CallCount(""))
	_, ok := d.Registry().Current()
	assert.False(t, ok)
}

func TestOpenSession_EngineFailure(t *testing.T) {
	d, _ := newDispatcher(memory.WithOpenFunc(func(domain.RunnerOptions) (domain.SessionResult, error) {
		return domain.Failed("Mobile sessions are not supported"), nil
	}))

	res := call(t, d.OpenSession, map[string]any{"type": "mobile"})

	assert.JSONEq(t, `{"sessionType":"mobile","sessionId":null}`, structured(t, res))
	assert.Contains(t, text(t, res, 0), "Failed to create session: Mobile sessions are not supported")
	_, ok := d.Registry().Current()
	assert.False(t, ok)
}

func TestOpenSession_LastWriteWins(t *testing.T) {
	ids := []string{"first", "second"}
	d, engine := newDispatcher(memory.WithIDGenerator(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}))

	call(t, d.OpenSession, map[string]any{"url": "https://a.example"})
	call(t, d.OpenSession, map[string]any{"url": "https://b.example"})

	current, ok := d.Registry().Current()
	require.True(t, ok)
	assert.Equal(t, "second", current.ID)
	assert.ElementsMatch(t, []string{"first", "second"}, engine.OpenSessions())
	assert.Zero(t, engine.CallCount(memory.OpClose))
}

func TestOpenSession_InvalidArguments(t *testing.T) {
	d, engine := newDispatcher()

	res := call(t, d.OpenSession, map[string]any{"type": "desktop", "url": "https://example.com"})

	assert.True(t, res.IsError)
	assert.JSONEq(t, `{"sessionType":"web","sessionId":null}`, structured(t, res))
	assert.Zero(t, engine.CallCount(""))
}

func TestCloseSession(t *testing.T) {
	d, engine := newDispatcher()
	openWeb(t, d)

	res := call(t, d.CloseSession, map[string]any{"sessionId": "abc"})
	assert.Nil(t, res.StructuredContent)
	assert.Contains(t, text(t, res, 0), "Session successfully closed!")
	_, ok := d.Registry().Current()
	assert.False(t, ok)

	t.Run("Closed Identifier Fails Validation Everywhere", func(t *testing.T) {
		before := engine.CallCount("")
		for _, h := range []handler{d.CloseSession, d.DoStep, d.GetAccessibilityTree, d.GetDOMTree} {
			res := call(t, h, map[string]any{"sessionId": "abc", "command": "click"})
			assert.Equal(t, `Error: Session ID "abc" does not match the current open session.`, text(t, res, 0))
		}
		assert.Equal(t, before, engine.CallCount(""))
	})
}

func TestCloseSession_EngineFailureKeepsRegistry(t *testing.T) {
	engine := memory.New(memory.WithOpenFunc(func(domain.RunnerOptions) (domain.SessionResult, error) {
		return domain.SessionResult{Success: true, SessionID: "ghost"}, nil
	}))
	d := tools.NewDispatcher(engine, session.NewRegistry())
	call(t, d.OpenSession, map[string]any{"url": "https://example.com"})
	_, err := engine.CloseSession(context.Background(), "ghost")
	require.NoError(t, err)

	res := call(t, d.CloseSession, map[string]any{"sessionId": "ghost"})

	assert.Contains(t, text(t, res, 0), "Failed to close session")
	assert.True(t, d.Registry().IsCurrent("ghost"))
}

func TestSessionMismatch_FallbackShapes(t *testing.T) {
	tests := []struct {
		name     string
		handler  func(*tools.Dispatcher) handler
		args     map[string]any
		expected string
	}{
		{
			name:     "Do Step",
			handler:  func(d *tools.Dispatcher) handler { return d.DoStep },
			args:     map[string]any{"sessionId": "zzz", "command": "click"},
			expected: `{"result":false}`,
		},
		{
			name:     "Accessibility Tree",
			handler:  func(d *tools.Dispatcher) handler { return d.GetAccessibilityTree },
			args:     map[string]any{"sessionId": "zzz"},
			expected: `{"axtree":null}`,
		},
		{
			name:     "DOM Tree",
			handler:  func(d *tools.Dispatcher) handler { return d.GetDOMTree },
			args:     map[string]any{"sessionId": "zzz"},
			expected: `{"domtree":null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, engine := newDispatcher()
			openWeb(t, d)

			res := call(t, tt.handler(d), tt.args)

			assert.JSONEq(t, tt.expected, structured(t, res))
			assert.Equal(t, `Error: Session ID "zzz" does not match the current open session.`, text(t, res, 0))
			assert.Equal(t, 1, engine.CallCount(""), "only the open call reaches the engine")
		})
	}

	t.Run("Empty Registry", func(t *testing.T) {
		d, engine := newDispatcher()
		res := call(t, d.GetDOMTree, map[string]any{"sessionId": ""})
		assert.JSONEq(t, `{"domtree":null}`, structured(t, res))
		assert.Zero(t, engine.CallCount(""))
	})
}

func TestDoStep(t *testing.T) {
	d, engine := newDispatcher()
	openWeb(t, d)

	res := call(t, d.DoStep, map[string]any{
		"sessionId": "abc",
		"command":   "click",
		"selectors": []any{"aria/Submit", "button=Submit"},
		"position":  float64(-1),
	})

	assert.JSONEq(t, `{"result":true}`, structured(t, res))
	assert.Contains(t, text(t, res, 0), "Step executed successfully!")

	calls := engine.Calls()
	require.Len(t, calls, 2)
	run := calls[1]
	assert.Equal(t, "abc", run.SessionID)
	require.Len(t, run.Options.Suites, 1)
	assert.Equal(t, domain.SessionWeb, run.Options.Suites[0].Tests[0].Type)

	steps := run.Options.Steps()
	require.Len(t, steps, 1)
	raw, err := json.Marshal(steps[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"command":"click","selectors":["aria/Submit","button=Submit"]}`, string(raw))
}

func TestDoStep_UsesRegisteredSessionType(t *testing.T) {
	d, engine := newDispatcher()

	res := call(t, d.OpenSession, map[string]any{"type": "mobile"})
	require.JSONEq(t, `{"sessionType":"mobile","sessionId":"abc"}`, structured(t, res))

	res = call(t, d.DoStep, map[string]any{"sessionId": "abc", "command": "click"})
	assert.JSONEq(t, `{"result":true}`, structured(t, res))

	calls := engine.Calls()
	require.Len(t, calls, 2)
	run := calls[1]
	require.Len(t, run.Options.Suites, 1)
	require.Len(t, run.Options.Suites[0].Tests, 1)
	assert.Equal(t, domain.SessionMobile, run.Options.Suites[0].Tests[0].Type)
}

func TestDoStep_PositionZeroKept(t *testing.T) {
	d, engine := newDispatcher()
	openWeb(t, d)

	call(t, d.DoStep, map[string]any{"sessionId": "abc", "command": "click", "position": float64(0)})

	step := engine.Calls()[1].Options.Steps()[0]
	require.NotNil(t, step.Position)
	assert.Equal(t, 0, *step.Position)
}

func TestDoStep_EngineFailure(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"With Message", "element not found", "Failed to execute step: element not found"},
		{"Without Message", "", "Failed to execute step: Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newDispatcher(memory.WithRunFunc(func(string, domain.RunnerOptions) (domain.SessionResult, error) {
				return domain.SessionResult{Success: false, Message: tt.message}, nil
			}))
			openWeb(t, d)

			res := call(t, d.DoStep, map[string]any{"sessionId": "abc", "command": "click"})

			assert.JSONEq(t, `{"result":false}`, structured(t, res))
			assert.Contains(t, text(t, res, 0), tt.want)
		})
	}
}

func TestDoStep_MissingCommand(t *testing.T) {
	d, engine := newDispatcher()
	openWeb(t, d)

	res := call(t, d.DoStep, map[string]any{"sessionId": "abc"})

	assert.True(t, res.IsError)
	assert.JSONEq(t, `{"result":false}`, structured(t, res))
	assert.Equal(t, 0, engine.CallCount(memory.OpRun))
}

func TestIntegerArgumentsOutOfRange(t *testing.T) {
	d, engine := newDispatcher()
	openWeb(t, d)

	res := call(t, d.DoStep, map[string]any{"sessionId": "abc", "command": "click", "position": 1e300})
	assert.True(t, res.IsError)
	assert.JSONEq(t, `{"result":false}`, structured(t, res))

	res = call(t, d.GetDOMTree, map[string]any{"sessionId": "abc", "depth": -1e300})
	assert.True(t, res.IsError)
	assert.JSONEq(t, `{"domtree":null}`, structured(t, res))

	assert.Zero(t, engine.CallCount(memory.OpRun))
	assert.Zero(t, engine.CallCount(memory.OpDOMTree))
}

func TestEngineErrorPropagates(t *testing.T) {
	fault := errors.New("driver crashed")
	d, _ := newDispatcher(memory.WithRunFunc(func(string, domain.RunnerOptions) (domain.SessionResult, error) {
		return domain.SessionResult{}, fault
	}))
	openWeb(t, d)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"sessionId": "abc", "command": "click"}
	res, err := d.DoStep(context.Background(), req)

	assert.Nil(t, res)
	assert.ErrorIs(t, err, fault)
	assert.True(t, d.Registry().IsCurrent("abc"))
}

func TestTrees(t *testing.T) {
	ax := map[string]any{"role": "WebArea"}
	dom := map[string]any{"tag": "html"}
	d, engine := newDispatcher(memory.WithTrees(ax, dom))
	openWeb(t, d)

	t.Run("Accessibility", func(t *testing.T) {
		res := call(t, d.GetAccessibilityTree, map[string]any{"sessionId": "abc", "selector": "#main"})
		assert.JSONEq(t, `{"axtree":{"role":"WebArea"}}`, structured(t, res))
		assert.Contains(t, text(t, res, 0), "Accessibility tree retrieved successfully!!")
		assert.JSONEq(t, `{"role":"WebArea"}`, text(t, res, 1))
	})

	t.Run("DOM Default Depth", func(t *testing.T) {
		res := call(t, d.GetDOMTree, map[string]any{"sessionId": "abc"})
		assert.JSONEq(t, `{"domtree":{"tag":"html"}}`, structured(t, res))
		calls := engine.Calls()
		assert.Equal(t, domain.DefaultDOMDepth, calls[len(calls)-1].Depth)
	})

	t.Run("DOM Explicit Depth", func(t *testing.T) {
		call(t, d.GetDOMTree, map[string]any{"sessionId": "abc", "depth": float64(3), "selector": "body"})
		calls := engine.Calls()
		last := calls[len(calls)-1]
		assert.Equal(t, 3, last.Depth)
		assert.Equal(t, "body", last.Selector)
	})
}
