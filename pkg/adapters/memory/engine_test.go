package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/applitest/testrunner-mcp/pkg/adapters/memory"
	"github.com/applitest/testrunner-mcp/pkg/domain"
	"github.com/applitest/testrunner-mcp/pkg/ports"
	"github.com/applitest/testrunner-mcp/pkg/translate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Contract(t *testing.T) {
	ports.RunEngineContract(t, memory.New(), "https://example.com")
}

func TestEngine_RecordsCalls(t *testing.T) {
	e := memory.New(memory.WithIDGenerator(func() string { return "abc" }))
	ctx := context.Background()

	res, err := e.OpenSession(ctx, translate.OpenSession(domain.SessionWeb, domain.BrowserChrome, "https://example.com"))
	require.NoError(t, err)
	assert.Equal(t, "abc", res.SessionID)

	_, err = e.RunSession(ctx, "abc", translate.Step(domain.StepRequest{Command: "click"}, domain.SessionWeb))
	require.NoError(t, err)

	_, err = e.DOMTree(ctx, "abc", 5, "#main")
	require.NoError(t, err)

	calls := e.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, memory.OpOpen, calls[0].Op)
	assert.Equal(t, memory.OpRun, calls[1].Op)
	assert.Equal(t, "click", calls[1].Options.Steps()[0].Command)
	assert.Equal(t, 5, calls[2].Depth)
	assert.Equal(t, "#main", calls[2].Selector)
	assert.Equal(t, 1, e.CallCount(memory.OpRun))
	assert.Equal(t, 3, e.CallCount(""))
}

func TestEngine_OpenWithoutSessions(t *testing.T) {
	e := memory.New()

	res, err := e.OpenSession(context.Background(), domain.RunnerOptions{})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Empty(t, e.OpenSessions())
}

func TestEngine_ScriptedOutcomes(t *testing.T) {
	fault := errors.New("driver crashed")
	e := memory.New(
		memory.WithOpenFunc(func(domain.RunnerOptions) (domain.SessionResult, error) {
			return domain.SessionResult{Success: true, SessionID: "scripted"}, nil
		}),
		memory.WithRunFunc(func(string, domain.RunnerOptions) (domain.SessionResult, error) {
			return domain.SessionResult{}, fault
		}),
	)
	ctx := context.Background()

	res, err := e.OpenSession(ctx, domain.RunnerOptions{})
	require.NoError(t, err)
	assert.Equal(t, "scripted", res.SessionID)
	assert.Equal(t, []string{"scripted"}, e.OpenSessions())

	_, err = e.RunSession(ctx, "scripted", domain.RunnerOptions{})
	assert.ErrorIs(t, err, fault)
}

func TestEngine_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := memory.New().CloseSession(ctx, "abc")
	assert.ErrorIs(t, err, context.Canceled)
}
