package ports

import (
	"context"
	"testing"

	"github.com/applitest/testrunner-mcp/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunEngineContract verifies that an Engine implementation honours the session lifecycle
// expected by the dispatcher. The engine must be able to open a web session for startURL.
func RunEngineContract(t *testing.T, engine Engine, startURL string) {
	ctx := context.Background()

	openOpts := domain.RunnerOptions{
		RunConfiguration: &domain.RunConfiguration{
			Sessions: []domain.SessionConfig{{
				Type:    domain.SessionWeb,
				Browser: &domain.BrowserConfig{Name: domain.BrowserChrome, StartURL: startURL},
			}},
			RunType: domain.SessionWeb,
			RunName: "contract",
		},
		Variables: map[string]string{"startUrl": startURL},
	}

	var sessionID string

	t.Run("Open", func(t *testing.T) {
		res, err := engine.OpenSession(ctx, openOpts)
		require.NoError(t, err)
		require.True(t, res.Success, res.Message)
		require.NotEmpty(t, res.SessionID)
		sessionID = res.SessionID
	})

	t.Run("Trees", func(t *testing.T) {
		res, err := engine.AccessibilityTree(ctx, sessionID, "")
		require.NoError(t, err)
		assert.True(t, res.Success, res.Message)

		res, err = engine.DOMTree(ctx, sessionID, domain.DefaultDOMDepth, "")
		require.NoError(t, err)
		assert.True(t, res.Success, res.Message)
	})

	t.Run("Unknown Session", func(t *testing.T) {
		res, err := engine.RunSession(ctx, "missing-"+sessionID, domain.RunnerOptions{})
		require.NoError(t, err, "unknown sessions are a business failure, not an engine fault")
		assert.False(t, res.Success)

		res, err = engine.DOMTree(ctx, "missing-"+sessionID, 1, "")
		require.NoError(t, err)
		assert.False(t, res.Success)
	})

	t.Run("Close", func(t *testing.T) {
		res, err := engine.CloseSession(ctx, sessionID)
		require.NoError(t, err)
		assert.True(t, res.Success, res.Message)

		res, err = engine.CloseSession(ctx, sessionID)
		require.NoError(t, err)
		assert.False(t, res.Success, "closing twice must fail")
	})
}
