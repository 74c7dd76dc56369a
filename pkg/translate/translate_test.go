package translate

import (
	"encoding/json"
	"testing"

	"github.com/applitest/testrunner-mcp/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func onlyStep(t *testing.T, opts domain.RunnerOptions) domain.Step {
	t.Helper()
	require.Len(t, opts.Suites, 1)
	require.Len(t, opts.Suites[0].Tests, 1)
	require.Len(t, opts.Suites[0].Tests[0].Steps, 1)
	return opts.Suites[0].Tests[0].Steps[0]
}

func TestStep_Nesting(t *testing.T) {
	opts := Step(domain.StepRequest{Command: "click"}, domain.SessionMobile)

	step := onlyStep(t, opts)
	assert.Equal(t, "click", step.Command)
	assert.Equal(t, StepSuiteName, opts.Suites[0].Name)
	assert.Equal(t, StepTestName, opts.Suites[0].Tests[0].Name)
	assert.Equal(t, domain.SessionMobile, opts.Suites[0].Tests[0].Type)
	assert.Empty(t, opts.Variables)
	assert.Nil(t, opts.RunConfiguration)
}

func TestStep_Position(t *testing.T) {
	tests := []struct {
		name     string
		position *int
		want     *int
	}{
		{"omitted", nil, nil},
		{"sentinel", intPtr(-1), nil},
		{"zero", intPtr(0), intPtr(0)},
		{"positive", intPtr(3), intPtr(3)},
		{"other negative", intPtr(-2), intPtr(-2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step := onlyStep(t, Step(domain.StepRequest{Command: "click", Position: tt.position}, domain.SessionWeb))
			assert.Equal(t, tt.want, step.Position)

			raw, err := json.Marshal(step)
			require.NoError(t, err)
			if tt.want == nil {
				assert.NotContains(t, string(raw), "position")
			} else {
				assert.Contains(t, string(raw), "position")
			}
		})
	}
}

func TestStep_OptionalFields(t *testing.T) {
	step := onlyStep(t, Step(domain.StepRequest{Command: "assert-text"}, domain.SessionWeb))
	assert.Nil(t, step.Selectors)
	assert.Empty(t, step.Value)
	assert.Empty(t, step.Operator)

	raw, err := json.Marshal(step)
	require.NoError(t, err)
	assert.JSONEq(t, `{"command":"assert-text"}`, string(raw))

	step = onlyStep(t, Step(domain.StepRequest{
		Command:   "assert-text",
		Selectors: []string{"aria/Submit", "button=Submit"},
		Value:     "Submit",
		Operator:  "contains",
	}, domain.SessionWeb))
	assert.Equal(t, []string{"aria/Submit", "button=Submit"}, step.Selectors)
	assert.Equal(t, "Submit", step.Value)
	assert.Equal(t, "contains", step.Operator)
}

func TestStep_UnknownCommandIsCopied(t *testing.T) {
	step := onlyStep(t, Step(domain.StepRequest{Command: "teleport"}, domain.SessionWeb))
	assert.Equal(t, "teleport", step.Command)
}

func TestStep_DefaultsToWeb(t *testing.T) {
	opts := Step(domain.StepRequest{Command: "click"}, "")
	assert.Equal(t, domain.SessionWeb, opts.Suites[0].Tests[0].Type)
}

func TestStep_DoesNotAliasSelectors(t *testing.T) {
	selectors := []string{"#a"}
	step := onlyStep(t, Step(domain.StepRequest{Command: "click", Selectors: selectors}, domain.SessionWeb))
	selectors[0] = "#b"
	assert.Equal(t, []string{"#a"}, step.Selectors)
}

func TestOpenSession(t *testing.T) {
	opts := OpenSession(domain.SessionWeb, domain.BrowserChrome, "https://example.com")

	require.NotNil(t, opts.RunConfiguration)
	require.Len(t, opts.RunConfiguration.Sessions, 1)
	sess := opts.RunConfiguration.Sessions[0]
	assert.Equal(t, domain.SessionWeb, sess.Type)
	require.NotNil(t, sess.Browser)
	assert.Equal(t, domain.BrowserChrome, sess.Browser.Name)
	assert.Equal(t, "https://example.com", sess.Browser.StartURL)
	assert.Equal(t, domain.SessionWeb, opts.RunConfiguration.RunType)
	assert.Equal(t, map[string]string{"startUrl": "https://example.com"}, opts.Variables)
	assert.Empty(t, opts.Suites)
}

func TestOpenSession_NoURL(t *testing.T) {
	opts := OpenSession(domain.SessionAPI, "", "")

	assert.Empty(t, opts.Variables)
	assert.Nil(t, opts.RunConfiguration.Sessions[0].Browser)
}
