package tools

import (
	"fmt"

	"github.com/applitest/testrunner-mcp/pkg/domain"
	"github.com/applitest/testrunner-mcp/pkg/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mitchellh/mapstructure"
)

// OpenSessionArgs are the decoded arguments of open-session.
type OpenSessionArgs struct {
	Type    string `mapstructure:"type"`
	URL     string `mapstructure:"url"`
	Browser string `mapstructure:"browser"`
}

// CloseSessionArgs are the decoded arguments of close-session.
type CloseSessionArgs struct {
	SessionID string `mapstructure:"sessionId"`
}

// AccessibilityTreeArgs are the decoded arguments of get-accessibility-tree.
type AccessibilityTreeArgs struct {
	SessionID string `mapstructure:"sessionId"`
	Selector  string `mapstructure:"selector"`
}

// DOMTreeArgs are the decoded arguments of get-dom-tree.
type DOMTreeArgs struct {
	SessionID string `mapstructure:"sessionId"`
	Depth     *int   `mapstructure:"depth"`
	Selector  string `mapstructure:"selector"`
}

// DoStepArgs are the decoded arguments of do-step.
type DoStepArgs struct {
	SessionID string   `mapstructure:"sessionId"`
	Command   string   `mapstructure:"command"`
	Selectors []string `mapstructure:"selectors"`
	Position  *int     `mapstructure:"position"`
	Value     string   `mapstructure:"value"`
	Operator  string   `mapstructure:"operator"`
}

// StepRequest converts the arguments into an engine-agnostic step, dropping the position sentinel.
func (a DoStepArgs) StepRequest() domain.StepRequest {
	return domain.StepRequest{
		Command:   a.Command,
		Selectors: a.Selectors,
		Position:  domain.NormalizePosition(a.Position),
		Value:     a.Value,
		Operator:  a.Operator,
	}
}

func sessionTypeNames() []string {
	out := make([]string, 0, len(domain.OpenableSessionTypes))
	for _, t := range domain.OpenableSessionTypes {
		out = append(out, string(t))
	}
	return out
}

func browserNames() []string {
	out := make([]string, 0, len(domain.SupportedBrowsers))
	for _, b := range domain.SupportedBrowsers {
		out = append(out, string(b))
	}
	return out
}

// Argument schemas, checked before decoding.
var (
	OpenSessionSchema = schema.Schema{
		"type":    schema.Optional(schema.Enum(sessionTypeNames()...)),
		"url":     schema.Optional(schema.String()),
		"browser": schema.Optional(schema.Enum(browserNames()...)),
	}

	CloseSessionSchema = schema.Schema{
		"sessionId": schema.Required(schema.String()),
	}

	AccessibilityTreeSchema = schema.Schema{
		"sessionId": schema.Required(schema.String()),
		"selector":  schema.Optional(schema.String()),
	}

	DOMTreeSchema = schema.Schema{
		"sessionId": schema.Required(schema.String()),
		"depth":     schema.Optional(schema.Int()),
		"selector":  schema.Optional(schema.String()),
	}

	DoStepSchema = schema.Schema{
		"sessionId": schema.Required(schema.String()),
		"command":   schema.Required(schema.String()),
		"selectors": schema.Optional(schema.Slice(schema.String())),
		"position":  schema.Optional(schema.Int()),
		"value":     schema.Optional(schema.String()),
		"operator":  schema.Optional(schema.String()),
	}
)

// decodeArgs validates the request arguments against s and decodes them into out.
// On failure it returns the tool response to send back, carrying fallback as structured content.
func decodeArgs(request mcp.CallToolRequest, s schema.Schema, out any, fallback any) *mcp.CallToolResult {
	args := request.GetArguments()

	if err := schema.Validate(s, args); err != nil {
		return invalidArgs(err, fallback)
	}
	if err := mapstructure.Decode(args, out); err != nil {
		return invalidArgs(err, fallback)
	}
	return nil
}

func invalidArgs(err error, fallback any) *mcp.CallToolResult {
	res := mcp.NewToolResultError(fmt.Sprintf("Error: invalid arguments: %v", err))
	if fallback != nil {
		res.StructuredContent = fallback
	}
	return res
}
