package tools

import (
	"fmt"

	"github.com/applitest/testrunner-mcp/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// ValidateSession checks sessionID against the registry.
//
// On mismatch it returns a complete tool response: a text item naming the identifier and,
// when fallback is non-nil, fallback as structured content so consumers reading only the
// structured half still receive every declared key.
func ValidateSession(registry *session.Registry, sessionID string, fallback any) (*mcp.CallToolResult, bool) {
	if registry.IsCurrent(sessionID) {
		return nil, true
	}

	res := &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(fmt.Sprintf("Error: Session ID \"%s\" does not match the current open session.", sessionID)),
		},
	}
	if fallback != nil {
		res.StructuredContent = fallback
	}
	return res, false
}
