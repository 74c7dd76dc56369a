package tools

import (
	"context"
	"fmt"

	"github.com/applitest/testrunner-mcp/pkg/domain"
	"github.com/applitest/testrunner-mcp/pkg/translate"
	"github.com/mark3labs/mcp-go/mcp"
)

// OpenSession handles the open-session tool.
//
// A successful open overwrites the registry even when another session is registered. The
// previous engine session is not closed; callers are expected to close it first.
func (d *Dispatcher) OpenSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args OpenSessionArgs
	if res := decodeArgs(request, OpenSessionSchema, &args, OpenSessionOutput{SessionType: domain.SessionWeb}); res != nil {
		return res, nil
	}

	sessionType, err := domain.ParseSessionType(args.Type)
	if err != nil {
		return invalidArgs(err, OpenSessionOutput{SessionType: domain.SessionWeb}), nil
	}
	browser := domain.Browser(args.Browser)

	if sessionType == domain.SessionWeb {
		if args.URL == "" {
			return textResult(
				OpenSessionOutput{SessionType: sessionType},
				"Error: Url must be provided to open a web session.",
			), nil
		}
		if browser == "" {
			browser = domain.DefaultBrowser
		}
	}

	details := fmt.Sprintf("Opening test runner session for URL \"%s\" using browser \"%s\"", args.URL, browser)

	result, err := d.engine.OpenSession(ctx, translate.OpenSession(sessionType, browser, args.URL))
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}

	out := OpenSessionOutput{SessionType: sessionType}
	if result.Success && result.SessionID != "" {
		if prev := d.registry.SetCurrent(result.SessionID, sessionType); prev != nil && prev.ID != result.SessionID {
			d.logger.Warn("Open session replaced a registered session without closing it",
				"previous_session_id", prev.ID,
				"session_id", result.SessionID,
			)
		}
		id := result.SessionID
		out.SessionID = &id
		details += fmt.Sprintf("\n\nSession successfully created for type %s with ID: %s !", sessionType, id)
		d.logger.Info("Session opened", "session_id", id, "session_type", sessionType, "browser", browser)
	} else {
		details += "\n\n" + failureText("Failed to create session", result.Message)
		d.logger.Info("Session open failed", "session_type", sessionType, "message", result.Message)
	}

	return textResult(out, details), nil
}
