package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// CloseSession handles the close-session tool. It declares no output schema, so failures
// carry no structured content.
func (d *Dispatcher) CloseSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args CloseSessionArgs
	if res := decodeArgs(request, CloseSessionSchema, &args, nil); res != nil {
		return res, nil
	}

	if res, ok := ValidateSession(d.registry, args.SessionID, nil); !ok {
		return res, nil
	}

	details := fmt.Sprintf("Closing test runner session with ID \"%s\"", args.SessionID)

	result, err := d.engine.CloseSession(ctx, args.SessionID)
	if err != nil {
		return nil, fmt.Errorf("close session: %w", err)
	}

	if result.Success {
		d.registry.ClearCurrent()
		details += "\n\nSession successfully closed!"
		d.logger.Info("Session closed", "session_id", args.SessionID)
	} else {
		details += "\n\n" + failureText("Failed to close session", result.Message)
		d.logger.Info("Session close failed", "session_id", args.SessionID, "message", result.Message)
	}

	return textResult(nil, details), nil
}
