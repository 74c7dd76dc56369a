package tools

import (
	"context"
	"fmt"

	"github.com/applitest/testrunner-mcp/pkg/domain"
	"github.com/applitest/testrunner-mcp/pkg/translate"
	"github.com/mark3labs/mcp-go/mcp"
)

// DoStep handles the do-step tool.
//
// The test type comes from the registry, never from the caller: only the registry knows the
// type of the live session.
func (d *Dispatcher) DoStep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fallback := DoStepOutput{Result: false}

	var args DoStepArgs
	if res := decodeArgs(request, DoStepSchema, &args, fallback); res != nil {
		return res, nil
	}
	if res, ok := ValidateSession(d.registry, args.SessionID, fallback); !ok {
		return res, nil
	}

	sessionType, ok := d.registry.CurrentType()
	if !ok {
		sessionType = domain.SessionWeb
	}

	details := fmt.Sprintf("Performing step in session ID \"%s\"", args.SessionID)

	runData := translate.Step(args.StepRequest(), sessionType)
	result, err := d.engine.RunSession(ctx, args.SessionID, runData)
	if err != nil {
		return nil, fmt.Errorf("run step: %w", err)
	}

	if !result.Success {
		msg := result.Message
		if msg == "" {
			msg = "Unknown error"
		}
		details += "\n\nFailed to execute step: " + msg
		d.logger.Info("Step failed", "session_id", args.SessionID, "command", args.Command, "message", msg)
		return textResult(fallback, details), nil
	}

	details += "\n\nStep executed successfully!"
	d.logger.Info("Step executed", "session_id", args.SessionID, "command", args.Command)
	return textResult(DoStepOutput{Result: true}, details), nil
}
