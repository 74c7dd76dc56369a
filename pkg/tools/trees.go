package tools

import (
	"context"
	"fmt"

	"github.com/applitest/testrunner-mcp/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
)

// GetAccessibilityTree handles the get-accessibility-tree tool.
func (d *Dispatcher) GetAccessibilityTree(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fallback := AccessibilityTreeOutput{}

	var args AccessibilityTreeArgs
	if res := decodeArgs(request, AccessibilityTreeSchema, &args, fallback); res != nil {
		return res, nil
	}
	if res, ok := ValidateSession(d.registry, args.SessionID, fallback); !ok {
		return res, nil
	}

	details := fmt.Sprintf("Retrieving accessibility tree for session ID [%s]", args.SessionID)

	result, err := d.engine.AccessibilityTree(ctx, args.SessionID, args.Selector)
	if err != nil {
		return nil, fmt.Errorf("get accessibility tree: %w", err)
	}

	if !result.Success {
		details += "\n\n" + failureText("Failed to retrieve accessibility tree", result.Message)
		return textResult(fallback, details), nil
	}

	details += "\n\nAccessibility tree retrieved successfully!!"
	return textResult(AccessibilityTreeOutput{AxTree: result.Tree}, details, prettyJSON(result.Tree)), nil
}

// GetDOMTree handles the get-dom-tree tool. Depth defaults to domain.DefaultDOMDepth and is
// otherwise passed to the engine unchanged.
func (d *Dispatcher) GetDOMTree(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fallback := DOMTreeOutput{}

	var args DOMTreeArgs
	if res := decodeArgs(request, DOMTreeSchema, &args, fallback); res != nil {
		return res, nil
	}
	if res, ok := ValidateSession(d.registry, args.SessionID, fallback); !ok {
		return res, nil
	}

	depth := domain.DefaultDOMDepth
	if args.Depth != nil {
		depth = *args.Depth
	}

	details := fmt.Sprintf("Retrieving DOM tree for session ID [%s]", args.SessionID)

	result, err := d.engine.DOMTree(ctx, args.SessionID, depth, args.Selector)
	if err != nil {
		return nil, fmt.Errorf("get dom tree: %w", err)
	}

	if !result.Success {
		details += "\n\n" + failureText("Failed to retrieve DOM tree", result.Message)
		return textResult(fallback, details), nil
	}

	details += "\n\nDOM tree retrieved successfully!!"
	return textResult(DOMTreeOutput{DOMTree: result.Tree}, details, prettyJSON(result.Tree)), nil
}
