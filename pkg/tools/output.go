package tools

import "github.com/applitest/testrunner-mcp/pkg/domain"

// OpenSessionOutput is the structured result of open-session.
type OpenSessionOutput struct {
	SessionType domain.SessionType `json:"sessionType" jsonschema:"enum=web,enum=mobile,enum=api" jsonschema_description:"Type of the opened session"`
	SessionID   *string            `json:"sessionId" jsonschema:"nullable" jsonschema_description:"ID of the opened session"`
}

// AccessibilityTreeOutput is the structured result of get-accessibility-tree.
type AccessibilityTreeOutput struct {
	AxTree any `json:"axtree" jsonschema_description:"Accessibility tree object"`
}

// DOMTreeOutput is the structured result of get-dom-tree.
type DOMTreeOutput struct {
	DOMTree any `json:"domtree" jsonschema_description:"DOM tree object"`
}

// DoStepOutput is the structured result of do-step.
type DoStepOutput struct {
	Result bool `json:"result" jsonschema_description:"Result of the performed step"`
}
