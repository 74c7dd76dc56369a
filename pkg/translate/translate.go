// Package translate turns tool requests into the run configuration documents the automation
// engine executes.
package translate

import (
	"fmt"

	"github.com/applitest/testrunner-mcp/pkg/domain"
)

const (
	// StepSuiteName and StepTestName label the wrapper around ad-hoc steps so engine reports
	// can be traced back to the MCP server.
	StepSuiteName = "McpServer Do Step Suite"
	StepTestName  = "McpServer Do Step Test"

	// StartURLVariable is the variable populated with the landing page on open-session.
	StartURLVariable = "startUrl"
)

// Step wraps a single StepRequest into one suite holding one test holding one step.
//
// The command is copied verbatim. Optional fields are attached only when present, and a
// position equal to domain.PositionUnset is treated as absent.
func Step(req domain.StepRequest, sessionType domain.SessionType) domain.RunnerOptions {
	step := domain.Step{
		Command: req.Command,
	}

	if len(req.Selectors) > 0 {
		step.Selectors = append([]string(nil), req.Selectors...)
	}

	if req.Value != "" {
		step.Value = req.Value
	}

	step.Position = domain.NormalizePosition(req.Position)

	if req.Operator != "" {
		step.Operator = req.Operator
	}

	if sessionType == "" {
		sessionType = domain.SessionWeb
	}

	return domain.RunnerOptions{
		Variables: map[string]string{},
		Suites: []domain.Suite{{
			Name: StepSuiteName,
			Tests: []domain.Test{{
				Name:  StepTestName,
				Type:  sessionType,
				Steps: []domain.Step{step},
			}},
		}},
		Functions: []any{},
		APIs:      []any{},
	}
}

// OpenSession builds the minimal run configuration for opening one session.
// Browser and URL are forwarded as given; defaulting happens in the dispatcher.
func OpenSession(sessionType domain.SessionType, browser domain.Browser, url string) domain.RunnerOptions {
	variables := map[string]string{}
	if url != "" {
		variables[StartURLVariable] = url
	}

	sessionCfg := domain.SessionConfig{Type: sessionType}
	if browser != "" || url != "" {
		sessionCfg.Browser = &domain.BrowserConfig{
			Name:     browser,
			StartURL: url,
		}
	}

	return domain.RunnerOptions{
		RunConfiguration: &domain.RunConfiguration{
			Sessions: []domain.SessionConfig{sessionCfg},
			RunType:  sessionType,
			RunName:  fmt.Sprintf("McpServer Open Session for URL: %s", url),
		},
		Variables: variables,
		Suites:    []domain.Suite{},
		Functions: []any{},
		APIs:      []any{},
	}
}
