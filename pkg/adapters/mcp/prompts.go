package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/applitest/testrunner-mcp/pkg/catalog"
	"github.com/applitest/testrunner-mcp/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
)

type promptArg struct {
	name        string
	description string
	required    bool
}

type promptTemplate struct {
	name   string
	args   []promptArg
	render func(args map[string]string) string
}

var promptTemplates = []promptTemplate{
	{
		name: catalog.PromptOpenSession,
		args: []promptArg{
			{"url", "URL to open in browser", true},
			{"browser", "Browser to use for the session (e.g., chrome, firefox, edge)", false},
		},
		render: func(args map[string]string) string {
			browser := args["browser"]
			if browser == "" {
				browser = string(domain.DefaultBrowser)
			}
			return fmt.Sprintf("Please open a session for %s in %s.", args["url"], browser)
		},
	},
	{
		name: catalog.PromptCloseSession,
		args: []promptArg{
			{"sessionId", "ID of the session to close", true},
		},
		render: func(args map[string]string) string {
			return fmt.Sprintf("Please close the session with ID %s.", args["sessionId"])
		},
	},
	{
		name: catalog.PromptGetAccessibilityTree,
		args: []promptArg{
			{"sessionId", "ID of the session to get accessibility tree from", true},
			{"selector", "CSS or XPATH selector to get accessibility tree for a specific element", false},
		},
		render: func(args map[string]string) string {
			return treePrompt("accessibility tree", args)
		},
	},
	{
		name: catalog.PromptGetDOMTree,
		args: []promptArg{
			{"sessionId", "ID of the session to get DOM tree from", true},
			{"selector", "CSS selector to get DOM tree for a specific element", false},
		},
		render: func(args map[string]string) string {
			return treePrompt("DOM tree", args)
		},
	},
	{
		name: catalog.PromptGenerateTestSteps,
		args: []promptArg{
			{"scenario", "User scenario as a JSON string representing an array of steps and expected results", true},
		},
		render: func(args map[string]string) string {
			var b strings.Builder
			fmt.Fprintf(&b, "Please generate test steps based on the following user scenario: \n%s\n\n", args["scenario"])
			b.WriteString(`The output should be a JSON array in following format: [{note: "step name", command: "command", selectors: ["selector"], value: "value", operator: "operator"}] where:` + "\n")
			b.WriteString("- selectors: it should include only tested selectors\n")
			b.WriteString("- value: value to use in the step (if applicable)\n")
			b.WriteString("- operator: operator to use in the step (if applicable)\n")
			b.WriteString("Notes:\n")
			b.WriteString("- In order to analyze page, 2 tools are available: get-accessibility-tree (priority) and get-dom-tree\n")
			b.WriteString("- Selectors priority: aria (e.g. aria/XXX), text bound (e.g. h1=XXX, =XXX), generic XPath (e.g. //h1, //tr/td[2]), CSS\n")
			fmt.Fprintf(&b, "- Reference for the available steps' commands can be found at: %s.\n", catalog.StepCommandsURL)
			b.WriteString("- In case you need additional information to perform a task, please ask user for more details.\n")
			b.WriteString("- In all steps property fields (selectors, value) it is possible to use dynamic variable in format {{variable_name}} that will be replaced at runtime with the actual variable value.\n")
			b.WriteString("- In case you need to keep state between steps (e.g. value of search result, clicked text, etc..), please make sure to use variables and associated command to store the state and use it in the following steps.\n")
			b.WriteString("- In case of navigation or redirection, please make sure to add steps validating page was loaded successfully (e.g. validate page title, validate current url, validate specific element is present such as logo, etc...)\n")
			b.WriteString("- Assertion priority is: check on page/dom (e.g. assert-is-displayed, assert-text, etc...), check on accessibility tree (assert-accessibility-tree) as fallback.\n")
			b.WriteString("- Make sure to add all necessary assertions to validate expected result provided in scenario (i.e. element is displayed and its value is correct one).\n")
			return b.String()
		},
	},
	{
		name: catalog.PromptGenerateTestScenario,
		args: []promptArg{
			{"requirements", "high level requirements for a test scenario", true},
		},
		render: func(args map[string]string) string {
			var b strings.Builder
			fmt.Fprintf(&b, "Please generate a detailed test scenario based on the following high level requirements: \n%s\n\n", args["requirements"])
			b.WriteString("The output should be a JSON object representing the test scenario with following format: [{ step: 'steps details', expected: 'expected outcomes'}].\n")
			b.WriteString("Notes:\n")
			b.WriteString("- Make sure to cover all aspects of the requirements in the scenario.\n")
			b.WriteString(`- Use clear and descriptive step details, it can include multiple actions (e.g. Login, then Navigate to, etc..) and use conceptual actions, not detailed interactions (e.g. simply "Login" instead of "Enter username", "Enter password", "Click login")` + "\n")
			b.WriteString("- Include in expected outcome all the necessary checks to validate completion.\n")
			return b.String()
		},
	},
}

func treePrompt(tree string, args map[string]string) string {
	text := fmt.Sprintf("Please get the %s for current page using session ID %s", tree, args["sessionId"])
	if sel := args["selector"]; sel != "" {
		text += fmt.Sprintf(" and specifically for selector %s and its children", sel)
	}
	return text + "."
}

func (s *Server) registerPrompts() {
	for _, tmpl := range promptTemplates {
		info := entry(catalog.Prompts, tmpl.name)

		opts := []mcp.PromptOption{mcp.WithPromptDescription(info.Description)}
		for _, a := range tmpl.args {
			argOpts := []mcp.ArgumentOption{mcp.ArgumentDescription(a.description)}
			if a.required {
				argOpts = append(argOpts, mcp.RequiredArgument())
			}
			opts = append(opts, mcp.WithArgument(a.name, argOpts...))
		}

		render := tmpl.render
		s.mcpServer.AddPrompt(mcp.NewPrompt(tmpl.name, opts...),
			func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
				return mcp.NewGetPromptResult(info.Title, []mcp.PromptMessage{
					mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(render(request.Params.Arguments))),
				}), nil
			})
	}
}
