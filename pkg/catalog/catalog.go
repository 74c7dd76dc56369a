// Package catalog declares the tools, resources and prompts the server exposes.
//
// The catalog is static: registration at startup, the server-info resource, the HTTP
// dashboard and the info command all read from it so they cannot drift apart.
package catalog

// Tool names.
const (
	ToolOpenSession          = "open-session"
	ToolCloseSession         = "close-session"
	ToolGetAccessibilityTree = "get-accessibility-tree"
	ToolGetDOMTree           = "get-dom-tree"
	ToolDoStep               = "do-step"
)

// Resource names and URIs.
const (
	ResourceServerInfo    = "server-info"
	ResourceServerInfoURI = "test-runner://info"
)

// Prompt names.
const (
	PromptOpenSession          = "open-session-prompt"
	PromptCloseSession         = "close-session-prompt"
	PromptGetAccessibilityTree = "get-accessibility-tree-prompt"
	PromptGetDOMTree           = "get-dom-tree-prompt"
	PromptGenerateTestSteps    = "generate-test-steps-prompt"
	PromptGenerateTestScenario = "generate-test-scenario-prompt"
)

// StepCommandsURL documents the step command vocabulary understood by the engine.
const StepCommandsURL = "https://raw.githubusercontent.com/Applitest-co-il/test-runner/main/docs/step-commands.md"

// Entry describes one capability.
type Entry struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	// Summary is the one-line form used in listings.
	Summary string `json:"-"`
}

// Tools lists every tool in registration order.
var Tools = []Entry{
	{
		Name:  ToolOpenSession,
		Title: "Open Session Tool",
		Description: "Open a local test runner session for a given URL and browser:\n" +
			`- If type is "web", a web session will be opened with indicated browser` + "\n" +
			`- If type is "mobile", a mobile session will be opened. It will connect to the locally running appium session and simulator` + "\n" +
			`- If type is "api", an API session will be opened` + "\n" +
			"Note: only one session can be open at a time; opening a new session replaces the previous one, close it first to release its resources.",
		Summary: "Opens a test runner session",
	},
	{
		Name:        ToolCloseSession,
		Title:       "Close Session Tool",
		Description: "Close a test runner session",
		Summary:     "Closes a test runner session",
	},
	{
		Name:        ToolGetAccessibilityTree,
		Title:       "Get Accessibility Tree Tool",
		Description: "Retrieve the accessibility tree for current page or part of it (based on provided CSS selector)",
		Summary:     "Retrieves the accessibility tree for the current page or part of it (based on provided selector)",
	},
	{
		Name:        ToolGetDOMTree,
		Title:       "Get DOM Tree Tool",
		Description: "Retrieve the DOM tree for current page or part of it (based on provided selector)",
		Summary:     "Retrieves the DOM tree for the current page or part of it (based on provided CSS selector)",
	},
	{
		Name:  ToolDoStep,
		Title: "Do Step Tool",
		Description: "Perform a step action in the test runner session. A few notes about this tool:\n" +
			"- The command should be a valid command recognized by the test runner (e.g., click, item-select, input-text, etc...). Full list can be found at " + StepCommandsURL + "\n" +
			"- The selector is optional but recommended to specify the target element for the action. The order of preference for selector type should be: ARIA (e.g. aria/Submit), content based (e.g. button=Submit), xpath, css\n" +
			"- The position is optional and may be required if the selector matches multiple elements\n" +
			"- The value is optional and may be required for certain commands (e.g., input-text requires a value to input)\n" +
			"- The operator is optional and may be used to alter the command (e.g. comparison type in assertions, execute type for javascript, etc...)\n",
		Summary: "Performs a step action in the test runner session",
	},
}

// Resources lists every resource.
var Resources = []Entry{
	{
		Name:        ResourceServerInfo,
		Title:       "Server Information",
		Description: "Information about this test runner MCP server",
		Summary:     "Provides information about this MCP server",
	},
}

// Prompts lists every prompt template.
var Prompts = []Entry{
	{
		Name:        PromptOpenSession,
		Title:       "Open Session Prompt",
		Description: "Open a session for a given URL and optionally browser",
		Summary:     "Prompt to open a test runner session",
	},
	{
		Name:        PromptCloseSession,
		Title:       "Close Session Prompt",
		Description: "Close a session for a given session ID",
		Summary:     "Prompt to close a test runner session",
	},
	{
		Name:        PromptGetAccessibilityTree,
		Title:       "Get Accessibility Tree Prompt",
		Description: "Get the accessibility tree for current page or provided selector",
		Summary:     "Prompt to get the accessibility tree for the current page or provided selector",
	},
	{
		Name:        PromptGetDOMTree,
		Title:       "Get DOM Tree Prompt",
		Description: "Get the DOM tree for current page or provided selector",
		Summary:     "Prompt to get the DOM tree for the current page or provided selector",
	},
	{
		Name:        PromptGenerateTestSteps,
		Title:       "Generate Test Steps Prompt",
		Description: `Generate test steps based on user scenario - scenario should be provided as a json object: [{step: "step", expected: "expected result"}]`,
		Summary:     "Prompt to generate test steps based on a user scenario",
	},
	{
		Name:        PromptGenerateTestScenario,
		Title:       "Generate Test Scenario Prompt",
		Description: "Generate a detailed test scenario based on user high level requirements - requirements should be provided as a text description",
		Summary:     "Prompt to generate a detailed test scenario from high level requirements",
	},
}

// Lookup finds an entry by name in entries.
func Lookup(entries []Entry, name string) (Entry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

func names(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}
