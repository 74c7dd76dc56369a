package domain

// RunnerOptions is the run configuration document handed to the automation engine.
// Its JSON shape follows the engine's own schema.
type RunnerOptions struct {
	RunConfiguration *RunConfiguration `json:"runConfiguration,omitempty"`
	Variables        map[string]string `json:"variables"`
	Suites           []Suite           `json:"suites"`
	Functions        []any             `json:"functions"`
	APIs             []any             `json:"apis"`
}

// RunConfiguration carries session descriptors used when opening a session.
type RunConfiguration struct {
	Sessions []SessionConfig `json:"sessions"`
	RunType  SessionType     `json:"runType"`
	RunName  string          `json:"runName"`
}

// SessionConfig describes one session the engine should open.
type SessionConfig struct {
	Type    SessionType    `json:"type"`
	Browser *BrowserConfig `json:"browser,omitempty"`
}

// BrowserConfig selects the browser and its landing page.
type BrowserConfig struct {
	Name     Browser `json:"name,omitempty"`
	StartURL string  `json:"startUrl,omitempty"`
}

// Suite is the engine's unit of execution.
type Suite struct {
	Name  string `json:"name"`
	Tests []Test `json:"tests"`
}

// Test groups steps run against one session type.
type Test struct {
	Name  string      `json:"name"`
	Type  SessionType `json:"type"`
	Steps []Step      `json:"steps"`
}

// Step is one atomic automation action. Optional fields are omitted when absent.
type Step struct {
	Command   string   `json:"command"`
	Selectors []string `json:"selectors,omitempty"`
	Position  *int     `json:"position,omitempty"`
	Value     string   `json:"value,omitempty"`
	Operator  string   `json:"operator,omitempty"`
}

// Steps flattens every step of every test of every suite, in order.
func (o RunnerOptions) Steps() []Step {
	var steps []Step
	for _, suite := range o.Suites {
		for _, test := range suite.Tests {
			steps = append(steps, test.Steps...)
		}
	}
	return steps
}
