package playwright

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// parseAriaSnapshot turns a Playwright aria snapshot (a YAML document) into a nested value.
// Snapshots that do not parse are returned as the raw string.
func parseAriaSnapshot(snapshot string) any {
	if strings.TrimSpace(snapshot) == "" {
		return []any{}
	}

	var tree any
	if err := yaml.Unmarshal([]byte(snapshot), &tree); err != nil || tree == nil {
		return snapshot
	}
	return tree
}
