package playwright

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAriaSnapshot(t *testing.T) {
	snapshot := `- heading "Example Domain" [level=1]
- paragraph: This domain is for use in illustrative examples.
- link "More information...":
  - /url: https://www.iana.org/domains/example`

	tree := parseAriaSnapshot(snapshot)

	raw, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		"heading \"Example Domain\" [level=1]",
		{"paragraph": "This domain is for use in illustrative examples."},
		{"link \"More information...\"": [{"/url": "https://www.iana.org/domains/example"}]}
	]`, string(raw))
}

func TestParseAriaSnapshot_Fallbacks(t *testing.T) {
	assert.Equal(t, []any{}, parseAriaSnapshot("  "))

	broken := "- button \"a\":\n\t- bad indent"
	assert.Equal(t, broken, parseAriaSnapshot(broken))
}
