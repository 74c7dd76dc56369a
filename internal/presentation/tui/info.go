package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/applitest/testrunner-mcp/pkg/catalog"
)

// InfoMarkdown renders the server catalog as Markdown.
func InfoMarkdown(info catalog.Info) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s `%s`\n\n%s\n", info.Name, info.Version, info.Description)

	section := func(title string, entries []catalog.Entry) {
		fmt.Fprintf(&b, "\n## %s\n\n| Name | Description |\n|---|---|\n", title)
		for _, e := range entries {
			fmt.Fprintf(&b, "| `%s` | %s |\n", e.Name, e.Summary)
		}
	}
	section("Tools", catalog.Tools)
	section("Resources", catalog.Resources)
	section("Prompts", catalog.Prompts)

	fmt.Fprintf(&b, "\nStep commands: %s\n", catalog.StepCommandsURL)
	return b.String()
}

// RenderInfo writes the server information to w. Styled output adds the banner and
// glamour rendering; plain output is the server-info resource text.
func RenderInfo(w io.Writer, info catalog.Info, styled bool) error {
	if !styled {
		_, err := fmt.Fprintln(w, catalog.ServerInfoText(info))
		return err
	}

	render, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	out, err := render(InfoMarkdown(info))
	if err != nil {
		return fmt.Errorf("render info: %w", err)
	}

	PrintBanner(w)
	_, err = io.WriteString(w, out)
	return err
}
