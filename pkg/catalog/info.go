package catalog

import (
	"fmt"
	"strings"
)

// Default server identity.
const (
	DefaultName        = "test-runner-proxy-server"
	DefaultDescription = "An MCP Test Runner Proxy server with tools, resources, and prompts"
)

// Info is the server metadata published by the dashboard and the /api/info endpoint.
type Info struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Tools       []string `json:"tools"`
	Resources   []string `json:"resources"`
	Prompts     []string `json:"prompts"`
}

// NewInfo builds Info from the static catalog.
func NewInfo(name, version string) Info {
	if name == "" {
		name = DefaultName
	}
	return Info{
		Name:        name,
		Version:     version,
		Description: DefaultDescription,
		Tools:       names(Tools),
		Resources:   names(Resources),
		Prompts:     names(Prompts),
	}
}

// ServerInfoText renders the plain-text body of the server-info resource.
func ServerInfoText(info Info) string {
	var b strings.Builder

	b.WriteString("Test Runner MCP Server\n")
	b.WriteString("======================\n\n")
	b.WriteString("This is an MCP (Model Context Protocol) server that provides:\n\n")
	b.WriteString("- Tools: tools for opening and operating test runner sessions\n")
	b.WriteString("- Resources: this information resource\n")
	b.WriteString("- Prompts: prompts for operating the server, from simple open/close session prompts to generating the steps of a full test\n\n")
	b.WriteString("This server acts as an entry point to the test runner, allowing agents to drive test runner sessions one step at a time.\n")

	writeSection(&b, "Available Tools", Tools)
	writeSection(&b, "Available Resources", Resources)
	writeSection(&b, "Available Prompts", Prompts)

	fmt.Fprintf(&b, "\nServer Version: %s\n", info.Version)
	b.WriteString("Protocol: Model Context Protocol")
	return b.String()
}

func writeSection(b *strings.Builder, title string, entries []Entry) {
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, e := range entries {
		fmt.Fprintf(b, "- %s: %s\n", e.Name, e.Summary)
	}
}
