/*
Package ports defines the driven ports (interfaces) of the test runner MCP server.

These interfaces decouple the tool dispatcher from the automation engine that actually
drives browsers, devices or API clients.

# Key Interfaces

  - Engine: open/close sessions, run a run configuration in a session, query trees.
*/
package ports
