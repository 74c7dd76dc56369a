/*
Package testrunner is an MCP server that lets AI agents drive a browser test runner one step
at a time.

Agents open a session, inspect the page through its accessibility or DOM tree, perform steps
(click, input-text, assertions, ...) and close the session. The server keeps track of the one
session it considers current and rejects calls that name any other session.

# Architecture

The core is engine-agnostic:

  - pkg/session holds the current session slot.
  - pkg/translate converts tool arguments into run configuration documents.
  - pkg/tools validates arguments and session identifiers, calls the engine and shapes results.

Engines implement ports.Engine. pkg/adapters/playwright drives real browsers through
playwright-go; pkg/adapters/memory is a scripted engine for dry runs and tests.

# Transports

The cmd/testrunner-mcp binary serves MCP over stdio (the default) or over HTTP, where the
streamable transport is mounted at /mcp and the SSE transport at /sse and /message:

	testrunner-mcp stdio
	testrunner-mcp serve --port 3000
	testrunner-mcp info
*/
package testrunner
