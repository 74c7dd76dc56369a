/*
Package tools implements the handlers behind the five MCP tools.

Every handler follows the same rule: business failures (a session identifier that does not
match the registry, a missing precondition, an engine reporting success=false, malformed
arguments) come back as a normal *mcp.CallToolResult carrying an explanation and a typed
structured payload. Only an error returned by the engine itself is propagated as a Go error,
which the transport turns into a JSON-RPC error.
*/
package tools
