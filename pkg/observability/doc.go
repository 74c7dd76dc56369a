/*
Package observability instruments the server with Prometheus metrics and OpenTelemetry traces.

Metrics are registered on a caller supplied registerer so that tests and embedded servers can
use their own registry. InstrumentEngine wraps any ports.Engine with a span and metric pair per
engine call; ToolMiddleware does the same for MCP tool handlers.
*/
package observability
