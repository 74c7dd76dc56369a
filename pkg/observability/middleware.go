package observability

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ToolMiddleware records a span and tool metrics around every tool handler.
// Argument-schema rejections (IsError results) count as invalid.
func ToolMiddleware(metrics *Metrics, tracer trace.Tracer) server.ToolHandlerMiddleware {
	if tracer == nil {
		tracer = Tracer()
	}

	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			tool := request.Params.Name
			ctx, span := tracer.Start(ctx, "tool."+tool, trace.WithAttributes(AttrTool.String(tool)))
			defer span.End()

			start := time.Now()
			res, err := next(ctx, request)
			elapsed := time.Since(start)

			outcome := OutcomeOK
			switch {
			case err != nil:
				outcome = OutcomeError
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			case res != nil && res.IsError:
				outcome = OutcomeInvalid
			}
			span.SetAttributes(AttrOutcome.String(outcome))

			if metrics != nil {
				metrics.ToolCalls.WithLabelValues(tool, outcome).Inc()
				metrics.ToolDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
			}
			return res, err
		}
	}
}
