package observability

import (
	"context"
	"time"

	"github.com/applitest/testrunner-mcp/pkg/domain"
	"github.com/applitest/testrunner-mcp/pkg/ports"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type instrumentedEngine struct {
	next    ports.Engine
	metrics *Metrics
	tracer  trace.Tracer
}

// InstrumentEngine wraps next so that every call records a span and engine metrics.
// A nil tracer uses Tracer().
func InstrumentEngine(next ports.Engine, metrics *Metrics, tracer trace.Tracer) ports.Engine {
	if tracer == nil {
		tracer = Tracer()
	}
	return &instrumentedEngine{next: next, metrics: metrics, tracer: tracer}
}

func (e *instrumentedEngine) observe(ctx context.Context, op, sessionID string, call func(context.Context) (domain.SessionResult, error)) (domain.SessionResult, error) {
	ctx, span := e.tracer.Start(ctx, "engine."+op, trace.WithAttributes(AttrOperation.String(op)))
	defer span.End()

	start := time.Now()
	res, err := call(ctx)
	elapsed := time.Since(start)

	outcome := OutcomeOK
	switch {
	case err != nil:
		outcome = OutcomeError
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case !res.Success:
		outcome = OutcomeFailed
	}

	if sessionID == "" {
		sessionID = res.SessionID
	}
	if sessionID != "" {
		span.SetAttributes(AttrSessionID.String(sessionID))
	}
	span.SetAttributes(AttrOutcome.String(outcome))

	if e.metrics != nil {
		e.metrics.EngineCalls.WithLabelValues(op, outcome).Inc()
		e.metrics.EngineDuration.WithLabelValues(op).Observe(elapsed.Seconds())
	}
	return res, err
}

func (e *instrumentedEngine) OpenSession(ctx context.Context, opts domain.RunnerOptions) (domain.SessionResult, error) {
	return e.observe(ctx, "open_session", "", func(ctx context.Context) (domain.SessionResult, error) {
		return e.next.OpenSession(ctx, opts)
	})
}

func (e *instrumentedEngine) CloseSession(ctx context.Context, sessionID string) (domain.SessionResult, error) {
	return e.observe(ctx, "close_session", sessionID, func(ctx context.Context) (domain.SessionResult, error) {
		return e.next.CloseSession(ctx, sessionID)
	})
}

func (e *instrumentedEngine) RunSession(ctx context.Context, sessionID string, opts domain.RunnerOptions) (domain.SessionResult, error) {
	return e.observe(ctx, "run_session", sessionID, func(ctx context.Context) (domain.SessionResult, error) {
		return e.next.RunSession(ctx, sessionID, opts)
	})
}

func (e *instrumentedEngine) AccessibilityTree(ctx context.Context, sessionID, selector string) (domain.SessionResult, error) {
	return e.observe(ctx, "accessibility_tree", sessionID, func(ctx context.Context) (domain.SessionResult, error) {
		return e.next.AccessibilityTree(ctx, sessionID, selector)
	})
}

func (e *instrumentedEngine) DOMTree(ctx context.Context, sessionID string, depth int, selector string) (domain.SessionResult, error) {
	return e.observe(ctx, "dom_tree", sessionID, func(ctx context.Context) (domain.SessionResult, error) {
		return e.next.DOMTree(ctx, sessionID, depth, selector)
	})
}
