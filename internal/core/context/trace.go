package context

import (
	"context"
)

// TraceContext identifies one API request in logs, error bodies and the
// X-Request-ID / X-Trace-ID response headers.
type TraceContext struct {
	TraceID   string
	RequestID string
	// Route is the matched route template (/api/v1/documents/incomes/:id),
	// empty when no route matched.
	Route string
}

type traceContextKey struct{}

// WithTrace stores the request trace in ctx.
func WithTrace(ctx context.Context, trace *TraceContext) context.Context {
	return context.WithValue(ctx, traceContextKey{}, trace)
}

// GetTrace returns the request trace, nil outside a request.
func GetTrace(ctx context.Context) *TraceContext {
	if v, ok := ctx.Value(traceContextKey{}).(*TraceContext); ok {
		return v
	}
	return nil
}

// GetRequestID returns the request id or empty string.
func GetRequestID(ctx context.Context) string {
	if t := GetTrace(ctx); t != nil {
		return t.RequestID
	}
	return ""
}

// Fields renders the trace as logger key-value pairs.
func (t *TraceContext) Fields() []any {
	fields := []any{"trace_id", t.TraceID, "request_id", t.RequestID}
	if t.Route != "" {
		fields = append(fields, "route", t.Route)
	}
	return fields
}
