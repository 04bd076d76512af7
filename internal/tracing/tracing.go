package tracing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/campushq/campushub/internal/contexts"
)

type Config struct {
	// TraceHeader is the inbound header carrying a caller-provided trace id.
	TraceHeader string `conf:"trace_header" yaml:"trace_header" json:"trace_header"`
	// RequestHeader is the response header carrying the generated request id.
	RequestHeader string `conf:"request_header" yaml:"request_header" json:"request_header"`
	// ExtraTraceHeaders are additional headers consulted when TraceHeader is absent.
	ExtraTraceHeaders []string `conf:"extra_trace_headers" yaml:"extra_trace_headers" json:"extra_trace_headers"`
}

// GenerateTraceID generates a trace id, formatted as ch-{{uuid}}.
func GenerateTraceID() string {
	id := uuid.New()
	return fmt.Sprintf("ch-%s", id.String())
}

// GenerateRequestID generates a request id, formatted as chr-{{uuid}}.
func GenerateRequestID() string {
	id := uuid.New()
	return fmt.Sprintf("chr-%s", id.String())
}

// WithTraceID stores the trace id to context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return contexts.WithTraceID(ctx, traceID)
}

// GetTraceID gets the trace id from context.
func GetTraceID(ctx context.Context) (string, bool) {
	return contexts.GetTraceID(ctx)
}

// WithRequestID stores the request id to context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return contexts.WithRequestID(ctx, requestID)
}

// GetRequestID gets the request id from context.
func GetRequestID(ctx context.Context) (string, bool) {
	return contexts.GetRequestID(ctx)
}

// WithOperationName stores the operation name to context.
func WithOperationName(ctx context.Context, name string) context.Context {
	return contexts.WithOperationName(ctx, name)
}

// GetOperationName gets the operation name from context.
func GetOperationName(ctx context.Context) (string, bool) {
	return contexts.GetOperationName(ctx)
}
