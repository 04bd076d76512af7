package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campushq/campushub/internal/contexts"
)

func traceFields(ctx context.Context, msg string, fields ...Field) []Field {
	if traceID, ok := contexts.GetTraceID(ctx); ok {
		fields = append(fields, String("trace_id", traceID))
	}

	if operationName, ok := contexts.GetOperationName(ctx); ok {
		fields = append(fields, String("operation_name", operationName))
	}

	return fields
}

func TestTraceHook(t *testing.T) {
	hook := HookFunc(traceFields)

	t.Run("with trace ID", func(t *testing.T) {
		ctx := contexts.WithTraceID(context.Background(), "ch-test-trace-id")
		fields := hook.Apply(ctx, "test message")
		assert.Len(t, fields, 1)
		assert.Equal(t, "trace_id", fields[0].Key)
		assert.Equal(t, "ch-test-trace-id", fields[0].String)
	})

	t.Run("with operation name", func(t *testing.T) {
		ctx := contexts.WithOperationName(context.Background(), "test-operation-name")
		fields := hook.Apply(ctx, "test message")
		assert.Len(t, fields, 1)
		assert.Equal(t, "operation_name", fields[0].Key)
		assert.Equal(t, "test-operation-name", fields[0].String)
	})

	t.Run("with context that doesn't have trace ID", func(t *testing.T) {
		ctx := context.Background()
		fields := hook.Apply(ctx, "test message")
		assert.Empty(t, fields)
	})

	t.Run("preserves existing fields", func(t *testing.T) {
		ctx := contexts.WithTraceID(context.Background(), "ch-test-trace-id")
		fields := hook.Apply(ctx, "test message", Int("status", 200))
		assert.Len(t, fields, 2)
		assert.Equal(t, "status", fields[0].Key)
		assert.Equal(t, "trace_id", fields[1].Key)
	})
}

func TestLoggerAddHook(t *testing.T) {
	logger := New(Config{Level: "debug", Output: "stderr"})
	logger.AddHook(HookFunc(traceFields))

	ctx := contexts.WithTraceID(context.Background(), "ch-hooked")
	fields := logger.applyHooks(ctx, "msg", nil)
	assert.Len(t, fields, 1)
	assert.Equal(t, "trace_id", fields[0].Key)
}
