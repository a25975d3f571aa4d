package requestctx

import "context"

type ctxKey int

const (
	requestIDKey ctxKey = iota
	idempotencyKey
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(orBackground(ctx), requestIDKey, requestID)
}

func RequestID(ctx context.Context) string {
	return stringValue(ctx, requestIDKey)
}

// WithIdempotencyKey carries the caller's Idempotency-Key down to gateway calls.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(orBackground(ctx), idempotencyKey, key)
}

func IdempotencyKey(ctx context.Context) string {
	return stringValue(ctx, idempotencyKey)
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

func stringValue(ctx context.Context, key ctxKey) string {
	if ctx == nil {
		return ""
	}
	if s, ok := ctx.Value(key).(string); ok {
		return s
	}
	return ""
}
