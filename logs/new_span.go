package logs

import (
	"context"
	"crypto/rand"
)

// NewSpan starts a span named what and logs its creation with args. An
// empty parent means the span carried by ctx, if any.
type NewSpan func(ctx context.Context, parent Span, what string, args ...any) (context.Context, Span)

func (Module) NewSpan(
	logger Logger,
) NewSpan {
	return func(ctx context.Context, parent Span, what string, args ...any) (context.Context, Span) {
		creator, _ := ctx.Value(SpanKey).(Span)
		if parent == "" {
			parent = creator
		}

		span := Span(rand.Text())
		ctx = context.WithValue(ctx, SpanKey, span)

		attrs := append([]any{"what", what}, args...)
		if parent != "" {
			attrs = append(attrs, "parent", parent)
		}
		if creator != "" && creator != parent {
			attrs = append(attrs, "creator", creator)
		}
		logger.DebugContext(ctx, "span", attrs...)

		return ctx, span
	}
}
