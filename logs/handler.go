package logs

import (
	"context"
	"log/slog"
)

// Handler tags records with the span carried by the context.
type Handler struct {
	slog.Handler
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if v := ctx.Value(SpanKey); v != nil {
		record.Add("span", v.(Span))
	}
	return h.Handler.Handle(ctx, record)
}

// keep the wrapper on derived loggers, or With() drops span tagging
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{
		Handler: h.Handler.WithAttrs(attrs),
	}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{
		Handler: h.Handler.WithGroup(name),
	}
}
