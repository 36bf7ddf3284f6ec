package logs

import (
	"context"
	"fmt"
)

// SpanError is an error annotated with the span it happened in.
type SpanError struct {
	Err  error
	Span Span
}

func (s *SpanError) Error() string {
	return fmt.Sprintf("%v (span %s)", s.Err, s.Span)
}

func (s *SpanError) Unwrap() error {
	return s.Err
}

// WrapSpan annotates err with the span of ctx. Errors outside any span are
// returned as is.
func WrapSpan(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	v := ctx.Value(SpanKey)
	if v == nil {
		return err
	}
	return &SpanError{
		Err:  err,
		Span: v.(Span),
	}
}
