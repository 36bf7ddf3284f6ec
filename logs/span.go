package logs

// Span tags the records of one unit of work, such as a REPL session.
type Span string

type spanKey struct{}

var SpanKey = spanKey{}
