package forteparse

import "fmt"

type ParseError struct {
	Line    int
	Column  int
	Message string
}

func newError(line, col int, msg string) *ParseError {
	return &ParseError{
		Line:    line,
		Column:  col,
		Message: msg,
	}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("at %d:%d: %s", e.Line, e.Column, e.Message)
}
