package fortevm

import "fmt"

type RuntimeError string

func (e RuntimeError) Error() string {
	return string(e)
}

const (
	ErrStackUnderflow    = RuntimeError("stack underflow")
	ErrIO                = RuntimeError("io error")
	ErrDivisionByZero    = RuntimeError("division by zero")
	ErrLoopUnderflow     = RuntimeError("loop exit without active loop")
	ErrUnmatchedBracket  = RuntimeError("unmatched loop bracket")
	ErrCallStackOverflow = RuntimeError("call stack overflow")
)

// Fault records where an instruction failed.
type Fault struct {
	Err error
	IP  int
	Op  OpCode
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%v at %d (%v)", f.Err, f.IP, f.Op)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

func ioError(err error) error {
	return fmt.Errorf("%w: %w", ErrIO, err)
}
