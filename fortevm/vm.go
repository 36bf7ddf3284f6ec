package fortevm

import (
	"bufio"
	"encoding/gob"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
)

// Terminated is the instruction pointer value that stops execution.
const Terminated = -1

const DefaultMaxCallDepth = 1 << 16

type VM struct {
	Code       []OpCode
	IP         int
	Stack      []int32
	CallStack  []int
	LoopStack  []uint32
	Dictionary map[int32]int

	in           io.ByteReader
	out          *bufio.Writer
	logger       *slog.Logger
	maxCallDepth int
}

type Option func(*VM)

func WithInput(r io.Reader) Option {
	return func(v *VM) {
		if br, ok := r.(io.ByteReader); ok {
			v.in = br
		} else {
			v.in = bufio.NewReader(r)
		}
	}
}

func WithOutput(w io.Writer) Option {
	return func(v *VM) {
		v.out = bufio.NewWriter(w)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(v *VM) {
		v.logger = logger
	}
}

func WithMaxCallDepth(n int) Option {
	return func(v *VM) {
		if n > 0 {
			v.maxCallDepth = n
		}
	}
}

func NewVM(options ...Option) *VM {
	v := &VM{
		Stack:        make([]int32, 0, 64),
		CallStack:    make([]int, 0, 16),
		LoopStack:    make([]uint32, 0, 16),
		Dictionary:   make(map[int32]int),
		maxCallDepth: DefaultMaxCallDepth,
	}
	for _, option := range options {
		option(v)
	}
	if v.in == nil {
		v.in = bufio.NewReader(os.Stdin)
	}
	if v.out == nil {
		v.out = bufio.NewWriter(os.Stdout)
	}
	return v
}

// Load returns a fresh machine positioned at the start of program.
func Load(program Program, options ...Option) *VM {
	v := NewVM(options...)
	v.Code = slices.Clone(program.Code)
	return v
}

// Extend appends program to the code. Runtime state is kept, so a
// following Run starts at the first appended instruction.
func (v *VM) Extend(program Program) {
	v.Code = append(v.Code, program.Code...)
}

// Unwind drops pending calls and loops and moves the instruction pointer
// past the current code. The operand stack and dictionary survive.
func (v *VM) Unwind() {
	if v.logger != nil {
		v.logger.Info("unwind",
			"ip", v.IP,
			"calls", len(v.CallStack),
			"loops", len(v.LoopStack),
		)
	}
	v.CallStack = v.CallStack[:0]
	v.LoopStack = v.LoopStack[:0]
	v.IP = len(v.Code)
}

// Reset clears all runtime state but keeps the code.
func (v *VM) Reset() {
	v.Stack = v.Stack[:0]
	v.CallStack = v.CallStack[:0]
	v.LoopStack = v.LoopStack[:0]
	clear(v.Dictionary)
	v.IP = len(v.Code)
}

// Done reports whether no instruction is left to execute.
func (v *VM) Done() bool {
	return v.IP < 0 || v.IP >= len(v.Code)
}

func (v *VM) Program() Program {
	return Program{
		Code: slices.Clone(v.Code),
	}
}

func (v *VM) Inspect() map[string]any {
	dict := make(map[int32]int, len(v.Dictionary))
	maps.Copy(dict, v.Dictionary)
	return map[string]any{
		"ip":         v.IP,
		"stack":      slices.Clone(v.Stack),
		"calls":      slices.Clone(v.CallStack),
		"loops":      slices.Clone(v.LoopStack),
		"dictionary": dict,
		"code":       Program{Code: v.Code}.String(),
	}
}

func (v *VM) push(n int32) {
	v.Stack = append(v.Stack, n)
}

func (v *VM) pop() (int32, error) {
	if len(v.Stack) == 0 {
		return 0, ErrStackUnderflow
	}
	n := v.Stack[len(v.Stack)-1]
	v.Stack = v.Stack[:len(v.Stack)-1]
	return n, nil
}

func (v *VM) Snapshot(w io.Writer) error {
	if err := v.out.Flush(); err != nil {
		return err
	}
	enc := gob.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return nil
}

// Restore replaces the machine state with a snapshot. I/O endpoints,
// logger and limits are kept.
func (v *VM) Restore(r io.Reader) error {
	var state VM
	dec := gob.NewDecoder(r)
	if err := dec.Decode(&state); err != nil {
		return err
	}
	v.Code = state.Code
	v.IP = state.IP
	v.Stack = state.Stack
	v.CallStack = state.CallStack
	v.LoopStack = state.LoopStack
	v.Dictionary = state.Dictionary
	if v.Dictionary == nil {
		v.Dictionary = make(map[int32]int)
	}
	return nil
}
