package fortevm

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"unicode/utf8"
)

const cancelCheckInterval = 1<<10 - 1

func (v *VM) Run() error {
	return v.RunContext(context.Background())
}

// RunContext executes until the code is exhausted, the machine halts, an
// instruction fails or ctx is done.
func (v *VM) RunContext(ctx context.Context) (err error) {
	defer v.flush(&err)
	trace := v.tracing(ctx)
	for steps := 0; !v.Done(); steps++ {
		if steps&cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("interrupted at %d: %w", v.IP, err)
			}
		}
		if err := v.step(ctx, trace); err != nil {
			return err
		}
	}
	return nil
}

// Step executes at most one instruction.
func (v *VM) Step() (err error) {
	if v.Done() {
		return nil
	}
	defer v.flush(&err)
	ctx := context.Background()
	return v.step(ctx, v.tracing(ctx))
}

func (v *VM) Halted() bool {
	return v.IP == Terminated
}

func (v *VM) tracing(ctx context.Context) bool {
	return v.logger != nil && v.logger.Enabled(ctx, slog.LevelDebug)
}

func (v *VM) flush(err *error) {
	if e := v.out.Flush(); e != nil && *err == nil {
		*err = ioError(e)
	}
}

func (v *VM) step(ctx context.Context, trace bool) error {
	ip := v.IP
	op := v.Code[ip]
	v.IP++
	if trace {
		v.logger.DebugContext(ctx, "step",
			"ip", ip,
			"op", op,
			"depth", len(v.Stack),
		)
	}
	if err := v.execute(op); err != nil {
		return &Fault{
			Err: err,
			IP:  ip,
			Op:  op,
		}
	}
	return nil
}

func (v *VM) execute(op OpCode) error {
	switch op {

	case OpPush0, OpPush1, OpPush2, OpPush3, OpPush4,
		OpPush5, OpPush6, OpPush7, OpPush8, OpPush9:
		v.push(int32(op - OpPush0))
		return nil

	case OpFold0, OpFold1, OpFold2, OpFold3, OpFold4,
		OpFold5, OpFold6, OpFold7, OpFold8, OpFold9:
		d := int32(op - OpFold0)
		return v.unary(func(x int32) int32 {
			return x*10 + d
		})

	case OpNeg:
		return v.unary(func(x int32) int32 {
			return -x
		})
	case OpAdd:
		return v.binary(func(x, y int32) int32 {
			return x + y
		})
	case OpSub:
		return v.binary(func(x, y int32) int32 {
			return x - y
		})
	case OpMul:
		return v.binary(func(x, y int32) int32 {
			return x * y
		})
	case OpDiv, OpRem:
		if len(v.Stack) >= 2 && v.Stack[len(v.Stack)-1] == 0 {
			return ErrDivisionByZero
		}
		if op == OpDiv {
			return v.binary(func(x, y int32) int32 {
				return x / y
			})
		}
		return v.binary(func(x, y int32) int32 {
			return x % y
		})

	case OpEq:
		return v.binary(func(x, y int32) int32 {
			return b2i(x == y)
		})
	case OpGt:
		return v.binary(func(x, y int32) int32 {
			return b2i(x > y)
		})
	case OpLt:
		return v.binary(func(x, y int32) int32 {
			return b2i(x < y)
		})

	case OpBitNot:
		return v.unary(func(x int32) int32 {
			return ^x
		})
	case OpBitAnd:
		return v.binary(func(x, y int32) int32 {
			return x & y
		})
	case OpBitXor:
		return v.binary(func(x, y int32) int32 {
			return x ^ y
		})
	case OpBitOr:
		return v.binary(func(x, y int32) int32 {
			return x | y
		})
	case OpBitShl:
		return v.binary(func(x, y int32) int32 {
			return x << (uint32(y) & 31)
		})
	case OpBitShr:
		return v.binary(func(x, y int32) int32 {
			return x >> (uint32(y) & 31)
		})

	case OpPop:
		_, err := v.pop()
		return err
	case OpDup:
		if len(v.Stack) < 1 {
			return ErrStackUnderflow
		}
		v.push(v.Stack[len(v.Stack)-1])
		return nil
	case OpSwap:
		n := len(v.Stack)
		if n < 2 {
			return ErrStackUnderflow
		}
		v.Stack[n-1], v.Stack[n-2] = v.Stack[n-2], v.Stack[n-1]
		return nil

	case OpAsk:
		if err := v.out.Flush(); err != nil {
			return ioError(err)
		}
		b, err := v.in.ReadByte()
		if err != nil {
			return ioError(err)
		}
		v.push(int32(b))
		return nil
	case OpSay:
		x, err := v.pop()
		if err != nil {
			return err
		}
		r := rune(x)
		if !utf8.ValidRune(r) {
			r = utf8.RuneError
		}
		if _, err := v.out.WriteRune(r); err != nil {
			return ioError(err)
		}
		return nil
	case OpPrint:
		x, err := v.pop()
		if err != nil {
			return err
		}
		var buf [12]byte
		line := append(strconv.AppendInt(buf[:0], int64(x), 10), '\n')
		if _, err := v.out.Write(line); err != nil {
			return ioError(err)
		}
		return nil

	case OpWhile:
		guard, err := v.pop()
		if err != nil {
			return err
		}
		if guard != 0 {
			v.LoopStack = append(v.LoopStack, abs(guard))
			return nil
		}
		v.IP = v.skipForward(OpWhile, OpUntil)
		return nil

	case OpUntil:
		n := len(v.LoopStack)
		if n == 0 {
			return ErrLoopUnderflow
		}
		if v.LoopStack[n-1] <= 1 {
			v.LoopStack = v.LoopStack[:n-1]
			return nil
		}
		start, ok := v.scanBackward()
		if !ok {
			return ErrUnmatchedBracket
		}
		v.LoopStack[n-1]--
		v.IP = start
		return nil

	case OpLet:
		index, err := v.pop()
		if err != nil {
			return err
		}
		v.Dictionary[index] = v.IP
		v.IP = v.skipForward(OpLet, OpEnd)
		return nil

	case OpEnd, OpRet:
		v.ret()
		return nil

	case OpCall:
		n := len(v.Stack)
		if n == 0 {
			return ErrStackUnderflow
		}
		target, ok := v.Dictionary[v.Stack[n-1]]
		if ok && len(v.CallStack) >= v.maxCallDepth {
			return ErrCallStackOverflow
		}
		v.Stack = v.Stack[:n-1]
		if ok {
			v.CallStack = append(v.CallStack, v.IP)
			v.IP = target
		}
		return nil

	case OpHalt:
		v.IP = Terminated
		return nil

	}

	panic(fmt.Errorf("bad opcode: %v", op))
}

func (v *VM) ret() {
	n := len(v.CallStack)
	if n == 0 {
		v.IP = Terminated
		return
	}
	v.IP = v.CallStack[n-1]
	v.CallStack = v.CallStack[:n-1]
}

func (v *VM) unary(fn func(int32) int32) error {
	n := len(v.Stack)
	if n < 1 {
		return ErrStackUnderflow
	}
	v.Stack[n-1] = fn(v.Stack[n-1])
	return nil
}

func (v *VM) binary(fn func(int32, int32) int32) error {
	n := len(v.Stack)
	if n < 2 {
		return ErrStackUnderflow
	}
	v.Stack[n-2] = fn(v.Stack[n-2], v.Stack[n-1])
	v.Stack = v.Stack[:n-1]
	return nil
}

func b2i(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func abs(x int32) uint32 {
	if x < 0 {
		return uint32(-int64(x))
	}
	return uint32(x)
}
