package fortevm

import "fmt"

type OpCode uint8

const (
	OpPush0 OpCode = iota
	OpPush1
	OpPush2
	OpPush3
	OpPush4
	OpPush5
	OpPush6
	OpPush7
	OpPush8
	OpPush9

	OpFold0
	OpFold1
	OpFold2
	OpFold3
	OpFold4
	OpFold5
	OpFold6
	OpFold7
	OpFold8
	OpFold9

	OpNeg
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpRem

	OpEq
	OpGt
	OpLt

	OpBitNot
	OpBitAnd
	OpBitXor
	OpBitOr
	OpBitShl
	OpBitShr

	OpPop
	OpDup
	OpSwap

	OpAsk
	OpSay
	OpPrint

	OpWhile
	OpUntil

	OpLet
	OpEnd

	OpCall
	OpRet

	OpHalt

	numOpCodes
)

var opNames = [numOpCodes]string{
	OpNeg:    "neg",
	OpAdd:    "add",
	OpSub:    "sub",
	OpMul:    "mul",
	OpDiv:    "div",
	OpRem:    "rem",
	OpEq:     "eq",
	OpGt:     "gt",
	OpLt:     "lt",
	OpBitNot: "not",
	OpBitAnd: "and",
	OpBitXor: "xor",
	OpBitOr:  "or",
	OpBitShl: "shl",
	OpBitShr: "shr",
	OpPop:    "pop",
	OpDup:    "dup",
	OpSwap:   "swap",
	OpAsk:    "ask",
	OpSay:    "say",
	OpPrint:  "print",
	OpWhile:  "while",
	OpUntil:  "until",
	OpLet:    "let",
	OpEnd:    "end",
	OpCall:   "call",
	OpRet:    "ret",
	OpHalt:   "halt",
}

var opRunes = [numOpCodes]rune{
	OpNeg:    '-',
	OpAdd:    '+',
	OpSub:    '-',
	OpMul:    '*',
	OpDiv:    '/',
	OpRem:    '%',
	OpEq:     '=',
	OpGt:     '>',
	OpLt:     '<',
	OpBitNot: '~',
	OpBitAnd: '&',
	OpBitXor: '^',
	OpBitOr:  '|',
	OpBitShl: '«',
	OpBitShr: '»',
	OpPop:    '.',
	OpDup:    '_',
	OpSwap:   ',',
	OpAsk:    '?',
	OpSay:    '!',
	OpPrint:  '¡',
	OpWhile:  '[',
	OpUntil:  ']',
	OpLet:    '{',
	OpEnd:    '}',
	OpCall:   '@',
	OpRet:    '$',
	OpHalt:   '§',
}

// Push returns the opcode pushing digit d, which must be in 0..9.
func Push(d int) OpCode {
	return OpPush0 + OpCode(d)
}

// Fold returns the opcode appending digit d to the top of stack.
func Fold(d int) OpCode {
	return OpFold0 + OpCode(d)
}

func (o OpCode) Valid() bool {
	return o < numOpCodes
}

func (o OpCode) IsPush() bool {
	return o <= OpPush9
}

func (o OpCode) IsFold() bool {
	return o >= OpFold0 && o <= OpFold9
}

// Digit reports the decimal digit carried by a push or fold opcode.
func (o OpCode) Digit() (int32, bool) {
	switch {
	case o.IsPush():
		return int32(o - OpPush0), true
	case o.IsFold():
		return int32(o - OpFold0), true
	}
	return 0, false
}

// Rune returns the source character that tokenizes to o.
func (o OpCode) Rune() rune {
	if d, ok := o.Digit(); ok {
		return '0' + rune(d)
	}
	if !o.Valid() {
		return '�'
	}
	return opRunes[o]
}

func (o OpCode) String() string {
	switch {
	case o.IsPush():
		return fmt.Sprintf("push%d", o-OpPush0)
	case o.IsFold():
		return fmt.Sprintf("fold%d", o-OpFold0)
	case o.Valid():
		return opNames[o]
	}
	return fmt.Sprintf("OpCode(%d)", uint8(o))
}
