package fortevm

import "strings"

// Program is an append-only instruction sequence.
type Program struct {
	Code []OpCode
}

func NewProgram(ops ...OpCode) Program {
	return Program{
		Code: ops,
	}
}

func (p *Program) Push(op OpCode) {
	p.Code = append(p.Code, op)
}

func (p *Program) Append(other Program) {
	p.Code = append(p.Code, other.Code...)
}

func (p Program) Len() int {
	return len(p.Code)
}

// String renders p as source text that tokenizes back to the same program.
func (p Program) String() string {
	var b strings.Builder
	afterDigit := false
	for _, op := range p.Code {
		switch {
		case op.IsPush() && afterDigit,
			op == OpSub && afterDigit:
			// keep the tokenizer from folding or negating
			b.WriteByte(' ')
		}
		b.WriteRune(op.Rune())
		afterDigit = op.IsPush() || op.IsFold()
	}
	return b.String()
}
