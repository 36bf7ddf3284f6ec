package forteparse

import (
	"io"
	"strings"

	"github.com/reusee/forte/fortevm"
)

// Parser turns source characters into opcodes one at a time.
type Parser struct {
	brackets int
	braces   int
	line     int
	col      int
	wasDigit bool
}

func NewParser() *Parser {
	return &Parser{
		line: 1,
		col:  1,
	}
}

var runeOps = map[rune]fortevm.OpCode{
	'+': fortevm.OpAdd,
	'-': fortevm.OpSub,
	'*': fortevm.OpMul,
	'/': fortevm.OpDiv,
	'%': fortevm.OpRem,

	'=': fortevm.OpEq,
	'>': fortevm.OpGt,
	'<': fortevm.OpLt,

	'~': fortevm.OpBitNot,
	'&': fortevm.OpBitAnd,
	'^': fortevm.OpBitXor,
	'|': fortevm.OpBitOr,
	'«': fortevm.OpBitShl,
	'»': fortevm.OpBitShr,

	'.': fortevm.OpPop,
	'_': fortevm.OpDup,
	',': fortevm.OpSwap,

	'?': fortevm.OpAsk,
	'!': fortevm.OpSay,
	'¡': fortevm.OpPrint,

	'@': fortevm.OpCall,
	'$': fortevm.OpRet,
	'§': fortevm.OpHalt,
}

// Step consumes one character. ok is false when c produces no opcode.
func (p *Parser) Step(c rune) (op fortevm.OpCode, ok bool, err error) {
	wasDigit := p.wasDigit
	p.wasDigit = false
	line, col := p.line, p.col
	p.col++

	switch {

	case c == '\n':
		p.line++
		p.col = 1
		return

	case c >= '0' && c <= '9':
		p.wasDigit = true
		if wasDigit {
			return fortevm.Fold(int(c - '0')), true, nil
		}
		return fortevm.Push(int(c - '0')), true, nil

	case c == '-' && wasDigit:
		return fortevm.OpNeg, true, nil

	case c == '[':
		p.brackets++
		return fortevm.OpWhile, true, nil
	case c == ']':
		if p.brackets == 0 {
			return 0, false, newError(line, col, "mismatched `]`")
		}
		p.brackets--
		return fortevm.OpUntil, true, nil

	case c == '{':
		p.braces++
		return fortevm.OpLet, true, nil
	case c == '}':
		if p.braces == 0 {
			return 0, false, newError(line, col, "mismatched `}`")
		}
		p.braces--
		return fortevm.OpEnd, true, nil

	}

	op, ok = runeOps[c]
	return op, ok, nil
}

// Parse tokenizes every character of src. On error no program is returned.
func (p *Parser) Parse(src string) (fortevm.Program, error) {
	var program fortevm.Program
	for _, c := range src {
		op, ok, err := p.Step(c)
		if err != nil {
			return fortevm.Program{}, err
		}
		if ok {
			program.Push(op)
		}
	}
	return program, nil
}

// ParseReader is Parse over the full contents of r.
func (p *Parser) ParseReader(r io.Reader) (fortevm.Program, error) {
	var b strings.Builder
	if _, err := io.Copy(&b, r); err != nil {
		return fortevm.Program{}, err
	}
	return p.Parse(b.String())
}

// Unclosed reports loop and procedure openers still waiting for a closer.
func (p *Parser) Unclosed() (brackets, braces int) {
	return p.brackets, p.braces
}

func Parse(src string) (fortevm.Program, error) {
	return NewParser().Parse(src)
}
