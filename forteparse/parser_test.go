package forteparse

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/reusee/forte/fortevm"
)

func TestParseLiterals(t *testing.T) {
	program, err := Parse("123 4")
	if err != nil {
		t.Fatal(err)
	}
	expected := []fortevm.OpCode{
		fortevm.OpPush1,
		fortevm.OpFold2,
		fortevm.OpFold3,
		fortevm.OpPush4,
	}
	if !slices.Equal(program.Code, expected) {
		t.Fatalf("got %v", program.Code)
	}
}

func TestParseMinus(t *testing.T) {
	program, err := Parse("42- 3 1-")
	if err != nil {
		t.Fatal(err)
	}
	expected := []fortevm.OpCode{
		fortevm.OpPush4,
		fortevm.OpFold2,
		fortevm.OpNeg,
		fortevm.OpPush3,
		fortevm.OpPush1,
		fortevm.OpNeg,
	}
	if !slices.Equal(program.Code, expected) {
		t.Fatalf("got %v", program.Code)
	}

	program, err = Parse("3 1 -")
	if err != nil {
		t.Fatal(err)
	}
	if program.Code[2] != fortevm.OpSub {
		t.Fatalf("got %v", program.Code)
	}
}

func TestParseAllOperators(t *testing.T) {
	src := "+-*/%=><~&^|«».,_?!¡[]{}@$§"
	program, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	if program.Len() != len([]rune(src)) {
		t.Fatalf("got %d opcodes", program.Len())
	}
	for i, c := range []rune(src) {
		if r := program.Code[i].Rune(); r != c {
			t.Fatalf("opcode %d: got %q, want %q", i, r, c)
		}
	}
}

func TestParseIgnoresOtherCharacters(t *testing.T) {
	program, err := Parse("hello\tworld: # comment\n")
	if err != nil {
		t.Fatal(err)
	}
	if program.Len() != 0 {
		t.Fatalf("got %v", program.Code)
	}
}

func TestParseMismatched(t *testing.T) {
	for _, c := range []struct {
		src     string
		line    int
		col     int
		message string
	}{
		{"]", 1, 1, "mismatched `]`"},
		{"1 2\n  }", 2, 3, "mismatched `}`"},
		{"[]]", 1, 3, "mismatched `]`"},
		{"{[}]}", 1, 5, "mismatched `}`"},
		{"\n\n\n12 ]", 4, 4, "mismatched `]`"},
	} {
		t.Run(c.src, func(t *testing.T) {
			program, err := Parse(c.src)
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("got %v", err)
			}
			if parseErr.Line != c.line || parseErr.Column != c.col {
				t.Fatalf("got %d:%d", parseErr.Line, parseErr.Column)
			}
			if parseErr.Message != c.message {
				t.Fatalf("got %q", parseErr.Message)
			}
			if program.Len() != 0 {
				t.Fatal("partial program returned")
			}
		})
	}
}

func TestParseUnclosedTolerated(t *testing.T) {
	p := NewParser()
	program, err := p.Parse("[[{")
	if err != nil {
		t.Fatal(err)
	}
	if program.Len() != 3 {
		t.Fatalf("got %v", program.Code)
	}
	brackets, braces := p.Unclosed()
	if brackets != 2 || braces != 1 {
		t.Fatalf("got %d %d", brackets, braces)
	}
}

func TestStep(t *testing.T) {
	p := NewParser()
	var ops []fortevm.OpCode
	for _, c := range "7 8\n9" {
		op, ok, err := p.Step(c)
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			ops = append(ops, op)
		}
	}
	if !slices.Equal(ops, []fortevm.OpCode{fortevm.OpPush7, fortevm.OpPush8, fortevm.OpPush9}) {
		t.Fatalf("got %v", ops)
	}

	// a newline breaks a literal
	for _, c := range "1\n" {
		if _, _, err := p.Step(c); err != nil {
			t.Fatal(err)
		}
	}
	op, ok, err := p.Step('2')
	if err != nil || !ok || op != fortevm.OpPush2 {
		t.Fatalf("got %v %v %v", op, ok, err)
	}
}

func TestParseReader(t *testing.T) {
	program, err := NewParser().ParseReader(strings.NewReader("{5 3¡}5@"))
	if err != nil {
		t.Fatal(err)
	}
	if program.Len() != 7 {
		t.Fatalf("got %v", program.Code)
	}
}

func TestProgramStringRoundTrip(t *testing.T) {
	for _, src := range []string{
		"123¡",
		"1 2 3++¡",
		"42-¡",
		"5 3 -¡",
		"3[1¡]",
		"{5 3¡}5@",
		"10 2 «¡ 7 1»¡ §",
	} {
		program, err := Parse(src)
		if err != nil {
			t.Fatal(err)
		}
		again, err := Parse(program.String())
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(program.Code, again.Code) {
			t.Fatalf("%q: rendered as %q", src, program.String())
		}
	}
}
