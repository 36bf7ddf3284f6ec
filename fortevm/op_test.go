package fortevm

import "testing"

func TestOpCodeString(t *testing.T) {
	for op, expected := range map[OpCode]string{
		OpPush0:     "push0",
		OpFold9:     "fold9",
		OpBitShl:    "shl",
		OpHalt:      "halt",
		OpCode(200): "OpCode(200)",
	} {
		if got := op.String(); got != expected {
			t.Fatalf("got %q, want %q", got, expected)
		}
	}
}

func TestOpCodeDigit(t *testing.T) {
	for d := range 10 {
		if n, ok := Push(d).Digit(); !ok || n != int32(d) {
			t.Fatalf("push %d: got %v %v", d, n, ok)
		}
		if n, ok := Fold(d).Digit(); !ok || n != int32(d) {
			t.Fatalf("fold %d: got %v %v", d, n, ok)
		}
		if r := Fold(d).Rune(); r != '0'+rune(d) {
			t.Fatalf("got %q", r)
		}
	}
	if _, ok := OpAdd.Digit(); ok {
		t.Fatal("add is not a digit")
	}
}

func TestOpCodeNames(t *testing.T) {
	for op := OpNeg; op < numOpCodes; op++ {
		if opNames[op] == "" || opRunes[op] == 0 {
			t.Fatalf("missing name or rune for %d", op)
		}
	}
}
