package main

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/reusee/forte/forteparse"
	"github.com/reusee/forte/fortevm"
)

func testLines(lines ...string) *lineReader {
	return &lineReader{
		next: func() (string, error) {
			if len(lines) == 0 {
				return "", io.EOF
			}
			line := lines[0]
			lines = lines[1:]
			return line, nil
		},
	}
}

func TestLineReader(t *testing.T) {
	r := testLines("ab", "", "c")
	var got []byte
	for {
		b, err := r.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, b)
	}
	if string(got) != "ab\n\nc\n" {
		t.Fatalf("got %q", got)
	}
}

func TestLineReaderRead(t *testing.T) {
	content, err := io.ReadAll(testLines("forte", "vm"))
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "forte\nvm\n" {
		t.Fatalf("got %q", content)
	}
}

func TestLineReaderFeedsMachine(t *testing.T) {
	program, err := forteparse.Parse("??¡¡")
	if err != nil {
		t.Fatal(err)
	}
	out := new(bytes.Buffer)
	vm := fortevm.Load(program,
		fortevm.WithInput(testLines("A")),
		fortevm.WithOutput(out),
	)
	if err := vm.Run(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "10\n65\n" {
		t.Fatalf("got %q", out.String())
	}
}
