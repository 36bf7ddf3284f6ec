package logs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/forte/modes"
)

func TestNewSpan(t *testing.T) {
	buf := new(bytes.Buffer)
	SetLevel(slog.LevelDebug)
	defer SetLevel(slog.LevelWarn)
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		newSpan NewSpan,
	) {
		ctx := context.Background()

		// session
		session, sessionSpan := newSpan(ctx, "", "session")
		// one line within the session
		line, lineSpan := newSpan(session, "", "line", "source", "1 2+")
		// a run started by the line, attached to the session
		_, runSpan := newSpan(line, sessionSpan, "run")

		lines := strings.Split(buf.String(), "\n")
		if !strings.Contains(lines[0], "span="+string(sessionSpan)) {
			t.Fatalf("got %v", lines[0])
		}
		if !strings.Contains(lines[1], "span="+string(lineSpan)) {
			t.Fatalf("got %v", lines[1])
		}
		if !strings.Contains(lines[2], "span="+string(runSpan)) {
			t.Fatalf("got %v", lines[2])
		}
		if !strings.Contains(lines[1], `source="1 2+"`) {
			t.Fatalf("got %v", lines[1])
		}
		if !strings.Contains(lines[0], "what=session") {
			t.Fatalf("got %v", lines[0])
		}
		if !strings.Contains(lines[1], "parent="+string(sessionSpan)) {
			t.Fatalf("got %v", lines[1])
		}
		if !strings.Contains(lines[2], "parent="+string(sessionSpan)) {
			t.Fatalf("got %v", lines[2])
		}
		if !strings.Contains(lines[2], "creator="+string(lineSpan)) {
			t.Fatalf("got %v", lines[2])
		}

		underflow := errors.New("stack underflow")
		err := WrapSpan(line, underflow)
		if err.Error() != "stack underflow (span "+string(lineSpan)+")" {
			t.Fatalf("got %v", err)
		}
		if !errors.Is(err, underflow) {
			t.Fatal("expected wrapped error")
		}
		if WrapSpan(ctx, underflow) != underflow {
			t.Fatal("expected error outside spans unchanged")
		}
		if WrapSpan(line, nil) != nil {
			t.Fatal("expected nil")
		}
	})
}
