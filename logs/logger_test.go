package logs

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/forte/cmds"
	"github.com/reusee/forte/modes"
)

func TestLogger(t *testing.T) {
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Call(func(
		logger Logger,
	) {
		logger.Warn("test", "program", "1 2+¡")
	})
}

func TestLoggerLevel(t *testing.T) {
	buf := new(bytes.Buffer)
	defer SetLevel(slog.LevelWarn)
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
	) {
		logger.Debug("hidden")
		SetLevel(slog.LevelDebug)
		logger.Debug("shown", "ip", 3)
	})
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "msg=shown ip=3") {
		t.Fatalf("got %q", buf.String())
	}
}

func TestLoggerWithKeepsSpan(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
	) {
		ctx := context.WithValue(context.Background(), SpanKey, Span("s1"))
		logger.With("component", "vm").WithGroup("run").WarnContext(ctx, "unwind", "ip", 4)
	})
	if !strings.Contains(buf.String(), "component=vm") {
		t.Fatalf("got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "span=s1") {
		t.Fatalf("got %q", buf.String())
	}
}

func TestToJournalKey(t *testing.T) {
	if got := toJournalKey("logs.span"); got != "LOGS_SPAN" {
		t.Fatalf("got %q", got)
	}
}

func TestLogFlag(t *testing.T) {
	defer SetLevel(slog.LevelWarn)
	if err := cmds.GlobalExecutor.Execute([]string{"-log", "debug"}); err != nil {
		t.Fatal(err)
	}
	if level.Level() != slog.LevelDebug {
		t.Fatalf("got %v", level.Level())
	}
	if err := cmds.GlobalExecutor.Execute([]string{"-log", "loud"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestInServiceCgroup(t *testing.T) {
	for content, expected := range map[string]bool{
		"0::/system.slice/forte.service\n":                          true,
		"0::/user.slice/user-1000.slice/session-2.scope\n":          false,
		"12:pids:/system.slice/forte.service\n0::/system.slice/x\n": true,
		"": false,
	} {
		if got := inServiceCgroup(content); got != expected {
			t.Fatalf("%q: got %v", content, got)
		}
	}
}
