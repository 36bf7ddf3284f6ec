package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/reusee/forte/cmds"
	"github.com/reusee/forte/debugs"
	"github.com/reusee/forte/forteparse"
	"github.com/reusee/forte/fortevm"
	"github.com/reusee/forte/logs"
)

// session drives one machine across program fragments.
type session struct {
	vm      *fortevm.VM
	out     io.Writer
	errOut  io.Writer
	logger  logs.Logger
	newSpan logs.NewSpan
	tap     debugs.Tap
	eval    debugs.Eval
	meta    *cmds.Executor
}

func newSession(
	vm *fortevm.VM,
	out io.Writer,
	errOut io.Writer,
	logger logs.Logger,
	newSpan logs.NewSpan,
	tap debugs.Tap,
	eval debugs.Eval,
) *session {
	s := &session{
		vm:      vm,
		out:     out,
		errOut:  errOut,
		logger:  logger,
		newSpan: newSpan,
		tap:     tap,
		eval:    eval,
	}
	s.meta = s.metaCommands()
	return s
}

// exec parses src, appends it to the code and runs it. A failed parse
// leaves the machine untouched. A failed or halted run is unwound so that
// later fragments still execute.
func (s *session) exec(ctx context.Context, src string) error {
	parser := forteparse.NewParser()
	program, err := parser.Parse(src)
	if err != nil {
		return err
	}
	if brackets, braces := parser.Unclosed(); brackets > 0 || braces > 0 {
		s.logger.WarnContext(ctx, "unclosed",
			"brackets", brackets,
			"braces", braces,
		)
	}

	s.vm.Extend(program)
	err = s.vm.RunContext(ctx)
	if err != nil || s.vm.Halted() {
		s.vm.Unwind()
	}
	return err
}

func (s *session) execFile(ctx context.Context, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := s.exec(ctx, string(content)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// line handles one line of interactive input.
func (s *session) line(ctx context.Context, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	if strings.HasPrefix(line, ":") {
		if err := s.metaLine(ctx, line); err != nil {
			fmt.Fprintf(s.errOut, "error: %v\n", err)
		}
		return
	}

	ctx, _ = s.newSpan(ctx, "", "line", "source", line)
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	if err := s.exec(ctx, line); err != nil {
		s.logger.InfoContext(ctx, "line failed",
			"error", logs.WrapSpan(ctx, err),
		)
		fmt.Fprintf(s.errOut, "error: %v\n", err)
	}
}
