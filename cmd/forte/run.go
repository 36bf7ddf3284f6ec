package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/chzyer/readline"
	"github.com/reusee/forte/debugs"
	"github.com/reusee/forte/forteconfigs"
	"github.com/reusee/forte/logs"
	"golang.org/x/term"
)

// Run executes the configured preludes and sources, then reads lines
// when interactive. It returns the process exit code.
type Run func(ctx context.Context) int

func (Module) Run(
	logger logs.Logger,
	newSpan logs.NewSpan,
	newVM forteconfigs.NewVM,
	prelude forteconfigs.Prelude,
	prompt forteconfigs.Prompt,
	historyFile forteconfigs.HistoryFile,
	tap debugs.Tap,
	eval debugs.Eval,
) Run {
	return func(ctx context.Context) int {
		interactive := *interactiveFlag || (len(files) == 0 && *sourceFlag == "")
		ctx, _ = newSpan(ctx, "", "session",
			"interactive", interactive,
			"files", files,
		)

		stdin := bufio.NewReader(os.Stdin)
		var input io.Reader = stdin
		var rl *readline.Instance
		if interactive && term.IsTerminal(int(os.Stdin.Fd())) {
			var err error
			rl, err = readline.NewEx(&readline.Config{
				Prompt:      string(prompt),
				HistoryFile: string(historyFile),
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				return 1
			}
			defer rl.Close()
			input = &lineReader{
				next: func() (string, error) {
					rl.SetPrompt("")
					defer rl.SetPrompt(string(prompt))
					return rl.Readline()
				},
			}
		}

		s := newSession(
			newVM(input, os.Stdout),
			os.Stdout,
			os.Stderr,
			logger,
			newSpan,
			tap,
			eval,
		)

		runCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
		defer stop()
		for _, path := range prelude {
			if err := s.execFile(runCtx, path); err != nil {
				fmt.Fprintf(os.Stderr, "error: prelude %v\n", err)
				return 1
			}
		}
		for _, path := range files {
			if err := s.execFile(runCtx, path); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				if !interactive {
					return 1
				}
			}
		}
		if *sourceFlag != "" {
			if err := s.exec(runCtx, *sourceFlag); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				if !interactive {
					return 1
				}
			}
		}
		stop()

		if !interactive {
			return 0
		}
		if rl != nil {
			s.interact(ctx, rl)
			return 0
		}
		if err := s.readLines(ctx, stdin); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}
}

func (s *session) interact(ctx context.Context, rl *readline.Instance) {
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) && line != "" {
			// Ctrl-C discards the pending line
			continue
		}
		if err != nil { // Ctrl-C on an empty line or Ctrl-D
			return
		}
		s.line(ctx, line)
	}
}

// readLines reads from r, which also serves the machine's input
// instruction.
func (s *session) readLines(ctx context.Context, r *bufio.Reader) error {
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			s.line(ctx, strings.TrimRight(line, "\r\n"))
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
