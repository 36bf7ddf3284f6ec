package main

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/reusee/forte/cmds"
)

func (s *session) metaCommands() *cmds.Executor {
	executor := cmds.NewExecutor()
	executor.Output = s.out

	executor.Define(":stack", cmds.Func(func() {
		fmt.Fprintln(s.out, s.vm.Stack)
	}).Desc("print the operand stack, bottom first"))

	executor.Define(":dict", cmds.Func(func() {
		for _, key := range slices.Sorted(maps.Keys(s.vm.Dictionary)) {
			fmt.Fprintf(s.out, "%d\t%d\n", key, s.vm.Dictionary[key])
		}
	}).Desc("print procedure keys and body offsets"))

	executor.Define(":code", cmds.Func(func() {
		fmt.Fprintln(s.out, s.vm.Program())
		fmt.Fprintf(s.out, "ip %d of %d\n", s.vm.IP, len(s.vm.Code))
	}).Desc("print the accumulated code"))

	executor.Define(":reset", cmds.Func(func() {
		s.vm.Reset()
	}).Desc("clear stacks and dictionary"))

	executor.Define(":save", cmds.Func(func(path string) error {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := s.vm.Snapshot(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}).Desc("write a snapshot of the machine to a file"))

	executor.Define(":load", cmds.Func(func(path string) error {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return s.vm.Restore(f)
	}).Desc("restore the machine from a snapshot file"))

	executor.Define(":tap", cmds.Func(func() {
		s.tap(context.Background(), "vm", s.globals(context.Background()))
	}).Desc("starlark session over the machine state; ':tap <expr>' evaluates one expression"))

	executor.Define(":help", cmds.Func(func() {
		executor.PrintUsage()
	}).Desc("print this help"))

	return executor
}

func (s *session) metaLine(ctx context.Context, line string) error {
	if expr, ok := strings.CutPrefix(line, ":tap "); ok {
		value, err := s.eval(ctx, expr, s.globals(ctx))
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, value)
		return nil
	}
	return s.meta.Execute(strings.Fields(line))
}

// globals exposes a snapshot of the machine plus functions acting on
// the live machine.
func (s *session) globals(ctx context.Context) map[string]any {
	globals := s.vm.Inspect()
	globals["push"] = func(n int) {
		s.vm.Stack = append(s.vm.Stack, int32(n))
	}
	globals["run"] = func(src string) {
		if err := s.exec(ctx, src); err != nil {
			fmt.Fprintf(s.errOut, "error: %v\n", err)
		}
	}
	return globals
}
