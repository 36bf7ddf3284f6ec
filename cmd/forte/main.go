package main

import (
	"context"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/forte/cmds"
	"github.com/reusee/forte/modes"
)

var (
	interactiveFlag = cmds.Switch("-i", "read lines after running the given sources")
	sourceFlag      = cmds.Var[string]("-e", "run the argument as a program")
	files           []string
)

func init() {
	cmds.Fallback(cmds.Func(func(path string) {
		files = append(files, path)
	}).Desc("source file to run"))
}

func main() {
	cmds.Execute(os.Args[1:])

	var code int
	dscope.New(
		new(Module),
		modes.ForProduction(),
	).Call(func(
		run Run,
	) {
		code = run(context.Background())
	})
	os.Exit(code)
}
