package cmds

import (
	"fmt"
	"os"
)

var GlobalExecutor = NewExecutor()

func init() {
	Define("-h", Func(func() {
		GlobalExecutor.PrintUsage()
		os.Exit(0)
	}).
		Desc("print this usage").
		Alias("help", "-help", "--help"))
}

func Define(name string, command *Command) {
	GlobalExecutor.Define(name, command)
}

func Fallback(command *Command) {
	GlobalExecutor.Fallback(command)
}

// Execute runs args against the global executor and exits on error.
func Execute(args []string) {
	if err := GlobalExecutor.Execute(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		GlobalExecutor.PrintUsage()
		os.Exit(2)
	}
}
