package forteconfigs

import (
	"os"
	"path/filepath"

	"github.com/reusee/forte/cmds"
	"github.com/reusee/forte/configs"
	"github.com/reusee/forte/fortevm"
	"github.com/reusee/forte/vars"
)

type Prompt string

var promptFlag = cmds.Var[string]("-prompt", "interactive prompt")

func (Module) Prompt(
	loader configs.Loader,
) Prompt {
	return Prompt(vars.FirstNonZero(
		*promptFlag,
		configs.First[string](loader, "prompt"),
		"> ",
	))
}

type HistoryFile string

func (Module) HistoryFile(
	loader configs.Loader,
) HistoryFile {
	var defaultPath string
	if home, err := os.UserHomeDir(); err == nil {
		defaultPath = filepath.Join(home, ".forte_history")
	}
	return HistoryFile(vars.FirstNonZero(
		configs.First[string](loader, "history_file"),
		defaultPath,
	))
}

type MaxCallDepth int

var maxCallDepthFlag = cmds.Var[int]("-max-call-depth", "maximum procedure call depth")

func (Module) MaxCallDepth(
	loader configs.Loader,
) MaxCallDepth {
	return MaxCallDepth(vars.FirstNonZero(
		vars.DerefOrZero(maxCallDepthFlag),
		configs.First[int](loader, "max_call_depth"),
		fortevm.DefaultMaxCallDepth,
	))
}

type Trace bool

var traceFlag = cmds.Switch("-trace", "log every executed instruction")

func (Module) Trace(
	loader configs.Loader,
) Trace {
	return Trace(*traceFlag || configs.First[bool](loader, "trace"))
}

// Prelude lists source files run before the main program, in config
// file order.
type Prelude []string

func (Module) Prelude(
	loader configs.Loader,
) (ret Prelude) {
	for files := range configs.All[[]string](loader, "prelude") {
		ret = append(ret, files...)
	}
	return
}
