package debugs

import (
	"context"
	"maps"
	"slices"

	"github.com/reusee/forte/logs"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
}

// Tap opens an interactive Starlark session over globals on the
// process terminal.
type Tap func(ctx context.Context, what string, globals map[string]any)

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) {
		logger.InfoContext(ctx, "tap: "+what,
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		thread := &starlark.Thread{
			Name: "tap",
		}
		repl.REPLOptions(fileOptions, thread, toStarlarkGlobals(globals))
	}
}

// Eval evaluates one Starlark expression over globals.
type Eval func(ctx context.Context, expr string, globals map[string]any) (starlark.Value, error)

func (Module) Eval(
	logger logs.Logger,
) Eval {
	return func(ctx context.Context, expr string, globals map[string]any) (starlark.Value, error) {
		thread := &starlark.Thread{
			Name: "eval",
			Print: func(_ *starlark.Thread, msg string) {
				logger.InfoContext(ctx, "eval print", "msg", msg)
			},
		}
		return starlark.EvalOptions(fileOptions, thread, "tap", expr, toStarlarkGlobals(globals))
	}
}
