package forteconfigs

import (
	"io"
	"log/slog"

	"github.com/reusee/forte/fortevm"
	"github.com/reusee/forte/logs"
)

// NewVM builds a machine wired to the configured limits and tracing.
type NewVM func(in io.Reader, out io.Writer) *fortevm.VM

func (Module) NewVM(
	logger logs.Logger,
	writer logs.Writer,
	maxCallDepth MaxCallDepth,
	trace Trace,
) NewVM {
	vmLogger := logger
	if trace {
		// tracing is independent of the global log level
		vmLogger = slog.New(&logs.Handler{
			Handler: slog.NewTextHandler(writer, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		})
	}
	vmLogger = vmLogger.With("component", "vm")

	return func(in io.Reader, out io.Writer) *fortevm.VM {
		return fortevm.NewVM(
			fortevm.WithInput(in),
			fortevm.WithOutput(out),
			fortevm.WithLogger(vmLogger),
			fortevm.WithMaxCallDepth(int(maxCallDepth)),
		)
	}
}
