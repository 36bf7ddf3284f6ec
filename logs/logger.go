package logs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/reusee/forte/cmds"
	"github.com/reusee/forte/modes"
	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

var level = func() *slog.LevelVar {
	v := new(slog.LevelVar)
	v.Set(slog.LevelWarn)
	return v
}()

// SetLevel overrides the level chosen by flags.
func SetLevel(l slog.Level) {
	level.Set(l)
}

func init() {
	cmds.Define("-log", cmds.Func(func(name string) error {
		var l slog.Level
		if err := l.UnmarshalText([]byte(name)); err != nil {
			return fmt.Errorf("log level: %w", err)
		}
		level.Set(l)
		return nil
	}).Desc("set log level: debug, info, warn or error"))
}

type Logger = *slog.Logger

func (Module) Logger(
	writer Writer,
	mode modes.Mode,
) Logger {
	terminal := slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: level,
	})
	if mode == modes.ModeDevelopment {
		return slog.New(&Handler{
			Handler: terminal,
		})
	}

	var handlers []slog.Handler
	// a service's stderr already goes to the journal
	if !isSystemdService() {
		handlers = append(handlers, terminal)
	}

	journal, err := newJournalHandler()
	if err != nil {
		// no journal outside systemd hosts
		ctx := context.Background()
		if len(handlers) > 0 && terminal.Enabled(ctx, slog.LevelInfo) {
			record := slog.NewRecord(time.Now(), slog.LevelInfo, "no systemd journal", 0)
			record.Add("error", err)
			_ = terminal.Handle(ctx, record)
		}
	} else {
		handlers = append(handlers, journal)
	}

	return slog.New(&Handler{
		Handler: slogmulti.Fanout(handlers...),
	})
}

func newJournalHandler() (slog.Handler, error) {
	return slogjournal.NewHandler(&slogjournal.Options{
		ReplaceGroup: func(key string) string {
			return toJournalKey(key)
		},
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			a.Key = toJournalKey(a.Key)
			return a
		},
	})
}

// journal fields allow only upper case letters, digits and underscores
func toJournalKey(str string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, strings.ToUpper(str))
}

func isSystemdService() bool {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return false
	}
	return inServiceCgroup(string(content))
}

// inServiceCgroup reports whether any hierarchy line of a
// /proc/self/cgroup dump places the process in a .service unit.
func inServiceCgroup(content string) bool {
	for line := range strings.Lines(content) {
		// hierarchy-ID:controllers:path
		parts := strings.SplitN(strings.TrimSpace(line), ":", 3)
		if len(parts) < 3 {
			continue
		}
		if strings.HasSuffix(path.Base(parts[2]), ".service") {
			return true
		}
	}
	return false
}
