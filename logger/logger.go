// Package logger is the leveled logging collaborator: debug, info, warn,
// error and success messages on a terminal-aware handler. Error may terminate
// the caller's process, see Options.FailFast.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// LevelSuccess sits between info and warn and renders as "OK".
const LevelSuccess = slog.LevelInfo + 2

type Options struct {
	Level    slog.Level
	NoColor  bool
	FailFast bool // Errorf terminates the process with status 1
}

type Logger struct {
	sl   *slog.Logger
	exit func(int)
}

func New(w io.Writer, options Options) *Logger {

	noColor := options.NoColor
	if f, ok := w.(*os.File); ok {
		if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
			noColor = true
		}
		w = colorable.NewColorable(f)
	} else {
		noColor = true
	}

	handler := tint.NewHandler(w, &tint.Options{
		Level:      options.Level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.LevelKey {
				if level, ok := a.Value.Any().(slog.Level); ok && level == LevelSuccess {
					a.Value = slog.StringValue("OK")
				}
			}
			return a
		},
	})

	exit := func(int) {}
	if options.FailFast {
		exit = os.Exit
	}

	return &Logger{
		sl:   slog.New(handler),
		exit: exit,
	}
}

// Default logs to stderr at info level and never terminates.
func Default() *Logger {
	return New(os.Stderr, Options{Level: slog.LevelInfo})
}

func (l *Logger) Debugf(format string, args ...any) {
	l.sl.Debug(fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...any) {
	l.sl.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Successf(format string, args ...any) {
	l.sl.Log(context.Background(), LevelSuccess, fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...any) {
	l.sl.Warn(fmt.Sprintf(format, args...))
}

// Errorf reports the message and, on a fail-fast logger, terminates the
// process with status 1.
func (l *Logger) Errorf(format string, args ...any) {
	l.sl.Error(fmt.Sprintf(format, args...))
	l.exit(1)
}
