// ABOUTME: Structured logging configuration using log/slog.
// ABOUTME: Provides Init() to configure the default logger, optionally reporting errors to Rollbar.

package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/rollbar/rollbar-go"
)

// Options selects level, format and destination. Zero values mean info,
// text and stderr.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text, json
	Writer io.Writer

	// Rollbar reporting is enabled when RollbarToken is set.
	RollbarToken string
	Environment  string
	CodeVersion  string
}

// Init configures the default slog logger and returns it along with a
// flush function to call before exit.
func Init(opts Options) (*slog.Logger, func()) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{
		Level: parseLevel(opts.Level),
	}

	var handler slog.Handler
	if strings.ToLower(opts.Format) == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	flush := func() {}
	if opts.RollbarToken != "" {
		rollbar.SetToken(opts.RollbarToken)
		rollbar.SetEnvironment(opts.Environment)
		if opts.CodeVersion != "" {
			rollbar.SetCodeVersion(opts.CodeVersion)
		}
		rollbar.SetEnabled(true)
		handler = NewRollbarHandler(handler, rollbar.Error)
		flush = rollbar.Wait
	}

	l := slog.New(handler)
	slog.SetDefault(l)
	return l, flush
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
