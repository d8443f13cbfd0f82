package rtctx

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger builds the structured logger every Context carries, in the
// lineage's lexer/parser style: a text handler that strips the time and
// level keys outside debug mode, and a RILL_DEBUG environment variable
// that switches the level to Debug.
func NewLogger() *slog.Logger {
	level := slog.LevelInfo
	debug := os.Getenv("RILL_DEBUG") != ""
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if debug {
				return a
			}
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// discardLogger is used when a Context is constructed without an
// explicit logger.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
