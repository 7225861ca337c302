package umesh

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with mesh-specific helpers. It replaces the
// usual global verbose flag: operations that emit diagnostics take an
// optional *Logger, and a nil *Logger is always safe to pass.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler. A nil handler
// selects a text handler on stderr at Info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that writes human-readable text logs
// to stderr at the given level.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // unreachable level
	}))
}

var noopLogger = NoopLogger()

// OrNoop lets operations accept nil loggers.
func (l *Logger) OrNoop() *Logger {
	if l == nil {
		return noopLogger
	}
	return l
}

// WithMesh adds the mesh's entity counts to the logger.
func (l *Logger) WithMesh(m *Mesh) *Logger {
	return &Logger{Logger: l.Logger.With(
		"vertices", len(m.Vertices),
		"elements", m.Size(),
	)}
}
