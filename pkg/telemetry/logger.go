package telemetry

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a zerolog.Logger with helpers for the fields the analyzer logs
// on every line: component, method, urn, pack and policy.
type Logger struct {
	zerolog.Logger
}

type loggerContextKey struct{}

// NewLogger opens cfg.Output and builds a logger on it.
func NewLogger(cfg LoggingConfig) (*Logger, error) {
	var w io.Writer
	switch cfg.Output {
	case "", "stderr":
		w = os.Stderr
	case "stdout":
		w = os.Stdout
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
	}
	return NewLoggerWithWriter(w, cfg), nil
}

// NewLoggerWithWriter builds a logger on w, ignoring cfg.Output.
func NewLoggerWithWriter(w io.Writer, cfg LoggingConfig) *Logger {
	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	zctx := zerolog.New(w).Level(level).With().Timestamp()
	if cfg.Caller {
		zctx = zctx.Caller()
	}
	return &Logger{Logger: zctx.Logger()}
}

// Zerolog returns the plain logger for packages that take one directly.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.Logger
}

func (l *Logger) with(fn func(zerolog.Context) zerolog.Context) *Logger {
	return &Logger{Logger: fn(l.Logger.With()).Logger()}
}

// NewComponentLogger tags every entry with a component name.
func (l *Logger) NewComponentLogger(component string) *Logger {
	return l.with(func(c zerolog.Context) zerolog.Context { return c.Str("component", component) })
}

func (l *Logger) WithMethod(method string) *Logger {
	return l.with(func(c zerolog.Context) zerolog.Context { return c.Str("method", method) })
}

func (l *Logger) WithAnalysisID(id string) *Logger {
	return l.with(func(c zerolog.Context) zerolog.Context { return c.Str("analysis_id", id) })
}

func (l *Logger) WithURN(urn string) *Logger {
	return l.with(func(c zerolog.Context) zerolog.Context { return c.Str("urn", urn) })
}

func (l *Logger) WithPolicy(pack, policy string) *Logger {
	return l.with(func(c zerolog.Context) zerolog.Context {
		return c.Str("pack", pack).Str("policy", policy)
	})
}

func (l *Logger) WithError(err error) *Logger {
	return l.with(func(c zerolog.Context) zerolog.Context { return c.Err(err) })
}

// WithContext stores l in ctx for FromContext and for zerolog.Ctx.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	ctx = l.Logger.WithContext(ctx)
	return context.WithValue(ctx, loggerContextKey{}, l)
}

// FromContext returns the logger stored by WithContext, falling back to the
// process-wide zerolog logger.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(loggerContextKey{}).(*Logger); ok {
		return l
	}
	return &Logger{Logger: log.Logger}
}
