package numfmt

import (
	"sort"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
)

// Logger is the logging contract used by the engine and registry.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	WithFields(fields map[string]any) Logger
}

type noopLogger struct{}

// NoOpLogger returns a logger that discards everything.
func NoOpLogger() Logger { return noopLogger{} }

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) Logger { return n }

// LoggerConfig captures the options exposed by the go-logger adapter.
type LoggerConfig struct {
	Name      string
	Level     string
	Format    string
	AddSource bool
}

// NewGoLogger builds a Logger backed by go-logger.
func NewGoLogger(cfg LoggerConfig) (Logger, error) {
	options := []glog.Option{}

	if level := normalizeLevel(cfg.Level); level != "" {
		options = append(options, glog.WithLevel(level))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, invalidInput("unsupported log format %q", cfg.Format)
	}

	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	root := glog.NewLogger(options...)
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		return wrapGoLogger(root), nil
	}
	return wrapGoLogger(root.GetLogger(name)), nil
}

func wrapGoLogger(inner glog.Logger) Logger {
	if inner == nil {
		return NoOpLogger()
	}
	return &goLogger{inner: inner}
}

type goLogger struct {
	inner glog.Logger
}

func (l *goLogger) Trace(msg string, args ...any) { l.inner.Trace(msg, args...) }
func (l *goLogger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *goLogger) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *goLogger) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *goLogger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

func (l *goLogger) WithFields(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}

	if with, ok := l.inner.(glog.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		for k, v := range fields {
			copied[k] = v
		}
		return wrapGoLogger(with.WithFields(copied))
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		args = append(args, k, fields[k])
	}
	if with, ok := l.inner.(interface{ With(...any) *glog.BaseLogger }); ok {
		return wrapGoLogger(with.With(args...))
	}
	return l
}

func normalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return glog.Trace
	case "debug":
		return glog.Debug
	case "info":
		return glog.Info
	case "warn", "warning":
		return glog.Warn
	case "error":
		return glog.Error
	case "fatal":
		return glog.Fatal
	default:
		return ""
	}
}
