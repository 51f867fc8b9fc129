package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu  sync.RWMutex
	log *slog.Logger
)

// Init configures the process-wide logger.
// env "dev"/"development"/"test" gets a readable text handler at debug level,
// everything else gets JSON at info level.
func Init(env string) {
	InitWithWriter(env, os.Stdout)
}

func InitWithWriter(env string, w io.Writer) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler
	switch env {
	case "dev", "development", "test":
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	l := slog.New(handler)

	mu.Lock()
	log = l
	mu.Unlock()

	slog.SetDefault(l)
}

// Get returns the process logger, initialising a dev logger on first use.
func Get() *slog.Logger {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l == nil {
		Init("dev")
		return Get()
	}
	return l
}

func Debug(msg string, args ...any) { Get().Debug(msg, args...) }
func Info(msg string, args ...any)  { Get().Info(msg, args...) }
func Warn(msg string, args ...any)  { Get().Warn(msg, args...) }
func Error(msg string, args ...any) { Get().Error(msg, args...) }

// Fatal logs at error level and exits.
func Fatal(msg string, args ...any) {
	Get().Error(msg, args...)
	os.Exit(1)
}

// With returns a child logger with the given attributes.
// Example: logger.With("gig_id", id).Info("gig assigned")
func With(args ...any) *slog.Logger {
	return Get().With(args...)
}
