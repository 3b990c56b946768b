// Package logging holds the process-wide structured logger.
//
// Logs always go to stderr or a file, never to stdout: stdout carries the
// command protocol and must stay byte-for-byte predictable.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

var (
	logger   *slog.Logger
	loggerMu sync.RWMutex
	logFile  *os.File
)

// Level names accepted in configuration.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Config holds logger configuration.
type Config struct {
	Level      string    // debug, info, warn or error; case insensitive
	Format     string    // "json" or "text"
	OutputPath string    // log file; empty means Writer
	Writer     io.Writer // destination when OutputPath is empty; nil means stderr
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case LevelDebug:
		return slog.LevelDebug, nil
	case LevelInfo, "":
		return slog.LevelInfo, nil
	case LevelWarn, "warning":
		return slog.LevelWarn, nil
	case LevelError:
		return slog.LevelError, nil
	}
	return slog.LevelInfo, errors.Newf("unknown log level %q", name)
}

// Init replaces the global logger. Calling it again closes a log file
// opened by the previous call.
//
// Example:
//
//	err := logging.Init(logging.Config{Level: "debug"})
func Init(cfg Config) error {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return err
	}

	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}
	var file *os.File
	if cfg.OutputPath != "" {
		file, err = os.OpenFile(cfg.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.Wrapf(err, "open log file %s", cfg.OutputPath)
		}
		w = file
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = file
	logger = slog.New(handler)
	return nil
}

// Close releases a log file opened by Init and resets the logger to the
// default.
func Close() error {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	var err error
	if logFile != nil {
		err = logFile.Close()
		logFile = nil
	}
	logger = nil
	return err
}

// GetLogger returns the global logger, falling back to an info-level text
// logger on stderr when Init has not been called.
func GetLogger() *slog.Logger {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	if l != nil {
		return l
	}

	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return logger
}
