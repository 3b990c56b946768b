package logging

import "log/slog"

// WithTable creates a logger with table context.
//
// Example:
//
//	log := logging.WithTable("users")
//	log.Info("table loaded", "rows", t.Len())
func WithTable(name string) *slog.Logger {
	return GetLogger().With("table", name)
}

// WithCommand creates a logger with shell command context.
//
// Example:
//
//	log := logging.WithCommand("insert")
//	log.Debug("row inserted", "id", id)
func WithCommand(name string) *slog.Logger {
	return GetLogger().With("command", name)
}

// WithComponent creates a logger with component context.
func WithComponent(component string) *slog.Logger {
	return GetLogger().With("component", component)
}
