// Package main implements tabula, an interactive in-memory table engine.
//
// tabula reads commands from standard input, one per line, and prints
// results to standard output. Tables live in memory for the length of the
// session and can be saved to and loaded from plain text files.
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│                 tabula                  │
//	├─────────────────────────────────────────┤
//	│  config    defaults → YAML → env        │
//	│  logging   slog on stderr or a file     │
//	├─────────────────────────────────────────┤
//	│  shell     prompt, parse, dispatch      │
//	│  registry  name → table                 │
//	│  table     rows + id index              │
//	│  storage   text files, preload          │
//	└─────────────────────────────────────────┘
//
// Configuration:
//   - TABULA_CONFIG: YAML config file (optional)
//   - TABULA_PROMPT: prompt override (default: "==$ ")
//   - TABULA_LOG_LEVEL: debug, info, warn or error (default: warn)
//   - TABULA_COLOR: style status lines when stdout is a terminal
//   - TABULA_INDEX_CAPACITY: initial id index buckets per table
//
// Example usage:
//
//	# interactive
//	./tabula
//
//	# scripted
//	TABULA_PROMPT= ./tabula < session.txt
package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"

	"github.com/dreamware/tabula/internal/config"
	"github.com/dreamware/tabula/internal/hashtable"
	"github.com/dreamware/tabula/internal/logging"
	"github.com/dreamware/tabula/internal/registry"
	"github.com/dreamware/tabula/internal/shell"
	"github.com/dreamware/tabula/internal/storage"
)

// logFatal is a variable to allow mocking log.Fatal in tests.
var logFatal = log.Fatalf

func main() {
	cfg, err := config.Load(os.Getenv)
	if err != nil {
		logFatal("config: %v", err)
		return
	}

	if err := logging.Init(logging.Config{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		OutputPath: cfg.LogFile,
	}); err != nil {
		logFatal("logging: %v", err)
		return
	}
	defer logging.Close()

	// Interrupts end the session at the next line boundary
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		logFatal("tabula: %v", err)
	}
}

// run preloads the configured tables and serves one session from in to out.
func run(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer) error {
	logger := logging.WithComponent("main")

	reg := registry.New(indexOptions(cfg)...)
	if err := preload(ctx, reg, cfg.Preload); err != nil {
		return err
	}
	logger.Info("session started", "tables", reg.Len())

	err := shell.New(reg, in, out, shell.WithConfig(cfg)).Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("session ended", "tables", reg.Len())
	return nil
}

func indexOptions(cfg config.Config) []hashtable.Option {
	if cfg.IndexCapacity <= 0 {
		return nil
	}
	return []hashtable.Option{hashtable.WithCapacity(cfg.IndexCapacity)}
}

// preload loads every source in parallel and registers the results in
// source order.
func preload(ctx context.Context, reg *registry.Registry, sources []storage.Source) error {
	if len(sources) == 0 {
		return nil
	}
	tables, err := storage.LoadAll(ctx, sources, reg.Options()...)
	if err != nil {
		return errors.Wrap(err, "preload")
	}
	for i, t := range tables {
		name := sources[i].Name
		if err := reg.Add(name, t); err != nil {
			return errors.Wrapf(err, "preload %s", name)
		}
		logging.WithTable(name).Info("table preloaded", "file", sources[i].File, "rows", t.Len())
	}
	return nil
}
