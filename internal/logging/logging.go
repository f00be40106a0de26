// Package logging provides category-scoped loggers for voicesketch built on
// zap. Each subsystem logs under its own named logger so a noisy category
// can be found (or silenced) without touching the others.
package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category names a logging subsystem.
type Category string

const (
	CategoryServer    Category = "server"
	CategoryGateway   Category = "gateway"
	CategoryParser    Category = "parser"
	CategoryExecutor  Category = "executor"
	CategorySession   Category = "session"
	CategoryStore     Category = "store"
	CategoryNormalize Category = "normalize"
)

var (
	mu   sync.RWMutex
	root = zap.NewNop().Sugar()
)

// Initialize configures the process-wide logger. Debug mode switches to the
// development encoder with debug-level output.
func Initialize(debug bool) error {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	mu.Lock()
	root = l.Sugar()
	mu.Unlock()
	return nil
}

// Get returns the logger for a category. Before Initialize it returns a
// no-op logger, which keeps test output quiet.
func Get(c Category) *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return root.Named(string(c))
}

// Sync flushes buffered log entries; call at shutdown.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = root.Sync()
}
