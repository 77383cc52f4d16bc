// Package logging builds the process logger. Output goes to a file: the TUI owns
// the terminal and stderr writes would corrupt it.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	// Level is a zap level name ("debug", "info", ...). "off" or "none" disables logging.
	Level string
	// Path is the log file. Empty disables logging.
	Path string
}

// New returns a JSON production logger appending to opts.Path, or a no-op logger
// when logging is off.
func New(opts Options) (*zap.Logger, error) {
	level := strings.ToLower(strings.TrimSpace(opts.Level))
	if level == "off" || level == "none" || strings.TrimSpace(opts.Path) == "" {
		return zap.NewNop(), nil
	}
	if level == "" {
		level = "info"
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{opts.Path}
	cfg.ErrorOutputPaths = []string{opts.Path}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Sampling = nil
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.With(zap.Int("pid", os.Getpid())), nil
}
