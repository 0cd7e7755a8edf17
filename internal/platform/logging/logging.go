package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	hclog "github.com/hashicorp/go-hclog"

	"grafik/internal/platform/config"
)

// New builds the root logger. The TUI owns the terminal, so output goes to
// a file in the state dir unless verbose mode asks for stderr.
func New(cfg config.Config) (hclog.Logger, io.Closer, error) {
	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if !cfg.Verbose {
		if err := os.MkdirAll(filepath.Dir(cfg.LogPath()), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}
	level := hclog.LevelFromString(cfg.Log.Level)
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	if cfg.Verbose && level > hclog.Debug {
		level = hclog.Debug
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "grafik",
		Level:      level,
		Output:     out,
		JSONFormat: cfg.Log.JSON,
	})
	return logger, closer, nil
}

// OrNull keeps constructors tolerant of a missing logger.
func OrNull(logger hclog.Logger) hclog.Logger {
	if logger == nil {
		return hclog.NewNullLogger()
	}
	return logger
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
