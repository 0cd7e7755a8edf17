package logging_test

import (
	"os"
	"strings"
	"testing"

	"grafik/internal/platform/config"
	"grafik/internal/platform/logging"
)

func TestNewWritesToStateDirLogFile(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.StateDir = t.TempDir()
	cfg.Log.Level = "warn"

	logger, closer, err := logging.New(cfg)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Named("gateway").Warn("retrying request", "path", "/health")
	logger.Info("dropped below level")
	if err := closer.Close(); err != nil {
		t.Fatalf("close log: %v", err)
	}

	b, err := os.ReadFile(cfg.LogPath())
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	text := string(b)
	if !strings.Contains(text, "grafik.gateway") || !strings.Contains(text, "path=/health") {
		t.Fatalf("expected named warn entry, got %q", text)
	}
	if strings.Contains(text, "dropped below level") {
		t.Fatalf("info entry should be filtered at warn level")
	}
}

func TestOrNull(t *testing.T) {
	t.Parallel()
	if logging.OrNull(nil) == nil {
		t.Fatalf("expected null logger")
	}
}
