package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"grafik/internal/platform/config"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadMergesYAMLAndEnvFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	envPath := filepath.Join(dir, "test.env")
	writeFile(t, cfgPath, `
base_url: https://grafik.example/api/
state_dir: `+dir+`
runtime_dir: `+dir+`
retry_delay: 500ms
month_cache_ttl: 90s
cache:
  backend: sqlite
`)
	writeFile(t, envPath, "GRAFIK_LANGUAGE=en\nGRAFIK_KEEPALIVE_INTERVAL=3m\n")

	cfg, err := config.Load(config.LoadOptions{Path: cfgPath, EnvFile: envPath})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseURL != "https://grafik.example/api" {
		t.Fatalf("expected trimmed base url, got %s", cfg.BaseURL)
	}
	if cfg.RetryDelay != 500*time.Millisecond || cfg.MonthCacheTTL != 90*time.Second {
		t.Fatalf("yaml durations not applied: %+v", cfg)
	}
	if cfg.Language != "en" || cfg.KeepAliveInterval != 3*time.Minute {
		t.Fatalf("env file not applied: %+v", cfg)
	}
	if cfg.DBPath() != filepath.Join(dir, "grafik.db") {
		t.Fatalf("unexpected db path %s", cfg.DBPath())
	}
	if cfg.SessionTokenPath() != filepath.Join(dir, "grafik", "session-token.json") {
		t.Fatalf("unexpected session token path %s", cfg.SessionTokenPath())
	}
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cases := map[string]string{
		"slow retry":    "retry_delay: 2s\n",
		"bad backend":   "cache:\n  backend: memcached\n",
		"redis no addr": "cache:\n  backend: redis\n",
		"bad ephemeral": "session:\n  ephemeral: cookie\n",
	}
	for name, body := range cases {
		path := filepath.Join(dir, name+".yaml")
		writeFile(t, path, "state_dir: "+dir+"\nruntime_dir: "+dir+"\n"+body)
		if _, err := config.Load(config.LoadOptions{Path: path, EnvFile: filepath.Join(dir, "none.env")}); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadFailsOnMissingExplicitFile(t *testing.T) {
	t.Parallel()
	if _, err := config.Load(config.LoadOptions{Path: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestProcessEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	writeFile(t, cfgPath, "base_url: http://file.example/api\nstate_dir: "+dir+"\nruntime_dir: "+dir+"\n")
	t.Setenv("GRAFIK_BASE_URL", "http://env.example/api")
	t.Setenv("GRAFIK_CACHE_BACKEND", "redis")
	t.Setenv("GRAFIK_REDIS_ADDR", "localhost:6379")
	t.Setenv("GRAFIK_REDIS_DB", "3")

	cfg, err := config.Load(config.LoadOptions{Path: cfgPath, EnvFile: filepath.Join(dir, "absent.env")})
	if err == nil {
		t.Fatalf("expected error for explicit missing env file")
	}
	cfg, err = config.Load(config.LoadOptions{Path: cfgPath})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseURL != "http://env.example/api" {
		t.Fatalf("expected env base url, got %s", cfg.BaseURL)
	}
	if cfg.Cache.Backend != config.CacheBackendRedis || cfg.Cache.Redis.DB != 3 {
		t.Fatalf("expected redis backend db 3, got %+v", cfg.Cache)
	}
}
