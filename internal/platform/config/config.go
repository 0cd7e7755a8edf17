package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	CacheBackendSQLite = "sqlite"
	CacheBackendRedis  = "redis"

	EphemeralFile   = "file"
	EphemeralMemory = "memory"

	maxRetryDelay = 999 * time.Millisecond
)

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type CacheConfig struct {
	Backend string      `yaml:"backend"`
	Redis   RedisConfig `yaml:"redis"`
}

type SessionConfig struct {
	Ephemeral string `yaml:"ephemeral"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

type Config struct {
	BaseURL           string        `yaml:"base_url"`
	LoginPath         string        `yaml:"login_path"`
	StateDir          string        `yaml:"state_dir"`
	RuntimeDir        string        `yaml:"runtime_dir"`
	Timezone          string        `yaml:"timezone"`
	Language          string        `yaml:"language"`
	RetryDelay        time.Duration `yaml:"retry_delay"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	KeepAliveInterval time.Duration `yaml:"keepalive_interval"`
	MonthCacheTTL     time.Duration `yaml:"month_cache_ttl"`
	Cache             CacheConfig   `yaml:"cache"`
	Session           SessionConfig `yaml:"session"`
	Log               LogConfig     `yaml:"log"`
	Verbose           bool          `yaml:"-"`
}

type LoadOptions struct {
	// Path is the YAML config file. Empty means the user config dir default;
	// a missing default file is not an error.
	Path    string
	EnvFile string
}

func Default() Config {
	return Config{
		BaseURL:           "http://localhost:5000/api",
		LoginPath:         "/login",
		Timezone:          "Europe/Warsaw",
		Language:          "pl",
		RetryDelay:        700 * time.Millisecond,
		RequestTimeout:    15 * time.Second,
		KeepAliveInterval: 4 * time.Minute,
		MonthCacheTTL:     2 * time.Minute,
		Cache:             CacheConfig{Backend: CacheBackendSQLite},
		Session:           SessionConfig{Ephemeral: EphemeralFile},
		Log:               LogConfig{Level: "info"},
	}
}

func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	path, explicit := opts.Path, opts.Path != ""
	if !explicit {
		if dir, err := os.UserConfigDir(); err == nil {
			path = filepath.Join(dir, "grafik", "config.yaml")
		}
	}
	if path != "" {
		payload, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(payload, &cfg); err != nil {
				return Config{}, fmt.Errorf("decode config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	env, err := readEnv(opts.EnvFile)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.applyEnv(env); err != nil {
		return Config{}, err
	}
	if err := cfg.finish(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DBPath is the local SQLite file holding the month cache and preferences.
func (c Config) DBPath() string {
	return filepath.Join(c.StateDir, "grafik.db")
}

func (c Config) TokenPath() string {
	return filepath.Join(c.StateDir, "token.json")
}

func (c Config) SessionTokenPath() string {
	return filepath.Join(c.RuntimeDir, "grafik", "session-token.json")
}

func (c Config) LogPath() string {
	return filepath.Join(c.StateDir, "grafik.log")
}

// readEnv merges the .env file under the process environment; the
// process environment wins.
func readEnv(envFile string) (map[string]string, error) {
	merged := map[string]string{}
	file := envFile
	if file == "" {
		file = ".env"
	}
	values, err := godotenv.Read(file)
	switch {
	case err == nil:
		for k, v := range values {
			merged[k] = v
		}
	case errors.Is(err, os.ErrNotExist) && envFile == "":
	default:
		return nil, fmt.Errorf("read env file: %w", err)
	}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, "GRAFIK_") {
			merged[k] = v
		}
	}
	return merged, nil
}

func (c *Config) applyEnv(env map[string]string) error {
	str := func(key string, dst *string) {
		if v, ok := env[key]; ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := env[key]
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parse %s: %w", key, err)
		}
		*dst = d
		return nil
	}

	str("GRAFIK_BASE_URL", &c.BaseURL)
	str("GRAFIK_LOGIN_PATH", &c.LoginPath)
	str("GRAFIK_STATE_DIR", &c.StateDir)
	str("GRAFIK_RUNTIME_DIR", &c.RuntimeDir)
	str("GRAFIK_TIMEZONE", &c.Timezone)
	str("GRAFIK_LANGUAGE", &c.Language)
	str("GRAFIK_CACHE_BACKEND", &c.Cache.Backend)
	str("GRAFIK_REDIS_ADDR", &c.Cache.Redis.Addr)
	str("GRAFIK_REDIS_PASSWORD", &c.Cache.Redis.Password)
	str("GRAFIK_SESSION_EPHEMERAL", &c.Session.Ephemeral)
	str("GRAFIK_LOG_LEVEL", &c.Log.Level)
	if v, ok := env["GRAFIK_REDIS_DB"]; ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse GRAFIK_REDIS_DB: %w", err)
		}
		c.Cache.Redis.DB = n
	}
	if v, ok := env["GRAFIK_LOG_JSON"]; ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse GRAFIK_LOG_JSON: %w", err)
		}
		c.Log.JSON = b
	}
	for key, dst := range map[string]*time.Duration{
		"GRAFIK_RETRY_DELAY":        &c.RetryDelay,
		"GRAFIK_REQUEST_TIMEOUT":    &c.RequestTimeout,
		"GRAFIK_KEEPALIVE_INTERVAL": &c.KeepAliveInterval,
		"GRAFIK_MONTH_CACHE_TTL":    &c.MonthCacheTTL,
	} {
		if err := dur(key, dst); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) finish() error {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.StateDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("resolve state dir: %w", err)
		}
		c.StateDir = filepath.Join(dir, "grafik")
	}
	if c.RuntimeDir == "" {
		c.RuntimeDir = os.Getenv("XDG_RUNTIME_DIR")
		if c.RuntimeDir == "" {
			c.RuntimeDir = os.TempDir()
		}
	}
	if c.RetryDelay <= 0 || c.RetryDelay > maxRetryDelay {
		return fmt.Errorf("retry_delay must be in (0, 1s), got %s", c.RetryDelay)
	}
	if c.KeepAliveInterval <= 0 {
		return fmt.Errorf("keepalive_interval must be positive")
	}
	if c.MonthCacheTTL <= 0 {
		return fmt.Errorf("month_cache_ttl must be positive")
	}
	switch c.Cache.Backend {
	case CacheBackendSQLite:
	case CacheBackendRedis:
		if c.Cache.Redis.Addr == "" {
			return fmt.Errorf("cache.redis.addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	switch c.Session.Ephemeral {
	case EphemeralFile, EphemeralMemory:
	default:
		return fmt.Errorf("unknown session.ephemeral %q", c.Session.Ephemeral)
	}
	if c.Language != "pl" && c.Language != "en" {
		c.Language = "pl"
	}
	return nil
}
