// Package config resolves settings from defaults, an optional YAML file and
// LISTLIST_* environment variables. Command-line flags are applied on top by
// the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	Backend     string `yaml:"backend"`
	DataDir     string `yaml:"data_dir"`
	RedisURL    string `yaml:"redis_url"`
	RedisPrefix string `yaml:"redis_prefix"`
	ShareOrigin string `yaml:"share_origin"`
	SharePath   string `yaml:"share_path"`
	Theme       string `yaml:"theme"`
	LogFile     string `yaml:"log_file"`
	LogLevel    string `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Backend:     BackendFile,
		DataDir:     defaultDataDir(),
		RedisURL:    "redis://localhost:6379/0",
		RedisPrefix: "listlist:",
		ShareOrigin: "https://listlist.app",
		SharePath:   "/",
		Theme:       "classic",
		LogLevel:    "info",
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".listlist"
	}
	return filepath.Join(home, ".listlist")
}

// DefaultPath is where Load looks when no explicit path is given.
func DefaultPath() string {
	if p := os.Getenv("LISTLIST_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(getenv("LISTLIST_DATA_DIR", defaultDataDir()), "config.yaml")
}

// Load reads path (or DefaultPath when empty) over the defaults, then applies
// the environment. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	c.Backend = getenv("LISTLIST_BACKEND", c.Backend)
	c.DataDir = getenv("LISTLIST_DATA_DIR", c.DataDir)
	c.RedisURL = getenv("LISTLIST_REDIS_URL", c.RedisURL)
	c.RedisPrefix = getenv("LISTLIST_REDIS_PREFIX", c.RedisPrefix)
	c.ShareOrigin = getenv("LISTLIST_SHARE_ORIGIN", c.ShareOrigin)
	c.SharePath = getenv("LISTLIST_SHARE_PATH", c.SharePath)
	c.Theme = getenv("LISTLIST_THEME", c.Theme)
	c.LogFile = getenv("LISTLIST_LOG_FILE", c.LogFile)
	c.LogLevel = getenv("LISTLIST_LOG_LEVEL", c.LogLevel)
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
}

// Validate rejects settings no backend can work with.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	case BackendRedis:
		if c.RedisURL == "" {
			return errors.New("config: redis backend needs redis_url")
		}
	default:
		return fmt.Errorf("config: unknown backend %q (want file|sqlite|redis|memory)", c.Backend)
	}
	if c.DataDir == "" && c.Backend != BackendRedis && c.Backend != BackendMemory {
		return errors.New("config: data_dir is empty")
	}
	if !strings.HasPrefix(c.SharePath, "/") {
		return fmt.Errorf("config: share_path %q must start with /", c.SharePath)
	}
	return nil
}

// SQLitePath is the database file used by the sqlite backend.
func (c Config) SQLitePath() string { return filepath.Join(c.DataDir, "listlist.sqlite") }

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
