// Package config resolves runtime settings from defaults, an optional YAML
// file, a .env file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvConfig   = "TODO_CONFIG"
	EnvDBPath   = "TODO_DB_PATH"
	EnvLogLevel = "LOG_LEVEL"
	EnvLogFile  = "TODO_LOG_FILE"
	EnvWorkers  = "TODO_WORKERS"
	EnvTheme    = "TODO_THEME"
)

// DefaultFile is picked up from the working directory when present.
const DefaultFile = "todo.yaml"

type Config struct {
	DBPath   string `yaml:"db_path"`
	LogLevel string `yaml:"log_level"`
	// LogFile receives logs; empty means next to the database while the
	// screen is running and stderr otherwise.
	LogFile string `yaml:"log_file"`
	Workers int    `yaml:"workers"`
	Theme   string `yaml:"theme"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DBPath:   "todo.db",
		LogLevel: "info",
		Workers:  4,
		Theme:    "classic",
	}
}

// Load builds a Config. path is an explicit YAML file (it must exist);
// when empty, TODO_CONFIG and then ./todo.yaml are tried and may be absent.
func Load(path string) (Config, error) {
	cfg := Default()

	// .env only fills variables that are not already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfig)
		explicit = path != ""
	}
	if !explicit {
		path = DefaultFile
	}
	if err := cfg.mergeFile(path, explicit); err != nil {
		return cfg, err
	}
	if err := cfg.mergeEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) mergeFile(path string, required bool) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	if v := getEnv(EnvDBPath); v != "" {
		c.DBPath = v
	}
	if v := getEnv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getEnv(EnvLogFile); v != "" {
		c.LogFile = v
	}
	if v := getEnv(EnvTheme); v != "" {
		c.Theme = v
	}
	if v := getEnv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: not a number: %s", EnvWorkers, v)
		}
		c.Workers = n
	}
	return nil
}

// Validate rejects settings the app cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("db path is empty")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

// ScreenLogFile is where logs go while the screen owns the terminal.
func (c Config) ScreenLogFile() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	if c.DBPath == ":memory:" {
		return "todo.log"
	}
	return filepath.Join(filepath.Dir(c.DBPath), "todo.log")
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
