// Package config loads the tasks configuration.
//
// Configuration comes from a single YAML file named by the --config flag or
// the TASKS_CONFIG environment variable. Without either, defaults apply.
// TASKS_BACKEND, TASKS_DIR, TASKS_KEY and TASKS_LOG_LEVEL override
// individual values after the file is read.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	taskerrors "github.com/abatilo/tasks/internal/errors"
	"github.com/abatilo/tasks/internal/logging"
	"github.com/abatilo/tasks/internal/storage"
)

// Backend names a slot implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

const (
	// EnvConfig names the environment variable holding the config path.
	EnvConfig = "TASKS_CONFIG"

	envBackend  = "TASKS_BACKEND"
	envDir      = "TASKS_DIR"
	envKey      = "TASKS_KEY"
	envLogLevel = "TASKS_LOG_LEVEL"

	defaultDatabase = "tasks.db"
	defaultLogLevel = "warn"
)

// Config is the tasks configuration.
type Config struct {
	// Backend selects where the slot lives: file, sqlite or memory.
	Backend Backend `yaml:"backend"`

	// Dir holds the slot file or the database. Empty means the
	// project-scoped default under ~/.tasks.
	Dir string `yaml:"dir"`

	// Key is the slot name.
	Key string `yaml:"key"`

	// Database is the SQLite file name inside Dir.
	Database string `yaml:"database"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Backend:  BackendFile,
		Key:      storage.DefaultKey,
		Database: defaultDatabase,
		LogLevel: defaultLogLevel,
	}
}

// Load reads the file named by path, or by TASKS_CONFIG when path is
// empty, applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if cfg.Dir != "" {
		cfg.Dir = expandPath(cfg.Dir)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) applyEnv() {
	if v := os.Getenv(envBackend); v != "" {
		c.Backend = Backend(strings.ToLower(v))
	}
	if v := os.Getenv(envDir); v != "" {
		c.Dir = v
	}
	if v := os.Getenv(envKey); v != "" {
		c.Key = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return taskerrors.UnknownBackendError{Backend: string(c.Backend)}
	}
	if strings.TrimSpace(c.Key) == "" {
		return taskerrors.MissingKeyError{}
	}
	if c.Key == "." || c.Key == ".." || strings.ContainsAny(c.Key, `/\`) {
		return taskerrors.InvalidKeyError{Key: c.Key}
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ResolveDir returns Dir, or the project-scoped default when Dir is empty.
func (c *Config) ResolveDir() (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}
	return storage.DefaultDir()
}

// DatabasePath returns the SQLite file path for dir.
func (c *Config) DatabasePath(dir string) string {
	if filepath.IsAbs(c.Database) {
		return c.Database
	}
	return filepath.Join(dir, c.Database)
}

var varPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandPath expands a leading ~ and ${VAR} references.
func expandPath(s string) string {
	if s == "~" || strings.HasPrefix(s, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			s = filepath.Join(home, strings.TrimPrefix(s, "~"))
		}
	}
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := varPattern.FindStringSubmatch(match)[1]
		return os.Getenv(name)
	})
}
