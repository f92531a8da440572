// Package config handles configuration loading and validation for favs.
package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"regexp"

	"github.com/hay-kot/criterio"
	"github.com/hay-kot/favs/internal/core/favorite"
	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverJSONFile = "jsonfile"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Config holds the application configuration.
type Config struct {
	// User is the identity favorites are persisted under.
	User string `yaml:"user"`
	// Server identifies the server favorites belong to within a session.
	Server       string  `yaml:"server"`
	MaxFavorites int     `yaml:"max_favorites"`
	Storage      Storage `yaml:"storage"`
	DataDir      string  `yaml:"-"` // set by caller, not from config file
}

// Storage selects the persistent backend. Persistence is enabled only when
// both Database and Table are set.
type Storage struct {
	Driver   string `yaml:"driver"`
	Database string `yaml:"database"`
	Table    string `yaml:"table"`
}

// BackendKey returns where favorites are persisted, or false when
// persistence is disabled.
func (s Storage) BackendKey() (favorite.BackendKey, bool) {
	return favorite.NewBackendKey(s.Database, s.Table)
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		User:         currentUser(),
		Server:       "local",
		MaxFavorites: 10,
		Storage: Storage{
			Driver: DriverSQLite,
			Table:  "favorite_tables",
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.User == "" {
		c.User = defaults.User
	}
	if c.Server == "" {
		c.Server = defaults.Server
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = defaults.Storage.Driver
	}
	if c.Storage.Database != "" && !filepath.IsAbs(c.Storage.Database) && c.DataDir != "" {
		c.Storage.Database = filepath.Join(c.DataDir, c.Storage.Database)
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.DataDir == "" {
		errs = errs.Append("data_dir", fmt.Errorf("cannot be empty"))
	}

	if c.Server == "" {
		errs = errs.Append("server", fmt.Errorf("cannot be empty"))
	}

	if _, ok := c.Storage.BackendKey(); ok && c.User == "" {
		errs = errs.Append("user", fmt.Errorf("required when storage is enabled"))
	}

	switch c.Storage.Driver {
	case DriverSQLite, DriverJSONFile:
	default:
		errs = errs.Append("storage.driver", fmt.Errorf("unknown driver %q (want %s or %s)", c.Storage.Driver, DriverSQLite, DriverJSONFile))
	}

	if c.Storage.Table != "" && !identRe.MatchString(c.Storage.Table) {
		errs = errs.Append("storage.table", fmt.Errorf("%q is not a valid identifier", c.Storage.Table))
	}

	return errs.ToError()
}

// SessionsFile returns the path to the session cache file.
func (c *Config) SessionsFile() string {
	return filepath.Join(c.DataDir, "sessions.json")
}

// Bound returns the effective size limit of a favorites list.
func (c *Config) Bound() int {
	return max(c.MaxFavorites, 0)
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
