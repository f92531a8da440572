package commands

import (
	"os"
	"path/filepath"

	"github.com/hay-kot/favs/internal/core/config"
	"github.com/hay-kot/favs/internal/core/favorite"
	"github.com/hay-kot/favs/internal/favorites"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string
	Session    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Service hands out the favorites list of the current session
	Service *favorites.Service

	// Backend is the persistent backend, nil when persistence is disabled
	Backend favorite.Pinger
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "favs", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "favs")
}
