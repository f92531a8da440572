package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs Validate plus checks against the filesystem.
func (c *Config) ValidateDeep(configPath string) error {
	var errs criterio.FieldErrorsBuilder

	if err := c.Validate(); err != nil {
		var fieldErrs criterio.FieldErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			errs = errs.Append(fe.Field, fe.Err)
		}
	}

	if configPath != "" {
		if info, err := os.Stat(configPath); err == nil && info.IsDir() {
			errs = errs.Append("config", fmt.Errorf("%s is a directory, not a file", configPath))
		} else if err != nil && !os.IsNotExist(err) {
			errs = errs.Append("config", fmt.Errorf("cannot access %s: %w", configPath, err))
		}
	}

	if c.DataDir != "" {
		if info, err := os.Stat(c.DataDir); err == nil && !info.IsDir() {
			errs = errs.Append("data_dir", fmt.Errorf("%s exists but is not a directory", c.DataDir))
		}
	}

	if key, ok := c.Storage.BackendKey(); ok {
		if info, err := os.Stat(key.Database); err == nil && info.IsDir() {
			errs = errs.Append("storage.database", fmt.Errorf("%s is a directory", key.Database))
		}
	}

	return errs.ToError()
}

// Warnings returns non-fatal issues with the configuration.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if _, ok := c.Storage.BackendKey(); !ok {
		warnings = append(warnings, ValidationWarning{
			Category: "Storage",
			Item:     "storage.database",
			Message:  "persistence disabled; favorites only last for the session",
		})
	}

	if c.MaxFavorites < 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Favorites",
			Item:     "max_favorites",
			Message:  fmt.Sprintf("negative value %d is treated as 0", c.MaxFavorites),
		})
	} else if c.MaxFavorites == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Favorites",
			Item:     "max_favorites",
			Message:  "set to 0; no favorites will be kept",
		})
	}

	return warnings
}
