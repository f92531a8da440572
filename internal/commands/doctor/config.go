package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hay-kot/criterio"
	"github.com/hay-kot/favs/internal/core/config"
)

// ConfigCheck reports where the configuration came from, whether it is
// valid and which identity favorites are kept under.
type ConfigCheck struct {
	config     *config.Config
	configPath string
}

// NewConfigCheck creates a new configuration check.
func NewConfigCheck(cfg *config.Config, configPath string) *ConfigCheck {
	return &ConfigCheck{
		config:     cfg,
		configPath: configPath,
	}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	if c.config == nil {
		result.add(Fail("Config loaded", "configuration not loaded"))
		return result
	}

	result.add(c.source())

	if err := c.config.ValidateDeep(c.configPath); err != nil {
		result.add(validationFindings(err)...)
		return result
	}

	result.add(
		Pass("Identity", fmt.Sprintf("user %q on server %q", c.config.User, c.config.Server)),
		Pass("Session cache", c.config.SessionsFile()),
	)

	for _, w := range c.config.Warnings() {
		// Disabled storage is reported by StorageCheck.
		if w.Category == "Storage" {
			continue
		}
		result.add(Warn(w.Item, w.Message))
	}

	if c.config.MaxFavorites > 0 {
		result.add(Pass("Favorites limit", fmt.Sprintf("%d per server", c.config.MaxFavorites)))
	}

	return result
}

// source reports the config file in use. A missing file is fine: defaults
// apply.
func (c *ConfigCheck) source() Finding {
	if c.configPath == "" {
		return Pass("Config file", "none given, using defaults")
	}
	if _, err := os.Stat(c.configPath); os.IsNotExist(err) {
		return Pass("Config file", c.configPath+" not found, using defaults")
	}
	return Pass("Config file", c.configPath)
}

func validationFindings(err error) []Finding {
	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []Finding{Fail("validation", err.Error())}
	}

	findings := make([]Finding, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		label := fe.Field
		if label == "" {
			label = "validation"
		}
		findings = append(findings, Fail(label, fe.Err.Error()))
	}
	return findings
}
