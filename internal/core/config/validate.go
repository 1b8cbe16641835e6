package config

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration
// including file accessibility and credential shape. The configPath argument
// specifies the config file location to validate (empty string skips config
// file check). This calls Validate() first for basic structural validation.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		c.validateCredentials(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	for tag := range c.Colors {
		if !c.IsCategory(tag) {
			warnings = append(warnings, ValidationWarning{
				Category: "Colors",
				Item:     tag,
				Message:  "color set for a tag that is not a category; it only applies to listings when the tag is primary",
			})
		}
	}

	if c.Source == SourceEnv {
		warnings = append(warnings, ValidationWarning{
			Category: "Source",
			Message:  "configuration read from the environment; the config file is ignored",
		})
	}

	return warnings
}

// validateFileAccess checks config file and data directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine when the environment supplies credentials
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

// validateCredentials rejects placeholders and checks the user id is a UUID.
func (c *Config) validateCredentials() error {
	var errs criterio.FieldErrorsBuilder

	switch {
	case c.UserID == Placeholder:
		errs = errs.Append("user_id", fmt.Errorf("still the placeholder %q; set your Habitica user id", Placeholder))
	default:
		if _, err := uuid.Parse(c.UserID); err != nil {
			errs = errs.Append("user_id", fmt.Errorf("not a valid user id: %w", err))
		}
	}

	if c.APIKey == Placeholder {
		errs = errs.Append("api_key", fmt.Errorf("still the placeholder %q; set your Habitica API token", Placeholder))
	}

	return errs.ToError()
}
