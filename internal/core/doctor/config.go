package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/habit/internal/core/config"
)

// ConfigCheck reports where the configuration came from and whether it
// passes deep validation.
type ConfigCheck struct {
	cfg        *config.Config
	configPath string
}

// NewConfigCheck creates a new configuration check.
func NewConfigCheck(cfg *config.Config, configPath string) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, configPath: configPath}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	source := c.cfg.Source
	if source == config.SourceEnv {
		source = "environment variables"
	}
	result.add("source", StatusPass, source)

	err := c.cfg.ValidateDeep(c.configPath)

	var fieldErrs criterio.FieldErrors
	switch {
	case err == nil:
		result.add("validation", StatusPass, "")
	case errors.As(err, &fieldErrs):
		for _, fe := range fieldErrs {
			result.add(fe.Field, StatusFail, fmt.Sprint(fe.Err))
		}
	default:
		result.add("validation", StatusFail, err.Error())
	}

	for _, w := range c.cfg.Warnings() {
		label := w.Category
		if w.Item != "" {
			label += " " + w.Item
		}
		result.add(label, StatusWarn, w.Message)
	}

	return result
}
