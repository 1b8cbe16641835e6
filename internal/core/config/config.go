// Package config handles configuration loading and validation for habit.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/habit/internal/core/dates"
	"github.com/colonyops/habit/internal/core/styles"
)

// Placeholder is written for credentials in a freshly created config file.
const Placeholder = "-1"

// DefaultAPIURL is the Habitica API root.
const DefaultAPIURL = "https://habitica.com/api/v3"

// Config holds the application configuration.
type Config struct {
	UserID     string            `yaml:"user_id"`
	APIKey     string            `yaml:"api_key"`
	APIURL     string            `yaml:"api_url"`
	Timezone   string            `yaml:"timezone"`
	Categories []string          `yaml:"categories"` // category tags, in display order
	Colors     map[string]string `yaml:"colors"`     // tag name -> color name

	DataDir string `yaml:"-"` // set by caller, not from config file
	Source  string `yaml:"-"` // config file path, or "env"
	Created bool   `yaml:"-"` // true when Load wrote the default file
}

// DefaultConfig returns a Config with placeholder credentials.
func DefaultConfig() Config {
	return Config{
		UserID:     Placeholder,
		APIKey:     Placeholder,
		APIURL:     DefaultAPIURL,
		Categories: []string{"morning", "afternoon", "evening"},
		Colors:     map[string]string{},
	}
}

// Load builds the configuration. When HABIT_USER_ID, HABIT_API_KEY and
// HABIT_TASKS are all set the file is neither read nor created. Otherwise the
// file at configPath is read, and written with defaults first if missing.
// HABIT_TZ overrides the timezone either way.
func Load(configPath, dataDir string) (*Config, error) {
	return load(configPath, dataDir, os.Getenv)
}

func load(configPath, dataDir string, getenv func(string) string) (*Config, error) {
	env := readEnv(getenv)

	cfg := DefaultConfig()
	switch {
	case env.complete():
		cfg.UserID = env.UserID
		cfg.APIKey = env.APIKey
		cfg.Categories, cfg.Colors = parseTasks(env.Tasks)
		cfg.Source = SourceEnv
	case configPath == "":
		return nil, fmt.Errorf("no config path and %s, %s, %s not all set", EnvUserID, EnvAPIKey, EnvTasks)
	default:
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			if err := WriteDefault(configPath); err != nil {
				return nil, err
			}
			cfg.Created = true
		}

		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
		cfg.Source = configPath
	}

	if env.Timezone != "" {
		cfg.Timezone = env.Timezone
	}
	cfg.DataDir = dataDir

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// WriteDefault writes the placeholder configuration to path, creating parent
// directories. An existing file is left untouched.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("encode default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.Colors == nil {
		c.Colors = map[string]string{}
	}
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if c.UserID == "" {
		return fmt.Errorf("user_id cannot be empty")
	}

	if c.APIKey == "" {
		return fmt.Errorf("api_key cannot be empty")
	}

	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if len(c.Categories) == 0 {
		return fmt.Errorf("categories cannot be empty")
	}

	seen := make(map[string]bool, len(c.Categories))
	for i, cat := range c.Categories {
		if cat == "" {
			return fmt.Errorf("categories[%d] cannot be empty", i)
		}
		if seen[cat] {
			return fmt.Errorf("duplicate category %q", cat)
		}
		seen[cat] = true
	}

	for tag, color := range c.Colors {
		if !styles.IsColor(color) {
			return fmt.Errorf("colors[%q]: unknown color %q (valid: %s)", tag, color, strings.Join(styles.ColorNames(), ", "))
		}
	}

	if _, err := dates.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}

	return nil
}

// Color returns the configured color name for a tag.
func (c *Config) Color(tag string) (string, bool) {
	color, ok := c.Colors[tag]
	return color, ok && color != ""
}

// IsCategory reports whether tag is a category tag.
func (c *Config) IsCategory(tag string) bool {
	return slices.Contains(c.Categories, tag)
}

// Location returns the configured timezone, falling back to local time.
// Validate has already checked the name.
func (c *Config) Location() *time.Location {
	loc, err := dates.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// CacheFile returns the path to the snapshot cache.
func (c *Config) CacheFile() string {
	return filepath.Join(c.DataDir, "cache.json")
}
