package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validUserID = "0b6e6f7a-3c4d-4e5f-8a9b-0c1d2e3f4a5b"

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestLoad_CreatesDefaultFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "habit", "config.yaml")

	cfg, err := load(path, dir, envMap(nil))
	require.NoError(t, err)

	assert.True(t, cfg.Created)
	assert.Equal(t, path, cfg.Source)
	assert.Equal(t, Placeholder, cfg.UserID)
	assert.Equal(t, Placeholder, cfg.APIKey)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, []string{"morning", "afternoon", "evening"}, cfg.Categories)
	assert.FileExists(t, path)

	again, err := load(path, dir, envMap(nil))
	require.NoError(t, err)
	assert.False(t, again.Created)
}

func TestLoad_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `user_id: ` + validUserID + `
api_key: key
timezone: UTC
categories: [work, home]
colors:
  work: red
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := load(path, dir, envMap(nil))
	require.NoError(t, err)

	assert.False(t, cfg.Created)
	assert.Equal(t, validUserID, cfg.UserID)
	assert.Equal(t, "key", cfg.APIKey)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, []string{"work", "home"}, cfg.Categories)
	assert.Equal(t, "UTC", cfg.Location().String())
	assert.Equal(t, filepath.Join(dir, "cache.json"), cfg.CacheFile())

	color, ok := cfg.Color("work")
	assert.True(t, ok)
	assert.Equal(t, "red", color)

	_, ok = cfg.Color("home")
	assert.False(t, ok)
}

func TestLoad_EnvBypassesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg, err := load(path, dir, envMap(map[string]string{
		EnvUserID: validUserID,
		EnvAPIKey: "key",
		EnvTasks:  "electro:red, iris ,msl:blue",
	}))
	require.NoError(t, err)

	assert.Equal(t, SourceEnv, cfg.Source)
	assert.Equal(t, []string{"electro", "iris", "msl"}, cfg.Categories)
	assert.Equal(t, map[string]string{"electro": "red", "msl": "blue"}, cfg.Colors)
	assert.NoFileExists(t, path)
}

func TestLoad_PartialEnvUsesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg, err := load(path, dir, envMap(map[string]string{EnvUserID: validUserID}))
	require.NoError(t, err)

	assert.True(t, cfg.Created)
	assert.Equal(t, Placeholder, cfg.UserID)
}

func TestLoad_TimezoneOverride(t *testing.T) {
	dir := t.TempDir()

	cfg, err := load(filepath.Join(dir, "config.yaml"), dir, envMap(map[string]string{EnvTZ: "UTC"}))
	require.NoError(t, err)
	assert.Equal(t, "UTC", cfg.Timezone)

	_, err = load(filepath.Join(dir, "config.yaml"), dir, envMap(map[string]string{EnvTZ: "Not/AZone"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timezone")
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories: [unterminated"), 0o600))

	_, err := load(path, dir, envMap(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestWriteDefault_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefault(path))
	require.Error(t, WriteDefault(path))
}

func TestParseTasks(t *testing.T) {
	cats, colors := parseTasks("a:red,,b, c : green ")
	assert.Equal(t, []string{"a", "b", "c"}, cats)
	assert.Equal(t, map[string]string{"a": "red", "c": "green"}, colors)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.DataDir = "/tmp/habit"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "empty user", mutate: func(c *Config) { c.UserID = "" }, wantErr: "user_id"},
		{name: "empty key", mutate: func(c *Config) { c.APIKey = "" }, wantErr: "api_key"},
		{name: "no data dir", mutate: func(c *Config) { c.DataDir = "" }, wantErr: "data directory"},
		{name: "no categories", mutate: func(c *Config) { c.Categories = nil }, wantErr: "categories cannot be empty"},
		{name: "blank category", mutate: func(c *Config) { c.Categories = []string{"a", ""} }, wantErr: "categories[1]"},
		{name: "duplicate category", mutate: func(c *Config) { c.Categories = []string{"a", "a"} }, wantErr: "duplicate category"},
		{name: "unknown color", mutate: func(c *Config) { c.Colors = map[string]string{"a": "mauve"} }, wantErr: "unknown color"},
		{name: "bad timezone", mutate: func(c *Config) { c.Timezone = "Mars/Olympus" }, wantErr: "timezone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)

	names := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		names[i] = fe.Field
	}
	return names
}

func TestValidateDeep_Placeholders(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()

	names := fieldNames(t, cfg.ValidateDeep(""))
	assert.ElementsMatch(t, []string{"user_id", "api_key"}, names)
}

func TestValidateDeep_UserIDShape(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.UserID = "not-a-uuid"
	cfg.APIKey = "key"

	assert.Equal(t, []string{"user_id"}, fieldNames(t, cfg.ValidateDeep("")))
}

func TestValidateDeep_Valid(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.DataDir = dir
	cfg.UserID = validUserID
	cfg.APIKey = "key"

	require.NoError(t, cfg.ValidateDeep(filepath.Join(dir, "missing.yaml")))
	assert.Equal(t, []string{"config_file"}, fieldNames(t, cfg.ValidateDeep(dir)))
}

func TestValidateDeep_DataDirIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	cfg := DefaultConfig()
	cfg.UserID = validUserID
	cfg.APIKey = "key"
	cfg.DataDir = file

	assert.Equal(t, []string{"data_dir"}, fieldNames(t, cfg.ValidateDeep("")))
}

func TestWarnings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Colors = map[string]string{"morning": "red", "urgent": "yellow"}
	cfg.Source = SourceEnv

	warnings := cfg.Warnings()
	require.Len(t, warnings, 2)
	assert.Equal(t, "Colors", warnings[0].Category)
	assert.Equal(t, "urgent", warnings[0].Item)
	assert.Equal(t, "Source", warnings[1].Category)
}
