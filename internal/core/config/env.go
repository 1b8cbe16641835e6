package config

import "strings"

// Environment variables read by Load.
const (
	EnvUserID = "HABIT_USER_ID"
	EnvAPIKey = "HABIT_API_KEY"
	EnvTasks  = "HABIT_TASKS"
	EnvTZ     = "HABIT_TZ"
)

// SourceEnv is Config.Source when the configuration came from the environment.
const SourceEnv = "env"

type envOverride struct {
	UserID   string
	APIKey   string
	Tasks    string
	Timezone string
}

func readEnv(getenv func(string) string) envOverride {
	return envOverride{
		UserID:   strings.TrimSpace(getenv(EnvUserID)),
		APIKey:   strings.TrimSpace(getenv(EnvAPIKey)),
		Tasks:    strings.TrimSpace(getenv(EnvTasks)),
		Timezone: strings.TrimSpace(getenv(EnvTZ)),
	}
}

func (e envOverride) complete() bool {
	return e.UserID != "" && e.APIKey != "" && e.Tasks != ""
}

// parseTasks reads a comma list of "name" or "name:color" entries.
func parseTasks(s string) ([]string, map[string]string) {
	var categories []string
	colors := map[string]string{}

	for _, part := range strings.Split(s, ",") {
		name, color, _ := strings.Cut(part, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		categories = append(categories, name)
		if color = strings.TrimSpace(color); color != "" {
			colors[name] = color
		}
	}

	return categories, colors
}
