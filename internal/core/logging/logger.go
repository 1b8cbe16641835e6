package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component returns a child of the global logger tagged with cmp=name,
// e.g. "task-service" or "habitica".
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}
