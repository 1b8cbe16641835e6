package logging

import "context"

type contextKey string

const (
	runIDKey   contextKey = "run_id"
	commandKey contextKey = "command"
)

// WithRunID tags the context with the id of one CLI invocation.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// WithCommand adds the invoked subcommand name to the context.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, commandKey, command)
}

// GetRunID retrieves the run ID from the context.
// Returns empty string if not present.
func GetRunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// GetCommand retrieves the command name from the context.
// Returns empty string if not present.
func GetCommand(ctx context.Context) string {
	if name, ok := ctx.Value(commandKey).(string); ok {
		return name
	}
	return ""
}
