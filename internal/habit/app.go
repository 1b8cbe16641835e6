// Package habit wires the remote client, the cache, and the core task logic
// into the operations the CLI exposes.
package habit

import (
	"github.com/colonyops/habit/internal/core/config"
	"github.com/colonyops/habit/internal/core/dates"
	"github.com/colonyops/habit/internal/core/logging"
)

// App is the central entry point for all habit operations.
// Commands consume App instead of cherry-picking raw dependencies.
type App struct {
	Tasks  *TaskService
	Doctor *DoctorService
	Dates  *dates.Resolver
	Config *config.Config
}

// NewApp constructs an App from explicit dependencies.
func NewApp(cfg *config.Config, remote Remote, cache Cache, resolver *dates.Resolver) *App {
	return &App{
		Tasks:  NewTaskService(remote, cache, resolver, cfg.Categories, logging.Component("task-service")),
		Doctor: NewDoctorService(cfg, remote, cache, resolver),
		Dates:  resolver,
		Config: cfg,
	}
}
