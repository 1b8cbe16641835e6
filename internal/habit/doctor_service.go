package habit

import (
	"context"

	"github.com/colonyops/habit/internal/core/config"
	"github.com/colonyops/habit/internal/core/dates"
	"github.com/colonyops/habit/internal/core/doctor"
)

// DoctorService runs health checks on the habit setup.
type DoctorService struct {
	config *config.Config
	remote Remote
	cache  Cache
	dates  *dates.Resolver
}

// NewDoctorService creates a new DoctorService.
func NewDoctorService(cfg *config.Config, remote Remote, cache Cache, resolver *dates.Resolver) *DoctorService {
	return &DoctorService{
		config: cfg,
		remote: remote,
		cache:  cache,
		dates:  resolver,
	}
}

// RunChecks executes all doctor checks and returns results.
func (d *DoctorService) RunChecks(ctx context.Context, configPath string) []doctor.Result {
	checks := []doctor.Check{
		doctor.NewConfigCheck(d.config, configPath),
		doctor.NewRemoteCheck(d.remote, d.config.APIURL),
		doctor.NewCacheCheck(d.cache, d.dates.Now),
	}
	return doctor.RunAll(ctx, checks)
}
