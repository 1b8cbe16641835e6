package doctor

import (
	"context"
	"errors"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/colonyops/habit/internal/core/task"
	"github.com/colonyops/habit/internal/data/cache"
)

// SnapshotLoader reads the cached snapshot.
type SnapshotLoader interface {
	Load() (task.UserSnapshot, error)
}

// CacheCheck reports the age of the cached snapshot used when offline.
type CacheCheck struct {
	cache SnapshotLoader
	now   func() time.Time
}

// NewCacheCheck creates a new cache check.
func NewCacheCheck(cache SnapshotLoader, now func() time.Time) *CacheCheck {
	return &CacheCheck{cache: cache, now: now}
}

func (c *CacheCheck) Name() string {
	return "Offline Cache"
}

func (c *CacheCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	snap, err := c.cache.Load()
	switch {
	case errors.Is(err, cache.ErrCacheMiss):
		result.add("snapshot", StatusWarn, "nothing cached yet; run 'habit ls' while online")
	case err != nil:
		result.add("snapshot", StatusFail, err.Error())
	default:
		detail := humanize.RelTime(snap.FetchedAt, c.now(), "ago", "from now")
		result.add("snapshot", StatusPass, "fetched "+detail)
	}

	return result
}
