package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/colonyops/habit/internal/habitica"
)

// ProfileFetcher reads the user's profile from the remote service.
type ProfileFetcher interface {
	User(ctx context.Context) (habitica.Profile, error)
}

// RemoteCheck verifies the service is reachable and accepts the credentials.
type RemoteCheck struct {
	remote ProfileFetcher
	url    string
}

// NewRemoteCheck creates a new remote connectivity check.
func NewRemoteCheck(remote ProfileFetcher, url string) *RemoteCheck {
	return &RemoteCheck{remote: remote, url: url}
}

func (c *RemoteCheck) Name() string {
	return "Habitica"
}

func (c *RemoteCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	profile, err := c.remote.User(ctx)

	var apiErr *habitica.APIError
	switch {
	case err == nil:
		result.add(c.url, StatusPass, fmt.Sprintf("level %d, %d tags", profile.Stats.Lvl, len(profile.Tags)))
	case errors.Is(err, habitica.ErrUnreachable):
		result.add(c.url, StatusWarn, "unreachable; read commands will use cached data")
	case errors.As(err, &apiErr):
		result.add(c.url, StatusFail, apiErr.Error())
	default:
		result.add(c.url, StatusFail, err.Error())
	}

	return result
}
