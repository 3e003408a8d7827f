package user

import (
	"context"
	"strings"
	"time"

	"github.com/articlekit/core/internal/models"
)

const nameCacheTTL = 24 * time.Hour

// Cache is the TTL key-value store used for display-name lookups.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// DisplayName resolves the presentable name for a user: the full name when
// one has been entered, else the username. Results are cached for a day.
// Cache errors degrade to a direct computation, never a failure.
func DisplayName(ctx context.Context, cache Cache, u *models.UserModel) string {
	key := "username_for_" + u.ID

	if cache != nil {
		if name, err := cache.Get(ctx, key); err == nil && name != "" {
			return name
		}
	}

	name := strings.TrimSpace(u.Name)
	if name == "" {
		name = u.Username
	}

	if cache != nil {
		_ = cache.Set(ctx, key, name, nameCacheTTL)
	}
	return name
}
