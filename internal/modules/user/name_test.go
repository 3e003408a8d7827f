package user

import (
	"context"
	"testing"
	"time"

	"github.com/articlekit/core/internal/models"
)

type memCache struct {
	values map[string]string
	sets   int
	gets   int
}

func newMemCache() *memCache { return &memCache{values: map[string]string{}} }

func (m *memCache) Get(_ context.Context, key string) (string, error) {
	m.gets++
	return m.values[key], nil
}

func (m *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.sets++
	m.values[key] = value.(string)
	return nil
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		user models.UserModel
		want string
	}{
		{"full name set", models.UserModel{Base: models.Base{ID: "u1"}, Username: "jdoe", Name: "Jane Doe"}, "Jane Doe"},
		{"blank full name falls back", models.UserModel{Base: models.Base{ID: "u2"}, Username: "jdoe", Name: "   "}, "jdoe"},
		{"no full name", models.UserModel{Base: models.Base{ID: "u3"}, Username: "admin"}, "admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := newMemCache()
			if got := DisplayName(context.Background(), cache, &tt.user); got != tt.want {
				t.Errorf("DisplayName = %q, want %q", got, tt.want)
			}
			if cache.sets != 1 {
				t.Errorf("expected 1 cache set, got %d", cache.sets)
			}
		})
	}
}

func TestDisplayNameCached(t *testing.T) {
	cache := newMemCache()
	u := models.UserModel{Base: models.Base{ID: "u1"}, Username: "jdoe", Name: "Jane Doe"}

	first := DisplayName(context.Background(), cache, &u)

	// a later edit to the entity does not bust the cache until the TTL runs out
	u.Name = "Janet Doe"
	second := DisplayName(context.Background(), cache, &u)

	if first != second {
		t.Errorf("cached name changed: %q vs %q", first, second)
	}
	if cache.sets != 1 {
		t.Errorf("expected 1 cache set, got %d", cache.sets)
	}
}

func TestDisplayNameNilCache(t *testing.T) {
	u := models.UserModel{Base: models.Base{ID: "u1"}, Username: "jdoe"}
	if got := DisplayName(context.Background(), nil, &u); got != "jdoe" {
		t.Errorf("DisplayName = %q, want jdoe", got)
	}
}
