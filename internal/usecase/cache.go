package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Cache is the JSON cache the read paths use. Implementations must treat an
// unavailable backend as a miss.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

const (
	internshipListKey     = "internships:list"
	recommendationPrefix  = "recommendations:"
	recommendationPattern = recommendationPrefix + "*"
	importLockKey         = "internships:import:lock"
)

func RecommendationKey(userID uuid.UUID) string {
	return recommendationPrefix + userID.String()
}

type nopCache struct{}

func (nopCache) GetJSON(context.Context, string, any) (bool, error)        { return false, nil }
func (nopCache) SetJSON(context.Context, string, any, time.Duration) error { return nil }
func (nopCache) Delete(context.Context, string) error                      { return nil }
func (nopCache) DeleteByPattern(context.Context, string) error             { return nil }
func (nopCache) SetIfNotExists(context.Context, string, string, time.Duration) (bool, error) {
	return true, nil
}

func cacheOrNop(c Cache) Cache {
	if c == nil {
		return nopCache{}
	}
	return c
}
