package usecase

import (
	"context"
	"time"

	"team-formation/internal/domain/graph"
)

const recommendationKeyPrefix = "team:recommend:"

type RecommendationCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

func RecommendationCacheKey(algorithm graph.Algorithm, projectID string) string {
	return recommendationKeyPrefix + string(algorithm) + ":" + projectID
}

type noopCache struct{}

func (noopCache) GetJSON(context.Context, string, any) (bool, error)        { return false, nil }
func (noopCache) SetJSON(context.Context, string, any, time.Duration) error { return nil }
func (noopCache) DeleteByPattern(context.Context, string) error             { return nil }
