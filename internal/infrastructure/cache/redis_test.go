package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"team-formation/internal/config"
)

type payload struct {
	Team []string `json:"team"`
}

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisFromClient(client, time.Minute, nil), mr
}

func TestRedis_SetGetJSON(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, r.SetJSON(ctx, RecommendationPrefix+"dfs:P1", payload{Team: []string{"E1", "E2"}}, 0))

	var got payload
	ok, err := r.GetJSON(ctx, RecommendationPrefix+"dfs:P1", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"E1", "E2"}, got.Team)
	assert.Equal(t, time.Minute, mr.TTL(RecommendationPrefix+"dfs:P1"))

	ok, err = r.GetJSON(ctx, "missing", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_InvalidateRecommendations(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, r.SetJSON(ctx, RecommendationPrefix+"dfs:P1", payload{}, 0))
	require.NoError(t, r.SetJSON(ctx, RecommendationPrefix+"bfs:P2", payload{}, 0))
	require.NoError(t, mr.Set("other", "keep"))

	require.NoError(t, r.InvalidateRecommendations(ctx))

	assert.False(t, mr.Exists(RecommendationPrefix+"dfs:P1"))
	assert.False(t, mr.Exists(RecommendationPrefix+"bfs:P2"))
	assert.True(t, mr.Exists("other"))
}

func TestRedis_UnconfiguredIsNoop(t *testing.T) {
	r := NewRedis(config.RedisConfig{}, nil)
	ctx := context.Background()

	require.NoError(t, r.SetJSON(ctx, "k", payload{}, 0))
	var got payload
	ok, err := r.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, r.InvalidateRecommendations(ctx))
	assert.Error(t, r.Ping(ctx))
	assert.NoError(t, r.Close())
}

func TestRedis_ServerGoneReturnsError(t *testing.T) {
	r, mr := newTestRedis(t)
	mr.Close()

	var got payload
	_, err := r.GetJSON(context.Background(), "k", &got)
	assert.Error(t, err)
	assert.True(t, r.warnedUnavailable.Load())
}
