package cache

import (
	"context"
	"testing"
	"time"

	"habitat/internal/domain/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (service.Cache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewWithClient(client), server
}

func TestRedisCache_SetAndGet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "movies:all", []byte(`[{"id":1}]`), time.Minute))

	value, err := cache.Get(ctx, "movies:all")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":1}]`), value)
}

func TestRedisCache_Get_Miss(t *testing.T) {
	cache, _ := newTestCache(t)

	_, err := cache.Get(context.Background(), "movies:id:42")

	require.ErrorIs(t, err, service.ErrCacheMiss)
}

func TestRedisCache_Delete(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "movies:all", []byte("a"), time.Minute))
	require.NoError(t, cache.Set(ctx, "movies:id:1", []byte("b"), time.Minute))

	require.NoError(t, cache.Delete(ctx, "movies:all", "movies:id:1"))

	_, err := cache.Get(ctx, "movies:all")
	require.ErrorIs(t, err, service.ErrCacheMiss)
	_, err = cache.Get(ctx, "movies:id:1")
	require.ErrorIs(t, err, service.ErrCacheMiss)
}

func TestRedisCache_Delete_AbsentKey(t *testing.T) {
	cache, _ := newTestCache(t)

	assert.NoError(t, cache.Delete(context.Background(), "movies:id:404"))
}

func TestRedisCache_TTLExpiry(t *testing.T) {
	cache, server := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "movies:all", []byte("a"), time.Second))

	server.FastForward(2 * time.Second)

	_, err := cache.Get(ctx, "movies:all")
	require.ErrorIs(t, err, service.ErrCacheMiss)
}
