package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sharecom5/TBM/internal/cache"
	"github.com/Sharecom5/TBM/internal/logger"
)

func newRedisCache(t *testing.T) (*cache.Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return cache.NewRedis(client, logger.NewNopLogger()), mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c, _ := newRedisCache(t)
	ctx := context.Background()

	_, ok := c.Get(ctx, "https://cms.example.com/wp-json/wp/v2/posts")
	assert.False(t, ok)

	c.Set(ctx, "https://cms.example.com/wp-json/wp/v2/posts", []byte(`[{"id":1}]`), time.Minute)

	body, ok := c.Get(ctx, "https://cms.example.com/wp-json/wp/v2/posts")
	require.True(t, ok)
	assert.Equal(t, []byte(`[{"id":1}]`), body)
}

func TestRedisCacheHonorsTTL(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	c.Set(ctx, "key", []byte("body"), time.Minute)

	mr.FastForward(59 * time.Second)
	_, ok := c.Get(ctx, "key")
	assert.True(t, ok)

	mr.FastForward(2 * time.Second)
	_, ok = c.Get(ctx, "key")
	assert.False(t, ok)
}

func TestRedisCacheSkipsNonPositiveTTL(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	c.Set(ctx, "key", []byte("body"), 0)

	assert.Empty(t, mr.Keys())
	_, ok := c.Get(ctx, "key")
	assert.False(t, ok)
}

func TestRedisCacheBackendFailureIsAMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	c := cache.NewRedis(client, logger.NewNopLogger())

	c.Set(context.Background(), "key", []byte("body"), time.Minute)
	mr.Close()

	_, ok := c.Get(context.Background(), "key")
	assert.False(t, ok)
}

func TestNopCache(t *testing.T) {
	var c cache.Cache = cache.Nop{}
	ctx := context.Background()

	c.Set(ctx, "key", []byte("body"), time.Minute)

	_, ok := c.Get(ctx, "key")
	assert.False(t, ok)
}

func TestNewRedisClientConnects(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := cache.NewRedisClient(mr.Addr(), "", 0)
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Ping(context.Background()).Err())
}

func TestNewRedisClientUnreachable(t *testing.T) {
	_, err := cache.NewRedisClient("127.0.0.1:1", "", 0)
	assert.Error(t, err)
}
