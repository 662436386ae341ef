package flash

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis starts a miniredis server and a client connected to it.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to create miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	if err := client.Ping(context.Background()).Err(); err != nil {
		mr.Close()
		t.Fatalf("Failed to connect to miniredis: %v", err)
	}
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client, mr
}

func TestRedisStorePushPop(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Push(ctx, "abc", "Venue The Musical Hop was successfully listed!"))
	require.NoError(t, store.Push(ctx, "abc", "second"))
	require.NoError(t, store.Push(ctx, "other", "not mine"))

	assert.True(t, mr.Exists("flash:abc"))
	assert.Equal(t, time.Minute, mr.TTL("flash:abc"))

	got, err := store.Pop(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, []string{"Venue The Musical Hop was successfully listed!", "second"}, got)
	assert.False(t, mr.Exists("flash:abc"))

	// popping again yields nothing
	got, err = store.Pop(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = store.Pop(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, []string{"not mine"}, got)
}

func TestRedisStoreExpiry(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, 10*time.Second)
	ctx := context.Background()

	require.NoError(t, store.Push(ctx, "abc", "stale"))
	mr.FastForward(11 * time.Second)

	got, err := store.Pop(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisStoreUnavailable(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, time.Minute)
	mr.Close()

	assert.Error(t, store.Push(context.Background(), "abc", "lost"))
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Push(ctx, "abc", "one"))
	require.NoError(t, store.Push(ctx, "abc", "two"))

	got, err := store.Pop(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, got)

	got, err = store.Pop(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, store.Push(ctx, "abc", "expired"))
	now = now.Add(2 * time.Minute)
	got, err = store.Pop(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, got)
}
