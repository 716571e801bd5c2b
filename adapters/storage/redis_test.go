package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fee-wizard/internal/errors"
)

type redisEntry struct {
	value     string
	expiresAt time.Time
}

// fakeRedis serves the string commands RedisStore issues. Any other command
// panics through the nil embedded client.
type fakeRedis struct {
	redis.UniversalClient
	entries map[string]redisEntry
	ttls    map[string]time.Duration
	now     time.Time
	closed  bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		entries: make(map[string]redisEntry),
		ttls:    make(map[string]time.Duration),
		now:     time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	e, ok := f.entries[key]
	if !ok || (!e.expiresAt.IsZero() && !f.now.Before(e.expiresAt)) {
		delete(f.entries, key)
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(e.value, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	e := redisEntry{value: string(value.([]byte))}
	if expiration > 0 {
		e.expiresAt = f.now.Add(expiration)
	}
	f.entries[key] = e
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.entries[k]; ok {
			delete(f.entries, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func TestRedisStore(t *testing.T) {
	storeContract(t, NewRedisStoreWithClient(newFakeRedis(), time.Minute))
}

func TestRedisStoreKeysAndExpiry(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	store := NewRedisStoreWithClient(client, time.Minute)
	id := NewSessionID()

	require.NoError(t, store.Save(ctx, id, sampleAnswers()))
	assert.Contains(t, client.entries, "fee-wizard:session:"+id)
	assert.Equal(t, time.Minute, client.ttls["fee-wizard:session:"+id])

	client.now = client.now.Add(59 * time.Second)
	_, err := store.Load(ctx, id)
	require.NoError(t, err)

	// saving restarts the TTL
	require.NoError(t, store.Save(ctx, id, sampleAnswers()))
	client.now = client.now.Add(59 * time.Second)
	_, err = store.Load(ctx, id)
	require.NoError(t, err)

	client.now = client.now.Add(2 * time.Second)
	_, err = store.Load(ctx, id)
	assert.True(t, errors.IsType(err, errors.TypeNotFound))

	require.NoError(t, store.Close())
	assert.True(t, client.closed)
}

func TestRedisStoreWithoutTTL(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	store := NewRedisStoreWithClient(client, 0)
	id := NewSessionID()

	require.NoError(t, store.Save(ctx, id, sampleAnswers()))
	client.now = client.now.Add(24 * time.Hour)
	_, err := store.Load(ctx, id)
	require.NoError(t, err)
}

func TestRedisStoreLive(t *testing.T) {
	addr := os.Getenv("FEE_WIZARD_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("FEE_WIZARD_TEST_REDIS_ADDR not set")
	}
	store, err := NewRedisStore(context.Background(), RedisOptions{Addr: addr}, time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	storeContract(t, store)
}
