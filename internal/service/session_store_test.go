package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/maremansa/internal/quote"
)

func sampleSession() *quote.Session {
	s := quote.NewSession(peixinhos(), sequentialIDs())
	s.Walls[0].Width = 300
	s.Walls[0].Height = 280
	s.Texture = "Linho"
	return s
}

func TestGenerateSessionID(t *testing.T) {
	id, err := GenerateSessionID()
	require.NoError(t, err)

	raw, err := base64.URLEncoding.DecodeString(id)
	require.NoError(t, err)
	assert.Len(t, raw, 32)

	other, err := GenerateSessionID()
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestMemorySessionStore_RoundTrip(t *testing.T) {
	store := NewMemorySessionStore(time.Hour)
	ctx := context.Background()

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, store.Put(ctx, "k", sampleSession()))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "001", got.ProductID)
	assert.Equal(t, "Linho", got.Texture)
	assert.Equal(t, []quote.Wall{{ID: "w1", Width: 300, Height: 280}}, got.Walls)
	assert.True(t, got.Price.Valid)
	assert.True(t, got.Price.Decimal.Equal(decimal.NewFromInt(360)))

	require.NoError(t, store.Delete(ctx, "k"))
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionStore_CopiesValues(t *testing.T) {
	store := NewMemorySessionStore(time.Hour)
	ctx := context.Background()
	s := sampleSession()
	require.NoError(t, store.Put(ctx, "k", s))

	s.Walls[0].Width = 1

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 300.0, got.Walls[0].Width)
}

func TestMemorySessionStore_Expiry(t *testing.T) {
	store := NewMemorySessionStore(time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "old", sampleSession()))
	now = now.Add(30 * time.Second)
	require.NoError(t, store.Put(ctx, "new", sampleSession()))

	now = now.Add(45 * time.Second)
	_, err := store.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = store.Get(ctx, "new")
	assert.NoError(t, err)

	now = now.Add(time.Minute)
	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 0, store.Len())
}

func TestMemorySessionStore_SweeperStopsWithContext(t *testing.T) {
	store := NewMemorySessionStore(time.Nanosecond)
	require.NoError(t, store.Put(context.Background(), "k", sampleSession()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store.StartSweeper(ctx, time.Millisecond, testLogger())

	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)
}

// fakeRedis implements RedisClient over a map.
type fakeRedis struct {
	values map[string]string
	ttls   map[string]time.Duration
	err    error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	switch v := value.(type) {
	case []byte:
		f.values[key] = string(v)
	case string:
		f.values[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			delete(f.values, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestRedisSessionStore_RoundTrip(t *testing.T) {
	client := newFakeRedis()
	store := NewRedisSessionStore(client, 2*time.Hour)
	ctx := context.Background()

	_, err := store.Get(ctx, "quote:s:001")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, store.Put(ctx, "quote:s:001", sampleSession()))
	assert.Equal(t, 2*time.Hour, client.ttls["quote:s:001"])
	assert.Contains(t, client.values["quote:s:001"], `"texture":"Linho"`)

	got, err := store.Get(ctx, "quote:s:001")
	require.NoError(t, err)
	assert.Equal(t, "Linho", got.Texture)
	assert.Len(t, got.Walls, 1)

	require.NoError(t, store.Delete(ctx, "quote:s:001"))
	_, err = store.Get(ctx, "quote:s:001")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSessionStore_Errors(t *testing.T) {
	client := newFakeRedis()
	client.err = errors.New("dial tcp: connection refused")
	store := NewRedisSessionStore(client, time.Hour)
	ctx := context.Background()

	_, err := store.Get(ctx, "k")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrSessionNotFound))

	assert.Error(t, store.Put(ctx, "k", sampleSession()))
	assert.Error(t, store.Delete(ctx, "k"))
}

func TestRedisSessionStore_CorruptValue(t *testing.T) {
	client := newFakeRedis()
	client.values["k"] = "{not json"
	store := NewRedisSessionStore(client, time.Hour)

	_, err := store.Get(context.Background(), "k")
	assert.Error(t, err)
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "http://not-redis")
	assert.Error(t, err)
}
