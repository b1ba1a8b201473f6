package query

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() (*Client, *Hub) {
	hub := NewHub(slog.New(slog.DiscardHandler), NewMemoryCache(), 0)
	return NewClient(hub), hub
}

func oneFeature() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.Point{1, 2}))

	return fc
}

func TestClient_Fetch_CachesResult(t *testing.T) {
	client, _ := newTestClient()
	ctx := context.Background()
	var calls int
	fetcher := func(context.Context) (*geojson.FeatureCollection, error) {
		calls++
		return oneFeature(), nil
	}

	first, err := client.Fetch(ctx, "territories", fetcher)
	require.NoError(t, err)
	second, err := client.Fetch(ctx, "territories", fetcher)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Same(t, first, second)
}

func TestClient_Fetch_ErrorNotCached(t *testing.T) {
	client, _ := newTestClient()
	ctx := context.Background()
	var calls int
	fetcher := func(context.Context) (*geojson.FeatureCollection, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("unavailable")
		}

		return nil, nil
	}

	_, err := client.Fetch(ctx, "roads", fetcher)
	require.Error(t, err)

	fc, err := client.Fetch(ctx, "roads", fetcher)
	require.NoError(t, err)
	assert.NotNil(t, fc)
	assert.Equal(t, 2, calls)
}

func TestClient_Mutate_InvalidatesOnSuccess(t *testing.T) {
	client, hub := newTestClient()
	other := NewClient(hub)
	ctx := context.Background()

	var seen [][]string
	sub := other.OnInvalidate(func(keys []string) { seen = append(seen, keys) })
	defer sub.Unsubscribe()

	var fetches int
	fetcher := func(context.Context) (*geojson.FeatureCollection, error) {
		fetches++
		return oneFeature(), nil
	}
	_, err := client.Fetch(ctx, "territories", fetcher)
	require.NoError(t, err)

	err = client.Mutate(ctx, func(context.Context) error { return errors.New("rejected") }, "territories")
	require.Error(t, err)
	assert.Empty(t, seen)

	err = client.Mutate(ctx, func(context.Context) error { return nil }, "territories")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"territories"}}, seen)

	_, err = other.Fetch(ctx, "territories", fetcher)
	require.NoError(t, err)
	assert.Equal(t, 2, fetches)
}

func TestClient_Activity(t *testing.T) {
	client, _ := newTestClient()
	ctx := context.Background()

	var transitions []bool
	client.OnActivity(func(busy bool) { transitions = append(transitions, busy) })

	err := client.Mutate(ctx, func(ctx context.Context) error {
		assert.Equal(t, 1, client.InFlight())
		_, err := client.Fetch(ctx, "rivers", func(context.Context) (*geojson.FeatureCollection, error) {
			assert.Equal(t, 2, client.InFlight())
			return oneFeature(), nil
		})

		return err
	})
	require.NoError(t, err)

	assert.Equal(t, []bool{true, false}, transitions)
	assert.Zero(t, client.InFlight())
}

func TestMemoryCache_TTL(t *testing.T) {
	cache := NewMemoryCache()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", oneFeature(), time.Minute))
	_, ok, _ := cache.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, _ = cache.Get(ctx, "k")
	assert.False(t, ok)
}

func TestRedisCache_Integration(t *testing.T) {
	addr := os.Getenv("TERRIMAP_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TERRIMAP_TEST_REDIS_ADDR not set, skipping redis integration test")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()
	cache := NewRedisCache(rdb, "terrimap:test:")
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "territories", oneFeature(), time.Minute))
	fc, ok, err := cache.Get(ctx, "territories")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, fc.Features, 1)

	require.NoError(t, cache.Delete(ctx, "territories"))
	_, ok, err = cache.Get(ctx, "territories")
	require.NoError(t, err)
	assert.False(t, ok)
}
