package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name     string `json:"name"`
	Calories int    `json:"calories"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAsideCachesFetchResult(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *payload) func() error {
		return func() error {
			fetches++
			*dest = payload{Name: "Rice", Calories: 200}
			return nil
		}
	}

	var first payload
	require.NoError(t, Aside(ctx, "k", &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.True(t, mr.Exists("k"))

	// Second call is served from the cache
	var second payload
	require.NoError(t, Aside(ctx, "k", &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, first, second)
}

func TestAsideFetchErrorNotCached(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	var dest payload
	wantErr := errors.New("db down")
	err := Aside(ctx, "k", &dest, time.Minute, func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)
	assert.False(t, mr.Exists("k"))
}

func TestAsideWithoutClientAlwaysFetches(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	fetches := 0
	var dest payload
	for i := 0; i < 3; i++ {
		require.NoError(t, Aside(ctx, "k", &dest, time.Minute, func() error {
			fetches++
			return nil
		}))
	}
	assert.Equal(t, 3, fetches)
}

func TestInvalidateDropsKey(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, FoodLogsKey(7), payload{Name: "Rice"}, time.Minute))
	require.True(t, mr.Exists("food-logs:7"))

	InvalidateFoodLogs(ctx, 7)
	assert.False(t, mr.Exists("food-logs:7"))
}

func TestGetJSONMiss(t *testing.T) {
	setupMiniredis(t)

	var dest payload
	found, err := GetJSON(context.Background(), "missing", &dest)
	require.NoError(t, err)
	assert.False(t, found)
}
