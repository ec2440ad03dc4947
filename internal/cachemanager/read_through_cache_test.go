package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReadThroughCache_LoadsOnceThenHits(t *testing.T) {
	calls := 0
	rt := NewReadThroughCache[string, []string, int](
		NewInMemoryCacheManager[string, []string]("test", DefaultExpiration, DefaultCleanupInterval),
		func(ctx context.Context, n int) ([]string, error) {
			calls++
			return make([]string, n), nil
		},
		false,
	)

	ctx := context.Background()
	first, err := rt.Get(ctx, "k", 2, time.Minute)
	require.NoError(t, err)
	second, err := rt.Get(ctx, "k", 5, time.Minute)
	require.NoError(t, err)

	require.Equal(t, 1, calls)
	require.Len(t, first, 2)
	require.Len(t, second, 2, "second call served from cache")
}

func TestReadThroughCache_SkipCache(t *testing.T) {
	calls := 0
	rt := NewReadThroughCache[string, int, int](
		NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval),
		func(ctx context.Context, n int) (int, error) {
			calls++
			return n, nil
		},
		true,
	)

	_, _ = rt.Get(context.Background(), "k", 1, time.Minute)
	_, _ = rt.Get(context.Background(), "k", 1, time.Minute)
	require.Equal(t, 2, calls)
}

func TestReadThroughCache_ErrorNotCached(t *testing.T) {
	fail := true
	rt := NewReadThroughCache[string, int, int](
		NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval),
		func(ctx context.Context, n int) (int, error) {
			if fail {
				return 0, errors.New("boom")
			}
			return n, nil
		},
		false,
	)

	_, err := rt.Get(context.Background(), "k", 1, time.Minute)
	require.Error(t, err)

	fail = false
	got, err := rt.Get(context.Background(), "k", 3, time.Minute)
	require.NoError(t, err)
	require.Equal(t, 3, got)
	require.Equal(t, 1, rt.Len(), "only the successful load is stored")

	require.NoError(t, rt.Flush(context.Background()))
	require.Zero(t, rt.Len())
}
