package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/covid-dashboard/internal/domain"
	"github.com/covid-dashboard/internal/repository/cache"
)

// getTestRedisClient возвращает клиент тестового Redis или пропускает тест
func getTestRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set, skipping Redis integration test")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 1})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}

	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestCacheRepository_Figure(t *testing.T) {
	client := getTestRedisClient(t)
	repo := cache.NewCacheRepositoryWithClient(client, zap.NewNop())
	ctx := context.Background()
	key := "test:figure:map:2021-01-01"
	defer client.Del(ctx, key)

	fig, err := repo.GetFigure(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, fig, "miss before set")

	total := int64(7700000)
	want := &domain.Figure{
		Data: []domain.Trace{{
			Type:      domain.TraceChoroplethMapbox,
			Locations: []string{"BRA"},
			Z:         []*int64{&total},
		}},
		Layout: domain.Layout{PaperBgColor: "#242424", Autosize: true},
	}
	require.NoError(t, repo.SetFigure(ctx, key, want, time.Minute))

	exists, err := repo.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := repo.GetFigure(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"BRA"}, got.Data[0].Locations)
	assert.Equal(t, total, *got.Data[0].Z[0])

	require.NoError(t, repo.Delete(ctx, key))
	got, err = repo.GetFigure(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheRepository_CorruptedFigure(t *testing.T) {
	client := getTestRedisClient(t)
	repo := cache.NewCacheRepositoryWithClient(client, zap.NewNop())
	ctx := context.Background()
	key := "test:figure:broken"
	defer client.Del(ctx, key)

	require.NoError(t, repo.Set(ctx, key, []byte("{not json"), time.Minute))

	_, err := repo.GetFigure(ctx, key)
	assert.Error(t, err)
}

func TestNoopRepository(t *testing.T) {
	repo := cache.NewNoopRepository()
	ctx := context.Background()

	require.NoError(t, repo.SetFigure(ctx, "k", &domain.Figure{}, time.Minute))

	fig, err := repo.GetFigure(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, fig)

	exists, err := repo.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}
