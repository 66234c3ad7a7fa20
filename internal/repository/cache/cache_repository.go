package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/covid-dashboard/internal/domain"
	"github.com/covid-dashboard/internal/domain/repository"
)

type cacheRepository struct {
	client redis.Cmdable
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return NewCacheRepositoryWithClient(redis.Client(), redis.logger)
}

// NewCacheRepositoryWithClient создает репозиторий поверх произвольного клиента
// (обычного, кластерного или тестового)
func NewCacheRepositoryWithClient(client redis.Cmdable, logger *zap.Logger) repository.CacheRepository {
	return &cacheRepository{
		client: client,
		logger: logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

// GetFigure получает фигуру из кеша
func (r *cacheRepository) GetFigure(ctx context.Context, key string) (*domain.Figure, error) {
	data, err := r.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var fig domain.Figure
	if err := json.Unmarshal(data, &fig); err != nil {
		r.logger.Error("Failed to unmarshal figure from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("unmarshal figure: %w", err)
	}

	return &fig, nil
}

// SetFigure сохраняет фигуру в кеше
func (r *cacheRepository) SetFigure(ctx context.Context, key string, figure *domain.Figure, ttl time.Duration) error {
	data, err := json.Marshal(figure)
	if err != nil {
		r.logger.Error("Failed to marshal figure", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("marshal figure: %w", err)
	}

	return r.Set(ctx, key, data, ttl)
}
