package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/covid-dashboard/internal/domain"
	"github.com/covid-dashboard/internal/domain/repository"
)

// Ключи кеша фигур
func mapCacheKey(date string) string {
	return "figure:map:" + date
}

func chartCacheKey(location string, metric domain.Metric) string {
	return "figure:chart:" + location + ":" + string(metric)
}

// cachedFigure - cache-aside для фигур. Ошибки кеша логируются и не
// прерывают построение: фигура всегда может быть пересчитана из данных.
func cachedFigure(
	ctx context.Context,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	key string,
	ttl time.Duration,
	build func() *domain.Figure,
) *domain.Figure {
	cached, err := cacheRepo.GetFigure(ctx, key)
	if err == nil && cached != nil {
		logger.Debug("Figure fetched from cache", zap.String("key", key))
		return cached
	}
	if err != nil {
		logger.Warn("Failed to get figure from cache", zap.String("key", key), zap.Error(err))
	}

	fig := build()

	if err := cacheRepo.SetFigure(ctx, key, fig, ttl); err != nil {
		logger.Warn("Failed to cache figure", zap.String("key", key), zap.Error(err))
	}

	return fig
}
