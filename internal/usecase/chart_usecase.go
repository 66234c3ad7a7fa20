package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/covid-dashboard/internal/domain"
	"github.com/covid-dashboard/internal/domain/repository"
	"github.com/covid-dashboard/internal/pkg/errors"
	"github.com/covid-dashboard/internal/usecase/figure"
)

// ChartUseCase строит график показателя по локации
type ChartUseCase struct {
	dataset   repository.DatasetRepository
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewChartUseCase создает новый экземпляр ChartUseCase
func NewChartUseCase(
	dataset repository.DatasetRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *ChartUseCase {
	return &ChartUseCase{
		dataset:   dataset,
		cacheRepo: cacheRepo,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

// MetricChart возвращает фигуру для показателя и локации.
// Неизвестная локация дает пустой график.
func (uc *ChartUseCase) MetricChart(ctx context.Context, metric, location string) (*domain.Figure, error) {
	m, err := domain.ParseMetric(metric)
	if err != nil {
		return nil, errors.ErrInvalidMetric.WithDetails(map[string]interface{}{"metric": metric})
	}

	return cachedFigure(ctx, uc.cacheRepo, uc.logger, chartCacheKey(location, m), uc.cacheTTL, func() *domain.Figure {
		return figure.MetricChart(uc.dataset.Series(location), m)
	}), nil
}

// Warm строит фигуру и записывает ее в кеш, не читая кеш
func (uc *ChartUseCase) Warm(ctx context.Context, metric domain.Metric, location string) error {
	fig := figure.MetricChart(uc.dataset.Series(location), metric)
	if err := uc.cacheRepo.SetFigure(ctx, chartCacheKey(location, metric), fig, uc.cacheTTL); err != nil {
		return fmt.Errorf("cache chart %s/%s: %w", location, metric, err)
	}
	return nil
}
