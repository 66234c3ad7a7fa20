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

// MapUseCase строит хороплет-карту за дату
type MapUseCase struct {
	dataset   repository.DatasetRepository
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
	cacheTTL  time.Duration
	options   figure.MapOptions
}

// NewMapUseCase создает новый экземпляр MapUseCase
func NewMapUseCase(
	dataset repository.DatasetRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
	options figure.MapOptions,
) *MapUseCase {
	return &MapUseCase{
		dataset:   dataset,
		cacheRepo: cacheRepo,
		logger:    logger,
		cacheTTL:  cacheTTL,
		options:   options,
	}
}

// Choropleth возвращает карту за дату. Дата без данных дает карту без регионов.
func (uc *MapUseCase) Choropleth(ctx context.Context, date string) (*domain.Figure, error) {
	day, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return nil, errors.ErrInvalidDate.WithDetails(map[string]interface{}{"date": date})
	}

	return cachedFigure(ctx, uc.cacheRepo, uc.logger, mapCacheKey(date), uc.cacheTTL, func() *domain.Figure {
		return uc.build(day)
	}), nil
}

// Warm строит карту за дату и записывает ее в кеш
func (uc *MapUseCase) Warm(ctx context.Context, day time.Time) error {
	date := day.Format(domain.DateLayout)
	if err := uc.cacheRepo.SetFigure(ctx, mapCacheKey(date), uc.build(day), uc.cacheTTL); err != nil {
		return fmt.Errorf("cache map %s: %w", date, err)
	}
	return nil
}

// BoundariesGeoJSON возвращает геометрию, на которую ссылается карта
func (uc *MapUseCase) BoundariesGeoJSON() []byte {
	return uc.dataset.BoundariesGeoJSON()
}

func (uc *MapUseCase) build(day time.Time) *domain.Figure {
	rows := uc.dataset.OnDate(day)
	fig := figure.Choropleth(rows, uc.dataset.Boundaries(), uc.options)

	if skipped := len(rows) - fig.RegionCount(); skipped > 0 {
		uc.logger.Debug("Locations without boundary omitted from map",
			zap.String("date", day.Format(domain.DateLayout)),
			zap.Int("skipped", skipped))
	}
	return fig
}
