package postgres

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/covid-dashboard/internal/domain"
	"github.com/covid-dashboard/internal/domain/repository"
)

const selectTimeSeriesQuery = `
	SELECT
		iso_code,
		location,
		COALESCE(continent, '') AS continent,
		date,
		total_cases,
		new_cases,
		total_deaths,
		new_deaths
	FROM covid_time_series
	ORDER BY iso_code, date
`

type timeSeriesRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewTimeSeriesRepository создает источник ряда по странам из таблицы covid_time_series
func NewTimeSeriesRepository(db *DB, logger *zap.Logger) repository.TimeSeriesSource {
	return &timeSeriesRepository{
		db:     db,
		logger: logger,
	}
}

// LoadTimeSeries читает всю таблицу один раз при старте
func (r *timeSeriesRepository) LoadTimeSeries(ctx context.Context) ([]*domain.TimeSeriesRow, error) {
	start := time.Now()

	var rows []*domain.TimeSeriesRow
	if err := r.db.SelectContext(ctx, &rows, selectTimeSeriesQuery); err != nil {
		r.logger.Error("Failed to load time series", zap.Error(err))
		return nil, fmt.Errorf("select covid_time_series: %w", err)
	}

	// DATE приходит как полночь в часовом поясе драйвера, ключи строятся по UTC
	for _, row := range rows {
		y, m, d := row.Date.Date()
		row.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	r.logger.Info("Time series loaded from PostgreSQL",
		zap.Int("rows", len(rows)),
		zap.Duration("took", time.Since(start)))

	return rows, nil
}
