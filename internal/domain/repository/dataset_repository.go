package repository

import (
	"context"
	"time"

	"github.com/covid-dashboard/internal/domain"
)

// DatasetRepository - доступ только на чтение к загруженным данным.
// Реализация неизменяема после загрузки и безопасна для конкурентного чтения.
type DatasetRepository interface {
	// Row возвращает запись для iso_code и даты, nil если записи нет
	Row(isoCode string, date time.Time) *domain.TimeSeriesRow

	// Series возвращает ряд локации, отсортированный по дате
	Series(isoCode string) []*domain.TimeSeriesRow

	// OnDate возвращает записи всех локаций за дату
	OnDate(date time.Time) []*domain.TimeSeriesRow

	// WorldRow возвращает запись мирового ряда за дату
	WorldRow(date time.Time) *domain.TimeSeriesRow

	// Boundaries возвращает коллекцию границ
	Boundaries() domain.BoundaryCollection

	// BoundariesGeoJSON возвращает нормализованный FeatureCollection (id = iso_code)
	BoundariesGeoJSON() []byte

	// DateRange возвращает допустимый диапазон дат
	DateRange() domain.DateRange

	// Dates возвращает все даты с данными в пределах DateRange, по возрастанию
	Dates() []time.Time
}

// TimeSeriesSource - источник сырых записей ряда по странам (CSV или Postgres)
type TimeSeriesSource interface {
	LoadTimeSeries(ctx context.Context) ([]*domain.TimeSeriesRow, error)
}
