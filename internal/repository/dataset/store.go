package dataset

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/covid-dashboard/internal/domain"
	"github.com/covid-dashboard/internal/domain/repository"
)

// ErrDuplicateRow - в наборе две записи для одной пары (iso_code, date)
var ErrDuplicateRow = errors.New("duplicate row for location and date")

// Options задает правила построения хранилища
type Options struct {
	NationalLocation string // сентинел национального ряда, например "BRA"
	NationalName     string // имя локации национального ряда, например "Brazil"
	WorldName        string // имя мирового ряда в глобальном файле
	DateRangePolicy  string
}

// Store - неизменяемое in-memory хранилище рядов и границ.
// После NewStore не модифицируется, поэтому чтение не требует блокировок.
type Store struct {
	opts Options

	byISO    map[string][]*domain.TimeSeriesRow
	byKey    map[string]*domain.TimeSeriesRow
	byDate   map[string][]*domain.TimeSeriesRow
	national []*domain.TimeSeriesRow
	natByDay map[string]*domain.TimeSeriesRow
	world    map[string]*domain.TimeSeriesRow

	boundaries     domain.BoundaryCollection
	boundariesJSON []byte
	dateRange      domain.DateRange
	dates          []time.Time
}

var _ repository.DatasetRepository = (*Store)(nil)

// NewStore строит индексы. Записи без iso_code пропускаются,
// повтор пары (iso_code, date) - ошибка.
func NewStore(
	rows []*domain.TimeSeriesRow,
	worldRows []*domain.TimeSeriesRow,
	boundaries domain.BoundaryCollection,
	opts Options,
) (*Store, error) {
	s := &Store{
		opts:       opts,
		byISO:      make(map[string][]*domain.TimeSeriesRow),
		byKey:      make(map[string]*domain.TimeSeriesRow, len(rows)),
		byDate:     make(map[string][]*domain.TimeSeriesRow),
		natByDay:   make(map[string]*domain.TimeSeriesRow),
		world:      make(map[string]*domain.TimeSeriesRow),
		boundaries: boundaries,
	}
	if s.boundaries == nil {
		s.boundaries = domain.BoundaryCollection{}
	}

	indexed := make([]*domain.TimeSeriesRow, 0, len(rows))
	for _, row := range rows {
		if row.ISOCode == "" {
			continue
		}
		key := rowKey(row.ISOCode, row.Date)
		if _, ok := s.byKey[key]; ok {
			return nil, fmt.Errorf("%w: %s %s", ErrDuplicateRow, row.ISOCode, row.DateKey())
		}
		s.byKey[key] = row
		s.byISO[row.ISOCode] = append(s.byISO[row.ISOCode], row)
		s.byDate[row.DateKey()] = append(s.byDate[row.DateKey()], row)
		indexed = append(indexed, row)

		if opts.NationalName != "" && row.Location == opts.NationalName {
			s.national = append(s.national, row)
			s.natByDay[row.DateKey()] = row
		}
	}

	for _, row := range worldRows {
		if opts.WorldName != "" && row.Location != "" && row.Location != opts.WorldName {
			continue
		}
		if _, ok := s.world[row.DateKey()]; ok {
			return nil, fmt.Errorf("%w: world %s", ErrDuplicateRow, row.DateKey())
		}
		s.world[row.DateKey()] = row
	}

	for _, series := range s.byISO {
		sortByDate(series)
	}
	sortByDate(s.national)
	for _, day := range s.byDate {
		sort.Slice(day, func(i, j int) bool { return day[i].ISOCode < day[j].ISOCode })
	}

	dateRange, err := ComputeDateRange(indexed, opts.DateRangePolicy)
	if err != nil {
		return nil, fmt.Errorf("compute date range: %w", err)
	}
	s.dateRange = dateRange

	seen := make(map[string]struct{}, len(s.byDate))
	for _, row := range indexed {
		if _, ok := seen[row.DateKey()]; ok || !dateRange.Contains(row.Date) {
			continue
		}
		seen[row.DateKey()] = struct{}{}
		s.dates = append(s.dates, row.Date)
	}
	sort.Slice(s.dates, func(i, j int) bool { return s.dates[i].Before(s.dates[j]) })

	order := make([]string, 0, len(s.boundaries))
	for key := range s.boundaries {
		order = append(order, key)
	}
	sort.Strings(order)
	s.boundariesJSON, err = encodeBoundaries(s.boundaries, order)
	if err != nil {
		return nil, fmt.Errorf("encode boundaries: %w", err)
	}

	return s, nil
}

// Load читает все источники и строит Store. Любая ошибка фатальна для сервиса.
func Load(
	ctx context.Context,
	source repository.TimeSeriesSource,
	worldFile string,
	geoJSONFile string,
	geoJSONKeyProperty string,
	opts Options,
	logger *zap.Logger,
) (*Store, error) {
	start := time.Now()

	rows, err := source.LoadTimeSeries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load time series: %w", err)
	}

	var worldRows []*domain.TimeSeriesRow
	if worldFile != "" {
		worldRows, err = NewCSVSource(worldFile).LoadTimeSeries(ctx)
		if err != nil {
			return nil, fmt.Errorf("load world series: %w", err)
		}
	}

	boundaries, err := LoadBoundariesFile(geoJSONFile, geoJSONKeyProperty)
	if err != nil {
		return nil, fmt.Errorf("load boundaries: %w", err)
	}

	store, err := NewStore(rows, worldRows, boundaries, opts)
	if err != nil {
		return nil, err
	}

	logger.Info("Dataset loaded",
		zap.Int("rows", len(store.byKey)),
		zap.Int("skipped_rows", len(rows)-len(store.byKey)),
		zap.Int("locations", len(store.byISO)),
		zap.Int("world_rows", len(store.world)),
		zap.Int("boundaries", len(boundaries)),
		zap.Int("national_rows", len(store.national)),
		zap.String("date_min", store.dateRange.Min.Format(domain.DateLayout)),
		zap.String("date_max", store.dateRange.Max.Format(domain.DateLayout)),
		zap.String("date_policy", store.dateRange.Policy),
		zap.Duration("took", time.Since(start)),
	)

	if len(store.national) == 0 {
		logger.Warn("National series is empty, summary for the national location will show placeholders",
			zap.String("national_name", opts.NationalName))
	}

	return store, nil
}

// Row возвращает запись локации за дату или nil
func (s *Store) Row(isoCode string, date time.Time) *domain.TimeSeriesRow {
	if s.isNational(isoCode) {
		return s.natByDay[date.Format(domain.DateLayout)]
	}
	return s.byKey[rowKey(isoCode, date)]
}

// Series возвращает ряд локации, отсортированный по дате
func (s *Store) Series(isoCode string) []*domain.TimeSeriesRow {
	if s.isNational(isoCode) {
		return s.national
	}
	return s.byISO[isoCode]
}

// OnDate возвращает записи всех локаций за дату
func (s *Store) OnDate(date time.Time) []*domain.TimeSeriesRow {
	return s.byDate[date.Format(domain.DateLayout)]
}

// WorldRow возвращает мировую запись за дату или nil
func (s *Store) WorldRow(date time.Time) *domain.TimeSeriesRow {
	return s.world[date.Format(domain.DateLayout)]
}

// Boundaries возвращает границы стран по iso_code
func (s *Store) Boundaries() domain.BoundaryCollection {
	return s.boundaries
}

// BoundariesGeoJSON возвращает нормализованную FeatureCollection
func (s *Store) BoundariesGeoJSON() []byte {
	return s.boundariesJSON
}

// DateRange возвращает допустимый диапазон дат
func (s *Store) DateRange() domain.DateRange {
	return s.dateRange
}

// Dates возвращает даты с данными внутри диапазона по возрастанию
func (s *Store) Dates() []time.Time {
	return s.dates
}

func (s *Store) isNational(isoCode string) bool {
	return s.opts.NationalLocation != "" && isoCode == s.opts.NationalLocation
}

func rowKey(isoCode string, date time.Time) string {
	return isoCode + "|" + date.Format(domain.DateLayout)
}

func sortByDate(rows []*domain.TimeSeriesRow) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
}
