package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/covid-dashboard/internal/domain"
	"github.com/covid-dashboard/internal/domain/repository"
)

// Колонки CSV
const (
	colISOCode     = "iso_code"
	colLocation    = "location"
	colContinent   = "continent"
	colDate        = "date"
	colTotalCases  = "total_cases"
	colNewCases    = "new_cases"
	colTotalDeaths = "total_deaths"
	colNewDeaths   = "new_deaths"
)

var requiredColumns = []string{colDate, colTotalCases, colNewCases, colTotalDeaths, colNewDeaths}

// ErrMissingColumn - в заголовке CSV нет обязательной колонки
var ErrMissingColumn = errors.New("missing required column")

type csvSource struct {
	path string
}

// NewCSVSource создает источник ряда из CSV файла
func NewCSVSource(path string) repository.TimeSeriesSource {
	return &csvSource{path: path}
}

func (s *csvSource) LoadTimeSeries(ctx context.Context) ([]*domain.TimeSeriesRow, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	rows, err := ParseTimeSeriesCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return rows, nil
}

// ParseTimeSeriesCSV читает записи ряда. Колонки определяются по заголовку,
// лишние колонки игнорируются. Пустые и "nan" значения считаются отсутствующими.
func ParseTimeSeriesCSV(r io.Reader) ([]*domain.TimeSeriesRow, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty file: %w", ErrMissingColumn)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	get := func(record []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []*domain.TimeSeriesRow
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		date, err := parseDate(get(record, colDate))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		row := &domain.TimeSeriesRow{
			ISOCode:   get(record, colISOCode),
			Location:  get(record, colLocation),
			Continent: get(record, colContinent),
			Date:      date,
		}

		fields := []struct {
			col string
			dst **int64
		}{
			{colTotalCases, &row.TotalCases},
			{colNewCases, &row.NewCases},
			{colTotalDeaths, &row.TotalDeaths},
			{colNewDeaths, &row.NewDeaths},
		}
		for _, field := range fields {
			v, err := parseCount(get(record, field.col))
			if err != nil {
				return nil, fmt.Errorf("line %d column %s: %w", line, field.col, err)
			}
			*field.dst = v
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func parseDate(s string) (time.Time, error) {
	// pandas иногда пишет дату вместе со временем
	if len(s) > len(domain.DateLayout) {
		s = s[:len(domain.DateLayout)]
	}
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

// parseCount разбирает счетчик. Значения вида "1234.0" усекаются до целого.
func parseCount(s string) (*int64, error) {
	if s == "" || strings.EqualFold(s, "nan") {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	if math.IsNaN(f) {
		return nil, nil
	}
	// int64(f) вне диапазона int64 не определен
	if math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	v := int64(f)
	return &v, nil
}
