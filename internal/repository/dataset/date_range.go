package dataset

import (
	"errors"
	"fmt"
	"time"

	"github.com/covid-dashboard/internal/domain"
)

// Политики границ выбора даты
const (
	// PolicyCommon - период, в котором данные есть у всех континентов:
	// от самого позднего первого дня до самого раннего последнего дня
	PolicyCommon = "common"
	// PolicyFull - от первой до последней даты всего набора
	PolicyFull = "full"
)

var ErrEmptyDataset = errors.New("dataset has no rows")

// ComputeDateRange вычисляет допустимый диапазон дат. Для PolicyCommon
// записи без континента не учитываются. Если общий период пуст или континентов
// нет, используется PolicyFull. Default - верхняя граница.
func ComputeDateRange(rows []*domain.TimeSeriesRow, policy string) (domain.DateRange, error) {
	if len(rows) == 0 {
		return domain.DateRange{}, ErrEmptyDataset
	}

	switch policy {
	case PolicyCommon:
		if r, ok := commonRange(rows); ok {
			return r, nil
		}
		return fullRange(rows), nil
	case PolicyFull:
		return fullRange(rows), nil
	default:
		return domain.DateRange{}, fmt.Errorf("unknown date range policy %q", policy)
	}
}

func fullRange(rows []*domain.TimeSeriesRow) domain.DateRange {
	minDate, maxDate := rows[0].Date, rows[0].Date
	for _, row := range rows[1:] {
		if row.Date.Before(minDate) {
			minDate = row.Date
		}
		if row.Date.After(maxDate) {
			maxDate = row.Date
		}
	}
	return domain.DateRange{Min: minDate, Max: maxDate, Default: maxDate, Policy: PolicyFull}
}

func commonRange(rows []*domain.TimeSeriesRow) (domain.DateRange, bool) {
	type span struct{ first, last time.Time }
	spans := make(map[string]*span)

	for _, row := range rows {
		if row.Continent == "" {
			continue
		}
		s, ok := spans[row.Continent]
		if !ok {
			spans[row.Continent] = &span{first: row.Date, last: row.Date}
			continue
		}
		if row.Date.Before(s.first) {
			s.first = row.Date
		}
		if row.Date.After(s.last) {
			s.last = row.Date
		}
	}
	if len(spans) == 0 {
		return domain.DateRange{}, false
	}

	var lo, hi time.Time
	first := true
	for _, s := range spans {
		if first {
			lo, hi = s.first, s.last
			first = false
			continue
		}
		if s.first.After(lo) {
			lo = s.first
		}
		if s.last.Before(hi) {
			hi = s.last
		}
	}
	if lo.After(hi) {
		return domain.DateRange{}, false
	}

	return domain.DateRange{Min: lo, Max: hi, Default: hi, Policy: PolicyCommon}, true
}
