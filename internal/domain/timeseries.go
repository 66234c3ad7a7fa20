package domain

import (
	"fmt"
	"time"
)

// DateLayout - формат дат в файлах данных и API
const DateLayout = "2006-01-02"

// TimeSeriesRow - одна запись ряда (локация, дата). Числовые поля опциональны:
// nil означает, что за эту дату значение не сообщалось.
type TimeSeriesRow struct {
	ISOCode     string    `json:"iso_code" db:"iso_code"`
	Location    string    `json:"location" db:"location"`
	Continent   string    `json:"continent,omitempty" db:"continent"`
	Date        time.Time `json:"date" db:"date"`
	TotalCases  *int64    `json:"total_cases" db:"total_cases"`
	NewCases    *int64    `json:"new_cases" db:"new_cases"`
	TotalDeaths *int64    `json:"total_deaths" db:"total_deaths"`
	NewDeaths   *int64    `json:"new_deaths" db:"new_deaths"`
}

// DateKey возвращает дату записи в формате YYYY-MM-DD
func (r *TimeSeriesRow) DateKey() string {
	return r.Date.Format(DateLayout)
}

// Metric - показатель, выбираемый в выпадающем списке
type Metric string

const (
	MetricTotalCases  Metric = "total_cases"
	MetricNewCases    Metric = "new_cases"
	MetricTotalDeaths Metric = "total_deaths"
	MetricNewDeaths   Metric = "new_deaths"
)

// Metrics - все показатели в порядке отображения
var Metrics = []Metric{MetricTotalCases, MetricNewCases, MetricTotalDeaths, MetricNewDeaths}

// ParseMetric проверяет строковое значение показателя
func ParseMetric(s string) (Metric, error) {
	for _, m := range Metrics {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown metric %q", s)
}

// Value извлекает значение показателя из записи
func (m Metric) Value(r *TimeSeriesRow) *int64 {
	switch m {
	case MetricTotalCases:
		return r.TotalCases
	case MetricNewCases:
		return r.NewCases
	case MetricTotalDeaths:
		return r.TotalDeaths
	case MetricNewDeaths:
		return r.NewDeaths
	}
	return nil
}

// IsDaily - ежедневные показатели рисуются столбцами, накопительные - линией
func (m Metric) IsDaily() bool {
	return m == MetricNewCases || m == MetricNewDeaths
}

// DateRange - допустимый диапазон дат для выбора
type DateRange struct {
	Min     time.Time `json:"min"`
	Max     time.Time `json:"max"`
	Default time.Time `json:"default"`
	Policy  string    `json:"policy"`
}

// Contains проверяет попадание даты в диапазон (включительно)
func (d DateRange) Contains(t time.Time) bool {
	return !t.Before(d.Min) && !t.After(d.Max)
}
