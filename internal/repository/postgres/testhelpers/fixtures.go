package testhelpers

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/covid-dashboard/internal/domain"
)

const insertTimeSeriesQuery = `
	INSERT INTO covid_time_series
		(iso_code, continent, location, date, total_cases, new_cases, total_deaths, new_deaths)
	VALUES
		(:iso_code, NULLIF(:continent, ''), :location, :date, :total_cases, :new_cases, :total_deaths, :new_deaths)
`

// InsertTimeSeries загружает записи фикстуры в covid_time_series
func InsertTimeSeries(ctx context.Context, db *sqlx.DB, rows []*domain.TimeSeriesRow) error {
	for _, row := range rows {
		if _, err := db.NamedExecContext(ctx, insertTimeSeriesQuery, row); err != nil {
			return fmt.Errorf("insert time series fixture %s %s: %w", row.ISOCode, row.DateKey(), err)
		}
	}
	return nil
}
