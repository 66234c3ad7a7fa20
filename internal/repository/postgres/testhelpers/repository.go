package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/covid-dashboard/internal/domain/repository"
	"github.com/covid-dashboard/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewTimeSeriesRepositoryForTest creates a time series source with test database and logger
func NewTimeSeriesRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.TimeSeriesSource {
	return postgres.NewTimeSeriesRepository(NewDBForTest(db, logger), logger)
}
