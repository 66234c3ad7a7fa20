package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covid-dashboard/internal/domain"
)

func day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func row(continent, date string) *domain.TimeSeriesRow {
	return &domain.TimeSeriesRow{ISOCode: "X", Continent: continent, Date: day(date)}
}

func TestComputeDateRange(t *testing.T) {
	rows := []*domain.TimeSeriesRow{
		row("Europe", "2020-01-24"),
		row("Europe", "2021-03-10"),
		row("Asia", "2020-01-01"),
		row("Asia", "2021-03-12"),
		row("Africa", "2020-02-14"),
		row("Africa", "2021-03-08"),
		row("", "2019-12-01"),
		row("", "2021-04-01"),
	}

	t.Run("common range across continents", func(t *testing.T) {
		r, err := ComputeDateRange(rows, PolicyCommon)
		require.NoError(t, err)

		assert.Equal(t, "2020-02-14", r.Min.Format(domain.DateLayout))
		assert.Equal(t, "2021-03-08", r.Max.Format(domain.DateLayout))
		assert.Equal(t, r.Max, r.Default)
		assert.Equal(t, PolicyCommon, r.Policy)
	})

	t.Run("full range", func(t *testing.T) {
		r, err := ComputeDateRange(rows, PolicyFull)
		require.NoError(t, err)

		assert.Equal(t, "2019-12-01", r.Min.Format(domain.DateLayout))
		assert.Equal(t, "2021-04-01", r.Max.Format(domain.DateLayout))
		assert.Equal(t, PolicyFull, r.Policy)
	})

	t.Run("common falls back to full without continents", func(t *testing.T) {
		r, err := ComputeDateRange([]*domain.TimeSeriesRow{row("", "2020-01-01"), row("", "2020-02-01")}, PolicyCommon)
		require.NoError(t, err)
		assert.Equal(t, PolicyFull, r.Policy)
		assert.Equal(t, "2020-01-01", r.Min.Format(domain.DateLayout))
	})

	t.Run("common falls back to full when spans do not overlap", func(t *testing.T) {
		r, err := ComputeDateRange([]*domain.TimeSeriesRow{
			row("Europe", "2020-01-01"),
			row("Asia", "2020-02-01"),
		}, PolicyCommon)
		require.NoError(t, err)
		assert.Equal(t, PolicyFull, r.Policy)
	})

	t.Run("empty dataset", func(t *testing.T) {
		_, err := ComputeDateRange(nil, PolicyCommon)
		assert.ErrorIs(t, err, ErrEmptyDataset)
	})

	t.Run("unknown policy", func(t *testing.T) {
		_, err := ComputeDateRange(rows, "median")
		assert.Error(t, err)
	})

	t.Run("contains is inclusive", func(t *testing.T) {
		r, err := ComputeDateRange(rows, PolicyCommon)
		require.NoError(t, err)
		assert.True(t, r.Contains(day("2020-02-14")))
		assert.True(t, r.Contains(day("2021-03-08")))
		assert.False(t, r.Contains(day("2021-03-09")))
	})
}
