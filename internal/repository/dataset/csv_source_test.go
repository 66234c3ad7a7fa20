package dataset

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeSeriesCSV(t *testing.T) {
	t.Run("parses counts and missing values", func(t *testing.T) {
		input := "iso_code,continent,location,date,total_cases,new_cases,total_deaths,new_deaths\n" +
			"BRA,South America,Brazil,2021-01-01,7700000.0,50000,195000.0,\n" +
			"USA,North America,United States,2021-01-01 00:00:00,nan,12.9,,3\n"

		rows, err := ParseTimeSeriesCSV(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, rows, 2)

		bra := rows[0]
		assert.Equal(t, "BRA", bra.ISOCode)
		assert.Equal(t, "Brazil", bra.Location)
		assert.Equal(t, "South America", bra.Continent)
		assert.Equal(t, "2021-01-01", bra.DateKey())
		require.NotNil(t, bra.TotalCases)
		assert.Equal(t, int64(7700000), *bra.TotalCases)
		assert.Equal(t, int64(50000), *bra.NewCases)
		assert.Equal(t, int64(195000), *bra.TotalDeaths)
		assert.Nil(t, bra.NewDeaths)

		usa := rows[1]
		assert.Equal(t, "2021-01-01", usa.DateKey())
		assert.Nil(t, usa.TotalCases)
		assert.Equal(t, int64(12), *usa.NewCases, "fractional counts are truncated")
		assert.Nil(t, usa.TotalDeaths)
		assert.Equal(t, int64(3), *usa.NewDeaths)
	})

	t.Run("column order follows header", func(t *testing.T) {
		input := "new_deaths,date,new_cases,total_deaths,total_cases,iso_code\n" +
			"1,2021-01-01,2,3,4,ARG\n"

		rows, err := ParseTimeSeriesCSV(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "ARG", rows[0].ISOCode)
		assert.Equal(t, int64(4), *rows[0].TotalCases)
		assert.Equal(t, int64(1), *rows[0].NewDeaths)
		assert.Empty(t, rows[0].Continent)
	})

	t.Run("missing column", func(t *testing.T) {
		input := "iso_code,date,total_cases,new_cases,total_deaths\nBRA,2021-01-01,1,2,3\n"

		_, err := ParseTimeSeriesCSV(strings.NewReader(input))
		assert.ErrorIs(t, err, ErrMissingColumn)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := ParseTimeSeriesCSV(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrMissingColumn)
	})

	t.Run("bad date", func(t *testing.T) {
		input := "iso_code,date,total_cases,new_cases,total_deaths,new_deaths\nBRA,01/01/2021,1,2,3,4\n"

		_, err := ParseTimeSeriesCSV(strings.NewReader(input))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("bad number", func(t *testing.T) {
		input := "iso_code,date,total_cases,new_cases,total_deaths,new_deaths\nBRA,2021-01-01,many,2,3,4\n"

		_, err := ParseTimeSeriesCSV(strings.NewReader(input))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "total_cases")
	})

	t.Run("number outside int64 range", func(t *testing.T) {
		for _, value := range []string{"1e19", "-9.3e18", "9223372036854775808"} {
			input := "iso_code,date,total_cases,new_cases,total_deaths,new_deaths\nBRA,2021-01-01," + value + ",2,3,4\n"

			_, err := ParseTimeSeriesCSV(strings.NewReader(input))
			require.Error(t, err, value)
			assert.Contains(t, err.Error(), "invalid number", value)
		}
	})

	t.Run("ragged record", func(t *testing.T) {
		input := "iso_code,date,total_cases,new_cases,total_deaths,new_deaths\nBRA,2021-01-01,1\n"

		_, err := ParseTimeSeriesCSV(strings.NewReader(input))
		assert.Error(t, err)
	})
}

func TestCSVSource_LoadTimeSeries(t *testing.T) {
	rows, err := NewCSVSource("testdata/df.csv").LoadTimeSeries(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 6)

	_, err = NewCSVSource("testdata/missing.csv").LoadTimeSeries(context.Background())
	assert.Error(t, err)
}
