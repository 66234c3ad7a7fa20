package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func TestParseMetric(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Metric
		wantErr bool
	}{
		{name: "total cases", input: "total_cases", want: MetricTotalCases},
		{name: "new deaths", input: "new_deaths", want: MetricNewDeaths},
		{name: "unknown", input: "recovered", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "case sensitive", input: "New_Cases", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMetric(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMetric_Value(t *testing.T) {
	row := &TimeSeriesRow{
		TotalCases:  int64Ptr(100),
		NewCases:    int64Ptr(10),
		TotalDeaths: int64Ptr(5),
	}

	assert.Equal(t, int64(100), *MetricTotalCases.Value(row))
	assert.Equal(t, int64(10), *MetricNewCases.Value(row))
	assert.Equal(t, int64(5), *MetricTotalDeaths.Value(row))
	assert.Nil(t, MetricNewDeaths.Value(row), "missing value stays nil")
	assert.Nil(t, Metric("other").Value(row))
}

func TestMetric_IsDaily(t *testing.T) {
	assert.True(t, MetricNewCases.IsDaily())
	assert.True(t, MetricNewDeaths.IsDaily())
	assert.False(t, MetricTotalCases.IsDaily())
	assert.False(t, MetricTotalDeaths.IsDaily())
}

func TestDateRange_Contains(t *testing.T) {
	parse := func(s string) time.Time {
		d, _ := time.Parse(DateLayout, s)
		return d
	}
	r := DateRange{Min: parse("2020-03-01"), Max: parse("2021-01-01")}

	assert.True(t, r.Contains(parse("2020-03-01")))
	assert.True(t, r.Contains(parse("2021-01-01")))
	assert.True(t, r.Contains(parse("2020-07-15")))
	assert.False(t, r.Contains(parse("2020-02-29")))
	assert.False(t, r.Contains(parse("2021-01-02")))
}

func TestBoundaryCollection_Has(t *testing.T) {
	c := BoundaryCollection{"BRA": &Boundary{ID: "BRA"}}

	assert.True(t, c.Has("BRA"))
	assert.False(t, c.Has("USA"))
}
