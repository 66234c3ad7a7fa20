package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/covid-dashboard/internal/domain"
	"github.com/covid-dashboard/internal/pkg/errors"
	"github.com/covid-dashboard/internal/usecase"
	"github.com/covid-dashboard/internal/usecase/dto"
)

func newTestDashboard(t *testing.T) *usecase.DashboardUseCase {
	t.Helper()
	store := loadTestStore(t)
	logger := zap.NewNop()

	uc, err := usecase.NewDashboardUseCase(
		store,
		usecase.NewSummaryUseCase(store, logger),
		usecase.NewChartUseCase(store, missCache(), logger, time.Hour),
		usecase.NewMapUseCase(store, missCache(), logger, time.Hour, testMapOptions),
		"BRA",
		domain.MetricNewCases,
		logger,
	)
	require.NoError(t, err)
	return uc
}

func mapClick(location string) map[string]interface{} {
	return map[string]interface{}{
		"points": []interface{}{
			map[string]interface{}{"location": location},
		},
	}
}

func event(changes map[string]interface{}) *dto.SessionEventRequest {
	return &dto.SessionEventRequest{Changes: changes}
}

func TestDashboardUseCase_CreateSession(t *testing.T) {
	uc := newTestDashboard(t)

	resp, err := uc.CreateSession(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, domain.SelectionState{
		Date:     "2021-01-01",
		Location: "BRA",
		Metric:   domain.MetricNewCases,
	}, resp.Selection)

	assert.Equal(t, "7.700.000", resp.Outputs[domain.PropTotalCasesText])
	assert.Equal(t, "50.000", resp.Outputs[domain.PropNewCasesText])
	assert.Equal(t, "195.000", resp.Outputs[domain.PropTotalDeathsText])
	assert.Equal(t, "1.000", resp.Outputs[domain.PropNewDeathsText])
	assert.Equal(t, "84.000.000", resp.Outputs[domain.PropWorldTotalCasesText])

	chart, ok := resp.Outputs[domain.PropChartFigure].(*domain.Figure)
	require.True(t, ok)
	assert.Equal(t, domain.TraceBar, chart.Data[0].Type)

	m, ok := resp.Outputs[domain.PropMapFigure].(*domain.Figure)
	require.True(t, ok)
	assert.Equal(t, 2, m.RegionCount())

	got, err := uc.GetSession(resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, resp.Selection, got.Selection)
}

func TestDashboardUseCase_ApplyEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("map click selects location and recomputes dependents", func(t *testing.T) {
		uc := newTestDashboard(t)
		sess, err := uc.CreateSession(ctx)
		require.NoError(t, err)

		resp, err := uc.ApplyEvent(ctx, sess.SessionID, event(map[string]interface{}{
			domain.PropMapClick: mapClick("USA"),
		}))
		require.NoError(t, err)

		assert.Equal(t, "USA", resp.Selection.Location)
		assert.Equal(t, "USA", resp.Outputs[domain.PropLocation])
		assert.Equal(t, "20.100.000", resp.Outputs[domain.PropTotalCasesText])
		assert.Equal(t, "-", resp.Outputs[domain.PropNewCasesText])
		assert.Contains(t, resp.Outputs, domain.PropChartFigure)
		assert.NotContains(t, resp.Outputs, domain.PropMapFigure, "map depends on date only")
		assert.NotContains(t, resp.Outputs, domain.PropWorldTotalCasesText)
	})

	t.Run("toggle wins over concurrent map click", func(t *testing.T) {
		uc := newTestDashboard(t)
		sess, err := uc.CreateSession(ctx)
		require.NoError(t, err)

		resp, err := uc.ApplyEvent(ctx, sess.SessionID, event(map[string]interface{}{
			domain.PropMapClick:     mapClick("USA"),
			domain.PropToggleClicks: 1.0,
		}))
		require.NoError(t, err)
		assert.Equal(t, "BRA", resp.Selection.Location)
	})

	t.Run("toggle resets selected location", func(t *testing.T) {
		uc := newTestDashboard(t)
		sess, err := uc.CreateSession(ctx)
		require.NoError(t, err)

		_, err = uc.ApplyEvent(ctx, sess.SessionID, event(map[string]interface{}{
			domain.PropMapClick: mapClick("ARG"),
		}))
		require.NoError(t, err)

		resp, err := uc.ApplyEvent(ctx, sess.SessionID, event(map[string]interface{}{
			domain.PropToggleClicks: 1.0,
		}))
		require.NoError(t, err)
		assert.Equal(t, "BRA", resp.Selection.Location)
		assert.Equal(t, "7.700.000", resp.Outputs[domain.PropTotalCasesText])
	})

	t.Run("date change recomputes cards and map", func(t *testing.T) {
		uc := newTestDashboard(t)
		sess, err := uc.CreateSession(ctx)
		require.NoError(t, err)

		resp, err := uc.ApplyEvent(ctx, sess.SessionID, event(map[string]interface{}{
			domain.PropDatePicker: "2020-12-31",
		}))
		require.NoError(t, err)

		assert.Equal(t, "2020-12-31", resp.Selection.Date)
		assert.Equal(t, "7.650.000", resp.Outputs[domain.PropTotalCasesText])
		assert.Equal(t, "83.400.000", resp.Outputs[domain.PropWorldTotalCasesText])
		assert.Contains(t, resp.Outputs, domain.PropMapFigure)
		assert.NotContains(t, resp.Outputs, domain.PropChartFigure)
	})

	t.Run("metric change recomputes chart only", func(t *testing.T) {
		uc := newTestDashboard(t)
		sess, err := uc.CreateSession(ctx)
		require.NoError(t, err)

		resp, err := uc.ApplyEvent(ctx, sess.SessionID, event(map[string]interface{}{
			domain.PropMetricDropdown: "total_deaths",
		}))
		require.NoError(t, err)

		require.Len(t, resp.Outputs, 1)
		chart := resp.Outputs[domain.PropChartFigure].(*domain.Figure)
		assert.Equal(t, domain.TraceScatter, chart.Data[0].Type)
		assert.Equal(t, domain.MetricTotalDeaths, resp.Selection.Metric)
	})

	t.Run("rejected events leave state untouched", func(t *testing.T) {
		uc := newTestDashboard(t)
		sess, err := uc.CreateSession(ctx)
		require.NoError(t, err)

		tests := []struct {
			name    string
			changes map[string]interface{}
			want    error
		}{
			{name: "unknown property", changes: map[string]interface{}{"logo.src": "x"}, want: errors.ErrUnknownProperty},
			{name: "computed property", changes: map[string]interface{}{domain.PropLocation: "USA"}, want: errors.ErrUnknownProperty},
			{name: "malformed date", changes: map[string]interface{}{domain.PropDatePicker: "2021/01/01"}, want: errors.ErrInvalidDate},
			{name: "date of wrong type", changes: map[string]interface{}{domain.PropDatePicker: 20210101.0}, want: errors.ErrInvalidDate},
			{name: "unknown metric", changes: map[string]interface{}{domain.PropMetricDropdown: "population"}, want: errors.ErrInvalidMetric},
			{name: "non numeric clicks", changes: map[string]interface{}{domain.PropToggleClicks: "one"}, want: errors.ErrInvalidRequest},
			{name: "click data not an object", changes: map[string]interface{}{domain.PropMapClick: "USA"}, want: errors.ErrInvalidRequest},
			{name: "empty changes", changes: map[string]interface{}{}, want: errors.ErrInvalidRequest},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := uc.ApplyEvent(ctx, sess.SessionID, event(tt.changes))
				assert.ErrorIs(t, err, tt.want)

				got, err := uc.GetSession(sess.SessionID)
				require.NoError(t, err)
				assert.Equal(t, sess.Selection, got.Selection)
			})
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		uc := newTestDashboard(t)

		_, err := uc.ApplyEvent(ctx, "2b1c6f0e-8d0a-4c55-9a43-6f3f1c1b0e11", event(map[string]interface{}{
			domain.PropDatePicker: "2021-01-01",
		}))
		assert.ErrorIs(t, err, errors.ErrSessionNotFound)

		_, err = uc.GetSession("not-a-uuid")
		assert.ErrorIs(t, err, errors.ErrSessionNotFound)
	})
}

func TestDashboardUseCase_SessionLifecycle(t *testing.T) {
	uc := newTestDashboard(t)
	ctx := context.Background()

	first, err := uc.CreateSession(ctx)
	require.NoError(t, err)
	second, err := uc.CreateSession(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first.SessionID, second.SessionID)

	require.NoError(t, uc.DeleteSession(first.SessionID))
	assert.ErrorIs(t, uc.DeleteSession(first.SessionID), errors.ErrSessionNotFound)

	assert.Equal(t, 0, uc.EvictIdleSessions(time.Hour))
	assert.Equal(t, 1, uc.EvictIdleSessions(-time.Second))

	_, err = uc.GetSession(second.SessionID)
	assert.ErrorIs(t, err, errors.ErrSessionNotFound)
}
