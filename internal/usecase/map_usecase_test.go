package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/covid-dashboard/internal/domain"
	"github.com/covid-dashboard/internal/pkg/errors"
	"github.com/covid-dashboard/internal/usecase"
	"github.com/covid-dashboard/internal/usecase/figure"
)

var testMapOptions = figure.MapOptions{
	Center:     domain.Point{Lat: -14.272572694355336, Lon: -51.25567404158474},
	Zoom:       4,
	Opacity:    0.55,
	GeoJSONURL: "/api/v1/boundaries.geojson",
}

func TestMapUseCase_Choropleth(t *testing.T) {
	store := loadTestStore(t)
	ctx := context.Background()

	t.Run("joins rows with boundaries", func(t *testing.T) {
		mockCache := missCache()
		uc := usecase.NewMapUseCase(store, mockCache, zap.NewNop(), time.Hour, testMapOptions)

		fig, err := uc.Choropleth(ctx, "2021-01-01")
		require.NoError(t, err)
		require.Len(t, fig.Data, 1)

		trace := fig.Data[0]
		assert.Equal(t, domain.TraceChoroplethMapbox, trace.Type)
		assert.Equal(t, []string{"BRA", "USA"}, trace.Locations)
		assert.Equal(t, figure.MapColorScale, trace.ColorScale)
		assert.Equal(t, "/api/v1/boundaries.geojson", trace.GeoJSON)
		require.NotNil(t, fig.Layout.Mapbox)
		assert.Equal(t, 4.0, fig.Layout.Mapbox.Zoom)

		mockCache.AssertCalled(t, "SetFigure", ctx, "figure:map:2021-01-01", mock.Anything, time.Hour)
	})

	t.Run("date without data gives zero regions", func(t *testing.T) {
		uc := usecase.NewMapUseCase(store, missCache(), zap.NewNop(), time.Hour, testMapOptions)

		fig, err := uc.Choropleth(ctx, "2019-01-01")
		require.NoError(t, err)
		assert.Equal(t, 0, fig.RegionCount())
	})

	t.Run("malformed date", func(t *testing.T) {
		uc := usecase.NewMapUseCase(store, missCache(), zap.NewNop(), time.Hour, testMapOptions)

		fig, err := uc.Choropleth(ctx, "2021-13-01")
		assert.Nil(t, fig)
		assert.ErrorIs(t, err, errors.ErrInvalidDate)
	})
}

func TestMapUseCase_BoundariesGeoJSON(t *testing.T) {
	uc := usecase.NewMapUseCase(loadTestStore(t), missCache(), zap.NewNop(), time.Hour, testMapOptions)

	var collection struct {
		Type     string `json:"type"`
		Features []struct {
			ID string `json:"id"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(uc.BoundariesGeoJSON(), &collection))
	assert.Equal(t, "FeatureCollection", collection.Type)
	assert.Len(t, collection.Features, 3)
}

func TestMapUseCase_Warm(t *testing.T) {
	ctx := context.Background()
	mockCache := &MockCacheRepository{}
	mockCache.On("SetFigure", ctx, "figure:map:2020-12-31", mock.Anything, time.Hour).Return(nil)

	uc := usecase.NewMapUseCase(loadTestStore(t), mockCache, zap.NewNop(), time.Hour, testMapOptions)

	require.NoError(t, uc.Warm(ctx, day("2020-12-31")))
	mockCache.AssertExpectations(t)
}
