// Package figure содержит чистые построители фигур Plotly для дашборда.
package figure

import (
	"github.com/covid-dashboard/internal/domain"
)

// Оформление темной темы
const (
	Background    = "#242424"
	DarkTemplate  = "plotly_dark"
	MapboxStyle   = "carto-darkmatter"
	MapColorScale = "OrRd"
)

// MapOptions - фиксированные параметры карты
type MapOptions struct {
	Center     domain.Point
	Zoom       float64
	Opacity    float64
	GeoJSONURL string
}

const mapHoverTemplate = "<b>%{customdata[3]}</b><br>" +
	"total_cases=%{customdata[0]}<br>" +
	"new_cases=%{customdata[1]}<br>" +
	"new_deaths=%{customdata[2]}<extra></extra>"

// MetricChart строит график показателя по ряду локации. Ежедневные
// показатели - столбцы, накопительные - линия. Пустой ряд дает пустой график.
func MetricChart(series []*domain.TimeSeriesRow, metric domain.Metric) *domain.Figure {
	trace := domain.Trace{
		Type: domain.TraceScatter,
		Mode: "lines",
		Name: string(metric),
		X:    make([]string, 0, len(series)),
		Y:    make([]*int64, 0, len(series)),
	}
	if metric.IsDaily() {
		trace.Type = domain.TraceBar
		trace.Mode = ""
	}

	for _, row := range series {
		trace.X = append(trace.X, row.DateKey())
		trace.Y = append(trace.Y, metric.Value(row))
	}

	return &domain.Figure{
		Data: []domain.Trace{trace},
		Layout: domain.Layout{
			Template:     DarkTemplate,
			PaperBgColor: Background,
			PlotBgColor:  Background,
			Autosize:     true,
			Margin:       domain.Margin{L: 10, R: 10, T: 10, B: 10},
		},
	}
}

// Choropleth строит карту за дату. Цвет - total_cases. Записи без геометрии
// в boundaries не попадают на карту.
func Choropleth(rows []*domain.TimeSeriesRow, boundaries domain.BoundaryCollection, opts MapOptions) *domain.Figure {
	showScale := false
	trace := domain.Trace{
		Type:          domain.TraceChoroplethMapbox,
		Locations:     make([]string, 0, len(rows)),
		Z:             make([]*int64, 0, len(rows)),
		CustomData:    make([][]interface{}, 0, len(rows)),
		GeoJSON:       opts.GeoJSONURL,
		FeatureIDKey:  "id",
		ColorScale:    MapColorScale,
		HoverTemplate: mapHoverTemplate,
		Marker:        &domain.Marker{Opacity: opts.Opacity},
		ShowScale:     &showScale,
	}

	for _, row := range rows {
		if !boundaries.Has(row.ISOCode) {
			continue
		}
		trace.Locations = append(trace.Locations, row.ISOCode)
		trace.Z = append(trace.Z, row.TotalCases)
		trace.CustomData = append(trace.CustomData, []interface{}{
			row.TotalCases, row.NewCases, row.NewDeaths, row.Location,
		})
	}

	return &domain.Figure{
		Data: []domain.Trace{trace},
		Layout: domain.Layout{
			PaperBgColor: Background,
			Autosize:     true,
			ShowLegend:   false,
			Margin:       domain.Margin{},
			Mapbox: &domain.Mapbox{
				Style:  MapboxStyle,
				Center: opts.Center,
				Zoom:   opts.Zoom,
			},
		},
	}
}
