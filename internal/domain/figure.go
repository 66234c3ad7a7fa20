package domain

// Figure - декларативное описание графика в формате Plotly (data + layout).
// Рендеринг выполняется на клиенте.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Типы трасс
const (
	TraceBar              = "bar"
	TraceScatter          = "scatter"
	TraceChoroplethMapbox = "choroplethmapbox"
)

type Trace struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	Mode string `json:"mode,omitempty"`

	// bar / scatter
	X []string `json:"x,omitempty"`
	Y []*int64 `json:"y,omitempty"`

	// choroplethmapbox
	Locations     []string        `json:"locations,omitempty"`
	Z             []*int64        `json:"z,omitempty"`
	GeoJSON       string          `json:"geojson,omitempty"`
	FeatureIDKey  string          `json:"featureidkey,omitempty"`
	ColorScale    string          `json:"colorscale,omitempty"`
	CustomData    [][]interface{} `json:"customdata,omitempty"`
	HoverTemplate string          `json:"hovertemplate,omitempty"`
	Marker        *Marker         `json:"marker,omitempty"`
	ShowScale     *bool           `json:"showscale,omitempty"`
}

type Marker struct {
	Opacity float64 `json:"opacity"`
}

type Layout struct {
	Template     string  `json:"template,omitempty"`
	PaperBgColor string  `json:"paper_bgcolor,omitempty"`
	PlotBgColor  string  `json:"plot_bgcolor,omitempty"`
	Autosize     bool    `json:"autosize"`
	ShowLegend   bool    `json:"showlegend"`
	Margin       Margin  `json:"margin"`
	Mapbox       *Mapbox `json:"mapbox,omitempty"`
}

type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

type Mapbox struct {
	Style  string  `json:"style"`
	Center Point   `json:"center"`
	Zoom   float64 `json:"zoom"`
}

type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RegionCount возвращает количество закрашенных регионов карты
func (f *Figure) RegionCount() int {
	n := 0
	for _, t := range f.Data {
		if t.Type == TraceChoroplethMapbox {
			n += len(t.Locations)
		}
	}
	return n
}
