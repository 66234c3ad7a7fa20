package domain

// Summary - четыре строки карточек для выбранных даты и локации
type Summary struct {
	Date        string `json:"date"`
	Location    string `json:"location"`
	TotalCases  string `json:"total_cases"`
	NewCases    string `json:"new_cases"`
	TotalDeaths string `json:"total_deaths"`
	NewDeaths   string `json:"new_deaths"`
	Found       bool   `json:"found"`
}

// SelectionState - текущий выбор пользователя
type SelectionState struct {
	Date     string `json:"date"`
	Location string `json:"location"`
	Metric   Metric `json:"metric"`
}

// Идентификаторы свойств компонентов страницы ("компонент.свойство")
const (
	PropDatePicker     = "date-picker.date"
	PropMetricDropdown = "metric-dropdown.value"
	PropMapClick       = "choropleth-map.clickData"
	PropMapFigure      = "choropleth-map.figure"
	PropToggleClicks   = "location-button.n_clicks"
	PropLocation       = "location-button.children"
	PropChartFigure    = "metric-graph.figure"

	PropTotalCasesText  = "total-cases-text.children"
	PropNewCasesText    = "new-cases-text.children"
	PropTotalDeathsText = "total-deaths-text.children"
	PropNewDeathsText   = "new-deaths-text.children"

	PropWorldTotalCasesText = "world-total-cases-text.children"
	PropWorldNewCasesText   = "world-new-cases-text.children"
)

// DashboardLayout - статическое описание панелей страницы
type DashboardLayout struct {
	Title      string         `json:"title"`
	Language   string         `json:"language"`
	Languages  []string       `json:"languages"`
	Theme      Theme          `json:"theme"`
	DatePicker DatePickerSpec `json:"date_picker"`
	Cards      []Card         `json:"cards"`
	Metrics    MetricDropdown `json:"metrics"`
	Graphs     []GraphPanel   `json:"graphs"`
	Toggle     ToggleButton   `json:"toggle"`
}

type Theme struct {
	Background       string `json:"background"`
	HeaderBackground string `json:"header_background"`
	Text             string `json:"text"`
}

type DatePickerSpec struct {
	ID                  string `json:"id"`
	Prompt              string `json:"prompt"`
	MinDateAllowed      string `json:"min_date_allowed"`
	MaxDateAllowed      string `json:"max_date_allowed"`
	InitialVisibleMonth string `json:"initial_visible_month"`
	Date                string `json:"date"`
	DisplayFormat       string `json:"display_format"`
}

type Card struct {
	Title      string `json:"title"`
	ValueID    string `json:"value_id"`
	Subtitle   string `json:"subtitle"`
	SubValueID string `json:"sub_value_id"`
	Color      string `json:"color"`
}

type MetricDropdown struct {
	ID      string         `json:"id"`
	Prompt  string         `json:"prompt"`
	Value   string         `json:"value"`
	Options []MetricOption `json:"options"`
}

type MetricOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type GraphPanel struct {
	ID     string `json:"id"`
	Column int    `json:"column"`
	Width  int    `json:"width"`
}

type ToggleButton struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}
