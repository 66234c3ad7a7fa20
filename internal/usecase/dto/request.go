package dto

// SummaryRequest - запрос карточек за дату и локацию
type SummaryRequest struct {
	Date     string `query:"date" validate:"required,isodate"`
	Location string `query:"location" validate:"required,min=2,max=16"`
}

// WorldSummaryRequest - запрос мировых карточек за дату
type WorldSummaryRequest struct {
	Date string `query:"date" validate:"required,isodate"`
}

// MetricChartRequest - запрос графика показателя
type MetricChartRequest struct {
	Metric   string `query:"metric" validate:"required,oneof=total_cases new_cases total_deaths new_deaths"`
	Location string `query:"location" validate:"required,min=2,max=16"`
}

// ChoroplethRequest - запрос карты за дату
type ChoroplethRequest struct {
	Date string `query:"date" validate:"required,isodate"`
}

// LayoutRequest - запрос описания страницы
type LayoutRequest struct {
	Language string `query:"language" validate:"omitempty,min=2,max=16"`
}

// SessionEventRequest - изменения входов: "компонент.свойство" -> значение
type SessionEventRequest struct {
	Changes map[string]interface{} `json:"changes" validate:"required,min=1"`
}
