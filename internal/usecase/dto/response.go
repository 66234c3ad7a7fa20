package dto

import (
	"time"

	"github.com/covid-dashboard/internal/domain"
)

// SessionResponse - состояние сессии и значения выходов
type SessionResponse struct {
	SessionID string                 `json:"session_id"`
	Selection domain.SelectionState  `json:"selection"`
	Outputs   map[string]interface{} `json:"outputs"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// DateRangeResponse - границы выбора даты
type DateRangeResponse struct {
	Min     string `json:"min"`
	Max     string `json:"max"`
	Default string `json:"default"`
	Policy  string `json:"policy"`
}

// NewDateRangeResponse форматирует диапазон дат
func NewDateRangeResponse(r domain.DateRange) DateRangeResponse {
	return DateRangeResponse{
		Min:     r.Min.Format(domain.DateLayout),
		Max:     r.Max.Format(domain.DateLayout),
		Default: r.Default.Format(domain.DateLayout),
		Policy:  r.Policy,
	}
}
