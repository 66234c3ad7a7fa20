package domain

import "github.com/google/uuid"

// Stream names
const (
	StreamFigureWarmup     = "stream:dashboard:warmup"
	StreamFigureWarmupDone = "stream:dashboard:warmup:done"
)

// WarmupEvent - запрос на предварительный расчет фигур в кеш.
// Пустые списки означают "все": все даты диапазона, все показатели,
// только национальный ряд для локаций.
type WarmupEvent struct {
	RequestID uuid.UUID `json:"request_id"`
	Dates     []string  `json:"dates,omitempty"`
	Locations []string  `json:"locations,omitempty"`
	Metrics   []string  `json:"metrics,omitempty"`
}

// WarmupDoneEvent - результат прогрева
type WarmupDoneEvent struct {
	RequestID    uuid.UUID `json:"request_id"`
	MapsCached   int       `json:"maps_cached"`
	ChartsCached int       `json:"charts_cached"`
	Error        string    `json:"error,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
