package domain

import "encoding/json"

// Boundary - геометрия страны из GeoJSON. ID совпадает с iso_code рядов.
type Boundary struct {
	ID         string                 `json:"id"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   json.RawMessage        `json:"geometry"`
}

// BoundaryCollection - iso_code -> граница. Используется только как ключ соединения для карты.
type BoundaryCollection map[string]*Boundary

// Has проверяет наличие геометрии для кода
func (c BoundaryCollection) Has(isoCode string) bool {
	_, ok := c[isoCode]
	return ok
}
