package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/covid-dashboard/internal/domain"
)

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string                 `json:"type"`
	ID         interface{}            `json:"id,omitempty"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   json.RawMessage        `json:"geometry"`
}

// LoadBoundariesFile читает GeoJSON файл границ
func LoadBoundariesFile(path, keyProperty string) (domain.BoundaryCollection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	boundaries, err := ParseBoundaries(f, keyProperty)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return boundaries, nil
}

// ParseBoundaries разбирает FeatureCollection. Ключ страны берется из свойства
// keyProperty, а если оно не задано - из id фичи. Фичи без ключа пропускаются,
// при повторе ключа остается первая.
func ParseBoundaries(r io.Reader, keyProperty string) (domain.BoundaryCollection, error) {
	var fc featureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("unexpected geojson type %q", fc.Type)
	}

	boundaries := make(domain.BoundaryCollection, len(fc.Features))
	for _, f := range fc.Features {
		key := featureKey(f, keyProperty)
		if key == "" || len(f.Geometry) == 0 || string(f.Geometry) == "null" {
			continue
		}
		if boundaries.Has(key) {
			continue
		}
		boundaries[key] = &domain.Boundary{
			ID:         key,
			Properties: f.Properties,
			Geometry:   f.Geometry,
		}
	}

	return boundaries, nil
}

func featureKey(f feature, keyProperty string) string {
	var raw interface{} = f.ID
	if keyProperty != "" {
		raw = f.Properties[keyProperty]
	}
	s, ok := raw.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// encodeBoundaries собирает нормализованный FeatureCollection, у каждой фичи id = iso_code.
// Порядок фич соответствует order.
func encodeBoundaries(boundaries domain.BoundaryCollection, order []string) ([]byte, error) {
	fc := featureCollection{
		Type:     "FeatureCollection",
		Features: make([]feature, 0, len(order)),
	}
	for _, key := range order {
		b := boundaries[key]
		fc.Features = append(fc.Features, feature{
			Type:       "Feature",
			ID:         b.ID,
			Properties: b.Properties,
			Geometry:   b.Geometry,
		})
	}
	return json.Marshal(fc)
}
