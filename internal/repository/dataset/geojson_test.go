package dataset

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoundaries(t *testing.T) {
	t.Run("keyed by feature id", func(t *testing.T) {
		boundaries, err := LoadBoundariesFile("testdata/countries_geo.json", "")
		require.NoError(t, err)

		assert.Len(t, boundaries, 3)
		assert.True(t, boundaries.Has("BRA"))
		assert.Equal(t, "Brazil", boundaries["BRA"].Properties["name"])
	})

	t.Run("keyed by property", func(t *testing.T) {
		input := `{"type":"FeatureCollection","features":[
			{"type":"Feature","properties":{"ISO_A3":"PRT"},"geometry":{"type":"Point","coordinates":[0,0]}},
			{"type":"Feature","properties":{"ISO_A3":"PRT"},"geometry":{"type":"Point","coordinates":[1,1]}},
			{"type":"Feature","properties":{"ISO_A3":-99},"geometry":{"type":"Point","coordinates":[2,2]}},
			{"type":"Feature","properties":{"ISO_A3":"ESP"},"geometry":null}
		]}`

		boundaries, err := ParseBoundaries(strings.NewReader(input), "ISO_A3")
		require.NoError(t, err)

		require.Len(t, boundaries, 1)
		assert.JSONEq(t, `{"type":"Point","coordinates":[0,0]}`, string(boundaries["PRT"].Geometry))
	})

	t.Run("not a feature collection", func(t *testing.T) {
		_, err := ParseBoundaries(strings.NewReader(`{"type":"Feature"}`), "")
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := ParseBoundaries(strings.NewReader(`{"type":`), "")
		assert.Error(t, err)
	})
}

func TestEncodeBoundaries(t *testing.T) {
	input := `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"iso":"BRA"},"geometry":{"type":"Point","coordinates":[0,0]}}
	]}`
	boundaries, err := ParseBoundaries(strings.NewReader(input), "iso")
	require.NoError(t, err)

	data, err := encodeBoundaries(boundaries, []string{"BRA"})
	require.NoError(t, err)

	var decoded featureCollection
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Features, 1)
	assert.Equal(t, "BRA", decoded.Features[0].ID, "features are re-keyed by iso code")
}
