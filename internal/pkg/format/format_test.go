package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v int64) *int64 { return &v }

func TestCount(t *testing.T) {
	tests := []struct {
		name  string
		value *int64
		want  string
	}{
		{"absent", nil, "-"},
		{"zero", ptr(0), "0"},
		{"below thousand", ptr(999), "999"},
		{"thousand", ptr(1000), "1.000"},
		{"fifty thousand", ptr(50000), "50.000"},
		{"hundreds of thousands", ptr(195000), "195.000"},
		{"millions", ptr(7700000), "7.700.000"},
		{"negative correction", ptr(-1234), "-1.234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Count(tt.value))
		})
	}
}
