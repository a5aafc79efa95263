package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElevation(t *testing.T) {
	tests := []struct {
		feet int
		want string
	}{
		{0, "0 ft"},
		{450, "450 ft"},
		{5268, "5,268 ft"},
		{29032, "29,032 ft"},
		{1234567, "1,234,567 ft"},
		{-210, "-210 ft"},
		{-1350, "-1,350 ft"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Elevation(tt.feet))
	}
}

func TestMeters(t *testing.T) {
	assert.Equal(t, 0, Meters(0))
	assert.Equal(t, 1606, Meters(5268))
	assert.Equal(t, -64, Meters(-210))
}

func TestCoordinate(t *testing.T) {
	assert.Equal(t, "59.9492°N 151.6960°W", Coordinate(59.9492, -151.696))
	assert.Equal(t, "33.9461°S 151.1772°E", Coordinate(-33.9461, 151.1772))
	assert.Equal(t, "0.0000°N 0.0000°E", Coordinate(0, 0))
}
