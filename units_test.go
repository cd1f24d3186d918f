package openair

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceConversions(t *testing.T) {
	assert.Equal(t, 1852.0, NewDistance(1, NauticalMiles).Metres())
	assert.InDelta(t, 3.28084, NewDistance(1, Metres).Feet(), 0.00001)
	assert.InDelta(t, 1.0, NewDistance(1000, Metres).Kilometres(), 1e-12)
	assert.InDelta(t, 12.0, NewDistance(1, Feet).Inches(), 1e-9)
	assert.InDelta(t, 1.0, NewDistance(5280, Feet).Miles(), 1e-9)
	assert.InDelta(t, 10.0, NewDistance(18520, Metres).NauticalMiles(), 1e-9)
	assert.InDelta(t, 6076.12, NewDistance(1, NauticalMiles).Feet(), 0.01)
}

func TestAngle(t *testing.T) {
	assert.InDelta(t, math.Pi, AngleFromDegrees(180).Radians, 1e-12)
	assert.InDelta(t, 90.0, AngleFromRadians(math.Pi/2).Degrees, 1e-12)

	tests := []struct {
		in, want float64
	}{
		{-90, 270},
		{720, 0},
		{359.5, 359.5},
		{-360, 0},
		{45, 45},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, AngleFromDegrees(tt.in).Normalised().Degrees, 1e-9, "normalising %v", tt.in)
	}
}
