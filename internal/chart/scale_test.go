package chart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNice(t *testing.T) {
	tests := []struct {
		max  float64
		want [2]float64
	}{
		{493, [2]float64{0, 500}},
		{500, [2]float64{0, 500}},
		{59, [2]float64{0, 60}},
		{60, [2]float64{0, 60}},
		{17, [2]float64{0, 18}},
		{0.93, [2]float64{0, 1}},
	}
	for _, tt := range tests {
		s := NewLinear(0, tt.max, 50, 600).Nice(DefaultTickCount)
		assert.InDeltaSlice(t, tt.want[:], s.Domain[:], 1e-9, "max %v", tt.max)
		assert.Equal(t, [2]float64{50, 600}, s.Range)
	}
}

func TestNiceDegenerateDomain(t *testing.T) {
	s := NewLinear(0, 0, 50, 600).Nice(DefaultTickCount)
	assert.Equal(t, [2]float64{0, 0}, s.Domain)
	assert.Equal(t, 325.0, s.Apply(0))
}

func TestApply(t *testing.T) {
	x := NewLinear(0, 500, 50, 600)
	assert.Equal(t, 50.0, x.Apply(0))
	assert.Equal(t, 600.0, x.Apply(500))
	assert.InDelta(t, 341.5, x.Apply(265), 1e-9)

	y := NewLinear(0, 60, 400, 50)
	assert.Equal(t, 400.0, y.Apply(0))
	assert.Equal(t, 50.0, y.Apply(60))
	assert.InDelta(t, 300.8333, y.Apply(17), 1e-4)
}

func TestTicks(t *testing.T) {
	ticks := NewLinear(0, 500, 0, 1).Ticks(DefaultTickCount)
	assert.Len(t, ticks, 11)
	assert.Equal(t, 0.0, ticks[0])
	assert.Equal(t, 250.0, ticks[5])
	assert.Equal(t, 500.0, ticks[10])

	assert.Equal(t, []float64{0, 5, 10, 15, 20, 25, 30, 35, 40, 45, 50, 55, 60}, Ticks(0, 60, 10))
	assert.Equal(t, []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1}, Ticks(0, 1, 10))
	assert.Equal(t, []float64{10, 5, 0}, Ticks(10, 0, 2))
	assert.Equal(t, []float64{3}, Ticks(3, 3, 10))
	assert.Nil(t, Ticks(0, 10, 0))
}

func TestTickIncrement(t *testing.T) {
	assert.Equal(t, 50.0, TickIncrement(0, 493, 10))
	assert.Equal(t, -10.0, TickIncrement(0, 1, 10))
	assert.Equal(t, 2.0, TickIncrement(0, 18, 10))
}

func TestFormatTick(t *testing.T) {
	assert.Equal(t, "250", FormatTick(250, 50))
	assert.Equal(t, "1,000", FormatTick(1000, 100))
	assert.Equal(t, "0.5", FormatTick(0.5, 0.5))
	assert.Equal(t, "0", FormatTick(math.Copysign(0, -1), 5))
}
