package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{360, 0},
		{-90, 270},
		{450, 90},
		{-720, 0},
		{359.5, 359.5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, NormalizeAngle(tt.in), 1e-9, "normalize(%v)", tt.in)
	}
}

func TestShortestArc(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		target  float64
		want    float64
	}{
		{"no turn", 90, 90, 0},
		{"quarter ccw", 0, 90, 90},
		{"quarter cw", 90, 0, -90},
		{"across zero ccw", 350, 10, 20},
		{"across zero cw", 10, 350, -20},
		{"half turn is positive", 0, 180, 180},
		{"just past half", 0, 181, -179},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShortestArc(tt.current, tt.target)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.Greater(t, got, -180.0)
			assert.LessOrEqual(t, got, 180.0)
		})
	}
}

func TestCommandValidate(t *testing.T) {
	require.NoError(t, GoTo{X: 100, Y: 200, Angle: 90}.Validate())
	require.NoError(t, Forward{Distance: -50}.Validate())
	require.NoError(t, Rotate{Delta: 720}.Validate())

	assert.ErrorIs(t, GoTo{X: math.NaN()}.Validate(), ErrInvalidCommand)
	assert.ErrorIs(t, Forward{Distance: math.Inf(-1)}.Validate(), ErrInvalidCommand)
	assert.ErrorIs(t, Rotate{Delta: math.NaN()}.Validate(), ErrInvalidCommand)
}

func TestCommandMirrored(t *testing.T) {
	const width = 3000.0

	g := GoTo{X: 1000, Y: 500, Angle: 0}.Mirrored(width).(GoTo)
	assert.Equal(t, 2000.0, g.X)
	assert.Equal(t, 500.0, g.Y)
	assert.Equal(t, 180.0, g.Angle)

	f := Forward{Distance: 150}.Mirrored(width).(Forward)
	assert.Equal(t, 150.0, f.Distance)

	r := Rotate{Delta: 45}.Mirrored(width).(Rotate)
	assert.Equal(t, -45.0, r.Delta)
}

func TestPhaseColor(t *testing.T) {
	assert.Equal(t, "yellow", PhaseRotatingToFace.Color())
	assert.Equal(t, "green", PhaseMovingForward.Color())
	assert.Equal(t, "red", PhaseRotatingFinal.Color())
	assert.Equal(t, "red", PhaseRotatingRelative.Color())
	assert.Equal(t, "white", PhaseMovingDirect.Color())
	assert.Equal(t, "white", PhaseIdle.Color())
}
