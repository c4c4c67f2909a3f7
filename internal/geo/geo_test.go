package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablebots/tablesim/pkg/core"
)

func TestPoseFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    core.Pose
		wantErr bool
	}{
		{"plain", "100,200,90", core.NewPose(100, 200, 90), false},
		{"floats", "1500.5,300.25,45.5", core.NewPose(1500.5, 300.25, 45.5), false},
		{"spaces", " 10, 20, 30 ", core.NewPose(10, 20, 30), false},
		{"negative angle normalized", "0,0,-90", core.NewPose(0, 0, 270), false},
		{"too few fields", "100,200", core.Pose{}, true},
		{"too many fields", "1,2,3,4", core.Pose{}, true},
		{"not a number", "a,b,c", core.Pose{}, true},
		{"empty", "", core.Pose{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PoseFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidPose)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransformRoundTrip(t *testing.T) {
	tr := Transform{TableWidth: 3000, TableHeight: 2000, Scale: 0.4}

	// Bottom-left world corner lands at the bottom-left of the screen.
	x, y := tr.WorldToScreen(core.Position2D{X: 0, Y: 0})
	assert.Equal(t, 0, x)
	assert.Equal(t, 800, y)

	// Top-right world corner lands at the top-right.
	x, y = tr.WorldToScreen(core.Position2D{X: 3000, Y: 2000})
	assert.Equal(t, 1200, x)
	assert.Equal(t, 0, y)

	p := tr.ScreenToWorld(600, 400)
	assert.InDelta(t, 1500, p.X, 1e-9)
	assert.InDelta(t, 1000, p.Y, 1e-9)
}
