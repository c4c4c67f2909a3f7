// Package geo handles the table coordinate system: parsing pose strings
// from strategy files, the world-to-screen transform for the rendering
// collaborator, and trajectory polylines.
//
// Convention, held fixed across the whole module: world coordinates are in
// millimetres with the origin at the bottom-left table corner, +X along
// the long axis (to the right on screen), +Y up. Angles are degrees in
// [0,360), 0° pointing along +X, increasing counter-clockwise.
package geo

import (
	"errors"
	"strconv"
	"strings"

	"github.com/tablebots/tablesim/pkg/core"
)

// ErrInvalidPose is returned when a pose string cannot be parsed.
var ErrInvalidPose = errors.New("invalid pose string")

// PoseFromString parses a "x,y,angle" string into a Pose.
// The angle is normalized to [0,360).
func PoseFromString(s string) (core.Pose, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return core.Pose{}, ErrInvalidPose
	}
	vals := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return core.Pose{}, ErrInvalidPose
		}
		vals[i] = v
	}
	return core.NewPose(vals[0], vals[1], vals[2]), nil
}

// Transform converts between world millimetres and screen pixels.
// Screen origin is the top-left corner with +Y down, so the Y axis flips.
type Transform struct {
	TableWidth  float64 // mm
	TableHeight float64 // mm
	Scale       float64 // pixels per mm
}

// WorldToScreen maps a table position to pixel coordinates.
func (t Transform) WorldToScreen(p core.Position2D) (x, y int) {
	return int(p.X * t.Scale), int((t.TableHeight - p.Y) * t.Scale)
}

// ScreenToWorld maps pixel coordinates back to a table position.
// Used to echo click positions in table millimetres.
func (t Transform) ScreenToWorld(x, y int) core.Position2D {
	return core.Position2D{
		X: float64(x) / t.Scale,
		Y: t.TableHeight - float64(y)/t.Scale,
	}
}
