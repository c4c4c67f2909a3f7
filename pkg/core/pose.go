// Package core holds the domain types shared between the motion engine,
// the sequencer and the rendering-facing packages. It has no dependencies
// beyond the standard library so it can be imported from anywhere.
package core

import "math"

// Position2D is a point on the table in millimetres.
// Origin is the bottom-left table corner, +X along the long axis, +Y up.
type Position2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pose is the robot's position plus heading.
// Angle is in degrees, always normalized to [0,360): 0° points along +X,
// angles increase counter-clockwise.
type Pose struct {
	Position2D
	Angle float64 `json:"angle"`
}

// NewPose builds a pose with the angle normalized.
func NewPose(x, y, angle float64) Pose {
	return Pose{Position2D: Position2D{X: x, Y: y}, Angle: NormalizeAngle(angle)}
}

// DistanceTo returns the Euclidean distance to other in millimetres.
func (p Position2D) DistanceTo(other Position2D) float64 {
	return math.Hypot(other.X-p.X, other.Y-p.Y)
}

// NormalizeAngle maps any angle in degrees onto [0,360).
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// ShortestArc returns the signed shortest rotation from current to target
// in degrees, in the range (-180,180]. Positive means counter-clockwise.
func ShortestArc(current, target float64) float64 {
	d := math.Mod(target-current, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}
