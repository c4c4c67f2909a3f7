package core

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCommand is returned when a command carries non-finite fields.
var ErrInvalidCommand = errors.New("invalid command")

// Command is one declarative movement order from a strategy. Commands are
// immutable once created; the motion engine expands them into sub-phases.
type Command interface {
	// Validate reports whether all numeric fields are finite.
	Validate() error

	// Mirrored returns the command transformed for the mirrored table side
	// (reflection about the vertical centre line x = tableWidth/2).
	Mirrored(tableWidth float64) Command

	fmt.Stringer
}

// GoTo moves to an absolute position, then turns to a final heading.
type GoTo struct {
	X     float64
	Y     float64
	Angle float64
}

// Forward is a signed displacement along the current heading.
// Negative distance backs up without turning.
type Forward struct {
	Distance float64
}

// Rotate is a relative heading change in degrees (counter-clockwise positive).
type Rotate struct {
	Delta float64
}

func finite(vals ...float64) error {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrInvalidCommand
		}
	}
	return nil
}

func (c GoTo) Validate() error {
	if err := finite(c.X, c.Y, c.Angle); err != nil {
		return fmt.Errorf("%w: goto %v,%v,%v", ErrInvalidCommand, c.X, c.Y, c.Angle)
	}
	return nil
}

func (c Forward) Validate() error {
	if err := finite(c.Distance); err != nil {
		return fmt.Errorf("%w: forward %v", ErrInvalidCommand, c.Distance)
	}
	return nil
}

func (c Rotate) Validate() error {
	if err := finite(c.Delta); err != nil {
		return fmt.Errorf("%w: rotate %v", ErrInvalidCommand, c.Delta)
	}
	return nil
}

// Mirrored reflects the target about the table's vertical centre line.
// A heading of a becomes 180-a under that reflection.
func (c GoTo) Mirrored(tableWidth float64) Command {
	return GoTo{X: tableWidth - c.X, Y: c.Y, Angle: NormalizeAngle(180 - c.Angle)}
}

// Mirrored is the identity: forward distance is relative to the heading,
// which is already mirrored by the surrounding commands.
func (c Forward) Mirrored(float64) Command { return c }

// Mirrored flips the turn direction.
func (c Rotate) Mirrored(float64) Command { return Rotate{Delta: -c.Delta} }

func (c GoTo) String() string    { return fmt.Sprintf("goto %.1f,%.1f,%.1f", c.X, c.Y, c.Angle) }
func (c Forward) String() string { return fmt.Sprintf("forward %.1f", c.Distance) }
func (c Rotate) String() string  { return fmt.Sprintf("rotate %.1f", c.Delta) }
