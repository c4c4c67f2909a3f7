// Package motion implements the tick-driven motion engine. It converts a
// declarative command plus the current pose into a finite sequence of
// rotate-or-translate sub-phases and advances the active one per Step call.
// The engine knows nothing about rendering; it only reports pose and phase.
package motion

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/tablebots/tablesim/pkg/core"
)

// ErrInvalidConfiguration is returned for non-positive or non-finite
// speeds and epsilons. Zero speeds would never converge, so construction
// fails instead.
var ErrInvalidConfiguration = errors.New("invalid engine configuration")

// Config holds the engine's immutable movement parameters.
type Config struct {
	LinearSpeed     float64 // mm per second
	AngularSpeed    float64 // degrees per second
	PositionEpsilon float64 // mm below which a translation is complete
	AngleEpsilon    float64 // degrees below which a rotation is complete
}

// Validate checks that every parameter is positive and finite.
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"linearSpeed", c.LinearSpeed},
		{"angularSpeed", c.AngularSpeed},
		{"positionEpsilon", c.PositionEpsilon},
		{"angleEpsilon", c.AngleEpsilon},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfiguration, f.name, f.value)
		}
	}
	return nil
}

// Engine advances poses toward command targets at constant rates.
// It is a pure state machine: identical (state, dt) inputs produce
// identical outputs.
type Engine struct {
	cfg    Config
	logger *slog.Logger
}

// NewEngine validates the configuration and builds an engine.
func NewEngine(cfg Config, logger *slog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{cfg: cfg, logger: logger}, nil
}

// subPhase is one atomic rotate-or-translate target.
// Rotations carry targetAngle; translations carry target.
type subPhase struct {
	phase       core.Phase
	targetAngle float64
	target      core.Position2D
}

// State is the engine-owned record for the active command. It is created
// by Begin and mutated only by Step.
type State struct {
	cmd    core.Command
	phases []subPhase
	idx    int
}

// Phase returns the active sub-phase, or PhaseDone when none remain.
func (s *State) Phase() core.Phase {
	if s == nil || s.idx >= len(s.phases) {
		return core.PhaseDone
	}
	return s.phases[s.idx].phase
}

// Command returns the command this state was built for.
func (s *State) Command() core.Command { return s.cmd }

// Begin expands cmd into its sub-phase sequence starting from pose.
// The command must already be validated; Begin still rejects non-finite
// fields so a broken caller cannot corrupt the pose.
func (e *Engine) Begin(cmd core.Command, pose core.Pose) (*State, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	st := &State{cmd: cmd}
	switch c := cmd.(type) {
	case core.GoTo:
		target := core.Position2D{X: c.X, Y: c.Y}
		dist := pose.DistanceTo(target)
		if dist > e.cfg.PositionEpsilon {
			bearing := Bearing(pose.Position2D, target)
			st.phases = append(st.phases,
				subPhase{phase: core.PhaseRotatingToFace, targetAngle: bearing},
				subPhase{phase: core.PhaseMovingForward, target: target},
			)
		}
		// Zero-distance goto degenerates to the final rotation alone;
		// computing a bearing to the current position would be meaningless.
		st.phases = append(st.phases,
			subPhase{phase: core.PhaseRotatingFinal, targetAngle: core.NormalizeAngle(c.Angle)})

	case core.Forward:
		if math.Abs(c.Distance) > e.cfg.PositionEpsilon {
			rad := pose.Angle * math.Pi / 180
			target := core.Position2D{
				X: pose.X + c.Distance*math.Cos(rad),
				Y: pose.Y + c.Distance*math.Sin(rad),
			}
			st.phases = append(st.phases, subPhase{phase: core.PhaseMovingDirect, target: target})
		}

	case core.Rotate:
		st.phases = append(st.phases, subPhase{
			phase:       core.PhaseRotatingRelative,
			targetAngle: core.NormalizeAngle(pose.Angle + c.Delta),
		})

	default:
		return nil, fmt.Errorf("%w: unsupported command type %T", core.ErrInvalidCommand, cmd)
	}

	e.logger.Debug("command dispatched", "command", cmd.String(), "subPhases", len(st.phases))
	return st, nil
}

// Step advances the active sub-phase by dt seconds and returns the new
// pose. Movement is clamped to the remaining delta, so no dt can overshoot
// the target. completed is true once the last sub-phase has finished;
// further calls keep returning the same pose with completed=true.
func (e *Engine) Step(st *State, pose core.Pose, dt float64) (core.Pose, bool) {
	if st == nil || st.idx >= len(st.phases) {
		return pose, true
	}

	sp := st.phases[st.idx]
	var done bool
	if sp.phase.Rotation() {
		pose, done = e.stepRotation(sp, pose, dt)
	} else {
		pose, done = e.stepTranslation(sp, pose, dt)
	}
	if done {
		st.idx++
		e.logger.Debug("sub-phase complete", "phase", sp.phase.String(),
			"x", pose.X, "y", pose.Y, "angle", pose.Angle)
	}

	return pose, st.idx >= len(st.phases)
}

func (e *Engine) stepRotation(sp subPhase, pose core.Pose, dt float64) (core.Pose, bool) {
	diff := core.ShortestArc(pose.Angle, sp.targetAngle)
	if math.Abs(diff) <= e.cfg.AngleEpsilon {
		pose.Angle = sp.targetAngle
		return pose, true
	}
	turn := math.Min(e.cfg.AngularSpeed*dt, math.Abs(diff))
	pose.Angle = core.NormalizeAngle(pose.Angle + math.Copysign(turn, diff))
	if math.Abs(core.ShortestArc(pose.Angle, sp.targetAngle)) <= e.cfg.AngleEpsilon {
		pose.Angle = sp.targetAngle
		return pose, true
	}
	return pose, false
}

func (e *Engine) stepTranslation(sp subPhase, pose core.Pose, dt float64) (core.Pose, bool) {
	dist := pose.DistanceTo(sp.target)
	if dist <= e.cfg.PositionEpsilon {
		pose.Position2D = sp.target
		return pose, true
	}
	move := math.Min(e.cfg.LinearSpeed*dt, dist)
	pose.X += (sp.target.X - pose.X) / dist * move
	pose.Y += (sp.target.Y - pose.Y) / dist * move
	if pose.DistanceTo(sp.target) <= e.cfg.PositionEpsilon {
		pose.Position2D = sp.target
		return pose, true
	}
	return pose, false
}

// Bearing returns the angle from one position toward another in the
// table convention: 0° along +X, counter-clockwise positive, [0,360).
func Bearing(from, to core.Position2D) float64 {
	return core.NormalizeAngle(math.Atan2(to.Y-from.Y, to.X-from.X) * 180 / math.Pi)
}
