// Package sequencer drives the motion engine through an ordered list of
// strategy commands. It owns the pending-command queue, dispatches each
// command to the engine, records trajectory segments as sub-phases
// complete, and reports overall run completion.
//
// The caller's tick loop is the only writer; Advance is a pure pull model
// called once per tick.
package sequencer

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/tablebots/tablesim/internal/motion"
	"github.com/tablebots/tablesim/internal/queue"
	"github.com/tablebots/tablesim/internal/trajectory"
	"github.com/tablebots/tablesim/pkg/core"
)

// Sequencer feeds commands one at a time into the motion engine.
type Sequencer struct {
	engine   *motion.Engine
	recorder *trajectory.Recorder
	logger   *slog.Logger

	pending *queue.Queue[core.Command]
	state   *motion.State
	pose    core.Pose

	// phaseStart is the pose at which the active sub-phase began,
	// so a segment can be emitted when it completes.
	phaseStart core.Pose
	lastPhase  core.Phase

	loaded    bool
	finished  bool
	total     int
	completed int

	// OTel metrics from the global meter; no-ops unless a provider is set.
	ticks        metric.Int64Counter
	commandsDone metric.Int64Counter
}

// New creates a sequencer around an engine and a trajectory recorder.
func New(engine *motion.Engine, recorder *trajectory.Recorder, logger *slog.Logger) (*Sequencer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Sequencer{
		engine:   engine,
		recorder: recorder,
		logger:   logger,
		pending:  queue.New[core.Command](),
	}

	m := meter()
	var err error

	s.ticks, err = m.Int64Counter(
		"sequencer.ticks",
		metric.WithDescription("Total Advance calls processed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tick counter: %w", err)
	}

	s.commandsDone, err = m.Int64Counter(
		"sequencer.commands.completed",
		metric.WithDescription("Total commands run to completion"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating command counter: %w", err)
	}

	pendingGauge, err := m.Int64ObservableGauge(
		"sequencer.commands.pending",
		metric.WithDescription("Commands still queued"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pending gauge: %w", err)
	}
	_, err = m.RegisterCallback(
		func(_ context.Context, o metric.Observer) error {
			o.ObserveInt64(pendingGauge, int64(s.pending.Len()))
			return nil
		},
		pendingGauge,
	)
	if err != nil {
		return nil, fmt.Errorf("registering pending gauge: %w", err)
	}

	return s, nil
}

// Load resets the sequencer with a new command list and starting pose.
// Every command is validated up front; an invalid one aborts the load and
// leaves the previous pose untouched. An empty list is not an error: the
// run is immediately finished.
func (s *Sequencer) Load(cmds []core.Command, start core.Pose) error {
	for i, cmd := range cmds {
		if err := cmd.Validate(); err != nil {
			return fmt.Errorf("command %d: %w", i, err)
		}
	}

	s.pending.Clear()
	s.recorder.Reset()
	s.pose = start
	s.phaseStart = start
	s.state = nil
	s.lastPhase = core.PhaseIdle
	s.total = len(cmds)
	s.completed = 0
	s.loaded = true
	s.finished = len(cmds) == 0

	if s.finished {
		s.logger.Info("empty strategy loaded, nothing to run")
		return nil
	}

	s.pending.Push(cmds...)
	if err := s.dispatchNext(); err != nil {
		// Commands were validated above; Begin can only fail on a
		// command type the engine does not know.
		s.finished = true
		return err
	}
	s.logger.Info("strategy loaded",
		"commands", s.total, "x", start.X, "y", start.Y, "angle", start.Angle)
	return nil
}

// dispatchNext pops the next command and begins it on the engine.
func (s *Sequencer) dispatchNext() error {
	cmd, ok := s.pending.Pop()
	if !ok {
		s.finished = true
		return nil
	}
	st, err := s.engine.Begin(cmd, s.pose)
	if err != nil {
		return err
	}
	s.state = st
	s.phaseStart = s.pose
	s.lastPhase = st.Phase()
	return nil
}

// Advance moves the run forward by dt seconds and returns the new pose,
// the active phase, and whether the whole strategy has finished. Once
// finished it is idempotent: further calls return the same terminal state.
func (s *Sequencer) Advance(dt float64) (core.Pose, core.Phase, bool) {
	if !s.loaded || s.finished {
		return s.pose, core.PhaseDone, s.finished || !s.loaded
	}

	s.ticks.Add(context.Background(), 1)

	pose, completed := s.engine.Step(s.state, s.pose, dt)
	s.pose = pose

	// A phase transition closes the previous sub-phase's segment.
	phase := s.state.Phase()
	if phase != s.lastPhase {
		s.recorder.Append(core.Segment{Start: s.phaseStart, End: pose, Phase: s.lastPhase})
		s.phaseStart = pose
		s.lastPhase = phase
	}

	if completed {
		s.completed++
		s.commandsDone.Add(context.Background(), 1,
			metric.WithAttributes(attribute.String("command", s.state.Command().String())))
		s.logger.Debug("command complete",
			"command", s.state.Command().String(),
			"done", s.completed, "total", s.total)

		if err := s.dispatchNext(); err != nil {
			// Halt dispatch but keep the last valid pose.
			s.logger.Error("dispatch failed, halting run", "error", err)
			s.finished = true
		}
		if s.finished {
			s.logger.Info("strategy finished",
				"commands", s.completed,
				"x", s.pose.X, "y", s.pose.Y, "angle", s.pose.Angle)
			return s.pose, core.PhaseDone, true
		}
	}

	return s.pose, s.state.Phase(), false
}

// Pose returns the current pose.
func (s *Sequencer) Pose() core.Pose { return s.pose }

// Phase returns the active phase, or PhaseDone after the run finishes.
func (s *Sequencer) Phase() core.Phase {
	if s.finished || s.state == nil {
		return core.PhaseDone
	}
	return s.state.Phase()
}

// Finished reports whether all commands have completed.
func (s *Sequencer) Finished() bool { return s.finished }

// Progress returns completed and total command counts.
func (s *Sequencer) Progress() (completed, total int) { return s.completed, s.total }

// Pending returns the number of commands not yet dispatched.
func (s *Sequencer) Pending() int { return s.pending.Len() }
