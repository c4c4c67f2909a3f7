// Package simulation ties the strategy, sequencer and motion engine into a
// run. Two modes exist: live, paced by the wall clock at a configured frame
// rate, and instant, which loops a synthetic fixed timestep synchronously
// until the strategy completes.
package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tablebots/tablesim/internal/config"
	"github.com/tablebots/tablesim/internal/monitor"
	"github.com/tablebots/tablesim/internal/motion"
	"github.com/tablebots/tablesim/internal/sequencer"
	"github.com/tablebots/tablesim/internal/strategy"
	"github.com/tablebots/tablesim/internal/trajectory"
	"github.com/tablebots/tablesim/pkg/core"
)

// Result summarizes a finished run for the exporter and the CLI.
type Result struct {
	StartingPose     core.Pose
	FinalPose        core.Pose
	SimulatedSeconds float64
	Ticks            int
	Commands         int
	Segments         []core.Segment
}

// Simulation owns a configured engine/sequencer pair and drives a loaded
// strategy to completion. The pair is used from a single goroutine only.
type Simulation struct {
	cfg      *config.Config
	seq      *sequencer.Sequencer
	recorder *trajectory.Recorder
	ctx      *strategy.Context
	mon      *monitor.Service
	logger   *slog.Logger

	strat   *strategy.Strategy
	simTime float64
	ticks   int
}

// New builds a simulation from a validated configuration. The speed
// multiplier scales both configured speeds, so instant mode is unaffected
// by frame pacing.
func New(cfg *config.Config, logger *slog.Logger) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	engine, err := motion.NewEngine(motion.Config{
		LinearSpeed:     cfg.Robot.LinearSpeed * cfg.SpeedMultiplier,
		AngularSpeed:    cfg.Robot.AngularSpeed * cfg.SpeedMultiplier,
		PositionEpsilon: cfg.Robot.PositionEpsilon,
		AngleEpsilon:    cfg.Robot.AngleEpsilon,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("building motion engine: %w", err)
	}

	recorder := trajectory.NewRecorder()
	seq, err := sequencer.New(engine, recorder, logger)
	if err != nil {
		return nil, fmt.Errorf("building sequencer: %w", err)
	}

	stratCtx := strategy.NewContext()
	mon := monitor.NewService(stratCtx, seq.Progress, logger, cfg.FPS)

	return &Simulation{
		cfg:      cfg,
		seq:      seq,
		recorder: recorder,
		ctx:      stratCtx,
		mon:      mon,
		logger:   logger,
	}, nil
}

// Load prepares a parsed strategy for running.
func (s *Simulation) Load(strat *strategy.Strategy) error {
	if err := s.seq.Load(strat.Commands(), strat.StartingPose); err != nil {
		return fmt.Errorf("loading strategy: %w", err)
	}
	s.ctx.SetStrategy(strat)
	s.strat = strat
	s.simTime = 0
	s.ticks = 0
	return nil
}

// Run executes the loaded strategy in the configured mode. ctx cancels a
// live run between frames; instant runs are bounded computations and
// finish regardless.
func (s *Simulation) Run(ctx context.Context) (Result, error) {
	if s.strat == nil {
		return Result{}, fmt.Errorf("no strategy loaded")
	}

	switch s.cfg.Mode {
	case config.ModeInstant:
		s.runInstant()
	case config.ModeLive:
		if err := s.runLive(ctx); err != nil {
			return Result{}, err
		}
	default:
		return Result{}, fmt.Errorf("%w: mode %q", config.ErrInvalidConfig, s.cfg.Mode)
	}

	completed, _ := s.seq.Progress()
	return Result{
		StartingPose:     s.strat.StartingPose,
		FinalPose:        s.seq.Pose(),
		SimulatedSeconds: s.simTime,
		Ticks:            s.ticks,
		Commands:         completed,
		Segments:         s.recorder.Segments(),
	}, nil
}

// tick advances the run by dt simulated seconds.
func (s *Simulation) tick(dt float64) bool {
	pose, phase, finished := s.seq.Advance(dt)
	s.simTime += dt
	s.ticks++
	s.ctx.UpdateProgress(pose, phase)
	return finished
}

// runInstant loops a fixed frame-sized dt with no wall-clock coupling.
// Positive speeds and epsilon-bounded completion guarantee termination.
func (s *Simulation) runInstant() {
	dt := 1.0 / float64(s.cfg.FPS)
	for !s.tick(dt) {
	}
}

// runLive paces frames with the wall clock and reports progress through
// the monitor.
func (s *Simulation) runLive(ctx context.Context) error {
	frame := time.Second / time.Duration(s.cfg.FPS)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			s.logger.Warn("live run cancelled", "simTime", s.simTime)
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if s.tick(dt) {
				return nil
			}
			s.mon.Tick(s.simTime)
		}
	}
}

// Pose returns the current pose for a rendering collaborator polling
// between frames.
func (s *Simulation) Pose() core.Pose { return s.seq.Pose() }

// Phase returns the current phase.
func (s *Simulation) Phase() core.Phase { return s.seq.Phase() }

// Finished reports whether the loaded strategy has run to completion.
func (s *Simulation) Finished() bool { return s.seq.Finished() }
