// Package monitor reports run progress from inside the live tick loop.
// It keeps the cooperative single-threaded model: the loop calls Tick once
// per frame and the monitor decides when a status line is due.
package monitor

import (
	"log/slog"

	"github.com/tablebots/tablesim/internal/strategy"
)

// Progress supplies command counts from the sequencer.
type Progress func() (completed, total int)

// Service logs a status snapshot at a fixed tick interval.
type Service struct {
	ctx      *strategy.Context
	progress Progress
	logger   *slog.Logger

	everyTicks int
	ticks      int
}

// NewService creates a monitor that reports every everyTicks calls to Tick.
func NewService(ctx *strategy.Context, progress Progress, logger *slog.Logger, everyTicks int) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if everyTicks <= 0 {
		everyTicks = 60
	}
	return &Service{
		ctx:        ctx,
		progress:   progress,
		logger:     logger,
		everyTicks: everyTicks,
	}
}

// Tick counts one frame and emits a status line when the interval elapses.
// simTime is the simulated time in seconds since the run started.
func (s *Service) Tick(simTime float64) {
	s.ticks++
	if s.ticks%s.everyTicks != 0 {
		return
	}

	pose, phase := s.ctx.Progress()
	completed, total := s.progress()
	s.logger.Info("run status",
		"simTime", simTime,
		"commands", completed,
		"total", total,
		"phase", phase.String(),
		"x", pose.X, "y", pose.Y, "angle", pose.Angle)
}

// Ticks returns the number of frames observed so far.
func (s *Service) Ticks() int { return s.ticks }
