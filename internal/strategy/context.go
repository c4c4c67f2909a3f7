package strategy

import (
	"sync"

	"github.com/tablebots/tablesim/pkg/core"
)

// Context holds the currently loaded strategy for readers outside the tick
// loop (the monitor, the exporter). The tick loop itself never reads
// through Context.
type Context struct {
	mu       sync.RWMutex
	strategy *Strategy
	pose     core.Pose
	phase    core.Phase
}

// NewContext creates a context with no strategy loaded.
func NewContext() *Context {
	return &Context{phase: core.PhaseIdle}
}

// SetStrategy stores the loaded strategy and its starting pose.
func (c *Context) SetStrategy(s *Strategy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.strategy = s
	c.pose = s.StartingPose
	c.phase = core.PhaseIdle
}

// Strategy returns the loaded strategy, or nil.
func (c *Context) Strategy() *Strategy {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.strategy
}

// UpdateProgress records the latest pose and phase from the tick loop.
func (c *Context) UpdateProgress(pose core.Pose, phase core.Phase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pose = pose
	c.phase = phase
}

// Progress returns the last recorded pose and phase.
func (c *Context) Progress() (core.Pose, core.Phase) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pose, c.phase
}
