// Package trajectory collects the completed sub-phase segments of a run
// for the exporter and the rendering collaborator.
package trajectory

import (
	"sync"

	"github.com/tablebots/tablesim/pkg/core"
)

// Recorder is an append-only store of trajectory segments. The sequencer
// appends one segment per completed sub-phase; readers get copies.
type Recorder struct {
	mu       sync.RWMutex
	segments []core.Segment
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Append adds a completed sub-phase segment.
func (r *Recorder) Append(seg core.Segment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.segments = append(r.segments, seg)
}

// Segments returns a copy of all recorded segments in order.
func (r *Recorder) Segments() []core.Segment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.Segment, len(r.segments))
	copy(out, r.segments)
	return out
}

// Len returns the number of recorded segments.
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.segments)
}

// Reset discards all segments. Called when a new strategy is loaded.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.segments = r.segments[:0]
}
