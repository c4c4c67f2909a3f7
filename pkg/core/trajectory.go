package core

// Segment is one completed sub-phase of the trajectory. Segments are
// appended by the sequencer as sub-phases finish and are read-only
// afterwards; rotation segments have equal start and end positions.
type Segment struct {
	Start Pose  `json:"start"`
	End   Pose  `json:"end"`
	Phase Phase `json:"phase"`
}
