// Package export builds the versioned JSON run artifact consumed by the
// web renderer: run metadata, the state-coloured trajectory, and the final
// pose. Version 1 of the format.
package export

import (
	"encoding/json"

	"github.com/tablebots/tablesim/pkg/core"
)

// FormatVersion identifies the export layout.
const FormatVersion = 1

// RunExport is the root JSON structure.
type RunExport struct {
	FormatVersion    int             `json:"formatVersion"`
	GeneratedAt      string          `json:"generatedAt"`
	Side             string          `json:"side"`
	Mode             string          `json:"mode"`
	Table            TableInfo       `json:"table"`
	StartingPose     core.Pose       `json:"startingPose"`
	FinalPose        core.Pose       `json:"finalPose"`
	SimulatedSeconds float64         `json:"simulatedSeconds"`
	CommandCount     int             `json:"commandCount"`
	Steps            []string        `json:"steps"`
	Segments         []Segment       `json:"segments"`
	Trajectory       json.RawMessage `json:"trajectory,omitempty"` // GeoJSON LineString
}

// TableInfo describes the playing field for the renderer.
type TableInfo struct {
	WidthMM  float64 `json:"widthMM"`
	HeightMM float64 `json:"heightMM"`
	Scale    float64 `json:"scale"`
}

// Segment is one sub-phase of the trajectory with its render colour.
type Segment struct {
	Start core.Pose `json:"start"`
	End   core.Pose `json:"end"`
	Phase string    `json:"phase"`
	Color string    `json:"color"`
}
