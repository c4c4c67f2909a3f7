package export

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/tablebots/tablesim/internal/config"
	"github.com/tablebots/tablesim/internal/geo"
	"github.com/tablebots/tablesim/internal/simulation"
	"github.com/tablebots/tablesim/internal/strategy"
)

// Build assembles the export document from a finished run. The GeoJSON
// trajectory is omitted when the run produced no translation segments.
func Build(strat *strategy.Strategy, res simulation.Result, cfg *config.Config, now time.Time) RunExport {
	exp := RunExport{
		FormatVersion: FormatVersion,
		GeneratedAt:   now.UTC().Format(time.RFC3339),
		Side:          string(strat.Side),
		Mode:          cfg.Mode,
		Table: TableInfo{
			WidthMM:  cfg.Table.Width,
			HeightMM: cfg.Table.Height,
			Scale:    cfg.Table.Scale,
		},
		StartingPose:     res.StartingPose,
		FinalPose:        res.FinalPose,
		SimulatedSeconds: res.SimulatedSeconds,
		CommandCount:     res.Commands,
		Steps:            make([]string, 0, len(strat.Steps)),
		Segments:         make([]Segment, 0, len(res.Segments)),
	}

	for _, step := range strat.Steps {
		exp.Steps = append(exp.Steps, step.Name)
	}
	for _, seg := range res.Segments {
		exp.Segments = append(exp.Segments, Segment{
			Start: seg.Start,
			End:   seg.End,
			Phase: seg.Phase.String(),
			Color: seg.Phase.Color(),
		})
	}

	if gj, err := geo.TrajectoryGeoJSON(res.Segments); err == nil {
		exp.Trajectory = gj
	}

	return exp
}

// Write encodes the export as indented JSON, gzipped when compress is set.
func Write(w io.Writer, exp RunExport, compress bool) error {
	if compress {
		gz := gzip.NewWriter(w)
		if err := encode(gz, exp); err != nil {
			gz.Close()
			return err
		}
		return gz.Close()
	}
	return encode(w, exp)
}

func encode(w io.Writer, exp RunExport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(exp); err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	return nil
}

// WriteFile writes the export into dir, creating it if needed, and returns
// the file path. Compressed exports get a .json.gz suffix.
func WriteFile(dir string, exp RunExport, compress bool, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	name := fmt.Sprintf("run.%s.json", now.UTC().Format("20060102_150405"))
	if compress {
		name += ".gz"
	}
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if err := Write(f, exp, compress); err != nil {
		return "", err
	}
	return path, nil
}
