package geo

import (
	"encoding/json"
	"fmt"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/tablebots/tablesim/pkg/core"
)

// TranslationLineString builds a single LineString through the endpoints
// of all translation segments, in order. Rotation segments hold position
// and are skipped. Returns an error when fewer than two distinct points
// remain.
func TranslationLineString(segments []core.Segment) (geom.LineString, error) {
	flat := make([]float64, 0, (len(segments)+1)*2)
	for _, seg := range segments {
		if seg.Phase.Rotation() {
			continue
		}
		if len(flat) == 0 {
			flat = append(flat, seg.Start.X, seg.Start.Y)
		}
		flat = append(flat, seg.End.X, seg.End.Y)
	}
	if len(flat) < 4 {
		return geom.LineString{}, fmt.Errorf("trajectory has %d translation points, need at least 2", len(flat)/2)
	}
	return geom.NewLineString(geom.NewSequence(flat, geom.DimXY)), nil
}

// PhaseLineStrings groups translation segments by phase and returns one
// LineString per segment, keyed by the phase's colour name. The renderer
// draws each group in its colour.
func PhaseLineStrings(segments []core.Segment) map[string][]geom.LineString {
	out := make(map[string][]geom.LineString)
	for _, seg := range segments {
		if seg.Phase.Rotation() {
			continue
		}
		ls := geom.NewLineString(geom.NewSequence(
			[]float64{seg.Start.X, seg.Start.Y, seg.End.X, seg.End.Y},
			geom.DimXY,
		))
		color := seg.Phase.Color()
		out[color] = append(out[color], ls)
	}
	return out
}

// TrajectoryGeoJSON renders the full translation trajectory as a GeoJSON
// LineString for the web renderer.
func TrajectoryGeoJSON(segments []core.Segment) ([]byte, error) {
	ls, err := TranslationLineString(segments)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(ls.AsGeometry())
	if err != nil {
		return nil, fmt.Errorf("marshalling trajectory geometry: %w", err)
	}
	return b, nil
}
