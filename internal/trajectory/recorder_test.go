package trajectory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tablebots/tablesim/pkg/core"
)

func TestRecorderAppendAndReset(t *testing.T) {
	r := NewRecorder()
	assert.Equal(t, 0, r.Len())

	seg := core.Segment{
		Start: core.NewPose(0, 0, 0),
		End:   core.NewPose(100, 0, 0),
		Phase: core.PhaseMovingForward,
	}
	r.Append(seg)
	r.Append(core.Segment{Start: seg.End, End: core.NewPose(100, 0, 90), Phase: core.PhaseRotatingFinal})

	got := r.Segments()
	assert.Len(t, got, 2)
	assert.Equal(t, seg, got[0])
	assert.Equal(t, core.PhaseRotatingFinal, got[1].Phase)

	r.Reset()
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Segments())
}

func TestSegmentsReturnsCopy(t *testing.T) {
	r := NewRecorder()
	r.Append(core.Segment{Phase: core.PhaseMovingDirect})

	got := r.Segments()
	got[0].Phase = core.PhaseDone

	assert.Equal(t, core.PhaseMovingDirect, r.Segments()[0].Phase)
}
