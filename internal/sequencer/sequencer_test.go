package sequencer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablebots/tablesim/internal/motion"
	"github.com/tablebots/tablesim/internal/trajectory"
	"github.com/tablebots/tablesim/pkg/core"
)

func newTestSequencer(t *testing.T) (*Sequencer, *trajectory.Recorder) {
	t.Helper()
	engine, err := motion.NewEngine(motion.Config{
		LinearSpeed:     500,
		AngularSpeed:    90,
		PositionEpsilon: 1,
		AngleEpsilon:    0.5,
	}, nil)
	require.NoError(t, err)

	rec := trajectory.NewRecorder()
	seq, err := New(engine, rec, nil)
	require.NoError(t, err)
	return seq, rec
}

// runInstant advances with a fixed dt until the run finishes.
func runInstant(t *testing.T, s *Sequencer) core.Pose {
	t.Helper()
	for i := 0; i < 1000000; i++ {
		pose, _, finished := s.Advance(1.0 / 60)
		if finished {
			return pose
		}
	}
	t.Fatal("run did not finish")
	return core.Pose{}
}

func TestSingleGoToScenario(t *testing.T) {
	// startingPos "0,0,0", single action goto "100,0,90":
	// rotate to face (already facing), move 100mm, rotate to 90°.
	seq, rec := newTestSequencer(t)
	start := core.NewPose(0, 0, 0)

	require.NoError(t, seq.Load([]core.Command{core.GoTo{X: 100, Y: 0, Angle: 90}}, start))
	assert.False(t, seq.Finished())

	pose := runInstant(t, seq)
	assert.InDelta(t, 100, pose.X, 1)
	assert.InDelta(t, 0, pose.Y, 1)
	assert.InDelta(t, 90, pose.Angle, 0.5)

	// One segment per completed sub-phase, in order.
	segs := rec.Segments()
	require.Len(t, segs, 3)
	assert.Equal(t, core.PhaseRotatingToFace, segs[0].Phase)
	assert.Equal(t, core.PhaseMovingForward, segs[1].Phase)
	assert.Equal(t, core.PhaseRotatingFinal, segs[2].Phase)
	assert.Equal(t, segs[0].End, segs[1].Start)
	assert.Equal(t, segs[1].End, segs[2].Start)
}

func TestReverseForwardScenario(t *testing.T) {
	// forward "-50" from (0,0,0) backs up along +X without turning.
	seq, _ := newTestSequencer(t)
	start := core.NewPose(0, 0, 0)

	require.NoError(t, seq.Load([]core.Command{core.Forward{Distance: -50}}, start))

	sawMovingDirect := false
	var pose core.Pose
	for i := 0; i < 100000; i++ {
		var phase core.Phase
		var finished bool
		pose, phase, finished = seq.Advance(1.0 / 60)
		if finished {
			break
		}
		if phase == core.PhaseMovingDirect {
			sawMovingDirect = true
		}
	}

	assert.True(t, sawMovingDirect)
	assert.InDelta(t, -50, pose.X, 1)
	assert.InDelta(t, 0, pose.Y, 1)
	assert.Equal(t, 0.0, pose.Angle)
}

func TestMultiCommandRun(t *testing.T) {
	seq, rec := newTestSequencer(t)
	start := core.NewPose(200, 1000, 0)

	cmds := []core.Command{
		core.GoTo{X: 1200, Y: 1700, Angle: 90},
		core.Forward{Distance: 150},
		core.Rotate{Delta: -45},
	}
	require.NoError(t, seq.Load(cmds, start))

	pose := runInstant(t, seq)

	done, total := seq.Progress()
	assert.Equal(t, 3, done)
	assert.Equal(t, 3, total)
	assert.Equal(t, 0, seq.Pending())

	// forward 150 at 90° then rotate -45: end at (1200, 1850, 45).
	assert.InDelta(t, 1200, pose.X, 2)
	assert.InDelta(t, 1850, pose.Y, 2)
	assert.InDelta(t, 45, pose.Angle, 1)

	// goto contributes 3 segments, forward and rotate one each.
	assert.Equal(t, 5, rec.Len())
}

func TestAdvanceIdempotentAfterFinish(t *testing.T) {
	seq, _ := newTestSequencer(t)
	require.NoError(t, seq.Load([]core.Command{core.Rotate{Delta: 90}}, core.NewPose(0, 0, 0)))

	final := runInstant(t, seq)
	for i := 0; i < 10; i++ {
		pose, phase, finished := seq.Advance(1.0 / 60)
		assert.True(t, finished)
		assert.Equal(t, core.PhaseDone, phase)
		assert.Equal(t, final, pose)
	}
}

func TestEmptyStrategyFinishesImmediately(t *testing.T) {
	seq, _ := newTestSequencer(t)
	start := core.NewPose(50, 60, 70)

	require.NoError(t, seq.Load(nil, start))
	assert.True(t, seq.Finished())

	pose, phase, finished := seq.Advance(1.0 / 60)
	assert.True(t, finished)
	assert.Equal(t, core.PhaseDone, phase)
	assert.Equal(t, start, pose)
}

func TestLoadRejectsInvalidCommand(t *testing.T) {
	seq, _ := newTestSequencer(t)
	start := core.NewPose(10, 20, 30)
	require.NoError(t, seq.Load([]core.Command{core.Forward{Distance: 100}}, start))
	posBefore := seq.Pose()

	err := seq.Load([]core.Command{
		core.Forward{Distance: 50},
		core.GoTo{X: math.NaN(), Y: 0, Angle: 0},
	}, core.NewPose(0, 0, 0))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidCommand)

	// The failed load must not have moved the pose.
	assert.Equal(t, posBefore, seq.Pose())
}

func TestLoadResetsAfterFinish(t *testing.T) {
	seq, rec := newTestSequencer(t)
	require.NoError(t, seq.Load([]core.Command{core.Rotate{Delta: 45}}, core.NewPose(0, 0, 0)))
	runInstant(t, seq)
	require.True(t, seq.Finished())

	require.NoError(t, seq.Load([]core.Command{core.Forward{Distance: 100}}, core.NewPose(0, 0, 0)))
	assert.False(t, seq.Finished())
	assert.Equal(t, 0, rec.Len(), "recorder resets on load")

	pose := runInstant(t, seq)
	assert.InDelta(t, 100, pose.X, 1)
}
