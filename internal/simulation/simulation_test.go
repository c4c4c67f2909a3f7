package simulation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablebots/tablesim/internal/config"
	"github.com/tablebots/tablesim/internal/strategy"
	"github.com/tablebots/tablesim/pkg/core"
)

func instantConfig() *config.Config {
	cfg := config.Default()
	cfg.Mode = config.ModeInstant
	return cfg
}

func parseStrategy(t *testing.T, doc string) *strategy.Strategy {
	t.Helper()
	strat, err := strategy.NewParser(nil, 3000).Parse([]byte(doc))
	require.NoError(t, err)
	return strat
}

func TestInstantRunSingleGoto(t *testing.T) {
	sim, err := New(instantConfig(), nil)
	require.NoError(t, err)

	strat := parseStrategy(t, `{
		"startingPos": "0,0,0",
		"strategy": [{"name": "s", "actions": [{"goto": "100,0,90"}]}]
	}`)
	require.NoError(t, sim.Load(strat))

	res, err := sim.Run(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 100, res.FinalPose.X, 1)
	assert.InDelta(t, 0, res.FinalPose.Y, 1)
	assert.InDelta(t, 90, res.FinalPose.Angle, 0.5)
	assert.Equal(t, 1, res.Commands)
	assert.Len(t, res.Segments, 3)
	assert.Greater(t, res.SimulatedSeconds, 0.0)
	assert.True(t, sim.Finished())
}

func TestInstantRunMultiStep(t *testing.T) {
	sim, err := New(instantConfig(), nil)
	require.NoError(t, err)

	strat := parseStrategy(t, `{
		"startingPos": "200,1000,0",
		"strategy": [
			{"name": "out", "actions": [{"goto": "1200,1700,90"}, {"forward": "150"}]},
			{"name": "turn", "actions": [{"rotate": "-45"}]}
		]
	}`)
	require.NoError(t, sim.Load(strat))

	res, err := sim.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, res.Commands)
	assert.InDelta(t, 1200, res.FinalPose.X, 2)
	assert.InDelta(t, 1850, res.FinalPose.Y, 2)
	assert.InDelta(t, 45, res.FinalPose.Angle, 1)
}

func TestSpeedMultiplierShortensSimulatedTime(t *testing.T) {
	run := func(mult float64) float64 {
		cfg := instantConfig()
		cfg.SpeedMultiplier = mult
		sim, err := New(cfg, nil)
		require.NoError(t, err)
		require.NoError(t, sim.Load(parseStrategy(t, `{
			"startingPos": "0,0,0",
			"strategy": [{"name": "s", "actions": [{"forward": "1000"}]}]
		}`)))
		res, err := sim.Run(context.Background())
		require.NoError(t, err)
		return res.SimulatedSeconds
	}

	normal := run(1)
	fast := run(4)
	assert.Less(t, fast, normal)
}

func TestEmptyStrategyRun(t *testing.T) {
	sim, err := New(instantConfig(), nil)
	require.NoError(t, err)

	strat := parseStrategy(t, `{"startingPos": "500,600,45", "strategy": []}`)
	require.NoError(t, sim.Load(strat))

	res, err := sim.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.NewPose(500, 600, 45), res.FinalPose)
	assert.Equal(t, 0, res.Commands)
	assert.Empty(t, res.Segments)
}

func TestRunWithoutLoadFails(t *testing.T) {
	sim, err := New(instantConfig(), nil)
	require.NoError(t, err)
	_, err = sim.Run(context.Background())
	assert.Error(t, err)
}

func TestNewRejectsZeroSpeed(t *testing.T) {
	cfg := instantConfig()
	cfg.Robot.LinearSpeed = 0
	_, err := New(cfg, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
