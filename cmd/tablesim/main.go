// Command tablesim replays a strategy file over the competition table and
// writes the coloured-trajectory run artifact.
//
// Usage:
//
//	tablesim <strategy.json> [live|instant] [speedMultiplier]
//
// Mode and multiplier default to the config file (tablesim.cfg.json in the
// working directory) or its built-in defaults.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/tablebots/tablesim/internal/config"
	"github.com/tablebots/tablesim/internal/export"
	"github.com/tablebots/tablesim/internal/logging"
	"github.com/tablebots/tablesim/internal/simulation"
	"github.com/tablebots/tablesim/internal/strategy"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "tablesim: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: tablesim <strategy.json> [live|instant] [speedMultiplier]")
	}
	strategyFile := args[0]

	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	if len(args) > 1 {
		cfg.Mode = args[1]
	}
	if len(args) > 2 {
		mult, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("speed multiplier %q is not a number", args[2])
		}
		cfg.SpeedMultiplier = mult
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sessionStart := time.Now()
	logManager := logging.NewManager()
	if err := os.MkdirAll(cfg.LogsDir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}
	logFile, err := os.Create(logging.LogFilePath(cfg.LogsDir, sessionStart))
	if err != nil {
		return fmt.Errorf("creating log file: %w", err)
	}
	defer logFile.Close()
	logManager.Setup(logFile, cfg.LogLevel)
	logger := logManager.Logger()

	data, err := os.ReadFile(strategyFile)
	if err != nil {
		return fmt.Errorf("reading strategy file: %w", err)
	}
	strat, err := strategy.NewParser(logger, cfg.Table.Width).Parse(data)
	if err != nil {
		return err
	}

	sim, err := simulation.New(cfg, logger)
	if err != nil {
		return err
	}
	if err := sim.Load(strat); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting run",
		"strategy", strategyFile,
		"side", string(strat.Side),
		"mode", cfg.Mode,
		"commands", strat.CommandCount())

	res, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	exp := export.Build(strat, res, cfg, time.Now())
	path, err := export.WriteFile(cfg.Output.Dir, exp, cfg.Output.Compress, sessionStart)
	if err != nil {
		return err
	}

	logger.Info("run complete",
		"x", res.FinalPose.X,
		"y", res.FinalPose.Y,
		"angle", res.FinalPose.Angle,
		"simSeconds", res.SimulatedSeconds,
		"export", path)
	return nil
}
