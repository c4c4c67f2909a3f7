// Package strategy parses and validates strategy files: an ordered list of
// named steps, each an ordered list of goto/forward/rotate actions, plus a
// starting pose and the table side to play from.
package strategy

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tablebots/tablesim/internal/geo"
	"github.com/tablebots/tablesim/pkg/core"
)

// ErrInvalidStrategy is returned for any malformed strategy document.
var ErrInvalidStrategy = errors.New("invalid strategy")

// Parser converts strategy JSON into validated commands.
type Parser struct {
	logger     *slog.Logger
	tableWidth float64
}

// NewParser creates a parser. tableWidth is needed for yellow-side mirroring.
func NewParser(logger *slog.Logger, tableWidth float64) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger, tableWidth: tableWidth}
}

// Parse reads a strategy document, validates every action, and returns the
// strategy with yellow-side mirroring already applied. Any invalid action
// aborts the whole parse.
func (p *Parser) Parse(data []byte) (*Strategy, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStrategy, err)
	}

	side, err := parseSide(doc.Color)
	if err != nil {
		return nil, err
	}

	if doc.StartingPos == "" {
		return nil, fmt.Errorf("%w: missing startingPos", ErrInvalidStrategy)
	}
	start, err := geo.PoseFromString(doc.StartingPos)
	if err != nil {
		return nil, fmt.Errorf("%w: startingPos %q must be \"x,y,angle\"", ErrInvalidStrategy, doc.StartingPos)
	}

	mirror := side == SideYellow
	if mirror {
		start = p.mirrorPose(start)
	}

	strat := &Strategy{Side: side, StartingPose: start}
	for i, node := range doc.Strategy {
		if node.Name == "" {
			return nil, fmt.Errorf("%w: step %d has no name", ErrInvalidStrategy, i)
		}
		step := Step{Name: node.Name}
		for j, action := range node.Actions {
			cmd, err := p.parseAction(action)
			if err != nil {
				return nil, fmt.Errorf("step %q action %d: %w", node.Name, j, err)
			}
			if mirror {
				cmd = cmd.Mirrored(p.tableWidth)
			}
			step.Commands = append(step.Commands, cmd)
		}
		strat.Steps = append(strat.Steps, step)
	}

	p.logger.Debug("strategy parsed",
		"side", string(side), "steps", len(strat.Steps), "commands", strat.CommandCount())
	return strat, nil
}

func parseSide(color string) (Side, error) {
	switch strings.ToLower(color) {
	case "", string(SideBlue):
		return SideBlue, nil
	case string(SideYellow):
		return SideYellow, nil
	default:
		return "", fmt.Errorf("%w: unknown color %q", ErrInvalidStrategy, color)
	}
}

// parseAction converts a single {verb: value} object into a command.
func (p *Parser) parseAction(action map[string]any) (core.Command, error) {
	if len(action) != 1 {
		return nil, fmt.Errorf("%w: action must have exactly one verb, got %d", ErrInvalidStrategy, len(action))
	}

	var verb string
	var raw any
	for k, v := range action {
		verb, raw = k, v
	}

	switch verb {
	case "goto":
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: goto value must be an \"x,y,angle\" string", ErrInvalidStrategy)
		}
		pose, err := geo.PoseFromString(s)
		if err != nil {
			return nil, fmt.Errorf("%w: goto %q must be \"x,y,angle\"", ErrInvalidStrategy, s)
		}
		cmd := core.GoTo{X: pose.X, Y: pose.Y, Angle: pose.Angle}
		return cmd, cmd.Validate()

	case "forward":
		d, err := scalarValue(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: forward value: %v", ErrInvalidStrategy, err)
		}
		cmd := core.Forward{Distance: d}
		return cmd, cmd.Validate()

	case "rotate":
		a, err := scalarValue(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: rotate value: %v", ErrInvalidStrategy, err)
		}
		cmd := core.Rotate{Delta: a}
		return cmd, cmd.Validate()

	default:
		return nil, fmt.Errorf("%w: unknown action verb %q", ErrInvalidStrategy, verb)
	}
}

// scalarValue accepts both "150" and 150; strategy files written by hand
// use quoted numbers, generated ones use plain JSON numbers.
func scalarValue(raw any) (float64, error) {
	switch v := raw.(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", v)
		}
		return f, nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("unsupported value type %T", raw)
	}
}

// mirrorPose reflects a pose about the table's vertical centre line.
func (p *Parser) mirrorPose(pose core.Pose) core.Pose {
	return core.NewPose(p.tableWidth-pose.X, pose.Y, 180-pose.Angle)
}
