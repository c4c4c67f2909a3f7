package strategy

import "github.com/tablebots/tablesim/pkg/core"

// Side is the table side a strategy plays from. Strategies are authored
// for the blue side; yellow replays them mirrored about the vertical
// centre line.
type Side string

const (
	SideBlue   Side = "blue"
	SideYellow Side = "yellow"
)

// Step is one named group of commands from the strategy file.
type Step struct {
	Name     string
	Commands []core.Command
}

// Strategy is a fully parsed and validated strategy, ready for the
// sequencer. Mirroring for the yellow side has already been applied.
type Strategy struct {
	Side         Side
	StartingPose core.Pose
	Steps        []Step
}

// Commands flattens all steps into the ordered command list.
func (s *Strategy) Commands() []core.Command {
	var cmds []core.Command
	for _, step := range s.Steps {
		cmds = append(cmds, step.Commands...)
	}
	return cmds
}

// CommandCount returns the total number of commands across all steps.
func (s *Strategy) CommandCount() int {
	n := 0
	for _, step := range s.Steps {
		n += len(step.Commands)
	}
	return n
}

// document mirrors the strategy file layout.
type document struct {
	Color       string     `json:"color"`
	StartingPos string     `json:"startingPos"`
	Strategy    []stepNode `json:"strategy"`
}

type stepNode struct {
	Name    string           `json:"name"`
	Actions []map[string]any `json:"actions"`
}
