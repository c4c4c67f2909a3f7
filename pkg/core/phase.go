package core

// Phase identifies the active sub-motion. Exactly one phase is active at a
// time; the renderer picks the trajectory colour from it.
type Phase uint8

const (
	// PhaseIdle means no command is being executed.
	PhaseIdle Phase = iota
	// PhaseRotatingToFace is the first leg of a goto: turning toward the target point.
	PhaseRotatingToFace
	// PhaseMovingForward is the translation leg of a goto.
	PhaseMovingForward
	// PhaseRotatingFinal is the last leg of a goto: turning to the final heading.
	PhaseRotatingFinal
	// PhaseMovingDirect is a standalone forward/backward displacement.
	PhaseMovingDirect
	// PhaseRotatingRelative is a standalone relative rotation.
	PhaseRotatingRelative
	// PhaseDone means the command (or the whole run) has completed.
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRotatingToFace:
		return "rotatingToFace"
	case PhaseMovingForward:
		return "movingForward"
	case PhaseRotatingFinal:
		return "rotatingFinal"
	case PhaseMovingDirect:
		return "movingDirect"
	case PhaseRotatingRelative:
		return "rotatingRelative"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Color returns the trajectory colour for the phase.
func (p Phase) Color() string {
	switch p {
	case PhaseRotatingToFace:
		return "yellow"
	case PhaseMovingForward:
		return "green"
	case PhaseRotatingFinal, PhaseRotatingRelative:
		return "red"
	default:
		return "white"
	}
}

// Rotation reports whether the phase turns in place.
func (p Phase) Rotation() bool {
	switch p {
	case PhaseRotatingToFace, PhaseRotatingFinal, PhaseRotatingRelative:
		return true
	}
	return false
}
