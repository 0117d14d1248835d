// internal/playback/state.go
package playback

// State is a playback pipeline state.
//
// States are ordered: a pipeline always moves one step at a time between
// neighbours, so going from Playing to Ready passes through Paused.
//
//	Null ──▶ Ready ──▶ Paused ──▶ Playing
//	     ◀──       ◀──        ◀──
//
// StateVoidPending is not a real state; it marks "no pending transition".
type State int

const (
	StateVoidPending State = iota
	StateNull
	StateReady
	StatePaused
	StatePlaying
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateVoidPending:
		return "VoidPending"
	case StateNull:
		return "Null"
	case StateReady:
		return "Ready"
	case StatePaused:
		return "Paused"
	case StatePlaying:
		return "Playing"
	default:
		return "Unknown"
	}
}

// IsActive returns true if media is loaded (Paused or Playing).
func (s State) IsActive() bool {
	return s == StatePaused || s == StatePlaying
}

// Transition is a single step of the state machine.
type Transition struct {
	Old State
	New State
}

// Steps returns the single-step transitions needed to go from one state to
// another. It returns nil when from == to.
func Steps(from, to State) []Transition {
	if from == StateVoidPending {
		from = StateNull
	}
	if to == StateVoidPending {
		return nil
	}
	var steps []Transition
	for from != to {
		next := from + 1
		if to < from {
			next = from - 1
		}
		steps = append(steps, Transition{Old: from, New: next})
		from = next
	}
	return steps
}
