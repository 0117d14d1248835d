// internal/relay/events.go
package relay

import (
	"time"

	"github.com/llehouerou/vdplayer/internal/playback"
)

// Event is a notification delivered to the UI loop.
// All variants are defined in this package.
type Event interface {
	event()
}

// StateChanged reports that an element of the engine moved between states.
// Only changes whose Source is the engine's top-level element describe the
// playback state as a whole.
type StateChanged struct {
	Source  string
	Old     playback.State
	New     playback.State
	Pending playback.State
}

// ErrorOccurred reports an engine error. Debug carries extra diagnostic
// text from the engine, possibly empty.
type ErrorOccurred struct {
	Source string
	Err    error
	Debug  string
}

// EndOfStream reports that the media finished playing.
type EndOfStream struct {
	Source string
}

// TagsDiscovered reports that the engine found new stream metadata.
type TagsDiscovered struct {
	Source string
	Stream string
}

// LeaseAcquired is posted by the inhibition worker when an acquire request
// completes. Cookie is meaningful only when Err is nil.
type LeaseAcquired struct {
	Job    uint64
	Cookie uint32
	Err    error
}

// LeaseReleased is posted by the inhibition worker when a release request
// completes.
type LeaseReleased struct {
	Job    uint64
	Cookie uint32
	Err    error
}

// Op is a remote control operation.
type Op int

const (
	OpPlay Op = iota
	OpPause
	OpToggle
	OpStop
	OpSeekBy
	OpSeekTo
)

func (o Op) String() string {
	switch o {
	case OpPlay:
		return "play"
	case OpPause:
		return "pause"
	case OpToggle:
		return "toggle"
	case OpStop:
		return "stop"
	case OpSeekBy:
		return "seek-by"
	case OpSeekTo:
		return "seek-to"
	default:
		return "unknown"
	}
}

// Command is a control request from outside the UI loop (MPRIS).
// Offset is used by OpSeekBy, Position by OpSeekTo.
type Command struct {
	Op       Op
	Offset   time.Duration
	Position time.Duration
}

// Shutdown reports that the engine's output window was closed.
type Shutdown struct {
	Source string
}

func (StateChanged) event()   {}
func (ErrorOccurred) event()  {}
func (EndOfStream) event()    {}
func (TagsDiscovered) event() {}
func (LeaseAcquired) event()  {}
func (LeaseReleased) event()  {}
func (Command) event()        {}
func (Shutdown) event()       {}
