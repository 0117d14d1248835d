package playback

import (
	"strings"
	"time"
)

// SeekFlags modify how the engine performs a seek.
type SeekFlags uint8

const (
	// SeekFlush discards buffered data so the new position shows at once.
	SeekFlush SeekFlags = 1 << iota
	// SeekKeyUnit snaps the target to the nearest key frame.
	SeekKeyUnit
)

// DefaultSeekFlags is what interactive seeks use.
const DefaultSeekFlags = SeekFlush | SeekKeyUnit

// Has reports whether all bits of f are set.
func (s SeekFlags) Has(f SeekFlags) bool {
	return s&f == f
}

func (s SeekFlags) String() string {
	var parts []string
	if s.Has(SeekFlush) {
		parts = append(parts, "flush")
	}
	if s.Has(SeekKeyUnit) {
		parts = append(parts, "key-unit")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// SeekRequest is a single seek command.
type SeekRequest struct {
	Target time.Duration
	Flags  SeekFlags
}
