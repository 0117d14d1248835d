package session

import (
	"time"

	"github.com/samber/mo"

	"github.com/llehouerou/vdplayer/internal/playback"
)

// Status is a read-only copy of the session published for other
// goroutines (MPRIS). A published Status is never modified.
type Status struct {
	Locator    string
	State      playback.State
	Pending    playback.State
	Position   time.Duration
	Duration   mo.Option[time.Duration]
	Info       playback.StreamInfo
	Fullscreen bool
	Inhibited  bool
	SeekStep   time.Duration
}

// Title returns the media title, falling back to the locator.
func (s Status) Title() string {
	if s.Info.Title != "" {
		return s.Info.Title
	}
	return displayName(s.Locator)
}
