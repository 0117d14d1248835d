package playback

import (
	"time"

	"github.com/samber/mo"
)

// Snapshot is the last known playback position and stream duration.
// Duration is absent until a duration query has succeeded.
type Snapshot struct {
	Position time.Duration
	Duration mo.Option[time.Duration]
}

// Remaining returns how much is left to play, or false if the duration is
// not known yet.
func (s Snapshot) Remaining() (time.Duration, bool) {
	d, ok := s.Duration.Get()
	if !ok {
		return 0, false
	}
	return max(d-s.Position, 0), true
}
