package session

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/vdplayer/internal/engine"
	"github.com/llehouerou/vdplayer/internal/playback"
	"github.com/llehouerou/vdplayer/internal/ui/seekbar"
)

// Seeker turns seek intents into engine seeks and updates the displayed
// position optimistically.
type Seeker struct {
	eng     engine.Engine
	tracker *Tracker
	mirror  *seekbar.Mirror
	log     *logrus.Entry
}

func NewSeeker(eng engine.Engine, tracker *Tracker, mirror *seekbar.Mirror, log *logrus.Entry) *Seeker {
	return &Seeker{eng: eng, tracker: tracker, mirror: mirror, log: log}
}

// SeekBy seeks relative to the position the engine reports right now.
func (s *Seeker) SeekBy(delta time.Duration) error {
	pos, err := s.eng.QueryPosition()
	if err != nil {
		s.log.WithError(err).Warn("cannot seek: position unknown")
		return fmt.Errorf("seek by %v: %w", delta, err)
	}
	return s.SeekTo(pos + delta)
}

// SeekTo seeks to target, clamped to the media bounds. With an unknown
// duration only the lower bound applies.
func (s *Seeker) SeekTo(target time.Duration) error {
	target = s.clamp(target)
	req := playback.SeekRequest{Target: target, Flags: playback.DefaultSeekFlags}

	if err := s.eng.Seek(req); err != nil {
		s.log.WithError(err).WithField("target", target).Warn("seek failed")
		return fmt.Errorf("seek to %v: %w", target, err)
	}
	s.log.WithFields(logrus.Fields{"target": target, "flags": req.Flags}).Debug("seek")

	s.tracker.SetPosition(target)
	if s.mirror != nil {
		s.mirror.SetDisplayedPosition(target.Seconds())
	}
	return nil
}

func (s *Seeker) clamp(target time.Duration) time.Duration {
	if d, ok := s.tracker.Snapshot().Duration.Get(); ok {
		return lo.Clamp(target, 0, d)
	}
	return max(target, 0)
}
