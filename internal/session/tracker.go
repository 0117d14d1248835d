package session

import (
	"time"

	"github.com/samber/mo"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/vdplayer/internal/engine"
	"github.com/llehouerou/vdplayer/internal/playback"
)

// Tracker caches the playback position and the media duration.
//
// The duration is queried until the first success and never again; the
// position is queried on every refresh while media is loaded.
type Tracker struct {
	eng  engine.Engine
	log  *logrus.Entry
	snap playback.Snapshot
}

func NewTracker(eng engine.Engine, log *logrus.Entry) *Tracker {
	return &Tracker{eng: eng, log: log}
}

// Refresh queries the engine for the given playback state. The bool
// reports whether the duration became known during this call.
func (t *Tracker) Refresh(state playback.State) (playback.Snapshot, bool) {
	if state < playback.StatePaused {
		return t.snap, false
	}

	resolved := false
	if t.snap.Duration.IsAbsent() {
		if d, err := t.eng.QueryDuration(); err != nil {
			t.log.WithError(err).Debug("duration query failed")
		} else {
			t.snap.Duration = mo.Some(d)
			resolved = true
		}
	}

	if p, err := t.eng.QueryPosition(); err != nil {
		t.log.WithError(err).Debug("position query failed")
	} else {
		t.snap.Position = p
	}
	return t.snap, resolved
}

// Snapshot returns the cached values without querying.
func (t *Tracker) Snapshot() playback.Snapshot { return t.snap }

// SetPosition overwrites the cached position, after a seek.
func (t *Tracker) SetPosition(p time.Duration) { t.snap.Position = p }
