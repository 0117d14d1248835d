// internal/engine/engine.go
package engine

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/llehouerou/vdplayer/internal/playback"
)

// Engine is the control surface of a playback pipeline.
//
// State changes requested through SetState complete asynchronously: the
// engine posts relay.StateChanged events, one per step, from its own
// goroutines. All methods are safe to call from the UI loop.
type Engine interface {
	// Name is the name of the top-level element. Only StateChanged events
	// with this Source describe the pipeline as a whole.
	Name() string
	// SetState requests a transition to target. An error means the
	// request was rejected outright.
	SetState(target playback.State) error
	Seek(req playback.SeekRequest) error
	QueryPosition() (time.Duration, error)
	QueryDuration() (time.Duration, error)
	// Streams describes the loaded media. It is safe to call repeatedly.
	Streams() playback.StreamInfo
	SetFullscreen(on bool) error
	Fullscreen() bool
	Close() error
}

var (
	// ErrUnavailable is returned by queries when the engine cannot answer
	// yet, typically before the media is loaded.
	ErrUnavailable = errors.New("engine: value unavailable")
	// ErrNotSupported is returned for operations an engine cannot perform.
	ErrNotSupported = errors.New("engine: operation not supported")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("engine: closed")
)

// Kind selects an engine implementation.
type Kind string

const (
	KindMPV  Kind = "mpv"
	KindBeep Kind = "beep"
	KindAuto Kind = "auto"
)

// ParseKind validates an engine name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindMPV, KindBeep, KindAuto:
		return k, nil
	case "":
		return KindMPV, nil
	default:
		return "", fmt.Errorf("unknown engine %q (want mpv, beep or auto)", s)
	}
}

var audioExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".wav":  true,
}

// IsLocalAudio reports whether locator is a local file the audio-only
// engine can decode.
func IsLocalAudio(locator string) bool {
	if strings.Contains(locator, "://") {
		return false
	}
	return audioExtensions[strings.ToLower(filepath.Ext(locator))]
}

// Choose resolves KindAuto for a given locator.
func Choose(k Kind, locator string) Kind {
	if k != KindAuto {
		return k
	}
	if IsLocalAudio(locator) {
		return KindBeep
	}
	return KindMPV
}
