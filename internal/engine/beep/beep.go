// Package beep plays local audio files through the system speaker.
package beep

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/vdplayer/internal/engine"
	"github.com/llehouerou/vdplayer/internal/playback"
	"github.com/llehouerou/vdplayer/internal/relay"
)

// Name is the top-level element name this engine reports.
const Name = "beep"

// seekMute is how long output stays silent after a seek.
const seekMute = 100 * time.Millisecond

var (
	speakerMu          sync.Mutex
	speakerRate        beep.SampleRate
	speakerInitialized bool
)

// initSpeaker opens the output device once, at the first file's rate.
func initSpeaker(rate beep.SampleRate) (beep.SampleRate, error) {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if !speakerInitialized {
		if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
			return 0, err
		}
		speakerRate = rate
		speakerInitialized = true
	}
	return speakerRate, nil
}

// Engine plays a single local audio file.
//
// Transitions are applied synchronously and reported through the poster.
// End of stream is reported from the speaker goroutine.
type Engine struct {
	path   string
	poster relay.Poster
	log    *logrus.Entry

	mu     sync.Mutex
	state  playback.State
	media  *decoded
	ctrl   *beep.Ctrl
	volume *effects.Volume
	info   playback.StreamInfo
	closed bool

	// gen is bumped on unload so a stale end callback is dropped. The
	// callback runs under the speaker lock and must not take mu.
	gen atomic.Uint64
}

var _ engine.Engine = (*Engine)(nil)

// New creates an engine for path. Nothing is opened until the engine
// leaves Ready.
func New(path string, poster relay.Poster, log *logrus.Entry) *Engine {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Engine{
		path:   path,
		poster: poster,
		log:    log,
		state:  playback.StateNull,
	}
}

func (e *Engine) Name() string { return Name }

// SetState applies the transition. Opening or decoding failures are
// returned; the engine stays in Ready.
func (e *Engine) SetState(target playback.State) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return engine.ErrClosed
	}
	if target == playback.StateVoidPending {
		return nil
	}

	if target <= playback.StateReady {
		e.unload()
		e.postTo(target)
		return nil
	}

	if e.media == nil {
		e.postTo(playback.StateReady)
		if err := e.load(target == playback.StatePaused); err != nil {
			return err
		}
		e.postTo(target)
		e.poster.Post(relay.TagsDiscovered{Source: Name, Stream: "audio"})
		return nil
	}

	speaker.Lock()
	e.ctrl.Paused = target == playback.StatePaused
	speaker.Unlock()
	e.postTo(target)
	return nil
}

// load opens the file and starts it on the speaker. Caller holds mu.
func (e *Engine) load(paused bool) error {
	media, err := open(e.path)
	if err != nil {
		return err
	}
	rate, err := initSpeaker(media.format.SampleRate)
	if err != nil {
		media.Close()
		return fmt.Errorf("beep: init speaker: %w", err)
	}

	var s beep.Streamer = media.streamer
	if media.format.SampleRate != rate {
		s = beep.Resample(4, media.format.SampleRate, rate, media.streamer)
	}
	e.media = media
	e.ctrl = &beep.Ctrl{Streamer: s, Paused: paused}
	e.volume = &effects.Volume{Streamer: e.ctrl, Base: 2}

	e.info = readTags(e.path)
	e.info.Streams = []playback.Stream{{
		Kind:       playback.StreamAudio,
		Codec:      media.codec,
		SampleRate: int(media.format.SampleRate),
		Channels:   media.format.NumChannels,
	}}

	e.log.WithFields(logrus.Fields{
		"codec": media.codec,
		"rate":  int(media.format.SampleRate),
	}).Debug("audio loaded")

	gen := e.gen.Load()
	speaker.Play(beep.Seq(e.volume, beep.Callback(func() {
		if gen == e.gen.Load() {
			e.poster.Post(relay.EndOfStream{Source: Name})
		}
	})))
	return nil
}

// unload stops output and closes the file. Caller holds mu.
func (e *Engine) unload() {
	if e.media == nil {
		return
	}
	e.gen.Add(1)
	speaker.Clear()
	e.media.Close()
	e.media, e.ctrl, e.volume = nil, nil, nil
}

// postTo reports the steps from the current state to s. Caller holds mu.
func (e *Engine) postTo(s playback.State) {
	for _, step := range playback.Steps(e.state, s) {
		pending := s
		if step.New == s {
			pending = playback.StateVoidPending
		}
		e.poster.Post(relay.StateChanged{Source: Name, Old: step.Old, New: step.New, Pending: pending})
	}
	e.state = s
}

// Seek moves to req.Target, muting briefly to avoid a click.
func (e *Engine) Seek(req playback.SeekRequest) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.media == nil {
		return fmt.Errorf("beep: seek: %w", engine.ErrUnavailable)
	}

	n := e.media.format.SampleRate.N(req.Target)
	n = min(max(n, 0), max(e.media.streamer.Len()-1, 0))

	speaker.Lock()
	e.volume.Silent = true
	err := e.media.streamer.Seek(n)
	speaker.Unlock()
	if err != nil {
		speaker.Lock()
		e.volume.Silent = false
		speaker.Unlock()
		return fmt.Errorf("beep: seek: %w", err)
	}

	volume := e.volume
	time.AfterFunc(seekMute, func() {
		speaker.Lock()
		volume.Silent = false
		speaker.Unlock()
	})
	return nil
}

func (e *Engine) QueryPosition() (time.Duration, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.media == nil {
		return 0, engine.ErrUnavailable
	}
	speaker.Lock()
	pos := e.media.format.SampleRate.D(e.media.streamer.Position())
	speaker.Unlock()
	return pos, nil
}

func (e *Engine) QueryDuration() (time.Duration, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.media == nil {
		return 0, engine.ErrUnavailable
	}
	return e.media.format.SampleRate.D(e.media.streamer.Len()), nil
}

func (e *Engine) Streams() playback.StreamInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.info
}

func (e *Engine) SetFullscreen(bool) error {
	return fmt.Errorf("beep: fullscreen: %w", engine.ErrNotSupported)
}

func (e *Engine) Fullscreen() bool { return false }

func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.unload()
	e.closed = true
	return nil
}
