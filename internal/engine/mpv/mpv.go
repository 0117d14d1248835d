// Package mpv drives libmpv as a playback engine with its own video window.
package mpv

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/supersonic-app/go-mpv"

	"github.com/llehouerou/vdplayer/internal/engine"
	"github.com/llehouerou/vdplayer/internal/playback"
	"github.com/llehouerou/vdplayer/internal/relay"
)

// Name is the top-level element name this engine reports.
const Name = "mpv"

// Property observer ids.
const (
	obsPause uint64 = iota + 1
	obsEOF
	obsTrackCount
	obsMetadata
	obsFullscreen
)

// Options configure a new engine.
type Options struct {
	Fullscreen bool
	// Extra are passed to libmpv as options before initialization.
	Extra map[string]string
	Log   *logrus.Entry
}

// Engine plays one locator through libmpv.
//
// libmpv reports paused/unpaused and file loaded rather than pipeline
// states; the event loop translates those into single-step transitions.
type Engine struct {
	mpv     *mpv.Mpv
	locator string
	poster  relay.Poster
	log     *logrus.Entry

	mu         sync.Mutex
	reported   playback.State // last state posted
	target     playback.State
	loading    bool
	loaded     bool
	stopping   bool // an unload we asked for is in progress
	paused     bool
	fullscreen bool
	closed     bool

	cancel context.CancelFunc
	done   chan struct{}
}

var _ engine.Engine = (*Engine)(nil)

// New creates and initializes libmpv and starts its event loop. The
// locator is not loaded until the engine is asked to leave Ready.
func New(locator string, poster relay.Poster, opts Options) (*Engine, error) {
	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	m := mpv.Create()
	if m == nil {
		return nil, errors.New("mpv: cannot create context")
	}

	base := map[string]string{
		"terminal":               "no",
		"idle":                   "yes",
		"force-window":           "yes",
		"keep-open":              "yes",
		"input-default-bindings": "yes",
		"input-vo-keyboard":      "yes",
		"osc":                    "yes",
		"title":                  "vdplayer",
	}
	if opts.Fullscreen {
		base["fullscreen"] = "yes"
	}
	maps.Copy(base, opts.Extra)
	for _, k := range slices.Sorted(maps.Keys(base)) {
		if err := m.SetOptionString(k, base[k]); err != nil {
			log.WithError(err).WithField("option", k).Warn("mpv option rejected")
		}
	}

	for id, name := range map[uint64]string{
		obsPause:      "pause",
		obsEOF:        "eof-reached",
		obsFullscreen: "fullscreen",
	} {
		if err := m.ObserveProperty(id, name, mpv.FORMAT_FLAG); err != nil {
			log.WithError(err).WithField("property", name).Debug("observe failed")
		}
	}
	if err := m.ObserveProperty(obsTrackCount, "track-list/count", mpv.FORMAT_INT64); err != nil {
		log.WithError(err).Debug("observe track-list failed")
	}
	if err := m.ObserveProperty(obsMetadata, "metadata", mpv.FORMAT_NODE); err != nil {
		log.WithError(err).Debug("observe metadata failed")
	}

	if err := m.Initialize(); err != nil {
		m.TerminateDestroy()
		return nil, fmt.Errorf("mpv: initialize: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		mpv:        m,
		locator:    locator,
		poster:     poster,
		log:        log,
		reported:   playback.StateNull,
		target:     playback.StateNull,
		fullscreen: opts.Fullscreen,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
	go e.eventLoop(ctx)
	return e, nil
}

func (e *Engine) Name() string { return Name }

// SetState requests a transition. Downward transitions complete at once;
// leaving Ready loads the locator and completes on FILE_LOADED.
func (e *Engine) SetState(target playback.State) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return engine.ErrClosed
	}
	e.target = target

	switch {
	case target <= playback.StateReady:
		if e.loaded || e.loading {
			e.stopping = true
			if err := e.mpv.Command([]string{"stop"}); err != nil {
				return fmt.Errorf("mpv: stop: %w", err)
			}
		}
		e.loaded, e.loading = false, false
		e.postTo(target)
		return nil

	case e.loaded || e.loading:
		return e.setPaused(target == playback.StatePaused)

	default:
		e.postTo(playback.StateReady)
		if err := e.setPaused(target == playback.StatePaused); err != nil {
			return err
		}
		if err := e.mpv.Command([]string{"loadfile", e.locator, "replace"}); err != nil {
			return fmt.Errorf("mpv: load %s: %w", e.locator, err)
		}
		e.loading = true
		return nil
	}
}

func (e *Engine) setPaused(paused bool) error {
	if err := e.mpv.SetProperty("pause", mpv.FORMAT_FLAG, paused); err != nil {
		return fmt.Errorf("mpv: set pause: %w", err)
	}
	return nil
}

// postTo reports the steps from the last reported state to s. Caller holds mu.
func (e *Engine) postTo(s playback.State) {
	for _, step := range playback.Steps(e.reported, s) {
		e.poster.Post(relay.StateChanged{
			Source:  Name,
			Old:     step.Old,
			New:     step.New,
			Pending: pendingAfter(step.New, s),
		})
	}
	if s != playback.StateVoidPending {
		e.reported = s
	}
}

func pendingAfter(reached, target playback.State) playback.State {
	if reached == target {
		return playback.StateVoidPending
	}
	return target
}

func (e *Engine) Seek(req playback.SeekRequest) error {
	mode := "absolute+exact"
	if req.Flags.Has(playback.SeekKeyUnit) {
		mode = "absolute+keyframes"
	}
	target := fmt.Sprintf("%0.3f", req.Target.Seconds())
	if err := e.mpv.Command([]string{"seek", target, mode}); err != nil {
		return fmt.Errorf("mpv: seek to %s: %w", target, err)
	}
	return nil
}

func (e *Engine) QueryPosition() (time.Duration, error) {
	return e.seconds("time-pos")
}

func (e *Engine) QueryDuration() (time.Duration, error) {
	return e.seconds("duration")
}

func (e *Engine) seconds(prop string) (time.Duration, error) {
	v, err := e.mpv.GetProperty(prop, mpv.FORMAT_DOUBLE)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", engine.ErrUnavailable, prop, err)
	}
	secs, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: %s", engine.ErrUnavailable, prop)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// Streams reads the current track list and metadata.
func (e *Engine) Streams() playback.StreamInfo {
	var info playback.StreamInfo
	if v, err := e.mpv.GetProperty("track-list", mpv.FORMAT_NODE); err == nil {
		if n, ok := v.(*mpv.Node); ok {
			info.Streams = parseTrackList(n)
		}
	}
	if v, err := e.mpv.GetProperty("metadata", mpv.FORMAT_NODE); err == nil {
		if n, ok := v.(*mpv.Node); ok {
			info.Title, info.Artist, info.Album = parseMetadata(n)
		}
	}
	if info.Title == "" {
		info.Title = e.mpv.GetPropertyString("media-title")
	}
	return info
}

func (e *Engine) SetFullscreen(on bool) error {
	if err := e.mpv.SetProperty("fullscreen", mpv.FORMAT_FLAG, on); err != nil {
		return fmt.Errorf("mpv: fullscreen: %w", err)
	}
	e.mu.Lock()
	e.fullscreen = on
	e.mu.Unlock()
	return nil
}

func (e *Engine) Fullscreen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fullscreen
}

// Close stops the event loop and destroys the mpv context.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	e.cancel()
	<-e.done
	e.mpv.TerminateDestroy()
	return nil
}

func (e *Engine) eventLoop(ctx context.Context) {
	defer close(e.done)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		ev := e.mpv.WaitEvent(0.25)
		if ev == nil {
			continue
		}
		switch ev.Event_Id {
		case mpv.EVENT_NONE:
		case mpv.EVENT_FILE_LOADED:
			e.onFileLoaded()
		case mpv.EVENT_END_FILE:
			e.onEndFile()
		case mpv.EVENT_PROPERTY_CHANGE:
			e.onPropertyChange(ev.Reply_Userdata)
		case mpv.EVENT_SHUTDOWN:
			e.log.Debug("mpv shut down")
			e.poster.Post(relay.Shutdown{Source: Name})
			return
		}
	}
}

func (e *Engine) onFileLoaded() {
	paused := e.flag("pause")

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loading {
		return
	}
	e.loading, e.loaded = false, true
	e.paused = paused
	if paused {
		e.postTo(playback.StatePaused)
	} else {
		e.postTo(playback.StatePlaying)
	}
}

func (e *Engine) onEndFile() {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case e.stopping:
		e.stopping = false
	case e.loading:
		e.loading = false
		e.poster.Post(relay.ErrorOccurred{
			Source: Name,
			Err:    fmt.Errorf("mpv: cannot play %s", e.locator),
			Debug:  "end-file before file-loaded",
		})
	case e.loaded:
		e.loaded = false
		e.poster.Post(relay.EndOfStream{Source: Name})
	}
}

func (e *Engine) onPropertyChange(id uint64) {
	switch id {
	case obsPause:
		paused := e.flag("pause")
		e.mu.Lock()
		defer e.mu.Unlock()
		if !e.loaded || paused == e.paused {
			e.paused = paused
			return
		}
		e.paused = paused
		if paused {
			e.postTo(playback.StatePaused)
		} else {
			e.postTo(playback.StatePlaying)
		}

	case obsEOF:
		if !e.flag("eof-reached") {
			return
		}
		e.mu.Lock()
		loaded := e.loaded
		e.mu.Unlock()
		if loaded {
			e.poster.Post(relay.EndOfStream{Source: Name})
		}

	case obsFullscreen:
		fs := e.flag("fullscreen")
		e.mu.Lock()
		e.fullscreen = fs
		e.mu.Unlock()

	case obsTrackCount:
		e.poster.Post(relay.TagsDiscovered{Source: Name, Stream: "track-list"})
	case obsMetadata:
		e.poster.Post(relay.TagsDiscovered{Source: Name, Stream: "metadata"})
	}
}

func (e *Engine) flag(prop string) bool {
	v, err := e.mpv.GetProperty(prop, mpv.FORMAT_FLAG)
	if err != nil {
		return false
	}
	b, _ := v.(bool)
	return b
}
