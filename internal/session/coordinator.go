// Package session coordinates one playback session: it applies engine
// notifications on the UI loop and keeps the displayed position, the idle
// inhibition lease and the resume store in step with the playback state.
package session

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/vdplayer/internal/engine"
	"github.com/llehouerou/vdplayer/internal/errmsg"
	"github.com/llehouerou/vdplayer/internal/inhibit"
	"github.com/llehouerou/vdplayer/internal/notify"
	"github.com/llehouerou/vdplayer/internal/playback"
	"github.com/llehouerou/vdplayer/internal/relay"
	"github.com/llehouerou/vdplayer/internal/state"
	"github.com/llehouerou/vdplayer/internal/ui/seekbar"
)

// DefaultSeekStep is the relative seek used when none is configured.
const DefaultSeekStep = 10 * time.Second

// Options wire a Coordinator. Engine and Inhibit are required.
type Options struct {
	Locator  string
	Engine   engine.Engine
	Inhibit  *inhibit.Manager
	Store    state.Interface // nil disables resume
	Notifier notify.Notifier // nil disables the now-playing notification
	SeekStep time.Duration
	Log      *logrus.Entry
}

// Coordinator owns the session state. Handle, Tick and the control
// methods must be called from the UI loop only; Status may be called from
// any goroutine.
type Coordinator struct {
	locator  string
	eng      engine.Engine
	inhibit  *inhibit.Manager
	store    state.Interface
	notifier notify.Notifier
	seekStep time.Duration
	log      *logrus.Entry

	state   playback.State
	pending playback.State
	info    playback.StreamInfo
	lastErr string
	loaded  bool // first Ready to Paused seen

	notice      uint32 // id of the now-playing notification
	noticeTitle string
	announced   bool

	tracker *Tracker
	mirror  *seekbar.Mirror
	seeker  *Seeker

	status atomic.Pointer[Status]
}

func New(opts Options) *Coordinator {
	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	step := opts.SeekStep
	if step <= 0 {
		step = DefaultSeekStep
	}

	c := &Coordinator{
		locator:  opts.Locator,
		eng:      opts.Engine,
		inhibit:  opts.Inhibit,
		store:    opts.Store,
		notifier: opts.Notifier,
		seekStep: step,
		log:      log,
		state:    playback.StateNull,
		pending:  playback.StateVoidPending,
	}
	c.tracker = NewTracker(c.eng, log)
	c.mirror = seekbar.NewMirror(seekbar.NewRange(0, 0), c.userSeek)
	c.seeker = NewSeeker(c.eng, c.tracker, c.mirror, log)
	c.publish()
	return c
}

// Handle applies one relay event. It reports true when the session is
// over and the application should quit.
func (c *Coordinator) Handle(ev relay.Event) bool {
	defer c.publish()

	switch ev := ev.(type) {
	case relay.StateChanged:
		c.stateChanged(ev)

	case relay.ErrorOccurred:
		entry := c.log.WithError(ev.Err).WithField("source", ev.Source)
		if ev.Debug != "" {
			entry = entry.WithField("debug", ev.Debug)
		}
		entry.Error("engine error")
		c.lastErr = errmsg.Format(errmsg.OpPlayback, ev.Err)
		c.setState(playback.StateReady, errmsg.OpPlaybackStop)

	case relay.EndOfStream:
		c.log.WithField("source", ev.Source).Info("end of stream")
		c.setState(playback.StateReady, errmsg.OpPlaybackStop)
		if c.store != nil {
			c.store.Forget(c.locator)
		}

	case relay.TagsDiscovered:
		c.info = c.eng.Streams()
		c.log.WithFields(logrus.Fields{
			"source":  ev.Source,
			"stream":  ev.Stream,
			"streams": len(c.info.Streams),
		}).Debug("tags discovered")
		if c.loaded {
			c.announce()
		}

	case relay.LeaseAcquired:
		c.inhibit.HandleAcquired(ev)
	case relay.LeaseReleased:
		c.inhibit.HandleReleased(ev)

	case relay.Command:
		c.command(ev)

	case relay.Shutdown:
		c.log.WithField("source", ev.Source).Info("output closed")
		return true
	}
	return false
}

func (c *Coordinator) stateChanged(ev relay.StateChanged) {
	if ev.Source != c.eng.Name() {
		c.log.WithFields(logrus.Fields{
			"source": ev.Source,
			"old":    ev.Old,
			"new":    ev.New,
		}).Debug("ignoring child state change")
		return
	}

	prev := c.state
	c.state, c.pending = ev.New, ev.Pending
	c.log.WithFields(logrus.Fields{
		"old":     ev.Old,
		"new":     ev.New,
		"pending": ev.Pending,
	}).Debug("state changed")

	if ev.Old == playback.StateReady && ev.New == playback.StatePaused {
		c.refresh()
		c.mediaLoaded()
	}

	if ev.New == prev {
		return
	}
	switch ev.New {
	case playback.StatePlaying:
		c.inhibit.Want(true)
	case playback.StatePaused:
		c.inhibit.Want(false)
	case playback.StateReady, playback.StateNull:
		c.inhibit.Want(false)
		if prev > playback.StateReady {
			c.tracker.SetPosition(0)
			c.mirror.SetDisplayedPosition(0)
		}
	}
}

// mediaLoaded runs on every Ready to Paused; the once-per-session work
// only on the first.
func (c *Coordinator) mediaLoaded() {
	c.info = c.eng.Streams()
	if c.loaded {
		return
	}
	c.loaded = true

	if c.store != nil {
		if pos, ok := c.store.Position(c.locator); ok {
			c.log.WithField("position", pos).Info("resuming")
			if err := c.seeker.SeekTo(pos); err != nil {
				c.lastErr = errmsg.Format(errmsg.OpPlaybackSeek, err)
			}
		}
	}

	c.announce()
}

// announce shows the now-playing notification, or updates the one already
// shown when the title changed since.
func (c *Coordinator) announce() {
	if c.notifier == nil {
		return
	}
	title := c.title()
	if c.announced && title == c.noticeTitle {
		return
	}
	id, err := c.notifier.Notify(notify.NowPlaying(title, c.locator, c.notice))
	if err != nil {
		c.log.WithError(err).Debug("notification failed")
		return
	}
	c.notice, c.noticeTitle, c.announced = id, title, true
}

// Tick is the periodic refresh.
func (c *Coordinator) Tick() {
	defer c.publish()
	c.refresh()

	if c.store == nil || c.state != playback.StatePlaying {
		return
	}
	snap := c.tracker.Snapshot()
	c.store.SavePosition(c.locator, snap.Position, snap.Duration.OrEmpty())
}

func (c *Coordinator) refresh() {
	snap, resolved := c.tracker.Refresh(c.state)
	if resolved {
		d, _ := snap.Duration.Get()
		c.mirror.SetDuration(d.Seconds())
	}
	if c.state >= playback.StatePaused {
		c.mirror.SetDisplayedPosition(snap.Position.Seconds())
	}
}

func (c *Coordinator) command(cmd relay.Command) {
	c.log.WithField("op", cmd.Op).Debug("remote command")
	switch cmd.Op {
	case relay.OpPlay:
		_ = c.Play()
	case relay.OpPause:
		_ = c.Pause()
	case relay.OpToggle:
		_ = c.Toggle()
	case relay.OpStop:
		_ = c.Stop()
	case relay.OpSeekBy:
		_ = c.SeekBy(cmd.Offset)
	case relay.OpSeekTo:
		_ = c.SeekTo(cmd.Position)
	}
}

// Play, Pause and Stop request a transition; the new state is applied
// when the engine reports it.
func (c *Coordinator) Play() error { return c.setState(playback.StatePlaying, errmsg.OpPlaybackStart) }
func (c *Coordinator) Pause() error { return c.setState(playback.StatePaused, errmsg.OpPlaybackPause) }
func (c *Coordinator) Stop() error { return c.setState(playback.StateReady, errmsg.OpPlaybackStop) }

// Toggle pauses while playing and plays otherwise.
func (c *Coordinator) Toggle() error {
	if c.state == playback.StatePlaying {
		return c.Pause()
	}
	return c.Play()
}

func (c *Coordinator) setState(target playback.State, op errmsg.Op) error {
	if err := c.eng.SetState(target); err != nil {
		c.log.WithError(err).WithField("target", target).Error("state change rejected")
		c.lastErr = errmsg.Format(op, err)
		return err
	}
	return nil
}

// SeekBy seeks relative to the current position.
func (c *Coordinator) SeekBy(delta time.Duration) error {
	defer c.publish()
	if err := c.seeker.SeekBy(delta); err != nil {
		c.lastErr = errmsg.Format(errmsg.OpPlaybackSeek, err)
		return err
	}
	return nil
}

// SeekTo seeks to an absolute position.
func (c *Coordinator) SeekTo(target time.Duration) error {
	defer c.publish()
	if err := c.seeker.SeekTo(target); err != nil {
		c.lastErr = errmsg.Format(errmsg.OpPlaybackSeek, err)
		return err
	}
	return nil
}

// StepForward and StepBack seek by the configured step.
func (c *Coordinator) StepForward() error { return c.SeekBy(c.seekStep) }
func (c *Coordinator) StepBack() error { return c.SeekBy(-c.seekStep) }

// userSeek receives slider changes made by the user.
func (c *Coordinator) userSeek(seconds float64) {
	_ = c.SeekTo(time.Duration(seconds * float64(time.Second)))
}

// ToggleFullscreen flips the engine window between fullscreen and
// windowed. Engines without a window ignore it.
func (c *Coordinator) ToggleFullscreen() error {
	return c.setFullscreen(!c.eng.Fullscreen())
}

// ExitFullscreen leaves fullscreen if the window is in it.
func (c *Coordinator) ExitFullscreen() error {
	if !c.eng.Fullscreen() {
		return nil
	}
	return c.setFullscreen(false)
}

func (c *Coordinator) setFullscreen(on bool) error {
	defer c.publish()
	err := c.eng.SetFullscreen(on)
	switch {
	case errors.Is(err, engine.ErrNotSupported):
		c.log.Debug("engine has no window")
		return nil
	case err != nil:
		c.log.WithError(err).Warn("fullscreen change failed")
		c.lastErr = errmsg.Format(errmsg.OpFullscreen, err)
		return err
	}
	return nil
}

// Close saves the resume position, withdraws the now-playing notification
// and drops the inhibition lease, giving up when ctx is done.
func (c *Coordinator) Close(ctx context.Context) error {
	if c.store != nil && c.state >= playback.StatePaused {
		snap := c.tracker.Snapshot()
		c.store.SavePosition(c.locator, snap.Position, snap.Duration.OrEmpty())
	}
	if c.notifier != nil && c.notice != 0 {
		if err := c.notifier.Withdraw(c.notice); err != nil {
			c.log.WithError(err).Debug("cannot withdraw notification")
		}
		c.notice = 0
	}
	err := c.inhibit.Shutdown(ctx)
	c.publish()
	return err
}

// State is the last state the engine's top-level element reported.
func (c *Coordinator) State() playback.State { return c.state }

// Pending is the state the engine is still moving to, if any.
func (c *Coordinator) Pending() playback.State { return c.pending }

func (c *Coordinator) Snapshot() playback.Snapshot { return c.tracker.Snapshot() }

func (c *Coordinator) Streams() playback.StreamInfo { return c.info }

// Mirror is the slider the position is shown on.
func (c *Coordinator) Mirror() *seekbar.Mirror { return c.mirror }

func (c *Coordinator) Lease() inhibit.Lease { return c.inhibit.Lease() }

func (c *Coordinator) SeekStep() time.Duration { return c.seekStep }

func (c *Coordinator) EngineName() string { return c.eng.Name() }

// LastError is the user-facing text of the last absorbed failure.
func (c *Coordinator) LastError() string { return c.lastErr }

func (c *Coordinator) ClearError() { c.lastErr = "" }

// Status returns the last published copy. Safe from any goroutine.
func (c *Coordinator) Status() Status {
	return *c.status.Load()
}

func (c *Coordinator) publish() {
	snap := c.tracker.Snapshot()
	c.status.Store(&Status{
		Locator:    c.locator,
		State:      c.state,
		Pending:    c.pending,
		Position:   snap.Position,
		Duration:   snap.Duration,
		Info:       c.info,
		Fullscreen: c.eng.Fullscreen(),
		Inhibited:  c.inhibit.Lease().Active,
		SeekStep:   c.seekStep,
	})
}

func (c *Coordinator) title() string {
	if c.info.Title == "" {
		return displayName(c.locator)
	}
	if c.info.Artist != "" {
		return c.info.Artist + " - " + c.info.Title
	}
	return c.info.Title
}

// displayName shortens local paths to their file name. URLs are kept.
func displayName(locator string) string {
	if strings.Contains(locator, "://") {
		return locator
	}
	return filepath.Base(locator)
}
