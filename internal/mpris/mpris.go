//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/vdplayer/internal/notify"
	"github.com/llehouerou/vdplayer/internal/playback"
	"github.com/llehouerou/vdplayer/internal/relay"
	"github.com/llehouerou/vdplayer/internal/session"
)

// Adapter exposes the playback session over MPRIS on the session bus.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter. Reads come from the
// published session status; control calls are posted to the relay queue
// and run on the UI loop.
func New(src StatusSource, poster relay.Poster) (*Adapter, error) {
	a := &Adapter{}
	a.server = server.NewServer("vdplayer", &rootAdapter{poster: poster}, &playerAdapter{src: src, poster: poster})

	// Start the server in background
	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct {
	poster relay.Poster
}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - quitting belongs to the window
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "vdplayer", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file", "http", "https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"video/mp4", "video/x-matroska", "video/webm", "audio/mpeg", "audio/flac", "audio/wav"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	src    StatusSource
	poster relay.Poster
}

func (p *playerAdapter) post(cmd relay.Command) error {
	if !p.poster.Post(cmd) {
		return fmt.Errorf("mpris %s: %w", cmd.Op, relay.ErrClosed)
	}
	return nil
}

func (p *playerAdapter) Next() error {
	return nil // single locator
}

func (p *playerAdapter) Previous() error {
	return nil // single locator
}

func (p *playerAdapter) Pause() error {
	return p.post(relay.Command{Op: relay.OpPause})
}

func (p *playerAdapter) PlayPause() error {
	return p.post(relay.Command{Op: relay.OpToggle})
}

func (p *playerAdapter) Stop() error {
	return p.post(relay.Command{Op: relay.OpStop})
}

func (p *playerAdapter) Play() error {
	return p.post(relay.Command{Op: relay.OpPlay})
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	return p.post(relay.Command{Op: relay.OpSeekBy, Offset: time.Duration(offset) * time.Microsecond})
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	return p.post(relay.Command{Op: relay.OpSeekTo, Position: time.Duration(position) * time.Microsecond})
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.src.Status().State {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	return metadata(p.src.Status()), nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	return p.src.Status().Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return p.src.Status().Duration.IsPresent(), nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func metadata(st session.Status) types.Metadata {
	if st.Locator == "" {
		return types.Metadata{}
	}
	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(st.Locator)),
		Title:   st.Title(),
		Album:   st.Info.Album,
	}
	if d, ok := st.Duration.Get(); ok {
		meta.Length = types.Microseconds(d.Microseconds())
	}
	if st.Info.Artist != "" {
		meta.Artist = []string{st.Info.Artist}
	}
	if artPath := notify.FindCoverArt(st.Locator); artPath != "" {
		meta.ArtUrl = "file://" + artPath
	}
	return meta
}

func formatTrackID(path string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
