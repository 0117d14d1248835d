package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/vdplayer/internal/playback"
	"github.com/llehouerou/vdplayer/internal/relay"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"mpv", KindMPV, false},
		{"BEEP", KindBeep, false},
		{" auto ", KindAuto, false},
		{"", KindMPV, false},
		{"gstreamer", "", true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestChoose(t *testing.T) {
	assert.Equal(t, KindBeep, Choose(KindAuto, "/music/song.FLAC"))
	assert.Equal(t, KindMPV, Choose(KindAuto, "/videos/clip.mkv"))
	assert.Equal(t, KindMPV, Choose(KindAuto, "https://example.com/song.mp3"))
	assert.Equal(t, KindMPV, Choose(KindMPV, "/music/song.mp3"))
	assert.Equal(t, KindBeep, Choose(KindBeep, "/videos/clip.mkv"))
}

func TestMock_SetStatePostsSteps(t *testing.T) {
	q := relay.NewQueue()
	m := NewMock(q)
	m.ForceState(playback.StateReady)

	require.NoError(t, m.SetState(playback.StatePlaying))

	var got []playback.Transition
	for {
		e, ok := q.TryNext()
		if !ok {
			break
		}
		sc := e.(relay.StateChanged)
		assert.Equal(t, MockName, sc.Source)
		got = append(got, playback.Transition{Old: sc.Old, New: sc.New})
	}
	assert.Equal(t, []playback.Transition{
		{Old: playback.StateReady, New: playback.StatePaused},
		{Old: playback.StatePaused, New: playback.StatePlaying},
	}, got)
	assert.Equal(t, []playback.State{playback.StatePlaying}, m.StateCalls())
}

func TestMock_Queries(t *testing.T) {
	m := NewMock(nil)
	_, err := m.QueryDuration()
	assert.ErrorIs(t, err, ErrUnavailable)

	m.SetDuration(42)
	d, err := m.QueryDuration()
	require.NoError(t, err)
	assert.EqualValues(t, 42, d)

	pos, dur := m.Queries()
	assert.Equal(t, 0, pos)
	assert.Equal(t, 2, dur)
}
