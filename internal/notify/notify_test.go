package notify

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNowPlaying(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "sintel.mkv")
	poster := filepath.Join(dir, "poster.jpg")
	require.NoError(t, os.WriteFile(poster, nil, 0o600))

	n := NowPlaying("Blender - Sintel", media, 0)
	assert.Equal(t, "Now playing", n.Summary)
	assert.Equal(t, "Blender - Sintel", n.Body)
	assert.Equal(t, poster, n.Icon)
	assert.Zero(t, n.Replaces)
	assert.Equal(t, UrgencyLow, n.Urgency)
	assert.Zero(t, n.Expire, "server default expiry")

	update := NowPlaying("Sintel (2010)", "https://example.com/sintel", 7)
	assert.Equal(t, uint32(7), update.Replaces)
	assert.Empty(t, update.Icon)
}

func TestDisabledNotifier(t *testing.T) {
	var n Notifier = disabled{}
	id, err := n.Notify(NowPlaying("x", "", 0))
	require.NoError(t, err)
	assert.Zero(t, id)
	assert.NoError(t, n.Withdraw(3))
}

func TestMock_ReplaceKeepsID(t *testing.T) {
	m := NewMock()

	first, err := m.Notify(NowPlaying("a", "", 0))
	require.NoError(t, err)
	second, err := m.Notify(NowPlaying("b", "", first))
	require.NoError(t, err)
	other, err := m.Notify(NowPlaying("c", "", 0))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Len(t, m.Sent(), 3)

	require.NoError(t, m.Withdraw(first))
	assert.Equal(t, []uint32{first}, m.Withdrawn())
}

func TestMock_Error(t *testing.T) {
	m := NewMock()
	m.SetError(errors.New("no server"))

	_, err := m.Notify(NowPlaying("a", "", 0))
	require.Error(t, err)
	assert.Empty(t, m.Sent())
}
