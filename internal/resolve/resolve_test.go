package resolve

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageURL = "https://www.youtube.com/watch?v=aqz-KE-bpKQ"

type call struct {
	name string
	args []string
}

type fakeRunner struct {
	calls   []call
	outputs map[string][]byte
	errs    map[string]error
}

func (f *fakeRunner) run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, call{name: name, args: args})
	if err := f.errs[name]; err != nil {
		return nil, err
	}
	return f.outputs[name], nil
}

func newResolver(f *fakeRunner) *Resolver {
	log, _ := test.NewNullLogger()
	return New(Options{
		Command:  "yt-dlp",
		Fallback: "youtube-dl",
		Format:   "best[ext=mp4]",
		Timeout:  time.Second,
		Hosts:    []string{"YouTube.com", "www.youtube.com", "youtu.be"},
		Log:      logrus.NewEntry(log),
		Run:      f.run,
	})
}

func TestResolve_LocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	r := newResolver(&fakeRunner{})

	got, err := r.Resolve(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	got, err = r.Resolve(context.Background(), "file://"+path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestResolve_MissingLocalFile(t *testing.T) {
	r := newResolver(&fakeRunner{})
	_, err := r.Resolve(context.Background(), filepath.Join(t.TempDir(), "missing.mkv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolve_OtherURLPassesThrough(t *testing.T) {
	f := &fakeRunner{}
	r := newResolver(f)

	got, err := r.Resolve(context.Background(), "https://example.org/stream.m3u8")
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/stream.m3u8", got)
	assert.Empty(t, f.calls)
}

func TestResolve_VideoHostUsesHelper(t *testing.T) {
	f := &fakeRunner{outputs: map[string][]byte{
		"yt-dlp": []byte("\nhttps://rr1.googlevideo.com/videoplayback?id=1\nhttps://second\n"),
	}}
	r := newResolver(f)

	got, err := r.Resolve(context.Background(), pageURL)
	require.NoError(t, err)
	assert.Equal(t, "https://rr1.googlevideo.com/videoplayback?id=1", got)

	require.Len(t, f.calls, 1)
	assert.Equal(t, []string{"--format", "best[ext=mp4]", "--get-url", pageURL}, f.calls[0].args)
}

func TestResolve_FallbackHelper(t *testing.T) {
	f := &fakeRunner{
		errs:    map[string]error{"yt-dlp": errors.New("executable file not found")},
		outputs: map[string][]byte{"youtube-dl": []byte("https://cdn/video.mp4\n")},
	}
	r := newResolver(f)

	got, err := r.Resolve(context.Background(), "https://youtu.be/aqz-KE-bpKQ")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/video.mp4", got)
	assert.Len(t, f.calls, 2)
}

func TestResolve_EmptyOutput(t *testing.T) {
	f := &fakeRunner{outputs: map[string][]byte{"yt-dlp": []byte("  \n"), "youtube-dl": nil}}
	r := newResolver(f)

	_, err := r.Resolve(context.Background(), pageURL)
	require.ErrorIs(t, err, ErrNoURL)
}

func TestResolve_NoHelper(t *testing.T) {
	r := New(Options{Hosts: []string{"youtu.be"}, Run: (&fakeRunner{}).run})
	_, err := r.Resolve(context.Background(), "https://youtu.be/x")
	require.ErrorIs(t, err, ErrNoHelper)
}

func TestIsVideoHost(t *testing.T) {
	r := newResolver(&fakeRunner{})
	assert.True(t, r.IsVideoHost("youtube.com"))
	assert.True(t, r.IsVideoHost("WWW.YOUTUBE.COM"))
	assert.False(t, r.IsVideoHost("vimeo.com"))
}
