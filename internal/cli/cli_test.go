package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/vdplayer/internal/config"
	"github.com/llehouerou/vdplayer/internal/errmsg"
)

func executeArgs(args ...string) (int, string, string) {
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	code := execute(cmd, args)
	return code, out.String(), errOut.String()
}

func TestExecute_RequiresOneLocator(t *testing.T) {
	for _, args := range [][]string{nil, {"a.mkv", "b.mkv"}} {
		code, _, stderr := executeArgs(args...)
		assert.Equal(t, ExitFatal, code)
		assert.Contains(t, stderr, "accepts 1 arg(s)")
		assert.Contains(t, stderr, "vdplayer --help")
	}
}

func TestExecute_Version(t *testing.T) {
	code, out, _ := executeArgs("--version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, Version)
}

func TestExecute_Help(t *testing.T) {
	code, out, _ := executeArgs("--help")
	assert.Equal(t, 0, code)
	for _, flag := range []string{"--config", "--engine", "--no-inhibit", "--windowed", "--log-level", "--version"} {
		assert.Contains(t, out, flag)
	}
}

func TestExecute_MissingConfigFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")
	code, _, stderr := executeArgs("--config", missing, "movie.mkv")

	assert.Equal(t, ExitFatal, code)
	assert.Contains(t, stderr, "Failed to load configuration")
	assert.NotContains(t, stderr, "--help", "fatal errors do not print usage hints")
}

func TestExecute_UnknownEngine(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[log]\nlevel = \"error\"\n"), 0o644))

	code, _, stderr := executeArgs("--config", cfgPath, "--engine", "vlc", "movie.mkv")
	assert.Equal(t, ExitFatal, code)
	assert.Contains(t, stderr, "unknown engine")
}

func TestFlags_Apply(t *testing.T) {
	cfg := &config.Config{Engine: "mpv", Fullscreen: true}
	cfg.Inhibit.Enabled = true
	cfg.Log.Level = "info"

	flags{engine: "beep", logLevel: "debug", noInhibit: true, windowed: true}.apply(cfg)

	assert.Equal(t, "beep", cfg.Engine)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Inhibit.Enabled)
	assert.False(t, cfg.Fullscreen)
}

func TestFlags_ApplyKeepsConfigWhenUnset(t *testing.T) {
	cfg := &config.Config{Engine: "auto", Fullscreen: true}
	cfg.Inhibit.Enabled = true

	flags{}.apply(cfg)

	assert.Equal(t, "auto", cfg.Engine)
	assert.True(t, cfg.Fullscreen)
	assert.True(t, cfg.Inhibit.Enabled)
}

func TestFatalError(t *testing.T) {
	cause := errors.New("no such file")
	err := fatal(errmsg.OpEngineCreate, cause)

	assert.Equal(t, "Failed to create playback engine: no such file", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestSessionLocator(t *testing.T) {
	tests := []struct {
		name     string
		locator  string
		resolved string
		want     string
	}{
		{"local file", "movie.mkv", "/home/me/movie.mkv", "/home/me/movie.mkv"},
		{"file url", "file:///home/me/movie.mkv", "/home/me/movie.mkv", "/home/me/movie.mkv"},
		{"page url", "https://youtu.be/abc", "https://cdn.example/v.mp4?sig=1", "https://youtu.be/abc"},
		{"direct url", "https://example.com/v.mp4", "https://example.com/v.mp4", "https://example.com/v.mp4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sessionLocator(tt.locator, tt.resolved))
		})
	}
}

func TestNewResolver(t *testing.T) {
	log, _ := test.NewNullLogger()
	entry := logrus.NewEntry(log)

	cfg := &config.Config{Resolver: config.ResolverConfig{
		Command: "yt-dlp",
		Hosts:   []string{"youtu.be"},
	}}
	assert.True(t, newResolver(cfg, entry).IsVideoHost("youtu.be"))

	// hosts alone do not enable the helper
	bare := &config.Config{Resolver: config.ResolverConfig{Hosts: []string{"youtu.be"}}}
	r := newResolver(bare, entry)
	assert.False(t, r.IsVideoHost("youtu.be"))

	got, err := r.Resolve(context.Background(), "https://youtu.be/abc")
	require.NoError(t, err)
	assert.Equal(t, "https://youtu.be/abc", got)
}
