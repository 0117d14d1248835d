package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Engine        string `koanf:"engine"` // "mpv", "beep" or "auto"
	Notifications bool   `koanf:"notifications"`
	MPRIS         bool   `koanf:"mpris"`
	Fullscreen    bool   `koanf:"fullscreen"`

	Playback PlaybackConfig `koanf:"playback"`
	Inhibit  InhibitConfig  `koanf:"inhibit"`
	Resolver ResolverConfig `koanf:"resolver"`
	Log      LogConfig      `koanf:"log"`
	MPV      MPVConfig      `koanf:"mpv"`
}

// PlaybackConfig holds seek and refresh settings.
type PlaybackConfig struct {
	SeekStep        time.Duration `koanf:"seek_step"`
	RefreshInterval time.Duration `koanf:"refresh_interval"`
	Resume          bool          `koanf:"resume"` // remember the position per locator
}

// InhibitConfig holds the idle inhibition settings.
type InhibitConfig struct {
	Enabled         bool          `koanf:"enabled"`
	Backend         string        `koanf:"backend"` // "gnome" or "freedesktop"
	AppName         string        `koanf:"app_name"`
	Reason          string        `koanf:"reason"`
	Timeout         time.Duration `koanf:"timeout"` // 0 waits for the session manager forever
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Async           bool          `koanf:"async"`
}

// ResolverConfig holds the external URL helper settings.
type ResolverConfig struct {
	Command  string        `koanf:"command"`
	Fallback string        `koanf:"fallback"`
	Format   string        `koanf:"format"`
	Timeout  time.Duration `koanf:"timeout"`
	Hosts    []string      `koanf:"hosts"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `koanf:"level"`
	File  string `koanf:"file"` // empty: under the XDG state directory
	JSON  bool   `koanf:"json"`
}

// MPVConfig holds raw libmpv options.
type MPVConfig struct {
	Options map[string]string `koanf:"options"`
}

const (
	defaultSeekStep        = 10 * time.Second
	defaultRefreshInterval = time.Second
)

func defaults() map[string]any {
	return map[string]any{
		"engine":        "mpv",
		"notifications": false,
		"mpris":         true,
		"fullscreen":    true,

		"playback.seek_step":        "10s",
		"playback.refresh_interval": "1s",
		"playback.resume":           true,

		"inhibit.enabled":          true,
		"inhibit.backend":          "gnome",
		"inhibit.app_name":         "vdplayer",
		"inhibit.reason":           "my video player is running",
		"inhibit.timeout":          "5s",
		"inhibit.shutdown_timeout": "2s",
		"inhibit.async":            true,

		"resolver.command":  "yt-dlp",
		"resolver.fallback": "youtube-dl",
		"resolver.format":   "best[ext=mp4]",
		"resolver.timeout":  "30s",
		"resolver.hosts":    []string{"youtube.com", "www.youtube.com", "m.youtube.com", "youtu.be"},

		"log.level": "info",
	}
}

// Load reads the default config files and then extra, if not empty.
func Load(extra string) (*Config, error) {
	paths := getConfigPaths()
	if extra != "" {
		extra = expandPath(extra)
		if _, err := os.Stat(extra); err != nil {
			return nil, fmt.Errorf("config %s: %w", extra, err)
		}
		paths = append(paths, extra)
	}
	return loadPaths(paths)
}

func loadPaths(paths []string) (*Config, error) {
	k := koanf.New(".")

	for key, v := range defaults() {
		if err := k.Set(key, v); err != nil {
			return nil, err
		}
	}

	// Try config files in order of priority (last wins)
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("config %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Engine = strings.ToLower(strings.TrimSpace(cfg.Engine))
	cfg.Inhibit.Backend = strings.ToLower(strings.TrimSpace(cfg.Inhibit.Backend))
	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/vdplayer/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "vdplayer", "config.toml"))
	}

	// 2. ./config.toml (pwd)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetPlaybackConfig returns the playback configuration with defaults applied.
func (c *Config) GetPlaybackConfig() PlaybackConfig {
	cfg := c.Playback
	if cfg.SeekStep <= 0 {
		cfg.SeekStep = defaultSeekStep
	}
	if cfg.RefreshInterval < 50*time.Millisecond {
		cfg.RefreshInterval = defaultRefreshInterval
	}
	return cfg
}

// GetInhibitConfig returns the inhibition configuration with defaults applied.
func (c *Config) GetInhibitConfig() InhibitConfig {
	cfg := c.Inhibit
	if cfg.AppName == "" {
		cfg.AppName = "vdplayer"
	}
	if cfg.Timeout < 0 {
		cfg.Timeout = 0
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 2 * time.Second
	}
	return cfg
}

// HasResolver returns true if an external URL helper is configured.
func (c *Config) HasResolver() bool {
	return c.Resolver.Command != "" || c.Resolver.Fallback != ""
}
