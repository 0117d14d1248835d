// Package logging sets up the application logger.
//
// The TUI owns the terminal, so log output always goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
)

const (
	appName     = "vdplayer"
	logFileName = "vdplayer.log"
)

// Options configure Setup.
type Options struct {
	Level string
	File  string // empty: $XDG_STATE_HOME/vdplayer/vdplayer.log
	JSON  bool
}

// Setup creates a logger writing to the configured file. An invalid level
// falls back to info. The returned closer closes the file.
func Setup(opts Options) (*logrus.Logger, io.Closer, error) {
	path := opts.File
	if path == "" {
		p, err := xdg.StateFile(filepath.Join(appName, logFileName))
		if err != nil {
			return nil, nil, fmt.Errorf("log path: %w", err)
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	return New(f, opts), f, nil
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)

	if opts.JSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	log.SetLevel(ParseLevel(opts.Level))
	return log
}

// ParseLevel parses a level name, defaulting to info.
func ParseLevel(s string) logrus.Level {
	lvl, err := logrus.ParseLevel(s)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// Component returns an entry tagged with the component name.
func Component(log *logrus.Logger, name string) *logrus.Entry {
	return log.WithField("component", name)
}
