// Package resolve turns a user-supplied locator into something an engine
// can open. Video-hosting page URLs are handed to an external helper
// (yt-dlp or youtube-dl) that prints the direct media URL.
package resolve

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNoURL is returned when the helper exits cleanly but prints nothing.
	ErrNoURL = errors.New("resolve: helper printed no url")
	// ErrNoHelper is returned when neither helper command is configured.
	ErrNoHelper = errors.New("resolve: no helper configured")
)

// Runner runs a command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Options configure a Resolver.
type Options struct {
	Command  string
	Fallback string
	Format   string
	Timeout  time.Duration
	Hosts    []string
	Log      *logrus.Entry
	// Run replaces process execution, for tests.
	Run Runner
}

type Resolver struct {
	opts Options
	run  Runner
	log  *logrus.Entry
}

func New(opts Options) *Resolver {
	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	run := opts.Run
	if run == nil {
		run = execRunner
	}
	opts.Hosts = lo.Map(opts.Hosts, func(h string, _ int) string {
		return strings.ToLower(strings.TrimSpace(h))
	})
	return &Resolver{opts: opts, run: run, log: log}
}

// Resolve returns the locator to hand to the engine.
//
// Local paths are made absolute and must exist. URLs on a configured
// video host are resolved through the helper; other URLs pass through.
func (r *Resolver) Resolve(ctx context.Context, locator string) (string, error) {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return "", errors.New("resolve: empty locator")
	}

	u, err := url.Parse(locator)
	switch {
	case err == nil && u.Scheme == "file":
		return localPath(u.Path)
	case err != nil || u.Scheme == "" || u.Host == "":
		return localPath(locator)
	}
	if !r.IsVideoHost(u.Hostname()) {
		return locator, nil
	}
	return r.helper(ctx, locator)
}

// IsVideoHost reports whether host is one of the configured hosts.
func (r *Resolver) IsVideoHost(host string) bool {
	return lo.Contains(r.opts.Hosts, strings.ToLower(host))
}

func (r *Resolver) helper(ctx context.Context, locator string) (string, error) {
	commands := lo.Compact([]string{r.opts.Command, r.opts.Fallback})
	if len(commands) == 0 {
		return "", ErrNoHelper
	}

	var errs []error
	for _, name := range commands {
		resolved, err := r.runHelper(ctx, name, locator)
		if err == nil {
			r.log.WithFields(logrus.Fields{"helper": name, "locator": locator}).Info("resolved media url")
			return resolved, nil
		}
		r.log.WithError(err).WithField("helper", name).Warn("helper failed")
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	return "", errors.Join(errs...)
}

func (r *Resolver) runHelper(ctx context.Context, name, locator string) (string, error) {
	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	args := []string{}
	if r.opts.Format != "" {
		args = append(args, "--format", r.opts.Format)
	}
	args = append(args, "--get-url", locator)

	out, err := r.run(ctx, name, args...)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	line, ok := firstLine(out)
	if !ok {
		return "", fmt.Errorf("%s: %w", name, ErrNoURL)
	}
	return line, nil
}

// firstLine returns the first non-empty line of out.
func firstLine(out []byte) (string, bool) {
	sc := bufio.NewScanner(bytes.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			return line, true
		}
	}
	return "", false
}

func localPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", p, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("resolve: %w", err)
	}
	return abs, nil
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w (stderr: %s)", err, msg)
		}
		return nil, err
	}
	return out, nil
}
