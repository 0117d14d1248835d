// Package inhibit keeps the desktop session from going idle during playback.
package inhibit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/mo"
)

// Inhibitor is the transport for idle-inhibition requests. Calls block
// until the remote service answers or ctx is done.
type Inhibitor interface {
	// Inhibit asks the session to stay awake and returns the cookie that
	// identifies the lease.
	Inhibit(ctx context.Context, appName, reason string) (uint32, error)
	// Uninhibit ends the lease identified by cookie.
	Uninhibit(ctx context.Context, cookie uint32) error
	Close() error
}

var (
	// ErrNoReply is returned when the service answered with an empty body.
	ErrNoReply = errors.New("inhibit: empty reply")
	// ErrMalformedReply is returned when the reply does not start with a
	// uint32 cookie.
	ErrMalformedReply = errors.New("inhibit: malformed reply")
	// ErrUnsupported is returned on platforms without a session bus.
	ErrUnsupported = errors.New("inhibit: not supported on this platform")
	// ErrDisabled is returned by the inhibitor used when the session bus
	// could not be reached.
	ErrDisabled = errors.New("inhibit: disabled")
)

// Backend selects the D-Bus service that holds the lease.
type Backend string

const (
	// BackendGNOME uses org.gnome.SessionManager.
	BackendGNOME Backend = "gnome"
	// BackendFreedesktop uses org.freedesktop.ScreenSaver.
	BackendFreedesktop Backend = "freedesktop"
)

// ParseBackend validates a backend name. Empty selects GNOME.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return BackendGNOME, nil
	case BackendGNOME, BackendFreedesktop:
		return b, nil
	default:
		return "", fmt.Errorf("unknown inhibit backend %q (want gnome or freedesktop)", s)
	}
}

// Lease is the lease as the manager knows it. Cookie is present exactly
// when Active is true.
type Lease struct {
	Active bool
	Cookie mo.Option[uint32]
}

// parseCookie reads the cookie from a reply body.
func parseCookie(body []any) (uint32, error) {
	if len(body) == 0 {
		return 0, ErrNoReply
	}
	cookie, ok := body[0].(uint32)
	if !ok {
		return 0, fmt.Errorf("%w: got %T", ErrMalformedReply, body[0])
	}
	return cookie, nil
}

// disabled fails every request with err.
type disabled struct {
	err error
}

func (d disabled) Inhibit(context.Context, string, string) (uint32, error) { return 0, d.err }
func (d disabled) Uninhibit(context.Context, uint32) error { return d.err }
func (d disabled) Close() error { return nil }

// Available reports whether i can actually hold a lease.
func Available(i Inhibitor) bool {
	if i == nil {
		return false
	}
	_, off := i.(disabled)
	return !off
}
