//go:build linux

package inhibit

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"
)

const (
	gnomeDest      = "org.gnome.SessionManager"
	gnomePath      = "/org/gnome/SessionManager"
	gnomeInterface = "org.gnome.SessionManager"

	screenSaverDest      = "org.freedesktop.ScreenSaver"
	screenSaverPath      = "/org/freedesktop/ScreenSaver"
	screenSaverInterface = "org.freedesktop.ScreenSaver"

	// gnomeInhibitIdle is the "inhibit the session being marked as idle"
	// flag of org.gnome.SessionManager.Inhibit.
	gnomeInhibitIdle uint32 = 8
)

// dbusInhibitor holds leases through a private session bus connection.
type dbusInhibitor struct {
	conn    *dbus.Conn
	obj     dbus.BusObject
	backend Backend
}

// New connects to the session bus. When the bus cannot be reached it logs
// a warning and returns an inhibitor that fails every request with
// ErrDisabled.
func New(backend Backend, log *logrus.Entry) Inhibitor {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		log.WithError(err).Warn("session bus unavailable, idle inhibition disabled")
		return disabled{err: fmt.Errorf("%w: %w", ErrDisabled, err)}
	}

	d := &dbusInhibitor{conn: conn, backend: backend}
	switch backend {
	case BackendFreedesktop:
		d.obj = conn.Object(screenSaverDest, screenSaverPath)
	default:
		d.backend = BackendGNOME
		d.obj = conn.Object(gnomeDest, gnomePath)
	}
	return d
}

// Inhibit calls Inhibit on the selected service.
func (d *dbusInhibitor) Inhibit(ctx context.Context, appName, reason string) (uint32, error) {
	var call *dbus.Call
	switch d.backend {
	case BackendFreedesktop:
		// Inhibit(application_name, reason_for_inhibit) -> cookie
		call = d.obj.CallWithContext(ctx, screenSaverInterface+".Inhibit", 0, appName, reason)
	default:
		// Inhibit(app_id, toplevel_xid, reason, flags) -> inhibit_cookie
		call = d.obj.CallWithContext(ctx, gnomeInterface+".Inhibit", 0,
			appName,
			uint32(0), // no toplevel window
			reason,
			gnomeInhibitIdle,
		)
	}
	if call.Err != nil {
		return 0, fmt.Errorf("inhibit via %s: %w", d.backend, call.Err)
	}
	return parseCookie(call.Body)
}

// Uninhibit releases cookie.
func (d *dbusInhibitor) Uninhibit(ctx context.Context, cookie uint32) error {
	method := gnomeInterface + ".Uninhibit"
	if d.backend == BackendFreedesktop {
		method = screenSaverInterface + ".UnInhibit"
	}
	if call := d.obj.CallWithContext(ctx, method, 0, cookie); call.Err != nil {
		return fmt.Errorf("uninhibit via %s: %w", d.backend, call.Err)
	}
	return nil
}

func (d *dbusInhibitor) Close() error {
	return d.conn.Close()
}
