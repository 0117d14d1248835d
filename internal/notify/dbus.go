//go:build linux

package notify

import (
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"
)

const (
	notifyDest      = "org.freedesktop.Notifications"
	notifyPath      = "/org/freedesktop/Notifications"
	notifyInterface = "org.freedesktop.Notifications"
)

type busNotifier struct {
	obj dbus.BusObject
	app string
}

// New returns a notifier on the shared session bus connection. Without a
// session bus it logs a warning and returns one that does nothing.
func New(appName string, log *logrus.Entry) Notifier {
	conn, err := dbus.SessionBus()
	if err != nil {
		log.WithError(err).Warn("session bus unavailable, notifications disabled")
		return disabled{}
	}
	return &busNotifier{obj: conn.Object(notifyDest, notifyPath), app: appName}
}

func (b *busNotifier) Notify(n Notification) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant(b.app),
	}
	// Notify(app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout) -> id
	call := b.obj.Call(notifyInterface+".Notify", 0,
		b.app, n.Replaces, n.Icon, n.Summary, n.Body, []string{}, hints, expireMillis(n.Expire))

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("notify: %w", err)
	}
	return id, nil
}

func (b *busNotifier) Withdraw(id uint32) error {
	if id == 0 {
		return nil
	}
	if call := b.obj.Call(notifyInterface+".CloseNotification", 0, id); call.Err != nil {
		return fmt.Errorf("withdraw notification %d: %w", id, call.Err)
	}
	return nil
}

// expireMillis converts to expire_timeout, where -1 means server default.
func expireMillis(d time.Duration) int32 {
	if d <= 0 {
		return -1
	}
	return int32(d.Milliseconds())
}
