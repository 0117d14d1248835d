// Package notify shows the "now playing" desktop notification.
package notify

import "time"

// Urgency is the freedesktop notification urgency hint.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification is one request to the notification server.
type Notification struct {
	Summary  string
	Body     string
	Icon     string        // file path or icon name
	Expire   time.Duration // zero lets the server decide
	Replaces uint32        // id of a notification to update in place
	Urgency  Urgency
}

// Notifier posts and withdraws notifications.
type Notifier interface {
	// Notify returns the id the server assigned. Posting with Replaces set
	// keeps that id.
	Notify(n Notification) (uint32, error)
	Withdraw(id uint32) error
}

// NowPlaying builds the notification for the media being played.
// replaces is zero for a new notification.
func NowPlaying(title, locator string, replaces uint32) Notification {
	return Notification{
		Summary:  "Now playing",
		Body:     title,
		Icon:     FindCoverArt(locator),
		Replaces: replaces,
		Urgency:  UrgencyLow,
	}
}

// disabled is used when no notification server can be reached.
type disabled struct{}

func (disabled) Notify(Notification) (uint32, error) { return 0, nil }
func (disabled) Withdraw(uint32) error { return nil }
