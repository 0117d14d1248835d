package app

import (
	"time"

	"github.com/llehouerou/vdplayer/internal/relay"
)

// EventMsg carries one relay event into the UI loop.
type EventMsg struct {
	Event relay.Event
}

// QueueClosedMsg is sent when the relay queue has been closed.
type QueueClosedMsg struct{}

// TickMsg is sent periodically to refresh the position.
type TickMsg time.Time
