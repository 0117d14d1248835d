package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/vdplayer/internal/relay"
)

// TickCmd returns a command that sends a TickMsg after interval.
func TickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// WaitForEvent returns a command that blocks until the next relay event.
// It must be re-issued after every EventMsg.
func WaitForEvent(q *relay.Queue) tea.Cmd {
	return func() tea.Msg {
		ev, err := q.Next(context.Background())
		if err != nil {
			return QueueClosedMsg{}
		}
		return EventMsg{Event: ev}
	}
}
