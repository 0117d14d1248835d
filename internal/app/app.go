// Package app is the terminal UI: it runs the session on the bubbletea
// loop and renders the player panel.
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/vdplayer/internal/keymap"
	"github.com/llehouerou/vdplayer/internal/relay"
	"github.com/llehouerou/vdplayer/internal/session"
	"github.com/llehouerou/vdplayer/internal/ui/helpbindings"
	"github.com/llehouerou/vdplayer/internal/ui/styles"
)

// DoubleClickInterval is the longest gap between two presses that still
// counts as a double click.
const DoubleClickInterval = 400 * time.Millisecond

// Options wire a Model.
type Options struct {
	Session *session.Coordinator
	Queue   *relay.Queue
	// RefreshInterval is how often the position is refreshed.
	RefreshInterval time.Duration
}

// Model is the root application model.
//
// Every relay event, timer and input is handled in Update, so the session
// is only ever touched from the bubbletea loop.
type Model struct {
	session  *session.Coordinator
	queue    *relay.Queue
	interval time.Duration
	keys     *keymap.Resolver

	help      help.Model
	helpPopup helpbindings.Model
	showHelp  bool

	dragging  bool
	lastPress time.Time
	now       func() time.Time

	Width  int
	Height int
}

// New creates the application model.
func New(opts Options) Model {
	interval := opts.RefreshInterval
	if interval <= 0 {
		interval = time.Second
	}

	s := styles.T().S()
	h := help.New()
	h.Styles.ShortKey = s.HelpKey
	h.Styles.ShortDesc = s.Help
	h.Styles.ShortSeparator = s.Help
	h.Styles.FullKey = s.HelpKey
	h.Styles.FullDesc = s.Help
	h.Styles.FullSeparator = s.Help

	return Model{
		session:   opts.Session,
		queue:     opts.Queue,
		interval:  interval,
		keys:      keymap.NewResolver(keymap.Bindings),
		help:      h,
		helpPopup: helpbindings.New(),
		now:       time.Now,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(WaitForEvent(m.queue), TickCmd(m.interval))
}
