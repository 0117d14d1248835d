package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/vdplayer/internal/keymap"
	"github.com/llehouerou/vdplayer/internal/ui"
	"github.com/llehouerou/vdplayer/internal/ui/helpbindings"
	"github.com/llehouerou/vdplayer/internal/ui/playerbar"
	"github.com/llehouerou/vdplayer/internal/ui/seekbar"
)

// Update handles messages and returns the updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		if m.session.Handle(msg.Event) {
			return m, tea.Quit
		}
		return m, WaitForEvent(m.queue)

	case QueueClosedMsg:
		return m, tea.Quit

	case TickMsg:
		m.session.Tick()
		return m, TickCmd(m.interval)

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.helpPopup.SetSize(msg.Width, msg.Height)
		return m, nil

	case helpbindings.Close:
		m.showHelp = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if m.keys.Resolve(msg.String(), keymap.ContextHelp) == keymap.ActionQuit {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.helpPopup, cmd = m.helpPopup.Update(msg)
		return m, cmd
	}

	action := m.keys.Resolve(msg.String(), keymap.Player...)
	if action == "" {
		return m, nil
	}
	return m.do(action)
}

// do runs a user action. Failures are recorded by the session and shown
// on the status line.
func (m Model) do(action keymap.Action) (tea.Model, tea.Cmd) {
	c := m.session
	switch action {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.showHelp = true
		return m, nil
	case keymap.ActionPlayPause:
		_ = c.Toggle()
	case keymap.ActionPlay:
		_ = c.Play()
	case keymap.ActionPause:
		_ = c.Pause()
	case keymap.ActionStop:
		_ = c.Stop()
	case keymap.ActionSeekForward:
		_ = c.StepForward()
	case keymap.ActionSeekBack:
		_ = c.StepBack()
	case keymap.ActionToggleFullscreen:
		_ = c.ToggleFullscreen()
	case keymap.ActionExitFullscreen:
		_ = c.ExitFullscreen()
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	layout := playerbar.ComputeLayout(m.panelState(), m.panelWidth())

	switch msg.Action {
	case tea.MouseActionPress:
		now := m.now()
		if !m.lastPress.IsZero() && now.Sub(m.lastPress) <= DoubleClickInterval {
			m.lastPress = now.Add(-2 * DoubleClickInterval)
			m.dragging = false
			_ = m.session.ExitFullscreen()
			return m, nil
		}
		m.lastPress = now

		if col, ok := layout.OnSlider(msg.X, msg.Y); ok {
			m.dragging = true
			m.seekSlider(col, layout.SliderWidth)
			return m, nil
		}
		if action, ok := layout.HitButton(msg.X, msg.Y); ok {
			return m.do(action)
		}

	case tea.MouseActionMotion:
		if m.dragging {
			col := min(max(msg.X-layout.SliderX, 0), layout.SliderWidth-1)
			m.seekSlider(col, layout.SliderWidth)
		}

	case tea.MouseActionRelease:
		m.dragging = false
	}
	return m, nil
}

// seekSlider moves the slider as the user would; the mirror turns the
// change into a seek.
func (m Model) seekSlider(col, width int) {
	mirror := m.session.Mirror()
	mirror.UserSet(seekbar.ValueAt(mirror.Range(), col, width))
}

func (m Model) panelWidth() int {
	return max(m.Width, ui.MinProgressBarWidth*4)
}

func (m Model) panelState() playerbar.State {
	c := m.session
	return playerbar.NewState(c.Status(), c.Mirror().Range(), c.EngineName(), c.LastError())
}
