package app

import (
	"strings"

	"github.com/llehouerou/vdplayer/internal/keymap"
	"github.com/llehouerou/vdplayer/internal/ui"
	"github.com/llehouerou/vdplayer/internal/ui/playerbar"
	"github.com/llehouerou/vdplayer/internal/ui/popup"
)

// View renders the application UI.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}

	lines := strings.Split(playerbar.Render(m.panelState(), m.panelWidth()), "\n")
	bodyHeight := max(m.Height-ui.FooterHeight, 0)
	for len(lines) < bodyHeight {
		lines = append(lines, "")
	}
	if len(lines) > bodyHeight {
		lines = lines[:bodyHeight]
	}
	lines = append(lines, m.help.View(keymap.Help()))
	view := strings.Join(lines, "\n")

	if m.showHelp {
		view = popup.Compose(view, m.helpPopup.View(), m.Width)
	}
	return view
}
