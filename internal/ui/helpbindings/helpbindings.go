// Package helpbindings provides a scrollable popup listing the keybindings.
package helpbindings

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/llehouerou/vdplayer/internal/keymap"
	"github.com/llehouerou/vdplayer/internal/ui"
	"github.com/llehouerou/vdplayer/internal/ui/popup"
	"github.com/llehouerou/vdplayer/internal/ui/styles"
)

// Close is sent when the popup wants to be dismissed.
type Close struct{}

// categoryOrder defines the display order of binding contexts.
var categoryOrder = keymap.Player

var categoryLabels = map[string]string{
	keymap.ContextPlayback: "Playback",
	keymap.ContextWindow:   "Video Window",
	keymap.ContextGlobal:   "General",
}

// Model holds the state for the help popup.
type Model struct {
	ui.Base
	keys         *keymap.Resolver
	bindings     []keymap.Binding
	scrollOffset int
}

// New creates a help popup listing every context.
func New() Model {
	m := Model{keys: keymap.NewResolver(keymap.Bindings)}
	m.SetContexts(categoryOrder)
	return m
}

// SetContexts sets which binding contexts to display.
func (m *Model) SetContexts(contexts []string) {
	m.bindings = nil
	for _, ctx := range categoryOrder {
		if lo.Contains(contexts, ctx) {
			m.bindings = append(m.bindings, keymap.ByContext(ctx)...)
		}
	}
	m.scrollOffset = 0
}

// Update handles scrolling and closing.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.keys.Resolve(keyMsg.String(), keymap.ContextHelp) {
	case keymap.ActionCloseHelp:
		return m, func() tea.Msg { return Close{} }
	case keymap.ActionScrollDown:
		if m.scrollOffset < m.maxScroll() {
			m.scrollOffset++
		}
	case keymap.ActionScrollUp:
		if m.scrollOffset > 0 {
			m.scrollOffset--
		}
	}
	return m, nil
}

// View returns the popup centred in the screen, ready for popup.Compose.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	lines := strings.Split(m.buildContent(), "\n")
	maxWidth := 0
	for _, line := range lines {
		maxWidth = max(maxWidth, lipgloss.Width(line))
	}

	start := min(m.scrollOffset, len(lines))
	end := min(start+m.visibleHeight(), len(lines))
	visible := lines[start:end]
	for i, line := range visible {
		if w := lipgloss.Width(line); w < maxWidth {
			visible[i] = line + strings.Repeat(" ", maxWidth-w)
		}
	}

	return popup.Dialog{
		Title:   "Keybindings",
		Content: strings.Join(visible, "\n"),
		Footer:  m.buildFooter(),
	}.Render(m.Width(), m.Height())
}

func keyLabels(b keymap.Binding) string {
	labels := lo.Map(b.Keys, func(k string, _ int) string { return keymap.KeyLabel(k) })
	return strings.Join(lo.Uniq(labels), ", ")
}

func (m Model) buildContent() string {
	s := styles.T().S()
	var sb strings.Builder

	maxKeyWidth := 0
	for _, b := range m.bindings {
		maxKeyWidth = max(maxKeyWidth, lipgloss.Width(keyLabels(b)))
	}

	current := ""
	for _, b := range m.bindings {
		if b.Context != current {
			if current != "" {
				sb.WriteString("\n")
			}
			label := categoryLabels[b.Context]
			if label == "" {
				label = b.Context
			}
			sb.WriteString(s.Title.Render(label))
			sb.WriteString("\n")
			sb.WriteString(s.Subtle.Render(strings.Repeat("─", maxKeyWidth+15)))
			sb.WriteString("\n")
			current = b.Context
		}

		keys := keyLabels(b)
		sb.WriteString(s.HelpKey.Render(keys + strings.Repeat(" ", maxKeyWidth-lipgloss.Width(keys))))
		sb.WriteString("  ")
		sb.WriteString(s.Base.Render(b.Description))
		sb.WriteString("\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func (m Model) buildFooter() string {
	if m.totalLines() <= m.visibleHeight() {
		return "?/esc close"
	}
	return "j/k scroll · ?/esc close"
}

func (m Model) visibleHeight() int {
	// title, footer, borders and margins
	return max(m.Height()-ui.PopupOverhead, 3)
}

func (m Model) totalLines() int {
	return strings.Count(m.buildContent(), "\n") + 1
}

func (m Model) maxScroll() int {
	return max(m.totalLines()-m.visibleHeight(), 0)
}
