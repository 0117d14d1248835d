// Package popup draws modal boxes over the player screen.
package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/vdplayer/internal/ui/styles"
)

// Dialog is a bordered box with an optional title and footer.
type Dialog struct {
	Title   string
	Content string
	Footer  string
}

// Render returns the dialog centred in a screen of the given size, ready
// to be passed to Compose.
func (d Dialog) Render(screenW, screenH int) string {
	s := styles.T().S()

	var parts []string
	if d.Title != "" {
		parts = append(parts, s.Title.Render(d.Title), "")
	}
	parts = append(parts, d.Content)
	if d.Footer != "" {
		parts = append(parts, "", s.Subtle.Render(d.Footer))
	}

	box := s.PopupBox.
		MaxWidth(max(screenW-2, 10)).
		Render(strings.Join(parts, "\n"))
	return Center(box, screenW, screenH)
}

// Center pads box so that it sits in the middle of the screen.
func Center(box string, screenW, screenH int) string {
	lines := strings.Split(box, "\n")
	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, lipgloss.Width(l))
	}
	padTop := max((screenH-len(lines))/2, 0)
	padLeft := strings.Repeat(" ", max((screenW-boxW)/2, 0))

	var b strings.Builder
	for range padTop {
		b.WriteString("\n")
	}
	for i, l := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(padLeft + l)
	}
	return b.String()
}

// Compose draws overlay on top of base. On each line, the visible part of
// the overlay (from its first to its last non-space cell) replaces the base
// cells under it; the rest of the base line shows through.
func Compose(base, overlay string, width int) string {
	baseLines := strings.Split(base, "\n")

	for i, line := range strings.Split(overlay, "\n") {
		if i >= len(baseLines) {
			break
		}
		plain := ansi.Strip(line)
		trimmed := strings.TrimRight(plain, " ")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		start := len(trimmed) - len(strings.TrimLeft(trimmed, " "))
		end := ansi.StringWidth(trimmed)

		under := baseLines[i]
		if w := ansi.StringWidth(under); w < width {
			under += strings.Repeat(" ", width-w)
		}

		prefix := ansi.Cut(under, 0, start)
		if w := ansi.StringWidth(prefix); w < start {
			// a wide rune straddled the edge
			prefix += strings.Repeat(" ", start-w)
		}
		out := prefix + ansi.Cut(line, start, end)
		if end < width {
			suffix := ansi.Cut(under, end, width)
			if w := ansi.StringWidth(suffix); w < width-end {
				suffix = strings.Repeat(" ", width-end-w) + suffix
			}
			out += suffix
		}
		baseLines[i] = out
	}
	return strings.Join(baseLines, "\n")
}
