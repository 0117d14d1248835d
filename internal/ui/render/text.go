// Package render provides text helpers for the player screen.
package render

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// Sanitize removes control characters (except tab) and invalid UTF-8 from
// metadata before it reaches the terminal.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size <= 1:
		case r != '\t' && unicode.IsControl(r):
		case r == '\u00a0':
			b.WriteByte(' ')
		default:
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// Truncate shortens s to fit within maxWidth cells, adding "..." if cut.
func Truncate(s string, maxWidth int) string {
	return runewidth.Truncate(Sanitize(s), maxWidth, "...")
}

// Row places left and right at the edges of a line width cells wide.
func Row(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// Clock formats d as m:ss, or h:mm:ss from one hour on.
func Clock(d time.Duration) string {
	d = max(d, 0).Truncate(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// Bitrate formats bits per second, e.g. "320 kbps". Zero is unknown.
func Bitrate(bps int) string {
	if bps <= 0 {
		return ""
	}
	v, prefix := humanize.ComputeSI(float64(bps))
	return fmt.Sprintf("%.0f %sbps", v, prefix)
}

// SampleRate formats a rate in Hz, e.g. "44.1 kHz".
func SampleRate(hz int) string {
	if hz <= 0 {
		return ""
	}
	return humanize.SIWithDigits(float64(hz), 1, "Hz")
}
