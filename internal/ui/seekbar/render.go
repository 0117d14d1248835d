package seekbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/vdplayer/internal/ui/styles"
)

const (
	filledBlock = "▓"
	emptyBlock  = "░"
)

// Render draws the slider as a block bar exactly width cells wide. The
// filled part is shaded with the theme gradient.
func Render(r *Range, width int) string {
	if width <= 0 {
		return ""
	}
	filled := min(int(float64(width)*r.Fraction()+0.5), width)

	t := styles.T()
	bar := styles.ApplyGradient(strings.Repeat(filledBlock, filled), t.Primary, t.Secondary)
	rest := lipgloss.NewStyle().Foreground(t.FgSubtle).Render(strings.Repeat(emptyBlock, width-filled))
	return bar + rest
}

// ValueAt maps a click at column x of a bar width cells wide to a value
// of r. The last column maps to the upper bound.
func ValueAt(r *Range, x, width int) float64 {
	if width <= 1 {
		return r.Min()
	}
	x = min(max(x, 0), width-1)
	return r.Min() + float64(x)/float64(width-1)*(r.Max()-r.Min())
}
