package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestApplyGradient_KeepsWidth(t *testing.T) {
	assert.Empty(t, ApplyGradient("", T().Primary, T().Secondary))

	out := ApplyGradient("▓▓▓▓▓▓", T().Primary, T().Secondary)
	assert.Equal(t, 6, lipgloss.Width(out))

	out = ApplyGradient("x", T().Primary, lipgloss.Color("5"))
	assert.Equal(t, 1, lipgloss.Width(out))
}

func TestToColorful(t *testing.T) {
	assert.Equal(t, "#a78bfa", toColorful(lipgloss.Color("#a78bfa")).Hex())
	assert.Equal(t, "#808080", toColorful(lipgloss.Color("240")).Hex())
}
