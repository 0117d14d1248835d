package popup

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestCompose(t *testing.T) {
	base := strings.Join([]string{
		"aaaaaaaaaa",
		"bbbbbbbbbb",
		"cccccccccc",
	}, "\n")
	overlay := strings.Join([]string{
		"",
		"   XY",
	}, "\n")

	got := Compose(base, overlay, 10)
	assert.Equal(t, strings.Join([]string{
		"aaaaaaaaaa",
		"bbbXYbbbbb",
		"cccccccccc",
	}, "\n"), got)
}

func TestCompose_ShortBaseLine(t *testing.T) {
	got := Compose("ab", "    Z", 6)
	assert.Equal(t, "ab  Z ", got)
}

func TestDialog_RenderCentred(t *testing.T) {
	out := Dialog{Title: "Help", Content: "space  play/pause", Footer: "esc close"}.Render(60, 20)
	plain := ansi.Strip(out)
	assert.Contains(t, plain, "Help")
	assert.Contains(t, plain, "space  play/pause")
	assert.Contains(t, plain, "esc close")

	lines := strings.Split(plain, "\n")
	assert.Less(t, len(lines), 20)
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			assert.True(t, strings.HasPrefix(l, " "), "box is indented: %q", l)
			break
		}
	}
}
