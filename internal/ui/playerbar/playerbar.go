// Package playerbar renders the player panel: title, stream summary, seek
// slider, transport buttons and status line. Layout is deterministic so
// mouse clicks can be mapped back to controls.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/llehouerou/vdplayer/internal/keymap"
	"github.com/llehouerou/vdplayer/internal/playback"
	"github.com/llehouerou/vdplayer/internal/session"
	"github.com/llehouerou/vdplayer/internal/ui"
	"github.com/llehouerou/vdplayer/internal/ui/render"
	"github.com/llehouerou/vdplayer/internal/ui/seekbar"
	"github.com/llehouerou/vdplayer/internal/ui/styles"
)

// Rows of the panel.
const (
	rowTitle   = 0
	rowInfo    = 1
	rowSlider  = 3
	rowButtons = 5 // buttons are buttonHeight rows tall
	rowStatus  = 9
	rowError   = 10

	buttonHeight = 3

	// Height is the number of lines Render returns.
	Height = rowError + 1
)

// State holds everything needed to render the panel.
type State struct {
	Title      string
	Info       string // stream summary
	Engine     string
	Playback   playback.State
	Pending    playback.State
	Position   time.Duration
	Duration   time.Duration
	KnownDur   bool
	Slider     *seekbar.Range
	Fullscreen bool
	Inhibited  bool
	Error      string
}

// NewState builds a State from the published session status.
func NewState(st session.Status, slider *seekbar.Range, engineName, errText string) State {
	d, known := st.Duration.Get()
	return State{
		Title:      st.Title(),
		Info:       StreamSummary(st.Info),
		Engine:     engineName,
		Playback:   st.State,
		Pending:    st.Pending,
		Position:   st.Position,
		Duration:   d,
		KnownDur:   known,
		Slider:     slider,
		Fullscreen: st.Fullscreen,
		Inhibited:  st.Inhibited,
		Error:      errText,
	}
}

// Zone is a clickable rectangle, end-exclusive.
type Zone struct {
	Action keymap.Action
	X0, X1 int
	Y0, Y1 int
}

// Contains reports whether the cell (x, y) lies in z.
func (z Zone) Contains(x, y int) bool {
	return x >= z.X0 && x < z.X1 && y >= z.Y0 && y < z.Y1
}

// Layout is where the interactive parts of the panel are.
type Layout struct {
	SliderRow   int
	SliderX     int
	SliderWidth int
	Buttons     []Zone
}

// HitButton returns the action of the button at (x, y), if any.
func (l Layout) HitButton(x, y int) (keymap.Action, bool) {
	z, ok := lo.Find(l.Buttons, func(z Zone) bool { return z.Contains(x, y) })
	return z.Action, ok
}

// OnSlider reports whether (x, y) is on the slider and the column within it.
func (l Layout) OnSlider(x, y int) (int, bool) {
	if y != l.SliderRow || x < l.SliderX || x >= l.SliderX+l.SliderWidth {
		return 0, false
	}
	return x - l.SliderX, true
}

type button struct {
	action keymap.Action
	label  string
}

var buttons = []button{
	{keymap.ActionPlay, "▶ Play"},
	{keymap.ActionPause, "⏸ Pause"},
	{keymap.ActionStop, "■ Stop"},
	{keymap.ActionToggleFullscreen, "⛶ Fullscreen"},
}

// ComputeLayout returns the layout Render uses for s at the given width.
func ComputeLayout(s State, width int) Layout {
	l := Layout{
		SliderRow:   rowSlider,
		SliderWidth: sliderWidth(s, width),
	}
	x := 0
	for _, b := range buttons {
		w := lipgloss.Width(styles.T().S().Button.Render(b.label))
		l.Buttons = append(l.Buttons, Zone{
			Action: b.action,
			X0:     x,
			X1:     x + w,
			Y0:     rowButtons,
			Y1:     rowButtons + buttonHeight,
		})
		x += w + 1
	}
	return l
}

func sliderWidth(s State, width int) int {
	return max(width-lipgloss.Width(clock(s))-1, ui.MinProgressBarWidth)
}

func clock(s State) string {
	total := "--:--"
	if s.KnownDur {
		total = render.Clock(s.Duration)
	}
	return render.Clock(s.Position) + " / " + total
}

// Render returns the panel, Height lines of at most width cells.
func Render(s State, width int) string {
	st := styles.T().S()
	lines := make([]string, Height)

	title := s.Title
	if title == "" {
		title = "Nothing loaded"
	}
	right := st.Subtle.Render(s.Engine)
	lines[rowTitle] = render.Row(
		st.Title.Render(render.Truncate(title, max(width-lipgloss.Width(right)-1, 1))),
		right, width)
	lines[rowInfo] = st.Muted.Render(render.Truncate(s.Info, width))

	slider := s.Slider
	if slider == nil {
		slider = seekbar.NewRange(0, 0)
	}
	lines[rowSlider] = seekbar.Render(slider, sliderWidth(s, width)) + " " + st.Base.Render(clock(s))

	btnLines := renderButtons(s)
	copy(lines[rowButtons:rowButtons+buttonHeight], btnLines)

	lines[rowStatus] = render.Row(statusText(s), inhibitText(s), width)
	if s.Error != "" {
		lines[rowError] = st.Error.Render(render.Truncate(s.Error, width))
	}
	return strings.Join(lines, "\n")
}

func renderButtons(s State) []string {
	st := styles.T().S()
	var rendered []string
	for _, b := range buttons {
		style := st.Button
		if pressed(b.action, s) {
			style = st.Pressed
		}
		rendered = append(rendered, style.Render(b.label))
	}
	joined := lipgloss.JoinHorizontal(lipgloss.Top, interleave(rendered, " ")...)
	out := strings.Split(joined, "\n")
	for len(out) < buttonHeight {
		out = append(out, "")
	}
	return out[:buttonHeight]
}

// interleave puts sep between the elements of parts.
func interleave(parts []string, sep string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, p)
	}
	return out
}

func pressed(a keymap.Action, s State) bool {
	switch a {
	case keymap.ActionPlay:
		return s.Playback == playback.StatePlaying
	case keymap.ActionPause:
		return s.Playback == playback.StatePaused
	case keymap.ActionStop:
		return s.Playback <= playback.StateReady
	case keymap.ActionToggleFullscreen:
		return s.Fullscreen
	}
	return false
}

func statusText(s State) string {
	st := styles.T().S()
	var text string
	switch s.Playback {
	case playback.StatePlaying:
		text = st.Playing.Render("Playing")
	case playback.StatePaused:
		text = st.Paused.Render("Paused")
	case playback.StateReady:
		text = st.Stopped.Render("Stopped")
	default:
		text = st.Stopped.Render("Idle")
	}
	if s.Pending != playback.StateVoidPending && s.Pending != s.Playback {
		text += st.Subtle.Render(" → " + s.Pending.String())
	}
	return text
}

func inhibitText(s State) string {
	if !s.Inhibited {
		return ""
	}
	return styles.T().S().Subtle.Render("screen kept awake")
}

// StreamSummary describes the loaded streams in one line, e.g.
// "H264 1920×1080 · AAC 48 kHz 2ch · 2 subtitles". Only the first video and
// audio streams are described.
func StreamSummary(info playback.StreamInfo) string {
	var parts []string
	if info.Artist != "" {
		parts = append(parts, info.Artist)
	}
	if v, ok := lo.First(info.OfKind(playback.StreamVideo)); ok {
		fields := []string{strings.ToUpper(v.Codec)}
		if v.Width > 0 && v.Height > 0 {
			fields = append(fields, fmt.Sprintf("%d×%d", v.Width, v.Height))
		}
		parts = append(parts, strings.Join(lo.Compact(fields), " "))
	}
	if a, ok := lo.First(info.OfKind(playback.StreamAudio)); ok {
		fields := []string{strings.ToUpper(a.Codec), render.SampleRate(a.SampleRate)}
		if a.Channels > 0 {
			fields = append(fields, fmt.Sprintf("%dch", a.Channels))
		}
		fields = append(fields, render.Bitrate(a.Bitrate))
		parts = append(parts, strings.Join(lo.Compact(fields), " "))
	}
	switch n := info.Count(playback.StreamText); n {
	case 0:
	case 1:
		parts = append(parts, "1 subtitle")
	default:
		parts = append(parts, fmt.Sprintf("%d subtitles", n))
	}
	return strings.Join(lo.Compact(parts), " · ")
}
