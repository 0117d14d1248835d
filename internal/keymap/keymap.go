// Package keymap defines key bindings for the application.
package keymap

// Input contexts. The same key may mean different things in different
// contexts; the help popup takes the keyboard while it is open.
const (
	ContextGlobal   = "global"
	ContextPlayback = "playback"
	ContextWindow   = "window"
	ContextHelp     = "help"
)

// Player is the context stack of the player panel, most specific first.
var Player = []string{ContextPlayback, ContextWindow, ContextGlobal}

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string
}

// Bindings contains all key bindings, for dispatch and help generation.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", ContextGlobal},
	{ActionHelp, []string{"?"}, "Show help", ContextGlobal},

	// Playback
	{ActionPlayPause, []string{" ", "space"}, "Play/pause", ContextPlayback},
	{ActionPlay, []string{"p"}, "Play", ContextPlayback},
	{ActionStop, []string{"s"}, "Stop", ContextPlayback},
	{ActionSeekBack, []string{"left"}, "Seek back one step", ContextPlayback},
	{ActionSeekForward, []string{"right"}, "Seek forward one step", ContextPlayback},

	// Window
	{ActionToggleFullscreen, []string{"f"}, "Toggle fullscreen", ContextWindow},
	{ActionExitFullscreen, []string{"esc"}, "Exit fullscreen", ContextWindow},

	// Help popup
	{ActionCloseHelp, []string{"?", "esc", "q"}, "Close help", ContextHelp},
	{ActionScrollDown, []string{"j", "down"}, "Scroll down", ContextHelp},
	{ActionScrollUp, []string{"k", "up"}, "Scroll up", ContextHelp},
	{ActionQuit, []string{"ctrl+c"}, "Quit", ContextHelp},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// KeyLabel is how a key is shown to the user.
func KeyLabel(key string) string {
	if key == " " {
		return "space"
	}
	return key
}
