package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Playback actions
	ActionPlayPause   Action = "play_pause"
	ActionPlay        Action = "play"
	ActionPause       Action = "pause" // pause button; no key
	ActionStop        Action = "stop"
	ActionSeekForward Action = "seek_forward"
	ActionSeekBack    Action = "seek_back"

	// Window actions
	ActionToggleFullscreen Action = "toggle_fullscreen"
	ActionExitFullscreen   Action = "exit_fullscreen"

	// Help popup actions
	ActionCloseHelp  Action = "close_help"
	ActionScrollUp   Action = "scroll_up"
	ActionScrollDown Action = "scroll_down"
)
