package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolver_PlayerStack(t *testing.T) {
	r := NewResolver(Bindings)

	tests := []struct {
		key      string
		expected Action
	}{
		{"q", ActionQuit},
		{"ctrl+c", ActionQuit},
		{" ", ActionPlayPause},
		{"space", ActionPlayPause},
		{"p", ActionPlay},
		{"s", ActionStop},
		{"left", ActionSeekBack},
		{"right", ActionSeekForward},
		{"f", ActionToggleFullscreen},
		{"esc", ActionExitFullscreen},
		{"?", ActionHelp},
		{"j", ""},
		{"unknown", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.Resolve(tt.key, Player...))
		})
	}
}

func TestResolver_HelpContext(t *testing.T) {
	r := NewResolver(Bindings)

	tests := []struct {
		key      string
		expected Action
	}{
		{"?", ActionCloseHelp},
		{"esc", ActionCloseHelp},
		{"q", ActionCloseHelp},
		{"j", ActionScrollDown},
		{"down", ActionScrollDown},
		{"k", ActionScrollUp},
		{"up", ActionScrollUp},
		{"ctrl+c", ActionQuit},
		{" ", ""},
		{"f", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.Resolve(tt.key, ContextHelp))
		})
	}
}

func TestResolver_StackOrder(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionQuit, []string{"esc"}, "Quit", ContextGlobal},
		{ActionExitFullscreen, []string{"esc"}, "Exit fullscreen", ContextWindow},
	})

	assert.Equal(t, ActionExitFullscreen, r.Resolve("esc", ContextWindow, ContextGlobal))
	assert.Equal(t, ActionQuit, r.Resolve("esc", ContextGlobal, ContextWindow))
	assert.Equal(t, ActionQuit, r.Resolve("esc", ContextGlobal))
	assert.Equal(t, Action(""), r.Resolve("esc"), "empty stack binds nothing")
	assert.Equal(t, Action(""), r.Resolve("esc", ContextHelp))
}

func TestResolver_FirstBindingWinsWithinContext(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionStop, []string{"s", "x"}, "Stop", ContextPlayback},
		{ActionPlay, []string{"s"}, "Play", ContextPlayback},
	})

	assert.Equal(t, ActionStop, r.Resolve("s", ContextPlayback))
	assert.Equal(t, ActionStop, r.Resolve("x", ContextPlayback))
}
