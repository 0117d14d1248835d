//nolint:goconst // test cases intentionally repeat strings for readability
package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestByContext(t *testing.T) {
	tests := []struct {
		name            string
		context         string
		expectNonEmpty  bool
		expectMinLength int
	}{
		{"global context", "global", true, 2},
		{"playback context", "playback", true, 5},
		{"window context", "window", true, 2},
		{"help context", "help", true, 4},
		{"unknown context returns empty", "unknown", false, 0},
		{"empty context returns empty", "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ByContext(tt.context)

			if tt.expectNonEmpty && len(result) == 0 {
				t.Errorf("ByContext(%q) returned empty, expected non-empty", tt.context)
			}

			if !tt.expectNonEmpty && len(result) != 0 {
				t.Errorf("ByContext(%q) returned %d items, expected empty", tt.context, len(result))
			}

			if len(result) < tt.expectMinLength {
				t.Errorf("ByContext(%q) returned %d items, expected at least %d", tt.context, len(result), tt.expectMinLength)
			}

			// Verify all returned bindings have the correct context
			for _, binding := range result {
				if binding.Context != tt.context {
					t.Errorf("binding context = %q, want %q", binding.Context, tt.context)
				}
			}
		})
	}
}

func TestByContextPlaybackBindings(t *testing.T) {
	playbackBindings := ByContext("playback")

	expectedActions := []Action{
		ActionPlayPause,
		ActionPlay,
		ActionStop,
		ActionSeekForward,
		ActionSeekBack,
	}

	for _, action := range expectedActions {
		found := false
		for _, b := range playbackBindings {
			if b.Action == action {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected action %q in playback bindings", action)
		}
	}
}

func TestBindingsHaveRequiredFields(t *testing.T) {
	for i, b := range Bindings {
		if b.Action == "" {
			t.Errorf("binding[%d] has empty Action", i)
		}
		if len(b.Keys) == 0 {
			t.Errorf("binding[%d] (%s) has no Keys", i, b.Action)
		}
		if b.Description == "" {
			t.Errorf("binding[%d] (%s) has empty Description", i, b.Action)
		}
		if b.Context == "" {
			t.Errorf("binding[%d] (%s) has empty Context", i, b.Action)
		}
	}
}

func TestBindingsHaveValidContexts(t *testing.T) {
	validContexts := map[string]bool{
		"global":   true,
		"playback": true,
		"window":   true,
		"help":     true,
	}

	for i, b := range Bindings {
		if !validContexts[b.Context] {
			t.Errorf("binding[%d] (%s) has invalid context: %q", i, b.Action, b.Context)
		}
	}
}

func TestKeysAreUniquePerContext(t *testing.T) {
	seen := make(map[string]map[string]Action)
	for _, b := range Bindings {
		if seen[b.Context] == nil {
			seen[b.Context] = make(map[string]Action)
		}
		for _, k := range b.Keys {
			if prev, ok := seen[b.Context][k]; ok {
				t.Errorf("key %q bound to both %q and %q in %s", k, prev, b.Action, b.Context)
			}
			seen[b.Context][k] = b.Action
		}
	}
}

func TestPlayerStackOmitsHelp(t *testing.T) {
	for _, ctx := range Player {
		if ctx == ContextHelp {
			t.Fatal("the player stack must not read help popup keys")
		}
	}
}

func TestHelp(t *testing.T) {
	h := Help()

	if len(h.ShortHelp()) != 6 {
		t.Errorf("ShortHelp() has %d bindings, want 6", len(h.ShortHelp()))
	}
	if got := h.ShortHelp()[0].Help().Key; got != "space" {
		t.Errorf("first short help key = %q, want space", got)
	}
	if len(h.FullHelp()) != 3 {
		t.Errorf("FullHelp() has %d columns, want 3", len(h.FullHelp()))
	}

	right := tea.KeyMsg{Type: tea.KeyRight}
	matched := false
	for _, b := range h.FullHelp()[0] {
		if key.Matches(right, b) && b.Help().Desc == "Seek forward one step" {
			matched = true
		}
	}
	if !matched {
		t.Error("right arrow should match the seek forward binding")
	}
}
