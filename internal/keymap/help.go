package keymap

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/samber/lo"
)

// HelpKeys adapts Bindings to the bubbles help component.
type HelpKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

var _ help.KeyMap = HelpKeys{}

// Help builds the help key map. The short form holds the first key of
// the actions most used during playback.
func Help() HelpKeys {
	short := []Action{ActionPlayPause, ActionSeekBack, ActionSeekForward, ActionToggleFullscreen, ActionHelp, ActionQuit}

	var h HelpKeys
	for _, a := range short {
		if b, ok := lo.Find(Bindings, func(b Binding) bool { return b.Action == a }); ok {
			h.short = append(h.short, toKey(b))
		}
	}
	for _, ctx := range Player {
		h.full = append(h.full, lo.Map(ByContext(ctx), func(b Binding, _ int) key.Binding {
			return toKey(b)
		}))
	}
	return h
}

func toKey(b Binding) key.Binding {
	return key.NewBinding(
		key.WithKeys(b.Keys...),
		key.WithHelp(KeyLabel(b.Keys[0]), b.Description),
	)
}

func (h HelpKeys) ShortHelp() []key.Binding { return h.short }
func (h HelpKeys) FullHelp() [][]key.Binding { return h.full }
