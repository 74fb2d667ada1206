package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/PabloKostenko/airplane/internal/core"
)

// binding ties a key binding to the game action it triggers.
type binding struct {
	key    key.Binding
	action core.Action
}

type menuBinding struct {
	key    key.Binding
	action MenuAction
}

// KeyMapper translates Bubble Tea key messages to game and menu actions.
type KeyMapper struct {
	game []binding
	menu []menuBinding
}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	km := &KeyMapper{
		game: []binding{
			{key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")), core.ActionQuit},
			{key.NewBinding(key.WithKeys("w", "up", "k"), key.WithHelp("up/w", "climb")), core.ActionUp},
			{key.NewBinding(key.WithKeys("s", "down", "j"), key.WithHelp("down/s", "descend")), core.ActionDown},
			{key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")), core.ActionConfirm},
			{key.NewBinding(key.WithKeys("b", "esc"), key.WithHelp("esc", "back")), core.ActionBack},
			{key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "pause")), core.ActionPause},
			{key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")), core.ActionRestart},
			{key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "music")), core.ActionMusic},
			{key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "sound")), core.ActionSound},
		},
	}

	add := func(action MenuAction, keys ...string) {
		km.menu = append(km.menu, menuBinding{key.NewBinding(key.WithKeys(keys...)), action})
	}
	add(MenuActionQuit, "ctrl+c", "q")
	add(MenuActionUp, "w", "up", "k")
	add(MenuActionDown, "s", "down", "j")
	add(MenuActionSelect, "enter", " ")
	add(MenuActionBack, "b", "esc")

	return km
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	for _, b := range km.game {
		if key.Matches(msg, b.key) {
			return b.action, b.action == core.ActionQuit
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	for _, b := range km.menu {
		if key.Matches(msg, b.key) {
			return b.action
		}
	}
	return MenuActionNone
}
