package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pocket-tanks/internal/core"
)

// HostCommand is a key handled by the terminal host itself rather than
// forwarded to the game.
type HostCommand int

const (
	CommandNone HostCommand = iota
	CommandScreenshot
	CommandCopyState
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
// Only the arrow keys steer; letters never turn the tank.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "up":
		return core.ActionUp, false
	case "down":
		return core.ActionDown, false
	case "left":
		return core.ActionLeft, false
	case "right":
		return core.ActionRight, false
	case "p", "esc":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// MapKeyToFrame appends the key's action to an input frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MapCommand reports host-level shortcuts.
func (km *KeyMapper) MapCommand(msg tea.KeyMsg) HostCommand {
	switch msg.String() {
	case "ctrl+s":
		return CommandScreenshot
	case "ctrl+y":
		return CommandCopyState
	}
	return CommandNone
}
