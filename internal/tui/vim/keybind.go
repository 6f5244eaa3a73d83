package vim

import (
	"fmt"

	"github.com/artpar/reqpane/internal/input"
)

// Action names something a key can trigger.
type Action string

// Normal mode actions.
const (
	ActionNextView         Action = "next_view"
	ActionPrevView         Action = "prev_view"
	ActionJumpURL          Action = "jump_url"
	ActionJumpParams       Action = "jump_params"
	ActionJumpMethod       Action = "jump_method"
	ActionJumpHeader       Action = "jump_header"
	ActionJumpBody         Action = "jump_body"
	ActionJumpRespHeader   Action = "jump_response_header"
	ActionJumpResponseBody Action = "jump_response_body"
	ActionEnterEdit        Action = "enter_edit"
	ActionDispatch         Action = "dispatch"
	ActionQuit             Action = "quit"
)

// Insert mode actions.
const (
	ActionConfirm       Action = "confirm"
	ActionForceDispatch Action = "force_dispatch"
	ActionCancel        Action = "cancel"
	ActionMethodNext    Action = "method_next"
	ActionMethodPrev    Action = "method_prev"
	ActionBackspace     Action = "backspace"
)

var actionModes = map[Action]Mode{
	ActionNextView:         ModeNormal,
	ActionPrevView:         ModeNormal,
	ActionJumpURL:          ModeNormal,
	ActionJumpParams:       ModeNormal,
	ActionJumpMethod:       ModeNormal,
	ActionJumpHeader:       ModeNormal,
	ActionJumpBody:         ModeNormal,
	ActionJumpRespHeader:   ModeNormal,
	ActionJumpResponseBody: ModeNormal,
	ActionEnterEdit:        ModeNormal,
	ActionDispatch:         ModeNormal,
	ActionQuit:             ModeNormal,
	ActionConfirm:          ModeInsert,
	ActionForceDispatch:    ModeInsert,
	ActionCancel:           ModeInsert,
	ActionMethodNext:       ModeInsert,
	ActionMethodPrev:       ModeInsert,
	ActionBackspace:        ModeInsert,
}

var jumpViews = map[Action]View{
	ActionJumpURL:          ViewURL,
	ActionJumpParams:       ViewParams,
	ActionJumpMethod:       ViewMethod,
	ActionJumpHeader:       ViewHeader,
	ActionJumpBody:         ViewBody,
	ActionJumpRespHeader:   ViewResponseHeader,
	ActionJumpResponseBody: ViewResponseBody,
}

// Mode returns the mode the action belongs to.
func (a Action) Mode() (Mode, bool) {
	m, ok := actionModes[a]
	return m, ok
}

// JumpView returns the pane a jump action focuses.
func (a Action) JumpView() (View, bool) {
	v, ok := jumpViews[a]
	return v, ok
}

// KeyBinding represents a single key binding.
type KeyBinding struct {
	key         input.Key
	action      Action
	description string
}

// NewKeyBinding creates a new key binding.
func NewKeyBinding(key input.Key, action Action, description string) *KeyBinding {
	return &KeyBinding{
		key:         key,
		action:      action,
		description: description,
	}
}

// Key returns the bound key.
func (kb *KeyBinding) Key() input.Key {
	return kb.key
}

// Action returns the bound action.
func (kb *KeyBinding) Action() Action {
	return kb.action
}

// Description returns the description.
func (kb *KeyBinding) Description() string {
	return kb.description
}

// Matches returns true if k triggers this binding.
func (kb *KeyBinding) Matches(k input.Key) bool {
	return kb.key == k
}

// KeyMap holds key bindings organized by mode.
type KeyMap struct {
	bindings map[Mode][]*KeyBinding
}

// NewKeyMap creates a new empty key map.
func NewKeyMap() *KeyMap {
	return &KeyMap{
		bindings: make(map[Mode][]*KeyBinding),
	}
}

// Register adds a key binding for a mode.
func (km *KeyMap) Register(mode Mode, key input.Key, action Action, description string) {
	km.bindings[mode] = append(km.bindings[mode], NewKeyBinding(key, action, description))
}

// GetBindings returns all bindings for a mode.
func (km *KeyMap) GetBindings(mode Mode) []*KeyBinding {
	return km.bindings[mode]
}

// FindBinding finds a matching binding for the given mode and key.
func (km *KeyMap) FindBinding(mode Mode, k input.Key) (*KeyBinding, bool) {
	for _, kb := range km.bindings[mode] {
		if kb.Matches(k) {
			return kb, true
		}
	}
	return nil, false
}

// KeysFor returns the keys bound to action.
func (km *KeyMap) KeysFor(action Action) []input.Key {
	mode, ok := action.Mode()
	if !ok {
		return nil
	}
	var keys []input.Key
	for _, kb := range km.bindings[mode] {
		if kb.action == action {
			keys = append(keys, kb.key)
		}
	}
	return keys
}

// Rebind replaces the keys bound to action. Insert mode actions cannot take
// printable keys because those are typed into the buffer, and a key already
// bound to a different action in the same mode is rejected.
func (km *KeyMap) Rebind(action Action, keys []input.Key) error {
	mode, ok := action.Mode()
	if !ok {
		return fmt.Errorf("unknown action %q", action)
	}
	if len(keys) == 0 {
		return fmt.Errorf("action %q needs at least one key", action)
	}

	description := string(action)
	var kept []*KeyBinding
	for _, kb := range km.bindings[mode] {
		if kb.action == action {
			description = kb.description
			continue
		}
		kept = append(kept, kb)
	}

	for _, k := range keys {
		if mode == ModeInsert && k.IsPrintable() {
			return fmt.Errorf("action %q: printable key %q cannot be bound in insert mode", action, k)
		}
		for _, kb := range kept {
			if kb.Matches(k) {
				return fmt.Errorf("action %q: key %q is already bound to %q", action, k, kb.action)
			}
		}
	}

	for _, k := range keys {
		kept = append(kept, NewKeyBinding(k, action, description))
	}
	km.bindings[mode] = kept
	return nil
}

// DefaultKeyMap returns the built-in bindings.
func DefaultKeyMap() *KeyMap {
	km := NewKeyMap()

	km.Register(ModeNormal, input.Tab, ActionNextView, "next pane")
	km.Register(ModeNormal, input.ShiftTab, ActionPrevView, "previous pane")
	km.Register(ModeNormal, input.Func(1), ActionJumpURL, "url")
	km.Register(ModeNormal, input.Func(2), ActionJumpParams, "params")
	km.Register(ModeNormal, input.Func(3), ActionJumpMethod, "method")
	km.Register(ModeNormal, input.Func(4), ActionJumpHeader, "header")
	km.Register(ModeNormal, input.Func(5), ActionJumpBody, "body")
	km.Register(ModeNormal, input.Func(6), ActionJumpRespHeader, "response header")
	km.Register(ModeNormal, input.Func(7), ActionJumpResponseBody, "response body")
	km.Register(ModeNormal, input.Char('i'), ActionEnterEdit, "edit")
	km.Register(ModeNormal, input.Enter, ActionDispatch, "send")
	km.Register(ModeNormal, input.Char('q'), ActionQuit, "quit")

	km.Register(ModeInsert, input.Enter, ActionConfirm, "send / newline")
	km.Register(ModeInsert, input.Ctrl('r'), ActionForceDispatch, "send")
	km.Register(ModeInsert, input.Esc, ActionCancel, "normal mode")
	km.Register(ModeInsert, input.Right, ActionMethodNext, "next method")
	km.Register(ModeInsert, input.Left, ActionMethodPrev, "previous method")
	km.Register(ModeInsert, input.Backspace, ActionBackspace, "delete")

	return km
}
