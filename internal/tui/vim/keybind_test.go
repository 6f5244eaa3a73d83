package vim

import (
	"testing"

	"github.com/artpar/reqpane/internal/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyBinding(t *testing.T) {
	kb := NewKeyBinding(input.Char('q'), ActionQuit, "quit")
	assert.Equal(t, input.Char('q'), kb.Key())
	assert.Equal(t, ActionQuit, kb.Action())
	assert.Equal(t, "quit", kb.Description())
	assert.True(t, kb.Matches(input.Char('q')))
	assert.False(t, kb.Matches(input.Char('Q')))
}

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	normal := []struct {
		key    input.Key
		action Action
	}{
		{input.Tab, ActionNextView},
		{input.ShiftTab, ActionPrevView},
		{input.Func(1), ActionJumpURL},
		{input.Func(2), ActionJumpParams},
		{input.Func(3), ActionJumpMethod},
		{input.Func(4), ActionJumpHeader},
		{input.Func(5), ActionJumpBody},
		{input.Func(6), ActionJumpRespHeader},
		{input.Func(7), ActionJumpResponseBody},
		{input.Char('i'), ActionEnterEdit},
		{input.Enter, ActionDispatch},
		{input.Char('q'), ActionQuit},
	}
	for _, tc := range normal {
		kb, ok := km.FindBinding(ModeNormal, tc.key)
		require.True(t, ok, tc.key.String())
		assert.Equal(t, tc.action, kb.Action())
	}

	insert := []struct {
		key    input.Key
		action Action
	}{
		{input.Enter, ActionConfirm},
		{input.Ctrl('r'), ActionForceDispatch},
		{input.Esc, ActionCancel},
		{input.Right, ActionMethodNext},
		{input.Left, ActionMethodPrev},
		{input.Backspace, ActionBackspace},
	}
	for _, tc := range insert {
		kb, ok := km.FindBinding(ModeInsert, tc.key)
		require.True(t, ok, tc.key.String())
		assert.Equal(t, tc.action, kb.Action())
	}

	t.Run("no insert binding for printable keys", func(t *testing.T) {
		for _, kb := range km.GetBindings(ModeInsert) {
			assert.False(t, kb.Key().IsPrintable(), kb.Key().String())
		}
	})

	t.Run("unbound key", func(t *testing.T) {
		_, ok := km.FindBinding(ModeNormal, input.Char('z'))
		assert.False(t, ok)
	})
}

func TestAction(t *testing.T) {
	mode, ok := ActionQuit.Mode()
	assert.True(t, ok)
	assert.Equal(t, ModeNormal, mode)

	mode, ok = ActionBackspace.Mode()
	assert.True(t, ok)
	assert.Equal(t, ModeInsert, mode)

	_, ok = Action("fly").Mode()
	assert.False(t, ok)

	v, ok := ActionJumpResponseBody.JumpView()
	assert.True(t, ok)
	assert.Equal(t, ViewResponseBody, v)

	_, ok = ActionQuit.JumpView()
	assert.False(t, ok)
}

func TestKeyMap_Rebind(t *testing.T) {
	t.Run("replaces keys for an action", func(t *testing.T) {
		km := DefaultKeyMap()
		err := km.Rebind(ActionQuit, []input.Key{input.Ctrl('q'), input.Char('x')})
		require.NoError(t, err)

		_, ok := km.FindBinding(ModeNormal, input.Char('q'))
		assert.False(t, ok)
		kb, ok := km.FindBinding(ModeNormal, input.Ctrl('q'))
		require.True(t, ok)
		assert.Equal(t, ActionQuit, kb.Action())
		assert.Equal(t, "quit", kb.Description())
		assert.Equal(t, []input.Key{input.Ctrl('q'), input.Char('x')}, km.KeysFor(ActionQuit))
	})

	t.Run("rejects unknown action", func(t *testing.T) {
		km := DefaultKeyMap()
		assert.Error(t, km.Rebind("fly", []input.Key{input.Char('f')}))
	})

	t.Run("rejects empty key list", func(t *testing.T) {
		km := DefaultKeyMap()
		assert.Error(t, km.Rebind(ActionQuit, nil))
	})

	t.Run("rejects printable keys in insert mode", func(t *testing.T) {
		km := DefaultKeyMap()
		err := km.Rebind(ActionCancel, []input.Key{input.Char('j')})
		assert.Error(t, err)
		assert.Equal(t, []input.Key{input.Esc}, km.KeysFor(ActionCancel))
	})

	t.Run("rejects conflicts within a mode", func(t *testing.T) {
		km := DefaultKeyMap()
		err := km.Rebind(ActionQuit, []input.Key{input.Tab})
		assert.Error(t, err)
		assert.Equal(t, []input.Key{input.Char('q')}, km.KeysFor(ActionQuit))
	})

	t.Run("same key may serve both modes", func(t *testing.T) {
		km := DefaultKeyMap()
		require.NoError(t, km.Rebind(ActionForceDispatch, []input.Key{input.Ctrl('s')}))
		require.NoError(t, km.Rebind(ActionDispatch, []input.Key{input.Ctrl('s')}))
	})
}
