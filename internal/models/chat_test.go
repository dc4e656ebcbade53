package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChat_Seed(t *testing.T) {
	chat := NewChat("Chat 1", DefaultSettings())

	require.Len(t, chat.Messages, 2)

	welcome := chat.Messages[0]
	assert.Equal(t, RoleSystem, welcome.Role)
	assert.Equal(t, WelcomeText, welcome.TextValue())
	assert.True(t, welcome.IsSent)
	assert.False(t, welcome.CanRemove)

	slot := chat.Messages[1]
	assert.Equal(t, RoleUser, slot.Role)
	assert.Equal(t, "", slot.TextValue())
	assert.False(t, slot.IsSent)
	assert.False(t, slot.CanRemove)

	assert.Same(t, slot, chat.Current)
}

func TestChat_SubmitCurrent(t *testing.T) {
	chat := NewChat("Chat 1", DefaultSettings())
	chat.Current.SetText("hello")

	submitted := chat.SubmitCurrent()
	require.NotNil(t, submitted)
	assert.True(t, submitted.IsSent)
	assert.Equal(t, "hello", submitted.TextValue())

	// A fresh slot takes its place and the single-unsent invariant holds.
	require.Len(t, chat.Messages, 3)
	assert.Same(t, chat.Messages[2], chat.Current)
	unsent := 0
	for _, m := range chat.Messages {
		if !m.IsSent {
			unsent++
		}
	}
	assert.Equal(t, 1, unsent)
}

func TestChat_SubmitCurrent_NoSlot(t *testing.T) {
	chat := &Chat{Name: "empty"}
	assert.Nil(t, chat.SubmitCurrent())
}

func TestChat_AppendAssistant(t *testing.T) {
	chat := NewChat("Chat 1", DefaultSettings())

	msg := chat.AppendAssistant("**hi**")
	assert.Equal(t, RoleAssistant, msg.Role)
	assert.Equal(t, FormatMarkdown, msg.Format)
	assert.True(t, msg.IsSent)
	assert.True(t, msg.CanRemove)

	// Reply lands before the composition slot.
	require.Len(t, chat.Messages, 3)
	assert.Same(t, msg, chat.Messages[1])
	assert.Same(t, chat.Current, chat.Messages[2])
}

func TestChat_PerformAction_RemoveProtected(t *testing.T) {
	chat := NewChat("Chat 1", DefaultSettings())

	err := chat.PerformAction(chat.Messages[0].ID, ActionRemove)
	assert.ErrorIs(t, err, ErrMessageProtected)
	assert.Len(t, chat.Messages, 2)
}

func TestChat_PerformAction_Remove(t *testing.T) {
	chat := NewChat("Chat 1", DefaultSettings())
	msg := chat.AppendAssistant("reply")

	require.NoError(t, chat.PerformAction(msg.ID, ActionRemove))
	assert.Len(t, chat.Messages, 2)
	assert.Nil(t, chat.MessageByID(msg.ID))
}

func TestChat_PerformAction_RemoveSlotReseeds(t *testing.T) {
	chat := NewChat("Chat 1", DefaultSettings())
	chat.Current.CanRemove = true
	oldSlot := chat.Current

	require.NoError(t, chat.PerformAction(oldSlot.ID, ActionRemove))
	require.NotNil(t, chat.Current)
	assert.NotSame(t, oldSlot, chat.Current)
	assert.False(t, chat.Current.IsSent)
}

func TestChat_PerformAction_Resend(t *testing.T) {
	chat := NewChat("Chat 1", DefaultSettings())
	chat.Current.SetText("first")
	sent := chat.SubmitCurrent()

	require.NoError(t, chat.PerformAction(sent.ID, ActionResend))
	assert.Equal(t, "first", chat.Current.TextValue())
}

func TestChat_PerformAction_UnknownID(t *testing.T) {
	chat := NewChat("Chat 1", DefaultSettings())
	assert.ErrorIs(t, chat.PerformAction("nope", ActionRemove), ErrMessageNotFound)
}

func TestChat_RebindCurrent(t *testing.T) {
	chat := NewChat("Chat 1", DefaultSettings())
	chat.Current = nil
	chat.Messages[1].ID = ""

	chat.RebindCurrent()

	assert.Same(t, chat.Messages[1], chat.Current)
	assert.NotEmpty(t, chat.Messages[1].ID)
	// Rebinding must not disturb sent/removable flags.
	assert.False(t, chat.Messages[1].IsSent)
	assert.False(t, chat.Messages[1].CanRemove)
}

func TestChat_EnsureSlot(t *testing.T) {
	chat := NewChat("Chat 1", DefaultSettings())
	chat.Messages = chat.Messages[:1] // drop the slot
	chat.Current = nil

	chat.EnsureSlot()
	require.NotNil(t, chat.Current)
	assert.False(t, chat.Current.IsSent)
	assert.Same(t, chat.Messages[len(chat.Messages)-1], chat.Current)
}
