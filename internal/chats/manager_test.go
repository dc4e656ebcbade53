package chats

import (
	"bytes"
	"strings"
	"testing"

	"vesper/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager(models.DefaultSettings())
}

func TestManager_AddChat(t *testing.T) {
	mgr := newTestManager()

	chat := mgr.AddChat()
	require.Len(t, mgr.Chats, 1)
	assert.Same(t, chat, mgr.Current)
	require.Len(t, chat.Messages, 2)
	assert.Equal(t, models.RoleSystem, chat.Messages[0].Role)
	assert.True(t, chat.Messages[0].IsSent)
	assert.False(t, chat.Messages[1].IsSent)
	assert.Same(t, chat.Messages[1], chat.Current)
}

func TestManager_AddChat_InheritsCurrentSettings(t *testing.T) {
	mgr := newTestManager()
	first := mgr.AddChat()
	first.Settings.Temperature = 0.2
	first.Settings.APIKey = models.StrPtr("sk-first")

	second := mgr.AddChat()
	assert.Equal(t, 0.2, second.Settings.Temperature)
	require.NotNil(t, second.Settings.APIKey)
	assert.Equal(t, "sk-first", *second.Settings.APIKey)

	// Inherited settings are an independent copy.
	*second.Settings.APIKey = "sk-second"
	assert.Equal(t, "sk-first", *first.Settings.APIKey)
}

func TestManager_DeleteChat(t *testing.T) {
	mgr := newTestManager()
	a := mgr.AddChat()
	b := mgr.AddChat()
	c := mgr.AddChat()

	mgr.Select(b)
	mgr.DeleteChat()

	require.Len(t, mgr.Chats, 2)
	assert.Same(t, c, mgr.Current)
	assert.Equal(t, []*models.Chat{a, c}, mgr.Chats)

	mgr.DeleteChat()
	assert.Same(t, a, mgr.Current)
	mgr.DeleteChat()
	assert.Nil(t, mgr.Current)
	assert.Empty(t, mgr.Chats)

	// Deleting with nothing selected is a no-op.
	mgr.DeleteChat()
	assert.Nil(t, mgr.Current)
}

func TestManager_SaveOpenRoundTrip(t *testing.T) {
	mgr := newTestManager()
	chat := mgr.AddChat()
	chat.Name = "Round trip"
	chat.Settings.APIKey = models.StrPtr("sk-test")
	chat.Current.SetText("hello there")
	chat.SubmitCurrent()
	chat.AppendAssistant("**hi**")

	var buf bytes.Buffer
	require.NoError(t, mgr.SaveChat(&buf))

	other := newTestManager()
	require.NoError(t, other.OpenChat(&buf))
	require.Len(t, other.Chats, 1)

	got := other.Current
	assert.Equal(t, chat.Name, got.Name)
	assert.Equal(t, chat.Settings, got.Settings)
	require.Len(t, got.Messages, len(chat.Messages))
	for i := range chat.Messages {
		assert.Equal(t, *chat.Messages[i], *got.Messages[i], "message %d", i)
	}

	// The composition slot is rebound, not serialized.
	require.NotNil(t, got.Current)
	assert.False(t, got.Current.IsSent)
}

func TestManager_OpenChat_Malformed(t *testing.T) {
	mgr := newTestManager()
	err := mgr.OpenChat(strings.NewReader("{not json"))
	require.Error(t, err)
	assert.Empty(t, mgr.Chats)
	assert.Nil(t, mgr.Current)
}

func TestManager_OpenChat_EmptyStream(t *testing.T) {
	mgr := newTestManager()
	err := mgr.OpenChat(strings.NewReader(""))
	require.Error(t, err)
	assert.Empty(t, mgr.Chats)
}

func TestManager_OpenChat_NullIsNoop(t *testing.T) {
	mgr := newTestManager()
	require.NoError(t, mgr.OpenChat(strings.NewReader("null")))
	assert.Empty(t, mgr.Chats)
	assert.Nil(t, mgr.Current)
}

func TestManager_SaveChat_NoCurrent(t *testing.T) {
	mgr := newTestManager()
	var buf bytes.Buffer
	require.NoError(t, mgr.SaveChat(&buf))
	assert.Zero(t, buf.Len())
}

func TestManager_ExportChat_NoCurrent(t *testing.T) {
	mgr := newTestManager()
	var buf bytes.Buffer
	require.NoError(t, mgr.ExportChat(&buf))
	assert.Zero(t, buf.Len())
}

func TestManager_ResetCurrentSettings(t *testing.T) {
	mgr := newTestManager()
	chat := mgr.AddChat()
	chat.Settings.Temperature = 1.9
	chat.Settings.MaxTokens = 9
	chat.Settings.APIKey = models.StrPtr("sk-keep")

	mgr.ResetCurrentSettings()

	want := models.DefaultSettings()
	assert.Equal(t, want.Temperature, chat.Settings.Temperature)
	assert.Equal(t, want.MaxTokens, chat.Settings.MaxTokens)
	require.NotNil(t, chat.Settings.APIKey)
	assert.Equal(t, "sk-keep", *chat.Settings.APIKey)
}

func TestManager_ResetCurrentSettings_NoKey(t *testing.T) {
	mgr := newTestManager()
	chat := mgr.AddChat()
	chat.Settings.APIKey = nil
	chat.Settings.Temperature = 1.5

	mgr.ResetCurrentSettings()
	assert.Nil(t, chat.Settings.APIKey)
	assert.Equal(t, models.DefaultTemperature, chat.Settings.Temperature)
}

func TestManager_ResetCurrentSettings_NoCurrent(t *testing.T) {
	mgr := newTestManager()
	mgr.ResetCurrentSettings() // must not panic
	assert.Nil(t, mgr.Current)
}

func TestManager_Adopt(t *testing.T) {
	mgr := newTestManager()
	mgr.AddChat()

	chat := models.NewChat("adopted", mgr.Defaults())
	mgr.Adopt(chat)
	assert.Same(t, chat, mgr.Current)
	assert.Len(t, mgr.Chats, 2)
}
