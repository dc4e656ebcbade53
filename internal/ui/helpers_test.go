package ui

import (
	"testing"
	"time"

	"vesper/internal/chats"
	"vesper/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestWrappedLineCount(t *testing.T) {
	assert.Equal(t, 1, WrappedLineCount("", 10))
	assert.Equal(t, 1, WrappedLineCount("short", 10))
	assert.Equal(t, 1, WrappedLineCount("exactly-10", 10))
	assert.Equal(t, 2, WrappedLineCount("eleven chars", 10))
	assert.Equal(t, 3, WrappedLineCount("a\n\nb", 10))
	assert.Equal(t, 1, WrappedLineCount("anything", 0))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "hello", TruncateRunes("hello", 10))
	assert.Equal(t, "hell…", TruncateRunes("hello world", 5))
	assert.Equal(t, "h", TruncateRunes("hello", 1))
	assert.Equal(t, "", TruncateRunes("hello", 0))
	assert.Equal(t, "héll…", TruncateRunes("héllo wörld", 5))
}

func TestRelativeTime(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "just now", RelativeTime(now.Add(-30*time.Second)))
	assert.Equal(t, "5m ago", RelativeTime(now.Add(-5*time.Minute)))
	assert.Equal(t, "3h ago", RelativeTime(now.Add(-3*time.Hour)))
	assert.Equal(t, "2d ago", RelativeTime(now.Add(-49*time.Hour)))
}

func TestMessagePreview(t *testing.T) {
	msg := models.NewMessage(models.RoleUser, models.StrPtr("line one\nline two"), models.FormatPlainText)
	assert.Equal(t, "line one line two", MessagePreview(msg, 40))
	assert.Equal(t, "line on…", MessagePreview(msg, 8))

	empty := models.NewMessage(models.RoleUser, nil, models.FormatPlainText)
	assert.Equal(t, "(empty)", MessagePreview(empty, 40))
}

func TestSuggestedPath(t *testing.T) {
	m := &Model{Manager: chats.NewManager(models.DefaultSettings())}
	assert.Equal(t, "", m.SuggestedPath(".json"))

	m.Manager.AddChat()
	m.Manager.Current.Name = "Chat 1"
	assert.Equal(t, "chat-1.json", m.SuggestedPath(".json"))

	m.Manager.Current.Name = "Trip / Notes!"
	assert.Equal(t, "trip--notes.txt", m.SuggestedPath(".txt"))

	m.Manager.Current.Name = "!!!"
	assert.Equal(t, "chat.txt", m.SuggestedPath(".txt"))
}
