package chats

import (
	"encoding/json"
	"io"

	"vesper/internal/models"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// FallbackDirections stands in for a system message imported with no
// content at all.
const FallbackDirections = "You are a helpful assistant."

// ExternalChat is one record of the third-party export schema: a titled
// list of role/content-array entries. Read-only; vesper never produces it.
type ExternalChat struct {
	Title    string            `json:"title"`
	Messages []ExternalMessage `json:"messages"`
}

// ExternalMessage stores its body as an array of content variants; the
// last variant is authoritative.
type ExternalMessage struct {
	Role    string   `json:"role"`
	Content []string `json:"content"`
}

// ImportExternal decodes an array of external chat records and imports
// them. A malformed stream is an error and leaves the collection untouched.
func (mgr *Manager) ImportExternal(r io.Reader) error {
	var source []ExternalChat
	if err := json.NewDecoder(r).Decode(&source); err != nil {
		return errors.Wrap(err, "decode external chats")
	}
	mgr.ImportChats(source)
	return nil
}

// ImportChats converts external records into native chats and appends them.
// The collection gains the chats in source order and the last source
// element becomes current.
func (mgr *Manager) ImportChats(source []ExternalChat) {
	for i := range source {
		chat := mgr.convertChat(&source[i])
		mgr.Chats = append(mgr.Chats, chat)
		mgr.Current = chat
	}
	log.Debug().Int("chats", len(source)).Msg("imported external chats")
}

func (mgr *Manager) convertChat(src *ExternalChat) *models.Chat {
	chat := &models.Chat{
		Name:     src.Title,
		Settings: mgr.defaults.Copy(),
	}

	for _, sm := range src.Messages {
		chat.Messages = append(chat.Messages, convertMessage(&sm))
	}

	// Every imported chat ends with a fresh composition slot.
	slot := models.NewMessage(models.RoleUser, models.StrPtr(""), models.FormatPlainText)
	slot.CanRemove = true
	chat.Messages = append(chat.Messages, slot)
	chat.Current = slot

	return chat
}

func convertMessage(src *ExternalMessage) *models.Message {
	role := models.ParseRole(src.Role)

	var text *string
	if len(src.Content) > 0 {
		text = models.StrPtr(src.Content[len(src.Content)-1])
	}
	// Only system messages get a fallback body; other roles keep their
	// absent or empty text as-is.
	if role == models.RoleSystem && (text == nil || *text == "") {
		text = models.StrPtr(FallbackDirections)
	}

	format := models.FormatPlainText
	if role == models.RoleAssistant {
		format = models.FormatMarkdown
	}

	msg := models.NewMessage(role, text, format)
	msg.IsSent = true
	msg.CanRemove = true
	return msg
}
