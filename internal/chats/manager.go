// Package chats owns the in-memory chat collection: lifecycle operations,
// native JSON save/open, external-format import and transcript export.
package chats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"vesper/internal/models"

	"github.com/atotto/clipboard"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Manager is the sole mutator of the chat collection and the current-chat
// selection. Operations are synchronous and never overlap; callers serialize
// them through the UI event loop.
type Manager struct {
	Chats   []*models.Chat
	Current *models.Chat

	defaults models.ChatSettings
}

// NewManager creates an empty collection using the given process-wide
// default settings for new chats.
func NewManager(defaults models.ChatSettings) *Manager {
	return &Manager{defaults: defaults}
}

// Defaults returns a copy of the process-wide default settings.
func (mgr *Manager) Defaults() models.ChatSettings {
	return mgr.defaults.Copy()
}

// AddChat appends a freshly seeded chat and makes it current. The new chat
// inherits a copy of the current chat's settings when one exists.
func (mgr *Manager) AddChat() *models.Chat {
	settings := mgr.defaults.Copy()
	if mgr.Current != nil {
		settings = mgr.Current.Settings.Copy()
	}

	chat := models.NewChat(fmt.Sprintf("Chat %d", len(mgr.Chats)+1), settings)
	mgr.Chats = append(mgr.Chats, chat)
	mgr.Current = chat
	log.Debug().Str("chat", chat.Name).Msg("added chat")
	return chat
}

// DeleteChat removes the current chat. The last remaining chat becomes
// current, or nil when the collection empties out.
func (mgr *Manager) DeleteChat() {
	if mgr.Current == nil {
		return
	}
	for i, c := range mgr.Chats {
		if c == mgr.Current {
			mgr.Chats = append(mgr.Chats[:i], mgr.Chats[i+1:]...)
			break
		}
	}
	if len(mgr.Chats) == 0 {
		mgr.Current = nil
		return
	}
	mgr.Current = mgr.Chats[len(mgr.Chats)-1]
}

// Adopt appends an already constructed chat (a reopened snapshot) and
// makes it current.
func (mgr *Manager) Adopt(chat *models.Chat) {
	mgr.Chats = append(mgr.Chats, chat)
	mgr.Current = chat
}

// Select makes the given chat current when it is part of the collection.
func (mgr *Manager) Select(chat *models.Chat) {
	for _, c := range mgr.Chats {
		if c == chat {
			mgr.Current = chat
			return
		}
	}
}

// OpenChat deserializes a single chat from the native schema, appends it
// and makes it current. A JSON null decodes to "nothing to add" and leaves
// the collection untouched; malformed input is an error with no mutation.
func (mgr *Manager) OpenChat(r io.Reader) error {
	var chat *models.Chat
	if err := json.NewDecoder(r).Decode(&chat); err != nil {
		return errors.Wrap(err, "decode chat")
	}
	if chat == nil {
		return nil
	}

	chat.RebindCurrent()
	mgr.Chats = append(mgr.Chats, chat)
	mgr.Current = chat
	log.Debug().Str("chat", chat.Name).Int("messages", len(chat.Messages)).Msg("opened chat")
	return nil
}

// SaveChat serializes the current chat, messages and settings included, to
// the native schema. No-op without a current chat.
func (mgr *Manager) SaveChat(w io.Writer) error {
	if mgr.Current == nil {
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(mgr.Current); err != nil {
		return errors.Wrap(err, "encode chat")
	}
	return nil
}

// ExportChat writes the current chat's plain-text transcript. No-op without
// a current chat.
func (mgr *Manager) ExportChat(w io.Writer) error {
	if mgr.Current == nil {
		return nil
	}
	return WriteTranscript(w, mgr.Current)
}

// CopyChat places the current chat's transcript on the system clipboard.
// No-op without a current chat.
func (mgr *Manager) CopyChat() error {
	if mgr.Current == nil {
		return nil
	}
	var buf bytes.Buffer
	if err := WriteTranscript(&buf, mgr.Current); err != nil {
		return err
	}
	return errors.Wrap(clipboard.WriteAll(buf.String()), "write clipboard")
}

// ResetCurrentSettings replaces the current chat's settings with the
// process-wide defaults, carrying over a previously set API key.
func (mgr *Manager) ResetCurrentSettings() {
	if mgr.Current == nil {
		return
	}
	settings := mgr.defaults.Copy()
	if key := mgr.Current.Settings.APIKey; key != nil {
		settings.APIKey = models.StrPtr(*key)
	}
	mgr.Current.Settings = settings
}
