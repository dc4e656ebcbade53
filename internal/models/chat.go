package models

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// WelcomeText seeds every new chat. The transcript exporter treats a first
// message that still carries this text as "untouched" and substitutes the
// chat's directions for it.
const WelcomeText = "Hi! How can I help you?"

// ActionKind names the operations the UI can request on a single message.
// Messages carry no callbacks; the owning chat dispatches by message ID.
type ActionKind int

const (
	ActionRemove ActionKind = iota
	ActionResend
)

var (
	ErrMessageNotFound  = errors.New("message not found")
	ErrMessageProtected = errors.New("message cannot be removed")
)

// Chat is a named conversation: an ordered message list, its generation
// settings and a pointer to the composition slot (the single message with
// IsSent=false that holds not-yet-submitted user input).
type Chat struct {
	Name     string       `json:"name"`
	Messages []*Message   `json:"messages"`
	Settings ChatSettings `json:"settings"`

	// Current is the composition slot. Not serialized; restored by
	// RebindCurrent after deserialization.
	Current *Message `json:"-"`
}

// NewChat seeds a chat with the fixed welcome message and an empty
// composition slot. Both seed messages are protected from removal.
func NewChat(name string, settings ChatSettings) *Chat {
	welcome := NewMessage(RoleSystem, StrPtr(WelcomeText), FormatPlainText)
	welcome.IsSent = true

	slot := NewMessage(RoleUser, StrPtr(""), FormatPlainText)

	return &Chat{
		Name:     name,
		Messages: []*Message{welcome, slot},
		Settings: settings,
		Current:  slot,
	}
}

// RebindCurrent restores the composition-slot pointer from the message
// list, and backfills IDs for messages loaded from files that predate them.
func (c *Chat) RebindCurrent() {
	c.Current = nil
	for _, m := range c.Messages {
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
	}
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if !c.Messages[i].IsSent {
			c.Current = c.Messages[i]
			return
		}
	}
}

// EnsureSlot guarantees the chat has a composition slot, seeding one when
// every message has been sent.
func (c *Chat) EnsureSlot() {
	if c.Current != nil {
		return
	}
	c.RebindCurrent()
	if c.Current != nil {
		return
	}
	slot := NewMessage(RoleUser, StrPtr(""), FormatPlainText)
	slot.CanRemove = true
	c.Messages = append(c.Messages, slot)
	c.Current = slot
}

// SubmitCurrent marks the composition slot as sent and appends a fresh
// empty slot, which becomes Current. Returns the submitted message, or nil
// when there is no slot to submit.
func (c *Chat) SubmitCurrent() *Message {
	submitted := c.Current
	if submitted == nil {
		return nil
	}
	submitted.IsSent = true

	slot := NewMessage(RoleUser, StrPtr(""), FormatPlainText)
	slot.CanRemove = true
	c.Messages = append(c.Messages, slot)
	c.Current = slot
	return submitted
}

// AppendAssistant inserts an assistant reply directly before the
// composition slot, keeping the slot in its conventional last position.
func (c *Chat) AppendAssistant(text string) *Message {
	msg := NewMessage(RoleAssistant, StrPtr(text), FormatMarkdown)
	msg.IsSent = true
	msg.CanRemove = true

	for i, m := range c.Messages {
		if m == c.Current {
			c.Messages = append(c.Messages[:i], append([]*Message{msg}, c.Messages[i:]...)...)
			return msg
		}
	}
	c.Messages = append(c.Messages, msg)
	return msg
}

// MessageByID returns the message with the given ID, or nil.
func (c *Chat) MessageByID(id string) *Message {
	for _, m := range c.Messages {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// PerformAction dispatches a UI-requested action against one message.
func (c *Chat) PerformAction(messageID string, kind ActionKind) error {
	msg := c.MessageByID(messageID)
	if msg == nil {
		return errors.Wrap(ErrMessageNotFound, messageID)
	}

	switch kind {
	case ActionRemove:
		if !msg.CanRemove {
			return ErrMessageProtected
		}
		c.removeMessage(msg)
		return nil
	case ActionResend:
		if c.Current == nil || msg == c.Current {
			return nil
		}
		c.Current.SetText(msg.TextValue())
		return nil
	default:
		return errors.Errorf("unknown action %d", kind)
	}
}

func (c *Chat) removeMessage(msg *Message) {
	for i, m := range c.Messages {
		if m == msg {
			c.Messages = append(c.Messages[:i], c.Messages[i+1:]...)
			break
		}
	}
	// Removing the composition slot would leave the chat with nowhere to
	// type; reseed one in that case.
	if msg == c.Current {
		slot := NewMessage(RoleUser, StrPtr(""), FormatPlainText)
		slot.CanRemove = true
		c.Messages = append(c.Messages, slot)
		c.Current = slot
	}
}
