package models

import "github.com/google/uuid"

// Role identifies the author of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ParseRole maps an arbitrary role string onto the native role set.
// Anything unrecognized is treated as user input.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleSystem, RoleAssistant:
		return Role(s)
	default:
		return RoleUser
	}
}

// Format describes how a message body should be rendered.
type Format string

const (
	FormatPlainText Format = "plaintext"
	FormatMarkdown  Format = "markdown"
)

// Message is a single turn in a chat. Text is a pointer so that an absent
// body and an empty body survive serialization as distinct states.
type Message struct {
	ID        string  `json:"id"`
	Role      Role    `json:"role"`
	Text      *string `json:"text"`
	Format    Format  `json:"format"`
	IsSent    bool    `json:"isSent"`
	CanRemove bool    `json:"canRemove"`
}

func NewMessage(role Role, text *string, format Format) *Message {
	return &Message{
		ID:     uuid.NewString(),
		Role:   role,
		Text:   text,
		Format: format,
	}
}

// TextValue returns the body, or "" when absent.
func (m *Message) TextValue() string {
	if m.Text == nil {
		return ""
	}
	return *m.Text
}

// HasText reports whether the body is present and non-empty.
func (m *Message) HasText() bool {
	return m.Text != nil && *m.Text != ""
}

// SetText replaces the body, preserving nil for absent input.
func (m *Message) SetText(text string) {
	m.Text = &text
}

// StrPtr is a convenience for building nullable text fields.
func StrPtr(s string) *string {
	return &s
}
