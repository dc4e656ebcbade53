package chats

import (
	"fmt"
	"io"

	"vesper/internal/models"
)

// WriteTranscript renders a chat as a line-oriented transcript: for each
// contributing message a "{role}:" header, a blank line, the body and a
// trailing blank line.
//
// The first message gets special handling: when it still carries the
// untouched welcome text, the chat's directions are emitted in its place.
// A first slot without content is skipped entirely, as is any later
// message with an absent or empty body.
func WriteTranscript(w io.Writer, chat *models.Chat) error {
	for i, msg := range chat.Messages {
		var content *string
		if i == 0 {
			content = msg.Text
			if msg.TextValue() == models.WelcomeText {
				content = chat.Settings.Directions
			}
			if content == nil {
				continue
			}
		} else {
			if !msg.HasText() {
				continue
			}
			content = msg.Text
		}

		if _, err := fmt.Fprintf(w, "%s:\n\n%s\n\n", msg.Role, *content); err != nil {
			return err
		}
	}
	return nil
}
