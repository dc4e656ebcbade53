package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"vesper/internal/history"
	"vesper/internal/models"
	"vesper/internal/styles"

	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog/log"
)

// SyncInputFromSlot mirrors the current chat's composition slot into the
// textarea. Switching chats therefore restores half-typed input.
func (m *Model) SyncInputFromSlot() {
	chat := m.Manager.Current
	if chat == nil {
		m.TextInput.Reset()
		return
	}
	chat.EnsureSlot()
	m.TextInput.SetValue(chat.Current.TextValue())
	m.updateInputLayout()
}

// SubmitMessage moves the textarea contents into the composition slot and
// submits it, leaving a fresh slot behind.
func (m *Model) SubmitMessage() {
	text := strings.TrimSpace(m.TextInput.Value())
	if text == "" {
		return
	}
	if m.Manager.Current == nil {
		m.Manager.AddChat()
	}

	chat := m.Manager.Current
	chat.EnsureSlot()
	chat.Current.SetText(text)
	chat.SubmitCurrent()

	m.TextInput.Reset()
	m.updateInputLayout()
	m.Autosave()
	m.UpdateViewport()
}

func (m *Model) DeleteCurrentChat() {
	if m.Manager.Current == nil {
		return
	}
	delete(m.SnapshotIDs, m.Manager.Current)
	m.Manager.DeleteChat()
	m.SyncInputFromSlot()
	m.Status = "Chat deleted"
	m.UpdateViewport()
}

func (m *Model) CurrentChatIndex() int {
	for i, c := range m.Manager.Chats {
		if c == m.Manager.Current {
			return i
		}
	}
	return 0
}

// Autosave snapshots the current chat into the history database, reusing
// the chat's snapshot row across saves.
func (m *Model) Autosave() {
	if m.DB == nil || m.DBErr != nil {
		return
	}
	chat := m.Manager.Current
	if chat == nil {
		return
	}

	id, err := history.SaveSnapshot(m.DB, m.SnapshotIDs[chat], chat)
	if err != nil {
		log.Warn().Err(err).Msg("autosave failed")
		m.Status = fmt.Sprintf("History error: %v", err)
		return
	}
	m.SnapshotIDs[chat] = id
}

func (m *Model) RefreshSnapshots() {
	m.SnapshotErr = nil
	m.Snapshots = nil
	m.SnapshotIdx = 0

	if m.DBErr != nil {
		m.SnapshotErr = m.DBErr
		return
	}
	if m.DB == nil {
		m.SnapshotErr = fmt.Errorf("history database not initialized")
		return
	}

	count, items, err := history.ListRecent(m.DB, SnapshotPageSize, m.SnapshotPage*SnapshotPageSize)
	if err != nil {
		m.SnapshotErr = err
		return
	}
	m.SnapshotCount = count
	m.Snapshots = items
}

// ReopenSnapshot loads a stored chat back into the collection and selects it.
func (m *Model) ReopenSnapshot(id string) error {
	chat, err := history.LoadSnapshot(m.DB, id)
	if err != nil {
		return err
	}
	m.Manager.Adopt(chat)
	m.SnapshotIDs[chat] = id
	m.SyncInputFromSlot()
	m.UpdateViewport()
	return nil
}

func (m *Model) OpenPrompt(kind PromptKind, initial string) {
	m.PromptOpen = true
	m.PromptKind = kind
	m.PromptInput.SetValue(initial)
	m.PromptInput.CursorEnd()
	m.PromptInput.Focus()
	m.TextInput.Blur()
}

func (m *Model) ClosePrompt() {
	m.PromptOpen = false
	m.PromptKind = PromptNone
	m.PromptInput.Blur()
	m.PromptInput.Reset()
	m.TextInput.Focus()
}

// RunPrompt executes the pending prompt action. An empty path counts as a
// cancelled picker.
func (m *Model) RunPrompt() {
	value := strings.TrimSpace(m.PromptInput.Value())
	kind := m.PromptKind
	m.ClosePrompt()
	if value == "" {
		return
	}

	switch kind {
	case PromptOpen:
		f, err := os.Open(value)
		if err != nil {
			m.Status = fmt.Sprintf("Open failed: %v", err)
			return
		}
		defer f.Close()
		if err := m.Manager.OpenChat(f); err != nil {
			m.Status = fmt.Sprintf("Open failed: %v", err)
			return
		}
		m.SyncInputFromSlot()
		m.Autosave()
		m.Status = fmt.Sprintf("Opened %s", filepath.Base(value))

	case PromptSave:
		f, err := os.Create(value)
		if err != nil {
			m.Status = fmt.Sprintf("Save failed: %v", err)
			return
		}
		defer f.Close()
		if err := m.Manager.SaveChat(f); err != nil {
			m.Status = fmt.Sprintf("Save failed: %v", err)
			return
		}
		m.Status = fmt.Sprintf("Saved %s", filepath.Base(value))

	case PromptExport:
		f, err := os.Create(value)
		if err != nil {
			m.Status = fmt.Sprintf("Export failed: %v", err)
			return
		}
		defer f.Close()
		if err := m.Manager.ExportChat(f); err != nil {
			m.Status = fmt.Sprintf("Export failed: %v", err)
			return
		}
		m.Status = fmt.Sprintf("Exported %s", filepath.Base(value))

	case PromptImport:
		f, err := os.Open(value)
		if err != nil {
			m.Status = fmt.Sprintf("Import failed: %v", err)
			return
		}
		defer f.Close()
		before := len(m.Manager.Chats)
		if err := m.Manager.ImportExternal(f); err != nil {
			m.Status = fmt.Sprintf("Import failed: %v", err)
			return
		}
		m.SyncInputFromSlot()
		m.Autosave()
		m.Status = fmt.Sprintf("Imported %d chats", len(m.Manager.Chats)-before)

	case PromptRename:
		if m.Manager.Current != nil {
			m.Manager.Current.Name = value
		}
	}
	m.UpdateViewport()
}

// SuggestedPath proposes a file name derived from the current chat's name.
func (m *Model) SuggestedPath(ext string) string {
	if m.Manager.Current == nil {
		return ""
	}
	name := strings.ToLower(m.Manager.Current.Name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, name)
	if name == "" {
		name = "chat"
	}
	return name + ext
}

func (m *Model) updateInputLayout() {
	if m.WindowWidth == 0 || m.WindowHeight == 0 {
		return
	}

	inputWidth := m.WindowWidth - 6
	if inputWidth < 20 {
		inputWidth = 20
	}
	contentWidth := inputWidth - 2
	if contentWidth < 1 {
		contentWidth = 1
	}

	maxInputHeight := 6
	lineCount := WrappedLineCount(m.TextInput.Value(), contentWidth)
	if lineCount < 1 {
		lineCount = 1
	}
	if lineCount > maxInputHeight {
		lineCount = maxInputHeight
	}

	m.TextInput.MaxHeight = maxInputHeight
	m.TextInput.SetWidth(inputWidth)
	m.TextInput.SetHeight(lineCount)

	inputBoxHeight := m.TextInput.Height() + 2
	reserved := inputBoxHeight + 5
	viewportHeight := m.WindowHeight - reserved
	if viewportHeight < 5 {
		viewportHeight = 5
	}
	m.Viewport.Height = viewportHeight
}

// WrappedLineCount counts display lines after soft wrapping at width.
func WrappedLineCount(value string, width int) int {
	if width <= 0 {
		return 1
	}
	lines := 0
	for _, raw := range strings.Split(value, "\n") {
		w := runewidth.StringWidth(raw)
		if w == 0 {
			lines++
			continue
		}
		lines += (w + width - 1) / width
	}
	if lines < 1 {
		lines = 1
	}
	return lines
}

func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}

func RelativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

// MessagePreview flattens a message body to one truncated line.
func MessagePreview(msg *models.Message, max int) string {
	text := strings.TrimSpace(msg.TextValue())
	text = strings.ReplaceAll(text, "\n", " ")
	if text == "" {
		return "(empty)"
	}
	return TruncateRunes(text, max)
}

// FormatMessage renders one message block for the viewport.
func (m *Model) FormatMessage(msg *models.Message) string {
	content := msg.TextValue()
	if msg.Format == models.FormatMarkdown && m.Renderer != nil {
		if rendered, err := m.Renderer.Render(content); err == nil {
			content = strings.TrimSpace(rendered)
		}
	}

	switch msg.Role {
	case models.RoleUser:
		return styles.UserLabelStyle.Render("YOU") + "\n" + styles.UserMsgStyle.Render(content)
	case models.RoleAssistant:
		return styles.AssistantLabelStyle.Render("VESPER") + "\n" + styles.AssistantMsgStyle.Render(content)
	default:
		return styles.SystemLabelStyle.Render("SYSTEM") + "\n" + styles.SystemMsgStyle.Render(content)
	}
}
