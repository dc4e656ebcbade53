package ui

import (
	"strings"

	"vesper/internal/history"
	"vesper/internal/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.Status = ""

		if m.PromptOpen {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc":
				// Cancelled picker: nothing happens.
				m.ClosePrompt()
				return m, nil
			case "enter":
				m.RunPrompt()
				return m, nil
			}
			var cmd tea.Cmd
			m.PromptInput, cmd = m.PromptInput.Update(msg)
			return m, cmd
		}

		if m.SwitcherOpen {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc", "ctrl+h":
				m.SwitcherOpen = false
				return m, nil
			case "up", "k":
				if len(m.Manager.Chats) == 0 {
					return m, nil
				}
				m.SwitcherIdx--
				if m.SwitcherIdx < 0 {
					m.SwitcherIdx = len(m.Manager.Chats) - 1
				}
				return m, nil
			case "down", "j":
				if len(m.Manager.Chats) == 0 {
					return m, nil
				}
				m.SwitcherIdx++
				if m.SwitcherIdx >= len(m.Manager.Chats) {
					m.SwitcherIdx = 0
				}
				return m, nil
			case "enter":
				if m.SwitcherIdx < len(m.Manager.Chats) {
					m.Manager.Select(m.Manager.Chats[m.SwitcherIdx])
					m.SyncInputFromSlot()
				}
				m.SwitcherOpen = false
				m.UpdateViewport()
				return m, nil
			}
			return m, nil
		}

		if m.SnapshotsOpen {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc", "ctrl+b":
				m.SnapshotsOpen = false
				m.SnapshotErr = nil
				return m, nil
			case "up", "k":
				if len(m.Snapshots) == 0 {
					return m, nil
				}
				m.SnapshotIdx--
				if m.SnapshotIdx < 0 {
					m.SnapshotIdx = len(m.Snapshots) - 1
				}
				return m, nil
			case "down", "j":
				if len(m.Snapshots) == 0 {
					return m, nil
				}
				m.SnapshotIdx++
				if m.SnapshotIdx >= len(m.Snapshots) {
					m.SnapshotIdx = 0
				}
				return m, nil
			case "left", "h":
				if m.SnapshotPage > 0 {
					m.SnapshotPage--
					m.RefreshSnapshots()
				}
				return m, nil
			case "right", "l":
				totalPages := (m.SnapshotCount + SnapshotPageSize - 1) / SnapshotPageSize
				if m.SnapshotPage < totalPages-1 {
					m.SnapshotPage++
					m.RefreshSnapshots()
				}
				return m, nil
			case "d":
				if m.SnapshotIdx < len(m.Snapshots) {
					if err := history.DeleteSnapshot(m.DB, m.Snapshots[m.SnapshotIdx].ID); err != nil {
						m.SnapshotErr = err
						return m, nil
					}
					m.RefreshSnapshots()
				}
				return m, nil
			case "enter":
				if m.SnapshotIdx < len(m.Snapshots) {
					if err := m.ReopenSnapshot(m.Snapshots[m.SnapshotIdx].ID); err != nil {
						m.SnapshotErr = err
						return m, nil
					}
					m.SnapshotsOpen = false
					m.SnapshotErr = nil
				}
				return m, nil
			}
			return m, nil
		}

		if m.ActionsOpen {
			return m.updateActionsModal(msg)
		}

		if m.ShortcutsOpen {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc", "enter", "ctrl+k":
				m.ShortcutsOpen = false
				return m, nil
			}
			return m, nil
		}

		if isNewlineShortcut(msg) {
			m.TextInput.InsertString("\n")
			m.updateInputLayout()
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyCtrlN:
			m.Manager.AddChat()
			m.SyncInputFromSlot()
			m.Status = "New chat"
			m.UpdateViewport()
			return m, nil

		case tea.KeyCtrlW:
			m.DeleteCurrentChat()
			return m, nil

		case tea.KeyCtrlH:
			m.SwitcherOpen = true
			m.SwitcherIdx = m.CurrentChatIndex()
			return m, nil

		case tea.KeyCtrlB:
			m.SnapshotsOpen = true
			m.SnapshotPage = 0
			m.RefreshSnapshots()
			return m, nil

		case tea.KeyCtrlO:
			m.OpenPrompt(PromptOpen, "")
			return m, nil

		case tea.KeyCtrlS:
			m.OpenPrompt(PromptSave, m.SuggestedPath(".json"))
			return m, nil

		case tea.KeyCtrlE:
			m.OpenPrompt(PromptExport, m.SuggestedPath(".txt"))
			return m, nil

		case tea.KeyCtrlG:
			m.OpenPrompt(PromptImport, "")
			return m, nil

		case tea.KeyCtrlT:
			name := ""
			if m.Manager.Current != nil {
				name = m.Manager.Current.Name
			}
			m.OpenPrompt(PromptRename, name)
			return m, nil

		case tea.KeyCtrlY:
			if err := m.Manager.CopyChat(); err != nil {
				m.Err = err
				m.Status = "Copy failed"
				return m, nil
			}
			if m.Manager.Current != nil {
				m.Status = "Transcript copied to clipboard"
			}
			return m, nil

		case tea.KeyCtrlR:
			m.Manager.ResetCurrentSettings()
			if m.Manager.Current != nil {
				m.Status = "Settings reset to defaults"
			}
			return m, nil

		case tea.KeyCtrlX:
			if m.Manager.Current != nil && len(m.Manager.Current.Messages) > 0 {
				m.ActionsOpen = true
				m.ActionsIdx = 0
			}
			return m, nil

		case tea.KeyCtrlK:
			m.ShortcutsOpen = true
			return m, nil

		case tea.KeyEnter:
			m.SubmitMessage()
			return m, nil
		}

	case ErrMsg:
		m.Err = msg
		m.UpdateViewport()
		return m, nil

	case tea.WindowSizeMsg:
		m.WindowWidth = msg.Width
		m.WindowHeight = msg.Height

		ModalWidth = msg.Width - 10
		if ModalWidth > 60 {
			ModalWidth = 60
		}
		if ModalWidth < 30 {
			ModalWidth = 30
		}

		chatWidth := msg.Width - 2
		m.Viewport.Width = chatWidth - 2

		m.updateInputLayout()
		glamourStyle := "dark"
		if !lipgloss.HasDarkBackground() {
			glamourStyle = "light"
		}
		m.Renderer, _ = glamour.NewTermRenderer(
			glamour.WithStylePath(glamourStyle),
			glamour.WithWordWrap(chatWidth-6),
		)
		m.UpdateViewport()
		return m, tea.Batch(tiCmd, vpCmd)
	}

	m.TextInput, tiCmd = m.TextInput.Update(msg)
	m.updateInputLayout()

	// Terminal background queries occasionally leak into the textarea.
	val := m.TextInput.Value()
	if strings.Contains(val, "]11;rgb:") || strings.Contains(val, "[1;1R") {
		m.TextInput.Reset()
	}

	m.Viewport, vpCmd = m.Viewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd)
}

func (m *Model) updateActionsModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	chat := m.Manager.Current
	if chat == nil {
		m.ActionsOpen = false
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "ctrl+x":
		m.ActionsOpen = false
		return m, nil
	case "up", "k":
		m.ActionsIdx--
		if m.ActionsIdx < 0 {
			m.ActionsIdx = len(chat.Messages) - 1
		}
		return m, nil
	case "down", "j":
		m.ActionsIdx++
		if m.ActionsIdx >= len(chat.Messages) {
			m.ActionsIdx = 0
		}
		return m, nil
	case "d":
		if m.ActionsIdx < len(chat.Messages) {
			if err := chat.PerformAction(chat.Messages[m.ActionsIdx].ID, models.ActionRemove); err != nil {
				m.Status = err.Error()
				return m, nil
			}
			if m.ActionsIdx >= len(chat.Messages) {
				m.ActionsIdx = len(chat.Messages) - 1
			}
			m.SyncInputFromSlot()
			m.Autosave()
			m.UpdateViewport()
		}
		return m, nil
	case "r":
		if m.ActionsIdx < len(chat.Messages) {
			if err := chat.PerformAction(chat.Messages[m.ActionsIdx].ID, models.ActionResend); err != nil {
				m.Status = err.Error()
				return m, nil
			}
			m.SyncInputFromSlot()
			m.ActionsOpen = false
			m.UpdateViewport()
		}
		return m, nil
	}
	return m, nil
}

func isNewlineShortcut(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "shift+enter", "shift+return", "ctrl+j", "ctrl+enter", "alt+enter":
		return true
	default:
		return false
	}
}
