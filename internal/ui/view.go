package ui

import (
	"fmt"
	"strings"
	"time"

	"vesper/internal/styles"

	"github.com/charmbracelet/lipgloss"
)

func (m *Model) RenderSwitcher() string {
	title := styles.ModalTitleStyle.Render(fmt.Sprintf("Chats (%d)", len(m.Manager.Chats)))

	var body string
	if len(m.Manager.Chats) == 0 {
		body = styles.ModalItemStyle.Render(lipgloss.NewStyle().Foreground(styles.HintColor).Render("No chats"))
	} else {
		items := make([]string, 0, len(m.Manager.Chats))
		for i, chat := range m.Manager.Chats {
			cursor := "  "
			if i == m.SwitcherIdx {
				cursor = "> "
			}
			marker := " "
			if chat == m.Manager.Current {
				marker = "●"
			}
			name := TruncateRunes(chat.Name, NamePreviewWidth)
			detail := lipgloss.NewStyle().Foreground(styles.HintColor).
				Render(fmt.Sprintf("%d msgs · %s", len(chat.Messages), chat.Settings.Model))

			itemContent := fmt.Sprintf("%s%s %s %s", cursor, marker, name, detail)
			if i == m.SwitcherIdx {
				items = append(items, styles.ModalSelectedStyle.Render(itemContent))
			} else {
				items = append(items, styles.ModalItemStyle.Render(itemContent))
			}
		}
		body = lipgloss.JoinVertical(lipgloss.Left, items...)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, body)
	hint := lipgloss.NewStyle().
		Foreground(styles.HintColor).
		Width(styles.ContentWidth).
		PaddingTop(1).
		Render("↑/↓: navigate • Enter: switch • Esc: close")

	return lipgloss.JoinVertical(lipgloss.Left, content, hint)
}

func (m *Model) RenderSnapshots() string {
	totalPages := (m.SnapshotCount + SnapshotPageSize - 1) / SnapshotPageSize
	if totalPages < 1 {
		totalPages = 1
	}
	title := styles.ModalTitleStyle.Render(fmt.Sprintf("Saved Chats (%d) - Page %d/%d", m.SnapshotCount, m.SnapshotPage+1, totalPages))

	var body string
	if m.SnapshotErr != nil {
		body = lipgloss.NewStyle().Width(styles.ContentWidth).
			Render(styles.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.SnapshotErr)))
	} else if len(m.Snapshots) == 0 {
		body = styles.ModalItemStyle.Render(lipgloss.NewStyle().Foreground(styles.HintColor).Render("No saved chats yet"))
	} else {
		items := make([]string, 0, len(m.Snapshots))
		for i, snap := range m.Snapshots {
			cursor := "  "
			if i == m.SnapshotIdx {
				cursor = "> "
			}
			timeStr := RelativeTime(time.Unix(snap.UpdatedAtUnix, 0))
			name := snap.Name
			if name == "" {
				name = "(unnamed)"
			}
			availableWidth := styles.ContentWidth - 2 - len(cursor) - 1 - len(timeStr)
			name = TruncateRunes(name, availableWidth)

			itemContent := fmt.Sprintf("%s%s %s", cursor, name, lipgloss.NewStyle().Foreground(styles.HintColor).Render(timeStr))
			if i == m.SnapshotIdx {
				items = append(items, styles.ModalSelectedStyle.Render(itemContent))
			} else {
				items = append(items, styles.ModalItemStyle.Render(itemContent))
			}
		}
		body = lipgloss.JoinVertical(lipgloss.Left, items...)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, body)
	hint := lipgloss.NewStyle().
		Foreground(styles.HintColor).
		Width(styles.ContentWidth).
		PaddingTop(1).
		Render("↑/↓: navigate • ←/→: page • Enter: reopen • d: delete • Esc: close")

	return lipgloss.JoinVertical(lipgloss.Left, content, hint)
}

func (m *Model) RenderActions() string {
	title := styles.ModalTitleStyle.Render("Messages")

	chat := m.Manager.Current
	var body string
	if chat == nil || len(chat.Messages) == 0 {
		body = styles.ModalItemStyle.Render(lipgloss.NewStyle().Foreground(styles.HintColor).Render("No messages"))
	} else {
		items := make([]string, 0, len(chat.Messages))
		for i, msg := range chat.Messages {
			cursor := "  "
			if i == m.ActionsIdx {
				cursor = "> "
			}
			flags := ""
			if !msg.CanRemove {
				flags = " ⬤"
			}
			if msg == chat.Current {
				flags += " (draft)"
			}
			itemContent := fmt.Sprintf("%s%-9s %s%s", cursor, msg.Role, MessagePreview(msg, NamePreviewWidth), flags)
			if i == m.ActionsIdx {
				items = append(items, styles.ModalSelectedStyle.Render(itemContent))
			} else {
				items = append(items, styles.ModalItemStyle.Render(itemContent))
			}
		}
		body = lipgloss.JoinVertical(lipgloss.Left, items...)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, body)
	hint := lipgloss.NewStyle().
		Foreground(styles.HintColor).
		Width(styles.ContentWidth).
		PaddingTop(1).
		Render("↑/↓: navigate • d: remove • r: resend • Esc: close")

	return lipgloss.JoinVertical(lipgloss.Left, content, hint)
}

func (m *Model) RenderShortcuts() string {
	title := styles.ModalTitleStyle.Render("Keyboard Shortcuts")

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Ctrl+N", "New Chat"},
		{"Ctrl+W", "Delete Chat"},
		{"Ctrl+H", "Switch Chat"},
		{"Ctrl+B", "Saved Chats"},
		{"Ctrl+O", "Open Chat File"},
		{"Ctrl+S", "Save Chat File"},
		{"Ctrl+E", "Export Transcript"},
		{"Ctrl+Y", "Copy Transcript"},
		{"Ctrl+G", "Import Chats"},
		{"Ctrl+T", "Rename Chat"},
		{"Ctrl+R", "Reset Settings"},
		{"Ctrl+X", "Message Actions"},
		{"Ctrl+K", "Shortcuts (this menu)"},
	}

	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Accent).
		Bold(true).
		Width(12)

	var items []string
	for _, s := range shortcuts {
		line := fmt.Sprintf("%s %s", keyStyle.Render(s.key), s.desc)
		items = append(items, styles.ModalItemStyle.Render(line))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinVertical(lipgloss.Left, items...))
	hint := lipgloss.NewStyle().
		Foreground(styles.HintColor).
		Width(styles.ContentWidth).
		PaddingTop(1).
		Render("Esc/Enter: close")

	return lipgloss.JoinVertical(lipgloss.Left, content, hint)
}

func (m *Model) RenderPrompt() string {
	titles := map[PromptKind]string{
		PromptOpen:   "Open Chat",
		PromptSave:   "Save Chat",
		PromptExport: "Export Transcript",
		PromptImport: "Import Chats",
		PromptRename: "Rename Chat",
	}
	title := styles.ModalTitleStyle.Render(titles[m.PromptKind])

	hint := lipgloss.NewStyle().
		Foreground(styles.HintColor).
		Width(styles.ContentWidth).
		PaddingTop(1).
		Render("Enter: confirm • Esc: cancel")

	return lipgloss.JoinVertical(lipgloss.Left, title, m.PromptInput.View(), hint)
}

func (m *Model) RenderBottomBar() string {
	chat := m.Manager.Current

	name := "no chat"
	model := "-"
	if chat != nil {
		name = TruncateRunes(chat.Name, NamePreviewWidth)
		model = chat.Settings.Model
	}

	badge := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(styles.FgPrimary).
		Padding(0, 1).
		Render(fmt.Sprintf("%d/%d", m.CurrentChatIndex()+1, len(m.Manager.Chats)))

	nameView := lipgloss.NewStyle().Foreground(styles.FgSecondary).Render(name)
	modelView := lipgloss.NewStyle().Foreground(styles.FgMuted).Render(model)

	status := m.Status
	statusView := lipgloss.NewStyle().Foreground(styles.FgMuted).Render(status)

	help := lipgloss.NewStyle().Foreground(styles.HintColor).Render("Help: ^K")

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, badge, "  ", nameView, "  ", modelView)
	rightSide := lipgloss.JoinHorizontal(lipgloss.Center, statusView, "  ", help)

	availableWidth := m.WindowWidth - lipgloss.Width(leftSide) - lipgloss.Width(rightSide) - 2
	if availableWidth < 0 {
		availableWidth = 0
	}
	spacer := strings.Repeat(" ", availableWidth)

	bar := lipgloss.JoinHorizontal(lipgloss.Center, leftSide, spacer, rightSide)

	return lipgloss.NewStyle().
		Width(m.WindowWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.BorderColor).
		Padding(0, 1).
		Render(bar)
}

func GetWelcomeScreen(width, height int) string {
	art := `
 ██╗   ██╗███████╗███████╗██████╗ ███████╗██████╗
 ██║   ██║██╔════╝██╔════╝██╔══██╗██╔════╝██╔══██╗
 ██║   ██║█████╗  ███████╗██████╔╝█████╗  ██████╔╝
 ╚██╗ ██╔╝██╔══╝  ╚════██║██╔═══╝ ██╔══╝  ██╔══██╗
  ╚████╔╝ ███████╗███████║██║     ███████╗██║  ██║
   ╚═══╝  ╚══════╝╚══════╝╚═╝     ╚══════╝╚═╝  ╚═╝
`
	subtitle := "Your chats, your files. Ctrl+K for shortcuts."

	styledArt := styles.WelcomeArtStyle.Render(art)
	styledSubtitle := styles.WelcomeSubtitleStyle.Render(subtitle)

	content := lipgloss.JoinVertical(lipgloss.Center, styledArt, "", styledSubtitle)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) UpdateViewport() {
	chat := m.Manager.Current
	if chat == nil {
		m.Viewport.SetContent(GetWelcomeScreen(m.Viewport.Width, m.Viewport.Height))
		return
	}

	var blocks []string
	for _, msg := range chat.Messages {
		if msg == chat.Current {
			continue // the draft lives in the input box
		}
		if !msg.HasText() {
			continue
		}
		blocks = append(blocks, m.FormatMessage(msg))
	}

	if len(blocks) == 0 {
		m.Viewport.SetContent(GetWelcomeScreen(m.Viewport.Width, m.Viewport.Height))
		return
	}

	m.Viewport.SetContent(strings.Join(blocks, "\n\n"))
	m.Viewport.GotoBottom()
}

func (m *Model) View() string {
	inputWidth := m.WindowWidth - 4
	inputBox := styles.InputBoxStyle.Width(inputWidth).Render(m.TextInput.View())

	chatContent := lipgloss.JoinVertical(lipgloss.Center,
		styles.TitleStyle.Render("VESPER"),
		"",
		m.Viewport.View(),
		"",
		inputBox,
	)
	chatArea := lipgloss.PlaceHorizontal(m.WindowWidth, lipgloss.Center, chatContent)
	content := lipgloss.JoinVertical(lipgloss.Left, chatArea, m.RenderBottomBar())

	var modal string
	switch {
	case m.SwitcherOpen:
		modal = m.RenderSwitcher()
	case m.SnapshotsOpen:
		modal = m.RenderSnapshots()
	case m.ActionsOpen:
		modal = m.RenderActions()
	case m.ShortcutsOpen:
		modal = m.RenderShortcuts()
	case m.PromptOpen:
		modal = m.RenderPrompt()
	default:
		return content
	}

	modal = styles.ModalStyle.Width(ModalWidth).Render(modal)
	return lipgloss.Place(
		m.WindowWidth,
		m.WindowHeight,
		lipgloss.Center,
		lipgloss.Center,
		modal,
	)
}
