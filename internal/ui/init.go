package ui

import (
	"database/sql"

	"vesper/internal/chats"
	"vesper/internal/models"
	"vesper/internal/styles"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func InitialModel(defaults models.ChatSettings, dbConn *sql.DB, dbErr error) Model {
	ti := textarea.New()
	ti.Placeholder = "Type a message..."
	ti.Prompt = "❯ "
	ti.ShowLineNumbers = false
	ti.CharLimit = 0
	ti.MaxHeight = 6
	ti.SetHeight(2)
	ti.SetWidth(80)
	ti.FocusedStyle.Prompt = lipgloss.NewStyle().Foreground(styles.FgPrimary).Bold(true)
	ti.BlurredStyle.Prompt = lipgloss.NewStyle().Foreground(styles.FgPrimary).Bold(true)
	ti.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(styles.FgMuted)
	ti.BlurredStyle.Placeholder = lipgloss.NewStyle().Foreground(styles.FgMuted)
	ti.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ti.BlurredStyle.CursorLine = lipgloss.NewStyle()
	ti.Focus()

	pi := textinput.New()
	pi.Prompt = "Path: "
	pi.CharLimit = 0

	vp := viewport.New(60, 15)

	mgr := chats.NewManager(defaults)
	mgr.AddChat()

	return Model{
		Manager:     mgr,
		DB:          dbConn,
		DBErr:       dbErr,
		Renderer:    nil,
		Viewport:    vp,
		TextInput:   ti,
		PromptInput: pi,
		SnapshotIDs: map[*models.Chat]string{},
	}
}

func (m *Model) Init() tea.Cmd {
	return m.TextInput.Cursor.BlinkCmd()
}

func NewProgram(defaults models.ChatSettings, dbConn *sql.DB, dbErr error) *tea.Program {
	styles.InitTheme()
	m := InitialModel(defaults, dbConn, dbErr)
	return tea.NewProgram(&m, tea.WithAltScreen())
}
