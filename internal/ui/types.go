package ui

import (
	"database/sql"

	"vesper/internal/chats"
	"vesper/internal/history"
	"vesper/internal/models"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
)

var ModalWidth = 60

const (
	SnapshotPageSize = 10
	NamePreviewWidth = 32
)

// PromptKind selects what a confirmed path prompt does. The prompt stands
// in for the platform file picker; esc cancels and nothing happens.
type PromptKind int

const (
	PromptNone PromptKind = iota
	PromptOpen
	PromptSave
	PromptExport
	PromptImport
	PromptRename
)

type ErrMsg error

type Model struct {
	Manager  *chats.Manager
	DB       *sql.DB
	DBErr    error
	Renderer *glamour.TermRenderer

	Viewport  viewport.Model
	TextInput textarea.Model

	WindowWidth  int
	WindowHeight int

	// Snapshot IDs per chat so autosave updates rows instead of
	// multiplying them.
	SnapshotIDs map[*models.Chat]string

	// Chat switcher modal (in-memory collection)
	SwitcherOpen bool
	SwitcherIdx  int

	// Saved-chats modal (history database)
	SnapshotsOpen bool
	SnapshotIdx   int
	SnapshotPage  int
	SnapshotCount int
	Snapshots     []history.Snapshot
	SnapshotErr   error

	// Message actions modal
	ActionsOpen bool
	ActionsIdx  int

	ShortcutsOpen bool

	// Path prompt
	PromptOpen  bool
	PromptKind  PromptKind
	PromptInput textinput.Model

	Status string
	Err    error
}
