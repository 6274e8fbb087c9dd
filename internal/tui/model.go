package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/weekboard/internal/controller"
	"github.com/julianstephens/weekboard/internal/export"
	"github.com/julianstephens/weekboard/internal/models"
	"github.com/julianstephens/weekboard/internal/tui/components/grid"
)

type SessionState int

const (
	StateBoard SessionState = iota
	StateFilter
	StateForm
)

// SavedMsg reports a finished autosave and the state it wrote.
type SavedMsg struct {
	At    time.Time
	State models.BoardState
}

// SaveFailedMsg reports an autosave error. The board keeps its state.
type SaveFailedMsg struct{ Err error }

// BackupMsg reports a periodic backup.
type BackupMsg struct {
	Path string
	Err  error
}

// StoreChangedMsg means another process wrote the store.
type StoreChangedMsg struct{}

type reloadedMsg struct {
	state models.BoardState
	err   error
}

type exportDoneMsg struct{ result export.Result }

type Config struct {
	Controller *controller.Controller
	Exporter   *export.Exporter
	BoardKey   string
	// Reload reads the saved board back from the store. Optional.
	Reload func() (models.BoardState, error)
	// Pending reports unsaved edits. Optional.
	Pending func() bool
	// LoadErr is shown on start when the saved board could not be read.
	LoadErr error
}

type Model struct {
	ctrl     *controller.Controller
	exporter *export.Exporter
	reload   func() (models.BoardState, error)
	pending  func() bool
	boardKey string

	state    SessionState
	keys     KeyMap
	help     help.Model
	filter   textinput.Model
	form     *huh.Form
	formKind formKind
	values   *FormValues

	// cursor is a board row position and a column position.
	row, col int

	status    string
	statusErr bool
	lastSaved time.Time
	// written is the last state this session saved.
	written    models.BoardState
	hasWritten bool
	quitting   bool
	width      int
	height     int
}

func NewModel(cfg Config) Model {
	ctrl := cfg.Controller
	if ctrl == nil {
		ctrl = controller.New(controller.Config{})
	}
	exp := cfg.Exporter
	if exp == nil {
		exp = export.New(export.Config{})
	}

	fi := textinput.New()
	fi.Placeholder = "Filter rows by label..."
	fi.Prompt = "/ "
	fi.CharLimit = 50
	fi.Width = 30

	m := Model{
		ctrl:     ctrl,
		exporter: exp,
		reload:   cfg.Reload,
		pending:  cfg.Pending,
		boardKey: cfg.BoardKey,
		state:    StateBoard,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		filter:   fi,
	}
	if cfg.LoadErr != nil {
		m.setError(fmt.Errorf("%w (a backup was taken, starting with an empty board)", cfg.LoadErr))
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) ShortHelp() []key.Binding {
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

// Cursor returns the selected row position and column.
func (m Model) Cursor() (int, int) {
	return m.row, m.col
}

// Status returns the current status line text.
func (m Model) Status() string {
	return m.status
}

// visible returns the row positions the filter lets through.
func (m Model) visible() []int {
	return grid.Visible(m.ctrl.Board(), m.filter.Value())
}

// rowSelected reports whether the cursor is on a row the filter shows.
func (m Model) rowSelected() bool {
	for _, pos := range m.visible() {
		if pos == m.row {
			return true
		}
	}
	return false
}

// clampCursor moves the cursor onto a visible row after the board or the
// filter changed.
func (m *Model) clampCursor() {
	rows := m.visible()
	if len(rows) == 0 {
		m.row = 0
		return
	}
	for _, pos := range rows {
		if pos == m.row {
			return
		}
	}
	best := rows[len(rows)-1]
	for _, pos := range rows {
		if pos >= m.row {
			best = pos
			break
		}
	}
	m.row = best
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}
