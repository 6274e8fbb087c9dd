package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/weekboard/internal/constants"
	"github.com/julianstephens/weekboard/internal/controller"
	"github.com/julianstephens/weekboard/internal/export"
	"github.com/julianstephens/weekboard/internal/logger"
	"github.com/julianstephens/weekboard/internal/models"
	"github.com/julianstephens/weekboard/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case SavedMsg:
		m.lastSaved = msg.At
		m.written = msg.State
		m.hasWritten = true
		return m, nil

	case SaveFailedMsg:
		m.setError(fmt.Errorf("autosave failed: %w", msg.Err))
		return m, nil

	case BackupMsg:
		if msg.Err != nil {
			m.setError(fmt.Errorf("backup failed: %w", msg.Err))
		} else {
			m.setStatus("Backup written: " + filepath.Base(msg.Path))
		}
		return m, nil

	case StoreChangedMsg:
		return m, m.reloadCmd()

	case reloadedMsg:
		m.handleReload(msg)
		return m, nil

	case exportDoneMsg:
		m.handleExport(msg.result)
		return m, nil
	}

	switch m.state {
	case StateForm:
		return m.updateForm(msg)
	case StateFilter:
		return m.updateFilter(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := m.ctrl.Board()

	if m.keys.rowScoped(msg) && !m.rowSelected() {
		m.setStatus("No row selected")
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Left):
		if m.col > 0 {
			m.col--
		}
	case key.Matches(msg, m.keys.Right):
		if m.col < constants.DaysPerWeek-1 {
			m.col++
		}
	case key.Matches(msg, m.keys.Toggle):
		m.dispatch(controller.ToggleTile(m.row, m.col))
	case key.Matches(msg, m.keys.SetAvailable):
		m.dispatch(controller.SetTile(m.row, m.col, models.TileAvailable))
	case key.Matches(msg, m.keys.SetWork):
		m.dispatch(controller.SetTile(m.row, m.col, models.TileWork))
	case key.Matches(msg, m.keys.SetLeave):
		m.dispatch(controller.SetTile(m.row, m.col, models.TileLeave))
	case key.Matches(msg, m.keys.IncludeRow):
		if r, ok := b.Row(m.row); ok {
			m.dispatch(controller.SetRowIncluded(m.row, !r.Included()))
		}
	case key.Matches(msg, m.keys.MoveUp):
		if res, ok := m.dispatch(controller.MoveRowUp(m.row)); ok {
			m.row = res.Row
		}
	case key.Matches(msg, m.keys.MoveDown):
		if res, ok := m.dispatch(controller.MoveRowDown(m.row)); ok {
			m.row = res.Row
		}
	case key.Matches(msg, m.keys.MoreRequired):
		if c, ok := b.Column(m.col); ok && c.RequiredWorkers() < constants.MaxRequiredWorkersUI {
			m.dispatch(controller.SetColumnRequired(m.col, c.RequiredWorkers()+1))
		}
	case key.Matches(msg, m.keys.LessRequired):
		if c, ok := b.Column(m.col); ok {
			m.dispatch(controller.SetColumnRequired(m.col, c.RequiredWorkers()-1))
		}
	case key.Matches(msg, m.keys.Undo):
		if _, ok := m.dispatch(controller.Undo()); !ok {
			m.setStatus("Nothing to undo")
		}
		m.clampCursor()
	case key.Matches(msg, m.keys.Redo):
		if _, ok := m.dispatch(controller.Redo()); !ok {
			m.setStatus("Nothing to redo")
		}
		m.clampCursor()
	case key.Matches(msg, m.keys.Filter):
		m.state = StateFilter
		return m, m.filter.Focus()
	case key.Matches(msg, m.keys.AddRow):
		return m, m.openForm(formAddRow)
	case key.Matches(msg, m.keys.RenameRow):
		if _, ok := b.Row(m.row); ok {
			return m, m.openForm(formRenameRow)
		}
	case key.Matches(msg, m.keys.DeleteRow):
		if _, ok := b.Row(m.row); ok {
			return m, m.openForm(formDeleteRow)
		}
	case key.Matches(msg, m.keys.Week):
		return m, m.openForm(formWeek)
	case key.Matches(msg, m.keys.Export):
		if b.Year() == 0 {
			m.setError(fmt.Errorf("%w: press 'w' to pick one", export.ErrWeekNotSet))
			return m, nil
		}
		return m, m.openForm(formExport)
	}
	return m, nil
}

// dispatch sends in through the controller and reports the outcome in the
// status line.
func (m *Model) dispatch(in controller.Intent) (controller.Result, bool) {
	res, err := m.ctrl.Dispatch(in)
	if err != nil {
		logger.Error("Dispatch failed", "kind", in.Kind, "error", err)
		m.setError(err)
		return res, false
	}
	if res.OK {
		m.status = ""
		m.statusErr = false
	}
	return res, res.OK
}

func (m *Model) moveCursor(delta int) {
	rows := m.visible()
	if len(rows) == 0 {
		return
	}
	idx := 0
	for i, pos := range rows {
		if pos == m.row {
			idx = i
			break
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(rows) {
		idx = len(rows) - 1
	}
	m.row = rows[idx]
}

func (m Model) updateFilter(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEsc:
			m.filter.SetValue("")
			m.filter.Blur()
			m.state = StateBoard
			m.clampCursor()
			return m, nil
		case tea.KeyEnter:
			m.filter.Blur()
			m.state = StateBoard
			m.clampCursor()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.clampCursor()
	return m, cmd
}

func (m *Model) openForm(kind formKind) tea.Cmd {
	b := m.ctrl.Board()
	m.values = &FormValues{}
	m.formKind = kind

	switch kind {
	case formAddRow:
		m.form = NewRowForm("New row", m.values)
	case formRenameRow:
		r, _ := b.Row(m.row)
		m.values.Label = r.Label()
		m.form = NewRowForm("Rename row", m.values)
	case formDeleteRow:
		r, _ := b.Row(m.row)
		m.form = NewDeleteForm(r.Label(), m.values)
	case formWeek:
		year, week := b.Year(), b.Week()
		if year == 0 {
			year, week = utils.CurrentISOWeek(time.Now())
		}
		m.values.Year = strconv.Itoa(year)
		m.values.Week = strconv.Itoa(week)
		m.form = NewWeekForm(m.values)
	case formExport:
		m.form = NewExportForm(m.values)
	}

	m.state = StateForm
	return m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		return m.closeForm(false)
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.closeForm(true)
	case huh.StateAborted:
		return m.closeForm(false)
	}
	return m, cmd
}

// closeForm applies or discards the open form and returns to the board.
func (m Model) closeForm(completed bool) (tea.Model, tea.Cmd) {
	kind, fv := m.formKind, m.values
	m.state = StateBoard
	m.form = nil
	m.values = nil

	if !completed {
		if kind == formExport {
			return m, m.exportCmd("", false)
		}
		return m, nil
	}

	switch kind {
	case formAddRow:
		if res, ok := m.dispatch(controller.AddRow(fv.Label)); ok {
			m.row = res.Row
			// A new row that the filter hides would leave the cursor nowhere.
			m.filter.SetValue("")
		}
	case formRenameRow:
		m.dispatch(controller.SetRowHeader(m.row, fv.Label))
	case formDeleteRow:
		if fv.Confirm {
			m.dispatch(controller.RemoveRow(m.row))
			m.clampCursor()
		}
	case formWeek:
		year, week, err := parseWeek(fv)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.dispatch(controller.SetYearAndWeek(year, week))
	case formExport:
		return m, m.exportCmd(fv.Path, true)
	}
	return m, nil
}

func (m Model) exportCmd(path string, ok bool) tea.Cmd {
	state := m.ctrl.Board().State()
	exp := m.exporter
	return func() tea.Msg {
		res := exp.Export(context.Background(), state, func(string) (string, bool) {
			return path, ok
		})
		return exportDoneMsg{result: res}
	}
}

func (m *Model) handleExport(res export.Result) {
	switch res.Status {
	case export.Success:
		m.setStatus("Exported to " + res.Path)
	case export.Cancelled:
		m.setStatus("Export cancelled")
	default:
		m.setError(fmt.Errorf("export failed: %w", res.Err))
	}
}

func (m Model) reloadCmd() tea.Cmd {
	if m.reload == nil {
		return nil
	}
	reload := m.reload
	return func() tea.Msg {
		state, err := reload()
		return reloadedMsg{state: state, err: err}
	}
}

func (m *Model) handleReload(msg reloadedMsg) {
	if msg.err != nil {
		m.setError(fmt.Errorf("failed to reload board: %w", msg.err))
		return
	}
	// Our own autosave also changes the file.
	if cmp.Equal(msg.state, m.ctrl.Board().State()) {
		return
	}
	// The file still holds our last save while newer edits wait for the next one.
	if m.hasWritten && cmp.Equal(msg.state, m.written) {
		return
	}
	if m.pending != nil && m.pending() {
		m.setError(errors.New("board changed on disk, keeping unsaved local edits"))
		return
	}
	m.ctrl.Reset(msg.state)
	m.clampCursor()
	m.setStatus("Reloaded changes from disk")
	logger.Info("Board reloaded after external change", "key", m.boardKey)
}
