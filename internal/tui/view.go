package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/weekboard/internal/tui/components/grid"
	"github.com/julianstephens/weekboard/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateForm:
		content = m.form.View()
	default:
		content = grid.Render(m.ctrl.Board(), grid.Options{
			CursorRow: m.row,
			CursorCol: m.col,
			Filter:    m.filter.Value(),
		})
	}

	parts := []string{m.viewTitle(), "", content, ""}
	if line := m.viewFilter(); line != "" {
		parts = append(parts, line)
	}
	parts = append(parts, m.viewStatus(), m.help.View(m))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) viewTitle() string {
	b := m.ctrl.Board()
	title := titleStyle.Render("weekboard")
	info := []string{m.boardKey}
	if b.Year() > 0 {
		week := fmt.Sprintf("KW %d/%d", b.Week(), b.Year())
		if days, err := utils.WeekRange(b.Year(), b.Week()); err == nil {
			week += fmt.Sprintf(" (%s - %s)", utils.FormatDate(days[0]), utils.FormatDate(days[len(days)-1]))
		}
		info = append(info, week)
	} else {
		info = append(info, "no week selected")
	}
	return title + " " + statusStyle.Render(strings.Join(info, " · "))
}

func (m Model) viewFilter() string {
	if m.state == StateFilter {
		return m.filter.View()
	}
	if v := m.filter.Value(); v != "" {
		return filterStyle.Render(fmt.Sprintf("filter: %q (/ to change, esc in filter to clear)", v))
	}
	return ""
}

func (m Model) viewStatus() string {
	var parts []string
	if m.ctrl.Board().AllColumnsValid() {
		parts = append(parts, okStyle.Render("✓ all days staffed"))
	} else {
		parts = append(parts, dangerStyle.Render("⚠ staffing rule broken"))
	}

	h := m.ctrl.History()
	parts = append(parts, statusStyle.Render(fmt.Sprintf("undo %d · redo %d", h.UndoDepth(), h.RedoDepth())))

	if !m.lastSaved.IsZero() {
		parts = append(parts, statusStyle.Render("saved "+m.lastSaved.Format("15:04:05")))
	}
	if m.status != "" {
		if m.statusErr {
			parts = append(parts, errorStyle.Render(m.status))
		} else {
			parts = append(parts, statusStyle.Render(m.status))
		}
	}
	return strings.Join(parts, "  ")
}
