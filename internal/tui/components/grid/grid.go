// Package grid renders a board as a fixed-width table of rows and weekday
// columns with staffing totals underneath.
package grid

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/weekboard/internal/board"
	"github.com/julianstephens/weekboard/internal/constants"
	"github.com/julianstephens/weekboard/internal/models"
	"github.com/julianstephens/weekboard/internal/utils"
)

const (
	indexWidth = 4
	labelWidth = 18
	cellWidth  = 8
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			Align(lipgloss.Center).
			Width(cellWidth)

	labelStyle = lipgloss.NewStyle().
			Width(labelWidth).
			MaxWidth(labelWidth)

	indexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(indexWidth)

	cellStyle = lipgloss.NewStyle().
			Align(lipgloss.Center).
			Width(cellWidth)

	availableStyle = cellStyle.Foreground(lipgloss.Color("244"))

	workStyle = cellStyle.
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("28")).
			Bold(true)

	leaveStyle = cellStyle.
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("214"))

	excludedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	cursorStyle = lipgloss.NewStyle().Reverse(true)

	validStyle = cellStyle.Foreground(lipgloss.Color("42")).Bold(true)

	invalidStyle = cellStyle.
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("160")).
			Bold(true)

	extraStyle = cellStyle.Foreground(lipgloss.Color("220")).Bold(true)
)

// Options controls what Render highlights. A negative cursor hides it.
type Options struct {
	CursorRow int
	CursorCol int
	// Filter hides rows whose label does not contain it (case-insensitive).
	// Totals still cover every included row.
	Filter string
	// Plain drops colors, for non-terminal output.
	Plain bool
}

// Visible returns the positions of rows matching filter, in board order.
func Visible(b *board.Board, filter string) []int {
	filter = strings.ToLower(strings.TrimSpace(filter))
	var out []int
	for _, r := range b.Rows() {
		if filter == "" || strings.Contains(strings.ToLower(r.Label()), filter) {
			out = append(out, r.Position())
		}
	}
	return out
}

// Render draws the board.
func Render(b *board.Board, opts Options) string {
	var lines []string
	lines = append(lines, header(b, opts))
	if b.Year() > 0 {
		lines = append(lines, dates(b, opts))
	}

	visible := Visible(b, opts.Filter)
	if len(visible) == 0 {
		msg := "  No rows yet."
		if b.RowCount() > 0 {
			msg = fmt.Sprintf("  No rows match %q.", opts.Filter)
		}
		lines = append(lines, msg)
	}
	for _, pos := range visible {
		r, _ := b.Row(pos)
		lines = append(lines, row(r, opts))
	}

	lines = append(lines, totals(b, opts), required(b, opts))
	return strings.Join(lines, "\n")
}

func header(b *board.Board, opts Options) string {
	cells := []string{
		render(indexStyle, "#", opts),
		render(labelStyle.Bold(true), "Employee", opts),
	}
	for _, c := range b.Columns() {
		cells = append(cells, render(headerStyle, constants.WeekdayShortNames[c.Position()], opts))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func dates(b *board.Board, opts Options) string {
	days, err := utils.WeekRange(b.Year(), b.Week())
	if err != nil {
		return ""
	}
	cells := []string{
		render(indexStyle, "", opts),
		render(labelStyle.Foreground(lipgloss.Color("241")), fmt.Sprintf("KW %d/%d", b.Week(), b.Year()), opts),
	}
	for _, d := range days {
		cells = append(cells, render(headerStyle.Bold(false).Foreground(lipgloss.Color("241")), d.Format(constants.ShortDateFormat), opts))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func row(r *board.Row, opts Options) string {
	label := r.Label()
	ls := labelStyle
	if !r.Included() {
		label += " (x)"
		ls = ls.Inherit(excludedStyle)
	}
	if opts.CursorRow == r.Position() && opts.CursorCol < 0 {
		ls = ls.Inherit(cursorStyle)
	}

	cells := []string{
		render(indexStyle, fmt.Sprintf("%d", r.Position()+1), opts),
		render(ls, label, opts),
	}
	for _, t := range r.Tiles() {
		st := stateStyle(t.State())
		if opts.CursorRow == r.Position() && opts.CursorCol == t.ColumnPosition() {
			st = st.Inherit(cursorStyle).Reverse(true)
		}
		cells = append(cells, render(st, string(t.State()), opts))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func totals(b *board.Board, opts Options) string {
	cells := []string{
		render(indexStyle, "", opts),
		render(labelStyle.Bold(true), "Working", opts),
	}
	for _, s := range b.ColumnsStatus() {
		text := fmt.Sprintf("%d", s.WorkCount)
		st := validStyle
		switch {
		case !s.Valid:
			st = invalidStyle
			text += " !"
		case s.HasExtraOne:
			st = extraStyle
			text += " +1"
		}
		cells = append(cells, render(st, text, opts))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func required(b *board.Board, opts Options) string {
	cells := []string{
		render(indexStyle, "", opts),
		render(labelStyle.Foreground(lipgloss.Color("241")), "Required", opts),
	}
	for _, c := range b.Columns() {
		cells = append(cells, render(cellStyle.Foreground(lipgloss.Color("241")), fmt.Sprintf("%d", c.RequiredWorkers()), opts))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func stateStyle(s models.TileState) lipgloss.Style {
	switch s {
	case models.TileWork:
		return workStyle
	case models.TileLeave:
		return leaveStyle
	default:
		return availableStyle
	}
}

func render(st lipgloss.Style, text string, opts Options) string {
	if opts.Plain {
		w := st.GetWidth()
		return lipgloss.NewStyle().Width(w).MaxWidth(w).Align(st.GetAlign()).Render(text)
	}
	return st.Render(text)
}
