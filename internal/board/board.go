// Package board holds the in-memory weekly schedule: employee rows by weekday
// columns, the structural operations on them and the per-column staffing rules.
//
// A Board is not safe for concurrent use. Callers that need to hand the board to
// another goroutine (for example to save it) pass State(), which is a deep copy.
package board

import (
	"github.com/julianstephens/weekboard/internal/constants"
	"github.com/julianstephens/weekboard/internal/models"
	"github.com/julianstephens/weekboard/internal/utils"
)

// Board is the aggregate that owns every row, column and tile.
type Board struct {
	columns [constants.DaysPerWeek]*Column
	rows    []*Row
	year    int
	week    int
}

// New returns an empty board whose columns require the default worker count.
func New() *Board {
	return NewWithRequired(constants.DefaultRequiredWorkers)
}

// NewWithRequired returns an empty board whose columns all require n workers.
// Non-positive n falls back to the default.
func NewWithRequired(n int) *Board {
	b := &Board{}
	for i := range b.columns {
		b.columns[i] = newColumn(i, n)
	}
	return b
}

// RowCount returns the number of rows.
func (b *Board) RowCount() int { return len(b.rows) }

// Row returns the row at position.
func (b *Board) Row(position int) (*Row, bool) {
	if !b.validRow(position) {
		return nil, false
	}
	return b.rows[position], true
}

// Rows returns the rows in board order. The slice is a copy; the rows are not.
func (b *Board) Rows() []*Row {
	out := make([]*Row, len(b.rows))
	copy(out, b.rows)
	return out
}

// Column returns the column at a weekday position.
func (b *Board) Column(position int) (*Column, bool) {
	if !validColumn(position) {
		return nil, false
	}
	return b.columns[position], true
}

// Columns returns the seven columns, Monday first.
func (b *Board) Columns() []*Column {
	out := make([]*Column, constants.DaysPerWeek)
	copy(out, b.columns[:])
	return out
}

// Tile returns the tile at (row, col).
func (b *Board) Tile(row, col int) (*Tile, bool) {
	r, ok := b.Row(row)
	if !ok {
		return nil, false
	}
	return r.Tile(col)
}

// Year is the selected ISO year, 0 when unset.
func (b *Board) Year() int { return b.year }

// Week is the selected ISO week, 0 when unset.
func (b *Board) Week() int { return b.week }

// AddRow appends a row with seven Available tiles and returns it.
func (b *Board) AddRow(label string) *Row {
	r := newRow(len(b.rows), label)
	b.rows = append(b.rows, r)
	return r
}

// RemoveRow deletes the row at position and renumbers the rows after it.
func (b *Board) RemoveRow(position int) bool {
	if !b.validRow(position) {
		return false
	}
	b.rows = append(b.rows[:position], b.rows[position+1:]...)
	b.renumber()
	return true
}

// MoveRowUp swaps the row with its predecessor.
func (b *Board) MoveRowUp(position int) bool {
	if !b.validRow(position) || position == 0 {
		return false
	}
	b.swap(position, position-1)
	return true
}

// MoveRowDown swaps the row with its successor.
func (b *Board) MoveRowDown(position int) bool {
	if !b.validRow(position) || position == len(b.rows)-1 {
		return false
	}
	b.swap(position, position+1)
	return true
}

// SetRowHeader replaces the label of the row at position.
func (b *Board) SetRowHeader(position int, text string) bool {
	r, ok := b.Row(position)
	if !ok {
		return false
	}
	r.label = text
	return true
}

// SetRowIncluded sets whether the row counts toward column totals.
func (b *Board) SetRowIncluded(position int, included bool) bool {
	r, ok := b.Row(position)
	if !ok {
		return false
	}
	r.included = included
	return true
}

// ToggleTileState advances the tile at (row, col) and returns its new state.
// It returns ok=false and leaves the board untouched for invalid coordinates.
func (b *Board) ToggleTileState(row, col int) (models.TileState, bool) {
	t, ok := b.Tile(row, col)
	if !ok {
		return "", false
	}
	return t.Toggle(), true
}

// SetTileState writes a state directly. Unknown states are stored as Available.
func (b *Board) SetTileState(row, col int, state models.TileState) bool {
	t, ok := b.Tile(row, col)
	if !ok {
		return false
	}
	t.setState(state)
	return true
}

// SetColumnRequiredWorkers writes n when col is a valid weekday and n > 0.
func (b *Board) SetColumnRequiredWorkers(col, n int) bool {
	c, ok := b.Column(col)
	if !ok {
		return false
	}
	return c.SetRequiredWorkers(n)
}

// SetYearAndWeek selects the ISO week used for date labels and export.
func (b *Board) SetYearAndWeek(year, week int) bool {
	if err := utils.ValidateISOWeek(year, week); err != nil {
		return false
	}
	b.year = year
	b.week = week
	return true
}

func (b *Board) swap(i, j int) {
	b.rows[i], b.rows[j] = b.rows[j], b.rows[i]
	b.renumber()
}

// renumber restores dense row positions 0..N-1 and the tiles' row references.
// Every structural mutation calls it before returning.
func (b *Board) renumber() {
	for i, r := range b.rows {
		r.setPosition(i)
	}
}

func (b *Board) validRow(position int) bool {
	return position >= 0 && position < len(b.rows)
}

func validColumn(position int) bool {
	return position >= 0 && position < constants.DaysPerWeek
}
