package board

import (
	"github.com/julianstephens/weekboard/internal/constants"
	"github.com/julianstephens/weekboard/internal/models"
	"github.com/julianstephens/weekboard/internal/utils"
)

// State exports the board as a plain value. The result shares nothing with the
// live board.
func (b *Board) State() models.BoardState {
	s := models.BoardState{
		Year:    b.year,
		Week:    b.week,
		Columns: make([]models.ColumnState, 0, len(b.columns)),
		Rows:    make([]models.RowState, 0, len(b.rows)),
	}
	for _, c := range b.columns {
		s.Columns = append(s.Columns, models.ColumnState{
			Position:        c.position,
			RequiredWorkers: c.requiredWorkers,
		})
	}
	for _, r := range b.rows {
		tiles := make([]models.TileState, constants.DaysPerWeek)
		for i := range r.tiles {
			tiles[i] = r.tiles[i].state
		}
		s.Rows = append(s.Rows, models.RowState{
			Position: r.position,
			Label:    r.label,
			Included: r.included,
			Tiles:    tiles,
		})
	}
	return s
}

// FromState builds a new board from a saved state.
func FromState(s models.BoardState) *Board {
	b := New()
	b.Restore(s)
	return b
}

// Restore replaces the whole board content with s.
//
// Saved state is read leniently: rows keep their slice order and are
// renumbered, missing tiles default to Available, unknown tile labels become
// Available, column entries outside 0..6 or with a non-positive count are
// skipped, and an invalid year/week pair is cleared.
func (b *Board) Restore(s models.BoardState) {
	for i := range b.columns {
		b.columns[i] = newColumn(i, constants.DefaultRequiredWorkers)
	}
	for _, cs := range s.Columns {
		if !validColumn(cs.Position) {
			continue
		}
		b.columns[cs.Position].SetRequiredWorkers(cs.RequiredWorkers)
	}

	b.rows = make([]*Row, 0, len(s.Rows))
	for _, rs := range s.Rows {
		r := newRow(len(b.rows), rs.Label)
		r.included = rs.Included
		for col := 0; col < constants.DaysPerWeek && col < len(rs.Tiles); col++ {
			r.tiles[col].setState(rs.Tiles[col])
		}
		b.rows = append(b.rows, r)
	}
	b.renumber()

	b.year, b.week = 0, 0
	if utils.ValidateISOWeek(s.Year, s.Week) == nil {
		b.year, b.week = s.Year, s.Week
	}
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	return FromState(b.State())
}
