package board

import "github.com/julianstephens/weekboard/internal/models"

// Tile is one day-cell of a row.
type Tile struct {
	rowPosition    int
	columnPosition int
	state          models.TileState
}

func newTile(row, col int) Tile {
	return Tile{
		rowPosition:    row,
		columnPosition: col,
		state:          models.TileAvailable,
	}
}

// RowPosition is the position of the owning row.
func (t *Tile) RowPosition() int { return t.rowPosition }

// ColumnPosition is the weekday of the tile (Monday = 0).
func (t *Tile) ColumnPosition() int { return t.columnPosition }

// State returns the current duty state.
func (t *Tile) State() models.TileState { return t.state }

// Toggle advances the tile to the next state in the cycle and returns it.
func (t *Tile) Toggle() models.TileState {
	t.state = t.state.Next()
	return t.state
}

func (t *Tile) setState(s models.TileState) {
	t.state = s.Normalize()
}
