package board

import "github.com/julianstephens/weekboard/internal/constants"

// Row is one employee line of the board with exactly seven tiles.
type Row struct {
	position int
	label    string
	included bool
	tiles    [constants.DaysPerWeek]Tile
}

func newRow(position int, label string) *Row {
	r := &Row{
		position: position,
		label:    label,
		included: true,
	}
	for col := range r.tiles {
		r.tiles[col] = newTile(position, col)
	}
	return r
}

// Position is the dense index of the row on its board.
func (r *Row) Position() int { return r.position }

// Label is the display text of the row.
func (r *Row) Label() string { return r.label }

// Included reports whether the row counts toward column totals.
func (r *Row) Included() bool { return r.included }

// Tile returns the tile for a weekday column.
func (r *Row) Tile(col int) (*Tile, bool) {
	if col < 0 || col >= constants.DaysPerWeek {
		return nil, false
	}
	return &r.tiles[col], true
}

// Tiles returns pointers to the seven tiles, Monday first.
func (r *Row) Tiles() []*Tile {
	out := make([]*Tile, constants.DaysPerWeek)
	for i := range r.tiles {
		out[i] = &r.tiles[i]
	}
	return out
}

// setPosition moves the row and keeps the tile back-references in step.
func (r *Row) setPosition(position int) {
	r.position = position
	for i := range r.tiles {
		r.tiles[i].rowPosition = position
	}
}
