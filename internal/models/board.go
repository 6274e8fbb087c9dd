package models

// ColumnState is the saved form of one weekday column.
type ColumnState struct {
	Position        int `json:"position"`
	RequiredWorkers int `json:"required_workers"`
}

// RowState is the saved form of one employee row. Tiles are indexed by column
// position, Monday first.
type RowState struct {
	Position int         `json:"position"`
	Label    string      `json:"label"`
	Included bool        `json:"included"`
	Tiles    []TileState `json:"tiles"`
}

// BoardState is the plain, fully serializable form of a board. It backs both
// persistence and undo/redo snapshots.
type BoardState struct {
	Year    int           `json:"year,omitempty"`
	Week    int           `json:"week,omitempty"`
	Columns []ColumnState `json:"columns"`
	Rows    []RowState    `json:"rows"`
}

// Clone returns a deep copy sharing no slices with s.
func (s BoardState) Clone() BoardState {
	out := BoardState{
		Year: s.Year,
		Week: s.Week,
	}
	if s.Columns != nil {
		out.Columns = make([]ColumnState, len(s.Columns))
		copy(out.Columns, s.Columns)
	}
	if s.Rows != nil {
		out.Rows = make([]RowState, len(s.Rows))
		for i, row := range s.Rows {
			out.Rows[i] = row
			if row.Tiles != nil {
				out.Rows[i].Tiles = make([]TileState, len(row.Tiles))
				copy(out.Rows[i].Tiles, row.Tiles)
			}
		}
	}
	return out
}

// HasWeek reports whether a year and ISO week have been selected.
func (s BoardState) HasWeek() bool {
	return s.Year > 0 && s.Week > 0
}
