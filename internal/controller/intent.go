package controller

import "github.com/julianstephens/weekboard/internal/models"

// Kind names one entry of the mutation vocabulary.
type Kind string

const (
	KindAddRow            Kind = "add-row"
	KindRemoveRow         Kind = "remove-row"
	KindSetRowHeader      Kind = "set-row-header"
	KindSetRowIncluded    Kind = "set-row-included"
	KindToggleTile        Kind = "toggle-tile"
	KindSetTile           Kind = "set-tile"
	KindSetColumnRequired Kind = "set-column-required"
	KindMoveRowUp         Kind = "move-row-up"
	KindMoveRowDown       Kind = "move-row-down"
	KindSetYearAndWeek    Kind = "set-year-and-week"
	KindUndo              Kind = "undo"
	KindRedo              Kind = "redo"
)

// Intent is a user request with its payload. Only the fields relevant to
// Kind are read.
type Intent struct {
	Kind     Kind
	Row      int
	Col      int
	Text     string
	Included bool
	State    models.TileState
	Count    int
	Year     int
	Week     int
}

func AddRow(label string) Intent { return Intent{Kind: KindAddRow, Text: label} }

func RemoveRow(row int) Intent { return Intent{Kind: KindRemoveRow, Row: row} }

func SetRowHeader(row int, text string) Intent {
	return Intent{Kind: KindSetRowHeader, Row: row, Text: text}
}

func SetRowIncluded(row int, included bool) Intent {
	return Intent{Kind: KindSetRowIncluded, Row: row, Included: included}
}

func ToggleTile(row, col int) Intent { return Intent{Kind: KindToggleTile, Row: row, Col: col} }

func SetTile(row, col int, state models.TileState) Intent {
	return Intent{Kind: KindSetTile, Row: row, Col: col, State: state}
}

func SetColumnRequired(col, count int) Intent {
	return Intent{Kind: KindSetColumnRequired, Col: col, Count: count}
}

func MoveRowUp(row int) Intent { return Intent{Kind: KindMoveRowUp, Row: row} }

func MoveRowDown(row int) Intent { return Intent{Kind: KindMoveRowDown, Row: row} }

func SetYearAndWeek(year, week int) Intent {
	return Intent{Kind: KindSetYearAndWeek, Year: year, Week: week}
}

func Undo() Intent { return Intent{Kind: KindUndo} }

func Redo() Intent { return Intent{Kind: KindRedo} }
