package models

// TileState is the duty state of a single day-cell. The string values are the
// labels written to saved state and shown on the board.
type TileState string

const (
	TileAvailable TileState = "A"
	TileWork      TileState = "Praca"
	TileLeave     TileState = "U"
)

// tileCycle is the fixed order used when toggling a tile.
var tileCycle = []TileState{TileAvailable, TileWork, TileLeave}

// TileStates returns the known states in cycling order.
func TileStates() []TileState {
	out := make([]TileState, len(tileCycle))
	copy(out, tileCycle)
	return out
}

// Valid reports whether s is one of the three known states.
func (s TileState) Valid() bool {
	for _, known := range tileCycle {
		if s == known {
			return true
		}
	}
	return false
}

// Normalize maps unknown states to TileAvailable.
func (s TileState) Normalize() TileState {
	if s.Valid() {
		return s
	}
	return TileAvailable
}

// Next returns the state following s in the cycle, wrapping from Leave back to
// Available. An unknown state is treated as Available first, so its successor
// is Work.
func (s TileState) Next() TileState {
	s = s.Normalize()
	for i, known := range tileCycle {
		if known == s {
			return tileCycle[(i+1)%len(tileCycle)]
		}
	}
	return TileAvailable
}

// Counted reports whether the state counts toward staffing totals.
func (s TileState) Counted() bool {
	return s == TileWork
}

// ParseTileState accepts the stored labels as well as the english names used on
// the command line ("available", "work", "leave"). Unknown input yields
// TileAvailable and ok=false.
func ParseTileState(s string) (TileState, bool) {
	switch s {
	case string(TileAvailable), "a", "available":
		return TileAvailable, true
	case string(TileWork), "praca", "work", "w", "W":
		return TileWork, true
	case string(TileLeave), "u", "leave", "l", "L":
		return TileLeave, true
	}
	return TileAvailable, false
}
