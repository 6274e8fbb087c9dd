package board

import "github.com/julianstephens/weekboard/internal/models"

// ColumnStatus is the derived staffing state of one weekday column.
type ColumnStatus struct {
	Position        int
	Name            string
	RequiredWorkers int
	WorkCount       int
	Valid           bool
	IsSunday        bool
	HasExtraOne     bool
}

// WorkCount counts Work tiles in col across included rows only.
func (b *Board) WorkCount(col int) int {
	if !validColumn(col) {
		return 0
	}
	count := 0
	for _, r := range b.rows {
		if !r.included {
			continue
		}
		if r.tiles[col].state == models.TileWork {
			count++
		}
	}
	return count
}

// IsColumnValid applies the staffing rule to col. Sunday must match the
// required count exactly; Monday through Saturday may carry one extra worker.
func (b *Board) IsColumnValid(col int) bool {
	c, ok := b.Column(col)
	if !ok {
		return false
	}
	return columnValid(c, b.WorkCount(col))
}

// HasExtraOne reports a weekday column staffed with exactly one worker over
// the requirement. It is always false on Sunday.
func (b *Board) HasExtraOne(col int) bool {
	c, ok := b.Column(col)
	if !ok {
		return false
	}
	return !c.IsSunday() && b.WorkCount(col) == c.requiredWorkers+1
}

// ColumnsStatus computes the status of all seven columns from the current
// state. Nothing is cached between calls.
func (b *Board) ColumnsStatus() []ColumnStatus {
	out := make([]ColumnStatus, 0, len(b.columns))
	for _, c := range b.columns {
		count := b.WorkCount(c.position)
		out = append(out, ColumnStatus{
			Position:        c.position,
			Name:            c.Name(),
			RequiredWorkers: c.requiredWorkers,
			WorkCount:       count,
			Valid:           columnValid(c, count),
			IsSunday:        c.IsSunday(),
			HasExtraOne:     !c.IsSunday() && count == c.requiredWorkers+1,
		})
	}
	return out
}

// AllColumnsValid reports whether every column passes its staffing rule.
func (b *Board) AllColumnsValid() bool {
	for _, s := range b.ColumnsStatus() {
		if !s.Valid {
			return false
		}
	}
	return true
}

func columnValid(c *Column, count int) bool {
	if c.IsSunday() {
		return count == c.requiredWorkers
	}
	return count == c.requiredWorkers || count == c.requiredWorkers+1
}
