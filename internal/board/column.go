package board

import "github.com/julianstephens/weekboard/internal/constants"

// Column is the per-weekday staffing configuration.
type Column struct {
	position        int
	requiredWorkers int
}

func newColumn(position, required int) *Column {
	if required <= 0 {
		required = constants.DefaultRequiredWorkers
	}
	return &Column{position: position, requiredWorkers: required}
}

// Position is the fixed weekday index, Monday = 0 through Sunday = 6.
func (c *Column) Position() int { return c.position }

// RequiredWorkers is the configured number of Work tiles expected.
func (c *Column) RequiredWorkers() int { return c.requiredWorkers }

// Name returns the weekday name of the column.
func (c *Column) Name() string { return constants.WeekdayNames[c.position] }

// IsSunday reports whether the column uses the exact-match staffing rule.
func (c *Column) IsSunday() bool { return c.position == constants.SundayPosition }

// SetRequiredWorkers stores n when it is positive. Non-positive values are
// ignored and the previous count is kept.
func (c *Column) SetRequiredWorkers(n int) bool {
	if n <= 0 {
		return false
	}
	c.requiredWorkers = n
	return true
}
