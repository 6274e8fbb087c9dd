package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/weekboard/internal/constants"
)

// ISOWeeksInYear returns 52 or 53, the number of ISO 8601 weeks in year.
// December 28th always falls in the last ISO week of its year.
func ISOWeeksInYear(year int) int {
	_, week := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return week
}

// ValidateISOWeek checks that week exists in year.
func ValidateISOWeek(year, week int) error {
	if year < 1 {
		return fmt.Errorf("invalid year: %d", year)
	}
	if last := ISOWeeksInYear(year); week < 1 || week > last {
		return fmt.Errorf("invalid week %d for %d (expected 1-%d)", week, year, last)
	}
	return nil
}

// WeekStart returns the Monday that starts ISO week of year, in UTC.
// Week 1 is the week containing January 4th, so its Monday is the Monday on or
// before the year's first Thursday.
func WeekStart(year, week int) (time.Time, error) {
	if err := ValidateISOWeek(year, week); err != nil {
		return time.Time{}, err
	}
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7 // Monday = 0
	firstMonday := jan4.AddDate(0, 0, -offset)
	return firstMonday.AddDate(0, 0, 7*(week-1)), nil
}

// WeekRange returns the seven dates of an ISO week, Monday first.
func WeekRange(year, week int) ([constants.DaysPerWeek]time.Time, error) {
	var days [constants.DaysPerWeek]time.Time
	start, err := WeekStart(year, week)
	if err != nil {
		return days, err
	}
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days, nil
}

// CurrentISOWeek returns the ISO year and week containing now.
func CurrentISOWeek(now time.Time) (int, int) {
	return now.ISOWeek()
}

// FormatDate formats a date as DD.MM.YYYY.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}
