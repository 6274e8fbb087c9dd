package utils

import (
	"testing"
	"time"
)

func TestISOWeeksInYear(t *testing.T) {
	tests := []struct {
		year     int
		expected int
	}{
		{2015, 53},
		{2020, 53},
		{2021, 52},
		{2024, 52},
		{2026, 53},
	}

	for _, tt := range tests {
		if got := ISOWeeksInYear(tt.year); got != tt.expected {
			t.Errorf("ISOWeeksInYear(%d) = %d, want %d", tt.year, got, tt.expected)
		}
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		week     int
		expected string
	}{
		{name: "week 1 starting in previous year", year: 2025, week: 1, expected: "2024-12-30"},
		{name: "week 1 starting in same year", year: 2024, week: 1, expected: "2024-01-01"},
		{name: "week 1 of 2021 starts in january", year: 2021, week: 1, expected: "2021-01-04"},
		{name: "mid year", year: 2026, week: 42, expected: "2026-10-12"},
		{name: "53rd week", year: 2020, week: 53, expected: "2020-12-28"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WeekStart(tt.year, tt.week)
			if err != nil {
				t.Fatalf("WeekStart(%d, %d) returned error: %v", tt.year, tt.week, err)
			}
			if got.Format("2006-01-02") != tt.expected {
				t.Errorf("WeekStart(%d, %d) = %s, want %s", tt.year, tt.week, got.Format("2006-01-02"), tt.expected)
			}
			if got.Weekday() != time.Monday {
				t.Errorf("WeekStart(%d, %d) is a %s, want Monday", tt.year, tt.week, got.Weekday())
			}
			y, w := got.ISOWeek()
			if y != tt.year || w != tt.week {
				t.Errorf("ISOWeek of %s = (%d, %d), want (%d, %d)", got.Format("2006-01-02"), y, w, tt.year, tt.week)
			}
		})
	}
}

func TestWeekStartRejectsInvalidWeeks(t *testing.T) {
	tests := []struct {
		year int
		week int
	}{
		{2025, 0},
		{2025, 53},
		{2025, -1},
		{0, 10},
	}

	for _, tt := range tests {
		if _, err := WeekStart(tt.year, tt.week); err == nil {
			t.Errorf("WeekStart(%d, %d) expected error, got nil", tt.year, tt.week)
		}
	}
}

func TestWeekRange(t *testing.T) {
	days, err := WeekRange(2026, 1)
	if err != nil {
		t.Fatalf("WeekRange failed: %v", err)
	}

	if FormatDate(days[0]) != "29.12.2025" {
		t.Errorf("first day = %s, want 29.12.2025", FormatDate(days[0]))
	}
	if FormatDate(days[6]) != "04.01.2026" {
		t.Errorf("last day = %s, want 04.01.2026", FormatDate(days[6]))
	}
	if days[6].Weekday() != time.Sunday {
		t.Errorf("last day is a %s, want Sunday", days[6].Weekday())
	}
}
