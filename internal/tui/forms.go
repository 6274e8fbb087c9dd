package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/weekboard/internal/utils"
)

type formKind int

const (
	formAddRow formKind = iota
	formRenameRow
	formDeleteRow
	formWeek
	formExport
)

// FormValues backs the huh fields. It lives behind a pointer so the values
// survive the Model being copied between updates.
type FormValues struct {
	Label   string
	Year    string
	Week    string
	Path    string
	Confirm bool
}

func validLabel(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("label cannot be empty")
	}
	return nil
}

// NewRowForm asks for a row label, used for both adding and renaming.
func NewRowForm(title string, fv *FormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder("Employee name").
				Value(&fv.Label).
				Validate(validLabel),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewDeleteForm confirms removing a row.
func NewDeleteForm(label string, fv *FormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete row %q?", label)).
				Description("Undo brings it back.").
				Affirmative("Delete").
				Negative("Keep").
				Value(&fv.Confirm),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewWeekForm picks the ISO year and week.
func NewWeekForm(fv *FormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Year").
				Value(&fv.Year).
				Validate(func(s string) error {
					y, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || y < 1 {
						return fmt.Errorf("year must be a positive number")
					}
					return nil
				}),
			huh.NewInput().
				Title("ISO week").
				Description("1-52, or 53 in long years").
				Value(&fv.Week).
				Validate(func(s string) error {
					w, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || w < 1 || w > 53 {
						return fmt.Errorf("week must be 1-53")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// parseWeek turns the week form into a validated year and week.
func parseWeek(fv *FormValues) (int, int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(fv.Year))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year: %s", fv.Year)
	}
	week, err := strconv.Atoi(strings.TrimSpace(fv.Week))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid week: %s", fv.Week)
	}
	if err := utils.ValidateISOWeek(year, week); err != nil {
		return 0, 0, err
	}
	return year, week, nil
}

// NewExportForm asks where to write the workbook.
func NewExportForm(fv *FormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Export to").
				Description("File or directory; empty uses the configured output directory").
				Value(&fv.Path),
		),
	).WithTheme(huh.ThemeDracula())
}
