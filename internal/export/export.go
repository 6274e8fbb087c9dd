// Package export renders a board week into the fixed spreadsheet layout.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/julianstephens/weekboard/internal/constants"
	"github.com/julianstephens/weekboard/internal/logger"
	"github.com/julianstephens/weekboard/internal/models"
	"github.com/julianstephens/weekboard/internal/utils"
)

// ErrWeekNotSet is returned when the board has no year and ISO week.
var ErrWeekNotSet = errors.New("board has no week selected")

type Status int

const (
	Success Status = iota
	Cancelled
	Failed
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Cancelled:
		return "cancelled"
	default:
		return "failed"
	}
}

// Result is the outcome of one export. Err is set only for Failed.
type Result struct {
	Status Status
	Path   string
	Err    error
}

// Chooser picks the destination given the default file name. Returning
// ok=false cancels the export. An empty path means "the default name in the
// output directory"; a directory means "the default name in that directory".
type Chooser func(defaultName string) (path string, ok bool)

// DefaultChooser accepts the default destination.
func DefaultChooser(string) (string, bool) { return "", true }

type Config struct {
	// TemplatePath is an optional .xlsx file with the target layout. When
	// empty an equivalent sheet is generated.
	TemplatePath string
	OutputDir    string
	Sheet        string
	WorkText     string
}

type Exporter struct {
	cfg Config
}

func New(cfg Config) *Exporter {
	if cfg.Sheet == "" {
		cfg.Sheet = constants.DefaultExportSheet
	}
	if cfg.WorkText == "" {
		cfg.WorkText = constants.DefaultWorkText
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	return &Exporter{cfg: cfg}
}

// TileText maps a tile state to its cell text.
func (e *Exporter) TileText(s models.TileState) string {
	switch s.Normalize() {
	case models.TileWork:
		return e.cfg.WorkText
	case models.TileLeave:
		return "U"
	default:
		return "A"
	}
}

// Export writes state to the chosen destination. The destination is only
// replaced once the whole workbook has been written.
func (e *Exporter) Export(ctx context.Context, state models.BoardState, choose Chooser) Result {
	if !state.HasWeek() {
		return failed("", ErrWeekNotSet)
	}
	if err := utils.ValidateISOWeek(state.Year, state.Week); err != nil {
		return failed("", err)
	}

	name, err := DefaultFilename(state.Year, state.Week)
	if err != nil {
		return failed("", err)
	}

	if choose == nil {
		choose = DefaultChooser
	}
	chosen, ok := choose(name)
	if !ok {
		logger.Info("Export cancelled", "week", state.Week, "year", state.Year)
		return Result{Status: Cancelled}
	}
	dest := e.destination(chosen, name)

	if err := ctx.Err(); err != nil {
		return failed(dest, err)
	}

	f, err := e.workbook()
	if err != nil {
		return failed(dest, err)
	}
	defer f.Close()

	if err := e.fill(f, state); err != nil {
		return failed(dest, fmt.Errorf("failed to fill workbook: %w", err))
	}

	if err := ctx.Err(); err != nil {
		return failed(dest, err)
	}

	if err := writeAtomic(f, dest); err != nil {
		return failed(dest, err)
	}

	logger.Info("Board exported", "path", dest, "rows", len(state.Rows))
	return Result{Status: Success, Path: dest}
}

func failed(path string, err error) Result {
	logger.Warn("Export failed", "path", path, "error", err)
	return Result{Status: Failed, Path: path, Err: err}
}

func (e *Exporter) destination(chosen, name string) string {
	if chosen == "" {
		return filepath.Join(e.cfg.OutputDir, name)
	}
	if info, err := os.Stat(chosen); err == nil && info.IsDir() {
		return filepath.Join(chosen, name)
	}
	if !strings.EqualFold(filepath.Ext(chosen), constants.ExportFileExtension) {
		chosen += constants.ExportFileExtension
	}
	return chosen
}

func (e *Exporter) workbook() (*excelize.File, error) {
	if e.cfg.TemplatePath == "" {
		return e.generateTemplate()
	}

	f, err := excelize.OpenFile(e.cfg.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open template %s: %w", e.cfg.TemplatePath, err)
	}
	idx, err := f.GetSheetIndex(e.cfg.Sheet)
	if err != nil || idx < 0 {
		f.Close()
		return nil, fmt.Errorf("template %s has no sheet %q", e.cfg.TemplatePath, e.cfg.Sheet)
	}
	return f, nil
}

func (e *Exporter) fill(f *excelize.File, state models.BoardState) error {
	sheet := e.cfg.Sheet
	days, err := WeekRange(state.Year, state.Week)
	if err != nil {
		return err
	}

	for i, day := range days {
		col := constants.ExportFirstDayColumn + i
		if err := setCell(f, sheet, col, constants.ExportWeekdayRow, constants.WeekdayNames[i]); err != nil {
			return err
		}
		if err := setCell(f, sheet, col, constants.ExportDateRow, day.Format(constants.DateFormat)); err != nil {
			return err
		}
	}

	for i, row := range state.Rows {
		line := SectionRow(i)
		if err := f.SetCellValue(sheet, fmt.Sprintf("%s%d", constants.ExportLabelColumn, line), row.Label); err != nil {
			return err
		}
		for col := 0; col < constants.DaysPerWeek; col++ {
			tile := models.TileAvailable
			if col < len(row.Tiles) {
				tile = row.Tiles[col]
			}
			if err := setCell(f, sheet, constants.ExportFirstDayColumn+col, line, e.TileText(tile)); err != nil {
				return err
			}
		}
	}
	return nil
}

// SectionRow is the first spreadsheet line of the i-th board row.
func SectionRow(i int) int {
	return constants.ExportFirstSectionRow + i*constants.ExportSectionStride
}

// DayCell names the cell holding day col (0 = Monday) on spreadsheet line.
func DayCell(col, line int) string {
	name, _ := excelize.CoordinatesToCellName(constants.ExportFirstDayColumn+col, line)
	return name
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

// writeAtomic writes the workbook to a uniquely named file next to dest and
// renames it into place.
func writeAtomic(f *excelize.File, dest string) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmpPath := filepath.Join(dir, "."+constants.AppName+"-"+uuid.NewString()+constants.ExportFileExtension)
	tmp, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer os.Remove(tmpPath)

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("failed to move workbook into place: %w", err)
	}
	return nil
}
