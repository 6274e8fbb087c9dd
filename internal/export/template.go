package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/julianstephens/weekboard/internal/constants"
)

// generateTemplate builds an empty workbook with the export layout: weekday
// names and dates above the grid, one three-line section per employee.
func (e *Exporter) generateTemplate() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := e.layout(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to lay out template: %w", err)
	}
	return f, nil
}

func (e *Exporter) layout(f *excelize.File) error {
	sheet := e.cfg.Sheet
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return err
	}

	first, err := excelize.ColumnNumberToName(constants.ExportFirstDayColumn)
	if err != nil {
		return err
	}
	last, err := excelize.ColumnNumberToName(constants.ExportFirstDayColumn + constants.DaysPerWeek - 1)
	if err != nil {
		return err
	}

	label := constants.ExportLabelColumn
	if err := f.SetColWidth(sheet, label, label, 24); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, first, last, 14); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet,
		fmt.Sprintf("%s%d", first, constants.ExportWeekdayRow),
		fmt.Sprintf("%s%d", last, constants.ExportDateRow),
		header); err != nil {
		return err
	}
	return f.SetCellValue(sheet, fmt.Sprintf("%s%d", label, constants.ExportDateRow), "Employee")
}
