package constants

import "time"

const (
	AppName           = "weekboard"
	Version           = "v0.3.0"
	DefaultConfigDir  = "~/.config/weekboard"
	DefaultConfigFile = "~/.config/weekboard/config.yaml"
	DefaultStorePath  = "~/.config/weekboard/weekboard.db"
	DefaultBoardKey   = "current"

	// DateFormat is the date format used for export headers and file names (DD.MM.YYYY)
	DateFormat = "02.01.2006"

	// ShortDateFormat is used in the default export filename (DD.MM)
	ShortDateFormat = "02.01"

	// DaysPerWeek is the fixed number of columns on a board
	DaysPerWeek = 7

	// SundayPosition is the column position of Sunday (Monday = 0)
	SundayPosition = 6

	// History constants
	DefaultHistoryCapacity = 100

	// Autosave constants
	DefaultAutosaveDebounce = 500 * time.Millisecond

	// Staffing constants
	DefaultRequiredWorkers = 1
	MaxRequiredWorkersUI   = 20

	// Backup constants
	MaxBackups         = 14
	BackupDirName      = "backups"
	BackupFilePrefix   = "weekboard-"
	DefaultBackupEvery = 30 * time.Minute

	// Lock constants
	LockFileName = "weekboard.lock"

	// Export constants
	DefaultExportSheet    = "Grafik"
	DefaultWorkText       = "7:00-15:00"
	ExportFileExtension   = ".xlsx"
	ExportDateRow         = 3
	ExportWeekdayRow      = 2
	ExportFirstSectionRow = 5
	ExportSectionStride   = 3
	ExportLabelColumn     = "B"
	ExportFirstDayColumn  = 3 // column C
)

// WeekdayNames are the display names of the board columns, Monday first.
var WeekdayNames = [DaysPerWeek]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// WeekdayShortNames are the abbreviated column headers, Monday first.
var WeekdayShortNames = [DaysPerWeek]string{
	"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun",
}
