package export

import (
	"fmt"
	"time"

	"github.com/julianstephens/weekboard/internal/constants"
	"github.com/julianstephens/weekboard/internal/utils"
)

// WeekRange returns Monday..Sunday of the ISO week.
func WeekRange(year, week int) ([constants.DaysPerWeek]time.Time, error) {
	return utils.WeekRange(year, week)
}

// ISOWeeksInYear returns 52 or 53.
func ISOWeeksInYear(year int) int {
	return utils.ISOWeeksInYear(year)
}

// DefaultFilename is "{week}KW {Mon DD.MM}-{Sun DD.MM}.xlsx".
func DefaultFilename(year, week int) (string, error) {
	days, err := WeekRange(year, week)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%dKW %s-%s%s",
		week,
		days[0].Format(constants.ShortDateFormat),
		days[constants.DaysPerWeek-1].Format(constants.ShortDateFormat),
		constants.ExportFileExtension,
	), nil
}
