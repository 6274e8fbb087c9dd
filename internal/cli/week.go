package cli

import (
	"time"

	"github.com/julianstephens/weekboard/internal/controller"
	"github.com/julianstephens/weekboard/internal/utils"
)

type WeekCmd struct {
	Year int `arg:"" optional:"" help:"ISO year. Defaults to the current week."`
	Week int `arg:"" optional:"" help:"ISO week number."`
}

func (cmd *WeekCmd) Run(ctx *Context) error {
	year, week := cmd.Year, cmd.Week
	if year == 0 && week == 0 {
		year, week = utils.CurrentISOWeek(time.Now())
	}
	if err := utils.ValidateISOWeek(year, week); err != nil {
		return err
	}

	if _, _, err := ctx.Apply(Static(controller.SetYearAndWeek(year, week))); err != nil {
		return err
	}

	days, err := utils.WeekRange(year, week)
	if err != nil {
		return err
	}
	ctx.printf("✓ Week %d/%d: %s - %s\n", week, year, utils.FormatDate(days[0]), utils.FormatDate(days[len(days)-1]))
	return nil
}
