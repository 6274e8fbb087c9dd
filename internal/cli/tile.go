package cli

import (
	"fmt"

	"github.com/julianstephens/weekboard/internal/board"
	"github.com/julianstephens/weekboard/internal/constants"
	"github.com/julianstephens/weekboard/internal/controller"
	"github.com/julianstephens/weekboard/internal/models"
)

type ToggleCmd struct {
	Row string `arg:"" help:"Row number (1-based) or label."`
	Day string `arg:"" help:"Weekday name or number (1=Monday)."`
}

func (cmd *ToggleCmd) Run(ctx *Context) error {
	col, err := ParseDay(cmd.Day)
	if err != nil {
		return err
	}
	b, res, err := ctx.Apply(func(b *board.Board) (controller.Intent, error) {
		pos, err := ResolveRow(b, cmd.Row)
		if err != nil {
			return controller.Intent{}, err
		}
		return controller.ToggleTile(pos, col), nil
	})
	if err != nil {
		return err
	}
	ctx.printf("✓ %s on %s: %s\n", rowLabel(b, res.Row), constants.WeekdayNames[col], res.State)
	return nil
}

type SetCmd struct {
	Row   string `arg:"" help:"Row number (1-based) or label."`
	Days  string `arg:"" help:"Comma-separated weekdays, or 'all'."`
	State string `arg:"" help:"Tile state: A|available, Praca|work, U|leave."`
}

func (cmd *SetCmd) Run(ctx *Context) error {
	state, ok := models.ParseTileState(cmd.State)
	if !ok {
		return fmt.Errorf("invalid tile state: %s (expected A, Praca or U)", cmd.State)
	}
	cols, err := ParseDays(cmd.Days)
	if err != nil {
		return err
	}

	b, res, err := ctx.ApplyAll(func(b *board.Board) ([]controller.Intent, error) {
		pos, err := ResolveRow(b, cmd.Row)
		if err != nil {
			return nil, err
		}
		intents := make([]controller.Intent, 0, len(cols))
		for _, col := range cols {
			intents = append(intents, controller.SetTile(pos, col, state))
		}
		return intents, nil
	})
	if err != nil {
		return err
	}
	ctx.printf("✓ %s: %d day(s) set to %s\n", rowLabel(b, res.Row), len(cols), state)
	return nil
}

type RequiredCmd struct {
	Days  string `arg:"" help:"Comma-separated weekdays, or 'all'."`
	Count int    `arg:"" help:"Workers required per day (must be positive)."`
}

func (cmd *RequiredCmd) Run(ctx *Context) error {
	if cmd.Count <= 0 {
		return fmt.Errorf("required workers must be positive, got %d", cmd.Count)
	}
	cols, err := ParseDays(cmd.Days)
	if err != nil {
		return err
	}
	intents := make([]controller.Intent, 0, len(cols))
	for _, col := range cols {
		intents = append(intents, controller.SetColumnRequired(col, cmd.Count))
	}
	if _, _, err := ctx.ApplyAll(func(*board.Board) ([]controller.Intent, error) { return intents, nil }); err != nil {
		return err
	}
	ctx.printf("✓ Required workers set to %d for %d day(s)\n", cmd.Count, len(cols))
	return nil
}

func rowLabel(b *board.Board, pos int) string {
	if r, ok := b.Row(pos); ok && r.Label() != "" {
		return r.Label()
	}
	return fmt.Sprintf("row %d", pos+1)
}
