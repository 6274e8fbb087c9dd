package cli

import (
	"github.com/julianstephens/weekboard/internal/board"
	"github.com/julianstephens/weekboard/internal/controller"
)

type RowCmd struct {
	Add     RowAddCmd     `cmd:"" help:"Add an employee row at the bottom."`
	Remove  RowRemoveCmd  `cmd:"" help:"Remove a row."`
	Rename  RowRenameCmd  `cmd:"" help:"Change a row label."`
	Include RowIncludeCmd `cmd:"" help:"Count a row toward staffing totals."`
	Exclude RowExcludeCmd `cmd:"" help:"Stop counting a row toward staffing totals."`
	Up      RowUpCmd      `cmd:"" help:"Move a row up one position."`
	Down    RowDownCmd    `cmd:"" help:"Move a row down one position."`
}

type RowAddCmd struct {
	Label string `arg:"" help:"Row label, usually the employee name."`
}

func (cmd *RowAddCmd) Run(ctx *Context) error {
	_, res, err := ctx.Apply(Static(controller.AddRow(cmd.Label)))
	if err != nil {
		return err
	}
	ctx.printf("✓ Added row %d: %s\n", res.Row+1, cmd.Label)
	return nil
}

type RowRemoveCmd struct {
	Row string `arg:"" help:"Row number (1-based) or label."`
}

func (cmd *RowRemoveCmd) Run(ctx *Context) error {
	var label string
	_, _, err := ctx.Apply(func(b *board.Board) (controller.Intent, error) {
		pos, err := ResolveRow(b, cmd.Row)
		if err != nil {
			return controller.Intent{}, err
		}
		r, _ := b.Row(pos)
		label = r.Label()
		return controller.RemoveRow(pos), nil
	})
	if err != nil {
		return err
	}
	ctx.printf("✓ Removed row: %s\n", label)
	return nil
}

type RowRenameCmd struct {
	Row   string `arg:"" help:"Row number (1-based) or label."`
	Label string `arg:"" help:"New label."`
}

func (cmd *RowRenameCmd) Run(ctx *Context) error {
	_, res, err := ctx.Apply(func(b *board.Board) (controller.Intent, error) {
		pos, err := ResolveRow(b, cmd.Row)
		if err != nil {
			return controller.Intent{}, err
		}
		return controller.SetRowHeader(pos, cmd.Label), nil
	})
	if err != nil {
		return err
	}
	ctx.printf("✓ Row %d is now: %s\n", res.Row+1, cmd.Label)
	return nil
}

type RowIncludeCmd struct {
	Row string `arg:"" help:"Row number (1-based) or label."`
}

func (cmd *RowIncludeCmd) Run(ctx *Context) error {
	return setIncluded(ctx, cmd.Row, true)
}

type RowExcludeCmd struct {
	Row string `arg:"" help:"Row number (1-based) or label."`
}

func (cmd *RowExcludeCmd) Run(ctx *Context) error {
	return setIncluded(ctx, cmd.Row, false)
}

func setIncluded(ctx *Context, ref string, included bool) error {
	_, res, err := ctx.Apply(func(b *board.Board) (controller.Intent, error) {
		pos, err := ResolveRow(b, ref)
		if err != nil {
			return controller.Intent{}, err
		}
		return controller.SetRowIncluded(pos, included), nil
	})
	if err != nil {
		return err
	}
	if included {
		ctx.printf("✓ Row %d counts toward totals\n", res.Row+1)
	} else {
		ctx.printf("✓ Row %d no longer counts toward totals\n", res.Row+1)
	}
	return nil
}

type RowUpCmd struct {
	Row string `arg:"" help:"Row number (1-based) or label."`
}

func (cmd *RowUpCmd) Run(ctx *Context) error {
	return moveRow(ctx, cmd.Row, controller.MoveRowUp)
}

type RowDownCmd struct {
	Row string `arg:"" help:"Row number (1-based) or label."`
}

func (cmd *RowDownCmd) Run(ctx *Context) error {
	return moveRow(ctx, cmd.Row, controller.MoveRowDown)
}

func moveRow(ctx *Context, ref string, intent func(int) controller.Intent) error {
	_, res, err := ctx.Apply(func(b *board.Board) (controller.Intent, error) {
		pos, err := ResolveRow(b, ref)
		if err != nil {
			return controller.Intent{}, err
		}
		return intent(pos), nil
	})
	if err != nil {
		return err
	}
	ctx.printf("✓ Row moved to position %d\n", res.Row+1)
	return nil
}
