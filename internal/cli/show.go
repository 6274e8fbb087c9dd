package cli

import "github.com/julianstephens/weekboard/internal/tui/components/grid"

type ShowCmd struct {
	Filter string `short:"f" help:"Only show rows whose label contains this text."`
	Plain  bool   `help:"Disable colors."`
}

func (cmd *ShowCmd) Run(ctx *Context) error {
	b, err := ctx.LoadBoard()
	if err != nil {
		return err
	}

	// lipgloss already drops colors when stdout is not a terminal.
	plain := cmd.Plain || ctx.Out != nil
	ctx.println(grid.Render(b, grid.Options{
		CursorRow: -1,
		CursorCol: -1,
		Filter:    cmd.Filter,
		Plain:     plain,
	}))
	return nil
}
