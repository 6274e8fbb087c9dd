package cli

import (
	"fmt"
	"time"
)

type BoardsCmd struct {
	List   BoardsListCmd   `cmd:"" help:"List saved boards." default:"1"`
	Delete BoardsDeleteCmd `cmd:"" help:"Delete a saved board."`
}

type BoardsListCmd struct{}

func (cmd *BoardsListCmd) Run(ctx *Context) error {
	boards, err := ctx.Store.ListBoards()
	if err != nil {
		return fmt.Errorf("failed to list boards: %w", err)
	}
	if len(boards) == 0 {
		ctx.println("No boards saved yet.")
		return nil
	}

	for _, b := range boards {
		marker := " "
		if b.Key == ctx.key() {
			marker = "*"
		}
		week := "-"
		if b.Year > 0 {
			week = fmt.Sprintf("KW %d/%d", b.Week, b.Year)
		}
		ctx.printf("%s %-20s %-12s %3d row(s)  updated %s\n", marker, b.Key, week, b.Rows, b.UpdatedAt.Local().Format(time.DateTime))
	}
	return nil
}

type BoardsDeleteCmd struct {
	Key string `arg:"" help:"Board key."`
}

func (cmd *BoardsDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.DeleteBoard(cmd.Key); err != nil {
		return fmt.Errorf("failed to delete board %q: %w", cmd.Key, err)
	}
	ctx.printf("✓ Deleted board: %s\n", cmd.Key)
	return nil
}
