package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/julianstephens/weekboard/internal/board"
	"github.com/julianstephens/weekboard/internal/logger"
	"github.com/julianstephens/weekboard/internal/watcher"
)

type StatusCmd struct {
	Watch bool `short:"w" help:"Re-print whenever the board store changes."`
	JSON  bool `help:"Print machine-readable JSON."`
}

type statusOutput struct {
	Key      string         `json:"key"`
	Year     int            `json:"year,omitempty"`
	Week     int            `json:"week,omitempty"`
	Rows     int            `json:"rows"`
	AllValid bool           `json:"all_valid"`
	Columns  []columnOutput `json:"columns"`
}

type columnOutput struct {
	Day         string `json:"day"`
	Required    int    `json:"required"`
	Working     int    `json:"working"`
	Valid       bool   `json:"valid"`
	HasExtraOne bool   `json:"has_extra_one"`
}

func (cmd *StatusCmd) Run(ctx *Context) error {
	if err := cmd.print(ctx); err != nil {
		return err
	}
	if !cmd.Watch {
		return nil
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return cmd.watch(runCtx, ctx)
}

func (cmd *StatusCmd) watch(runCtx context.Context, ctx *Context) error {
	w, err := watcher.New(ctx.Store.GetConfigPath(), 250*time.Millisecond, func() {
		// Other processes write the file; pick up their version first.
		if err := ctx.Store.Load(); err != nil {
			logger.Warn("Failed to reload store", "error", err)
			return
		}
		if err := cmd.print(ctx); err != nil {
			logger.Warn("Failed to print status", "error", err)
		}
	})
	if err != nil {
		return err
	}

	ctx.printf("Watching %s (ctrl+c to stop)\n", ctx.Store.GetConfigPath())
	return w.Run(runCtx)
}

func (cmd *StatusCmd) print(ctx *Context) error {
	b, err := ctx.LoadBoard()
	if err != nil {
		return err
	}
	out := buildStatus(ctx.key(), b)

	if cmd.JSON {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		ctx.println(string(data))
		return nil
	}

	week := "no week selected"
	if out.Year > 0 {
		week = fmt.Sprintf("KW %d/%d", out.Week, out.Year)
	}
	ctx.printf("Board %q, %s, %d row(s)\n", out.Key, week, out.Rows)
	for _, c := range out.Columns {
		mark := "✓"
		note := ""
		switch {
		case !c.Valid:
			mark = "❌"
		case c.HasExtraOne:
			note = " (one extra)"
		}
		ctx.printf("  %s %-10s %d/%d%s\n", mark, c.Day, c.Working, c.Required, note)
	}
	if out.AllValid {
		ctx.println("All days staffed.")
	} else {
		ctx.printf("Understaffed or overstaffed: %s\n", strings.Join(invalidDays(out), ", "))
	}
	return nil
}

func buildStatus(key string, b *board.Board) statusOutput {
	out := statusOutput{
		Key:      key,
		Year:     b.Year(),
		Week:     b.Week(),
		Rows:     b.RowCount(),
		AllValid: true,
	}
	for _, s := range b.ColumnsStatus() {
		out.Columns = append(out.Columns, columnOutput{
			Day:         s.Name,
			Required:    s.RequiredWorkers,
			Working:     s.WorkCount,
			Valid:       s.Valid,
			HasExtraOne: s.HasExtraOne,
		})
		if !s.Valid {
			out.AllValid = false
		}
	}
	return out
}

func invalidDays(out statusOutput) []string {
	var days []string
	for _, c := range out.Columns {
		if !c.Valid {
			days = append(days, c.Day)
		}
	}
	return days
}
