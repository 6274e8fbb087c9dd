package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/julianstephens/weekboard/internal/backup"
	"github.com/julianstephens/weekboard/internal/board"
	"github.com/julianstephens/weekboard/internal/config"
	"github.com/julianstephens/weekboard/internal/constants"
	"github.com/julianstephens/weekboard/internal/controller"
	"github.com/julianstephens/weekboard/internal/history"
	"github.com/julianstephens/weekboard/internal/logger"
	"github.com/julianstephens/weekboard/internal/storage"
)

type Context struct {
	Store    storage.Provider
	Config   *config.Config
	BoardKey string
	// Out receives command output. Nil means stdout.
	Out io.Writer
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) key() string {
	if c.BoardKey != "" {
		return c.BoardKey
	}
	if c.Config != nil && c.Config.BoardKey != "" {
		return c.Config.BoardKey
	}
	return constants.DefaultBoardKey
}

func (c *Context) requiredDefault() int {
	if c.Config != nil {
		return c.Config.DefaultRequiredWorkers
	}
	return constants.DefaultRequiredWorkers
}

func (c *Context) backupManager() *backup.Manager {
	limit := 0
	if c.Config != nil {
		limit = c.Config.Backup.MaxBackups
	}
	return backup.NewManager(c.Store.GetConfigPath(), limit)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if _, err := c.backupManager().CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ErrUnreadableBoard marks a saved board that exists but could not be read.
var ErrUnreadableBoard = errors.New("saved board could not be read")

// LoadBoard returns the board saved under the selected key. Nothing saved yet
// yields an empty board with the configured required count. A board that
// cannot be read also yields that empty board, together with an error
// wrapping ErrUnreadableBoard; callers decide whether to go on with it.
func (c *Context) LoadBoard() (*board.Board, error) {
	state, err := c.Store.LoadBoard(c.key())
	if errors.Is(err, storage.ErrNotFound) {
		logger.Debug("No saved board, starting empty", "key", c.key())
		return board.NewWithRequired(c.requiredDefault()), nil
	}
	if err != nil {
		logger.Warn("Saved board unreadable, starting empty", "key", c.key(), "error", err)
		return board.NewWithRequired(c.requiredDefault()), fmt.Errorf("%w: %q: %w", ErrUnreadableBoard, c.key(), err)
	}
	return board.FromState(state), nil
}

// Apply loads the board, dispatches the intent built from it and saves the
// result. A mutation that does not apply is reported as an error and nothing
// is written.
func (c *Context) Apply(build func(b *board.Board) (controller.Intent, error)) (*board.Board, controller.Result, error) {
	return c.ApplyAll(func(b *board.Board) ([]controller.Intent, error) {
		in, err := build(b)
		if err != nil {
			return nil, err
		}
		return []controller.Intent{in}, nil
	})
}

// ApplyAll dispatches every intent against one loaded board and saves once.
// If any intent does not apply, nothing is written. The returned Result is
// the last one.
func (c *Context) ApplyAll(build func(b *board.Board) ([]controller.Intent, error)) (*board.Board, controller.Result, error) {
	b, err := c.LoadBoard()
	if err != nil {
		return nil, controller.Result{}, err
	}
	intents, err := build(b)
	if err != nil {
		return nil, controller.Result{}, err
	}

	ctrl := controller.New(controller.Config{Board: b, History: history.New(len(intents))})
	var res controller.Result
	for _, in := range intents {
		res, err = ctrl.Dispatch(in)
		if err != nil {
			return nil, res, err
		}
		if !res.OK {
			return nil, res, fmt.Errorf("%s: nothing changed (check the row and day)", in.Kind)
		}
	}

	if err := c.Store.SaveBoard(c.key(), b.State()); err != nil {
		return nil, res, fmt.Errorf("failed to save board: %w", err)
	}
	logger.Debug("Applied intents", "count", len(intents), "key", c.key())
	return b, res, nil
}

var dayMap = map[string]int{
	"mon":       0,
	"monday":    0,
	"tue":       1,
	"tuesday":   1,
	"wed":       2,
	"wednesday": 2,
	"thu":       3,
	"thursday":  3,
	"fri":       4,
	"friday":    4,
	"sat":       5,
	"saturday":  5,
	"sun":       6,
	"sunday":    6,
}

// Static wraps a fixed intent for Apply.
func Static(in controller.Intent) func(*board.Board) (controller.Intent, error) {
	return func(*board.Board) (controller.Intent, error) { return in, nil }
}

// ParseDay maps a weekday name or a 1-based day number (1=Monday, 7=Sunday)
// to a column position.
func ParseDay(s string) (int, error) {
	part := strings.TrimSpace(strings.ToLower(s))
	if col, ok := dayMap[part]; ok {
		return col, nil
	}
	num, err := strconv.Atoi(part)
	if err == nil && num >= 1 && num <= constants.DaysPerWeek {
		return num - 1, nil
	}
	return 0, fmt.Errorf("invalid day: %s", s)
}

// ParseDays parses a comma-separated list of days. "all" selects the week.
func ParseDays(s string) ([]int, error) {
	if strings.EqualFold(strings.TrimSpace(s), "all") {
		cols := make([]int, constants.DaysPerWeek)
		for i := range cols {
			cols[i] = i
		}
		return cols, nil
	}
	var cols []int
	for _, part := range strings.Split(s, ",") {
		col, err := ParseDay(part)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return cols, nil
}

// ResolveRow finds a row by 1-based number or by label (case-insensitive).
func ResolveRow(b *board.Board, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if num, err := strconv.Atoi(ref); err == nil {
		if num < 1 || num > b.RowCount() {
			return 0, fmt.Errorf("row %d out of range (board has %d rows)", num, b.RowCount())
		}
		return num - 1, nil
	}

	match := -1
	for _, r := range b.Rows() {
		if !strings.EqualFold(r.Label(), ref) {
			continue
		}
		if match >= 0 {
			return 0, fmt.Errorf("label %q matches more than one row, use the row number", ref)
		}
		match = r.Position()
	}
	if match < 0 {
		return 0, fmt.Errorf("no row labelled %q", ref)
	}
	return match, nil
}
