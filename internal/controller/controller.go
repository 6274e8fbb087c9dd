// Package controller routes user intents to the board, records undo
// checkpoints and schedules saves.
package controller

import (
	"errors"
	"fmt"

	"github.com/julianstephens/weekboard/internal/board"
	"github.com/julianstephens/weekboard/internal/history"
	"github.com/julianstephens/weekboard/internal/logger"
	"github.com/julianstephens/weekboard/internal/models"
)

// ErrUnknownIntent is returned for intent kinds outside the vocabulary.
var ErrUnknownIntent = errors.New("unknown intent")

// Saver accepts post-mutation snapshots for persistence.
type Saver interface {
	Request(state models.BoardState)
}

// Result reports the outcome of one Dispatch. OK is false when the intent
// was valid but could not apply (bad index, rejected count, empty history).
type Result struct {
	OK bool
	// Row is the affected row after the mutation: the new row for add-row,
	// the row's new position for moves.
	Row int
	// State is the tile state after toggle-tile or set-tile.
	State models.TileState
}

type Config struct {
	Board   *board.Board
	History *history.Manager
	// Saver and OnChange are optional.
	Saver    Saver
	OnChange func(state models.BoardState)
}

// Controller is single-threaded: all Dispatch calls must come from one
// goroutine.
type Controller struct {
	board    *board.Board
	history  *history.Manager
	saver    Saver
	onChange func(models.BoardState)
}

func New(cfg Config) *Controller {
	b := cfg.Board
	if b == nil {
		b = board.New()
	}
	h := cfg.History
	if h == nil {
		h = history.New(0)
	}
	return &Controller{
		board:    b,
		history:  h,
		saver:    cfg.Saver,
		onChange: cfg.OnChange,
	}
}

// Board returns the live board. Callers must not mutate it directly.
func (c *Controller) Board() *board.Board { return c.board }

func (c *Controller) History() *history.Manager { return c.history }

// Reset replaces the board with state and forgets history. Nothing is saved.
func (c *Controller) Reset(state models.BoardState) {
	c.board.Restore(state)
	c.history.Clear()
	if c.onChange != nil {
		c.onChange(c.board.State())
	}
}

// Dispatch applies one intent. Only unknown kinds return an error; a
// mutation that cannot apply returns OK=false and leaves history and
// persistence untouched.
func (c *Controller) Dispatch(in Intent) (Result, error) {
	switch in.Kind {
	case KindUndo:
		return c.travel(c.history.Undo), nil
	case KindRedo:
		return c.travel(c.history.Redo), nil
	}

	apply, ok := c.mutation(in)
	if !ok {
		logger.Warn("Rejected intent", "kind", in.Kind)
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownIntent, in.Kind)
	}

	before := c.board.State()
	res := apply()
	if !res.OK {
		logger.Debug("Intent did not apply", "kind", in.Kind, "row", in.Row, "col", in.Col)
		return res, nil
	}

	c.history.Checkpoint(before)
	c.changed()
	return res, nil
}

func (c *Controller) mutation(in Intent) (func() Result, bool) {
	b := c.board
	switch in.Kind {
	case KindAddRow:
		return func() Result {
			r := b.AddRow(in.Text)
			return Result{OK: true, Row: r.Position()}
		}, true
	case KindRemoveRow:
		return func() Result { return Result{OK: b.RemoveRow(in.Row), Row: in.Row} }, true
	case KindSetRowHeader:
		return func() Result { return Result{OK: b.SetRowHeader(in.Row, in.Text), Row: in.Row} }, true
	case KindSetRowIncluded:
		return func() Result { return Result{OK: b.SetRowIncluded(in.Row, in.Included), Row: in.Row} }, true
	case KindToggleTile:
		return func() Result {
			state, ok := b.ToggleTileState(in.Row, in.Col)
			return Result{OK: ok, Row: in.Row, State: state}
		}, true
	case KindSetTile:
		return func() Result {
			if !b.SetTileState(in.Row, in.Col, in.State) {
				return Result{Row: in.Row}
			}
			t, _ := b.Tile(in.Row, in.Col)
			return Result{OK: true, Row: in.Row, State: t.State()}
		}, true
	case KindSetColumnRequired:
		return func() Result { return Result{OK: b.SetColumnRequiredWorkers(in.Col, in.Count)} }, true
	case KindMoveRowUp:
		return func() Result { return Result{OK: b.MoveRowUp(in.Row), Row: in.Row - 1} }, true
	case KindMoveRowDown:
		return func() Result { return Result{OK: b.MoveRowDown(in.Row), Row: in.Row + 1} }, true
	case KindSetYearAndWeek:
		return func() Result { return Result{OK: b.SetYearAndWeek(in.Year, in.Week)} }, true
	}
	return nil, false
}

func (c *Controller) travel(step func(models.BoardState) (models.BoardState, bool)) Result {
	target, ok := step(c.board.State())
	if !ok {
		return Result{}
	}
	c.board.Restore(target)
	c.changed()
	return Result{OK: true}
}

func (c *Controller) changed() {
	state := c.board.State()
	if c.saver != nil {
		c.saver.Request(state)
	}
	if c.onChange != nil {
		c.onChange(state)
	}
}
