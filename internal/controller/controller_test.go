package controller

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/weekboard/internal/history"
	"github.com/julianstephens/weekboard/internal/models"
)

type fakeSaver struct {
	requests []models.BoardState
}

func (f *fakeSaver) Request(state models.BoardState) {
	f.requests = append(f.requests, state)
}

func setupTestController(t *testing.T, capacity int) (*Controller, *fakeSaver, *int) {
	t.Helper()
	saver := &fakeSaver{}
	changes := 0
	c := New(Config{
		History:  history.New(capacity),
		Saver:    saver,
		OnChange: func(models.BoardState) { changes++ },
	})
	return c, saver, &changes
}

func mustDispatch(t *testing.T, c *Controller, in Intent) Result {
	t.Helper()
	res, err := c.Dispatch(in)
	require.NoError(t, err)
	return res
}

func TestDispatchMutations(t *testing.T) {
	c, saver, changes := setupTestController(t, 0)

	res := mustDispatch(t, c, AddRow("Anna"))
	require.True(t, res.OK)
	assert.Equal(t, 0, res.Row)
	res = mustDispatch(t, c, AddRow("Bob"))
	assert.Equal(t, 1, res.Row)

	res = mustDispatch(t, c, ToggleTile(1, 0))
	require.True(t, res.OK)
	assert.Equal(t, models.TileWork, res.State)

	res = mustDispatch(t, c, SetTile(0, 6, models.TileLeave))
	require.True(t, res.OK)
	assert.Equal(t, models.TileLeave, res.State)

	res = mustDispatch(t, c, MoveRowUp(1))
	require.True(t, res.OK)
	assert.Equal(t, 0, res.Row)

	require.True(t, mustDispatch(t, c, SetRowHeader(0, "Bob B.")).OK)
	require.True(t, mustDispatch(t, c, SetRowIncluded(1, false)).OK)
	require.True(t, mustDispatch(t, c, SetColumnRequired(0, 2)).OK)
	require.True(t, mustDispatch(t, c, SetYearAndWeek(2026, 42)).OK)

	b := c.Board()
	first, _ := b.Row(0)
	assert.Equal(t, "Bob B.", first.Label())
	tile, _ := b.Tile(0, 0)
	assert.Equal(t, models.TileWork, tile.State())
	second, _ := b.Row(1)
	assert.False(t, second.Included())
	assert.Equal(t, 42, b.Week())

	assert.Equal(t, 9, c.History().UndoDepth())
	assert.Len(t, saver.requests, 9)
	assert.Equal(t, 9, *changes)
	if diff := cmp.Diff(b.State(), saver.requests[len(saver.requests)-1]); diff != "" {
		t.Errorf("last save request is not the post-mutation state (-want +got):\n%s", diff)
	}
}

func TestFailedMutationIsInvisible(t *testing.T) {
	c, saver, changes := setupTestController(t, 0)
	mustDispatch(t, c, AddRow("Anna"))
	before := c.Board().State()

	failing := []Intent{
		RemoveRow(3),
		SetRowHeader(-1, "x"),
		SetRowIncluded(5, false),
		ToggleTile(0, 7),
		SetTile(2, 0, models.TileWork),
		SetColumnRequired(0, 0),
		SetColumnRequired(9, 2),
		MoveRowUp(0),
		MoveRowDown(0),
		SetYearAndWeek(2025, 53),
	}
	for _, in := range failing {
		res, err := c.Dispatch(in)
		require.NoError(t, err, "intent %s", in.Kind)
		assert.False(t, res.OK, "intent %s", in.Kind)
	}

	assert.Equal(t, 1, c.History().UndoDepth())
	assert.Len(t, saver.requests, 1)
	assert.Equal(t, 1, *changes)
	if diff := cmp.Diff(before, c.Board().State()); diff != "" {
		t.Errorf("failed intents changed the board (-want +got):\n%s", diff)
	}
}

func TestUnknownIntent(t *testing.T) {
	c, saver, _ := setupTestController(t, 0)
	mustDispatch(t, c, AddRow("Anna"))
	before := c.Board().State()

	_, err := c.Dispatch(Intent{Kind: "shuffle-rows"})
	require.ErrorIs(t, err, ErrUnknownIntent)

	assert.Len(t, saver.requests, 1)
	assert.Equal(t, 1, c.History().UndoDepth())
	assert.Empty(t, cmp.Diff(before, c.Board().State()))
}

func TestUndoRedo(t *testing.T) {
	c, saver, _ := setupTestController(t, 0)

	res := mustDispatch(t, c, Undo())
	assert.False(t, res.OK, "undo with empty history")
	assert.Empty(t, saver.requests)

	mustDispatch(t, c, AddRow("Anna"))
	mustDispatch(t, c, ToggleTile(0, 2))
	afterToggle := c.Board().State()

	require.True(t, mustDispatch(t, c, Undo()).OK)
	tile, _ := c.Board().Tile(0, 2)
	assert.Equal(t, models.TileAvailable, tile.State())

	require.True(t, mustDispatch(t, c, Undo()).OK)
	assert.Equal(t, 0, c.Board().RowCount())
	assert.False(t, mustDispatch(t, c, Undo()).OK)

	require.True(t, mustDispatch(t, c, Redo()).OK)
	require.True(t, mustDispatch(t, c, Redo()).OK)
	if diff := cmp.Diff(afterToggle, c.Board().State()); diff != "" {
		t.Errorf("redo did not restore the edited board (-want +got):\n%s", diff)
	}
	assert.False(t, mustDispatch(t, c, Redo()).OK)

	// 2 edits, 2 undos, 2 redos
	assert.Len(t, saver.requests, 6)
}

func TestNewEditClearsRedo(t *testing.T) {
	c, _, _ := setupTestController(t, 0)
	mustDispatch(t, c, AddRow("Anna"))
	mustDispatch(t, c, AddRow("Bob"))

	require.True(t, mustDispatch(t, c, Undo()).OK)
	require.True(t, c.History().CanRedo())

	mustDispatch(t, c, AddRow("Cleo"))

	assert.False(t, c.History().CanRedo())
	assert.False(t, mustDispatch(t, c, Redo()).OK)
}

func TestUndoBoundedByCapacity(t *testing.T) {
	const capacity = 3
	c, _, _ := setupTestController(t, capacity)
	mustDispatch(t, c, AddRow("Anna"))
	for i := 0; i < 10; i++ {
		mustDispatch(t, c, ToggleTile(0, 0))
	}

	undone := 0
	for mustDispatch(t, c, Undo()).OK {
		undone++
	}
	assert.Equal(t, capacity, undone)
}

func TestReset(t *testing.T) {
	c, saver, changes := setupTestController(t, 0)
	mustDispatch(t, c, AddRow("Anna"))

	c.Reset(models.BoardState{Rows: []models.RowState{{Label: "Loaded", Included: true}}})

	assert.Equal(t, 1, c.Board().RowCount())
	r, _ := c.Board().Row(0)
	assert.Equal(t, "Loaded", r.Label())
	assert.False(t, c.History().CanUndo())
	assert.Len(t, saver.requests, 1, "reset does not save")
	assert.Equal(t, 2, *changes)
}
