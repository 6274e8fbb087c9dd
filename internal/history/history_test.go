package history

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/weekboard/internal/models"
)

func snapshot(label string) models.BoardState {
	return models.BoardState{
		Columns: []models.ColumnState{{Position: 0, RequiredWorkers: 1}},
		Rows: []models.RowState{{
			Position: 0,
			Label:    label,
			Included: true,
			Tiles:    []models.TileState{models.TileAvailable},
		}},
	}
}

func TestNewCapacityDefault(t *testing.T) {
	assert.Equal(t, 100, New(0).Capacity())
	assert.Equal(t, 100, New(-4).Capacity())
	assert.Equal(t, 5, New(5).Capacity())
}

func TestEmptyHistoryIsNoOp(t *testing.T) {
	m := New(3)

	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())

	_, ok := m.Undo(snapshot("now"))
	assert.False(t, ok)
	_, ok = m.Redo(snapshot("now"))
	assert.False(t, ok)
	assert.Equal(t, 0, m.RedoDepth(), "failed undo must not park the current state")
}

func TestUndoRedo(t *testing.T) {
	m := New(10)
	m.Checkpoint(snapshot("v0"))
	m.Checkpoint(snapshot("v1"))

	got, ok := m.Undo(snapshot("v2"))
	require.True(t, ok)
	assert.Equal(t, "v1", got.Rows[0].Label)
	assert.True(t, m.CanRedo())

	got, ok = m.Undo(got)
	require.True(t, ok)
	assert.Equal(t, "v0", got.Rows[0].Label)
	assert.False(t, m.CanUndo())

	got, ok = m.Redo(got)
	require.True(t, ok)
	assert.Equal(t, "v1", got.Rows[0].Label)

	got, ok = m.Redo(got)
	require.True(t, ok)
	assert.Equal(t, "v2", got.Rows[0].Label)
	assert.False(t, m.CanRedo())
	assert.Equal(t, 2, m.UndoDepth())
}

func TestCapacityEvictsOldest(t *testing.T) {
	const capacity = 5
	m := New(capacity)

	for i := 0; i < capacity+7; i++ {
		m.Checkpoint(snapshot(string(rune('a' + i))))
	}
	require.Equal(t, capacity, m.UndoDepth())

	current := snapshot("current")
	undone := 0
	for {
		prev, ok := m.Undo(current)
		if !ok {
			break
		}
		current = prev
		undone++
	}
	assert.Equal(t, capacity, undone)
	// The oldest surviving checkpoint is the 8th one pushed.
	assert.Equal(t, "h", current.Rows[0].Label)
}

func TestCheckpointClearsRedo(t *testing.T) {
	m := New(10)
	m.Checkpoint(snapshot("v0"))
	m.Checkpoint(snapshot("v1"))

	prev, ok := m.Undo(snapshot("v2"))
	require.True(t, ok)
	require.True(t, m.CanRedo())

	m.Checkpoint(prev)

	assert.False(t, m.CanRedo())
	_, ok = m.Redo(snapshot("v1b"))
	assert.False(t, ok)
}

func TestSnapshotsAreIndependent(t *testing.T) {
	m := New(10)
	live := snapshot("Anna")
	want := live.Clone()

	m.Checkpoint(live)
	live.Rows[0].Label = "changed"
	live.Rows[0].Tiles[0] = models.TileWork
	live.Columns[0].RequiredWorkers = 9

	got, ok := m.Undo(live)
	require.True(t, ok)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("checkpoint changed after the live state was mutated (-want +got):\n%s", diff)
	}

	live.Rows[0].Label = "again"
	redone, ok := m.Redo(got)
	require.True(t, ok)
	assert.Equal(t, "changed", redone.Rows[0].Label)
}

func TestClear(t *testing.T) {
	m := New(10)
	m.Checkpoint(snapshot("v0"))
	m.Checkpoint(snapshot("v1"))
	m.Undo(snapshot("v2"))

	m.Clear()

	assert.Equal(t, 0, m.UndoDepth())
	assert.Equal(t, 0, m.RedoDepth())
}
