package board

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/weekboard/internal/models"
)

func populatedBoard() *Board {
	b := New()
	b.SetYearAndWeek(2026, 42)
	b.SetColumnRequiredWorkers(0, 2)
	b.SetColumnRequiredWorkers(6, 3)
	for i, label := range []string{"Anna", "Bob", "", "Dora"} {
		b.AddRow(label)
		for col := 0; col < 7; col++ {
			for n := 0; n < (i+col)%3; n++ {
				b.ToggleTileState(i, col)
			}
		}
	}
	b.SetRowIncluded(1, false)
	b.SetRowIncluded(3, false)
	return b
}

func TestStateRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		board func() *Board
	}{
		{name: "empty", board: New},
		{name: "single row", board: func() *Board {
			b := New()
			b.AddRow("Anna")
			b.ToggleTileState(0, 4)
			return b
		}},
		{name: "many rows mixed flags", board: populatedBoard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := tt.board()
			state := original.State()

			data, err := json.Marshal(state)
			require.NoError(t, err)

			var decoded models.BoardState
			require.NoError(t, json.Unmarshal(data, &decoded))

			restored := FromState(decoded)
			if diff := cmp.Diff(state, restored.State()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, original.ColumnsStatus(), restored.ColumnsStatus())
		})
	}
}

func TestStateIsIndependentOfBoard(t *testing.T) {
	b := populatedBoard()
	state := b.State()

	b.ToggleTileState(0, 0)
	b.SetRowHeader(0, "changed")
	b.RemoveRow(2)
	b.SetColumnRequiredWorkers(0, 9)

	assert.Equal(t, "Anna", state.Rows[0].Label)
	assert.Len(t, state.Rows, 4)
	assert.Equal(t, 2, state.Columns[0].RequiredWorkers)
	assert.Equal(t, models.TileAvailable, state.Rows[0].Tiles[0])
}

func TestRestoreIsLenient(t *testing.T) {
	state := models.BoardState{
		Year: 2025,
		Week: 53, // 2025 has 52 ISO weeks
		Columns: []models.ColumnState{
			{Position: 1, RequiredWorkers: 3},
			{Position: 9, RequiredWorkers: 2},
			{Position: 2, RequiredWorkers: 0},
		},
		Rows: []models.RowState{
			{Position: 7, Label: "Anna", Included: true, Tiles: []models.TileState{"Praca", "X"}},
		},
	}

	b := FromState(state)

	assert.Equal(t, 0, b.Year())
	assert.Equal(t, 0, b.Week())
	c1, _ := b.Column(1)
	assert.Equal(t, 3, c1.RequiredWorkers())
	c2, _ := b.Column(2)
	assert.Equal(t, 1, c2.RequiredWorkers())

	require.Equal(t, 1, b.RowCount())
	assertDensePositions(t, b)
	r, _ := b.Row(0)
	tiles := r.Tiles()
	assert.Equal(t, models.TileWork, tiles[0].State())
	assert.Equal(t, models.TileAvailable, tiles[1].State())
	assert.Equal(t, models.TileAvailable, tiles[6].State())
}

func TestCloneIsIndependent(t *testing.T) {
	b := populatedBoard()
	clone := b.Clone()

	clone.AddRow("extra")
	clone.SetRowHeader(0, "changed")

	assert.Equal(t, 4, b.RowCount())
	r, _ := b.Row(0)
	assert.Equal(t, "Anna", r.Label())
}
