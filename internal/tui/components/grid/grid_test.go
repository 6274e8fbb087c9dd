package grid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/julianstephens/weekboard/internal/board"
	"github.com/julianstephens/weekboard/internal/models"
)

func sampleBoard() *board.Board {
	b := board.New()
	b.AddRow("Anna")
	b.AddRow("Bob")
	b.AddRow("Celina")
	b.SetRowIncluded(2, false)
	b.SetTileState(0, 0, models.TileWork)
	b.SetTileState(1, 0, models.TileWork)
	b.SetTileState(1, 6, models.TileLeave)
	return b
}

func TestVisible(t *testing.T) {
	b := sampleBoard()

	assert.Equal(t, []int{0, 1, 2}, Visible(b, ""))
	assert.Equal(t, []int{0, 2}, Visible(b, "  NA "))
	assert.Empty(t, Visible(b, "zed"))
}

func TestRenderPlain(t *testing.T) {
	b := sampleBoard()
	b.SetYearAndWeek(2026, 42)

	out := Render(b, Options{CursorRow: -1, CursorCol: -1, Plain: true})
	lines := strings.Split(out, "\n")

	assert.Contains(t, lines[0], "Mon")
	assert.Contains(t, lines[0], "Sun")
	assert.Contains(t, lines[1], "KW 42/2026")
	assert.Contains(t, lines[1], "12.10")
	assert.Contains(t, lines[1], "18.10")
	assert.Contains(t, out, "Anna")
	assert.Contains(t, out, "Celina (x)")
	assert.Contains(t, out, "Praca")

	// Monday has two workers against one required.
	working := lines[len(lines)-2]
	assert.Contains(t, working, "2 +1")
	assert.Contains(t, working, "0 !")
}

func TestRenderFilterKeepsTotals(t *testing.T) {
	b := sampleBoard()

	out := Render(b, Options{CursorRow: -1, CursorCol: -1, Filter: "anna", Plain: true})
	assert.NotContains(t, out, "Bob")
	assert.Contains(t, out, "2 +1", "hidden rows still count")

	out = Render(b, Options{CursorRow: -1, CursorCol: -1, Filter: "zed", Plain: true})
	assert.Contains(t, out, `No rows match "zed"`)

	out = Render(board.New(), Options{CursorRow: -1, CursorCol: -1, Plain: true})
	assert.Contains(t, out, "No rows yet.")
}
